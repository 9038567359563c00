package signal

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Time-series array files are plain text: metadata lines annotated with //
// comments, a "* Data start" marker, then one sample per line. The format
// is shared with common impulse-response export tools so responses can be
// inspected with standard plotting scripts.

// WriteTimeSeries writes samples to a plain-text array file. sampleInterval
// is the time between samples in seconds.
func WriteTimeSeries(path string, sampleInterval float64, samples []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating array file: %w", err)
	}
	defer f.Close()

	peakIndex := 0
	for i, s := range samples {
		if math.Abs(s) > math.Abs(samples[peakIndex]) {
			peakIndex = i
		}
	}

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "%.12g // Sample interval (seconds)\n", sampleInterval)
	fmt.Fprintf(w, "%d // Peak index\n", peakIndex)
	fmt.Fprintln(w, "* Data start")
	for _, s := range samples {
		fmt.Fprintf(w, "%.9g\n", s)
	}
	return w.Flush()
}

// ReadTimeSeries reads an array file written by WriteTimeSeries, returning
// the sample interval, the recorded peak index, and the samples.
func ReadTimeSeries(path string) (sampleInterval float64, peakIndex int, samples []float64, err error) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	peakIndex = -1
	foundDataStart := false

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, "// Peak index") {
			parts := strings.Fields(line)
			peakIndex, _ = strconv.Atoi(parts[0])
		} else if strings.Contains(line, "// Sample interval (seconds)") {
			parts := strings.Fields(line)
			sampleInterval, _ = strconv.ParseFloat(parts[0], 64)
		} else if line == "* Data start" {
			foundDataStart = true
			break
		}
	}
	if !foundDataStart {
		err = fmt.Errorf("* Data start not found")
		return
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		val, parseErr := strconv.ParseFloat(line, 64)
		if parseErr != nil {
			continue
		}
		samples = append(samples, val)
	}

	if peakIndex < 0 || sampleInterval == 0.0 {
		err = fmt.Errorf("metadata missing or malformed")
		return
	}
	if err = scanner.Err(); err != nil {
		return
	}
	return
}
