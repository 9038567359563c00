package channel

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Frequency responses are stored as plain text: a commented header, a
// "* Data start" marker, then one "frequency magnitude phase" triple per
// line. The same files feed the cache warm-up tooling and external
// plotting scripts.

// WriteResponseFile writes a frequency response to a plain-text array file.
func WriteResponseFile(path string, fr *FrequencyResponse) error {
	if err := fr.Validate(); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating response file: %w", err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "// Columns: frequency_hz magnitude_db phase_rad")
	fmt.Fprintf(w, "%d // Frequency count\n", len(fr.Freqs))
	fmt.Fprintln(w, "* Data start")
	for i, freq := range fr.Freqs {
		fmt.Fprintf(w, "%.9g %.9g %.9g\n", freq, fr.MagnitudeDB[i], fr.PhaseRad[i])
	}
	return w.Flush()
}

// ReadResponseFile reads a frequency response written by WriteResponseFile.
func ReadResponseFile(path string) (*FrequencyResponse, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening response file: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	foundDataStart := false
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == "* Data start" {
			foundDataStart = true
			break
		}
	}
	if !foundDataStart {
		return nil, fmt.Errorf("* Data start not found")
	}

	fr := &FrequencyResponse{}
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Fields(line)
		if len(parts) != 3 {
			return nil, fmt.Errorf("malformed data line %q", line)
		}
		freq, err1 := strconv.ParseFloat(parts[0], 64)
		mag, err2 := strconv.ParseFloat(parts[1], 64)
		phase, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("malformed data line %q", line)
		}
		fr.Freqs = append(fr.Freqs, freq)
		fr.MagnitudeDB = append(fr.MagnitudeDB, mag)
		fr.PhaseRad = append(fr.PhaseRad, phase)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := fr.Validate(); err != nil {
		return nil, err
	}
	return fr, nil
}
