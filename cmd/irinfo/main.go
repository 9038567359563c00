package main

import (
	"bufio"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/meridian-analytics/kadlu-echo/signal"
)

// Sample represents a processed impulse response sample
type Sample struct {
	TimeMs float64
	Linear float64
	Db     float64
}

// LinearToDb converts a linear amplitude value to decibels
func LinearToDb(volume float64, minDb float64) float64 {
	if volume == 0.0 {
		return minDb
	}
	return 20.0 * math.Log10(math.Abs(volume))
}

// MakeProcessedSamples returns a list of Sample starting at peakIndex
func MakeProcessedSamples(peakIndex int, sampleInterval float64, samples []float64) []Sample {
	var result []Sample
	for i, v := range samples[peakIndex:] {
		t := float64(i) * sampleInterval * 1000.0
		result = append(result, Sample{
			TimeMs: t,
			Linear: v,
			Db:     LinearToDb(v, -120.0),
		})
	}
	return result
}

// FindArrivals finds local maxima in the response that stand out from the
// baseline by thresholdDb; each is one resolvable multipath arrival.
func FindArrivals(samples []Sample, thresholdDb float64, baseline float64) []Sample {
	var maxima []Sample
	inSpan := false
	var currMax Sample

	for _, s := range samples {
		above := s.Db >= baseline+thresholdDb
		if above {
			if !inSpan {
				inSpan = true
				currMax = s
			} else {
				if s.Db > currMax.Db {
					currMax = s
				}
			}
		} else {
			if inSpan {
				maxima = append(maxima, currMax)
				inSpan = false
			}
		}
	}
	if inSpan {
		maxima = append(maxima, currMax)
	}
	return maxima
}

// DecayTimeMs estimates how long the response takes to fall decayDb below
// its peak, from the envelope of the remaining energy.
func DecayTimeMs(processed []Sample, decayDb float64) float64 {
	if len(processed) == 0 {
		return 0
	}
	peakDb := processed[0].Db
	for _, s := range processed {
		if s.Db > peakDb {
			peakDb = s.Db
		}
	}
	last := 0.0
	for _, s := range processed {
		if s.Db >= peakDb-decayDb {
			last = s.TimeMs
		}
	}
	return last
}

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: irinfo <impulse_response_file> <output_file>")
		os.Exit(1)
	}
	inputPath := os.Args[1]
	outputPath := os.Args[2]

	sampleInterval, peakIndex, samples, err := signal.ReadTimeSeries(inputPath)
	if err != nil {
		log.Fatalf("Parse error: %v\n", err)
	}

	processed := MakeProcessedSamples(peakIndex, sampleInterval, samples)

	baseline := -30.0
	arrivals := FindArrivals(processed, 6.0, baseline)
	decay := DecayTimeMs(processed, 60.0)

	out, err := os.Create(outputPath)
	if err != nil {
		log.Fatalf("Could not create output file: %v\n", err)
	}
	defer out.Close()
	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "Channel Impulse Response\n")
	fmt.Fprintf(w, "Peak arrival: %.6fms\n", float64(peakIndex)*sampleInterval*1000.0)
	fmt.Fprintf(w, "60dB decay:   %.6fms after peak\n", decay)
	fmt.Fprintf(w, "Arrivals:\n")
	for _, s := range arrivals {
		fmt.Fprintf(w, "%.6fms, %.2fdB\n", s.TimeMs, s.Db)
	}
	w.Flush()
	fmt.Printf("Wrote %d arrivals to %s\n", len(arrivals), outputPath)
}
