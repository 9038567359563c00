package signal

import (
	"fmt"
	"math"
)

// Synthetic source signals for driving the channel when no recorded call is
// available. Durations are in seconds, frequencies in Hz.

// Chirp returns a linear frequency sweep from f0 to f1 with a short cosine
// fade at both ends to avoid clicks.
func Chirp(f0, f1, duration, sampleRate float64) ([]float64, error) {
	n := int(duration * sampleRate)
	if n <= 0 {
		return nil, fmt.Errorf("signal: chirp duration too short for sample rate")
	}
	out := make([]float64, n)
	rate := (f1 - f0) / duration
	for i := range out {
		t := float64(i) / sampleRate
		phase := 2 * math.Pi * (f0*t + rate*t*t/2)
		out[i] = math.Sin(phase) * fade(i, n)
	}
	return out, nil
}

// Whistle returns a frequency-modulated tone resembling an odontocete
// whistle: a carrier at f0 swept sinusoidally by +/- deviation Hz at
// modRate Hz.
func Whistle(f0, deviation, modRate, duration, sampleRate float64) ([]float64, error) {
	n := int(duration * sampleRate)
	if n <= 0 {
		return nil, fmt.Errorf("signal: whistle duration too short for sample rate")
	}
	out := make([]float64, n)
	phase := 0.0
	for i := range out {
		t := float64(i) / sampleRate
		f := f0 + deviation*math.Sin(2*math.Pi*modRate*t)
		phase += 2 * math.Pi * f / sampleRate
		out[i] = math.Sin(phase) * fade(i, n)
	}
	return out, nil
}

// ClickTrain returns a sequence of short broadband clicks at the given
// repetition rate, each click a single decaying sinusoid burst at f0.
func ClickTrain(f0, clickRate, duration, sampleRate float64) ([]float64, error) {
	n := int(duration * sampleRate)
	if n <= 0 {
		return nil, fmt.Errorf("signal: click train duration too short for sample rate")
	}
	if clickRate <= 0 {
		return nil, fmt.Errorf("signal: click rate must be positive")
	}
	out := make([]float64, n)
	period := int(sampleRate / clickRate)
	if period < 1 {
		period = 1
	}
	// Each click decays to silence within a quarter period
	tau := float64(period) / 4 / 5
	for start := 0; start < n; start += period {
		for i := start; i < n && i < start+period/4; i++ {
			t := float64(i-start) / sampleRate
			decay := math.Exp(-float64(i-start) / tau)
			out[i] = math.Sin(2*math.Pi*f0*t) * decay
		}
	}
	return out, nil
}

// fade applies a 5 ms-scale raised-cosine ramp at both ends of an n-sample
// signal; i is the sample index.
func fade(i, n int) float64 {
	ramp := n / 50
	if ramp < 1 {
		return 1
	}
	switch {
	case i < ramp:
		return 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(ramp)))
	case i >= n-ramp:
		return 0.5 * (1 - math.Cos(math.Pi*float64(n-1-i)/float64(ramp)))
	default:
		return 1
	}
}
