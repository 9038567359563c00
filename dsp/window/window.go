// Package window provides taper windows for spectral processing.
package window

import (
	"math"
)

// Hann returns an n-point Hann window.
func Hann(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return w
}

// Hamming returns an n-point Hamming window.
func Hamming(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

// Blackman returns an n-point Blackman window.
func Blackman(n int) []float64 {
	w := make([]float64, n)
	if n == 1 {
		w[0] = 1
		return w
	}
	for i := range w {
		x := 2 * math.Pi * float64(i) / float64(n-1)
		w[i] = 0.42 - 0.5*math.Cos(x) + 0.08*math.Cos(2*x)
	}
	return w
}

// Tukey returns an n-point Tukey (tapered cosine) window. alpha is the
// fraction of the window inside the cosine taper: 0 gives a rectangular
// window, 1 gives a Hann window.
func Tukey(n int, alpha float64) []float64 {
	w := make([]float64, n)
	if alpha <= 0 {
		for i := range w {
			w[i] = 1
		}
		return w
	}
	if alpha > 1 {
		alpha = 1
	}
	if n == 1 {
		w[0] = 1
		return w
	}
	edge := alpha * float64(n-1) / 2
	for i := range w {
		x := float64(i)
		switch {
		case x < edge:
			w[i] = 0.5 * (1 + math.Cos(math.Pi*(x/edge-1)))
		case x > float64(n-1)-edge:
			w[i] = 0.5 * (1 + math.Cos(math.Pi*((x-float64(n-1))/edge+1)))
		default:
			w[i] = 1
		}
	}
	return w
}

// Apply multiplies samples by the window in place. The shorter length wins.
func Apply(samples, w []float64) {
	n := len(samples)
	if len(w) < n {
		n = len(w)
	}
	for i := 0; i < n; i++ {
		samples[i] *= w[i]
	}
}
