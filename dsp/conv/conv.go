// Package conv provides linear convolution of time-domain signals.
//
// Three strategies are offered:
//
//   - Direct convolution: O(N*M), best for short kernels
//   - FFT convolution: one big transform, best when both inputs fit in memory
//   - Overlap-add: FFT-based block convolution for long signals
//
// Auto picks a strategy from the input sizes, which is what most callers
// want:
//
//	out, err := conv.Auto(signal, kernel, conv.ModeFull)
package conv

import (
	"errors"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput       = errors.New("conv: empty input")
	ErrEmptyKernel      = errors.New("conv: empty kernel")
	ErrInvalidBlockSize = errors.New("conv: invalid block size")
)

// Mode specifies the output mode for convolution.
type Mode int

const (
	// ModeFull returns the full convolution result with length len(a)+len(b)-1.
	ModeFull Mode = iota

	// ModeSame returns output with the same length as the first input,
	// centered within the full result.
	ModeSame
)

// directThreshold is the kernel length below which direct convolution
// beats the FFT on typical inputs.
const directThreshold = 64

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}
	result := make([]float64, len(a)+len(b)-1)
	for i, av := range a {
		for j, bv := range b {
			result[i+j] += av * bv
		}
	}
	return result, nil
}

// FFT performs linear convolution of a and b through a single FFT sized to
// the next power of two that holds the full result.
func FFT(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}
	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	outLen := len(a) + len(b) - 1
	size := nextPow2(outLen)

	fft := fourier.NewFFT(size)
	pa := make([]float64, size)
	copy(pa, a)
	pb := make([]float64, size)
	copy(pb, b)

	ca := fft.Coefficients(nil, pa)
	cb := fft.Coefficients(nil, pb)
	for i := range ca {
		ca[i] *= cb[i]
	}

	seq := fft.Sequence(nil, ca)
	result := make([]float64, outLen)
	scale := 1 / float64(size)
	for i := range result {
		result[i] = seq[i] * scale
	}
	return result, nil
}

// Auto convolves a with b, picking direct or FFT convolution from the
// kernel length, and trims the result according to mode.
func Auto(a, b []float64, mode Mode) ([]float64, error) {
	var full []float64
	var err error
	if len(b) < directThreshold || len(a) < directThreshold {
		full, err = Direct(a, b)
	} else {
		full, err = FFT(a, b)
	}
	if err != nil {
		return nil, err
	}
	return trim(full, len(a), mode), nil
}

func trim(full []float64, aLen int, mode Mode) []float64 {
	if mode == ModeFull {
		return full
	}
	start := (len(full) - aLen) / 2
	return full[start : start+aLen]
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
