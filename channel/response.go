package channel

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// Errors returned by response construction and validation.
var (
	ErrEmptyResponse    = errors.New("channel: empty frequency response")
	ErrShapeMismatch    = errors.New("channel: magnitude, phase, and frequency lengths differ")
	ErrFreqNotAscending = errors.New("channel: frequencies must be positive and strictly increasing")
)

// FrequencyResponse holds the channel transfer function sampled at a set of
// frequencies: per-frequency magnitude in dB relative to the source level at
// 1 m, and phase in radians. Transmission loss is the negated magnitude.
type FrequencyResponse struct {
	// Frequencies in Hz, strictly increasing
	Freqs []float64
	// Received amplitude in dB re 1 m source level; typically negative
	MagnitudeDB []float64
	// Phase in radians
	PhaseRad []float64
}

// Validate checks the shape invariants shared by all engines.
func (fr *FrequencyResponse) Validate() error {
	if len(fr.Freqs) == 0 {
		return ErrEmptyResponse
	}
	if len(fr.MagnitudeDB) != len(fr.Freqs) || len(fr.PhaseRad) != len(fr.Freqs) {
		return ErrShapeMismatch
	}
	prev := 0.0
	for _, f := range fr.Freqs {
		if f <= prev {
			return ErrFreqNotAscending
		}
		prev = f
	}
	return nil
}

// At returns the complex transfer-function sample at index i.
func (fr *FrequencyResponse) At(i int) complex128 {
	return cmplx.Rect(fromDB(fr.MagnitudeDB[i]), fr.PhaseRad[i])
}

// TransmissionLossDB returns the transmission loss in dB at index i,
// i.e. the attenuation between source and receiver. Always rendered
// positive for a lossy channel.
func (fr *FrequencyResponse) TransmissionLossDB(i int) float64 {
	return -fr.MagnitudeDB[i]
}

// SetAt stores the complex transfer-function sample at index i.
func (fr *FrequencyResponse) SetAt(i int, h complex128) {
	mag := cmplx.Abs(h)
	if mag == 0 {
		fr.MagnitudeDB[i] = math.Inf(-1)
		fr.PhaseRad[i] = 0
		return
	}
	fr.MagnitudeDB[i] = toDB(mag)
	fr.PhaseRad[i] = cmplx.Phase(h)
}

// NewFrequencyResponse allocates a response over the given frequency grid.
func NewFrequencyResponse(freqs []float64) *FrequencyResponse {
	return &FrequencyResponse{
		Freqs:       freqs,
		MagnitudeDB: make([]float64, len(freqs)),
		PhaseRad:    make([]float64, len(freqs)),
	}
}

// FrequencyGrid returns n frequencies spaced linearly over [fmin, fmax].
func FrequencyGrid(fmin, fmax float64, n int) ([]float64, error) {
	if n < 2 || fmin <= 0 || fmax <= fmin {
		return nil, fmt.Errorf("channel: bad frequency grid [%v, %v] n=%d", fmin, fmax, n)
	}
	freqs := make([]float64, n)
	step := (fmax - fmin) / float64(n-1)
	for i := range freqs {
		freqs[i] = fmin + float64(i)*step
	}
	return freqs, nil
}
