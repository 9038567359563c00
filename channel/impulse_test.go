package channel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// delayResponse builds a flat-magnitude response across the full band whose
// phase is a pure delay of t0 seconds, sampled exactly at the FFT bin
// frequencies so interpolation is exact.
func delayResponse(sampleRate float64, nfft int, t0 float64) *FrequencyResponse {
	binHz := sampleRate / float64(nfft)
	n := nfft / 2
	freqs := make([]float64, n)
	for k := 1; k <= n; k++ {
		freqs[k-1] = float64(k) * binHz
	}
	fr := NewFrequencyResponse(freqs)
	for i, f := range freqs {
		fr.SetAt(i, complex(math.Cos(2*math.Pi*f*t0), -math.Sin(2*math.Pi*f*t0)))
	}
	return fr
}

func TestImpulseFromPureDelay(t *testing.T) {
	require := require.New(t)

	const fs = 1000.0
	const nfft = 1024
	const t0 = 0.1 // 100 samples

	fr := delayResponse(fs, nfft, t0)
	ir, err := ImpulseFromResponse(fr, ImpulseOptions{SampleRate: fs, NFFT: nfft})
	require.NoError(err)
	require.Len(ir.Samples, nfft)
	require.Equal(fs, ir.SampleRate)

	require.Equal(100, ir.PeakIndex())
	require.InDelta(t0, ir.PeakDelay(), 1e-12)
	// A full-band unit response concentrates into a near-unit impulse
	require.InDelta(1.0, ir.Samples[100], 0.01)

	// Off-peak samples are small
	for i, s := range ir.Samples {
		if i >= 95 && i <= 105 {
			continue
		}
		require.Less(math.Abs(s), 0.05, "sample %d", i)
	}
}

func TestImpulseTaperReducesRinging(t *testing.T) {
	const fs = 1000.0
	const nfft = 1024

	// A band-limited response rings; the edge taper damps the tails.
	fr := delayResponse(fs, nfft, 0.1)
	bandStart := len(fr.Freqs) / 4
	bandEnd := 3 * len(fr.Freqs) / 4
	band := &FrequencyResponse{
		Freqs:       fr.Freqs[bandStart:bandEnd],
		MagnitudeDB: fr.MagnitudeDB[bandStart:bandEnd],
		PhaseRad:    fr.PhaseRad[bandStart:bandEnd],
	}

	plain, err := ImpulseFromResponse(band, ImpulseOptions{SampleRate: fs, NFFT: nfft})
	require.NoError(t, err)
	tapered, err := ImpulseFromResponse(band, ImpulseOptions{SampleRate: fs, NFFT: nfft, TaperAlpha: 0.5})
	require.NoError(t, err)

	tailEnergy := func(ir *ImpulseResponse) float64 {
		sum := 0.0
		for i, s := range ir.Samples {
			if i < 80 || i > 120 {
				sum += s * s
			}
		}
		return sum
	}
	assert.Less(t, tailEnergy(tapered), tailEnergy(plain))
}

func TestImpulseRejectsBadOptions(t *testing.T) {
	assert := assert.New(t)

	fr := delayResponse(1000, 1024, 0)

	_, err := ImpulseFromResponse(fr, ImpulseOptions{SampleRate: 0})
	assert.Error(err)

	// Band extends past Nyquist of the requested rate
	_, err = ImpulseFromResponse(fr, ImpulseOptions{SampleRate: 100})
	assert.Error(err)

	single := NewFrequencyResponse([]float64{100})
	_, err = ImpulseFromResponse(single, ImpulseOptions{SampleRate: 1000})
	assert.Error(err)
}
