package channel

import (
	"fmt"
	"math"

	lin "github.com/sgreben/piecewiselinear"
	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/meridian-analytics/kadlu-echo/dsp/window"
)

// ImpulseResponse is the time-domain response of the channel, obtained from
// the inverse Fourier transform of a FrequencyResponse.
type ImpulseResponse struct {
	// Sample rate in Hz
	SampleRate float64
	Samples    []float64
}

// PeakIndex returns the index of the largest-magnitude sample.
func (ir *ImpulseResponse) PeakIndex() int {
	peak := 0
	for i, s := range ir.Samples {
		if math.Abs(s) > math.Abs(ir.Samples[peak]) {
			peak = i
		}
	}
	return peak
}

// PeakDelay returns the arrival time of the strongest path in seconds.
func (ir *ImpulseResponse) PeakDelay() float64 {
	return float64(ir.PeakIndex()) / ir.SampleRate
}

// Duration returns the length of the response in seconds.
func (ir *ImpulseResponse) Duration() float64 {
	return float64(len(ir.Samples)) / ir.SampleRate
}

// ImpulseOptions configures the frequency-to-time conversion.
type ImpulseOptions struct {
	// Output sample rate in Hz. Must cover the response band: the highest
	// response frequency may not exceed SampleRate/2.
	SampleRate float64
	// FFT length; rounded up to a power of two. The impulse response is
	// NFFT samples long, so NFFT/SampleRate bounds the longest delay that
	// can be represented without wrap-around.
	NFFT int
	// Tukey taper fraction applied across the response band to limit
	// ringing at the band edges. 0 disables the taper.
	TaperAlpha float64
}

// ImpulseFromResponse converts a frequency-domain channel response into a
// time-domain impulse response.
//
// The response is resampled onto the uniform FFT bin grid by interpolating
// the real and imaginary parts of the transfer function (interpolating
// wrapped phase directly would tear at every 2*pi crossing). Bins outside
// the response band are zero: the result is the band-limited impulse
// response of the channel.
func ImpulseFromResponse(fr *FrequencyResponse, opts ImpulseOptions) (*ImpulseResponse, error) {
	if err := fr.Validate(); err != nil {
		return nil, err
	}
	if len(fr.Freqs) < 2 {
		return nil, fmt.Errorf("channel: at least two frequency samples required for conversion")
	}
	if opts.SampleRate <= 0 {
		return nil, fmt.Errorf("channel: sample rate must be positive")
	}
	fmin := fr.Freqs[0]
	fmax := fr.Freqs[len(fr.Freqs)-1]
	if fmax > opts.SampleRate/2 {
		return nil, fmt.Errorf("channel: response extends to %v Hz but Nyquist is %v Hz", fmax, opts.SampleRate/2)
	}
	nfft := nextPow2(opts.NFFT)
	if nfft < 16 {
		nfft = 8192
	}

	re := make([]float64, len(fr.Freqs))
	im := make([]float64, len(fr.Freqs))
	for i := range fr.Freqs {
		h := fr.At(i)
		re[i] = real(h)
		im[i] = imag(h)
	}
	reF := lin.Function{X: fr.Freqs, Y: re}
	imF := lin.Function{X: fr.Freqs, Y: im}

	binHz := opts.SampleRate / float64(nfft)
	spec := make([]complex128, nfft/2+1)

	k0 := int(math.Ceil(fmin / binHz))
	k1 := int(math.Floor(fmax / binHz))
	if k1 > nfft/2 {
		k1 = nfft / 2
	}
	if k0 > k1 {
		return nil, fmt.Errorf("channel: response band [%v, %v] Hz contains no FFT bins at %v Hz resolution", fmin, fmax, binHz)
	}

	var taper []float64
	if opts.TaperAlpha > 0 {
		taper = window.Tukey(k1-k0+1, opts.TaperAlpha)
	}

	for k := k0; k <= k1; k++ {
		f := float64(k) * binHz
		h := complex(reF.At(f), imF.At(f))
		if taper != nil {
			h *= complex(taper[k-k0], 0)
		}
		spec[k] = h
	}
	// DC and Nyquist bins of a real signal carry no phase
	spec[0] = complex(real(spec[0]), 0)
	spec[nfft/2] = complex(real(spec[nfft/2]), 0)

	fft := fourier.NewFFT(nfft)
	seq := fft.Sequence(nil, spec)
	samples := make([]float64, nfft)
	scale := 1 / float64(nfft)
	for i := range samples {
		samples[i] = seq[i] * scale
	}

	return &ImpulseResponse{SampleRate: opts.SampleRate, Samples: samples}, nil
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}
