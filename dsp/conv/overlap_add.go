package conv

import (
	"gonum.org/v1/gonum/dsp/fourier"
)

// OverlapAdd is a reusable FFT-based convolver for processing long signals
// against a fixed kernel in blocks. The kernel spectrum is computed once.
type OverlapAdd struct {
	kernelLen int
	blockSize int
	fftSize   int
	fft       *fourier.FFT
	kernel    []complex128
}

// NewOverlapAdd creates an overlap-add convolver for the given kernel.
// blockSize is the number of new input samples consumed per block; it must
// be positive.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}
	if blockSize <= 0 {
		return nil, ErrInvalidBlockSize
	}

	fftSize := nextPow2(blockSize + len(kernel) - 1)
	fft := fourier.NewFFT(fftSize)

	padded := make([]float64, fftSize)
	copy(padded, kernel)

	return &OverlapAdd{
		kernelLen: len(kernel),
		blockSize: blockSize,
		fftSize:   fftSize,
		fft:       fft,
		kernel:    fft.Coefficients(nil, padded),
	}, nil
}

// Process convolves the whole signal with the kernel, returning the full
// result of length len(signal) + kernelLen - 1.
func (o *OverlapAdd) Process(signal []float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptyInput
	}

	outLen := len(signal) + o.kernelLen - 1
	result := make([]float64, outLen)

	block := make([]float64, o.fftSize)
	scale := 1 / float64(o.fftSize)

	for start := 0; start < len(signal); start += o.blockSize {
		end := start + o.blockSize
		if end > len(signal) {
			end = len(signal)
		}

		for i := range block {
			block[i] = 0
		}
		copy(block, signal[start:end])

		spec := o.fft.Coefficients(nil, block)
		for i := range spec {
			spec[i] *= o.kernel[i]
		}
		seq := o.fft.Sequence(nil, spec)

		segLen := (end - start) + o.kernelLen - 1
		for i := 0; i < segLen && start+i < outLen; i++ {
			result[start+i] += seq[i] * scale
		}
	}
	return result, nil
}
