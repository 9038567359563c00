package signal

import (
	"fmt"
	"image/png"
	"math"
	"math/cmplx"
	"os"

	"github.com/fogleman/gg"
	"github.com/mjibson/go-dsp/fft"

	"github.com/meridian-analytics/kadlu-echo/dsp/window"
)

// Spectrogram computes the magnitude spectrogram of samples in dB. Each
// row is one Hann-windowed frame of windowSize samples advanced by hop;
// each row holds windowSize/2+1 frequency bins up to Nyquist.
func Spectrogram(samples []float64, windowSize, hop int) ([][]float64, error) {
	if windowSize < 2 || hop < 1 {
		return nil, fmt.Errorf("signal: bad spectrogram parameters window=%d hop=%d", windowSize, hop)
	}
	if len(samples) < windowSize {
		return nil, fmt.Errorf("signal: %d samples is shorter than one %d-sample frame", len(samples), windowSize)
	}
	win := window.Hann(windowSize)
	frame := make([]float64, windowSize)

	var rows [][]float64
	for start := 0; start+windowSize <= len(samples); start += hop {
		copy(frame, samples[start:start+windowSize])
		window.Apply(frame, win)

		spectrum := fft.FFTReal(frame)
		row := make([]float64, windowSize/2+1)
		for k := range row {
			mag := cmplx.Abs(spectrum[k])
			row[k] = 20 * math.Log10(mag+1e-12)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// SaveSpectrogramPNG renders a spectrogram as a PNG heatmap with time on
// the X axis and frequency on the Y axis, low frequencies at the bottom.
func SaveSpectrogramPNG(path string, spec [][]float64) error {
	if len(spec) == 0 || len(spec[0]) == 0 {
		return fmt.Errorf("signal: empty spectrogram")
	}
	width := len(spec)
	height := len(spec[0])

	min, max := spec[0][0], spec[0][0]
	for _, row := range spec {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
	}
	if max == min {
		max = min + 1
	}

	c := gg.NewContext(width, height)
	for x, row := range spec {
		for y, v := range row {
			t := (v - min) / (max - min)
			c.SetRGB(t, t*t, 0.5-t/2)
			c.SetPixel(x, height-y-1)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating spectrogram file: %w", err)
	}
	defer f.Close()
	return png.Encode(f, c.Image())
}
