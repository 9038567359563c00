// Package signal handles the waveforms fed through the simulated channel:
// WAV files, plain-text array files, and synthetic source signals.
package signal

import (
	"fmt"
	"os"

	"github.com/faiface/beep"
	"github.com/faiface/beep/wav"
)

// ReadWAV loads a WAV file and returns its samples mixed down to mono,
// along with the file's sample rate in Hz.
func ReadWAV(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening wav file: %w", err)
	}
	defer f.Close()

	stream, format, err := wav.Decode(f)
	if err != nil {
		return nil, 0, fmt.Errorf("decoding wav file: %w", err)
	}
	defer stream.Close()

	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := stream.Stream(buf)
		if !ok {
			break
		}
		for i := 0; i < n; i++ {
			out = append(out, (buf[i][0]+buf[i][1])/2)
		}
	}
	if err := stream.Err(); err != nil {
		return nil, 0, fmt.Errorf("reading wav samples: %w", err)
	}
	return out, float64(format.SampleRate), nil
}

// sliceStreamer adapts a mono sample slice to the beep.Streamer interface.
type sliceStreamer struct {
	samples []float64
	pos     int
}

func (s *sliceStreamer) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := 0
	for i := range samples {
		if s.pos >= len(s.samples) {
			break
		}
		v := s.samples[s.pos]
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }

// WriteWAV writes mono samples to a 16-bit stereo WAV file at the given
// sample rate. Samples are expected in [-1, 1]; values outside are clipped
// by the encoder.
func WriteWAV(path string, samples []float64, sampleRate float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating wav file: %w", err)
	}
	defer f.Close()

	format := beep.Format{
		SampleRate:  beep.SampleRate(sampleRate),
		NumChannels: 2,
		Precision:   2,
	}
	if err := wav.Encode(f, &sliceStreamer{samples: samples}, format); err != nil {
		return fmt.Errorf("encoding wav file: %w", err)
	}
	return nil
}

// Normalize scales samples in place so the largest magnitude is peak.
// A silent signal is left untouched.
func Normalize(samples []float64, peak float64) {
	max := 0.0
	for _, s := range samples {
		if a := abs(s); a > max {
			max = a
		}
	}
	if max == 0 {
		return
	}
	scale := peak / max
	for i := range samples {
		samples[i] *= scale
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
