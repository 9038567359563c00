package channel

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
)

// PlotTransmissionLoss renders transmission loss versus frequency to a PNG
// file. X and Y are the image dimensions in points.
func PlotTransmissionLoss(fr *FrequencyResponse, X, Y int, path string) error {
	p := plot.New()
	p.Title.Text = "Transmission loss"
	p.X.Label.Text = "Frequency (kHz)"
	p.Y.Label.Text = "Loss (dB)"

	pts := make(plotter.XYs, len(fr.Freqs))
	for i, f := range fr.Freqs {
		pts[i].X = f / 1000
		pts[i].Y = fr.TransmissionLossDB(i)
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(font.Length(X), font.Length(Y), path)
}

// PlotImpulseResponse renders the time-domain channel response to a PNG
// file, with time in milliseconds on the X axis.
func PlotImpulseResponse(ir *ImpulseResponse, X, Y int, path string) error {
	p := plot.New()
	p.Title.Text = "Channel impulse response"
	p.X.Label.Text = "Time (ms)"
	p.Y.Label.Text = "Amplitude"

	pts := make(plotter.XYs, len(ir.Samples))
	for i, s := range ir.Samples {
		pts[i].X = float64(i) / ir.SampleRate / MS
		pts[i].Y = s
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	p.Add(line)
	return p.Save(font.Length(X), font.Length(Y), path)
}

// PlotWaveforms renders the source and received waveforms on one chart so
// the channel's smearing and echoes are visible at a glance.
func PlotWaveforms(source, received []float64, sampleRate float64, X, Y int, path string) error {
	p := plot.New()
	p.Title.Text = "Source vs received"
	p.X.Label.Text = "Time (s)"
	p.Y.Label.Text = "Amplitude"

	toXYs := func(samples []float64) plotter.XYs {
		pts := make(plotter.XYs, len(samples))
		for i, s := range samples {
			pts[i].X = float64(i) / sampleRate
			pts[i].Y = s
		}
		return pts
	}

	src, err := plotter.NewLine(toXYs(source))
	if err != nil {
		return err
	}
	src.Color = color.RGBA{B: 255, A: 255}

	rcv, err := plotter.NewLine(toXYs(received))
	if err != nil {
		return err
	}
	rcv.Color = color.RGBA{R: 255, A: 255}

	p.Add(src, rcv)
	p.Legend.Add("source", src)
	p.Legend.Add("received", rcv)
	return p.Save(font.Length(X), font.Length(Y), path)
}
