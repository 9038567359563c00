package main

import (
	"context"
	"fmt"

	"github.com/alecthomas/kong"
	"github.com/rs/zerolog/log"

	"github.com/meridian-analytics/kadlu-echo/channel"
	"github.com/meridian-analytics/kadlu-echo/channel/config"
	"github.com/meridian-analytics/kadlu-echo/channel/experiment"
	"github.com/meridian-analytics/kadlu-echo/dsp/conv"
	"github.com/meridian-analytics/kadlu-echo/internal/cache"
	"github.com/meridian-analytics/kadlu-echo/internal/logging"
	"github.com/meridian-analytics/kadlu-echo/internal/settings"
	"github.com/meridian-analytics/kadlu-echo/signal"
)

const MS float64 = 1.0 / 1000.0

const PLOT_SIZE = 600

var CLI struct {
	Simulate SimulateCmd `cmd:"" help:"Run a scenario end to end: transmission loss, impulse response, convolved signal"`
	Response ResponseCmd `cmd:"" help:"Compute the channel response for a scenario without convolving a signal"`
	Convolve ConvolveCmd `cmd:"" help:"Convolve a wav file with a previously computed impulse response"`
}

type SimulateCmd struct {
	Scenario string `arg:"" name:"scenario" help:"scenario YAML file"`
}

type ResponseCmd struct {
	Scenario string `arg:"" name:"scenario" help:"scenario YAML file"`
}

type ConvolveCmd struct {
	Impulse string `arg:"" name:"impulse" help:"impulse response array file"`
	Wav     string `arg:"" name:"wav" help:"input waveform"`
	Out     string `name:"out" default:"received.wav" help:"output wav file"`
}

// pipeline carries the state shared by the simulate and response commands.
type pipeline struct {
	cfg      *config.ScenarioConfig
	env      *channel.Environment
	geom     channel.Geometry
	freqs    []float64
	engine   channel.Engine
	engName  string
	image    *channel.ImageEngine
	cacheHit bool
}

func newPipeline(scenarioPath string, s *settings.Settings) (*pipeline, error) {
	cfg, err := config.LoadFromFile(scenarioPath, config.LoadOptions{
		ResolvePaths: true,
		MergeFiles:   true,
	})
	if err != nil {
		return nil, err
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("%s", config.FormatValidationErrors(errs))
	}

	env := &channel.Environment{
		Depth:       cfg.Environment.Depth,
		Density:     cfg.Environment.Density,
		WindSpeed:   cfg.Environment.WindSpeed,
		Salinity:    cfg.Environment.Salinity,
		Temperature: cfg.Environment.Temperature,
		Bottom: channel.Bottom{
			SoundSpeed: cfg.Environment.Bottom.SoundSpeed,
			Density:    cfg.Environment.Bottom.Density,
		},
	}
	if len(cfg.Environment.SoundSpeedProfile.Inline) > 0 {
		env.SetSoundSpeedProfile(cfg.Environment.SoundSpeedProfile.Inline)
	}

	geom := channel.Geometry{
		Source:   channel.V(cfg.Geometry.Source.Range, 0, cfg.Geometry.Source.Depth),
		Receiver: channel.V(cfg.Geometry.Receiver.Range, 0, cfg.Geometry.Receiver.Depth),
	}

	freqs, err := channel.FrequencyGrid(cfg.Simulation.FreqMin, cfg.Simulation.FreqMax, cfg.Simulation.FreqCount)
	if err != nil {
		return nil, err
	}

	p := &pipeline{cfg: cfg, env: env, geom: geom, freqs: freqs}
	if len(s.EngineCmd) > 0 {
		p.engine = channel.NewExecEngine(s.EngineCmd[0], s.EngineCmd[1:]...)
		p.engName = s.EngineCmd[0]
	} else {
		p.image = channel.NewImageEngine(channel.TraceParams{
			Order:         cfg.Simulation.Order,
			GainThreshold: cfg.Simulation.GainThresholdDB,
			TimeThreshold: cfg.Simulation.TimeThresholdMS * MS,
		})
		p.engine = p.image
		p.engName = "image"
	}
	return p, nil
}

// computeResponse runs the propagation engine through the cache.
func (p *pipeline) computeResponse(ctx context.Context, s *settings.Settings) (*channel.FrequencyResponse, error) {
	key := cache.Key(p.env, p.cfg.Environment.SoundSpeedProfile.Inline, p.geom, p.freqs)

	var store *cache.Cache
	if !p.cfg.Flags.SkipCache {
		var err error
		store, err = cache.Open(s.CacheDir)
		if err != nil {
			return nil, err
		}
		if fr, ok := store.Get(key); ok {
			log.Info().Str("key", key[:12]).Msg("using cached frequency response")
			p.cacheHit = true
			return fr, nil
		}
	}

	log.Info().Str("engine", p.engName).Int("freqs", len(p.freqs)).Msg("computing frequency response")
	fr, err := p.engine.Compute(ctx, p.env, p.geom, p.freqs)
	if err != nil {
		return nil, err
	}

	if store != nil {
		if err := store.Put(key, fr); err != nil {
			log.Warn().Err(err).Msg("failed to cache frequency response")
		}
	}
	return fr, nil
}

func (p *pipeline) impulse(fr *channel.FrequencyResponse) (*channel.ImpulseResponse, error) {
	return channel.ImpulseFromResponse(fr, channel.ImpulseOptions{
		SampleRate: p.cfg.Signal.SampleRate,
		NFFT:       p.cfg.Simulation.NFFT,
		TaperAlpha: p.cfg.Simulation.TaperAlpha,
	})
}

// sourceSignal loads the configured wav file or synthesizes a source.
func (p *pipeline) sourceSignal() ([]float64, error) {
	sig := p.cfg.Signal
	if sig.Wav.Path != "" {
		samples, rate, err := signal.ReadWAV(sig.Wav.Path)
		if err != nil {
			return nil, err
		}
		if rate != sig.SampleRate {
			return nil, fmt.Errorf("wav sample rate %g does not match scenario sample rate %g", rate, sig.SampleRate)
		}
		return samples, nil
	}
	switch sig.Synth.Kind {
	case "chirp":
		return signal.Chirp(sig.Synth.F0, sig.Synth.F1, sig.Synth.Duration, sig.SampleRate)
	case "whistle":
		return signal.Whistle(sig.Synth.F0, sig.Synth.Deviation, sig.Synth.ModRate, sig.Synth.Duration, sig.SampleRate)
	case "clicks":
		return signal.ClickTrain(sig.Synth.F0, sig.Synth.ClickRate, sig.Synth.Duration, sig.SampleRate)
	default:
		return nil, fmt.Errorf("no input signal configured")
	}
}

// snapshotConfig copies the scenario file into the run directory as given,
// alongside a resolved snapshot with merged profiles, absolute paths, and
// run metadata stamped in.
func (p *pipeline) snapshotConfig(run *experiment.RunDir, scenarioPath string) error {
	if err := run.CopyConfigFile(scenarioPath); err != nil {
		return err
	}
	return config.SaveToFile(p.cfg, run.GetFilePath("scenario_resolved.yaml"))
}

// writeResponseOutputs computes and writes the frequency and impulse
// responses into the run directory, returning both.
func (p *pipeline) writeResponseOutputs(s *settings.Settings, run *experiment.RunDir) (*channel.FrequencyResponse, *channel.ImpulseResponse, error) {
	fr, err := p.computeResponse(context.Background(), s)
	if err != nil {
		return nil, nil, err
	}
	if err := channel.WriteResponseFile(run.GetFilePath("frequency_response.txt"), fr); err != nil {
		return nil, nil, err
	}

	ir, err := p.impulse(fr)
	if err != nil {
		return nil, nil, err
	}
	if err := signal.WriteTimeSeries(run.GetFilePath("impulse_response.txt"), 1/ir.SampleRate, ir.Samples); err != nil {
		return nil, nil, err
	}
	return fr, ir, nil
}

func (p *pipeline) writeSummary(run *experiment.RunDir, scenario string, fr *channel.FrequencyResponse, ir *channel.ImpulseResponse, outputs []string) error {
	summary := channel.NewSummary(p.engName, p.geom, fr, ir)
	summary.Scenario = scenario
	summary.CacheHit = p.cacheHit
	summary.Outputs = outputs
	if p.image != nil {
		rays, err := p.image.Eigenrays(p.env, p.geom)
		if err == nil {
			summary.AddEigenrays(p.env, rays, p.freqs[len(p.freqs)/2])
		}
	}
	return summary.Save(run.GetFilePath("summary.json"))
}

func (c ResponseCmd) Run() error {
	s, err := settings.Load()
	if err != nil {
		return err
	}

	p, err := newPipeline(c.Scenario, s)
	if err != nil {
		return err
	}

	run, err := experiment.CreateRunDirectory()
	if err != nil {
		return err
	}
	if err := p.snapshotConfig(run, c.Scenario); err != nil {
		return err
	}

	fr, ir, err := p.writeResponseOutputs(s, run)
	if err != nil {
		return err
	}

	if !p.cfg.Flags.SkipPlots {
		if err := channel.PlotTransmissionLoss(fr, PLOT_SIZE, PLOT_SIZE, run.GetFilePath("transmission_loss.png")); err != nil {
			return err
		}
		if err := channel.PlotImpulseResponse(ir, PLOT_SIZE, PLOT_SIZE, run.GetFilePath("impulse_response.png")); err != nil {
			return err
		}
	}

	if err := p.writeSummary(run, c.Scenario, fr, ir, []string{
		"frequency_response.txt", "impulse_response.txt",
	}); err != nil {
		return err
	}

	log.Info().Str("run", run.ID).Msg("response written")
	return nil
}

func (c SimulateCmd) Run() error {
	s, err := settings.Load()
	if err != nil {
		return err
	}

	p, err := newPipeline(c.Scenario, s)
	if err != nil {
		return err
	}

	run, err := experiment.CreateRunDirectory()
	if err != nil {
		return err
	}
	if err := p.snapshotConfig(run, c.Scenario); err != nil {
		return err
	}

	fr, ir, err := p.writeResponseOutputs(s, run)
	if err != nil {
		return err
	}

	source, err := p.sourceSignal()
	if err != nil {
		return err
	}

	received, err := conv.Auto(source, ir.Samples, conv.ModeFull)
	if err != nil {
		return err
	}
	signal.Normalize(received, 0.9)
	if err := signal.WriteWAV(run.GetFilePath("received.wav"), received, p.cfg.Signal.SampleRate); err != nil {
		return err
	}

	if !p.cfg.Flags.SkipPlots {
		if err := channel.PlotTransmissionLoss(fr, PLOT_SIZE, PLOT_SIZE, run.GetFilePath("transmission_loss.png")); err != nil {
			return err
		}
		if err := channel.PlotImpulseResponse(ir, PLOT_SIZE, PLOT_SIZE, run.GetFilePath("impulse_response.png")); err != nil {
			return err
		}
		if err := channel.PlotWaveforms(source, received, p.cfg.Signal.SampleRate, PLOT_SIZE, PLOT_SIZE, run.GetFilePath("waveforms.png")); err != nil {
			return err
		}
		if spec, err := signal.Spectrogram(received, 1024, 256); err == nil {
			if err := signal.SaveSpectrogramPNG(run.GetFilePath("received_spectrogram.png"), spec); err != nil {
				return err
			}
		} else {
			log.Warn().Err(err).Msg("skipping spectrogram")
		}
	}

	if err := p.writeSummary(run, c.Scenario, fr, ir, []string{
		"frequency_response.txt", "impulse_response.txt", "received.wav",
	}); err != nil {
		return err
	}

	log.Info().Str("run", run.ID).Float64("peak_delay_ms", ir.PeakDelay()/MS).Msg("simulation complete")
	return nil
}

func (c ConvolveCmd) Run() error {
	interval, _, samples, err := signal.ReadTimeSeries(c.Impulse)
	if err != nil {
		return fmt.Errorf("reading impulse response: %w", err)
	}

	source, rate, err := signal.ReadWAV(c.Wav)
	if err != nil {
		return err
	}
	if irRate := 1 / interval; irRate < rate*0.999 || irRate > rate*1.001 {
		return fmt.Errorf("impulse response sample rate %g does not match wav sample rate %g", irRate, rate)
	}

	received, err := conv.Auto(source, samples, conv.ModeFull)
	if err != nil {
		return err
	}
	signal.Normalize(received, 0.9)
	if err := signal.WriteWAV(c.Out, received, rate); err != nil {
		return err
	}

	log.Info().Str("out", c.Out).Int("samples", len(received)).Msg("convolution complete")
	return nil
}

func main() {
	s, err := settings.Load()
	if err != nil {
		logging.Setup("info")
	} else {
		logging.Setup(s.LogLevel)
	}

	ctx := kong.Parse(&CLI)
	if err := ctx.Run(); err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}
