package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// ExecEngine delegates the propagation-loss computation to an external
// ocean-acoustics model run as a subprocess. The scenario is written to the
// model's stdin as JSON and the response is read back from its stdout, so
// any propagation code can be wrapped with a small adapter script.
type ExecEngine struct {
	// Command and fixed arguments used to launch the model
	Command string
	Args    []string
}

func NewExecEngine(command string, args ...string) *ExecEngine {
	return &ExecEngine{Command: command, Args: args}
}

type execScenario struct {
	Depth         float64 `json:"depth"`
	Density       float64 `json:"density,omitempty"`
	WindSpeed     float64 `json:"wind_speed,omitempty"`
	Salinity      float64 `json:"salinity,omitempty"`
	Temperature   float64 `json:"temperature,omitempty"`
	BottomSpeed   float64 `json:"bottom_sound_speed,omitempty"`
	BottomDensity float64 `json:"bottom_density,omitempty"`
	// (depth, speed) pairs sorted by depth; empty means isovelocity water
	SoundSpeedProfile [][2]float64 `json:"sound_speed_profile,omitempty"`
	SourceDepth       float64      `json:"source_depth"`
	ReceiverDepth     float64      `json:"receiver_depth"`
	Range             float64      `json:"range"`
	Freqs             []float64    `json:"frequencies"`
}

type execResponse struct {
	Freqs       []float64 `json:"frequencies"`
	MagnitudeDB []float64 `json:"magnitude_db"`
	PhaseRad    []float64 `json:"phase_rad"`
	Error       string    `json:"error,omitempty"`
}

// Compute runs the external model and parses its response. The model is
// expected to exit non-zero or set the error field on failure.
func (e *ExecEngine) Compute(ctx context.Context, env *Environment, geom Geometry, freqs []float64) (*FrequencyResponse, error) {
	scenario := execScenario{
		Depth:         env.Depth,
		Density:       env.Density,
		WindSpeed:     env.WindSpeed,
		Salinity:      env.Salinity,
		Temperature:   env.Temperature,
		BottomSpeed:       env.Bottom.SoundSpeed,
		BottomDensity:     env.Bottom.Density,
		SoundSpeedProfile: env.SoundSpeedProfile(),
		SourceDepth:       geom.SourceDepth(),
		ReceiverDepth:     geom.ReceiverDepth(),
		Range:             geom.Range(),
		Freqs:             freqs,
	}
	input, err := json.Marshal(scenario)
	if err != nil {
		return nil, fmt.Errorf("encoding scenario: %w", err)
	}

	cmd := exec.CommandContext(ctx, e.Command, e.Args...)
	cmd.Stdin = bytes.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug().Str("command", e.Command).Int("freqs", len(freqs)).Msg("running external propagation model")

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("propagation model failed: %w: %s", err, stderr.String())
	}

	var resp execResponse
	if err := json.Unmarshal(output, &resp); err != nil {
		return nil, fmt.Errorf("parsing model response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("propagation model: %s", resp.Error)
	}

	fr := &FrequencyResponse{
		Freqs:       resp.Freqs,
		MagnitudeDB: resp.MagnitudeDB,
		PhaseRad:    resp.PhaseRad,
	}
	if len(fr.Freqs) == 0 {
		// Some adapters echo only the loss arrays; fall back to the
		// requested grid when the lengths line up.
		fr.Freqs = freqs
	}
	if err := fr.Validate(); err != nil {
		return nil, fmt.Errorf("model response invalid: %w", err)
	}
	return fr, nil
}
