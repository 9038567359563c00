package channel

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func summaryFixture() (Geometry, *FrequencyResponse, *ImpulseResponse) {
	geom := Geometry{Source: V(0, 0, 10), Receiver: V(500, 0, 40)}
	fr := &FrequencyResponse{
		Freqs:       []float64{1000, 2000},
		MagnitudeDB: []float64{-60, -70},
		PhaseRad:    []float64{0, 0},
	}
	ir := &ImpulseResponse{SampleRate: 1000, Samples: make([]float64, 500)}
	ir.Samples[333] = 1
	return geom, fr, ir
}

func TestNewSummary(t *testing.T) {
	assert := assert.New(t)

	geom, fr, ir := summaryFixture()
	s := NewSummary("image", geom, fr, ir)

	assert.Equal("image", s.EngineName)
	assert.Equal(500.0, s.RangeM)
	assert.InDelta(math.Sqrt(500*500+30*30), s.SlantRangeM, 1e-12)
	assert.Equal(10.0, s.SourceDepthM)
	assert.Equal(40.0, s.ReceiverDepth)
	assert.Equal(65.0, s.MeanTLdB)
	assert.Equal(333.0, s.PeakDelayMS)
}

func TestAddEigenrays(t *testing.T) {
	assert := assert.New(t)

	env := &Environment{Depth: 100}
	rays := []Eigenray{
		{Length: 500, Delay: 500 / SPEED_OF_SOUND, BoundaryGain: 1},
		{Length: 520, Delay: 520 / SPEED_OF_SOUND, BoundaryGain: -1, SurfaceBounces: 1},
	}

	geom, fr, ir := summaryFixture()
	s := NewSummary("image", geom, fr, ir)
	s.AddEigenrays(env, rays, 1000)

	require.Len(t, s.Eigenrays, 2)
	assert.Equal(1, s.Eigenrays[1].SurfaceBounces)
	assert.Greater(s.Eigenrays[0].GainDB, s.Eigenrays[1].GainDB)

	// Both arrivals fall inside the early window
	want := EnergyOverWindow(env, rays, 1000, earlyWindowMS, energyFloorDB)
	assert.Equal(want, s.EarlyEnergy)
	assert.Positive(s.EarlyEnergy)
}

func TestSummarySave(t *testing.T) {
	require := require.New(t)

	geom, fr, ir := summaryFixture()
	s := NewSummary("image", geom, fr, ir)
	s.Scenario = "scenario.yaml"
	s.Outputs = []string{"received.wav"}

	path := filepath.Join(t.TempDir(), "summary.json")
	require.NoError(s.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(err)

	var got SummaryJSON
	require.NoError(json.Unmarshal(data, &got))
	require.Equal(s, got)
}
