package channel

import (
	"encoding/json"
	"fmt"
	"os"
)

// JSON schema types for the run summary
type EigenrayJSON struct {
	DelayMS        float64 `json:"delayMs"`
	GainDB         float64 `json:"gainDb"`
	Length         float64 `json:"length"`
	SurfaceBounces int     `json:"surfaceBounces"`
	BottomBounces  int     `json:"bottomBounces"`
}

type SummaryJSON struct {
	Scenario      string         `json:"scenario,omitempty"`
	EngineName    string         `json:"engine"`
	CacheHit      bool           `json:"cacheHit"`
	RangeM        float64        `json:"rangeM"`
	SlantRangeM   float64        `json:"slantRangeM"`
	SourceDepthM  float64        `json:"sourceDepthM"`
	ReceiverDepth float64        `json:"receiverDepthM"`
	MeanTLdB      float64        `json:"meanTransmissionLossDb"`
	PeakDelayMS   float64        `json:"peakDelayMs"`
	EarlyEnergy   float64        `json:"earlyEnergy,omitempty"`
	Eigenrays     []EigenrayJSON `json:"eigenrays,omitempty"`
	Outputs       []string       `json:"outputs,omitempty"`
}

// Early-energy figure of merit: eigenray energy arriving within this window
// of the first arrival, measured above this floor.
const (
	earlyWindowMS = 50.0
	energyFloorDB = -120.0
)

// NewSummary collects the headline numbers of a simulation run.
func NewSummary(engineName string, geom Geometry, fr *FrequencyResponse, ir *ImpulseResponse) SummaryJSON {
	meanTL := 0.0
	for i := range fr.Freqs {
		meanTL += fr.TransmissionLossDB(i)
	}
	meanTL /= float64(len(fr.Freqs))

	return SummaryJSON{
		EngineName:    engineName,
		RangeM:        geom.Range(),
		SlantRangeM:   geom.SlantRange(),
		SourceDepthM:  geom.SourceDepth(),
		ReceiverDepth: geom.ReceiverDepth(),
		MeanTLdB:      meanTL,
		PeakDelayMS:   ir.PeakDelay() / MS,
	}
}

// AddEigenrays attaches the per-path breakdown and the early-energy figure,
// with gains evaluated at the given frequency.
func (s *SummaryJSON) AddEigenrays(env *Environment, rays []Eigenray, freq float64) {
	s.EarlyEnergy = EnergyOverWindow(env, rays, freq, earlyWindowMS, energyFloorDB)
	for _, r := range rays {
		s.Eigenrays = append(s.Eigenrays, EigenrayJSON{
			DelayMS:        r.Delay / MS,
			GainDB:         r.GainDB(env, freq),
			Length:         r.Length,
			SurfaceBounces: r.SurfaceBounces,
			BottomBounces:  r.BottomBounces,
		})
	}
}

// Save writes the summary as indented JSON.
func (s SummaryJSON) Save(path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling summary: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
