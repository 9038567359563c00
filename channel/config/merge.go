package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// MergeProfile merges a sound speed profile from a file with inline values.
// The file holds a JSON object of depth (meters) to speed (m/s).
func (p *SoundSpeedProfile) MergeProfile() error {
	if p.FromFile == "" {
		return nil
	}

	data, err := os.ReadFile(p.FromFile)
	if err != nil {
		return fmt.Errorf("reading sound speed profile file: %w", err)
	}

	// JSON object keys are strings; parse the depths ourselves
	var fileProfile map[string]float64
	if err := json.Unmarshal(data, &fileProfile); err != nil {
		return fmt.Errorf("parsing sound speed profile file: %w", err)
	}

	if p.Inline == nil {
		p.Inline = make(map[float64]float64)
	}

	// Merge values, with inline taking precedence
	for key, speed := range fileProfile {
		depth, err := strconv.ParseFloat(key, 64)
		if err != nil {
			return fmt.Errorf("parsing profile depth %q: %w", key, err)
		}
		if _, exists := p.Inline[depth]; !exists {
			p.Inline[depth] = speed
		}
	}

	return nil
}

// LoadAndMerge loads all external files and merges their contents
func (c *ScenarioConfig) LoadAndMerge() error {
	if err := c.Environment.SoundSpeedProfile.MergeProfile(); err != nil {
		return fmt.Errorf("merging sound speed profile: %w", err)
	}
	return nil
}
