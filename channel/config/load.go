package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadOptions configures the behavior of config loading
type LoadOptions struct {
	ValidateImmediately bool
	ResolvePaths        bool
	MergeFiles          bool
}

// LoadFromFile loads a ScenarioConfig from a YAML file
func LoadFromFile(path string, opts LoadOptions) (*ScenarioConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	config := &ScenarioConfig{}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if opts.ResolvePaths {
		baseDir := filepath.Dir(path)
		resolver := NewPathResolver(baseDir)
		config.ResolvePaths(resolver)
	}

	if opts.MergeFiles {
		if err := config.LoadAndMerge(); err != nil {
			return nil, fmt.Errorf("merging external files: %w", err)
		}
	}

	if opts.ValidateImmediately {
		if errs := config.Validate(); len(errs) > 0 {
			return nil, fmt.Errorf("validation errors: %v", errs)
		}
	}

	return config, nil
}

// SaveToFile saves a ScenarioConfig to a YAML file, stamping the run
// metadata first.
func SaveToFile(config *ScenarioConfig, path string) error {
	NewMetadataCollector().PopulateMetadata(config)

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// ResolvePaths resolves all relative paths in the config to absolute paths
func (c *ScenarioConfig) ResolvePaths(resolver *PathResolver) {
	if c.Signal.Wav.Path != "" {
		c.Signal.Wav.Path = resolver.ResolvePath(c.Signal.Wav.Path)
	}
	if c.Environment.SoundSpeedProfile.FromFile != "" {
		c.Environment.SoundSpeedProfile.FromFile = resolver.ResolvePath(c.Environment.SoundSpeedProfile.FromFile)
	}
}
