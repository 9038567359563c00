package config

import (
	"os/exec"
	"strings"
	"time"
)

// MetadataCollector handles collecting metadata for simulation runs
type MetadataCollector struct {
	timestamp time.Time
	gitCommit string
}

// NewMetadataCollector creates a new MetadataCollector with the current
// timestamp. The git commit is left empty when the scenario is run outside
// a git checkout.
func NewMetadataCollector() *MetadataCollector {
	return &MetadataCollector{
		timestamp: time.Now().UTC(),
		gitCommit: getCurrentGitCommit(),
	}
}

func getCurrentGitCommit() string {
	cmd := exec.Command("git", "rev-parse", "HEAD")
	out, err := cmd.Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// PopulateMetadata fills in the metadata fields of the config
func (mc *MetadataCollector) PopulateMetadata(config *ScenarioConfig) {
	config.Metadata.Timestamp = mc.timestamp.Format("2006-01-02 15:04:05")
	config.Metadata.GitCommit = mc.gitCommit
}
