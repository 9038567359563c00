package experiment

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	RunsDir       = "runs"
	LatestSymlink = "latest"
)

type RunDir struct {
	Path      string    // Absolute path to run directory
	ID        string    // Unique run identifier
	Timestamp time.Time // When the run was created
}

// CreateRunDirectory creates a new run directory and returns its path
func CreateRunDirectory() (*RunDir, error) {
	if err := os.MkdirAll(RunsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating runs directory: %w", err)
	}

	id := GenerateRunID()

	absPath, err := filepath.Abs(filepath.Join(RunsDir, id))
	if err != nil {
		return nil, fmt.Errorf("getting absolute path: %w", err)
	}

	if err := os.Mkdir(absPath, 0755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}

	// Point the latest symlink at this run
	latestPath := filepath.Join(RunsDir, LatestSymlink)
	_ = os.Remove(latestPath)
	if err := os.Symlink(id, latestPath); err != nil {
		// Don't fail the run over a missing convenience link
		log.Warn().Err(err).Msg("failed to create latest symlink")
	}

	return &RunDir{
		Path:      absPath,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}, nil
}

// GetFilePath returns the absolute path for a file in the run directory
func (r *RunDir) GetFilePath(filename string) string {
	return filepath.Join(r.Path, filename)
}

// CopyConfigFile copies the provided scenario file to the run directory
func (r *RunDir) CopyConfigFile(srcPath string) error {
	filename := filepath.Base(srcPath)

	content, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	destPath := r.GetFilePath(filename)
	if err := os.WriteFile(destPath, content, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
