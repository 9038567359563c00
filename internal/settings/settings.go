// Package settings holds runtime configuration that is not part of a
// scenario: where the cache lives, how to reach an external propagation
// model, and how loud to log. Values come from KADLU_ECHO_* environment
// variables with sensible defaults.
package settings

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Settings holds process-level configuration
type Settings struct {
	// Directory for cached frequency responses
	CacheDir string
	// External propagation model command; empty selects the built-in
	// image-method engine
	EngineCmd []string
	// Log level: debug, info, warn, error
	LogLevel string
}

// Load reads settings from the environment.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetDefault("CACHE_DIR", filepath.Join(".", ".kadlu-echo", "cache"))
	v.SetDefault("ENGINE_CMD", "")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetEnvPrefix("KADLU_ECHO")
	v.AutomaticEnv()
	v.BindEnv("CACHE_DIR")
	v.BindEnv("ENGINE_CMD")
	v.BindEnv("LOG_LEVEL")

	s := &Settings{
		CacheDir: v.GetString("CACHE_DIR"),
		LogLevel: v.GetString("LOG_LEVEL"),
	}
	if cmd := strings.TrimSpace(v.GetString("ENGINE_CMD")); cmd != "" {
		s.EngineCmd = strings.Fields(cmd)
	}
	return s, nil
}
