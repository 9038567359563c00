// Package cache stores computed frequency responses on disk so repeated
// runs over the same scenario skip the propagation model entirely.
package cache

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/meridian-analytics/kadlu-echo/channel"
)

// Cache is a directory of gob-encoded frequency responses keyed by a
// digest of the scenario that produced them.
type Cache struct {
	dir string
}

// Open ensures the cache directory exists and returns a handle to it.
func Open(dir string) (*Cache, error) {
	if dir == "" {
		return nil, fmt.Errorf("cache: empty directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}
	return &Cache{dir: dir}, nil
}

type keyScenario struct {
	Depth         float64
	Density       float64
	WindSpeed     float64
	Salinity      float64
	Temperature   float64
	Profile       [][2]float64
	BottomSpeed   float64
	BottomDensity float64
	SourceDepth   float64
	ReceiverDepth float64
	Range         float64
	Freqs         []float64
}

// Key derives the cache key for an environment, geometry, and frequency
// grid. The key covers every input the engines read, so two scenarios share
// a key only when they produce identical responses.
func Key(env *channel.Environment, profile map[float64]float64, geom channel.Geometry, freqs []float64) string {
	ks := keyScenario{
		Depth:         env.Depth,
		Density:       env.Density,
		WindSpeed:     env.WindSpeed,
		Salinity:      env.Salinity,
		Temperature:   env.Temperature,
		BottomSpeed:   env.Bottom.SoundSpeed,
		BottomDensity: env.Bottom.Density,
		SourceDepth:   geom.SourceDepth(),
		ReceiverDepth: geom.ReceiverDepth(),
		Range:         geom.Range(),
		Freqs:         freqs,
	}
	for depth, speed := range profile {
		ks.Profile = append(ks.Profile, [2]float64{depth, speed})
	}
	sortPairs(ks.Profile)

	// Struct field order is fixed, so the JSON encoding is canonical
	data, err := json.Marshal(ks)
	if err != nil {
		panic(fmt.Sprintf("cache: encoding key scenario: %v", err))
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func sortPairs(pairs [][2]float64) {
	for i := 1; i < len(pairs); i++ {
		for j := i; j > 0 && pairs[j][0] < pairs[j-1][0]; j-- {
			pairs[j], pairs[j-1] = pairs[j-1], pairs[j]
		}
	}
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+".gob")
}

// Get returns the cached response for key, or ok=false on a miss. A
// corrupt entry is treated as a miss and removed.
func (c *Cache) Get(key string) (*channel.FrequencyResponse, bool) {
	f, err := os.Open(c.path(key))
	if err != nil {
		log.Debug().Str("key", key).Msg("cache miss")
		return nil, false
	}
	defer f.Close()

	var fr channel.FrequencyResponse
	if err := gob.NewDecoder(f).Decode(&fr); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("dropping corrupt cache entry")
		_ = os.Remove(c.path(key))
		return nil, false
	}
	if err := fr.Validate(); err != nil {
		log.Warn().Str("key", key).Err(err).Msg("dropping invalid cache entry")
		_ = os.Remove(c.path(key))
		return nil, false
	}
	log.Debug().Str("key", key).Msg("cache hit")
	return &fr, true
}

// Put stores a response under key, replacing any previous entry. The entry
// is written to a temp file first so readers never see a partial entry.
func (c *Cache) Put(key string, fr *channel.FrequencyResponse) error {
	if err := fr.Validate(); err != nil {
		return fmt.Errorf("cache: refusing to store invalid response: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, "entry-*")
	if err != nil {
		return fmt.Errorf("creating cache entry: %w", err)
	}
	if err := gob.NewEncoder(tmp).Encode(fr); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("committing cache entry: %w", err)
	}
	return nil
}

// Clear removes every entry in the cache.
func (c *Cache) Clear() error {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("listing cache directory: %w", err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) != ".gob" {
			continue
		}
		if err := os.Remove(filepath.Join(c.dir, e.Name())); err != nil {
			return fmt.Errorf("removing cache entry: %w", err)
		}
	}
	return nil
}
