package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meridian-analytics/kadlu-echo/channel"
)

func testScenario() (*channel.Environment, map[float64]float64, channel.Geometry, []float64) {
	env := &channel.Environment{
		Depth:   100,
		Density: 1025,
		Bottom:  channel.Bottom{SoundSpeed: 1700, Density: 1800},
	}
	profile := map[float64]float64{0: 1520, 100: 1500}
	env.SetSoundSpeedProfile(profile)
	geom := channel.Geometry{
		Source:   channel.V(0, 0, 30),
		Receiver: channel.V(1000, 0, 60),
	}
	freqs := []float64{100, 200, 300}
	return env, profile, geom, freqs
}

func testResponse() *channel.FrequencyResponse {
	fr := channel.NewFrequencyResponse([]float64{100, 200, 300})
	fr.MagnitudeDB = []float64{-40, -42, -45}
	fr.PhaseRad = []float64{0.1, -0.2, 0.3}
	return fr
}

func TestKeyStability(t *testing.T) {
	env, profile, geom, freqs := testScenario()

	k1 := Key(env, profile, geom, freqs)
	k2 := Key(env, profile, geom, freqs)
	assert.Equal(t, k1, k2, "same scenario yields the same key")
	assert.Len(t, k1, 64)

	// Any input change moves the key
	geom2 := geom
	geom2.Receiver = channel.V(1001, 0, 60)
	assert.NotEqual(t, k1, Key(env, profile, geom2, freqs))

	env2 := *env
	env2.WindSpeed = 10
	assert.NotEqual(t, k1, Key(&env2, profile, geom, freqs))

	assert.NotEqual(t, k1, Key(env, profile, geom, []float64{100, 200}))

	profile2 := map[float64]float64{0: 1520, 100: 1501}
	assert.NotEqual(t, k1, Key(env, profile2, geom, freqs))
}

func TestGetPutRoundTrip(t *testing.T) {
	require := require.New(t)

	c, err := Open(t.TempDir())
	require.NoError(err)

	env, profile, geom, freqs := testScenario()
	key := Key(env, profile, geom, freqs)

	_, ok := c.Get(key)
	require.False(ok, "empty cache misses")

	fr := testResponse()
	require.NoError(c.Put(key, fr))

	got, ok := c.Get(key)
	require.True(ok)
	require.Equal(fr.Freqs, got.Freqs)
	require.Equal(fr.MagnitudeDB, got.MagnitudeDB)
	require.Equal(fr.PhaseRad, got.PhaseRad)
}

func TestCorruptEntryIsDropped(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	c, err := Open(dir)
	require.NoError(err)

	env, profile, geom, freqs := testScenario()
	key := Key(env, profile, geom, freqs)
	require.NoError(os.WriteFile(filepath.Join(dir, key+".gob"), []byte("not gob"), 0644))

	_, ok := c.Get(key)
	require.False(ok)
	_, err = os.Stat(filepath.Join(dir, key+".gob"))
	require.True(os.IsNotExist(err), "corrupt entry removed")
}

func TestClear(t *testing.T) {
	require := require.New(t)

	dir := t.TempDir()
	c, err := Open(dir)
	require.NoError(err)

	env, profile, geom, freqs := testScenario()
	key := Key(env, profile, geom, freqs)
	require.NoError(c.Put(key, testResponse()))
	require.NoError(c.Clear())

	_, ok := c.Get(key)
	require.False(ok)
}

func TestPutRejectsInvalid(t *testing.T) {
	c, err := Open(t.TempDir())
	require.NoError(t, err)
	assert.Error(t, c.Put("somekey", &channel.FrequencyResponse{}))
}
