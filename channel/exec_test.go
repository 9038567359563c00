package channel

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStubModel(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub model uses a shell script")
	}
	path := filepath.Join(t.TempDir(), "model.sh")
	script := "#!/bin/sh\n" + body + "\n"
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestExecEngineCompute(t *testing.T) {
	require := require.New(t)

	// Adapter echoes a fixed two-point response, ignoring its stdin
	stub := writeStubModel(t, `cat > /dev/null
echo '{"frequencies":[100,200],"magnitude_db":[-40,-46],"phase_rad":[0,1.5]}'`)

	env := &Environment{Depth: 100}
	geom := Geometry{Source: V(0, 0, 10), Receiver: V(500, 0, 20)}

	engine := NewExecEngine(stub)
	resp, err := engine.Compute(context.Background(), env, geom, []float64{100, 200})
	require.NoError(err)

	require.Equal([]float64{100, 200}, resp.Freqs)
	require.Equal([]float64{-40, -46}, resp.MagnitudeDB)
	require.Equal([]float64{0, 1.5}, resp.PhaseRad)
}

func TestExecEngineSendsSoundSpeedProfile(t *testing.T) {
	require := require.New(t)

	capture := filepath.Join(t.TempDir(), "scenario.json")
	stub := writeStubModel(t, `cat > `+capture+`
echo '{"frequencies":[100,200],"magnitude_db":[-40,-46],"phase_rad":[0,0]}'`)

	env := &Environment{Depth: 100, WindSpeed: 3}
	env.SetSoundSpeedProfile(map[float64]float64{100: 1480, 0: 1540})
	geom := Geometry{Source: V(0, 0, 10), Receiver: V(500, 0, 20)}

	_, err := NewExecEngine(stub).Compute(context.Background(), env, geom, []float64{100, 200})
	require.NoError(err)

	data, err := os.ReadFile(capture)
	require.NoError(err)

	var got struct {
		Depth             float64      `json:"depth"`
		WindSpeed         float64      `json:"wind_speed"`
		SoundSpeedProfile [][2]float64 `json:"sound_speed_profile"`
		Range             float64      `json:"range"`
	}
	require.NoError(json.Unmarshal(data, &got))

	require.Equal(100.0, got.Depth)
	require.Equal(3.0, got.WindSpeed)
	require.Equal(500.0, got.Range)
	require.Equal([][2]float64{{0, 1540}, {100, 1480}}, got.SoundSpeedProfile)
}

func TestExecEngineFallsBackToRequestedGrid(t *testing.T) {
	stub := writeStubModel(t, `cat > /dev/null
echo '{"magnitude_db":[-40,-46,-50],"phase_rad":[0,0,0]}'`)

	env := &Environment{Depth: 100}
	geom := Geometry{Source: V(0, 0, 10), Receiver: V(500, 0, 20)}

	freqs := []float64{100, 200, 300}
	resp, err := NewExecEngine(stub).Compute(context.Background(), env, geom, freqs)
	require.NoError(t, err)
	assert.Equal(t, freqs, resp.Freqs)
}

func TestExecEngineErrors(t *testing.T) {
	env := &Environment{Depth: 100}
	geom := Geometry{Source: V(0, 0, 10), Receiver: V(500, 0, 20)}
	freqs := []float64{100, 200}

	t.Run("nonzero exit", func(t *testing.T) {
		stub := writeStubModel(t, `echo "no such model" >&2
exit 3`)
		_, err := NewExecEngine(stub).Compute(context.Background(), env, geom, freqs)
		assert.ErrorContains(t, err, "no such model")
	})

	t.Run("error field set", func(t *testing.T) {
		stub := writeStubModel(t, `cat > /dev/null
echo '{"error":"frequency out of range"}'`)
		_, err := NewExecEngine(stub).Compute(context.Background(), env, geom, freqs)
		assert.ErrorContains(t, err, "frequency out of range")
	})

	t.Run("garbage output", func(t *testing.T) {
		stub := writeStubModel(t, `cat > /dev/null
echo 'not json'`)
		_, err := NewExecEngine(stub).Compute(context.Background(), env, geom, freqs)
		assert.Error(t, err)
	})

	t.Run("shape mismatch", func(t *testing.T) {
		stub := writeStubModel(t, `cat > /dev/null
echo '{"frequencies":[100,200],"magnitude_db":[-40],"phase_rad":[0,0]}'`)
		_, err := NewExecEngine(stub).Compute(context.Background(), env, geom, freqs)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	})
}
