package signal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSeriesRoundTrip(t *testing.T) {
	require := require.New(t)

	samples := []float64{0, 0.1, -0.5, 0.9, 0.2, -0.05}
	path := filepath.Join(t.TempDir(), "ir.txt")
	require.NoError(WriteTimeSeries(path, 1.0/48000, samples))

	interval, peak, got, err := ReadTimeSeries(path)
	require.NoError(err)
	assert.InDelta(t, 1.0/48000, interval, 1e-15)
	assert.Equal(t, 3, peak, "peak index points at the 0.9 sample")
	require.Len(got, len(samples))
	for i := range samples {
		assert.InDelta(t, samples[i], got[i], 1e-9)
	}
}

func TestReadTimeSeriesRejectsMalformed(t *testing.T) {
	dir := t.TempDir()

	noMarker := filepath.Join(dir, "nomarker.txt")
	require.NoError(t, os.WriteFile(noMarker, []byte("0.001 // Sample interval (seconds)\n1 // Peak index\n0.5\n"), 0644))
	_, _, _, err := ReadTimeSeries(noMarker)
	assert.Error(t, err)

	noMeta := filepath.Join(dir, "nometa.txt")
	require.NoError(t, os.WriteFile(noMeta, []byte("* Data start\n0.5\n"), 0644))
	_, _, _, err = ReadTimeSeries(noMeta)
	assert.Error(t, err)

	_, _, _, err = ReadTimeSeries(filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}
