package channel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSoundSpeedProfile(t *testing.T) {
	assert := assert.New(t)

	env := &Environment{Depth: 200}
	assert.Equal(SPEED_OF_SOUND, env.SoundSpeedAt(50), "no profile falls back to nominal speed")

	env.SetSoundSpeedProfile(map[float64]float64{
		0:   1520,
		100: 1500,
		200: 1510,
	})

	assert.InDelta(1520, env.SoundSpeedAt(0), 1e-9)
	assert.InDelta(1510, env.SoundSpeedAt(200), 1e-9)
	assert.InDelta(1510, env.SoundSpeedAt(50), 1e-9, "linear between 0 and 100 m")
	assert.InDelta(1520, env.SoundSpeedAt(-10), 1e-9, "clamps above the surface")
	assert.InDelta(1510, env.SoundSpeedAt(500), 1e-9, "clamps below the bottom")

	mean := env.MeanSoundSpeed()
	assert.Greater(mean, 1500.0)
	assert.Less(mean, 1520.0)
}

func TestAbsorptionIncreasesWithFrequency(t *testing.T) {
	env := &Environment{Depth: 100}
	low := env.AbsorptionDB(1_000, 10_000)
	high := env.AbsorptionDB(50_000, 10_000)
	if low <= 0 || high <= low {
		t.Fatalf("expected 0 < %v < %v", low, high)
	}

	// Thorp at 10 kHz is close to 1 dB/km
	perKM := env.AbsorptionDB(10_000, 1000)
	if perKM < 0.5 || perKM > 2 {
		t.Fatalf("10 kHz absorption %v dB/km outside plausible range", perKM)
	}
}

func TestSurfaceReflection(t *testing.T) {
	assert := assert.New(t)

	calm := &Environment{Depth: 100}
	assert.Equal(-1.0, calm.SurfaceReflection(10_000, 0.5), "calm surface is a perfect mirror")

	windy := &Environment{Depth: 100, WindSpeed: 5}
	r := windy.SurfaceReflection(1_000, 0.5)
	assert.Negative(r, "reflection keeps the phase flip")
	assert.Greater(r, -1.0, "roughness scatters energy out of the specular path")

	// Loss grows with frequency
	rLow := windy.SurfaceReflection(200, 0.5)
	assert.Less(rLow, r)
}

func TestBottomReflection(t *testing.T) {
	assert := assert.New(t)

	env := &Environment{
		Depth:   100,
		Density: 1025,
		Bottom:  Bottom{SoundSpeed: 1700, Density: 1800},
	}

	// Vertical incidence matches the impedance-mismatch formula
	z1 := 1025.0 * env.MeanSoundSpeed()
	z2 := 1800.0 * 1700.0
	want := (z2 - z1) / (z2 + z1)
	assert.InDelta(want, env.BottomReflection(math.Pi/2), 1e-9)

	// Below the critical grazing angle reflection is total
	assert.Equal(1.0, env.BottomReflection(0.01))

	// No bottom configured acts rigid
	rigid := &Environment{Depth: 100}
	assert.Equal(1.0, rigid.BottomReflection(0.5))
}
