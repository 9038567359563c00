package channel

import (
	"math"
	"sort"

	lin "github.com/sgreben/piecewiselinear"
)

// Bottom describes the seabed half-space as a fluid with constant properties.
type Bottom struct {
	// Compressional sound speed in m/s
	SoundSpeed float64
	// Density in kg/m^3
	Density float64
}

// Environment describes the water column between the surface and the seabed.
type Environment struct {
	// Water depth in meters
	Depth float64
	// Water density in kg/m^3
	Density float64
	// Surface wind speed in m/s, used for the rough-surface reflection loss
	WindSpeed float64
	// Salinity in parts per thousand and temperature in degrees C, used by
	// the volume absorption model
	Salinity    float64
	Temperature float64

	Bottom Bottom

	ssp sspProfile
}

type sspProfile struct {
	f  lin.Function
	ok bool
}

// SetSoundSpeedProfile installs a depth-to-speed profile, given as a map of
// depth in meters to sound speed in m/s. Speeds between the given depths are
// interpolated linearly; depths outside the profile clamp to the endpoints.
func (e *Environment) SetSoundSpeedProfile(profile map[float64]float64) {
	depths := make([]float64, 0, len(profile))
	for d := range profile {
		depths = append(depths, d)
	}
	sort.Float64s(depths)
	speeds := make([]float64, len(depths))
	for i, d := range depths {
		speeds[i] = profile[d]
	}
	e.ssp = sspProfile{
		f:  lin.Function{X: depths, Y: speeds},
		ok: len(depths) > 0,
	}
}

// SoundSpeedProfile returns the installed profile as (depth, speed) pairs
// sorted by depth, or nil when no profile is set.
func (e *Environment) SoundSpeedProfile() [][2]float64 {
	if !e.ssp.ok {
		return nil
	}
	pairs := make([][2]float64, len(e.ssp.f.X))
	for i, d := range e.ssp.f.X {
		pairs[i] = [2]float64{d, e.ssp.f.Y[i]}
	}
	return pairs
}

// SoundSpeedAt returns the sound speed at the given depth in m/s.
func (e *Environment) SoundSpeedAt(depth float64) float64 {
	if !e.ssp.ok {
		return SPEED_OF_SOUND
	}
	return e.ssp.f.At(depth)
}

// MeanSoundSpeed returns the depth-averaged sound speed over the water
// column. The image-method eigenray model treats the column as isovelocity
// at this speed.
func (e *Environment) MeanSoundSpeed() float64 {
	if !e.ssp.ok || e.Depth <= 0 {
		return SPEED_OF_SOUND
	}
	const steps = 64
	sum := 0.0
	for i := 0; i <= steps; i++ {
		sum += e.ssp.f.At(e.Depth * float64(i) / steps)
	}
	return sum / (steps + 1)
}

// AbsorptionDB returns the volume absorption in dB accumulated over dist
// meters at the given frequency in Hz, using Thorp's formula.
func (e *Environment) AbsorptionDB(freq, dist float64) float64 {
	fkhz := freq / 1000
	f2 := fkhz * fkhz
	perKM := 0.11*f2/(1+f2) + 44*f2/(4100+f2) + 2.75e-4*f2 + 0.003
	return perKM * dist / 1000
}

// SurfaceReflection returns the (negative) pressure reflection coefficient
// of the sea surface at the given frequency and grazing angle in radians.
// A flat surface is a perfect mirror with a phase flip; wind roughness
// scatters energy out of the specular path.
func (e *Environment) SurfaceReflection(freq, grazing float64) float64 {
	if e.WindSpeed <= 0 {
		return -1
	}
	// Significant wave height from wind speed (fully developed sea)
	swh := 0.0246 * e.WindSpeed * e.WindSpeed
	k := 2 * math.Pi * freq / e.SoundSpeedAt(0)
	// Eckart coherent loss for a Gaussian rough surface
	arg := k * (swh / 4) * math.Sin(grazing)
	return -math.Exp(-2 * arg * arg)
}

// BottomReflection returns the Rayleigh pressure reflection coefficient
// of the seabed at the given grazing angle in radians.
func (e *Environment) BottomReflection(grazing float64) float64 {
	c1 := e.MeanSoundSpeed()
	rho1 := e.Density
	if rho1 <= 0 {
		rho1 = 1025
	}
	c2 := e.Bottom.SoundSpeed
	rho2 := e.Bottom.Density
	if c2 <= 0 || rho2 <= 0 {
		// No bottom specified: treat as rigid
		return 1
	}

	if grazing < 1e-9 {
		if c2 > c1 {
			return 1
		}
		return -1
	}

	// Snell's law across the interface; beyond the critical angle the
	// transmitted wave is evanescent and reflection is total.
	cosT := math.Cos(grazing) * c2 / c1
	if cosT >= 1 {
		return 1
	}
	sinT := math.Sqrt(1 - cosT*cosT)

	z1 := rho1 * c1 / math.Sin(grazing)
	z2 := rho2 * c2 / sinT
	return (z2 - z1) / (z2 + z1)
}
