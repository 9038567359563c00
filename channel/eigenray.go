package channel

import (
	"math"
	"sort"
)

// Eigenray is one propagation path from the source to the receiver.
type Eigenray struct {
	// Total path length in meters, unfolded through the boundary images
	Length float64
	// Travel time in seconds
	Delay float64
	// Grazing angle at the boundaries, radians from horizontal
	Grazing float64
	// Number of surface and bottom reflections along the path
	SurfaceBounces int
	BottomBounces  int
	// Amplitude of the boundary reflection product, signed. Does not
	// include spreading or absorption, which depend on frequency.
	BoundaryGain float64
}

// GainDB returns the eigenray amplitude in dB at the given frequency,
// relative to the source level at 1 m: spherical spreading plus volume
// absorption plus the boundary reflection product.
func (r Eigenray) GainDB(env *Environment, freq float64) float64 {
	return toDB(math.Abs(r.BoundaryGain)/r.Length) - env.AbsorptionDB(freq, r.Length)
}

// EnergyOverWindow sums eigenray energy arriving within windowMS of the
// first arrival, measured in dB above the given floor. Used to compare the
// early energy of candidate geometries.
func EnergyOverWindow(env *Environment, rays []Eigenray, freq, windowMS, floor float64) float64 {
	if len(rays) == 0 {
		return 0
	}
	first := rays[0].Delay
	for _, r := range rays {
		if r.Delay < first {
			first = r.Delay
		}
	}
	total := 0.0
	for _, r := range rays {
		if (r.Delay-first)/MS < windowMS {
			total += math.Abs(floor - r.GainDB(env, freq))
		}
	}
	return total
}

// SortByDelay orders eigenrays from earliest to latest arrival.
func SortByDelay(rays []Eigenray) {
	sort.Slice(rays, func(i, j int) bool {
		return rays[i].Delay < rays[j].Delay
	})
}
