package channel

import (
	"context"
	"fmt"
	"math"
	"math/cmplx"
)

// TraceParams contains parameters to guide the eigenray search
type TraceParams struct {
	// Maximum number of boundary reflection pairs to unfold
	Order int
	// Drop eigenrays this many dB below the direct path
	GainThreshold float64
	// Drop eigenrays arriving later than this many seconds after the direct path
	TimeThreshold float64
}

// ImageEngine models the water column as an isovelocity waveguide between a
// pressure-release surface and a fluid seabed, and finds eigenrays by the
// method of images. It stands in for a full propagation code when one is
// not available, and is exact for the ideal waveguide.
type ImageEngine struct {
	Params TraceParams
}

func NewImageEngine(params TraceParams) *ImageEngine {
	if params.Order <= 0 {
		params.Order = 20
	}
	if params.GainThreshold == 0 {
		params.GainThreshold = -60
	}
	if params.TimeThreshold == 0 {
		params.TimeThreshold = 2.0
	}
	return &ImageEngine{Params: params}
}

// Eigenrays unfolds the boundary images up to the configured order and
// returns every path from the source to the receiver that survives the
// gain and delay thresholds, earliest first.
func (e *ImageEngine) Eigenrays(env *Environment, geom Geometry) ([]Eigenray, error) {
	if env.Depth <= 0 {
		return nil, fmt.Errorf("channel: water depth must be positive, got %v", env.Depth)
	}
	zs, zr := geom.SourceDepth(), geom.ReceiverDepth()
	if zs < 0 || zs > env.Depth || zr < 0 || zr > env.Depth {
		return nil, fmt.Errorf("channel: source/receiver depths %v/%v outside water column of depth %v", zs, zr, env.Depth)
	}

	c := env.MeanSoundSpeed()
	r := geom.Range()
	d := env.Depth

	direct := math.Sqrt(r*r + (zr-zs)*(zr-zs))
	if direct == 0 {
		return nil, fmt.Errorf("channel: source and receiver are co-located")
	}
	directDelay := direct / c

	var rays []Eigenray
	add := func(dz float64, surf, bot int) {
		length := math.Sqrt(r*r + dz*dz)
		delay := length / c
		if delay-directDelay > e.Params.TimeThreshold {
			return
		}
		grazing := math.Atan2(math.Abs(dz), r)
		gain := 1.0
		for i := 0; i < bot; i++ {
			gain *= env.BottomReflection(grazing)
		}
		if surf%2 == 1 {
			gain = -gain
		}
		// Boundary loss plus spreading, relative to the direct path
		relDB := toDB(math.Abs(gain)/length) - toDB(1/direct)
		if relDB < e.Params.GainThreshold {
			return
		}
		rays = append(rays, Eigenray{
			Length:         length,
			Delay:          delay,
			Grazing:        grazing,
			SurfaceBounces: surf,
			BottomBounces:  bot,
			BoundaryGain:   gain,
		})
	}

	for m := 0; m <= e.Params.Order; m++ {
		dm := 2 * d * float64(m)
		add(dm+(zr-zs), m, m)
		add(dm+(zr+zs), m+1, m)
		add(2*d*float64(m+1)-(zr+zs), m, m+1)
		add(2*d*float64(m+1)-(zr-zs), m+1, m+1)
	}

	SortByDelay(rays)
	return rays, nil
}

// Compute sums the eigenrays coherently at each requested frequency.
func (e *ImageEngine) Compute(ctx context.Context, env *Environment, geom Geometry, freqs []float64) (*FrequencyResponse, error) {
	rays, err := e.Eigenrays(env, geom)
	if err != nil {
		return nil, err
	}
	if len(rays) == 0 {
		return nil, fmt.Errorf("channel: no eigenrays within thresholds")
	}

	c := env.MeanSoundSpeed()
	fr := NewFrequencyResponse(freqs)
	for i, f := range freqs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var h complex128
		for _, ray := range rays {
			amp := math.Abs(ray.BoundaryGain)
			if ray.SurfaceBounces > 0 && env.WindSpeed > 0 {
				// Roughness scattering loss per surface bounce; the
				// phase flips are already folded into BoundaryGain.
				rough := math.Abs(env.SurfaceReflection(f, ray.Grazing))
				amp *= math.Pow(rough, float64(ray.SurfaceBounces))
			}
			amp /= ray.Length
			amp *= fromDB(-env.AbsorptionDB(f, ray.Length))
			if ray.BoundaryGain < 0 {
				amp = -amp
			}
			h += cmplx.Rect(amp, -2*math.Pi*f*ray.Length/c)
		}
		fr.SetAt(i, h)
	}
	if err := fr.Validate(); err != nil {
		return nil, err
	}
	return fr, nil
}
