package channel

import (
	"context"
)

// Engine computes the channel transfer function between a source and a
// receiver over a set of frequencies. Implementations wrap either the
// built-in image-method model or an external propagation code.
type Engine interface {
	Compute(ctx context.Context, env *Environment, geom Geometry, freqs []float64) (*FrequencyResponse, error)
}
