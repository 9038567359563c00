package channel

import (
	"math"

	"github.com/fogleman/pt/pt"
)

// V is a shorthand constructor for pt.Vector
func V(X, Y, Z float64) pt.Vector {
	return pt.Vector{X: X, Y: Y, Z: Z}
}

// Geometry places the source and receiver in the water column.
// Z is depth in meters, positive downward from the surface.
type Geometry struct {
	Source   pt.Vector
	Receiver pt.Vector
}

// Range returns the horizontal source-receiver separation in meters.
func (g Geometry) Range() float64 {
	dx := g.Receiver.X - g.Source.X
	dy := g.Receiver.Y - g.Source.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// SlantRange returns the straight-line source-receiver distance in meters.
func (g Geometry) SlantRange() float64 {
	return g.Receiver.Sub(g.Source).Length()
}

func (g Geometry) SourceDepth() float64 {
	return g.Source.Z
}

func (g Geometry) ReceiverDepth() float64 {
	return g.Receiver.Z
}
