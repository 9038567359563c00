package channel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnergyOverWindow(t *testing.T) {
	assert := assert.New(t)

	env := &Environment{Depth: 100}
	early := Eigenray{Length: 300, Delay: 0.200, BoundaryGain: 1}
	second := Eigenray{Length: 330, Delay: 0.220, BoundaryGain: -1, SurfaceBounces: 1}
	late := Eigenray{Length: 600, Delay: 0.400, BoundaryGain: 1, BottomBounces: 2}

	all := EnergyOverWindow(env, []Eigenray{early, second, late}, 1000, 50, -120)
	windowed := EnergyOverWindow(env, []Eigenray{early, second}, 1000, 50, -120)

	// The late arrival is outside the 50 ms window and contributes nothing
	assert.Equal(windowed, all)
	assert.Positive(all)

	// A wider window admits it
	wide := EnergyOverWindow(env, []Eigenray{early, second, late}, 1000, 300, -120)
	assert.Greater(wide, all)

	assert.Zero(EnergyOverWindow(env, nil, 1000, 50, -120))
}

func TestSortByDelay(t *testing.T) {
	rays := []Eigenray{{Delay: 0.3}, {Delay: 0.1}, {Delay: 0.2}}
	SortByDelay(rays)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, []float64{rays[0].Delay, rays[1].Delay, rays[2].Delay})
}
