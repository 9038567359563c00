package channel

import (
	"math"
)

// Nominal sound speed in seawater, used when no profile is given.
const SPEED_OF_SOUND = 1500.0

const MS float64 = 1.0 / 1000.0

func toDB(amplitude float64) float64 {
	return 20 * math.Log10(amplitude)
}

func fromDB(db float64) float64 {
	return math.Pow(10, db/20)
}
