package combat

import (
	"math/rand"

	"github.com/jakecoffman/cp"
)

// queryFunc adapts a plain function to the SpatialQuery interface.
type queryFunc func(x, y, w, h float64) bool

func (f queryFunc) CanMoveTo(x, y, w, h float64) bool { return f(x, y, w, h) }

// openWorld accepts every move, closedWorld rejects every move.
var (
	openWorld   = queryFunc(func(x, y, w, h float64) bool { return true })
	closedWorld = queryFunc(func(x, y, w, h float64) bool { return false })
)

// testRNG returns a seeded RNG so spawn placement and AI jitter are
// reproducible across runs.
func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(12345))
}

func testClass() Class {
	return Class{
		Name:       "walker",
		Speed:      100,
		Health:     40,
		HalfExtent: 12,
		Weight:     1,
	}
}

// fixedOwner is a stationary weapon owner.
type fixedOwner struct {
	pos cp.Vector
}

func (o *fixedOwner) Position() cp.Vector { return o.pos }
