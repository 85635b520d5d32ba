package combat

import (
	"math"
	"sort"

	"github.com/jakecoffman/cp"
)

// Pattern selects how the weapon turns the live enemy set into a batch of
// fire directions. The set is closed; dispatch happens in Directions.
type Pattern int

const (
	PatternNearest Pattern = iota
	PatternSpread
	PatternSpiral
	PatternRotating
)

// patternCycle is the upgrade order. Advancing past the end wraps.
var patternCycle = [...]Pattern{PatternNearest, PatternSpread, PatternSpiral, PatternRotating}

func (p Pattern) String() string {
	switch p {
	case PatternNearest:
		return "nearest"
	case PatternSpread:
		return "spread"
	case PatternSpiral:
		return "spiral"
	case PatternRotating:
		return "rotating"
	}
	return "nearest"
}

// ParsePattern maps a spec tag to a Pattern. Unknown tags fall back to
// nearest, mirroring fire-time dispatch.
func ParsePattern(tag string) Pattern {
	for _, p := range patternCycle {
		if p.String() == tag {
			return p
		}
	}
	return PatternNearest
}

// Next returns the pattern that follows p in the upgrade cycle.
func (p Pattern) Next() Pattern {
	for i, c := range patternCycle {
		if c == p {
			return patternCycle[(i+1)%len(patternCycle)]
		}
	}
	return PatternNearest
}

// spiralStep is the fixed angular gap between spiral shots, in radians.
const spiralStep = 60 * math.Pi / 180

// Directions generates the fire direction batch for one trigger pull. Every
// returned vector is unit length. The pattern algorithms are pure: the same
// inputs always produce the same batch.
func Directions(p Pattern, owner cp.Vector, rotationDeg float64, n int, spreadDeg, autoRange float64, enemies []*Enemy) []cp.Vector {
	if n <= 0 {
		return nil
	}
	switch p {
	case PatternSpread:
		return spreadDirections(owner, rotationDeg, n, spreadDeg, enemies)
	case PatternSpiral:
		return spiralDirections(rotationDeg, n)
	case PatternRotating:
		return rotatingDirections(rotationDeg, n)
	default:
		return nearestDirections(owner, rotationDeg, n, spreadDeg, autoRange, enemies)
	}
}

// nearestDirections aims one shot at each of the n closest in-range enemies.
// With nothing in range it degrades to the spread pattern over an empty enemy
// set, which keeps the weapon visibly firing while idle.
func nearestDirections(owner cp.Vector, rotationDeg float64, n int, spreadDeg, autoRange float64, enemies []*Enemy) []cp.Vector {
	targets := nearestEnemies(owner, enemies, n, autoRange)
	if len(targets) == 0 {
		return spreadDirections(owner, rotationDeg, n, spreadDeg, nil)
	}

	dirs := make([]cp.Vector, 0, len(targets))
	for _, t := range targets {
		to := t.Pos.Sub(owner)
		d := to.Length()
		if d == 0 {
			// Owner exactly on top of the target: no usable bearing.
			continue
		}
		dirs = append(dirs, to.Mult(1/d))
	}
	return dirs
}

// spreadDirections emits n directions evenly spaced by spreadDeg, centered on
// the base angle: the bearing to the nearest supplied enemy, or the weapon's
// rotation when the enemy set is empty so the idle fan sweeps.
func spreadDirections(owner cp.Vector, rotationDeg float64, n int, spreadDeg float64, enemies []*Enemy) []cp.Vector {
	base := rotationDeg * math.Pi / 180
	if t := nearestEnemy(owner, enemies); t != nil {
		to := t.Pos.Sub(owner)
		if to.Length() > 0 {
			base = to.ToAngle()
		}
	}

	step := spreadDeg * math.Pi / 180
	start := base - step*float64(n-1)/2
	dirs := make([]cp.Vector, 0, n)
	for i := 0; i < n; i++ {
		dirs = append(dirs, cp.ForAngle(start+step*float64(i)))
	}
	return dirs
}

// spiralDirections ignores the spread angle entirely: shots step around the
// circle at a fixed 60 degrees from the current rotation.
func spiralDirections(rotationDeg float64, n int) []cp.Vector {
	base := rotationDeg * math.Pi / 180
	dirs := make([]cp.Vector, 0, n)
	for i := 0; i < n; i++ {
		dirs = append(dirs, cp.ForAngle(base+spiralStep*float64(i)))
	}
	return dirs
}

// rotatingDirections distributes n shots evenly over the full circle, offset
// by the current rotation.
func rotatingDirections(rotationDeg float64, n int) []cp.Vector {
	base := rotationDeg * math.Pi / 180
	step := 2 * math.Pi / float64(n)
	dirs := make([]cp.Vector, 0, n)
	for i := 0; i < n; i++ {
		dirs = append(dirs, cp.ForAngle(base+step*float64(i)))
	}
	return dirs
}

// nearestEnemies returns up to n active enemies within maxRange of from,
// sorted ascending by distance. The stable sort keeps iteration order for
// exact ties.
func nearestEnemies(from cp.Vector, enemies []*Enemy, n int, maxRange float64) []*Enemy {
	inRange := make([]*Enemy, 0, len(enemies))
	for _, e := range enemies {
		if !e.Active {
			continue
		}
		if from.Distance(e.Pos) <= maxRange {
			inRange = append(inRange, e)
		}
	}

	sort.SliceStable(inRange, func(i, j int) bool {
		return from.Distance(inRange[i].Pos) < from.Distance(inRange[j].Pos)
	})

	if len(inRange) > n {
		inRange = inRange[:n]
	}
	return inRange
}
