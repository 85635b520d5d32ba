package combat

import (
	"github.com/jakecoffman/cp"
)

// SpatialQuery answers movement-validity questions against the static
// environment. The arena is the collision authority; the combat core never
// inspects tiles directly.
type SpatialQuery interface {
	// CanMoveTo reports whether a w x h rectangle centered on (x, y) lies
	// fully inside the arena and overlaps no blocking tile.
	CanMoveTo(x, y, w, h float64) bool
}

// Body is the kinetic state shared by enemies and projectiles: a center
// position, half extents, and a liveness flag. Active is one-way: once an
// entity goes inactive it stays inactive until its owner prunes it.
type Body struct {
	Pos    cp.Vector
	HalfW  float64
	HalfH  float64
	Active bool
}

// Bounds returns the axis-aligned box centered on the body's position.
func (b *Body) Bounds() cp.BB {
	return cp.NewBBForExtents(b.Pos, b.HalfW, b.HalfH)
}

// Deactivate marks the body for removal on the owner's next prune pass.
func (b *Body) Deactivate() {
	b.Active = false
}
