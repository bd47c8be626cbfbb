// Package physics models the bouncing bodies.
//
// A [Body] is a circle with a position, velocity, radius and color. Each call
// to [Body.Tick] applies one semi-implicit Euler step under a uniform
// acceleration and then clamps the body back inside the playfield:
//
//	hit := b.Tick(dt, gravity, physics.Bounds{Width: 3000, Height: 2000})
//	if hit.Any() {
//	    // the body touched a wall this tick
//	}
//
// # Boundary reflection
//
// Each axis is checked on every tick, not only on contact. A coordinate past
// the low edge is clamped to the radius; otherwise a coordinate past the high
// edge is clamped to width-1-radius. The matching velocity component is
// negated. Only one side per axis is corrected in a single tick, so a body
// wider than the playfield is not kept inside both edges.
//
// Bodies never interact with each other.
package physics
