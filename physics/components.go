// Package physics drives rigid bodies for ECS entities with the Chipmunk2D
// port github.com/jakecoffman/cp. World coordinates are in meters with y up.
package physics

import (
	"math"

	"github.com/plus3/cubefall/ecs"
)

// Transform is the world-space pose of an entity.
type Transform struct {
	X, Y  float64
	Angle float64
}

// BodyKind selects how the solver treats a body.
type BodyKind int

const (
	// Fixed bodies never move and have infinite mass.
	Fixed BodyKind = iota
	// Dynamic bodies are integrated under gravity and contacts.
	Dynamic
)

func (k BodyKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

// RigidBody marks an entity for simulation. The System fills in the body
// handle the first time it sees the entity.
type RigidBody struct {
	Kind BodyKind

	handle *bodyHandle
}

// Attached reports whether a solver body exists for this component.
func (rb *RigidBody) Attached() bool {
	return rb.handle != nil
}

// Elasticity returns the elasticity of the attached shape, or 0.
func (rb *RigidBody) Elasticity() float64 {
	if rb.handle == nil {
		return 0
	}
	return rb.handle.shape.Elasticity()
}

// Collider is a box shape centered on the entity's transform.
type Collider struct {
	HalfWidth  float64
	HalfHeight float64
}

// Cuboid returns a box collider with the given half extents.
func Cuboid(hx, hy float64) Collider {
	return Collider{HalfWidth: hx, HalfHeight: hy}
}

// Cylinder returns the side profile of an upright cylinder.
func Cylinder(halfHeight, radius float64) Collider {
	return Collider{HalfWidth: radius, HalfHeight: halfHeight}
}

// Restitution is the bounciness of a collider. A contact bounces with the
// geometric mean of both coefficients, see CombineRestitution.
type Restitution struct {
	Coefficient float64
}

// CombineRestitution returns the restitution of a contact between two
// colliders.
func CombineRestitution(a, b float64) float64 {
	return shapeElasticity(a) * shapeElasticity(b)
}

// shapeElasticity is what a shape stores for coefficient e. Chipmunk
// multiplies the elasticity of both shapes, so storing the square root makes
// equal coefficients combine to themselves.
func shapeElasticity(e float64) float64 {
	return math.Sqrt(max(e, 0))
}

// Velocity is applied when a body is created and refreshed from the solver
// every step afterwards.
type Velocity struct {
	X, Y    float64
	Angular float64
}

// Register adds the physics component types to a registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[RigidBody](registry)
	ecs.RegisterComponent[Collider](registry)
	ecs.RegisterComponent[Restitution](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[World](registry)
}
