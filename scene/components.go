// Package scene builds the falling cubes demo: a static platform, a stream
// of randomly colored cubes, despawning below a threshold and a live count.
package scene

import (
	"image/color"
	"math/rand/v2"

	"github.com/plus3/cubefall/ecs"
	"github.com/plus3/cubefall/physics"
)

// MeshShape is the visual primitive drawn for an entity.
type MeshShape int

const (
	ShapeCuboid MeshShape = iota
	ShapeCylinder
)

// Mesh is the visual extent of an entity in world units.
type Mesh struct {
	Shape  MeshShape
	Width  float64
	Height float64
}

// Material is the base color of a mesh.
type Material struct {
	Color color.RGBA
}

// Cube tags spawned cubes.
type Cube struct{}

// Platform tags the ground.
type Platform struct{}

// PointLight brightens meshes near it.
type PointLight struct {
	Intensity float64
	Range     float64
	Ambient   float64
}

// Camera frames the world around a target point.
type Camera struct {
	TargetX, TargetY float64
	// ViewHeight is the number of world units visible vertically.
	ViewHeight float64
}

// TextNode is a screen-space label anchored to the bottom-left corner.
type TextNode struct {
	Text   string
	Left   float64
	Bottom float64
	Size   float64
}

// CountLabel marks the text node that shows the cube count.
type CountLabel struct{}

// Clock accumulates simulated time.
type Clock struct {
	Elapsed float64
	Frame   int64
}

// Random is the shared random source for spawning.
type Random struct {
	Seed uint64
	Rand *rand.Rand
}

// NewRandom returns a PCG-backed source for seed.
func NewRandom(seed uint64) Random {
	return Random{
		Seed: seed,
		Rand: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// CubeStats tracks cube traffic for the current session.
type CubeStats struct {
	Spawned   int64
	Despawned int64
	Live      int
	Peak      int
}

// Register adds every scene and physics component type to registry.
func Register(registry *ecs.ComponentRegistry) {
	physics.Register(registry)

	ecs.RegisterComponent[Mesh](registry)
	ecs.RegisterComponent[Material](registry)
	ecs.RegisterComponent[Cube](registry)
	ecs.RegisterComponent[Platform](registry)
	ecs.RegisterComponent[PointLight](registry)
	ecs.RegisterComponent[Camera](registry)
	ecs.RegisterComponent[TextNode](registry)
	ecs.RegisterComponent[CountLabel](registry)

	ecs.RegisterComponent[Config](registry)
	ecs.RegisterComponent[Clock](registry)
	ecs.RegisterComponent[Random](registry)
	ecs.RegisterComponent[CubeStats](registry)
	ecs.RegisterComponent[Records](registry)
}
