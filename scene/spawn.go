package scene

import (
	"math"

	"github.com/plus3/cubefall/ecs"
	"github.com/plus3/cubefall/physics"
)

// TimeSystem advances the Clock by the frame delta.
type TimeSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *TimeSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	clock.Elapsed += frame.DeltaTime
	clock.Frame++
}

// SpawnCubeSystem drops one cube every Spawn.Interval seconds at a random
// point within Spawn.Radius of the origin.
type SpawnCubeSystem struct {
	Clock  ecs.Singleton[Clock]
	Config ecs.Singleton[Config]
	Random ecs.Singleton[Random]
	Stats  ecs.Singleton[CubeStats]

	next float64
}

func (s *SpawnCubeSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	if clock.Elapsed <= s.next {
		return
	}

	cfg := s.Config.Get().Spawn
	s.next = clock.Elapsed + cfg.Interval

	rng := s.Random.Get()
	x := SpawnOffset(rng.Rand.Float64()*2*math.Pi, rng.Rand.Float64()*cfg.Radius)
	spin := 0.0
	if cfg.MaxSpin > 0 {
		spin = (rng.Rand.Float64()*2 - 1) * cfg.MaxSpin
	}

	frame.Commands.Spawn(
		physics.Transform{X: x, Y: cfg.Height},
		physics.RigidBody{Kind: physics.Dynamic},
		physics.Cuboid(cfg.Size/2, cfg.Size/2),
		physics.Restitution{Coefficient: cfg.Restitution},
		physics.Velocity{Angular: spin},
		Mesh{Shape: ShapeCuboid, Width: cfg.Size, Height: cfg.Size},
		Material{Color: rng.Color()},
		Cube{},
	)
	s.Stats.Get().Spawned++
}

// SpawnOffset projects a polar sample onto the x axis of the side view.
func SpawnOffset(theta, r float64) float64 {
	return r * math.Cos(theta)
}
