package scene

import (
	"image/color"

	"github.com/plus3/cubefall/ecs"
	"github.com/plus3/cubefall/physics"
)

// SetupGraphicsSystem places the light, the camera and the count label.
type SetupGraphicsSystem struct {
	Config ecs.Singleton[Config]
}

func (s *SetupGraphicsSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()

	frame.Commands.Spawn(
		physics.Transform{X: cfg.Light.X, Y: cfg.Light.Y},
		PointLight{
			Intensity: cfg.Light.Intensity,
			Range:     cfg.Light.Range,
			Ambient:   cfg.Light.Ambient,
		},
	)
	frame.Commands.Spawn(
		physics.Transform{X: cfg.Camera.X, Y: cfg.Camera.Y},
		Camera{ViewHeight: cfg.Camera.ViewHeight},
	)
	frame.Commands.Spawn(
		TextNode{
			Text:   FormatCount(0),
			Left:   cfg.Label.Left,
			Bottom: cfg.Label.Bottom,
			Size:   cfg.Label.Size,
		},
		CountLabel{},
	)
}

// SetupPhysicsSystem creates the fixed platform the cubes land on.
type SetupPhysicsSystem struct {
	Config ecs.Singleton[Config]
	Random ecs.Singleton[Random]
}

func (s *SetupPhysicsSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get().Platform
	rng := s.Random.Get()

	frame.Commands.Spawn(
		physics.Transform{Y: cfg.Y},
		physics.RigidBody{Kind: physics.Fixed},
		physics.Cylinder(cfg.Thickness/2, cfg.Radius),
		physics.Restitution{Coefficient: cfg.Restitution},
		Mesh{Shape: ShapeCylinder, Width: cfg.Radius * 2, Height: cfg.Thickness},
		Material{Color: rng.Color()},
		Platform{},
	)
}

// Color returns an opaque color with uniformly random channels.
func (r Random) Color() color.RGBA {
	return color.RGBA{
		R: uint8(r.Rand.IntN(256)),
		G: uint8(r.Rand.IntN(256)),
		B: uint8(r.Rand.IntN(256)),
		A: 0xff,
	}
}
