package physics

import "github.com/plus3/cubefall/ecs"

// System keeps the World in step with the ECS: it attaches bodies for new
// entities, removes bodies whose entities are gone, advances the solver and
// writes dynamic poses back into Transform.
type System struct {
	World  ecs.Singleton[World]
	Bodies ecs.Query[struct {
		*Transform
		*RigidBody
		*Collider
		Restitution *Restitution `ecs:"optional"`
		Velocity    *Velocity    `ecs:"optional"`
	}]
}

func (s *System) Execute(frame *ecs.UpdateFrame) {
	world := s.World.Get()
	if world == nil || world.space == nil {
		return
	}

	world.beginFrame()
	for item := range s.Bodies.Iter() {
		if item.RigidBody.Attached() {
			world.touch(item.RigidBody)
			continue
		}
		restitution := 0.0
		if item.Restitution != nil {
			restitution = item.Restitution.Coefficient
		}
		world.Attach(item.RigidBody, *item.Transform, *item.Collider, restitution, item.Velocity)
	}
	world.sweep()

	if world.Step(frame.DeltaTime) == 0 {
		return
	}

	for item := range s.Bodies.Iter() {
		if item.RigidBody.Kind == Dynamic {
			world.Sync(item.RigidBody, item.Transform, item.Velocity)
		}
	}
}
