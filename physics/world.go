package physics

import "github.com/jakecoffman/cp"

const (
	// DefaultGravity matches Earth gravity along -y.
	DefaultGravity = -9.81
	// DefaultTimestep is the fixed solver step.
	DefaultTimestep = 1.0 / 60.0

	defaultIterations  = 10
	defaultMaxSubsteps = 8
	defaultFriction    = 0.5
	density            = 1.0
)

// Settings configures a World.
type Settings struct {
	Gravity     float64
	Iterations  int
	Timestep    float64
	MaxSubsteps int
}

// DefaultSettings returns the settings used when none are given.
func DefaultSettings() Settings {
	return Settings{
		Gravity:     DefaultGravity,
		Iterations:  defaultIterations,
		Timestep:    DefaultTimestep,
		MaxSubsteps: defaultMaxSubsteps,
	}
}

type bodyHandle struct {
	body  *cp.Body
	shape *cp.Shape
	kind  BodyKind
	mark  int64
}

// World owns the Chipmunk space and every body created for an entity. It is
// stored as an ECS singleton.
type World struct {
	space       *cp.Space
	settings    Settings
	bodies      map[*bodyHandle]struct{}
	accumulator float64
	steps       int64
	frame       int64
}

// NewWorld creates an empty world.
func NewWorld(settings Settings) World {
	if settings.Timestep <= 0 {
		settings.Timestep = DefaultTimestep
	}
	if settings.Iterations <= 0 {
		settings.Iterations = defaultIterations
	}
	if settings.MaxSubsteps <= 0 {
		settings.MaxSubsteps = defaultMaxSubsteps
	}

	space := cp.NewSpace()
	space.Iterations = uint(settings.Iterations)
	space.SetGravity(cp.Vector{X: 0, Y: settings.Gravity})

	return World{
		space:    space,
		settings: settings,
		bodies:   make(map[*bodyHandle]struct{}),
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space {
	if w == nil {
		return nil
	}
	return w.space
}

// Settings returns the settings the world was created with.
func (w *World) Settings() Settings {
	return w.settings
}

// BodyCount returns the number of attached bodies.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Steps returns the number of fixed steps taken so far.
func (w *World) Steps() int64 {
	return w.steps
}

// Attach creates a body and box shape for rb and stores the handle in it.
// A RigidBody that already carries a body is left alone. Deleting the entity
// zeroes the component, so a recycled slot always gets a fresh body.
func (w *World) Attach(rb *RigidBody, t Transform, c Collider, restitution float64, v *Velocity) {
	if rb.handle != nil {
		return
	}

	width, height := c.HalfWidth*2, c.HalfHeight*2
	handle := &bodyHandle{kind: rb.Kind, mark: w.frame}

	switch rb.Kind {
	case Dynamic:
		mass := density * width * height
		body := cp.NewBody(mass, cp.MomentForBox(mass, width, height))
		body.SetPosition(cp.Vector{X: t.X, Y: t.Y})
		body.SetAngle(t.Angle)
		if v != nil {
			body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
			body.SetAngularVelocity(v.Angular)
		}
		w.space.AddBody(body)
		handle.body = body
		handle.shape = cp.NewBox(body, width, height, 0)
	default:
		// static shapes hang off the space's static body in world coordinates
		bb := cp.BB{
			L: t.X - c.HalfWidth,
			B: t.Y - c.HalfHeight,
			R: t.X + c.HalfWidth,
			T: t.Y + c.HalfHeight,
		}
		handle.body = w.space.StaticBody
		handle.shape = cp.NewBox2(w.space.StaticBody, bb, 0)
	}

	handle.shape.SetElasticity(shapeElasticity(restitution))
	handle.shape.SetFriction(defaultFriction)
	w.space.AddShape(handle.shape)
	w.bodies[handle] = struct{}{}
	rb.handle = handle
}

func (w *World) detach(handle *bodyHandle) {
	if _, ok := w.bodies[handle]; !ok {
		return
	}
	w.space.RemoveShape(handle.shape)
	if handle.kind == Dynamic {
		w.space.RemoveBody(handle.body)
	}
	delete(w.bodies, handle)
}

// Detach removes rb's body from the space.
func (w *World) Detach(rb *RigidBody) {
	if rb.handle == nil {
		return
	}
	w.detach(rb.handle)
	rb.handle = nil
}

// beginFrame starts a liveness pass; touch marks bodies still owned by an
// entity and sweep removes the rest.
func (w *World) beginFrame() {
	w.frame++
}

func (w *World) touch(rb *RigidBody) {
	if rb.handle != nil {
		rb.handle.mark = w.frame
	}
}

func (w *World) sweep() int {
	var stale []*bodyHandle
	for handle := range w.bodies {
		if handle.mark != w.frame {
			stale = append(stale, handle)
		}
	}
	for _, handle := range stale {
		w.detach(handle)
	}
	return len(stale)
}

// Step advances the simulation by dt using fixed substeps. Time that does not
// fill a whole step carries over; time beyond MaxSubsteps is dropped.
func (w *World) Step(dt float64) int {
	if dt <= 0 {
		return 0
	}
	w.accumulator += dt

	n := 0
	for w.accumulator >= w.settings.Timestep && n < w.settings.MaxSubsteps {
		w.space.Step(w.settings.Timestep)
		w.accumulator -= w.settings.Timestep
		n++
	}
	if n == w.settings.MaxSubsteps {
		w.accumulator = 0
	}
	w.steps += int64(n)
	return n
}

// Sync copies the solver state of a dynamic body into t and v (v may be nil).
func (w *World) Sync(rb *RigidBody, t *Transform, v *Velocity) bool {
	handle := rb.handle
	if handle == nil || handle.kind != Dynamic {
		return false
	}
	pos := handle.body.Position()
	t.X, t.Y = pos.X, pos.Y
	t.Angle = handle.body.Angle()
	if v != nil {
		vel := handle.body.Velocity()
		v.X, v.Y = vel.X, vel.Y
		v.Angular = handle.body.AngularVelocity()
	}
	return true
}
