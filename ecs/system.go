package ecs

// System represents a behavior that operates on entities with specific components.
// Systems may declare Query and Singleton fields, which the Scheduler binds on
// registration, and any other fields act as state that persists between frames.
type System interface {
	Execute(frame *UpdateFrame)
}

// binder is implemented by Query and Singleton so the Scheduler can attach
// them to its Storage.
type binder interface {
	Init(storage *Storage)
}
