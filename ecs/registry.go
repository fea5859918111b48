package ecs

import (
	"reflect"
	"unsafe"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage owns one registry, so independent worlds can coexist.
type ComponentRegistry struct {
	columns map[reflect.Type]func() column
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		columns: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	checkComponentType(t)
	r.columns[t] = func() column {
		return &pagedColumn[T]{}
	}
}

// Registered reports whether the type has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.columns[t]
	return ok
}

func (r *ComponentRegistry) newColumn(t reflect.Type) column {
	factory, ok := r.columns[t]
	if !ok {
		panic("component type " + t.String() + " not registered")
	}
	return factory()
}

func checkComponentType(t reflect.Type) {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("components cannot be pointers, maps, channels, functions or interfaces: " + t.String())
	}
}

const columnPageSize = 128

// column stores the values of one component type for an archetype, addressed
// by slot. Slots are managed by the owning archetype.
type column interface {
	set(slot int, value any) bool
	reset(slot int)
	pointer(slot int) unsafe.Pointer
	value(slot int) any
}

// pagedColumn keeps values in fixed-size pages that never move once
// allocated, so component pointers handed out by views survive growth.
type pagedColumn[T any] struct {
	pages []*[columnPageSize]T
}

func (c *pagedColumn[T]) slot(slot int) *T {
	page := slot / columnPageSize
	for page >= len(c.pages) {
		c.pages = append(c.pages, new([columnPageSize]T))
	}
	return &c.pages[page][slot%columnPageSize]
}

func (c *pagedColumn[T]) set(slot int, value any) bool {
	if v, ok := value.(T); ok {
		*c.slot(slot) = v
		return true
	}
	if p, ok := value.(*T); ok && p != nil {
		*c.slot(slot) = *p
		return true
	}
	return false
}

func (c *pagedColumn[T]) reset(slot int) {
	var zero T
	*c.slot(slot) = zero
}

func (c *pagedColumn[T]) pointer(slot int) unsafe.Pointer {
	return unsafe.Pointer(c.slot(slot))
}

func (c *pagedColumn[T]) value(slot int) any {
	return c.slot(slot)
}
