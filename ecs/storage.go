package ecs

import (
	"fmt"
	"reflect"
	"slices"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage is the main ECS storage: it owns every archetype and singleton.
type Storage struct {
	registry   *ComponentRegistry
	archetypes *intmap.Map[uint32, *Archetype]
	// ordered mirrors archetypes in creation order for deterministic iteration
	ordered    []*Archetype
	singletons map[reflect.Type]*singletonEntry
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: intmap.New[uint32, *Archetype](64),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns all archetypes in creation order
func (s *Storage) Archetypes() []*Archetype {
	return s.ordered
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := archetypeHash(types)
	if archetype, ok := s.archetypes.Get(id); ok {
		if !slices.Equal(archetype.types, types) {
			panic(fmt.Sprintf("archetype id collision: %v and %v share id 0x%X", archetype.types, types, id))
		}
		return archetype
	}
	archetype := newArchetype(id, types, s.registry)
	s.archetypes.Put(id, archetype)
	s.ordered = append(s.ordered, archetype)
	return archetype
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; each type may appear at most once.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		t := componentType(comp)
		if slices.Contains(types, t) {
			panic("duplicate component " + t.String() + " in spawn")
		}
		types = append(types, t)
	}
	sortTypes(types)

	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.spawn(components))
}

// Delete removes the entity and all of its components. It returns false if
// the entity was not alive.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.delete(id.Index())
}

// Alive reports whether the entity exists
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	return ok && archetype.isAlive(id.Index())
}

// GetComponent returns a pointer to the component of the given type, or nil
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.component(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	return s.GetComponent(id, compType) != nil
}

// Count returns the number of live entities
func (s *Storage) Count() int {
	total := 0
	for _, archetype := range s.ordered {
		total += archetype.count
	}
	return total
}

// AddSingleton stores value as the singleton of its type, replacing any
// previous value in place so existing Singleton accessors stay valid.
func (s *Storage) AddSingleton(value any) {
	t := componentType(value)
	checkComponentType(t)

	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	if entry, ok := s.singletons[t]; ok {
		entry.value.Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points target (a **T) at the stored singleton of type T.
// It returns false if no such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	entry, ok := s.singletons[v.Elem().Type().Elem()]
	if !ok {
		return false
	}
	v.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ComponentReader is implemented by anything that can resolve components by id
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the component T of the entity, or nil
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
