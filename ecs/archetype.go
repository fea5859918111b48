package ecs

import (
	"hash/fnv"
	"iter"
	"reflect"
	"slices"
	"strings"
)

// Archetype stores every entity that has exactly the same set of component
// types. Slots are reused after deletion, so an EntityId is only meaningful
// while the entity is alive.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []column
	lookup  map[reflect.Type]int

	alive []bool
	free  []uint32
	count int
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]column, len(types)),
		lookup:  make(map[reflect.Type]int, len(types)),
	}
	for i, t := range types {
		a.columns[i] = registry.newColumn(t)
		a.lookup[t] = i
	}
	return a
}

// ID returns the archetype's identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types of this archetype, sorted by name
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities
func (a *Archetype) Len() int {
	return a.count
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(t reflect.Type) bool {
	_, ok := a.lookup[t]
	return ok
}

func (a *Archetype) allocate() uint32 {
	if n := len(a.free); n > 0 {
		slot := a.free[n-1]
		a.free = a.free[:n-1]
		a.alive[slot] = true
		return slot
	}
	a.alive = append(a.alive, true)
	return uint32(len(a.alive) - 1)
}

func (a *Archetype) spawn(components []any) uint32 {
	slot := a.allocate()
	for _, comp := range components {
		idx, ok := a.lookup[componentType(comp)]
		if !ok || !a.columns[idx].set(int(slot), comp) {
			panic("component " + reflect.TypeOf(comp).String() + " does not belong to archetype")
		}
	}
	a.count++
	return slot
}

func (a *Archetype) isAlive(slot uint32) bool {
	return int(slot) < len(a.alive) && a.alive[slot]
}

func (a *Archetype) delete(slot uint32) bool {
	if !a.isAlive(slot) {
		return false
	}
	for _, col := range a.columns {
		col.reset(int(slot))
	}
	a.alive[slot] = false
	a.free = append(a.free, slot)
	a.count--
	return true
}

func (a *Archetype) component(slot uint32, t reflect.Type) any {
	if !a.isAlive(slot) {
		return nil
	}
	idx, ok := a.lookup[t]
	if !ok {
		return nil
	}
	return a.columns[idx].value(int(slot))
}

// Iter yields the ids of all live entities in slot order
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for slot, ok := range a.alive {
			if !ok {
				continue
			}
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}

func componentType(comp any) reflect.Type {
	t := reflect.TypeOf(comp)
	if t == nil {
		panic("nil component")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
}

// archetypeHash derives a stable id from the sorted type names, so the same
// component set maps to the same archetype id on every run.
func archetypeHash(types []reflect.Type) uint32 {
	h := fnv.New32a()
	for _, t := range types {
		h.Write([]byte(t.PkgPath()))
		h.Write([]byte{'.'})
		h.Write([]byte(t.String()))
		h.Write([]byte{0})
	}
	return h.Sum32()
}
