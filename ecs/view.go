package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View iterates entities carrying a combination of components.
//
// T must be a struct whose fields are pointers to component types. Embedded
// fields are always required; named fields may be tagged `ecs:"optional"`, in
// which case they are nil for entities lacking the component. A field of type
// EntityId (usually embedded) receives the id of the current entity.
type View[T any] struct {
	storage  *Storage
	fields   []viewField
	idOffset uintptr
	hasId    bool
}

type viewField struct {
	typ      reflect.Type
	offset   uintptr
	optional bool
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId: " + field.Name)
		}

		optional := false
		if tag, ok := field.Tag.Lookup("ecs"); ok {
			if tag != "optional" || field.Anonymous {
				panic("invalid ecs tag \"" + tag + "\" on " + field.Name)
			}
			optional = true
		}

		v.fields = append(v.fields, viewField{
			typ:      field.Type.Elem(),
			offset:   field.Offset,
			optional: optional,
		})
	}
	return v
}

func (v *View[T]) matches(archetype *Archetype) bool {
	for _, f := range v.fields {
		if !f.optional && !archetype.HasComponent(f.typ) {
			return false
		}
	}
	return true
}

// columnsFor resolves, once per archetype, which column backs each field.
func (v *View[T]) columnsFor(archetype *Archetype) []column {
	cols := make([]column, len(v.fields))
	for i, f := range v.fields {
		if idx, ok := archetype.lookup[f.typ]; ok {
			cols[i] = archetype.columns[idx]
		}
	}
	return cols
}

func (v *View[T]) populate(out *T, id EntityId, cols []column) {
	base := unsafe.Pointer(out)
	if v.hasId {
		*(*EntityId)(unsafe.Add(base, v.idOffset)) = id
	}
	slot := int(id.Index())
	for i, f := range v.fields {
		fieldPtr := (*unsafe.Pointer)(unsafe.Add(base, f.offset))
		if cols[i] == nil {
			*fieldPtr = nil
			continue
		}
		*fieldPtr = cols[i].pointer(slot)
	}
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(T) bool) bool {
	if archetype.count == 0 {
		return true
	}
	cols := v.columnsFor(archetype)
	var result T
	for id := range archetype.Iter() {
		v.populate(&result, id, cols)
		if !yield(result) {
			return false
		}
	}
	return true
}

// Iter yields a populated T for every matching entity
func (v *View[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, archetype := range v.storage.ordered {
			if !v.matches(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Fill populates ptr for the given entity. It returns false if the entity is
// not alive or lacks a required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes.Get(id.ArchetypeId())
	if !ok || !archetype.isAlive(id.Index()) || !v.matches(archetype) {
		return false
	}
	v.populate(ptr, id, v.columnsFor(archetype))
	return true
}

// Get returns a populated T for the entity, or nil
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Count returns the number of matching entities
func (v *View[T]) Count() int {
	total := 0
	for _, archetype := range v.storage.ordered {
		if v.matches(archetype) {
			total += archetype.count
		}
	}
	return total
}
