package ecs

import "iter"

// Query is a View owned by a system. The Scheduler binds Query fields on
// registration; the query caches the archetypes it matches and refreshes that
// cache only when new archetypes appear.
type Query[T any] struct {
	view          *View[T]
	storage       *Storage
	matched       []*Archetype
	seenArchetype int
}

// NewQuery creates a Query bound to storage.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to a storage.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.matched = nil
	q.seenArchetype = 0
}

// archetypes are only ever appended to storage.ordered, so new ones can be
// checked incrementally.
func (q *Query[T]) refresh() {
	if q.storage == nil {
		panic("Query used before Init")
	}
	for _, archetype := range q.storage.ordered[q.seenArchetype:] {
		if q.view.matches(archetype) {
			q.matched = append(q.matched, archetype)
		}
	}
	q.seenArchetype = len(q.storage.ordered)
}

// Iter yields a populated T for every matching entity.
func (q *Query[T]) Iter() iter.Seq[T] {
	q.refresh()
	return func(yield func(T) bool) {
		for _, archetype := range q.matched {
			if !q.view.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Get returns a populated T for the entity, or nil.
func (q *Query[T]) Get(id EntityId) *T {
	if q.view == nil {
		panic("Query used before Init")
	}
	return q.view.Get(id)
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	q.refresh()
	total := 0
	for _, archetype := range q.matched {
		total += archetype.count
	}
	return total
}
