package ecs_test

import (
	"testing"

	"github.com/plus3/cubefall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewIter(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	moving := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	storage.Spawn(Position{X: 5})
	storage.Spawn(Velocity{DX: 9})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		*Velocity
	}](storage)

	count := 0
	for item := range view.Iter() {
		count++
		assert.Equal(t, moving, item.EntityId)
		item.Position.X += item.Velocity.DX
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, view.Count())
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, moving).X)
}

func TestViewOptionalFields(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	storage.Spawn(Position{X: 1}, Name("named"))
	storage.Spawn(Position{X: 2})

	view := ecs.NewView[struct {
		*Position
		Name *Name `ecs:"optional"`
	}](storage)

	named, unnamed := 0, 0
	for item := range view.Iter() {
		if item.Name != nil {
			named++
			assert.Equal(t, Name("named"), *item.Name)
		} else {
			unnamed++
		}
	}
	assert.Equal(t, 1, named)
	assert.Equal(t, 1, unnamed)
}

func TestViewGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	full := storage.Spawn(Position{X: 1}, Health{Current: 3})
	partial := storage.Spawn(Position{X: 1})

	view := ecs.NewView[struct {
		ecs.EntityId
		*Position
		*Health
	}](storage)

	item := view.Get(full)
	require.NotNil(t, item)
	assert.Equal(t, full, item.EntityId)
	assert.Equal(t, 3, item.Health.Current)

	assert.Nil(t, view.Get(partial))

	storage.Delete(full)
	assert.Nil(t, view.Get(full))
}

func TestViewEarlyBreak(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for i := 0; i < 10; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	view := ecs.NewView[struct{ *Position }](storage)
	seen := 0
	for range view.Iter() {
		seen++
		if seen == 3 {
			break
		}
	}
	assert.Equal(t, 3, seen)
}

func TestViewInvalidDefinitions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](storage)
	})
}

func TestQueryPicksUpNewArchetypes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	storage.Spawn(Position{})
	assert.Equal(t, 1, query.Count())

	storage.Spawn(Position{}, Frozen{})
	storage.Spawn(Velocity{})
	assert.Equal(t, 2, query.Count())

	total := 0
	for range query.Iter() {
		total++
	}
	assert.Equal(t, 2, total)
}

func TestQueryBeforeInitPanics(t *testing.T) {
	var query ecs.Query[struct{ *Position }]
	assert.Panics(t, func() { query.Count() })
}
