package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/cubefall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityId(t *testing.T) {
	tests := []struct {
		name        string
		archetypeId uint32
		index       uint32
	}{
		{"zero", 0, 0},
		{"small", 7, 3},
		{"max", 0xFFFFFFFF, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ecs.NewEntityId(tt.archetypeId, tt.index)
			assert.Equal(t, tt.archetypeId, id.ArchetypeId())
			assert.Equal(t, tt.index, id.Index())
		})
	}
}

func TestStorageSpawnAndGet(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 3, Y: 4}, Name("crate"))
	require.True(t, storage.Alive(id))

	pos := ecs.ReadComponent[Position](storage, id)
	require.NotNil(t, pos)
	assert.Equal(t, float32(3), pos.X)
	assert.Equal(t, float32(4), pos.Y)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, Name("crate"), *name)

	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
	assert.True(t, storage.HasComponent(id, reflect.TypeFor[Position]()))
	assert.False(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
}

func TestStorageSameArchetypeRegardlessOfOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(&Velocity{}, &Position{})

	assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
	assert.NotEqual(t, a.Index(), b.Index())
	assert.Len(t, storage.Archetypes(), 1)
}

func TestStorageArchetypeIdIsStable(t *testing.T) {
	first := ecs.NewStorage(newTestRegistry()).Spawn(Position{}, Health{})
	second := ecs.NewStorage(newTestRegistry()).Spawn(Health{}, Position{})

	assert.Equal(t, first.ArchetypeId(), second.ArchetypeId())
}

func TestStorageDelete(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	other := storage.Spawn(Position{X: 2})
	require.Equal(t, 2, storage.Count())

	assert.True(t, storage.Delete(id))
	assert.False(t, storage.Alive(id))
	assert.Nil(t, ecs.ReadComponent[Position](storage, id))
	assert.Equal(t, 1, storage.Count())

	assert.False(t, storage.Delete(id), "second delete is a no-op")
	assert.False(t, storage.Delete(ecs.NewEntityId(12345, 0)), "unknown archetype")

	pos := ecs.ReadComponent[Position](storage, other)
	require.NotNil(t, pos)
	assert.Equal(t, float32(2), pos.X)
}

func TestStorageReusesSlots(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	storage.Delete(id)
	reused := storage.Spawn(Position{X: 9})

	assert.Equal(t, id, reused)
	assert.Equal(t, float32(9), ecs.ReadComponent[Position](storage, reused).X)
}

func TestStoragePointersSurviveGrowth(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 42})
	pos := ecs.ReadComponent[Position](storage, id)

	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{X: float32(i)})
	}

	pos.Y = 7
	assert.Equal(t, float32(42), pos.X)
	assert.Equal(t, float32(7), ecs.ReadComponent[Position](storage, id).Y)
}

func TestStorageSpawnPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { storage.Spawn() }, "no components")
	assert.Panics(t, func() { storage.Spawn(Position{}, Position{}) }, "duplicate component")
	assert.Panics(t, func() { storage.Spawn(struct{ Unregistered int }{}) }, "unregistered component")
}

func TestRegisterComponentRejectsPointers(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	assert.Panics(t, func() { ecs.RegisterComponent[*Position](registry) })
	assert.Panics(t, func() { ecs.RegisterComponent[map[string]int](registry) })
	assert.False(t, registry.Registered(reflect.TypeFor[Position]()))

	ecs.RegisterComponent[Position](registry)
	assert.True(t, registry.Registered(reflect.TypeFor[Position]()))
}

func TestStorageSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var health *Health
	assert.False(t, storage.ReadSingleton(&health))

	storage.AddSingleton(Health{Current: 10, Max: 20})
	require.True(t, storage.ReadSingleton(&health))
	assert.Equal(t, 10, health.Current)

	storage.AddSingleton(Health{Current: 15, Max: 20})
	assert.Equal(t, 15, health.Current, "replacement keeps the same pointer")

	assert.Panics(t, func() { storage.ReadSingleton(health) })
}
