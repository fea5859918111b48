package debugui_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/cubefall/ecs"
	"github.com/plus3/cubefall/ecs/debugui"
)

type Position struct{ X, Y float64 }
type Label struct{ Text string }

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Label](registry)
	debugui.RegisterComponents(registry)
	return ecs.NewStorage(registry)
}

func TestCollectEntities(t *testing.T) {
	storage := newStorage()
	a := storage.Spawn(Position{X: 1})
	b := storage.Spawn(Position{}, Label{Text: "player"})
	c := storage.Spawn(Position{X: 2})
	storage.Delete(c)

	rows := debugui.CollectEntities(storage)
	require.Len(t, rows, 2)

	ids := []ecs.EntityId{rows[0].ID, rows[1].ID}
	assert.ElementsMatch(t, []ecs.EntityId{a, b}, ids)
	assert.Less(t, rows[0].ID, rows[1].ID)

	for _, row := range rows {
		assert.Equal(t, row.ID.ArchetypeId(), row.ArchetypeID)
	}
}

func TestFilterEntities(t *testing.T) {
	storage := newStorage()
	storage.Spawn(Position{})
	labelled := storage.Spawn(Position{}, Label{})

	rows := debugui.CollectEntities(storage)
	assert.Len(t, debugui.FilterEntities(rows, ""), 2)
	assert.Len(t, debugui.FilterEntities(rows, "  "), 2)
	assert.Len(t, debugui.FilterEntities(rows, "position"), 2)

	filtered := debugui.FilterEntities(rows, "LABEL")
	require.Len(t, filtered, 1)
	assert.Equal(t, labelled, filtered[0].ID)

	assert.Empty(t, debugui.FilterEntities(rows, "velocity"))
}

func TestFrameHistory(t *testing.T) {
	h := debugui.NewFrameHistory(3)
	assert.Zero(t, h.Average())
	assert.Empty(t, h.Ordered())

	h.Push(10)
	h.Push(20)
	assert.Equal(t, []float32{10, 20}, h.Ordered())
	assert.InDelta(t, 15, h.Average(), 1e-6)

	h.Push(30)
	h.Push(40)
	assert.Equal(t, []float32{20, 30, 40}, h.Ordered())
	assert.InDelta(t, 30, h.Average(), 1e-6)
}

func TestFrameHistoryTick(t *testing.T) {
	h := debugui.NewFrameHistory(4)
	start := time.Unix(100, 0)

	h.Tick(start)
	assert.Empty(t, h.Ordered())

	h.Tick(start.Add(16 * time.Millisecond))
	h.Tick(start.Add(48 * time.Millisecond))
	samples := h.Ordered()
	require.Len(t, samples, 2)
	assert.InDelta(t, 16, samples[0], 1e-3)
	assert.InDelta(t, 32, samples[1], 1e-3)
}
