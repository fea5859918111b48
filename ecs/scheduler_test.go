package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/cubefall/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
	ExecuteCount int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ExecuteCount++
	for item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type worldSetupSystem struct {
	Health ecs.Singleton[Health]
	runs   int
}

func (s *worldSetupSystem) Execute(frame *ecs.UpdateFrame) {
	s.runs++
	frame.Storage.AddSingleton(Health{Current: 100, Max: 100})
	frame.Commands.Spawn(Position{}, Velocity{DX: 1, DY: 2})
}

type sleepSystem struct {
	dur time.Duration
}

func (s *sleepSystem) Execute(frame *ecs.UpdateFrame) {
	time.Sleep(s.dur)
}

func TestSchedulerRunsSystemsInOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var order []string
	scheduler.Register(systemFunc(func(*ecs.UpdateFrame) { order = append(order, "first") }))
	scheduler.Register(systemFunc(func(*ecs.UpdateFrame) { order = append(order, "second") }))

	scheduler.Once(0)
	assert.Equal(t, []string{"first", "second"}, order)
}

type systemFunc func(*ecs.UpdateFrame)

func (f systemFunc) Execute(frame *ecs.UpdateFrame) { f(frame) }

func TestSchedulerStartupRunsOnceBeforeUpdate(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	setup := &worldSetupSystem{}
	movement := &MovementSystem{}
	scheduler.RegisterStartup(setup)
	scheduler.Register(movement)

	scheduler.Once(1.0)
	scheduler.Once(1.0)

	assert.Equal(t, 1, setup.runs)
	assert.Equal(t, 2, movement.ExecuteCount)
	require.NotNil(t, setup.Health.Get())
	assert.Equal(t, 100, setup.Health.Get().Current)

	view := ecs.NewView[struct{ *Position }](storage)
	for item := range view.Iter() {
		assert.Equal(t, float32(2), item.Position.X, "startup spawns are visible to the first update")
		assert.Equal(t, float32(4), item.Position.Y)
	}
}

func TestSchedulerRunCancellation(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	scheduler.Register(movement)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation")
	}
	assert.Positive(t, movement.ExecuteCount)
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	stats := scheduler.GetStats()
	assert.Equal(t, 0, stats.SystemCount)
	assert.Equal(t, int64(0), stats.TotalExecutions)

	scheduler.RegisterStartup(&worldSetupSystem{})
	scheduler.Register(&sleepSystem{dur: time.Millisecond})

	for i := 0; i < 3; i++ {
		scheduler.Once(0.016)
	}

	stats = scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(4), stats.TotalExecutions)
	assert.Equal(t, int64(3), stats.Frames)
	require.Len(t, stats.Systems, 2)

	startup := stats.Systems[0]
	assert.Equal(t, "worldSetupSystem", startup.Name)
	assert.True(t, startup.Startup)
	assert.Equal(t, int64(1), startup.ExecutionCount)

	sleeper := stats.Systems[1]
	assert.Equal(t, "sleepSystem", sleeper.Name)
	assert.Equal(t, int64(3), sleeper.ExecutionCount)
	assert.GreaterOrEqual(t, sleeper.MinDuration, time.Millisecond)
	assert.LessOrEqual(t, sleeper.MinDuration, sleeper.AvgDuration)
	assert.LessOrEqual(t, sleeper.AvgDuration, sleeper.MaxDuration)
}
