package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	Startup        bool
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type scheduledSystem struct {
	system System
	stats  SystemStats
}

func (s *scheduledSystem) run(frame *UpdateFrame) {
	start := time.Now()
	s.system.Execute(frame)
	d := time.Since(start)

	st := &s.stats
	st.ExecutionCount++
	st.LastDuration = d
	st.TotalDuration += d
	if st.ExecutionCount == 1 || d < st.MinDuration {
		st.MinDuration = d
	}
	if d > st.MaxDuration {
		st.MaxDuration = d
	}
}

// Scheduler runs systems in registration order. Startup systems run once,
// before the first update; their commands are flushed before any update
// system executes.
type Scheduler struct {
	storage  *Storage
	commands *Commands
	startup  []*scheduledSystem
	update   []*scheduledSystem
	started  bool
	frames   int64
}

// NewScheduler creates a new scheduler for the given storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{
		storage:  storage,
		commands: newCommands(),
	}
}

// Storage returns the storage the scheduler operates on.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register adds an update system and binds its Query and Singleton fields.
func (s *Scheduler) Register(system System) {
	s.update = append(s.update, s.prepare(system, false))
}

// RegisterStartup adds a system that runs exactly once, on the first call to
// Once. Startup systems registered after that point never run.
func (s *Scheduler) RegisterStartup(system System) {
	s.startup = append(s.startup, s.prepare(system, true))
}

func (s *Scheduler) prepare(system System, startup bool) *scheduledSystem {
	s.bindFields(system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	return &scheduledSystem{
		system: system,
		stats: SystemStats{
			Name:    systemType.Name(),
			Startup: startup,
		},
	}
}

func (s *Scheduler) bindFields(system System) {
	value := reflect.ValueOf(system)
	if value.Kind() != reflect.Ptr || value.Elem().Kind() != reflect.Struct {
		return
	}
	value = value.Elem()

	for i := 0; i < value.NumField(); i++ {
		field := value.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if b, ok := field.Addr().Interface().(binder); ok {
			b.Init(s.storage)
		}
	}
}

// Once runs pending startup systems, then every update system, flushing
// queued commands after each stage.
func (s *Scheduler) Once(dt float64) {
	if !s.started {
		s.started = true
		if len(s.startup) > 0 {
			frame := newUpdateFrame(0, s.storage, s.commands)
			for _, sys := range s.startup {
				sys.run(frame)
			}
			s.commands.Flush(s.storage)
		}
	}

	frame := newUpdateFrame(dt, s.storage, s.commands)
	for _, sys := range s.update {
		sys.run(frame)
	}
	s.commands.Flush(s.storage)
	s.frames++
}

// Run executes Once at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Once(dt)
		}
	}
}

// GetStats returns execution statistics for every registered system,
// startup systems first.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.startup) + len(s.update),
		Frames:      s.frames,
		Systems:     make([]SystemStats, 0, len(s.startup)+len(s.update)),
	}

	for _, group := range [][]*scheduledSystem{s.startup, s.update} {
		for _, sys := range group {
			st := sys.stats
			if st.ExecutionCount > 0 {
				st.AvgDuration = st.TotalDuration / time.Duration(st.ExecutionCount)
			}
			stats.Systems = append(stats.Systems, st)
			stats.TotalExecutions += st.ExecutionCount
		}
	}
	return stats
}
