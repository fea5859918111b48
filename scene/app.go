package scene

import (
	"time"

	"github.com/plus3/cubefall/ecs"
	"github.com/plus3/cubefall/physics"
)

// App is an assembled scene ready to be stepped.
type App struct {
	Registry  *ecs.ComponentRegistry
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler

	Config  *ecs.Singleton[Config]
	Clock   *ecs.Singleton[Clock]
	Stats   *ecs.Singleton[CubeStats]
	Records *ecs.Singleton[Records]
	World   *ecs.Singleton[physics.World]
}

type buildOptions struct {
	watcher *Watcher
	records Records
	extra   []ecs.System
}

type Option func(*buildOptions)

// WithWatcher reloads tunables whenever w reports a change.
func WithWatcher(w *Watcher) Option {
	return func(o *buildOptions) {
		o.watcher = w
	}
}

// WithRecords seeds the Records singleton with stored values.
func WithRecords(r Records) Option {
	return func(o *buildOptions) {
		o.records = r
	}
}

// WithSystems registers additional update systems after the scene's own.
func WithSystems(systems ...ecs.System) Option {
	return func(o *buildOptions) {
		o.extra = append(o.extra, systems...)
	}
}

// Build registers components, singletons and systems for cfg. A zero seed is
// replaced with one derived from the current time and stored back in the
// Config singleton.
func Build(cfg Config, opts ...Option) *App {
	var options buildOptions
	for _, opt := range opts {
		opt(&options)
	}

	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	registry := ecs.NewComponentRegistry()
	Register(registry)
	storage := ecs.NewStorage(registry)

	app := &App{
		Registry:  registry,
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		Config:    ecs.NewSingleton(storage, cfg),
		Clock:     ecs.NewSingleton[Clock](storage),
		Stats:     ecs.NewSingleton[CubeStats](storage),
		Records:   ecs.NewSingleton(storage, options.records),
		World:     ecs.NewSingleton(storage, physics.NewWorld(cfg.PhysicsSettings())),
	}
	ecs.NewSingleton(storage, NewRandom(cfg.Seed))

	sched := app.Scheduler
	sched.RegisterStartup(&SetupGraphicsSystem{})
	sched.RegisterStartup(&SetupPhysicsSystem{})

	sched.Register(&TimeSystem{})
	if w := options.watcher; w != nil {
		sched.Register(&ConfigReloadSystem{
			Path:   w.Path(),
			Events: w.Events,
			Errors: w.Errors,
		})
	}
	sched.Register(&SpawnCubeSystem{})
	sched.Register(&physics.System{})
	sched.Register(&DespawnSystem{})
	sched.Register(&CubeCountSystem{})
	for _, sys := range options.extra {
		sched.Register(sys)
	}
	return app
}

// Step advances the scene by dt seconds.
func (a *App) Step(dt float64) {
	a.Scheduler.Once(dt)
}

// FinishSession merges this run into the Records singleton and returns the
// result.
func (a *App) FinishSession() Records {
	records := a.Records.Get()
	records.Merge(*a.Stats.Get(), a.Clock.Get().Elapsed)
	return *records
}
