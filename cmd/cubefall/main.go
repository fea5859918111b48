// Command cubefall drops a stream of colored cubes onto a platform and counts
// how many are still in play.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata/v2"

	"github.com/plus3/cubefall/ecs"
	"github.com/plus3/cubefall/ecs/debugui"
	debugui_ebiten "github.com/plus3/cubefall/ecs/debugui/ebiten"
	"github.com/plus3/cubefall/render"
	"github.com/plus3/cubefall/scene"
)

const appName = "cubefall"

func main() {
	os.Exit(run())
}

// run returns the process exit code. Records are saved even when the game
// loop fails.
func run() int {
	configPath := flag.String("config", "", "YAML config file; defaults are used when empty.")
	watch := flag.Bool("watch", false, "Reload spawn, despawn, light and label settings when the config file changes.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug windows.")
	seed := flag.Uint64("seed", 0, "Random seed; overrides the config file when non-zero.")
	flag.Parse()

	cfg := scene.DefaultConfig()
	if *configPath != "" {
		loaded, err := scene.LoadConfig(*configPath)
		if err != nil {
			log.Printf("cubefall: %v", err)
			return 1
		}
		cfg = loaded
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	store := openRecordStore()
	records, err := scene.LoadRecords(store)
	if err != nil {
		log.Printf("cubefall: %v; starting with empty records", err)
		records = scene.Records{}
	}

	opts := []scene.Option{scene.WithRecords(records)}
	if *watch {
		if *configPath == "" {
			log.Printf("cubefall: -watch needs -config")
			return 2
		}
		watcher, err := scene.NewWatcher(*configPath)
		if err != nil {
			log.Printf("cubefall: %v", err)
			return 1
		}
		defer watcher.Close()
		opts = append(opts, scene.WithWatcher(watcher))
	}

	app := scene.Build(cfg, opts...)
	log.Printf("cubefall: seed %d", app.Config.Get().Seed)

	game, err := newGame(app, *debug)
	if err != nil {
		log.Printf("cubefall: %v", err)
		return 1
	}

	code := 0
	if err := ebiten.RunGame(game); err != nil {
		log.Printf("cubefall: %v", err)
		code = 1
	}

	final := saveSession(app, store)
	log.Printf("cubefall: spawned %d cubes, peak %d (all-time peak %d over %d sessions)",
		app.Stats.Get().Spawned, app.Stats.Get().Peak, final.PeakLive, final.Sessions)
	return code
}

// saveSession folds the finished run into the records and persists them.
func saveSession(app *scene.App, store scene.RecordStore) scene.Records {
	final := app.FinishSession()
	if err := scene.SaveRecords(store, final); err != nil {
		log.Printf("cubefall: %v", err)
	}
	return final
}

// openRecordStore returns nil when the data directory is unavailable; the
// scene then runs without persistent records.
func openRecordStore() scene.RecordStore {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("cubefall: records disabled: %v", err)
		return nil
	}
	return manager
}

func newGame(app *scene.App, debug bool) (*Game, error) {
	cfg := app.Config.Get().Window

	renderer, err := render.NewSystem()
	if err != nil {
		return nil, err
	}
	draw := ecs.NewScheduler(app.Storage)
	draw.Register(renderer)

	game := &Game{
		app:      app,
		draw:     draw,
		renderer: renderer,
	}

	if !debug {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		ebiten.SetWindowTitle(cfg.Title)
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
		return game, nil
	}

	debugui.RegisterComponents(app.Registry)
	game.imgui = debugui_ebiten.NewImguiBackend(app.Storage, cfg.Title, cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	debugui.Spawn(app.Storage, app.Scheduler, sceneWindow(game))
	game.overlay = ecs.NewScheduler(app.Storage)
	game.overlay.Register(&debugui.ImguiSystem{})
	game.input = ecs.NewSingleton[debugui.ImguiInputState](app.Storage)
	return game, nil
}
