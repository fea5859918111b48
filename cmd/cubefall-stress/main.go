// Command cubefall-stress runs the cube scene headless with a fixed timestep
// for a wall-clock duration or a frame count and prints a timing and memory
// report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/plus3/cubefall/scene"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "Wall-clock time to run for.")
	frames := flag.Int64("frames", 0, "Stop after this many frames when positive.")
	configPath := flag.String("config", "", "Optional YAML config file.")
	seed := flag.Uint64("seed", 1, "Random seed; 0 picks one from the clock.")
	step := flag.Float64("dt", 1.0/60.0, "Simulated seconds per frame.")
	interval := flag.Float64("interval", 0, "Override spawn.interval when positive.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Include GC pause totals in the report.")
	flag.Parse()

	cfg := scene.DefaultConfig()
	if *configPath != "" {
		loaded, err := scene.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("cubefall-stress: %v", err)
		}
		cfg = loaded
	}
	cfg.Seed = *seed
	if *interval > 0 {
		cfg.Spawn.Interval = *interval
	}

	log.Println("Starting cube stress run...")
	app := scene.Build(cfg)

	report := &Report{
		Duration:       *duration,
		Frames:         *frames,
		Step:           *step,
		Seed:           app.Config.Get().Seed,
		SpawnInterval:  cfg.Spawn.Interval,
		GCPauseMetrics: *gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running for %s at dt=%.4f...\n", *duration, *step)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	start := time.Now()
Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			if *frames > 0 && int64(len(report.UpdateTime.Samples)) >= *frames {
				break Loop
			}
			updateStart := time.Now()
			app.Step(*step)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(start)
	report.TotalUpdates = int64(len(report.UpdateTime.Samples))
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.SimulatedTime = app.Clock.Get().Elapsed
	report.Cubes = *app.Stats.Get()
	report.Entities = app.Storage.Count()
	report.Bodies = app.World.Get().BodyCount()
	report.PhysicsSteps = app.World.Get().Steps()
	report.Systems = app.Scheduler.GetStats().Systems

	log.Println("Run finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
