package main

import (
	"fmt"
	"math"

	"github.com/AllenDang/cimgui-go/imgui"
)

// sceneWindow shows cube statistics, records and the live tunables.
func sceneWindow(g *Game) func() {
	app := g.app
	return func() {
		imgui.SetNextWindowPosV(imgui.NewVec2(810, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(300, 360), imgui.CondOnce)
		if !imgui.BeginV("Scene", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		clock := app.Clock.Get()
		stats := app.Stats.Get()
		imgui.Text(fmt.Sprintf("Time: %.1f s (frame %d)", clock.Elapsed, clock.Frame))
		imgui.Text(fmt.Sprintf("Live: %d  Peak: %d", stats.Live, stats.Peak))
		imgui.Text(fmt.Sprintf("Spawned: %d  Despawned: %d", stats.Spawned, stats.Despawned))
		if world := app.World.Get(); world != nil {
			imgui.Text(fmt.Sprintf("Bodies: %d  Steps: %d", world.BodyCount(), world.Steps()))
		}

		imgui.Checkbox("Paused (P)", &g.paused)
		imgui.SameLine()
		if imgui.Button("Step (.)") {
			g.step = true
		}

		imgui.Separator()
		cfg := app.Config.Get()
		imgui.Text(fmt.Sprintf("Seed: %d", cfg.Seed))
		editFloat("Spawn interval", &cfg.Spawn.Interval, 0.01)
		editFloat("Spawn height", &cfg.Spawn.Height, math.Inf(-1))
		editFloat("Spawn radius", &cfg.Spawn.Radius, 0)
		editFloat("Max spin", &cfg.Spawn.MaxSpin, 0)
		editFloat("Despawn below", &cfg.Despawn.Threshold, math.Inf(-1))

		if imgui.TreeNodeStr("Records") {
			records := app.Records.Get()
			imgui.Text(fmt.Sprintf("Sessions: %d", records.Sessions))
			imgui.Text(fmt.Sprintf("Total spawned: %d", records.TotalSpawned))
			imgui.Text(fmt.Sprintf("Peak live: %d", records.PeakLive))
			imgui.Text(fmt.Sprintf("Longest run: %.0f s", records.LongestRun))
			imgui.TreePop()
		}
		imgui.End()
	}
}

// editFloat edits v in place, refusing values below floor.
func editFloat(label string, v *float64, floor float64) {
	f := float32(*v)
	imgui.SetNextItemWidth(120)
	if imgui.InputFloat(label, &f) && float64(f) >= floor {
		*v = float64(f)
	}
}
