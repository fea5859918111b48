package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/cubefall/ecs"
	"github.com/plus3/cubefall/ecs/debugui"
	debugui_ebiten "github.com/plus3/cubefall/ecs/debugui/ebiten"
	"github.com/plus3/cubefall/render"
	"github.com/plus3/cubefall/scene"
)

// Game runs the scene scheduler in Update and the render scheduler in Draw.
type Game struct {
	app      *scene.App
	draw     *ecs.Scheduler
	renderer *render.System

	// set only with -debug
	imgui   *ecs.Singleton[debugui_ebiten.ImguiBackend]
	overlay *ecs.Scheduler
	input   *ecs.Singleton[debugui.ImguiInputState]

	paused bool
	step   bool
}

func (g *Game) keyboardFree() bool {
	if g.input == nil {
		return true
	}
	state := g.input.Get()
	return state == nil || !state.WantCaptureKeyboard
}

func (g *Game) Update() error {
	if g.keyboardFree() {
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyP) {
			g.paused = !g.paused
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyPeriod) {
			g.step = true
		}
	}

	if g.imgui != nil {
		g.imgui.Get().BeginFrame()
	}

	if !g.paused || g.step {
		g.app.Step(1.0 / float64(ebiten.TPS()))
		g.step = false
	}

	if g.imgui != nil {
		g.overlay.Once(0)
		g.imgui.Get().EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Screen = screen
	g.draw.Once(0)
	g.renderer.Screen = nil

	if g.imgui != nil {
		g.imgui.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Get().Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
