// Package debugui renders Dear ImGui debug windows for an ECS storage. Each
// window is an entity carrying an ImguiItem; ImguiSystem defers their render
// functions so they run after the frame's systems.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/cubefall/ecs"
)

// ImguiItem holds a Dear ImGui render function.
type ImguiItem struct {
	Render func()
}

// ImguiInputState records whether ImGui wants the mouse or keyboard this
// frame. Game input handlers should check it before acting.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates ImguiInputState and defers every ImguiItem render.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := i.InputState.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Iter() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// RegisterComponents adds the debugui component types to registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[ImguiInputState](registry)
}

// Spawn adds the stock windows: performance, entity inspector and one window
// per extra panel. Panels must call imgui.Begin/End themselves.
func Spawn(storage *ecs.Storage, scheduler *ecs.Scheduler, panels ...func()) {
	ecs.NewSingleton[ImguiInputState](storage)

	perf := NewPerformanceWindow(storage, scheduler, 120)
	storage.Spawn(ImguiItem{Render: perf.Render})

	inspector := NewInspector(storage, 100)
	storage.Spawn(ImguiItem{Render: inspector.Render})

	for _, panel := range panels {
		storage.Spawn(ImguiItem{Render: panel})
	}
}
