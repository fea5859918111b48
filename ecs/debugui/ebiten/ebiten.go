// Package ebiten hosts the Dear ImGui Ebiten backend inside an ECS storage.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/cubefall/ecs"
)

// ImguiBackend wraps the Ebiten Dear ImGui backend. It is stored as a
// singleton so game loops can reach it through the storage.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// NewImguiBackend creates the backend and its window, disables imgui.ini and
// stores the backend as a singleton in storage.
func NewImguiBackend(storage *ecs.Storage, title string, width, height int) *ecs.Singleton[ImguiBackend] {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	ecs.RegisterComponent[ImguiBackend](storage.Registry())
	return ecs.NewSingleton(storage, ImguiBackend{EbitenBackend: backend})
}

// BeginFrame starts an ImGui frame; call it at the top of Update.
func (b *ImguiBackend) BeginFrame() {
	if b != nil && b.EbitenBackend != nil {
		b.EbitenBackend.BeginFrame()
	}
}

// EndFrame finishes the ImGui frame; call it at the end of Update.
func (b *ImguiBackend) EndFrame() {
	if b != nil && b.EbitenBackend != nil {
		b.EbitenBackend.EndFrame()
	}
}

// Draw renders the ImGui overlay on top of screen.
func (b *ImguiBackend) Draw(screen *ebiten.Image) {
	if b != nil && b.EbitenBackend != nil {
		b.EbitenBackend.Draw(screen)
	}
}

// Layout forwards the window size to ImGui.
func (b *ImguiBackend) Layout(width, height int) {
	if b != nil && b.EbitenBackend != nil {
		b.EbitenBackend.Layout(width, height)
	}
}
