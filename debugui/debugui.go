// Package debugui draws a Dear ImGui overlay on top of the Ebiten frontend
// showing frame timing, scheduler statistics and the live session.
package debugui

import (
	"context"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/rowbreak/game"
)

// ImguiItem is one window of the overlay.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks whether ImGui wants the pointer or keyboard this
// frame. Game input should be dropped while it does.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay owns the ImGui backend and the debug windows.
type Overlay struct {
	backend *ebitenbackend.EbitenBackend
	items   []ImguiItem
	input   ImguiInputState

	perf    *PerformanceStats
	session *SessionInspector
}

// New creates the backend and the default windows for g. It must be called
// before ebiten.RunGame.
func New(g *game.Game, title string, width, height int) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	o := &Overlay{
		backend: backend,
		perf:    NewPerformanceStats(g, 120),
		session: NewSessionInspector(g),
	}
	o.Add(ImguiItem{Render: o.perf.Render})
	o.Add(ImguiItem{Render: o.session.Render})
	o.Add(ImguiItem{Render: newBoardViewer(g).Render})
	return o
}

// Add appends a window.
func (o *Overlay) Add(item ImguiItem) {
	o.items = append(o.items, item)
}

// Update builds this frame's windows. Call it once per ebiten Update after
// the game has advanced. A restart requested from the session window is
// applied here and its error returned.
func (o *Overlay) Update(ctx context.Context, frameSeconds float32) error {
	o.backend.BeginFrame()
	defer o.backend.EndFrame()

	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	o.perf.Record(frameSeconds)
	for _, item := range o.items {
		item.Render()
	}
	return o.session.apply(ctx)
}

// Input returns the capture state of the last Update.
func (o *Overlay) Input() ImguiInputState {
	return o.input
}

// Paused reports whether the session window has paused the game.
func (o *Overlay) Paused() bool {
	return o.session.paused
}

// Draw paints the overlay on top of screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Draw(screen)
}

// Layout forwards the outside size to the backend.
func (o *Overlay) Layout(outsideWidth, outsideHeight int) {
	o.backend.Layout(outsideWidth, outsideHeight)
}
