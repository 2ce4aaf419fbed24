// Package debugui draws Dear ImGui windows from inside the ECS. Windows are
// entities carrying an ImguiItem; ImguiSystem renders them every frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/flapper/ecs"
)

// ImguiItem holds a render function called once per frame between the
// backend's BeginFrame and EndFrame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard this
// frame, so game input can step aside.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and defers every item's render
// function to the end of the frame.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

// Execute copies ImGui's capture flags and queues every item's Render.
func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// RegisterComponents registers the debug UI component types with registry.
func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
}

// Spawn adds the performance window for storage and one statistics window
// per scheduler, titled by name.
func Spawn(storage *ecs.Storage, schedulers map[string]*ecs.Scheduler) {
	ecs.NewSingleton(storage, ImguiInputState{})

	perf := NewPerformanceWindow(120)
	storage.Spawn(ImguiItem{Render: func() { perf.Render(storage) }})

	for name, scheduler := range schedulers {
		window := &SchedulerWindow{Title: name + " systems", Scheduler: scheduler}
		storage.Spawn(ImguiItem{Render: window.Render})
	}
}
