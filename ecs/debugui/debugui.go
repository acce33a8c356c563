// Package debugui provides immediate-mode GUI integration for ECS applications using Dear ImGui.
// Tool windows live on entities of an ECS instance and are rendered by ImguiSystem.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/lazyengine/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state.
// Use this to determine if ImGui is consuming mouse or keyboard input.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem defers the render function of every ImguiItem so they run after
// the frame's other systems, and refreshes InputState.
type ImguiSystem struct {
	ecs.BaseSystem
	Items      ecs.View[struct{ *ImguiItem }]
	InputState ImguiInputState
}

func (i *ImguiSystem) OnUpdate(dt float64) {
	io := imgui.CurrentIO()
	i.InputState.WantCaptureMouse = io.WantCaptureMouse()
	i.InputState.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range i.Items.Values() {
		if item.Render != nil {
			i.Commands().Defer(item.Render)
		}
	}
}
