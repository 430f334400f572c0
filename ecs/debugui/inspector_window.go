package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/dodeca/inspector"
)

// InspectorWindow hosts an inspector.Controller in its own ImGui window.
// While the window is closed or collapsed no inspection pass runs.
type InspectorWindow struct {
	Title string
	Open  bool

	controller *inspector.Controller
	last       inspector.PassResult
}

// NewInspectorWindow returns an open window titled "Inspector".
func NewInspectorWindow(controller *inspector.Controller) *InspectorWindow {
	return &InspectorWindow{
		Title:      "Inspector",
		Open:       true,
		controller: controller,
	}
}

// LastPass is the result of the most recent pass.
func (w *InspectorWindow) LastPass() inspector.PassResult {
	return w.last
}

// Render draws the window. Call it inside an ImGui frame.
func (w *InspectorWindow) Render() {
	if !w.Open {
		return
	}

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 520), imgui.CondOnce)
	if imgui.BeginV(w.Title, &w.Open, imgui.WindowFlagsNone) {
		w.last = w.controller.Pass(ImguiSurface{})
		imgui.Separator()
		imgui.Text(fmt.Sprintf("%d shown, %d failed", w.last.Entities, w.last.Failed))
	}
	imgui.End()
}
