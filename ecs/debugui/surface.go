package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/chewxy/math32"
	"github.com/plus3/dodeca/inspector"
)

// ImguiSurface draws inspector widgets with Dear ImGui. It must be used
// between a Begin/End window pair.
type ImguiSurface struct{}

var _ inspector.Surface = ImguiSurface{}

func (ImguiSurface) Text(text string) { imgui.Text(text) }

func (ImguiSurface) SameLine() { imgui.SameLine() }

func (ImguiSurface) Separator() { imgui.Separator() }

// DragFloat reports Focused while the field is held or being typed into, and
// Dragged while the mouse drags it. Non-finite results are rolled back.
func (ImguiSurface) DragFloat(label string, v *float32, speed float32) inspector.Response {
	before := *v
	changed := imgui.DragFloatV(label, v, speed, 0, 0, "%.3f", imgui.SliderFlagsNone)
	if changed && (math32.IsNaN(*v) || math32.IsInf(*v, 0)) {
		*v = before
		changed = false
	}

	active := imgui.IsItemActive()
	return inspector.Response{
		Changed: changed,
		Focused: active,
		Dragged: active && imgui.IsMouseDragging(imgui.MouseButtonLeft),
	}
}

func (ImguiSurface) InputText(label string, v *string) bool {
	return imgui.InputTextWithHint(label, "", v, imgui.InputTextFlagsNone, nil)
}

func (ImguiSurface) Button(label string) bool { return imgui.Button(label) }

func (ImguiSurface) Checkbox(label string, v *bool) bool { return imgui.Checkbox(label, v) }

func (ImguiSurface) Combo(label string, current *int, items []string) bool {
	preview := ""
	if *current >= 0 && *current < len(items) {
		preview = items[*current]
	}
	if !imgui.BeginCombo(label, preview) {
		return false
	}
	defer imgui.EndCombo()

	changed := false
	for i, item := range items {
		selected := i == *current
		if imgui.SelectableBoolV(item, selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) && !selected {
			*current = i
			changed = true
		}
		if selected {
			imgui.SetItemDefaultFocus()
		}
	}
	return changed
}

func (ImguiSurface) BeginSection(label string) bool { return imgui.TreeNodeStr(label) }

func (ImguiSurface) EndSection() { imgui.TreePop() }

func (ImguiSurface) PushID(id string) { imgui.PushIDStr(id) }

func (ImguiSurface) PopID() { imgui.PopID() }
