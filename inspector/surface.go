package inspector

// Response is what a numeric field reports for one frame.
type Response struct {
	Changed bool // value was edited this frame
	Focused bool // widget has keyboard focus or is held
	Dragged bool // mouse drag in progress
}

// Active reports whether the widget is still in use.
func (r Response) Active() bool {
	return r.Focused || r.Dragged
}

// Surface is the immediate-mode UI the inspector draws into. Implementations
// never hand back non-finite numbers; such edits are rejected before the value
// is written.
//
// Labels are scoped by PushID and by open sections, so the same label may be
// used in different sections.
type Surface interface {
	Text(text string)
	SameLine()
	Separator()

	DragFloat(label string, v *float32, speed float32) Response
	InputText(label string, v *string) bool
	Button(label string) bool
	Checkbox(label string, v *bool) bool
	Combo(label string, current *int, items []string) bool

	// BeginSection opens a collapsible section. EndSection must be called
	// only when BeginSection returned true.
	BeginSection(label string) bool
	EndSection()

	PushID(id string)
	PopID()
}

// DragVec3 draws three labelled fields for v and reports their combined response.
func DragVec3(ui Surface, labels [3]string, v *[3]float32, speed float32) Response {
	var combined Response
	for i, label := range labels {
		r := ui.DragFloat(label, &v[i], speed)
		combined.Changed = combined.Changed || r.Changed
		combined.Focused = combined.Focused || r.Focused
		combined.Dragged = combined.Dragged || r.Dragged
	}
	return combined
}

// sectionGuard tracks open sections so a panicking renderer can be unwound.
type sectionGuard struct {
	Surface
	depth int
	ids   int
}

func (g *sectionGuard) BeginSection(label string) bool {
	open := g.Surface.BeginSection(label)
	if open {
		g.depth++
	}
	return open
}

func (g *sectionGuard) EndSection() {
	if g.depth > 0 {
		g.depth--
	}
	g.Surface.EndSection()
}

func (g *sectionGuard) PushID(id string) {
	g.ids++
	g.Surface.PushID(id)
}

func (g *sectionGuard) PopID() {
	if g.ids > 0 {
		g.ids--
	}
	g.Surface.PopID()
}

func (g *sectionGuard) unwind() {
	for ; g.depth > 0; g.depth-- {
		g.Surface.EndSection()
	}
	for ; g.ids > 0; g.ids-- {
		g.Surface.PopID()
	}
}

// hiddenSurface draws nothing and reports no interaction.
type hiddenSurface struct{}

func (hiddenSurface) Text(string) {}
func (hiddenSurface) SameLine()   {}
func (hiddenSurface) Separator()  {}

func (hiddenSurface) DragFloat(string, *float32, float32) Response { return Response{} }
func (hiddenSurface) InputText(string, *string) bool               { return false }
func (hiddenSurface) Button(string) bool                           { return false }
func (hiddenSurface) Checkbox(string, *bool) bool                  { return false }
func (hiddenSurface) Combo(string, *int, []string) bool            { return false }

func (hiddenSurface) BeginSection(string) bool { return false }
func (hiddenSurface) EndSection()              {}
func (hiddenSurface) PushID(string)            {}
func (hiddenSurface) PopID()                   {}
