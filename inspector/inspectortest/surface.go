// Package inspectortest provides a scripted inspector.Surface for tests and
// headless runs.
package inspectortest

import (
	"strings"

	"github.com/chewxy/math32"
	"github.com/plus3/dodeca/inspector"
)

type dragStep struct {
	value    float32
	set      bool
	response inspector.Response
}

// Surface records what is drawn and answers widgets from a script. Widgets
// are addressed by path: the pushed ids and open sections followed by the
// label, joined with "/". A script path matches any widget whose path ends
// with it on a "/" boundary. Scripted steps are consumed when matched.
type Surface struct {
	drags   map[string][]dragStep
	clicks  map[string]int
	texts   map[string][]string
	selects map[string][]int
	toggles map[string]int
	closed  map[string]bool

	stack []string

	// Drawn lists the path of every widget drawn since the last Reset.
	Drawn []string
	// Lines holds the output of Text calls since the last Reset.
	Lines []string
}

var _ inspector.Surface = (*Surface)(nil)

// New returns a surface with an empty script.
func New() *Surface {
	return &Surface{
		drags:   make(map[string][]dragStep),
		clicks:  make(map[string]int),
		texts:   make(map[string][]string),
		selects: make(map[string][]int),
		toggles: make(map[string]int),
		closed:  make(map[string]bool),
	}
}

// Drag makes the next matching DragFloat write value and report changed, with
// the given focus state.
func (s *Surface) Drag(path string, value float32, focused bool) *Surface {
	s.drags[path] = append(s.drags[path], dragStep{
		value:    value,
		set:      true,
		response: inspector.Response{Changed: true, Focused: focused, Dragged: focused},
	})
	return s
}

// Hold makes the next matching DragFloat report focus without a change.
func (s *Surface) Hold(path string) *Surface {
	s.drags[path] = append(s.drags[path], dragStep{response: inspector.Response{Focused: true}})
	return s
}

// Click makes the next matching Button return true.
func (s *Surface) Click(path string) *Surface {
	s.clicks[path]++
	return s
}

// Type makes the next matching InputText replace its value.
func (s *Surface) Type(path, text string) *Surface {
	s.texts[path] = append(s.texts[path], text)
	return s
}

// Select makes the next matching Combo choose index.
func (s *Surface) Select(path string, index int) *Surface {
	s.selects[path] = append(s.selects[path], index)
	return s
}

// Toggle makes the next matching Checkbox flip.
func (s *Surface) Toggle(path string) *Surface {
	s.toggles[path]++
	return s
}

// Collapse keeps matching sections closed until Expand is called.
func (s *Surface) Collapse(path string) *Surface {
	s.closed[path] = true
	return s
}

// Expand undoes Collapse.
func (s *Surface) Expand(path string) *Surface {
	delete(s.closed, path)
	return s
}

// Reset clears Drawn and Lines. The script is kept.
func (s *Surface) Reset() {
	s.Drawn = s.Drawn[:0]
	s.Lines = s.Lines[:0]
}

// Pending counts scripted steps not yet consumed.
func (s *Surface) Pending() int {
	n := 0
	for _, steps := range s.drags {
		n += len(steps)
	}
	for _, c := range s.clicks {
		n += c
	}
	for _, t := range s.texts {
		n += len(t)
	}
	for _, sel := range s.selects {
		n += len(sel)
	}
	for _, t := range s.toggles {
		n += t
	}
	return n
}

// Depth is the number of ids and sections currently open. It is zero between
// balanced frames.
func (s *Surface) Depth() int {
	return len(s.stack)
}

// WasDrawn reports whether a widget matching path was drawn since the last Reset.
func (s *Surface) WasDrawn(path string) bool {
	for _, full := range s.Drawn {
		if matches(full, path) {
			return true
		}
	}
	return false
}

func matches(full, path string) bool {
	return full == path || strings.HasSuffix(full, "/"+path)
}

func (s *Surface) path(label string) string {
	full := strings.Join(append(s.stack[:len(s.stack):len(s.stack)], label), "/")
	s.Drawn = append(s.Drawn, full)
	return full
}

// take finds the first script key matching full.
func take[V any](script map[string][]V, full string) (V, bool) {
	for key, steps := range script {
		if len(steps) == 0 || !matches(full, key) {
			continue
		}
		step := steps[0]
		if len(steps) == 1 {
			delete(script, key)
		} else {
			script[key] = steps[1:]
		}
		return step, true
	}
	var zero V
	return zero, false
}

func takeCount(script map[string]int, full string) bool {
	for key, n := range script {
		if n == 0 || !matches(full, key) {
			continue
		}
		if n == 1 {
			delete(script, key)
		} else {
			script[key] = n - 1
		}
		return true
	}
	return false
}

func (s *Surface) Text(text string) {
	s.Lines = append(s.Lines, text)
}

func (s *Surface) SameLine()  {}
func (s *Surface) Separator() {}

func (s *Surface) DragFloat(label string, v *float32, _ float32) inspector.Response {
	step, ok := take(s.drags, s.path(label))
	if !ok {
		return inspector.Response{}
	}
	if step.set {
		if math32.IsNaN(step.value) || math32.IsInf(step.value, 0) {
			step.response.Changed = false
		} else {
			*v = step.value
		}
	}
	return step.response
}

func (s *Surface) InputText(label string, v *string) bool {
	text, ok := take(s.texts, s.path(label))
	if !ok {
		return false
	}
	*v = text
	return true
}

func (s *Surface) Button(label string) bool {
	return takeCount(s.clicks, s.path(label))
}

func (s *Surface) Checkbox(label string, v *bool) bool {
	if !takeCount(s.toggles, s.path(label)) {
		return false
	}
	*v = !*v
	return true
}

func (s *Surface) Combo(label string, current *int, items []string) bool {
	index, ok := take(s.selects, s.path(label))
	if !ok || index < 0 || index >= len(items) {
		return false
	}
	*current = index
	return true
}

func (s *Surface) BeginSection(label string) bool {
	full := s.path(label)
	for key := range s.closed {
		if matches(full, key) {
			return false
		}
	}
	s.stack = append(s.stack, label)
	return true
}

func (s *Surface) EndSection() {
	s.pop()
}

func (s *Surface) PushID(id string) {
	s.stack = append(s.stack, id)
}

func (s *Surface) PopID() {
	s.pop()
}

func (s *Surface) pop() {
	if len(s.stack) == 0 {
		panic("inspectortest: unbalanced pop")
	}
	s.stack = s.stack[:len(s.stack)-1]
}
