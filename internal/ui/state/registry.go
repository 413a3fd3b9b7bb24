package state

import tea "github.com/charmbracelet/bubbletea"

// Focusable is the handle a cell exposes to the registry. *textinput.Model
// satisfies it.
type Focusable interface {
	Focus() tea.Cmd
	Blur()
	Focused() bool
}

// Registry maps cell indexes to focus handles. It does not own the handles:
// a handle may be replaced when its cell is recreated, and a missing handle
// turns focus requests into no-ops.
type Registry struct {
	size     int
	handles  map[int]Focusable
	focused  int
	selected int
}

// NewRegistry returns a registry for size cells with nothing focused.
func NewRegistry(size int) *Registry {
	if size < 0 {
		size = 0
	}
	return &Registry{
		size:     size,
		handles:  make(map[int]Focusable, size),
		focused:  -1,
		selected: -1,
	}
}

// Len returns the number of cell indexes the registry covers.
func (r *Registry) Len() int {
	return r.size
}

// Register stores h as the handle for index i. Indexes outside the registry
// are ignored. A handle registered for the focused index takes the focus
// over, and the command its Focus returned is passed back to the caller.
func (r *Registry) Register(i int, h Focusable) tea.Cmd {
	if i < 0 || i >= r.size || h == nil {
		return nil
	}
	r.handles[i] = h
	if r.focused == i && !h.Focused() {
		return h.Focus()
	}
	return nil
}

// Unregister drops the handle for i. Focus bookkeeping is kept so a
// re-registered handle picks it up again.
func (r *Registry) Unregister(i int) {
	delete(r.handles, i)
}

// Handle returns the handle registered for i.
func (r *Registry) Handle(i int) (Focusable, bool) {
	h, ok := r.handles[i]
	return h, ok
}

// Focus moves focus to i and selects its content. Every other handle is
// blurred. When no handle is registered for i the request is dropped and
// the previous focus stays in place; ok reports whether focus moved.
func (r *Registry) Focus(i int) (cmd tea.Cmd, ok bool) {
	target, exists := r.handles[i]
	if !exists {
		return nil, false
	}
	for idx, h := range r.handles {
		if idx != i && h.Focused() {
			h.Blur()
		}
	}
	cmd = target.Focus()
	r.focused = i
	r.selectIndex(i)
	return cmd, true
}

// Focused returns the focused index, or -1 before the first focus.
func (r *Registry) Focused() int {
	return r.focused
}
