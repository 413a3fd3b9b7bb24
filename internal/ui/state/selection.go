package state

// Selected reports whether the content of cell i is selected, meaning the
// next keystroke replaces it.
func (r *Registry) Selected(i int) bool {
	return r.selected >= 0 && r.selected == i
}

// ClearSelection drops the selection without touching focus.
func (r *Registry) ClearSelection() {
	r.selected = -1
}

func (r *Registry) selectIndex(i int) {
	r.selected = i
}
