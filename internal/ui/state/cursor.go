package state

// Clamp pins i to a valid cell index. Empty registries clamp to 0.
func (r *Registry) Clamp(i int) int {
	if r.size == 0 || i < 0 {
		return 0
	}
	if i >= r.size {
		return r.size - 1
	}
	return i
}

// First returns the first cell index.
func (r *Registry) First() int {
	return 0
}

// Last returns the last cell index.
func (r *Registry) Last() int {
	return r.Clamp(r.size - 1)
}
