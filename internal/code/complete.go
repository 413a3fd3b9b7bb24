package code

import (
	"errors"
	"fmt"
)

// ErrRejected is returned by Submit when at least one slot is still empty.
var ErrRejected = errors.New("code incomplete")

// IsComplete reports whether every slot holds exactly one character.
func IsComplete(buf Buffer) bool {
	for i := 0; i < buf.Len(); i++ {
		if buf.IsEmpty(i) {
			return false
		}
	}
	return true
}

// Submit returns the joined code when buf is complete. Incomplete buffers are
// rejected with an error wrapping ErrRejected.
func Submit(buf Buffer) (string, error) {
	if !IsComplete(buf) {
		return "", fmt.Errorf("%w: %d of %d cells filled", ErrRejected, buf.Filled(), buf.Len())
	}
	return buf.String(), nil
}
