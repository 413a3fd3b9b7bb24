package code

import (
	"strings"
	"unicode/utf8"
)

// Buffer is a fixed-length sequence of slots, each either empty or holding a
// single character. Buffers are values: every mutator returns a new Buffer and
// leaves the receiver untouched, so a published buffer never changes under an
// observer that still holds it.
type Buffer struct {
	slots []string
}

// NewBuffer returns an all-empty buffer with n slots.
func NewBuffer(n int) Buffer {
	if n < 0 {
		n = 0
	}
	return Buffer{slots: make([]string, n)}
}

// BufferOf builds a buffer from slot values. Values longer than one character
// keep only their first rune.
func BufferOf(values ...string) Buffer {
	b := NewBuffer(len(values))
	for i, v := range values {
		b.slots[i] = firstRune(v)
	}
	return b
}

// Len reports the number of slots.
func (b Buffer) Len() int {
	return len(b.slots)
}

// At returns the value at i, or "" when i is empty or out of range.
func (b Buffer) At(i int) string {
	if i < 0 || i >= len(b.slots) {
		return ""
	}
	return b.slots[i]
}

// IsEmpty reports whether slot i holds nothing.
func (b Buffer) IsEmpty(i int) bool {
	return b.At(i) == ""
}

// Filled counts the non-empty slots.
func (b Buffer) Filled() int {
	n := 0
	for _, v := range b.slots {
		if v != "" {
			n++
		}
	}
	return n
}

// Values returns a copy of the slot values.
func (b Buffer) Values() []string {
	return append([]string(nil), b.slots...)
}

// String joins the slots in order. Empty slots contribute nothing.
func (b Buffer) String() string {
	return strings.Join(b.slots, "")
}

// Equal reports whether both buffers hold the same values.
func (b Buffer) Equal(other Buffer) bool {
	if len(b.slots) != len(other.slots) {
		return false
	}
	for i := range b.slots {
		if b.slots[i] != other.slots[i] {
			return false
		}
	}
	return true
}

// Replace returns a copy of b with slot i set to value. An empty value clears
// the slot; longer values keep their first rune. Out of range indexes yield an
// unchanged copy.
func (b Buffer) Replace(i int, value string) Buffer {
	next := b.clone()
	if i < 0 || i >= len(next.slots) {
		return next
	}
	next.slots[i] = firstRune(value)
	return next
}

// Distribute writes chars left to right starting at slot start, one per slot,
// stopping at the last slot or when chars run out. Slots outside the written
// range keep their values. The number of slots written is returned alongside
// the new buffer.
func (b Buffer) Distribute(start int, chars []rune) (Buffer, int) {
	next := b.clone()
	if start < 0 || start >= len(next.slots) {
		return next, 0
	}
	written := 0
	for j := start; j < len(next.slots) && written < len(chars); j++ {
		next.slots[j] = string(chars[written])
		written++
	}
	return next, written
}

func (b Buffer) clone() Buffer {
	return Buffer{slots: append(make([]string, 0, len(b.slots)), b.slots...)}
}

func firstRune(v string) string {
	if v == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(v)
	if r == utf8.RuneError && size <= 1 {
		return ""
	}
	return v[:size]
}
