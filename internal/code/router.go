package code

// Key is a key press the router understands. Anything else is KeyOther and is
// left to the text-input channel.
type Key int

const (
	KeyOther Key = iota
	KeyDeleteBackward
	KeyMoveLeft
	KeyMoveRight
)

func (k Key) String() string {
	switch k {
	case KeyDeleteBackward:
		return "delete-backward"
	case KeyMoveLeft:
		return "move-left"
	case KeyMoveRight:
		return "move-right"
	default:
		return "other"
	}
}

// Transition is the outcome of routing one input event: the buffer that
// replaces the current one and the slot that must receive focus afterwards.
// Suppress tells the caller to skip any default handling of the event.
type Transition struct {
	Buffer   Buffer
	Focus    int
	Suppress bool
}

// Changed reports whether the transition produced different slot values.
func (t Transition) Changed(prev Buffer) bool {
	return !t.Buffer.Equal(prev)
}

// Router classifies raw input events against an alphabet.
type Router struct {
	alphabet Alphabet
}

// NewRouter returns a router filtering input through alphabet.
func NewRouter(alphabet Alphabet) Router {
	return Router{alphabet: alphabet}
}

// Alphabet returns the router's character class.
func (r Router) Alphabet() Alphabet {
	return r.alphabet
}

// HandleTextInput routes the text a cell would hold after a change event.
// No accepted characters clears the slot and keeps focus; one accepted
// character fills the slot and advances; a longer burst (autofill) is spread
// over the following slots.
func (r Router) HandleTextInput(buf Buffer, slot int, raw string) Transition {
	if !inRange(buf, slot) {
		return stay(buf, slot)
	}
	chars := r.alphabet.Filter(raw)
	switch len(chars) {
	case 0:
		return Transition{Buffer: buf.Replace(slot, ""), Focus: slot}
	case 1:
		next := slot + 1
		if next > buf.Len()-1 {
			next = slot
		}
		return Transition{Buffer: buf.Replace(slot, string(chars[0])), Focus: next}
	default:
		return distribute(buf, slot, chars)
	}
}

// HandlePaste routes an explicit paste. The payload is never inserted as is,
// so the transition always suppresses default handling. A payload without
// accepted characters leaves buffer and focus unchanged.
func (r Router) HandlePaste(buf Buffer, slot int, text string) Transition {
	if !inRange(buf, slot) {
		t := stay(buf, slot)
		t.Suppress = true
		return t
	}
	chars := r.alphabet.Filter(text)
	if len(chars) == 0 {
		return Transition{Buffer: buf, Focus: slot, Suppress: true}
	}
	t := distribute(buf, slot, chars)
	t.Suppress = true
	return t
}

// HandleKey routes navigation and deletion keys. Backspace on an empty cell
// clears the previous cell and moves there.
func (r Router) HandleKey(buf Buffer, slot int, key Key) Transition {
	if !inRange(buf, slot) {
		return stay(buf, slot)
	}
	switch key {
	case KeyDeleteBackward:
		if !buf.IsEmpty(slot) {
			return Transition{Buffer: buf.Replace(slot, ""), Focus: slot, Suppress: true}
		}
		if slot > 0 {
			return Transition{Buffer: buf.Replace(slot-1, ""), Focus: slot - 1, Suppress: true}
		}
	case KeyMoveLeft:
		if slot > 0 {
			return Transition{Buffer: buf, Focus: slot - 1, Suppress: true}
		}
	case KeyMoveRight:
		if slot < buf.Len()-1 {
			return Transition{Buffer: buf, Focus: slot + 1, Suppress: true}
		}
	}
	return Transition{Buffer: buf, Focus: slot}
}

func distribute(buf Buffer, slot int, chars []rune) Transition {
	next, written := buf.Distribute(slot, chars)
	focus := slot + written
	if last := buf.Len() - 1; focus > last {
		focus = last
	}
	return Transition{Buffer: next, Focus: focus}
}

func inRange(buf Buffer, slot int) bool {
	return slot >= 0 && slot < buf.Len()
}

func stay(buf Buffer, slot int) Transition {
	if slot >= buf.Len() {
		slot = buf.Len() - 1
	}
	if slot < 0 {
		slot = 0
	}
	return Transition{Buffer: buf, Focus: slot}
}
