// Package ui contains the Bubble Tea program behind the one-time-code popup.
// Model owns the code buffer and the cell handles; the decisions about what a
// key press, a paste or a burst of typed runes does live in internal/code.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg has a focused function.
//   - Key messages are split into three channels (internal/ui/input.go):
//     bracketed pastes and ctrl+v go to the paste router, backspace and the
//     arrow keys go to the key router, and typed runes go to the text router.
//     Every routed event replaces the buffer wholesale and then asks the cell
//     registry to focus (and select) the target cell.
//   - Enter submits. A complete code is handed to the Deliverer through the
//     command bus (internal/ui/command); the result arrives back as a
//     command.Result and ends the program on success.
//
// State ownership:
//   - The code buffer is a code.Buffer value replaced on every transition.
//   - Cell focus handles are bubbles textinput models registered with an
//     internal/ui/state.Registry, which keeps exactly one of them focused.
package ui
