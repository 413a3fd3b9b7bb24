// Package code holds the state machine behind the segmented one-time-code
// field: an immutable Buffer of single-character slots, the Alphabet used to
// filter raw input, the Router that turns typed text, pastes and key presses
// into buffer transitions plus a focus target, and the completion/submission
// checks.
//
// Nothing in this package knows about Bubble Tea or terminals. The ui package
// translates tea messages into Router calls and applies the resulting
// Transition to its cells.
package code
