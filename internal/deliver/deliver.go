// Package deliver hands an accepted code to its destination: standard output
// for shell capture, a tmux paste buffer, or literal keystrokes into a pane.
package deliver

import (
	"fmt"
	"io"
	"strings"

	"github.com/atomicstack/tmux-popup-otp/internal/logging/events"
	"github.com/atomicstack/tmux-popup-otp/internal/tmux"
)

// Mode selects where an accepted code goes.
type Mode string

const (
	ModeStdout   Mode = "stdout"
	ModeBuffer   Mode = "buffer"
	ModeSendKeys Mode = "send-keys"
)

// ParseMode validates a configured delivery mode. Empty means stdout.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case "", ModeStdout:
		return ModeStdout, nil
	case ModeBuffer:
		return ModeBuffer, nil
	case ModeSendKeys:
		return ModeSendKeys, nil
	}
	return "", fmt.Errorf("unknown delivery mode %q (want stdout, buffer or send-keys)", value)
}

var (
	setBufferFn = tmux.SetBuffer
	sendKeysFn  = tmux.SendKeys
)

// Target describes one delivery destination.
type Target struct {
	Mode       Mode
	SocketPath string
	Pane       string
	BufferName string
	Out        io.Writer
}

// Deliver sends code to the target and returns a short description of what
// happened, suitable for the status line.
func (t Target) Deliver(code string) (string, error) {
	mode := t.Mode
	if mode == "" {
		mode = ModeStdout
	}
	events.Deliver.Start(string(mode), t.describe())
	info, err := t.deliver(mode, code)
	if err != nil {
		events.Deliver.Error(string(mode), err)
		return "", err
	}
	events.Deliver.Success(string(mode), info)
	return info, nil
}

func (t Target) deliver(mode Mode, code string) (string, error) {
	switch mode {
	case ModeStdout:
		if t.Out == nil {
			return "", fmt.Errorf("no output configured")
		}
		if _, err := fmt.Fprintln(t.Out, code); err != nil {
			return "", fmt.Errorf("write code: %w", err)
		}
		return "Code written to stdout", nil
	case ModeBuffer:
		if err := setBufferFn(t.SocketPath, t.BufferName, code); err != nil {
			return "", err
		}
		if name := strings.TrimSpace(t.BufferName); name != "" {
			return fmt.Sprintf("Code loaded into buffer %s", name), nil
		}
		return "Code loaded into tmux buffer", nil
	case ModeSendKeys:
		if err := sendKeysFn(t.SocketPath, t.Pane, code); err != nil {
			return "", err
		}
		return fmt.Sprintf("Code typed into %s", strings.TrimSpace(t.Pane)), nil
	}
	return "", fmt.Errorf("unknown delivery mode %q", mode)
}

func (t Target) describe() string {
	switch t.Mode {
	case ModeBuffer:
		return t.BufferName
	case ModeSendKeys:
		return t.Pane
	default:
		return ""
	}
}
