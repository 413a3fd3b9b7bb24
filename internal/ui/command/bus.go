package command

import (
	"github.com/atomicstack/tmux-popup-otp/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates work the form hands off once a code is accepted.
type Request struct {
	ID    string
	Label string
	Run   func() (string, error)
}

// Result is the message produced when a request finishes.
type Result struct {
	ID    string
	Label string
	Info  string
	Err   error
}

// Bus turns requests into Bubble Tea commands while emitting trace logs.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute wraps req into a command that runs off the update loop.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Run == nil {
			events.Command.Skip(req.ID, req.Label)
			return Result{ID: req.ID, Label: req.Label}
		}
		info, err := req.Run()
		events.Command.Result(req.ID, req.Label, err)
		return Result{ID: req.ID, Label: req.Label, Info: info, Err: err}
	}
}
