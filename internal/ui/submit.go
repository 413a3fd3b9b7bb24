package ui

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/atomicstack/tmux-popup-otp/internal/code"
	"github.com/atomicstack/tmux-popup-otp/internal/logging/events"
	"github.com/atomicstack/tmux-popup-otp/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

const deliverCommandID = "deliver"

// submit hands a complete code to the deliverer. An incomplete buffer is
// rejected without any visible effect.
func (m *Model) submit() tea.Cmd {
	accepted, err := code.Submit(m.buffer)
	if err != nil {
		events.Code.Rejected(m.buffer.Filled(), m.buffer.Len())
		return nil
	}
	events.Code.Submit(utf8.RuneCountInString(accepted))
	m.pending = true
	m.accepted = accepted
	m.errMsg = ""
	m.infoMsg = "Verifying…"
	deliverer := m.deliverer
	return m.bus.Execute(command.Request{
		ID:    deliverCommandID,
		Label: fmt.Sprintf("%d-cell code", m.buffer.Len()),
		Run: func() (string, error) {
			if deliverer == nil {
				return "", nil
			}
			return deliverer.Deliver(accepted)
		},
	})
}

func (m *Model) handleCommandResultMsg(msg tea.Msg) tea.Cmd {
	result, ok := msg.(command.Result)
	if !ok || result.ID != deliverCommandID {
		return nil
	}
	m.pending = false
	if result.Err != nil {
		m.accepted = ""
		m.setError(fmt.Errorf("delivery failed: %w", result.Err))
		return nil
	}
	m.delivered = true
	m.errMsg = ""
	m.infoMsg = result.Info
	if m.quitDelay <= 0 {
		return tea.Quit
	}
	return tea.Tick(m.quitDelay, func(time.Time) tea.Msg {
		return tea.QuitMsg{}
	})
}
