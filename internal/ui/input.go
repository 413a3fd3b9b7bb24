package ui

import (
	"fmt"

	"github.com/atomicstack/tmux-popup-otp/internal/code"
	"github.com/atomicstack/tmux-popup-otp/internal/logging/events"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	pasteSourceBracketed = "bracketed"
	pasteSourceClipboard = "clipboard"
)

func readSystemClipboard() (string, error) {
	return clipboard.ReadAll()
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.pending || m.delivered {
		if key.Matches(keyMsg, m.keys.Quit) {
			return m.cancel()
		}
		return nil
	}
	// Bracketed pastes arrive as rune messages; they must never reach the
	// text channel.
	if keyMsg.Paste {
		return m.paste(string(keyMsg.Runes), pasteSourceBracketed)
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m.cancel()
	case key.Matches(keyMsg, m.keys.Submit):
		return m.submit()
	case key.Matches(keyMsg, m.keys.Paste):
		return m.pasteClipboard()
	case key.Matches(keyMsg, m.keys.Clear):
		return m.clearAll()
	case key.Matches(keyMsg, m.keys.Backspace):
		return m.routeKey(code.KeyDeleteBackward)
	case key.Matches(keyMsg, m.keys.Left):
		return m.routeKey(code.KeyMoveLeft)
	case key.Matches(keyMsg, m.keys.Right):
		return m.routeKey(code.KeyMoveRight)
	case key.Matches(keyMsg, m.keys.Home):
		return m.focusCell(m.registry.First())
	case key.Matches(keyMsg, m.keys.End):
		return m.focusCell(m.registry.Last())
	case key.Matches(keyMsg, m.keys.Delete):
		return m.textInput("")
	}
	switch keyMsg.Type {
	case tea.KeyRunes:
		if keyMsg.Alt || len(keyMsg.Runes) == 0 {
			return nil
		}
		return m.textInput(string(keyMsg.Runes))
	case tea.KeySpace:
		return m.textInput(" ")
	}
	return nil
}

// textInput routes what the focused cell would contain after a change. A
// cell holds one character and its content is selected while focused, so a
// single keystroke replaces it; multi-rune messages are autofill bursts.
func (m *Model) textInput(raw string) tea.Cmd {
	slot := m.focus
	t := m.router.HandleTextInput(m.buffer, slot, raw)
	events.Cell.Input(slot, len(m.router.Alphabet().Filter(raw)), t.Focus)
	return m.apply(t)
}

func (m *Model) paste(text, source string) tea.Cmd {
	slot := m.focus
	t := m.router.HandlePaste(m.buffer, slot, text)
	events.Cell.Paste(slot, len(m.router.Alphabet().Filter(text)), t.Focus, source)
	return m.apply(t)
}

func (m *Model) pasteClipboard() tea.Cmd {
	if m.readClipboard == nil {
		return nil
	}
	text, err := m.readClipboard()
	if err != nil {
		m.setError(fmt.Errorf("clipboard unavailable: %w", err))
		return nil
	}
	return m.paste(text, pasteSourceClipboard)
}

// routeKey sends a navigation or deletion key through the key router. Keys the
// router does not suppress fall through to default handling, which for a
// one-character cell does nothing.
func (m *Model) routeKey(k code.Key) tea.Cmd {
	slot := m.focus
	t := m.router.HandleKey(m.buffer, slot, k)
	events.Cell.Key(slot, k.String(), t.Focus, t.Suppress)
	if !t.Suppress {
		return nil
	}
	return m.apply(t)
}

func (m *Model) clearAll() tea.Cmd {
	if m.buffer.Filled() == 0 && m.focus == m.registry.First() {
		return nil
	}
	events.Cell.Cleared(m.buffer.Len())
	return m.apply(code.Transition{Buffer: code.NewBuffer(m.buffer.Len()), Focus: m.registry.First()})
}
