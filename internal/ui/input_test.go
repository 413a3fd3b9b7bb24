package ui

import (
	"errors"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestHarness(t *testing.T, opts Options) *Harness {
	t.Helper()
	return NewHarness(NewModel(opts, nil))
}

func assertBuffer(t *testing.T, m *Model, want ...string) {
	t.Helper()
	if got := m.Buffer().Values(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected buffer %#v, got %#v", want, got)
	}
}

func assertFocus(t *testing.T, m *Model, want int) {
	t.Helper()
	if m.Focus() != want {
		t.Fatalf("expected focus %d, got %d", want, m.Focus())
	}
	focused := 0
	for i, cell := range m.cells {
		if cell.Focused() {
			focused++
			if i != want {
				t.Fatalf("cell %d focused, expected %d", i, want)
			}
		}
	}
	if focused != 1 {
		t.Fatalf("expected exactly one focused cell, got %d", focused)
	}
}

func TestInitFocusesFirstCell(t *testing.T) {
	h := newTestHarness(t, Options{})
	assertFocus(t, h.Model(), 0)
	if !h.Model().registry.Selected(0) {
		t.Fatalf("expected first cell selected")
	}
}

func TestTypingAdvances(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("5")
	assertBuffer(t, h.Model(), "5", "", "", "")
	assertFocus(t, h.Model(), 1)
}

func TestTypingNonDigitStays(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("a")
	assertBuffer(t, h.Model(), "", "", "", "")
	assertFocus(t, h.Model(), 0)

	h.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assertBuffer(t, h.Model(), "", "", "", "")
	assertFocus(t, h.Model(), 0)
}

func TestTypingFillsAndLastCellKeepsFocus(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("1234")
	assertBuffer(t, h.Model(), "1", "2", "3", "4")
	assertFocus(t, h.Model(), 3)
	h.Type("9")
	assertBuffer(t, h.Model(), "1", "2", "3", "9")
	assertFocus(t, h.Model(), 3)
}

func TestRuneBurstDistributes(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("12")})
	assertBuffer(t, h.Model(), "1", "2", "", "")
	assertFocus(t, h.Model(), 2)
}

func TestBracketedPasteDistributes(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("123456"), Paste: true})
	assertBuffer(t, h.Model(), "1", "2", "3", "4")
	assertFocus(t, h.Model(), 3)
}

func TestBracketedPasteSingleDigitDoesNotUseTextChannel(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(FocusCellMsg{Index: 3})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7"), Paste: true})
	assertBuffer(t, h.Model(), "", "", "", "7")
	assertFocus(t, h.Model(), 3)
}

func TestPasteWithoutDigitsIsNoOp(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("1")
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc"), Paste: true})
	assertBuffer(t, h.Model(), "1", "", "", "")
	assertFocus(t, h.Model(), 1)
}

func TestClipboardPaste(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Model().readClipboard = func() (string, error) { return "code 98-76", nil }
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlV})
	assertBuffer(t, h.Model(), "9", "8", "7", "6")
	assertFocus(t, h.Model(), 3)
}

func TestClipboardErrorIsReported(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Model().readClipboard = func() (string, error) { return "", errors.New("no xclip") }
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlV})
	if h.Model().errMsg == "" {
		t.Fatalf("expected clipboard error message")
	}
	assertBuffer(t, h.Model(), "", "", "", "")
	h.Type("1")
	if h.Model().errMsg != "" {
		t.Fatalf("expected error cleared after accepted input, got %q", h.Model().errMsg)
	}
}

func TestBackspaceTelescopes(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("12")
	assertFocus(t, h.Model(), 2)
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	assertBuffer(t, h.Model(), "1", "", "", "")
	assertFocus(t, h.Model(), 1)
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	assertBuffer(t, h.Model(), "", "", "", "")
	assertFocus(t, h.Model(), 0)
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	assertBuffer(t, h.Model(), "", "", "", "")
	assertFocus(t, h.Model(), 0)
}

func TestBackspaceClearsFilledCellInPlace(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("1234")
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	assertBuffer(t, h.Model(), "1", "2", "3", "")
	assertFocus(t, h.Model(), 3)
}

func TestArrowAndTabNavigation(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(tea.KeyMsg{Type: tea.KeyLeft})
	assertFocus(t, h.Model(), 0)
	h.Send(tea.KeyMsg{Type: tea.KeyRight})
	assertFocus(t, h.Model(), 1)
	h.Send(tea.KeyMsg{Type: tea.KeyTab})
	assertFocus(t, h.Model(), 2)
	h.Send(tea.KeyMsg{Type: tea.KeyShiftTab})
	assertFocus(t, h.Model(), 1)
	h.Send(tea.KeyMsg{Type: tea.KeyEnd})
	assertFocus(t, h.Model(), 3)
	h.Send(tea.KeyMsg{Type: tea.KeyRight})
	assertFocus(t, h.Model(), 3)
	h.Send(tea.KeyMsg{Type: tea.KeyHome})
	assertFocus(t, h.Model(), 0)
}

func TestTypingIntoRevisitedCellReplaces(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("1234")
	h.Send(tea.KeyMsg{Type: tea.KeyHome})
	h.Send(tea.KeyMsg{Type: tea.KeyRight})
	h.Type("7")
	assertBuffer(t, h.Model(), "1", "7", "3", "4")
	assertFocus(t, h.Model(), 2)
}

func TestDeleteKeyClearsCurrentCell(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("12")
	h.Send(tea.KeyMsg{Type: tea.KeyLeft})
	h.Send(tea.KeyMsg{Type: tea.KeyDelete})
	assertBuffer(t, h.Model(), "1", "", "", "")
	assertFocus(t, h.Model(), 1)
}

func TestClearAllResetsBuffer(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Type("123")
	h.Send(tea.KeyMsg{Type: tea.KeyCtrlU})
	assertBuffer(t, h.Model(), "", "", "", "")
	assertFocus(t, h.Model(), 0)
}

func TestAltRunesIgnored(t *testing.T) {
	h := newTestHarness(t, Options{})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("5"), Alt: true})
	assertBuffer(t, h.Model(), "", "", "", "")
}

func TestCustomAlphabetAndLength(t *testing.T) {
	h := newTestHarness(t, Options{Length: 6, Alphabet: hexAlphabet(t)})
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0xbeef12"), Paste: true})
	assertBuffer(t, h.Model(), "0", "b", "e", "e", "f", "1")
	assertFocus(t, h.Model(), 5)
}

func TestBufferReplacedNotMutated(t *testing.T) {
	h := newTestHarness(t, Options{})
	before := h.Model().Buffer()
	h.Type("1")
	if before.At(0) != "" {
		t.Fatalf("previously published buffer changed to %#v", before.Values())
	}
}
