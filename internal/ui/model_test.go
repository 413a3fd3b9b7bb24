package ui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/tmux-popup-otp/internal/code"
	tea "github.com/charmbracelet/bubbletea"
)

type fakeDeliverer struct {
	codes []string
	info  string
	err   error
}

func (f *fakeDeliverer) Deliver(c string) (string, error) {
	f.codes = append(f.codes, c)
	return f.info, f.err
}

func hexAlphabet(t *testing.T) code.Alphabet {
	t.Helper()
	a, err := code.ParseAlphabet("hex")
	if err != nil {
		t.Fatalf("parse alphabet: %v", err)
	}
	return a
}

func TestNewModelDefaults(t *testing.T) {
	m := NewModel(Options{}, nil)
	if m.Buffer().Len() != defaultLength {
		t.Fatalf("expected %d cells, got %d", defaultLength, m.Buffer().Len())
	}
	if m.title != defaultTitle {
		t.Fatalf("unexpected title %q", m.title)
	}
	if !strings.Contains(m.description, "4-digit") {
		t.Fatalf("unexpected description %q", m.description)
	}
	if m.registry.Len() != defaultLength {
		t.Fatalf("expected registry for every cell")
	}
	for i := range m.cells {
		if _, ok := m.registry.Handle(i); !ok {
			t.Fatalf("cell %d not registered", i)
		}
	}
}

func TestSubmitIncompleteIsRejectedSilently(t *testing.T) {
	d := &fakeDeliverer{}
	h := NewHarness(NewModel(Options{}, d))
	h.Type("123")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if len(d.codes) != 0 {
		t.Fatalf("expected no delivery, got %#v", d.codes)
	}
	if h.Model().errMsg != "" || h.Model().infoMsg != "" || h.Quit() {
		t.Fatalf("expected no observable effect")
	}
	if h.Model().IsComplete() {
		t.Fatalf("expected incomplete")
	}
}

func TestSubmitCompleteDelivers(t *testing.T) {
	d := &fakeDeliverer{info: "Code loaded into tmux buffer"}
	h := NewHarness(NewModel(Options{}, d))
	h.Type("1234")
	if !h.Model().IsComplete() {
		t.Fatalf("expected complete")
	}
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if len(d.codes) != 1 || d.codes[0] != "1234" {
		t.Fatalf("expected delivery of 1234, got %#v", d.codes)
	}
	m := h.Model()
	if !m.Delivered() || m.Accepted() != "1234" || m.Cancelled() {
		t.Fatalf("unexpected state delivered=%v accepted=%q cancelled=%v", m.Delivered(), m.Accepted(), m.Cancelled())
	}
	if !h.Quit() {
		t.Fatalf("expected program to quit after delivery")
	}
	if !strings.Contains(h.View(), "Code accepted") {
		t.Fatalf("expected success banner, got:\n%s", h.View())
	}
}

func TestDeliveryFailureAllowsRetry(t *testing.T) {
	d := &fakeDeliverer{err: errors.New("no server running")}
	h := NewHarness(NewModel(Options{}, d))
	h.Type("1234")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	m := h.Model()
	if m.Delivered() || m.Accepted() != "" || h.Quit() {
		t.Fatalf("expected failed delivery to keep the popup open")
	}
	if !strings.Contains(m.errMsg, "no server running") {
		t.Fatalf("expected delivery error, got %q", m.errMsg)
	}
	d.err = nil
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	if !m.Delivered() || len(d.codes) != 2 {
		t.Fatalf("expected retry to deliver, got %#v", d.codes)
	}
}

func TestInputIgnoredWhileDelivered(t *testing.T) {
	h := NewHarness(NewModel(Options{}, &fakeDeliverer{}))
	h.Type("1234")
	h.Send(tea.KeyMsg{Type: tea.KeyEnter})
	h.Send(tea.KeyMsg{Type: tea.KeyBackspace})
	if got := h.Model().Buffer().String(); got != "1234" {
		t.Fatalf("expected buffer frozen after delivery, got %q", got)
	}
}

func TestQuitDelayUsesTick(t *testing.T) {
	m := NewModel(Options{QuitDelay: time.Millisecond}, &fakeDeliverer{})
	m.pending = true
	cmd := m.handleCommandResultMsg(commandResult("ok"))
	if cmd == nil {
		t.Fatalf("expected delayed quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tick to produce QuitMsg")
	}
}

func TestEscapeCancels(t *testing.T) {
	h := NewHarness(NewModel(Options{}, nil))
	h.Type("12")
	h.Send(tea.KeyMsg{Type: tea.KeyEsc})
	if !h.Model().Cancelled() || !h.Quit() {
		t.Fatalf("expected cancel and quit")
	}
}

func TestProgrammaticFocus(t *testing.T) {
	h := NewHarness(NewModel(Options{}, nil))
	h.Send(FocusCellMsg{Index: 2})
	assertFocus(t, h.Model(), 2)
	h.Send(FocusCellMsg{Index: 9})
	assertFocus(t, h.Model(), 2)
}

func TestFocusRequestForMissingHandleIsDropped(t *testing.T) {
	h := NewHarness(NewModel(Options{}, nil))
	h.Model().registry.Unregister(1)
	h.Type("5")
	assertBuffer(t, h.Model(), "5", "", "", "")
	if h.Model().Focus() != 0 {
		t.Fatalf("expected focus to stay on 0 when target handle is absent, got %d", h.Model().Focus())
	}
}

func TestTerminalFocusReassertsCell(t *testing.T) {
	h := NewHarness(NewModel(Options{}, nil))
	h.Type("1")
	h.Model().cells[1].Blur()
	h.Send(tea.FocusMsg{})
	assertFocus(t, h.Model(), 1)
}

func TestTerminalBlurClearsSelection(t *testing.T) {
	h := NewHarness(NewModel(Options{}, nil))
	h.Send(tea.BlurMsg{})
	if h.Model().registry.Selected(0) {
		t.Fatalf("expected selection cleared on blur")
	}
	assertFocus(t, h.Model(), 0)
	h.Send(tea.FocusMsg{})
	if !h.Model().registry.Selected(0) {
		t.Fatalf("expected selection restored on focus")
	}
}

func TestWindowSizeUpdatesDimensions(t *testing.T) {
	h := NewHarness(NewModel(Options{}, nil))
	h.Send(tea.WindowSizeMsg{Width: 60, Height: 20})
	if h.Model().width != 60 || h.Model().height != 20 {
		t.Fatalf("unexpected size %dx%d", h.Model().width, h.Model().height)
	}
	fixed := NewHarness(NewModel(Options{Width: 40, Height: 12}, nil))
	fixed.Send(tea.WindowSizeMsg{Width: 100, Height: 50})
	if fixed.Model().width != 40 || fixed.Model().height != 12 {
		t.Fatalf("expected fixed size to win, got %dx%d", fixed.Model().width, fixed.Model().height)
	}
}
