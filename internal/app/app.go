package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atomicstack/tmux-popup-otp/internal/code"
	"github.com/atomicstack/tmux-popup-otp/internal/deliver"
	"github.com/atomicstack/tmux-popup-otp/internal/logging"
	"github.com/atomicstack/tmux-popup-otp/internal/tmux"
	"github.com/atomicstack/tmux-popup-otp/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCancelled is returned when the popup was dismissed without a code.
var ErrCancelled = errors.New("cancelled")

// successDelay keeps the success banner visible before the popup closes.
const successDelay = 600 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	Length      int
	Alphabet    string
	Title       string
	Description string
	ShowFooter  bool
	Deliver     string
	Target      string
	BufferName  string
	SocketPath  string
	Width       int
	Height      int
}

var (
	resolveSocketFn = tmux.ResolveSocketPath
	currentPaneFn   = tmux.CurrentPane
)

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	opts, target, err := prepare(cfg, os.Stdout)
	if err != nil {
		return err
	}
	model := ui.NewModel(opts, target)
	program := tea.NewProgram(model, programOptions(target.Mode)...)
	restore := logging.SetFailureOutput(io.Discard)
	defer restore()
	return outcome(program.Run())
}

// outcome maps the end of the program onto the caller's result. Only a
// delivered code counts as success: a quit from a signal, an escape or any
// other path that skipped delivery is a cancel, and program errors (kills and
// recovered panics included) are returned as is.
func outcome(final tea.Model, err error) error {
	if err != nil {
		return err
	}
	if m, ok := final.(*ui.Model); ok && m.Delivered() {
		return nil
	}
	return ErrCancelled
}

// prepare turns configuration into model options and a delivery target.
func prepare(cfg Config, out io.Writer) (ui.Options, deliver.Target, error) {
	alphabet, err := code.ParseAlphabet(cfg.Alphabet)
	if err != nil {
		return ui.Options{}, deliver.Target{}, err
	}
	mode, err := deliver.ParseMode(cfg.Deliver)
	if err != nil {
		return ui.Options{}, deliver.Target{}, err
	}
	target := deliver.Target{Mode: mode, BufferName: cfg.BufferName, Out: out}
	if mode != deliver.ModeStdout {
		socketPath, err := resolveSocketFn(cfg.SocketPath)
		if err != nil {
			return ui.Options{}, deliver.Target{}, fmt.Errorf("resolve socket path: %w", err)
		}
		target.SocketPath = socketPath
	}
	if mode == deliver.ModeSendKeys {
		target.Pane = cfg.Target
		if target.Pane == "" {
			target.Pane = currentPaneFn()
		}
		if target.Pane == "" {
			return ui.Options{}, deliver.Target{}, errors.New("send-keys delivery needs --target or $TMUX_PANE")
		}
	}
	opts := ui.Options{
		Length:      cfg.Length,
		Alphabet:    alphabet,
		Title:       cfg.Title,
		Description: cfg.Description,
		ShowFooter:  cfg.ShowFooter,
		Width:       cfg.Width,
		Height:      cfg.Height,
		QuitDelay:   successDelay,
	}
	return opts, target, nil
}

// programOptions keeps stdout clean for the code when it is the delivery
// channel by drawing the popup on stderr.
func programOptions(mode deliver.Mode) []tea.ProgramOption {
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithReportFocus()}
	if mode == deliver.ModeStdout {
		opts = append(opts, tea.WithOutput(os.Stderr))
	}
	return opts
}
