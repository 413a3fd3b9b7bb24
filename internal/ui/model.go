package ui

import (
	"fmt"
	"reflect"
	"time"

	"github.com/atomicstack/tmux-popup-otp/internal/code"
	"github.com/atomicstack/tmux-popup-otp/internal/logging"
	"github.com/atomicstack/tmux-popup-otp/internal/logging/events"
	"github.com/atomicstack/tmux-popup-otp/internal/theme"
	"github.com/atomicstack/tmux-popup-otp/internal/ui/command"
	uistate "github.com/atomicstack/tmux-popup-otp/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	defaultLength   = 4
	defaultTitle    = "Enter OTP"
	cellPlaceholder = "·"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Deliverer receives a code once it has been accepted.
type Deliverer interface {
	Deliver(code string) (string, error)
}

// Options configures a Model.
type Options struct {
	Length      int
	Alphabet    code.Alphabet
	Title       string
	Description string
	ShowFooter  bool
	Width       int
	Height      int

	// QuitDelay keeps the success banner on screen before the program exits.
	QuitDelay time.Duration
}

// FocusCellMsg asks the model to move focus to a cell. Requests for cells
// without a registered handle are dropped.
type FocusCellMsg struct {
	Index int
}

// Model implements the Bubble Tea model for the code entry popup.
type Model struct {
	router   code.Router
	buffer   code.Buffer
	cells    []*textinput.Model
	registry *uistate.Registry
	focus    int

	keys        keyMap
	help        help.Model
	title       string
	description string
	showFooter  bool
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	quitDelay   time.Duration

	errMsg    string
	infoMsg   string
	pending   bool
	accepted  string
	delivered bool
	cancelled bool

	deliverer     Deliverer
	bus           *command.Bus
	readClipboard func() (string, error)

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the cells, registers their focus handles and returns a
// model ready to be started. Focus lands on the first cell in Init.
func NewModel(opts Options, deliverer Deliverer) *Model {
	length := opts.Length
	if length <= 0 {
		length = defaultLength
	}
	alphabet := opts.Alphabet
	if alphabet.Name() == "" {
		alphabet = code.Digits
	}
	title := opts.Title
	if title == "" {
		title = defaultTitle
	}
	description := opts.Description
	if description == "" {
		description = fmt.Sprintf("Enter the %d-%s code (you can also paste it here).", length, alphabet.Noun())
	}
	m := &Model{
		router:        code.NewRouter(alphabet),
		buffer:        code.NewBuffer(length),
		registry:      uistate.NewRegistry(length),
		keys:          defaultKeyMap(),
		help:          help.New(),
		title:         title,
		description:   description,
		showFooter:    opts.ShowFooter,
		quitDelay:     opts.QuitDelay,
		deliverer:     deliverer,
		bus:           command.New(),
		readClipboard: readSystemClipboard,
	}
	m.help.Styles.ShortDesc = *styles.Footer
	m.help.Styles.FullDesc = *styles.Footer
	m.cells = make([]*textinput.Model, length)
	for i := range m.cells {
		m.cells[i] = newCell()
		m.registry.Register(i, m.cells[i])
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
		m.help.Width = opts.Width
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	return m
}

func newCell() *textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = cellPlaceholder
	ti.CharLimit = 1
	ti.Width = 1
	ti.Cursor.SetMode(cursor.CursorStatic)
	return &ti
}

// Init focuses the first cell.
func (m *Model) Init() tea.Cmd {
	return m.focusCell(0)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(tea.FocusMsg{}):      m.handleTerminalFocusMsg,
		reflect.TypeOf(tea.BlurMsg{}):       m.handleTerminalBlurMsg,
		reflect.TypeOf(FocusCellMsg{}):      m.handleFocusCellMsg,
		reflect.TypeOf(command.Result{}):    m.handleCommandResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = size.Width
		m.help.Width = size.Width
	}
	if !m.fixedHeight {
		m.height = size.Height
	}
	return nil
}

func (m *Model) handleTerminalFocusMsg(tea.Msg) tea.Cmd {
	return m.focusCell(m.focus)
}

// handleTerminalBlurMsg drops the selection highlight while the terminal is
// unfocused; focus itself stays on the cell.
func (m *Model) handleTerminalBlurMsg(tea.Msg) tea.Cmd {
	m.registry.ClearSelection()
	return nil
}

func (m *Model) handleFocusCellMsg(msg tea.Msg) tea.Cmd {
	req, ok := msg.(FocusCellMsg)
	if !ok {
		return nil
	}
	return m.focusCell(req.Index)
}

// focusCell asks the registry to focus and select cell i. Missing handles
// leave the current focus in place.
func (m *Model) focusCell(i int) tea.Cmd {
	cmd, ok := m.registry.Focus(i)
	if !ok {
		events.Cell.FocusDropped(i)
		return nil
	}
	m.focus = i
	events.Cell.Focus(i)
	return cmd
}

// apply installs the transition's buffer and moves focus to its target.
func (m *Model) apply(t code.Transition) tea.Cmd {
	prev := m.buffer
	m.buffer = t.Buffer
	if t.Changed(prev) {
		m.syncCells()
		m.errMsg = ""
		if before, after := code.IsComplete(prev), code.IsComplete(m.buffer); before != after {
			events.Code.Complete(after, m.buffer.Filled())
		}
	}
	return m.focusCell(t.Focus)
}

func (m *Model) syncCells() {
	for i, cell := range m.cells {
		cell.SetValue(m.buffer.At(i))
	}
}

// Buffer returns the current code buffer.
func (m *Model) Buffer() code.Buffer {
	return m.buffer
}

// IsComplete reports whether every cell holds a character.
func (m *Model) IsComplete() bool {
	return code.IsComplete(m.buffer)
}

// Focus returns the index of the focused cell.
func (m *Model) Focus() int {
	return m.focus
}

// Accepted returns the submitted code, or "" when nothing was accepted.
func (m *Model) Accepted() string {
	return m.accepted
}

// Delivered reports whether the accepted code reached its destination.
func (m *Model) Delivered() bool {
	return m.delivered
}

// Cancelled reports whether the user dismissed the popup.
func (m *Model) Cancelled() bool {
	return m.cancelled
}

func (m *Model) cancel() tea.Cmd {
	m.cancelled = !m.delivered
	if m.cancelled {
		events.App.Cancel(m.buffer.Filled(), m.buffer.Len())
	}
	return tea.Quit
}

func (m *Model) setError(err error) {
	if err == nil {
		return
	}
	m.errMsg = err.Error()
	m.infoMsg = ""
	logging.Error(err)
}
