package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Title           *lipgloss.Style
	Description     *lipgloss.Style
	Cell            *lipgloss.Style
	CellFocused     *lipgloss.Style
	CellSelected    *lipgloss.Style
	CellPlaceholder *lipgloss.Style
	Button          *lipgloss.Style
	ButtonDisabled  *lipgloss.Style
	Success         *lipgloss.Style
	Error           *lipgloss.Style
	Info            *lipgloss.Style
	Tips            *lipgloss.Style
	Footer          *lipgloss.Style
}

var cellBase = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(0, 1).
	Align(lipgloss.Center)

var defaultStyles = Styles{
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	),
	Description: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Cell: ptr(
		cellBase.BorderForeground(lipgloss.Color("244")).Foreground(lipgloss.Color("255")),
	),
	CellFocused: ptr(
		cellBase.BorderForeground(lipgloss.Color("33")).Foreground(lipgloss.Color("255")).Bold(true),
	),
	CellSelected: ptr(
		lipgloss.NewStyle().Reverse(true),
	),
	CellPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Button: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true).Padding(0, 2),
	),
	ButtonDisabled: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Background(lipgloss.Color("236")).Padding(0, 2),
	),
	Success: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Tips: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
