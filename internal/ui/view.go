package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"
)

const (
	cellGap      = " "
	buttonLabel  = "Verify"
	tipsMaxWidth = 72
	tipsText     = "Tips: type to fill a cell and move on. Backspace on an empty cell clears the previous one. Pasting a full code fills every cell."
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // text already carries ANSI styling; truncate ANSI-aware and skip style wrapping
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.title, style: styles.Title})
	if m.description != "" {
		lines = append(lines, styledLine{text: m.description, style: styles.Description})
	}
	lines = append(lines, styledLine{})
	for _, row := range strings.Split(m.renderCells(), "\n") {
		lines = append(lines, styledLine{text: row, raw: true})
	}
	lines = append(lines, styledLine{})
	lines = append(lines, styledLine{text: m.renderButton(), raw: true})
	if status := m.statusLine(); status.text != "" {
		lines = append(lines, styledLine{}, status)
	}
	lines = append(lines, styledLine{})
	lines = append(lines, m.tipsLines()...)
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: m.help.View(m.keys), raw: true})
	}
	lines = limitHeight(lines, m.height, m.width)
	lines = applyWidth(lines, m.width)
	return centre(renderLines(lines), m.width)
}

func (m *Model) renderCells() string {
	parts := make([]string, 0, 2*m.buffer.Len())
	for i := 0; i < m.buffer.Len(); i++ {
		if i > 0 {
			parts = append(parts, cellGap)
		}
		parts = append(parts, m.renderCell(i))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

func (m *Model) renderCell(i int) string {
	focused := false
	if h, ok := m.registry.Handle(i); ok {
		focused = h.Focused()
	}
	box := styles.Cell
	if focused {
		box = styles.CellFocused
	}
	content := m.buffer.At(i)
	switch {
	case content == "":
		content = render(styles.CellPlaceholder, cellPlaceholder)
	case focused && m.registry.Selected(i):
		content = render(styles.CellSelected, content)
	}
	return render(box, content)
}

func (m *Model) renderButton() string {
	label := buttonLabel
	if m.pending {
		label = "Verifying…"
	}
	if m.IsComplete() && !m.pending {
		return render(styles.Button, label)
	}
	return render(styles.ButtonDisabled, label)
}

func (m *Model) statusLine() styledLine {
	switch {
	case m.errMsg != "":
		return styledLine{text: "Error: " + m.errMsg, style: styles.Error}
	case m.delivered:
		text := "✅ Code accepted"
		if m.infoMsg != "" {
			text += ": " + m.infoMsg
		}
		return styledLine{text: text, style: styles.Success}
	case m.infoMsg != "":
		return styledLine{text: m.infoMsg, style: styles.Info}
	}
	return styledLine{}
}

func (m *Model) tipsLines() []styledLine {
	text := tipsText
	if wrap := min(m.width, tipsMaxWidth); wrap > 0 {
		text = lipgloss.NewStyle().Width(wrap).Render(text)
	}
	out := []styledLine{}
	for _, line := range strings.Split(text, "\n") {
		out = append(out, styledLine{text: strings.TrimRight(line, " "), style: styles.Tips})
	}
	return out
}

func render(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.raw || line.style == nil {
			out[i] = line.text
			continue
		}
		out[i] = render(line.style, line.text)
	}
	return strings.Join(out, "\n")
}

// centre pads every line of block by the same amount so the block sits in
// the middle of width columns.
func centre(block string, width int) string {
	if width <= 0 {
		return block
	}
	pad := (width - lipgloss.Width(block)) / 2
	if pad <= 0 {
		return block
	}
	prefix := strings.Repeat(" ", pad)
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	return ansi.Truncate(text, width, "…")
}
