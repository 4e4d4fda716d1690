package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9"))
	labelStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#282A36")).Background(lipgloss.Color("#BD93F9"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	successStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#6272A4")).Padding(0, 1)
)

const helpText = "j/k move · K/J reorder · x remove · a add · o folder · n name · m merge · q quit"

// Columns taken by the box frame, the "NN. " prefix and the page suffix.
const (
	boxFrameWidth  = 4
	indexWidth     = 4
	pageNoteWidth  = 16
	minPathColumns = 12
)

// View renders the screen.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Selected PDF Files:"))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(m.renderFiles()))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Merged PDF Name:"), valueOrDim(m.OutputName))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Output Path:"), valueOrDim(m.OutputFolder))

	if m.mode != modeList {
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("enter confirm · esc cancel"))
		b.WriteString("\n")
	}

	if m.Status != "" {
		b.WriteString("\n")
		style := successStyle
		if m.StatusErr {
			style = errorStyle
		}
		b.WriteString(style.Render(m.Status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(helpText))
	return b.String()
}

func (m *Model) renderFiles() string {
	files := m.list.Snapshot()
	if len(files) == 0 {
		return dimStyle.Render("No PDF files selected. Press a to add some.")
	}

	pathWidth := 0
	if m.width > 0 {
		pathWidth = max(m.width-boxFrameWidth-indexWidth-pageNoteWidth, minPathColumns)
	}

	lines := make([]string, 0, len(files))
	for i, f := range files {
		line := fmt.Sprintf("%2d. %s", i+1, fitPath(f, pathWidth))
		if pages, ok := m.pages[f]; ok {
			if pages < 0 {
				line += " " + errorStyle.Render("(unreadable)")
			} else {
				line += " " + dimStyle.Render(fmt.Sprintf("(%d pages)", pages))
			}
		}
		if i == m.Cursor {
			line = selectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// fitPath cuts the start of path so it spans at most width cells, keeping
// the file name visible. A width of zero leaves path untouched.
func fitPath(path string, width int) string {
	if width <= 0 || ansi.StringWidth(path) <= width {
		return path
	}
	return ansi.TruncateLeft(path, ansi.StringWidth(path)-width+1, "…")
}

func valueOrDim(v string) string {
	if v == "" {
		return dimStyle.Render("(not set)")
	}
	return v
}
