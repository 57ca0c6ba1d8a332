package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Output styles. They are only applied when writing to a terminal.
var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	styleError   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F38BA8"))
)

// painter renders styles for one output stream.
type painter struct {
	enabled bool
}

func newPainter(w io.Writer) painter {
	f, ok := w.(*os.File)
	return painter{enabled: ok && term.IsTerminal(int(f.Fd()))}
}

func (p painter) paint(style lipgloss.Style, s string) string {
	if !p.enabled {
		return s
	}
	return style.Render(s)
}

func (p painter) title(s string) string   { return p.paint(styleTitle, s) }
func (p painter) muted(s string) string   { return p.paint(styleMuted, s) }
func (p painter) success(s string) string { return p.paint(styleSuccess, s) }
func (p painter) warning(s string) string { return p.paint(styleWarning, s) }
func (p painter) failure(s string) string { return p.paint(styleError, s) }

// hiddenSuffix marks invisible courses, sections and modules.
func (p painter) hiddenSuffix(visible bool) string {
	if visible {
		return ""
	}
	return " " + p.warning("(hidden)")
}
