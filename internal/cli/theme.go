package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/raphaelgruber/photo-import/internal/models"
	"github.com/raphaelgruber/photo-import/internal/pipeline"
	"golang.org/x/term"
)

// Theme holds the color scheme for terminal output.
type Theme struct {
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color

	// plain disables styling, e.g. when output is piped
	plain bool
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
}

// newTheme returns the default theme, unstyled unless w is a terminal.
func newTheme(w io.Writer) Theme {
	t := defaultTheme
	t.plain = !isTerminal(w)
	return t
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (t Theme) render(style lipgloss.Style, s string) string {
	if t.plain {
		return s
	}
	return style.Render(s)
}

func (t Theme) completed(s string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Success).Bold(true), s)
}

func (t Theme) failure(s string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Error).Bold(true), s)
}

func (t Theme) hint(s string) string {
	return t.render(lipgloss.NewStyle().Foreground(t.Hint).Italic(true), s)
}

func (t Theme) filename(s string) string {
	return t.render(lipgloss.NewStyle().Underline(true), s)
}

// statusLine announces a photo after its metadata has been read.
func (t Theme) statusLine(item *models.WorkItem) string {
	if t.plain {
		return pipeline.StatusLine(item)
	}
	line := "Processing " + t.filename(item.Filename) + ", date " + item.Date
	if item.Coordinates != nil {
		line += ", coordinates " + item.Coordinates.JSON()
	}
	return line
}
