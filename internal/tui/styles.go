package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/muurk/edtable/internal/render"
	"golang.org/x/term"
)

// Fallback palette when the theme has no usable terminal colour.
var (
	darkText    = lipgloss.Color("#FAFAFA")
	lightText   = lipgloss.Color("#1A1A1A")
	darkBorder  = lipgloss.Color("#626262")
	lightBorder = lipgloss.Color("#C0C0C0")
	MutedColor  = lipgloss.Color("#626262")
)

// Layout constants
const (
	ColumnWidth      = 20 // width of every column except the last
	MinLastWidth     = 10 // narrowest the trailing column's editor may get
	MinTerminalWidth = 40
	DefaultHeight    = 24
)

// Styles is the resolved look of the terminal table.
type Styles struct {
	Header   lipgloss.Style
	Text     lipgloss.Style
	Editable lipgloss.Style
	Cursor   lipgloss.Style
	Border   lipgloss.Style
	Status   lipgloss.Style
	Dirty    lipgloss.Style
	Muted    lipgloss.Style
}

// NewStyles maps a host theme onto terminal styles. Theme values that are
// not terminal colours (such as "inherit") fall back to a palette chosen for
// the terminal's background.
func NewStyles(theme render.Theme, darkBackground bool) Styles {
	text, border := lightText, lightBorder
	if darkBackground {
		text, border = darkText, darkBorder
	}
	primary := lipgloss.Color(render.DefaultPrimaryColor)

	if c, ok := terminalColor(theme.TextColor); ok {
		text = c
	}
	if c, ok := terminalColor(theme.SecondaryBackgroundColor); ok {
		border = c
	}
	if c, ok := terminalColor(theme.PrimaryColor); ok {
		primary = c
	}

	return Styles{
		Header:   lipgloss.NewStyle().Foreground(text).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(text),
		Editable: lipgloss.NewStyle().Foreground(text).Underline(true),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(primary),
		Border:   lipgloss.NewStyle().Foreground(border),
		Status:   lipgloss.NewStyle().Foreground(MutedColor).PaddingLeft(1),
		Dirty:    lipgloss.NewStyle().Foreground(primary).Bold(true).PaddingLeft(1),
		Muted:    lipgloss.NewStyle().Foreground(MutedColor),
	}
}

// DefaultStyles detects the terminal background and builds styles for theme.
func DefaultStyles(theme render.Theme) Styles {
	return NewStyles(theme, termenv.HasDarkBackground())
}

// terminalColor accepts hex colours and ANSI colour numbers.
func terminalColor(s string) (lipgloss.Color, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if strings.HasPrefix(s, "#") && (len(s) == 4 || len(s) == 7) {
		return lipgloss.Color(s), true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return "", false
		}
	}
	return lipgloss.Color(s), true
}

// GetTerminalSize returns the current terminal width and height
func GetTerminalSize() (int, int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return MinTerminalWidth, DefaultHeight
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}
	return width, height
}
