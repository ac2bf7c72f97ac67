package ui

import (
	"github.com/charmbracelet/lipgloss"

	"lectio/internal/store"
)

// Colors used throughout the TUI.
var (
	ColorRed     = lipgloss.Color("#FF5555")
	ColorGreen   = lipgloss.Color("#50FA7B")
	ColorYellow  = lipgloss.Color("#F1FA8C")
	ColorCyan    = lipgloss.Color("#8BE9FD")
	ColorGray    = lipgloss.Color("#666666")
	ColorDimGray = lipgloss.Color("#444444")
	ColorWhite   = lipgloss.Color("#F8F8F2")
	ColorInk     = lipgloss.Color("#282A36")
	ColorPaper   = lipgloss.Color("#FDF6E3")
)

// Theme is a set of reader styles. Day and Night share the same shape so
// the model can swap one for the other without touching render code.
type Theme struct {
	Title        lipgloss.Style
	Header       lipgloss.Style
	Status       lipgloss.Style
	Error        lipgloss.Style
	Info         lipgloss.Style
	VerseNumber  lipgloss.Style
	VerseText    lipgloss.Style
	Selected     lipgloss.Style
	SelectionBar lipgloss.Style
	Dim          lipgloss.Style
	FooterKey    lipgloss.Style
	FooterDesc   lipgloss.Style
	Divider      lipgloss.Style
	PremiumBadge lipgloss.Style
	OfflineBadge lipgloss.Style
}

// Night is the dark reading theme.
var Night = Theme{
	Title:        lipgloss.NewStyle().Bold(true).Foreground(ColorCyan),
	Header:       lipgloss.NewStyle().Foreground(ColorCyan),
	Status:       lipgloss.NewStyle().Foreground(ColorGray),
	Error:        lipgloss.NewStyle().Foreground(ColorRed).Bold(true),
	Info:         lipgloss.NewStyle().Foreground(ColorYellow),
	VerseNumber:  lipgloss.NewStyle().Foreground(ColorGray),
	VerseText:    lipgloss.NewStyle().Foreground(ColorWhite),
	Selected:     lipgloss.NewStyle().Foreground(ColorCyan).Bold(true),
	SelectionBar: lipgloss.NewStyle().Foreground(ColorInk).Background(ColorCyan).Bold(true),
	Dim:          lipgloss.NewStyle().Foreground(ColorGray),
	FooterKey:    lipgloss.NewStyle().Foreground(ColorYellow).Bold(true),
	FooterDesc:   lipgloss.NewStyle().Foreground(ColorGray),
	Divider:      lipgloss.NewStyle().Foreground(ColorDimGray),
	PremiumBadge: lipgloss.NewStyle().Foreground(ColorGreen).Bold(true),
	OfflineBadge: lipgloss.NewStyle().Foreground(ColorYellow).Bold(true),
}

// Day inverts the page for bright rooms.
var Day = Theme{
	Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#005F87")),
	Header:       lipgloss.NewStyle().Foreground(lipgloss.Color("#005F87")),
	Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("#586E75")),
	Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("#DC322F")).Bold(true),
	Info:         lipgloss.NewStyle().Foreground(lipgloss.Color("#B58900")),
	VerseNumber:  lipgloss.NewStyle().Foreground(lipgloss.Color("#93A1A1")),
	VerseText:    lipgloss.NewStyle().Foreground(ColorInk),
	Selected:     lipgloss.NewStyle().Foreground(lipgloss.Color("#005F87")).Bold(true),
	SelectionBar: lipgloss.NewStyle().Foreground(ColorPaper).Background(lipgloss.Color("#005F87")).Bold(true),
	Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("#93A1A1")),
	FooterKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("#B58900")).Bold(true),
	FooterDesc:   lipgloss.NewStyle().Foreground(lipgloss.Color("#586E75")),
	Divider:      lipgloss.NewStyle().Foreground(lipgloss.Color("#CCCCCC")),
	PremiumBadge: lipgloss.NewStyle().Foreground(lipgloss.Color("#859900")).Bold(true),
	OfflineBadge: lipgloss.NewStyle().Foreground(lipgloss.Color("#B58900")).Bold(true),
}

// highlightBackgrounds maps the palette to terminal backgrounds. Dark ink
// on every swatch so highlighted verses stay readable in both themes.
var highlightBackgrounds = map[store.Color]lipgloss.Style{
	store.ColorYellow: lipgloss.NewStyle().Foreground(ColorInk).Background(lipgloss.Color("#F1FA8C")),
	store.ColorGreen:  lipgloss.NewStyle().Foreground(ColorInk).Background(lipgloss.Color("#A8E6A3")),
	store.ColorBlue:   lipgloss.NewStyle().Foreground(ColorInk).Background(lipgloss.Color("#A3C9E6")),
	store.ColorPink:   lipgloss.NewStyle().Foreground(ColorInk).Background(lipgloss.Color("#F5B8D0")),
	store.ColorOrange: lipgloss.NewStyle().Foreground(ColorInk).Background(lipgloss.Color("#FFB86C")),
	store.ColorPurple: lipgloss.NewStyle().Foreground(ColorInk).Background(lipgloss.Color("#CBA8E6")),
	store.ColorRed:    lipgloss.NewStyle().Foreground(ColorInk).Background(lipgloss.Color("#F0A0A0")),
	store.ColorGray:   lipgloss.NewStyle().Foreground(ColorInk).Background(lipgloss.Color("#C8C8C8")),
}

// HighlightStyle returns the background style for a palette color. Unknown
// colors fall back to yellow rather than rendering unstyled.
func HighlightStyle(c store.Color) lipgloss.Style {
	if s, ok := highlightBackgrounds[c]; ok {
		return s
	}
	return highlightBackgrounds[store.ColorYellow]
}
