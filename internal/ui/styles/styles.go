// Package styles holds the lipgloss styles of the terminal UI. ApplyTheme
// rebuilds them whenever the reader theme changes.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Palette of the active theme
var (
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Success    lipgloss.Color
	Warning    lipgloss.Color
	Error      lipgloss.Color
	Muted      lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Border     lipgloss.Color
)

// Styles built from the palette
var (
	App       lipgloss.Style
	TitleBar  lipgloss.Style
	FooterBar lipgloss.Style

	Help          lipgloss.Style
	HelpKey       lipgloss.Style
	MutedText     lipgloss.Style
	SecondaryText lipgloss.Style
	ErrorStyle    lipgloss.Style
	SuccessStyle  lipgloss.Style

	InputField        lipgloss.Style
	InputFieldFocused lipgloss.Style

	SectionTitle lipgloss.Style
	Tab          lipgloss.Style
	TabActive    lipgloss.Style

	ListItem         lipgloss.Style
	ListItemSelected lipgloss.Style

	ReaderContent  lipgloss.Style
	ReaderHeader   lipgloss.Style
	ReaderProgress lipgloss.Style
	Bookmarked     lipgloss.Style

	Dialog      lipgloss.Style
	DialogTitle lipgloss.Style

	BookTitle  lipgloss.Style
	BookAuthor lipgloss.Style
	BookMeta   lipgloss.Style
	Badge      lipgloss.Style

	ChatUser  lipgloss.Style
	ChatModel lipgloss.Style
)

// TruncateText shortens s to at most width terminal cells, ending in "…"
// when cut. Wide CJK runes count as two cells.
func TruncateText(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}
