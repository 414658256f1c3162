package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/cloudreader/pkg/models"
)

// Theme is a color scheme. Every reader theme maps to one.
type Theme struct {
	Name string

	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color

	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Muted   lipgloss.Color

	Border        lipgloss.Color
	Selection     lipgloss.Color
	SelectionText lipgloss.Color
	Badge         lipgloss.Color
	BadgeText     lipgloss.Color
}

var (
	// LightTheme is the default
	LightTheme = Theme{
		Name:          models.ThemeLight,
		Primary:       lipgloss.Color("#2563EB"),
		Secondary:     lipgloss.Color("#0891B2"),
		Background:    lipgloss.Color("#F9FAFB"),
		Foreground:    lipgloss.Color("#1F2937"),
		Success:       lipgloss.Color("#059669"),
		Warning:       lipgloss.Color("#D97706"),
		Error:         lipgloss.Color("#DC2626"),
		Muted:         lipgloss.Color("#9CA3AF"),
		Border:        lipgloss.Color("#E5E7EB"),
		Selection:     lipgloss.Color("#2563EB"),
		SelectionText: lipgloss.Color("#FFFFFF"),
		Badge:         lipgloss.Color("#DBEAFE"),
		BadgeText:     lipgloss.Color("#1E40AF"),
	}

	// SepiaTheme imitates aged paper
	SepiaTheme = Theme{
		Name:          models.ThemeSepia,
		Primary:       lipgloss.Color("#92400E"),
		Secondary:     lipgloss.Color("#A16207"),
		Background:    lipgloss.Color("#F4ECD8"),
		Foreground:    lipgloss.Color("#5B4636"),
		Success:       lipgloss.Color("#4D7C0F"),
		Warning:       lipgloss.Color("#B45309"),
		Error:         lipgloss.Color("#B91C1C"),
		Muted:         lipgloss.Color("#A8957A"),
		Border:        lipgloss.Color("#E0D3B8"),
		Selection:     lipgloss.Color("#92400E"),
		SelectionText: lipgloss.Color("#F4ECD8"),
		Badge:         lipgloss.Color("#E9DCC0"),
		BadgeText:     lipgloss.Color("#78350F"),
	}

	// DarkTheme is a neutral dark scheme
	DarkTheme = Theme{
		Name:          models.ThemeDark,
		Primary:       lipgloss.Color("#60A5FA"),
		Secondary:     lipgloss.Color("#22D3EE"),
		Background:    lipgloss.Color("#111827"),
		Foreground:    lipgloss.Color("#D1D5DB"),
		Success:       lipgloss.Color("#10B981"),
		Warning:       lipgloss.Color("#F59E0B"),
		Error:         lipgloss.Color("#EF4444"),
		Muted:         lipgloss.Color("#6B7280"),
		Border:        lipgloss.Color("#374151"),
		Selection:     lipgloss.Color("#3B82F6"),
		SelectionText: lipgloss.Color("#F9FAFB"),
		Badge:         lipgloss.Color("#1F2937"),
		BadgeText:     lipgloss.Color("#93C5FD"),
	}

	// DarkBlueTheme is a dark scheme on slate blue
	DarkBlueTheme = Theme{
		Name:          models.ThemeDarkBlue,
		Primary:       lipgloss.Color("#38BDF8"),
		Secondary:     lipgloss.Color("#818CF8"),
		Background:    lipgloss.Color("#0F172A"),
		Foreground:    lipgloss.Color("#CBD5E1"),
		Success:       lipgloss.Color("#34D399"),
		Warning:       lipgloss.Color("#FBBF24"),
		Error:         lipgloss.Color("#F87171"),
		Muted:         lipgloss.Color("#64748B"),
		Border:        lipgloss.Color("#1E293B"),
		Selection:     lipgloss.Color("#0EA5E9"),
		SelectionText: lipgloss.Color("#0F172A"),
		Badge:         lipgloss.Color("#1E293B"),
		BadgeText:     lipgloss.Color("#7DD3FC"),
	}

	// BuiltinThemes lists the themes in reader settings order
	BuiltinThemes = []Theme{LightTheme, SepiaTheme, DarkTheme, DarkBlueTheme}

	currentTheme = LightTheme
)

// GetTheme returns a theme by reader theme name. Unknown names get the
// light theme.
func GetTheme(name string) Theme {
	for _, t := range BuiltinThemes {
		if t.Name == name {
			return t
		}
	}
	return LightTheme
}

// CurrentTheme returns the active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetCurrentTheme activates the named theme
func SetCurrentTheme(name string) {
	currentTheme = GetTheme(name)
	ApplyTheme(currentTheme)
}

// ApplyTheme rebuilds every global style from theme
func ApplyTheme(theme Theme) {
	Primary = theme.Primary
	Secondary = theme.Secondary
	Success = theme.Success
	Warning = theme.Warning
	Error = theme.Error
	Muted = theme.Muted
	Background = theme.Background
	Foreground = theme.Foreground
	Border = theme.Border

	App = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Background)

	TitleBar = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	FooterBar = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1)

	Help = lipgloss.NewStyle().Foreground(theme.Muted)
	HelpKey = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	MutedText = lipgloss.NewStyle().Foreground(theme.Muted)
	SecondaryText = lipgloss.NewStyle().Foreground(theme.Secondary)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(theme.Error).
		Bold(true).
		Padding(0, 1)

	SuccessStyle = lipgloss.NewStyle().
		Foreground(theme.Success).
		Bold(true).
		Padding(0, 1)

	InputField = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	InputFieldFocused = InputField.BorderForeground(theme.Primary)

	SectionTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	Tab = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Padding(0, 1)

	TabActive = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	ListItem = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Padding(0, 2)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Selection).
		Padding(0, 2).
		Bold(true)

	ReaderContent = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Background(theme.Background).
		Padding(0, 2)

	ReaderHeader = lipgloss.NewStyle().
		Foreground(theme.SelectionText).
		Background(theme.Primary).
		Padding(0, 1).
		Bold(true)

	ReaderProgress = lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Align(lipgloss.Right)

	Bookmarked = lipgloss.NewStyle().
		Foreground(theme.Warning).
		Bold(true)

	Dialog = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Padding(1, 2)

	DialogTitle = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		MarginBottom(1)

	BookTitle = lipgloss.NewStyle().
		Foreground(theme.Foreground).
		Bold(true)

	BookAuthor = lipgloss.NewStyle().Foreground(theme.Secondary)

	BookMeta = lipgloss.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	Badge = lipgloss.NewStyle().
		Foreground(theme.BadgeText).
		Background(theme.Badge).
		Padding(0, 1)

	ChatUser = lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	ChatModel = lipgloss.NewStyle().
		Foreground(theme.Success).
		Bold(true)
}

func init() {
	ApplyTheme(LightTheme)
}
