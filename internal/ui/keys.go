package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all application key bindings
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	// Actions
	Enter     key.Binding
	Escape    key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Help      key.Binding

	// Home and library
	Search    key.Binding
	Category  key.Binding
	Continue  key.Binding
	Library   key.Binding
	Bookmarks key.Binding

	// Novel page
	Tab    key.Binding
	Delete key.Binding

	// Reader
	NextChapter key.Binding
	PrevChapter key.Binding
	TOC         key.Binding
	Bookmark    key.Binding
	Settings    key.Binding
}

// DefaultKeyMap returns the default vim-like key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("^u", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("^d", "page down"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "go to top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "go to bottom"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "open"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit/back"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("^c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Category: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cycle category"),
		),
		Continue: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "continue reading"),
		),
		Library: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "home/library"),
		),
		Bookmarks: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "all bookmarks"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "1", "2", "3"),
			key.WithHelp("Tab/1-3", "chapters/bookmarks/ask"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete bookmark"),
		),
		NextChapter: key.NewBinding(
			key.WithKeys("n", "l", "right"),
			key.WithHelp("n/l", "next chapter"),
		),
		PrevChapter: key.NewBinding(
			key.WithKeys("p", "h", "left"),
			key.WithHelp("p/h", "previous chapter"),
		),
		TOC: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "table of contents"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys("B"),
			key.WithHelp("B", "toggle bookmark"),
		),
		Settings: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "reading settings"),
		),
	}
}

// helpSections groups bindings for the help overlay
func (k KeyMap) helpSections() []helpSection {
	return []helpSection{
		{"Navigation", []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End}},
		{"Home & Library", []key.Binding{k.Enter, k.Search, k.Category, k.Continue, k.Library, k.Bookmarks}},
		{"Novel", []key.Binding{k.Tab, k.Delete}},
		{"Reader", []key.Binding{k.NextChapter, k.PrevChapter, k.TOC, k.Bookmark, k.Settings}},
		{"General", []key.Binding{k.Escape, k.Quit, k.ForceQuit, k.Help}},
	}
}

type helpSection struct {
	title    string
	bindings []key.Binding
}
