package views

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/justyntemme/cloudreader/internal/assistant"
	"github.com/justyntemme/cloudreader/internal/bookmark"
	"github.com/justyntemme/cloudreader/internal/content"
	"github.com/justyntemme/cloudreader/internal/preferences"
	"github.com/justyntemme/cloudreader/internal/session"
)

// ViewType represents different screens in the application
type ViewType int

const (
	ViewHome ViewType = iota
	ViewLibrary
	ViewNovel
	ViewReader
	ViewBookmarks
)

// String returns the name of the view
func (v ViewType) String() string {
	switch v {
	case ViewHome:
		return "Home"
	case ViewLibrary:
		return "Library"
	case ViewNovel:
		return "Novel"
	case ViewReader:
		return "Reader"
	case ViewBookmarks:
		return "Bookmarks"
	default:
		return "Unknown"
	}
}

// View is the interface that all views must implement
type View interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (View, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// Capturer is implemented by views that own a text input. While Capturing
// returns true the app passes every key through to the view.
type Capturer interface {
	Capturing() bool
}

// Services are the backends shared by all views
type Services struct {
	Content     content.Provider
	Bookmarks   *bookmark.Store
	History     *bookmark.History
	Preferences *preferences.Store
	Assistant   assistant.Client

	// Now defaults to time.Now
	Now func() time.Time
	// Timeout bounds every content request. Zero means no limit.
	Timeout time.Duration
}

func (s Services) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s Services) context() (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), s.Timeout)
}

// Message types for inter-view communication

// OpenNovelMsg is sent when a novel is selected
type OpenNovelMsg struct {
	NovelID int
}

// OpenChapterMsg is sent when a chapter should be shown in the reader
type OpenChapterMsg struct {
	Route session.Route
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// ClearErrorMsg clears the current error
type ClearErrorMsg struct{}

// SwitchViewMsg requests a view switch
type SwitchViewMsg struct {
	View ViewType
}

// StatusMsg shows a short notice in the status bar
type StatusMsg struct {
	Text string
}

// Helper functions to create messages

// SendError creates an error message command
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Err: err}
	}
}

// ClearError creates a command to clear errors
func ClearError() tea.Cmd {
	return func() tea.Msg {
		return ClearErrorMsg{}
	}
}

// SwitchTo creates a command to switch views
func SwitchTo(view ViewType) tea.Cmd {
	return func() tea.Msg {
		return SwitchViewMsg{View: view}
	}
}

// OpenNovel creates a command opening the novel page
func OpenNovel(id int) tea.Cmd {
	return func() tea.Msg {
		return OpenNovelMsg{NovelID: id}
	}
}

// OpenChapter creates a command opening r in the reader
func OpenChapter(r session.Route) tea.Cmd {
	return func() tea.Msg {
		return OpenChapterMsg{Route: r}
	}
}

// Status creates a status bar notice command
func Status(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg{Text: text}
	}
}
