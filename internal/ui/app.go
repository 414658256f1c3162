package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/cloudreader/internal/session"
	"github.com/justyntemme/cloudreader/internal/ui/styles"
	"github.com/justyntemme/cloudreader/internal/ui/views"
	"github.com/justyntemme/cloudreader/pkg/models"
)

// App is the main application model
type App struct {
	svc  views.Services
	keys KeyMap

	// Current view state
	currentView views.ViewType
	// View esc returns to from the novel page
	novelReturn views.ViewType

	// Window dimensions
	width  int
	height int

	// View models
	libraryView   *views.LibraryView
	novelView     *views.NovelView
	readerView    *views.ReaderView
	bookmarksView *views.BookmarksView

	// Error/status message
	err       error
	statusMsg string
	showHelp  bool
}

// NewApp creates a new application instance starting at loc
func NewApp(svc views.Services, loc session.Location) *App {
	app := &App{
		svc:           svc,
		keys:          DefaultKeyMap(),
		width:         80,
		height:        24,
		libraryView:   views.NewLibraryView(svc),
		novelView:     views.NewNovelView(svc),
		readerView:    views.NewReaderView(svc),
		bookmarksView: views.NewBookmarksView(svc),
	}

	if svc.Preferences != nil {
		styles.SetCurrentTheme(svc.Preferences.Current().Theme)
		svc.Preferences.OnChange(func(rs models.ReaderSettings) {
			styles.SetCurrentTheme(rs.Theme)
		})
	}

	app.open(loc)
	return app
}

// open points the app at loc without initializing the view
func (a *App) open(loc session.Location) {
	switch loc.Page {
	case session.PageLibrary:
		a.libraryView.SetMode(true)
		a.currentView = views.ViewLibrary
	case session.PageNovel:
		a.novelView.SetNovel(loc.NovelID)
		a.novelReturn = views.ViewHome
		a.currentView = views.ViewNovel
	case session.PageReader:
		a.readerView.SetRoute(loc.Route())
		a.currentView = views.ViewReader
	case session.PageBookmarks:
		a.currentView = views.ViewBookmarks
	default:
		a.libraryView.SetMode(false)
		a.currentView = views.ViewHome
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		a.getCurrentView().Init(),
		tea.SetWindowTitle("CloudReader"),
	)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		// Leave a row for the status bar
		for _, v := range a.allViews() {
			v.SetSize(msg.Width, msg.Height-1)
		}
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.ForceQuit) {
			return a, tea.Quit
		}
		a.statusMsg = ""
		if c, ok := a.getCurrentView().(views.Capturer); ok && c.Capturing() {
			break
		}

		switch {
		case a.showHelp:
			if key.Matches(msg, a.keys.Help, a.keys.Escape, a.keys.Quit) {
				a.showHelp = false
			}
			return a, nil

		case key.Matches(msg, a.keys.Help):
			a.showHelp = true
			return a, nil

		case key.Matches(msg, a.keys.Quit):
			if a.currentView == views.ViewHome || a.currentView == views.ViewLibrary {
				return a, tea.Quit
			}
			return a.back()

		case key.Matches(msg, a.keys.Escape):
			return a.back()
		}

	case views.OpenNovelMsg:
		if a.currentView != views.ViewNovel && a.currentView != views.ViewReader {
			a.novelReturn = a.currentView
		}
		a.novelView.SetNovel(msg.NovelID)
		return a.switchView(views.ViewNovel)

	case views.OpenChapterMsg:
		a.readerView.SetRoute(msg.Route)
		return a.switchView(views.ViewReader)

	case views.ErrorMsg:
		a.err = msg.Err
		return a, nil

	case views.ClearErrorMsg:
		a.err = nil
		return a, nil

	case views.StatusMsg:
		a.statusMsg = msg.Text
		return a, nil

	case views.SwitchViewMsg:
		switch msg.View {
		case views.ViewHome:
			a.libraryView.SetMode(false)
		case views.ViewLibrary:
			a.libraryView.SetMode(true)
		}
		return a.switchView(msg.View)
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.currentView {
	case views.ViewHome, views.ViewLibrary:
		_, cmd = a.libraryView.Update(msg)
	case views.ViewNovel:
		_, cmd = a.novelView.Update(msg)
	case views.ViewReader:
		_, cmd = a.readerView.Update(msg)
	case views.ViewBookmarks:
		_, cmd = a.bookmarksView.Update(msg)
	}
	return a, cmd
}

// View implements tea.Model
func (a *App) View() string {
	if a.showHelp {
		return a.renderHelp()
	}

	content := a.getCurrentView().View()

	switch {
	case a.err != nil:
		content = lipgloss.JoinVertical(lipgloss.Left, content, styles.ErrorStyle.Render("Error: "+a.err.Error()))
	case a.statusMsg != "":
		content = lipgloss.JoinVertical(lipgloss.Left, content, styles.SuccessStyle.Render(a.statusMsg))
	}
	return content
}

// CurrentView returns the active screen
func (a *App) CurrentView() views.ViewType {
	return a.currentView
}

// back leaves the current view for its parent
func (a *App) back() (*App, tea.Cmd) {
	switch a.currentView {
	case views.ViewReader:
		a.novelView.SetNovel(a.readerView.Route().NovelID)
		return a.switchView(views.ViewNovel)
	case views.ViewNovel:
		return a.switchView(a.novelReturn)
	case views.ViewLibrary, views.ViewBookmarks:
		a.libraryView.SetMode(false)
		return a.switchView(views.ViewHome)
	}
	return a, nil
}

// switchView changes the current view and initializes it
func (a *App) switchView(view views.ViewType) (*App, tea.Cmd) {
	a.currentView = view
	a.err = nil
	return a, a.getCurrentView().Init()
}

// getCurrentView returns the current view model
func (a *App) getCurrentView() views.View {
	switch a.currentView {
	case views.ViewNovel:
		return a.novelView
	case views.ViewReader:
		return a.readerView
	case views.ViewBookmarks:
		return a.bookmarksView
	default:
		return a.libraryView
	}
}

func (a *App) allViews() []views.View {
	return []views.View{a.libraryView, a.novelView, a.readerView, a.bookmarksView}
}

// renderHelp renders the help overlay
func (a *App) renderHelp() string {
	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Keyboard Shortcuts") + "\n")
	for _, section := range a.keys.helpSections() {
		b.WriteString("\n" + styles.HelpKey.Render(section.title) + "\n")
		for _, binding := range section.bindings {
			h := binding.Help()
			b.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc))
		}
	}

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		styles.Dialog.Width(min(60, a.width-4)).Render(b.String()),
	)
}
