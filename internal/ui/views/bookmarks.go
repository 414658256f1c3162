package views

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/justyntemme/cloudreader/internal/metrics"
	"github.com/justyntemme/cloudreader/internal/session"
	"github.com/justyntemme/cloudreader/internal/ui/styles"
	"github.com/justyntemme/cloudreader/pkg/models"
)

// BookmarksView lists every bookmark, newest first
type BookmarksView struct {
	svc Services

	bookmarks []models.Bookmark
	cursor    int
	offset    int

	loading       bool
	err           error
	confirmDelete bool

	// Dimensions
	width  int
	height int
}

// NewBookmarksView creates a new bookmarks view
func NewBookmarksView(svc Services) *BookmarksView {
	return &BookmarksView{
		svc:    svc,
		width:  80,
		height: 24,
	}
}

// bookmarksLoadedMsg is sent when bookmarks are loaded
type bookmarksLoadedMsg struct {
	bookmarks []models.Bookmark
	err       error
}

// Capturing implements Capturer
func (v *BookmarksView) Capturing() bool {
	return v.confirmDelete
}

// Init implements View
func (v *BookmarksView) Init() tea.Cmd {
	v.loading = true
	return v.loadBookmarks()
}

// Update implements View
func (v *BookmarksView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.confirmDelete {
			switch msg.String() {
			case "y", "Y":
				v.confirmDelete = false
				if v.cursor < len(v.bookmarks) {
					return v, v.deleteBookmark(v.bookmarks[v.cursor].ID)
				}
			case "n", "N", "esc":
				v.confirmDelete = false
			}
			return v, nil
		}

		switch msg.String() {
		case "j", "down":
			v.moveCursor(1)
		case "k", "up":
			v.moveCursor(-1)
		case "g", "home":
			v.cursor, v.offset = 0, 0
		case "G", "end":
			v.moveCursor(len(v.bookmarks))
		case "enter":
			if v.cursor < len(v.bookmarks) {
				b := v.bookmarks[v.cursor]
				return v, OpenChapter(session.Route{NovelID: b.NovelID, ChapterNumber: b.ChapterNumber})
			}
		case "i":
			if v.cursor < len(v.bookmarks) {
				return v, OpenNovel(v.bookmarks[v.cursor].NovelID)
			}
		case "d":
			if v.cursor < len(v.bookmarks) {
				v.confirmDelete = true
			}
		case "R":
			v.loading = true
			return v, v.loadBookmarks()
		}

	case bookmarksLoadedMsg:
		v.loading = false
		v.err = msg.err
		if msg.err == nil {
			v.bookmarks = msg.bookmarks
		}
		v.moveCursor(0)
	}
	return v, nil
}

// View implements View
func (v *BookmarksView) View() string {
	if v.confirmDelete && v.cursor < len(v.bookmarks) {
		b := v.bookmarks[v.cursor]
		dialog := styles.Dialog.Width(50).Render(
			styles.DialogTitle.Render("Delete Bookmark?") + "\n\n" +
				styles.BookTitle.Render(styles.TruncateText(b.NovelTitle, 40)) + "\n" +
				styles.BookAuthor.Render(styles.TruncateText(b.ChapterTitle, 40)) + "\n\n" +
				styles.Help.Render("Press ") + styles.HelpKey.Render("y") +
				styles.Help.Render(" to confirm, ") + styles.HelpKey.Render("n") +
				styles.Help.Render(" to cancel"),
		)
		return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, dialog)
	}

	var b strings.Builder
	title := styles.TitleBar.Render(" Bookmarks ")
	count := styles.Help.Render(fmt.Sprintf(" %d saved ", len(v.bookmarks)))
	gap := max(v.width-lipgloss.Width(title)-lipgloss.Width(count), 0)
	b.WriteString(title + strings.Repeat(" ", gap) + count + "\n")

	switch {
	case v.loading:
		b.WriteString(v.placeMessage(styles.MutedText.Render("Loading bookmarks...")))
		return b.String()
	case v.err != nil:
		b.WriteString(v.placeMessage(styles.ErrorStyle.Render("Error: " + v.err.Error())))
		return b.String()
	case len(v.bookmarks) == 0:
		b.WriteString(v.placeMessage(styles.MutedText.Render("No bookmarks yet. Press B while reading to add one.")))
		return b.String()
	}

	rows := v.visibleLines()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+rows {
		v.offset = v.cursor - rows + 1
	}
	for i := v.offset; i < min(v.offset+rows, len(v.bookmarks)); i++ {
		b.WriteString(renderBookmarkLine(v.bookmarks[i], true, i == v.cursor, v.width) + "\n")
	}

	help := []string{
		styles.HelpKey.Render("j/k") + styles.Help.Render(" nav"),
		styles.HelpKey.Render("enter") + styles.Help.Render(" read"),
		styles.HelpKey.Render("i") + styles.Help.Render(" novel"),
		styles.HelpKey.Render("d") + styles.Help.Render(" delete"),
		styles.HelpKey.Render("esc") + styles.Help.Render(" back"),
	}
	b.WriteString("\n" + styles.FooterBar.Width(v.width).Render(strings.Join(help, "  ")))
	return b.String()
}

// SetSize implements View
func (v *BookmarksView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

func (v *BookmarksView) placeMessage(s string) string {
	return lipgloss.Place(v.width, max(v.height-4, 1), lipgloss.Center, lipgloss.Center, s)
}

func (v *BookmarksView) visibleLines() int {
	return max(v.height-4, 1)
}

func (v *BookmarksView) moveCursor(delta int) {
	v.cursor = max(min(v.cursor+delta, len(v.bookmarks)-1), 0)
}

func (v *BookmarksView) loadBookmarks() tea.Cmd {
	store := v.svc.Bookmarks
	return func() tea.Msg {
		list, err := store.List(context.Background())
		return bookmarksLoadedMsg{bookmarks: list, err: err}
	}
}

func (v *BookmarksView) deleteBookmark(id string) tea.Cmd {
	if err := v.svc.Bookmarks.Remove(context.Background(), id); err != nil {
		return SendError(err)
	}
	metrics.BookmarkChanges.WithLabelValues("remove").Inc()
	return tea.Batch(v.loadBookmarks(), Status("Bookmark removed"))
}

// renderBookmarkLine renders one bookmark. withNovel prefixes the novel title.
func renderBookmarkLine(b models.Bookmark, withNovel, selected bool, width int) string {
	text := fmt.Sprintf("第%d章 %s", b.ChapterNumber, b.ChapterTitle)
	if withNovel {
		text = b.NovelTitle + " · " + text
	}

	when := ""
	if t := b.Created(); !t.IsZero() {
		when = "  " + t.Local().Format("2006-01-02 15:04")
	}
	text = styles.TruncateText(text, max(width-8-len(when), 10))

	if selected {
		return styles.ListItemSelected.Width(width).Render("▸ " + text + when)
	}
	return styles.ListItem.Render("  " + text + styles.MutedText.Render(when))
}
