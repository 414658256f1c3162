package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/justyntemme/cloudreader/internal/session"
	"github.com/justyntemme/cloudreader/internal/ui/styles"
	"github.com/justyntemme/cloudreader/pkg/models"
)

// LibraryView lists novels. On the home page it shows recently updated
// novels and the reading history; in library mode it shows every novel
// with a category filter.
type LibraryView struct {
	svc Services
	all bool

	novels     []models.Novel
	categories []models.Category
	history    []models.HistoryEntry

	// 0 shows every category, i selects categories[i-1]
	category int

	cursor int
	offset int

	loading     bool
	err         error
	seq         int
	searchMode  bool
	searchInput textinput.Model
	query       string

	// Dimensions
	width  int
	height int
}

// NewLibraryView creates a new library view
func NewLibraryView(svc Services) *LibraryView {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search title or author..."
	searchInput.CharLimit = 100
	searchInput.Width = 40

	return &LibraryView{
		svc:         svc,
		searchInput: searchInput,
		width:       80,
		height:      24,
	}
}

// libraryLoadedMsg is sent when the list, categories and history are loaded
type libraryLoadedMsg struct {
	seq        int
	novels     []models.Novel
	categories []models.Category
	history    []models.HistoryEntry
	err        error
}

// SetMode switches between the home page and the full library
func (v *LibraryView) SetMode(all bool) {
	if v.all != all {
		v.cursor = 0
		v.offset = 0
		v.category = 0
	}
	v.all = all
}

// Capturing implements Capturer
func (v *LibraryView) Capturing() bool {
	return v.searchMode
}

// Init implements View
func (v *LibraryView) Init() tea.Cmd {
	v.loading = true
	return v.loadNovels()
}

// Update implements View
func (v *LibraryView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.searchMode {
			switch msg.String() {
			case "esc":
				v.searchMode = false
				v.searchInput.Blur()
				return v, nil
			case "enter":
				v.searchMode = false
				v.searchInput.Blur()
				v.query = strings.TrimSpace(v.searchInput.Value())
				v.cursor, v.offset = 0, 0
				v.loading = true
				return v, v.loadNovels()
			default:
				var cmd tea.Cmd
				v.searchInput, cmd = v.searchInput.Update(msg)
				return v, cmd
			}
		}
		return v.handleKeyMsg(msg)

	case libraryLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.novels = msg.novels
		v.categories = msg.categories
		v.history = msg.history
		if v.category > len(v.categories) {
			v.category = 0
		}
		v.moveCursor(0)
	}
	return v, nil
}

func (v *LibraryView) handleKeyMsg(msg tea.KeyMsg) (View, tea.Cmd) {
	visible := v.visibleNovels()

	switch msg.String() {
	case "j", "down":
		v.moveCursor(1)
	case "k", "up":
		v.moveCursor(-1)
	case "g", "home":
		v.cursor = 0
		v.offset = 0
	case "G", "end":
		v.cursor = max(len(visible)-1, 0)
		v.updateOffset()
	case "ctrl+d", "pgdown":
		v.moveCursor(v.visibleLines() / 2)
	case "ctrl+u", "pgup":
		v.moveCursor(-v.visibleLines() / 2)
	case "/":
		v.searchMode = true
		v.searchInput.Focus()
		return v, textinput.Blink
	case "enter", "i":
		if v.cursor < len(visible) {
			return v, OpenNovel(visible[v.cursor].ID)
		}
	case "c":
		v.category = (v.category + 1) % (len(v.categories) + 1)
		v.cursor, v.offset = 0, 0
	case "x":
		v.category = 0
		v.cursor, v.offset = 0, 0
		if v.query != "" {
			v.query = ""
			v.searchInput.SetValue("")
			v.loading = true
			return v, v.loadNovels()
		}
	case "r":
		if len(v.history) > 0 {
			h := v.history[0]
			return v, OpenChapter(session.Route{NovelID: h.NovelID, ChapterNumber: max(h.LastChapter, 1)})
		}
	case "R":
		v.loading = true
		return v, v.loadNovels()
	case "a":
		if v.all {
			return v, SwitchTo(ViewHome)
		}
		return v, SwitchTo(ViewLibrary)
	case "b":
		return v, SwitchTo(ViewBookmarks)
	}
	return v, nil
}

// visibleNovels applies the category filter
func (v *LibraryView) visibleNovels() []models.Novel {
	if v.category == 0 || v.category > len(v.categories) {
		return v.novels
	}
	name := v.categories[v.category-1].Name
	var out []models.Novel
	for _, n := range v.novels {
		if n.Category == name {
			out = append(out, n)
		}
	}
	return out
}

// View implements View
func (v *LibraryView) View() string {
	var b strings.Builder

	b.WriteString(v.renderHeader() + "\n")

	if v.searchMode {
		b.WriteString(styles.InputFieldFocused.Render(v.searchInput.View()) + "\n")
	}

	if !v.all && len(v.history) > 0 && v.query == "" {
		h := v.history[0]
		b.WriteString(styles.SecondaryText.Render(fmt.Sprintf(" Continue: %s, chapter %d ", h.Title, h.LastChapter)) +
			styles.HelpKey.Render("r") + "\n")
	}

	switch {
	case v.loading:
		b.WriteString(v.placeMessage(styles.MutedText.Render("Loading novels...")))
		return b.String()
	case v.err != nil:
		b.WriteString(v.placeMessage(styles.ErrorStyle.Render("Error: " + v.err.Error())))
		return b.String()
	}

	visible := v.visibleNovels()
	if len(visible) == 0 {
		b.WriteString(v.placeMessage(styles.MutedText.Render("No novels found")))
		return b.String()
	}

	for i := v.offset; i < min(v.offset+v.visibleLines(), len(visible)); i++ {
		b.WriteString(v.renderNovelLine(visible[i], i == v.cursor) + "\n")
	}

	b.WriteString("\n" + v.renderFooter())
	return b.String()
}

// SetSize implements View
func (v *LibraryView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.searchInput.Width = min(40, width-10)
}

func (v *LibraryView) placeMessage(s string) string {
	return lipgloss.Place(v.width, max(v.height-4, 1), lipgloss.Center, lipgloss.Center, s)
}

// renderHeader renders the header bar
func (v *LibraryView) renderHeader() string {
	titleText := " CloudReader "
	if v.all {
		titleText = " Library "
	}
	title := styles.TitleBar.Render(titleText)

	filter := "All"
	if v.category > 0 && v.category <= len(v.categories) {
		filter = v.categories[v.category-1].Name
	}
	filterInfo := styles.Help.Render(" Category: " + filter + " ")

	searchInfo := ""
	if v.query != "" {
		searchInfo = styles.SecondaryText.Render(fmt.Sprintf(" [Search: %s]", v.query))
	}

	count := styles.Help.Render(fmt.Sprintf(" %d novels ", len(v.visibleNovels())))

	left := title + filterInfo + searchInfo
	gap := max(v.width-lipgloss.Width(left)-lipgloss.Width(count), 0)
	return left + strings.Repeat(" ", gap) + count
}

// renderNovelLine renders a single novel line
func (v *LibraryView) renderNovelLine(n models.Novel, selected bool) string {
	badge := ""
	if n.Category != "" {
		badge = styles.Badge.Render(n.Category) + " "
	}
	if n.IsCorrupted {
		badge += styles.ErrorStyle.Render("!") + " "
	}

	meta := fmt.Sprintf("  %s · %d章", formatWordCount(n.WordCount), n.ChapterCount)
	maxWidth := max(v.width-8-lipgloss.Width(badge)-lipgloss.Width(meta), 10)
	line := styles.TruncateText(n.Title+" - "+n.Author, maxWidth)

	if selected {
		return styles.ListItemSelected.Width(v.width).Render("▸ " + badge + line + meta)
	}
	return styles.ListItem.Render("  " + badge + line + styles.MutedText.Render(meta))
}

// renderFooter renders the footer help
func (v *LibraryView) renderFooter() string {
	mode := "library"
	if v.all {
		mode = "home"
	}
	help := []string{
		styles.HelpKey.Render("j/k") + styles.Help.Render(" nav"),
		styles.HelpKey.Render("enter") + styles.Help.Render(" open"),
		styles.HelpKey.Render("/") + styles.Help.Render(" search"),
		styles.HelpKey.Render("c") + styles.Help.Render(" category"),
		styles.HelpKey.Render("a") + styles.Help.Render(" "+mode),
		styles.HelpKey.Render("b") + styles.Help.Render(" bookmarks"),
		styles.HelpKey.Render("q") + styles.Help.Render(" quit"),
	}

	themeIndicator := styles.MutedText.Render(" [Theme: " + styles.CurrentTheme().Name + "] ")
	helpText := strings.Join(help, "  ")
	gap := max(v.width-lipgloss.Width(helpText)-lipgloss.Width(themeIndicator), 0)
	return helpText + strings.Repeat(" ", gap) + themeIndicator
}

// loadNovels fetches the list for the current mode and query together with
// the categories and the reading history
func (v *LibraryView) loadNovels() tea.Cmd {
	v.seq++
	seq, svc, all, query := v.seq, v.svc, v.all, v.query

	return func() tea.Msg {
		ctx, cancel := svc.context()
		defer cancel()

		msg := libraryLoadedMsg{seq: seq}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			switch {
			case query != "":
				msg.novels, err = svc.Content.Search(gctx, query)
			case all:
				msg.novels, err = svc.Content.AllNovels(gctx)
			default:
				msg.novels, err = svc.Content.RecentNovels(gctx)
			}
			return err
		})
		g.Go(func() error {
			var err error
			msg.categories, err = svc.Content.Categories(gctx)
			return err
		})
		if svc.History != nil {
			g.Go(func() error {
				var err error
				if msg.history, err = svc.History.Recent(gctx); err != nil {
					log.Warn().Err(err).Msg("failed to load reading history")
				}
				return nil
			})
		}
		msg.err = g.Wait()
		return msg
	}
}

// moveCursor moves the cursor by delta
func (v *LibraryView) moveCursor(delta int) {
	n := len(v.visibleNovels())
	v.cursor = max(min(v.cursor+delta, n-1), 0)
	v.updateOffset()
}

// updateOffset ensures the cursor is visible
func (v *LibraryView) updateOffset() {
	visibleLines := v.visibleLines()
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+visibleLines {
		v.offset = v.cursor - visibleLines + 1
	}
}

// visibleLines returns the number of visible novel lines
func (v *LibraryView) visibleLines() int {
	lines := v.height - 5
	if v.searchMode {
		lines--
	}
	if !v.all && len(v.history) > 0 {
		lines--
	}
	return max(lines, 1)
}

// formatWordCount renders a word count the way Chinese sites do
func formatWordCount(n int) string {
	if n >= 10000 {
		return fmt.Sprintf("%.1f万字", float64(n)/10000)
	}
	return fmt.Sprintf("%d字", n)
}
