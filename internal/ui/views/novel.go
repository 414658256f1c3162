package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/justyntemme/cloudreader/internal/assistant"
	"github.com/justyntemme/cloudreader/internal/content"
	"github.com/justyntemme/cloudreader/internal/metrics"
	"github.com/justyntemme/cloudreader/internal/session"
	"github.com/justyntemme/cloudreader/internal/ui/styles"
	"github.com/justyntemme/cloudreader/pkg/models"
)

// Tabs of the novel page
const (
	tabChapters = iota
	tabBookmarks
	tabAssistant
	tabCount
)

var tabNames = [tabCount]string{"Chapters", "Bookmarks", "Ask AI"}

// NovelView shows a novel with its chapters, its bookmarks and an
// assistant to ask about it
type NovelView struct {
	svc Services

	novelID     int
	novel       *models.Novel
	chapters    []models.Chapter
	bookmarks   []models.Bookmark
	lastChapter int

	loading bool
	err     error
	seq     int

	tab    int
	cursor int
	offset int

	confirmDelete bool

	conv    *assistant.Conversation
	input   textinput.Model
	asking  bool
	spinner spinner.Model

	// Dimensions
	width  int
	height int
}

// NewNovelView creates a new novel view
func NewNovelView(svc Services) *NovelView {
	input := textinput.New()
	input.Placeholder = "Ask about this novel..."
	input.CharLimit = 500
	input.Width = 60

	return &NovelView{
		svc:     svc,
		input:   input,
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		width:   80,
		height:  24,
	}
}

// novelLoadedMsg is sent when the novel page data is loaded
type novelLoadedMsg struct {
	seq         int
	novel       *models.Novel
	chapters    []models.Chapter
	bookmarks   []models.Bookmark
	lastChapter int
	err         error
}

// assistantReplyMsg is sent when the assistant answers
type assistantReplyMsg struct {
	conv  *assistant.Conversation
	reply assistant.Message
}

// SetNovel sets the novel to display
func (v *NovelView) SetNovel(id int) {
	if id != v.novelID {
		v.novel = nil
		v.chapters = nil
		v.bookmarks = nil
		v.lastChapter = 0
		v.conv = nil
		v.asking = false
		v.tab = tabChapters
		v.cursor, v.offset = 0, 0
		v.input.Reset()
		v.input.Blur()
	}
	v.novelID = id
	v.confirmDelete = false
}

// NovelID returns the displayed novel
func (v *NovelView) NovelID() int {
	return v.novelID
}

// Capturing implements Capturer
func (v *NovelView) Capturing() bool {
	return v.input.Focused() || v.confirmDelete
}

// Init implements View
func (v *NovelView) Init() tea.Cmd {
	if v.novelID == 0 {
		return nil
	}
	v.loading = v.novel == nil
	return v.load()
}

// Update implements View
func (v *NovelView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if v.confirmDelete {
			return v.updateConfirm(msg)
		}
		if v.input.Focused() {
			return v.updateInput(msg)
		}
		return v.handleKeyMsg(msg)

	case novelLoadedMsg:
		if msg.seq != v.seq {
			return v, nil
		}
		v.loading = false
		v.err = msg.err
		if msg.err != nil {
			return v, nil
		}
		v.novel = msg.novel
		v.chapters = msg.chapters
		v.bookmarks = msg.bookmarks
		v.lastChapter = msg.lastChapter
		if v.novel != nil && v.conv == nil {
			v.conv = assistant.NewConversation(v.svc.Assistant, assistant.Book{
				Title:   v.novel.Title,
				Author:  v.novel.Author,
				Summary: v.novel.Summary,
			})
		}
		v.moveCursor(0)

	case assistantReplyMsg:
		if msg.conv == v.conv {
			v.asking = false
		}

	case spinner.TickMsg:
		if v.asking {
			var cmd tea.Cmd
			v.spinner, cmd = v.spinner.Update(msg)
			return v, cmd
		}
	}
	return v, nil
}

func (v *NovelView) handleKeyMsg(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "tab":
		v.selectTab((v.tab + 1) % tabCount)
	case "shift+tab":
		v.selectTab((v.tab + tabCount - 1) % tabCount)
	case "1", "2", "3":
		v.selectTab(int(msg.String()[0] - '1'))
	case "j", "down":
		v.moveCursor(1)
	case "k", "up":
		v.moveCursor(-1)
	case "g", "home":
		v.cursor, v.offset = 0, 0
	case "G", "end":
		v.moveCursor(v.listLen())
	case "r":
		if v.novel != nil {
			return v, OpenChapter(session.Route{NovelID: v.novelID, ChapterNumber: max(v.lastChapter, 1)})
		}
	case "enter":
		return v, v.activate()
	case "d":
		if v.tab == tabBookmarks && v.cursor < len(v.bookmarks) {
			v.confirmDelete = true
		}
	}
	return v, nil
}

func (v *NovelView) selectTab(tab int) {
	v.tab = tab
	v.cursor, v.offset = 0, 0
	if tab == tabAssistant && v.conv != nil {
		v.input.Focus()
	}
}

// activate opens the selected chapter or bookmark, or focuses the question
// input on the assistant tab
func (v *NovelView) activate() tea.Cmd {
	switch v.tab {
	case tabChapters:
		if v.cursor < len(v.chapters) {
			ch := v.chapters[v.cursor]
			return OpenChapter(session.Route{NovelID: v.novelID, ChapterNumber: ch.ChapterNumber})
		}
	case tabBookmarks:
		if v.cursor < len(v.bookmarks) {
			b := v.bookmarks[v.cursor]
			return OpenChapter(session.Route{NovelID: b.NovelID, ChapterNumber: b.ChapterNumber})
		}
	case tabAssistant:
		if v.conv != nil {
			v.input.Focus()
			return textinput.Blink
		}
	}
	return nil
}

func (v *NovelView) updateConfirm(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		v.confirmDelete = false
		if v.cursor < len(v.bookmarks) {
			return v, v.removeBookmark(v.bookmarks[v.cursor].ID)
		}
	case "n", "N", "esc":
		v.confirmDelete = false
	}
	return v, nil
}

func (v *NovelView) updateInput(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc":
		v.input.Blur()
		return v, nil
	case "enter":
		q := strings.TrimSpace(v.input.Value())
		if q == "" || v.asking || v.conv == nil {
			return v, nil
		}
		v.input.Reset()
		v.asking = true
		return v, tea.Batch(v.spinner.Tick, v.ask(q))
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *NovelView) ask(question string) tea.Cmd {
	conv := v.conv
	return func() tea.Msg {
		reply, _ := conv.Send(context.Background(), question)
		return assistantReplyMsg{conv: conv, reply: reply}
	}
}

func (v *NovelView) removeBookmark(id string) tea.Cmd {
	if err := v.svc.Bookmarks.Remove(context.Background(), id); err != nil {
		return SendError(err)
	}
	metrics.BookmarkChanges.WithLabelValues("remove").Inc()

	kept := v.bookmarks[:0]
	for _, b := range v.bookmarks {
		if b.ID != id {
			kept = append(kept, b)
		}
	}
	v.bookmarks = kept
	v.moveCursor(0)
	return Status("Bookmark removed")
}

// View implements View
func (v *NovelView) View() string {
	switch {
	case v.loading:
		return v.placeMessage(styles.MutedText.Render("Loading..."))
	case v.err != nil:
		return v.placeMessage(styles.ErrorStyle.Render("Error: " + v.err.Error()))
	case v.novel == nil:
		return v.placeMessage(styles.ErrorStyle.Render("Novel not found") + "\n\n" +
			styles.Help.Render("Press esc to go back."))
	}
	if v.confirmDelete && v.cursor < len(v.bookmarks) {
		return v.renderDeleteConfirmation(v.bookmarks[v.cursor])
	}

	top := v.renderInfo() + "\n" + v.renderTabs() + "\n"
	rows := max(v.height-lipgloss.Height(top)-2, 1)

	var body string
	switch v.tab {
	case tabChapters:
		body = v.renderChapters(rows)
	case tabBookmarks:
		body = v.renderBookmarks(rows)
	case tabAssistant:
		body = v.renderAssistant(rows)
	}

	return top + body + "\n" + v.renderFooter()
}

// SetSize implements View
func (v *NovelView) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.input.Width = max(min(80, width-10), 10)
}

func (v *NovelView) placeMessage(s string) string {
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, s)
}

// renderInfo renders the title block and summary
func (v *NovelView) renderInfo() string {
	n := v.novel
	var b strings.Builder

	b.WriteString(styles.TitleBar.Render(" "+styles.TruncateText(n.Title, max(v.width-4, 10))+" ") + "\n\n")
	b.WriteString(v.renderField("Author", n.Author))
	b.WriteString(v.renderField("Category", n.Category))
	b.WriteString(v.renderField("Length", fmt.Sprintf("%s · %d章", formatWordCount(n.WordCount), n.ChapterCount)))
	if v.lastChapter > 0 {
		b.WriteString(v.renderField("Last read", fmt.Sprintf("Chapter %d", v.lastChapter)))
	}
	if tags := n.TagList(); len(tags) > 0 {
		badges := make([]string, len(tags))
		for i, t := range tags {
			badges[i] = styles.Badge.Render(t)
		}
		b.WriteString(v.renderField("Tags", strings.Join(badges, " ")))
	}
	if n.Summary != "" {
		summary := lipgloss.NewStyle().Width(max(v.width-4, 20)).MaxHeight(4).Render(n.Summary)
		b.WriteString("\n" + styles.BookMeta.Render(summary) + "\n")
	}
	return b.String()
}

// renderField renders a label-value pair
func (v *NovelView) renderField(label, value string) string {
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted).Width(12)
	return labelStyle.Render(label+":") + " " + value + "\n"
}

func (v *NovelView) renderTabs() string {
	tabs := make([]string, tabCount)
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if i == tabBookmarks {
			label = fmt.Sprintf("%s (%d)", label, len(v.bookmarks))
		}
		if i == v.tab {
			tabs[i] = styles.TabActive.Render(label)
		} else {
			tabs[i] = styles.Tab.Render(label)
		}
	}
	return strings.Join(tabs, " ")
}

func (v *NovelView) renderChapters(rows int) string {
	if len(v.chapters) == 0 {
		return styles.MutedText.Render("  No chapters") + "\n"
	}
	v.keepVisible(rows)

	var b strings.Builder
	for i := v.offset; i < min(v.offset+rows, len(v.chapters)); i++ {
		ch := v.chapters[i]
		line := styles.TruncateText(fmt.Sprintf("%d. %s", ch.ChapterNumber, ch.Title), max(v.width-8, 10))
		switch {
		case i == v.cursor:
			b.WriteString(styles.ListItemSelected.Width(v.width).Render("▸ "+line) + "\n")
		case ch.ChapterNumber == v.lastChapter:
			b.WriteString(styles.BookAuthor.Render("  "+line+" (last read)") + "\n")
		default:
			b.WriteString(styles.ListItem.Render("  "+line) + "\n")
		}
	}
	return b.String()
}

func (v *NovelView) renderBookmarks(rows int) string {
	if len(v.bookmarks) == 0 {
		return styles.MutedText.Render("  No bookmarks yet. Press B while reading to add one.") + "\n"
	}
	v.keepVisible(rows)

	var b strings.Builder
	for i := v.offset; i < min(v.offset+rows, len(v.bookmarks)); i++ {
		b.WriteString(renderBookmarkLine(v.bookmarks[i], false, i == v.cursor, v.width) + "\n")
	}
	return b.String()
}

func (v *NovelView) renderAssistant(rows int) string {
	if v.conv == nil {
		return styles.MutedText.Render("  Assistant unavailable") + "\n"
	}

	var lines []string
	width := max(v.width-6, 20)
	for _, m := range v.conv.Messages() {
		who := styles.ChatModel.Render("AI:")
		if m.Role == assistant.RoleUser {
			who = styles.ChatUser.Render("You:")
		}
		text := lipgloss.NewStyle().Width(width).Render(m.Text)
		lines = append(lines, who)
		lines = append(lines, strings.Split(text, "\n")...)
		lines = append(lines, "")
	}
	if v.asking {
		lines = append(lines, v.spinner.View()+styles.MutedText.Render(" thinking..."))
	}

	inputStyle := styles.InputField
	if v.input.Focused() {
		inputStyle = styles.InputFieldFocused
	}
	input := inputStyle.Render(v.input.View())

	avail := max(rows-lipgloss.Height(input), 1)
	if len(lines) > avail {
		lines = lines[len(lines)-avail:]
	}
	return strings.Join(lines, "\n") + "\n" + input + "\n"
}

func (v *NovelView) renderDeleteConfirmation(b models.Bookmark) string {
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

// renderFooter renders the footer help
func (v *NovelView) renderFooter() string {
	help := []string{
		styles.HelpKey.Render("tab") + styles.Help.Render(" switch"),
		styles.HelpKey.Render("enter") + styles.Help.Render(" open"),
		styles.HelpKey.Render("r") + styles.Help.Render(" continue"),
	}
	switch v.tab {
	case tabBookmarks:
		help = append(help, styles.HelpKey.Render("d")+styles.Help.Render(" delete"))
	case tabAssistant:
		help = append(help, styles.HelpKey.Render("enter")+styles.Help.Render(" ask"))
	}
	help = append(help, styles.HelpKey.Render("esc")+styles.Help.Render(" back"))
	return styles.FooterBar.Width(v.width).Render(strings.Join(help, "  "))
}

func (v *NovelView) listLen() int {
	switch v.tab {
	case tabChapters:
		return len(v.chapters)
	case tabBookmarks:
		return len(v.bookmarks)
	default:
		return 0
	}
}

// moveCursor moves the cursor by delta within the active list
func (v *NovelView) moveCursor(delta int) {
	v.cursor = max(min(v.cursor+delta, v.listLen()-1), 0)
}

// keepVisible scrolls the list so the cursor is within rows
func (v *NovelView) keepVisible(rows int) {
	if v.cursor < v.offset {
		v.offset = v.cursor
	}
	if v.cursor >= v.offset+rows {
		v.offset = v.cursor - rows + 1
	}
}

// load fetches the novel, its chapters, its bookmarks and the last chapter
// read in it
func (v *NovelView) load() tea.Cmd {
	v.seq++
	seq, svc, id := v.seq, v.svc, v.novelID

	return func() tea.Msg {
		ctx, cancel := svc.context()
		defer cancel()

		msg := novelLoadedMsg{seq: seq}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			novel, err := svc.Content.GetNovel(gctx, id)
			if errors.Is(err, content.ErrNotFound) {
				return nil
			}
			msg.novel = novel
			return err
		})
		g.Go(func() error {
			var err error
			msg.chapters, err = svc.Content.Chapters(gctx, id)
			return err
		})
		g.Go(func() error {
			var err error
			msg.bookmarks, err = svc.Bookmarks.ListForNovel(gctx, id)
			return err
		})
		if svc.History != nil {
			g.Go(func() error {
				var err error
				if msg.lastChapter, err = svc.History.LastChapter(gctx, id); err != nil {
					log.Warn().Err(err).Int("novel", id).Msg("failed to read history")
				}
				return nil
			})
		}
		msg.err = g.Wait()
		return msg
	}
}
