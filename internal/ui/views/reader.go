package views

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/justyntemme/cloudreader/internal/content"
	"github.com/justyntemme/cloudreader/internal/metrics"
	"github.com/justyntemme/cloudreader/internal/preferences"
	"github.com/justyntemme/cloudreader/internal/session"
	"github.com/justyntemme/cloudreader/internal/ui/styles"
	"github.com/justyntemme/cloudreader/pkg/models"
)

// Rows of the settings panel
const (
	settingTheme = iota
	settingFontSize
	settingLineHeight
	settingFontFamily
	settingCount
)

// ReaderView displays one chapter at a time
type ReaderView struct {
	svc     Services
	session *session.Session

	// Load to start on the next Init
	pending *session.Ticket

	// Table of contents of tocNovel
	chapters []models.Chapter
	tocNovel int

	// Wrapped chapter text
	lines      []string
	lineOffset int

	showTOC   bool
	tocCursor int

	showSettings   bool
	settingsCursor int

	err    error
	notice string

	// Dimensions
	width  int
	height int
}

// NewReaderView creates a new reader view
func NewReaderView(svc Services) *ReaderView {
	return &ReaderView{
		svc:     svc,
		session: session.New(svc.Bookmarks),
		width:   80,
		height:  24,
	}
}

// chapterLoadedMsg carries the content fetched for a navigation
type chapterLoadedMsg struct {
	ticket   session.Ticket
	novel    *models.Novel
	chapter  *models.Chapter
	chapters []models.Chapter
	err      error
}

// SetRoute makes r the chapter to show. Content fetched for an earlier
// route is discarded when it arrives.
func (v *ReaderView) SetRoute(r session.Route) {
	t := v.session.Navigate(r)
	v.pending = &t

	if r.NovelID != v.tocNovel {
		v.chapters = nil
		v.tocNovel = 0
	}
	v.lines = nil
	v.lineOffset = 0
	v.err = nil
	v.notice = ""
	v.showTOC = false
}

// Route returns the active route
func (v *ReaderView) Route() session.Route {
	return v.session.Route()
}

// Session exposes the reading session
func (v *ReaderView) Session() *session.Session {
	return v.session
}

// Capturing implements Capturer. Overlays consume esc and q themselves.
func (v *ReaderView) Capturing() bool {
	return v.showTOC || v.showSettings
}

// Init implements View
func (v *ReaderView) Init() tea.Cmd {
	if v.pending == nil {
		return nil
	}
	t := *v.pending
	v.pending = nil
	return v.loadChapter(t, t.NovelID != v.tocNovel)
}

// Update implements View
func (v *ReaderView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	case chapterLoadedMsg:
		return v.handleChapterLoaded(msg)
	}
	return v, nil
}

func (v *ReaderView) handleKeyMsg(msg tea.KeyMsg) (View, tea.Cmd) {
	if v.showTOC {
		return v.updateTOC(msg)
	}
	if v.showSettings {
		return v.updateSettings(msg)
	}
	v.notice = ""

	switch msg.String() {
	case "j", "down":
		v.scroll(1)
	case "k", "up":
		v.scroll(-1)
	case "ctrl+d", "pgdown", " ", "f":
		v.scroll(v.visibleLines())
	case "ctrl+u", "pgup", "b":
		v.scroll(-v.visibleLines())
	case "g", "home":
		v.scroll(-len(v.lines))
	case "G", "end":
		v.scroll(len(v.lines))
	case "n", "l", "right":
		return v, v.navigate(v.session.Route().Next())
	case "p", "h", "left":
		r := v.session.Route()
		if r.ChapterNumber > 1 {
			return v, v.navigate(r.Prev())
		}
	case "t":
		if len(v.chapters) > 0 {
			v.showTOC = true
			v.tocCursor = v.currentChapterIndex()
		}
	case "s":
		v.showSettings = true
	case "B":
		return v, v.toggleBookmark()
	}
	return v, nil
}

func (v *ReaderView) handleChapterLoaded(msg chapterLoadedMsg) (View, tea.Cmd) {
	if msg.err != nil {
		if !v.session.Current(msg.ticket) {
			return v, nil
		}
		v.err = msg.err
		return v, SendError(msg.err)
	}

	if !v.session.Commit(msg.ticket, msg.novel, msg.chapter) {
		log.Debug().Stringer("route", msg.ticket.Route).Msg("dropping stale chapter")
		return v, nil
	}

	if msg.chapters != nil {
		v.chapters = msg.chapters
		v.tocNovel = msg.ticket.NovelID
	}
	v.lineOffset = 0
	v.wrapContent()
	v.scrolled()

	ctx := context.Background()
	if err := v.session.RefreshBookmarked(ctx); err != nil {
		return v, SendError(err)
	}
	if msg.novel != nil && msg.chapter != nil && v.svc.History != nil {
		if err := v.svc.History.Record(ctx, msg.novel, msg.chapter.ChapterNumber, v.svc.now()); err != nil {
			log.Warn().Err(err).Int("novel", msg.novel.ID).Msg("failed to record history")
		}
	}
	return v, nil
}

func (v *ReaderView) updateTOC(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "t":
		v.showTOC = false
	case "j", "down":
		if v.tocCursor < len(v.chapters)-1 {
			v.tocCursor++
		}
	case "k", "up":
		if v.tocCursor > 0 {
			v.tocCursor--
		}
	case "g":
		v.tocCursor = 0
	case "G":
		v.tocCursor = max(len(v.chapters)-1, 0)
	case "enter":
		v.showTOC = false
		if v.tocCursor < len(v.chapters) {
			ch := v.chapters[v.tocCursor]
			return v, v.navigate(session.Route{NovelID: ch.NovelID, ChapterNumber: ch.ChapterNumber})
		}
	}
	return v, nil
}

func (v *ReaderView) updateSettings(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "s":
		v.showSettings = false
	case "j", "down":
		v.settingsCursor = (v.settingsCursor + 1) % settingCount
	case "k", "up":
		v.settingsCursor = (v.settingsCursor + settingCount - 1) % settingCount
	case "l", "right", "+", "=", "enter":
		return v, v.adjustSetting(1)
	case "h", "left", "-":
		return v, v.adjustSetting(-1)
	}
	return v, nil
}

// adjustSetting steps the selected setting in direction dir
func (v *ReaderView) adjustSetting(dir int) tea.Cmd {
	if v.svc.Preferences == nil {
		return nil
	}

	row := v.settingsCursor
	_, err := v.svc.Preferences.Update(context.Background(), func(rs *models.ReaderSettings) {
		switch row {
		case settingTheme:
			steps := 1
			if dir < 0 {
				steps = len(preferences.Themes) - 1
			}
			for range steps {
				preferences.CycleTheme(rs)
			}
		case settingFontSize:
			preferences.StepFontSize(rs, dir)
		case settingLineHeight:
			preferences.StepLineHeight(rs, dir)
		case settingFontFamily:
			preferences.ToggleFontFamily(rs)
		}
	})
	if err != nil {
		return SendError(err)
	}
	v.Reflow()
	return nil
}

// Reflow wraps the chapter again with the current settings, keeping the
// reading position proportionally
func (v *ReaderView) Reflow() {
	before := len(v.lines)
	v.wrapContent()
	if before > 0 {
		v.lineOffset = v.lineOffset * len(v.lines) / before
	}
	v.scroll(0)
}

func (v *ReaderView) toggleBookmark() tea.Cmd {
	was := v.session.Bookmarked()
	if err := v.session.ToggleBookmark(context.Background(), v.svc.now()); err != nil {
		return SendError(err)
	}
	if v.session.Bookmarked() == was {
		return nil
	}

	if was {
		metrics.BookmarkChanges.WithLabelValues("remove").Inc()
		v.notice = "Bookmark removed"
	} else {
		metrics.BookmarkChanges.WithLabelValues("add").Inc()
		v.notice = "Bookmarked"
	}
	return nil
}

// View implements View
func (v *ReaderView) View() string {
	if v.showTOC {
		return v.renderTOC()
	}
	if v.showSettings {
		return v.renderSettings()
	}

	var b strings.Builder
	b.WriteString(v.renderHeader() + "\n")

	switch {
	case v.err != nil:
		b.WriteString(v.placeMessage(styles.ErrorStyle.Render("Error: " + v.err.Error())))
		return b.String()
	case v.session.Loading():
		b.WriteString(v.placeMessage(styles.MutedText.Render("Loading...")))
		return b.String()
	case v.session.NotFound():
		b.WriteString(v.placeMessage(
			styles.ErrorStyle.Render("Chapter not found") + "\n\n" +
				styles.Help.Render(v.session.Route().String()+" does not exist. Press esc to go back."),
		))
		return b.String()
	}

	visible := v.visibleLines()
	end := min(v.lineOffset+visible, len(v.lines))
	for i := v.lineOffset; i < end; i++ {
		line := v.lines[i]
		if i == 0 {
			line = styles.BookTitle.Render(line)
		}
		b.WriteString(styles.ReaderContent.Render(line) + "\n")
	}
	for i := end - v.lineOffset; i < visible; i++ {
		b.WriteString("\n")
	}

	b.WriteString("\n" + v.renderFooter())
	return b.String()
}

// SetSize implements View
func (v *ReaderView) SetSize(width, height int) {
	v.width = width
	v.height = height
	if v.session.Chapter() != nil {
		v.Reflow()
	}
}

func (v *ReaderView) placeMessage(s string) string {
	return lipgloss.Place(v.width, v.height-4, lipgloss.Center, lipgloss.Center, s)
}

// renderHeader renders the reader header with proper truncation
func (v *ReaderView) renderHeader() string {
	r := v.session.Route()

	title := fmt.Sprintf("Novel %d", r.NovelID)
	if n := v.session.Novel(); n != nil {
		title = n.Title
	}
	title = styles.TruncateText(title, max(v.width/3, 10))
	titlePart := styles.ReaderHeader.Render(" " + title + " ")

	chapterTitle := ""
	if ch := v.session.Chapter(); ch != nil {
		chapterTitle = styles.TruncateText(ch.Title, 20)
	}
	chapterPart := styles.Help.Render(fmt.Sprintf(" Ch %d/%d: %s ", r.ChapterNumber, len(v.chapters), chapterTitle))

	mark := ""
	if v.session.Bookmarked() {
		mark = styles.Bookmarked.Render("★ ")
	}

	chapterProgress := v.session.Progress()
	bookProgress := session.BookProgress(r.ChapterNumber, len(v.chapters), chapterProgress)

	const barWidth = 10
	progressPart := mark +
		styles.MutedText.Render("Ch:") + renderProgressBar(barWidth, chapterProgress/100) +
		styles.MutedText.Render(" Book:") + renderProgressBar(barWidth, bookProgress/100) +
		styles.ReaderProgress.Render(fmt.Sprintf(" %d%%", int(math.Round(chapterProgress))))

	left := titlePart + chapterPart
	gap := max(v.width-lipgloss.Width(left)-lipgloss.Width(progressPart), 0)
	return left + strings.Repeat(" ", gap) + progressPart
}

// renderProgressBar renders a visual progress bar using Unicode block characters
// width is the total character width, progress is 0.0-1.0
func renderProgressBar(width int, progress float64) string {
	width = max(width, 3)
	progress = min(max(progress, 0), 1)

	const (
		empty    = "░"
		filled   = "█"
		partials = "▏▎▍▌▋▊▉" // 1/8 to 7/8 filled
	)

	filledWidth := progress * float64(width)
	fullBlocks := int(filledWidth)
	remainder := filledWidth - float64(fullBlocks)

	var bar strings.Builder
	for i := 0; i < fullBlocks && i < width; i++ {
		bar.WriteString(filled)
	}
	if fullBlocks < width && remainder > 0 {
		if idx := min(int(remainder*8), 7); idx > 0 {
			bar.WriteRune([]rune(partials)[idx-1])
			fullBlocks++
		}
	}
	for i := fullBlocks; i < width; i++ {
		bar.WriteString(empty)
	}
	return bar.String()
}

// renderFooter renders the reader footer with consistent styling
func (v *ReaderView) renderFooter() string {
	if v.notice != "" {
		return styles.FooterBar.Width(v.width).Render(styles.SecondaryText.Render(v.notice))
	}

	bookmark := "bookmark"
	if v.session.Bookmarked() {
		bookmark = "unmark"
	}
	help := []string{
		styles.HelpKey.Render("j/k") + styles.Help.Render(" scroll"),
		styles.HelpKey.Render("n/p") + styles.Help.Render(" chapter"),
		styles.HelpKey.Render("t") + styles.Help.Render(" toc"),
		styles.HelpKey.Render("B") + styles.Help.Render(" "+bookmark),
		styles.HelpKey.Render("s") + styles.Help.Render(" settings"),
		styles.HelpKey.Render("esc") + styles.Help.Render(" back"),
	}
	return styles.FooterBar.Width(v.width).Render(strings.Join(help, "  "))
}

// renderTOC renders the table of contents overlay
func (v *ReaderView) renderTOC() string {
	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Table of Contents") + "\n\n")

	maxVisible := max(v.height-8, 1)
	offset := 0
	if v.tocCursor >= maxVisible {
		offset = v.tocCursor - maxVisible + 1
	}

	current := v.currentChapterIndex()
	for i := offset; i < min(offset+maxVisible, len(v.chapters)); i++ {
		ch := v.chapters[i]
		line := styles.TruncateText(fmt.Sprintf("%d. %s", ch.ChapterNumber, ch.Title), max(v.width-14, 10))
		switch {
		case i == v.tocCursor:
			b.WriteString(styles.ListItemSelected.Render("▸ "+line) + "\n")
		case i == current:
			b.WriteString(styles.BookAuthor.Render("  "+line+" (current)") + "\n")
		default:
			b.WriteString(styles.ListItem.Render("  "+line) + "\n")
		}
	}

	b.WriteString("\n" + styles.Help.Render("j/k navigate • enter select • esc close"))

	dialog := styles.Dialog.Width(min(60, v.width-4)).Render(b.String())
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, dialog)
}

// renderSettings renders the reading settings panel
func (v *ReaderView) renderSettings() string {
	rs := preferences.Defaults()
	if v.svc.Preferences != nil {
		rs = v.svc.Preferences.Current()
	}

	rows := [settingCount][2]string{
		settingTheme:      {"Theme", rs.Theme},
		settingFontSize:   {"Font size", fmt.Sprintf("%gpx", rs.FontSize)},
		settingLineHeight: {"Line height", fmt.Sprintf("%.1f", rs.LineHeight)},
		settingFontFamily: {"Font", rs.FontFamily},
	}

	var b strings.Builder
	b.WriteString(styles.DialogTitle.Render("Reading Settings") + "\n\n")
	for i, row := range rows {
		line := fmt.Sprintf("%-12s ◂ %s ▸", row[0], row[1])
		if i == v.settingsCursor {
			b.WriteString(styles.ListItemSelected.Render(line) + "\n")
		} else {
			b.WriteString(styles.ListItem.Render(line) + "\n")
		}
	}
	b.WriteString("\n" + styles.Help.Render("j/k select • h/l change • esc close"))

	dialog := styles.Dialog.Width(min(50, v.width-4)).Render(b.String())
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, dialog)
}

// wrapContent lays the loaded chapter out for the current width and settings
func (v *ReaderView) wrapContent() {
	v.lines = nil
	ch := v.session.Chapter()
	if ch == nil {
		return
	}

	rs := preferences.Defaults()
	if v.svc.Preferences != nil {
		rs = v.svc.Preferences.Current()
	}
	layout := preferences.LayoutFor(rs, max(v.width-4, 1))

	v.lines = append(v.lines, ch.Title, "")
	v.lines = append(v.lines, wrapText(ch.Content, layout)...)
}

// scroll scrolls the content by delta lines
func (v *ReaderView) scroll(delta int) {
	maxOffset := max(len(v.lines)-v.visibleLines(), 0)
	v.lineOffset = min(max(v.lineOffset+delta, 0), maxOffset)
	v.scrolled()
}

func (v *ReaderView) scrolled() {
	v.session.Scroll(float64(v.lineOffset), float64(len(v.lines)), float64(v.visibleLines()))
}

// visibleLines returns the number of visible content lines
func (v *ReaderView) visibleLines() int {
	return max(v.height-5, 1)
}

func (v *ReaderView) currentChapterIndex() int {
	n := v.session.Route().ChapterNumber
	for i, ch := range v.chapters {
		if ch.ChapterNumber == n {
			return i
		}
	}
	return 0
}

func (v *ReaderView) navigate(r session.Route) tea.Cmd {
	v.SetRoute(r)
	return v.Init()
}

// loadChapter fetches everything the reader needs for t
func (v *ReaderView) loadChapter(t session.Ticket, withTOC bool) tea.Cmd {
	svc := v.svc
	return func() tea.Msg {
		ctx, cancel := svc.context()
		defer cancel()

		msg := chapterLoadedMsg{ticket: t}

		novel, err := svc.Content.GetNovel(ctx, t.NovelID)
		if errors.Is(err, content.ErrNotFound) {
			return msg
		}
		if err != nil {
			msg.err = err
			return msg
		}
		msg.novel = novel

		chapter, err := svc.Content.Chapter(ctx, t.NovelID, t.ChapterNumber)
		if err != nil && !errors.Is(err, content.ErrNotFound) {
			msg.err = err
			return msg
		}
		msg.chapter = chapter

		if withTOC {
			if msg.chapters, err = svc.Content.Chapters(ctx, t.NovelID); err != nil {
				msg.err = err
			}
		}
		return msg
	}
}
