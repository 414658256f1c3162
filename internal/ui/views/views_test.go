package views

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/cloudreader/internal/assistant"
	"github.com/justyntemme/cloudreader/internal/bookmark"
	"github.com/justyntemme/cloudreader/internal/content"
	"github.com/justyntemme/cloudreader/internal/kv"
	"github.com/justyntemme/cloudreader/internal/preferences"
	"github.com/justyntemme/cloudreader/internal/session"
)

var testNow = time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)

func newServices() Services {
	store := kv.NewMemory()
	return Services{
		Content:     content.NewMock(),
		Bookmarks:   bookmark.NewStore(store),
		History:     bookmark.NewHistory(store),
		Preferences: preferences.NewStore(store),
		Now:         func() time.Time { return testNow },
	}
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// openChapter loads r into a fresh reader synchronously
func openChapter(t *testing.T, svc Services, r session.Route) *ReaderView {
	t.Helper()
	v := NewReaderView(svc)
	v.SetSize(80, 24)
	v.SetRoute(r)
	cmd := v.Init()
	require.NotNil(t, cmd)
	v.Update(cmd())
	return v
}

func TestReaderDropsStaleChapter(t *testing.T) {
	v := NewReaderView(newServices())

	v.SetRoute(session.Route{NovelID: 1, ChapterNumber: 1})
	first := v.Init()
	v.SetRoute(session.Route{NovelID: 1, ChapterNumber: 2})
	second := v.Init()

	v.Update(second())
	v.Update(first())

	require.NotNil(t, v.Session().Chapter())
	assert.Equal(t, 2, v.Session().Chapter().ChapterNumber)
	assert.Equal(t, session.Route{NovelID: 1, ChapterNumber: 2}, v.Route())
}

func TestReaderLoadsChapter(t *testing.T) {
	svc := newServices()
	v := openChapter(t, svc, session.Route{NovelID: 1, ChapterNumber: 3})

	assert.False(t, v.Session().Loading())
	assert.False(t, v.Session().NotFound())
	assert.Len(t, v.chapters, 50)
	assert.NotEmpty(t, v.lines)
	assert.Contains(t, v.View(), "斗破苍穹")

	last, err := svc.History.LastChapter(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 3, last)
}

func TestReaderNotFound(t *testing.T) {
	v := openChapter(t, newServices(), session.Route{NovelID: 1, ChapterNumber: 999})

	assert.True(t, v.Session().NotFound())
	assert.Contains(t, v.View(), "Chapter not found")

	v = openChapter(t, newServices(), session.Route{NovelID: 42, ChapterNumber: 1})
	assert.True(t, v.Session().NotFound())
}

func TestReaderToggleBookmark(t *testing.T) {
	svc := newServices()
	v := openChapter(t, svc, session.Route{NovelID: 1, ChapterNumber: 1})
	ctx := context.Background()

	v.Update(keyPress("B"))
	assert.True(t, v.Session().Bookmarked())
	ok, err := svc.Bookmarks.Exists(ctx, "1_1")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := svc.Bookmarks.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "斗破苍穹", list[0].NovelTitle)
	assert.True(t, testNow.Equal(list[0].Created()))

	v.Update(keyPress("B"))
	assert.False(t, v.Session().Bookmarked())
	ok, err = svc.Bookmarks.Exists(ctx, "1_1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReaderBookmarkFlagFollowsChapter(t *testing.T) {
	svc := newServices()
	v := openChapter(t, svc, session.Route{NovelID: 1, ChapterNumber: 1})
	v.Update(keyPress("B"))
	require.True(t, v.Session().Bookmarked())

	_, cmd := v.Update(keyPress("n"))
	require.NotNil(t, cmd)
	assert.False(t, v.Session().Bookmarked())
	v.Update(cmd())
	assert.Equal(t, 2, v.Route().ChapterNumber)
	assert.False(t, v.Session().Bookmarked())

	_, cmd = v.Update(keyPress("p"))
	require.NotNil(t, cmd)
	v.Update(cmd())
	assert.True(t, v.Session().Bookmarked())
}

func TestReaderPrevStopsAtFirstChapter(t *testing.T) {
	v := openChapter(t, newServices(), session.Route{NovelID: 1, ChapterNumber: 1})

	_, cmd := v.Update(keyPress("p"))
	assert.Nil(t, cmd)
	assert.Equal(t, 1, v.Route().ChapterNumber)
}

func TestReaderScrollUpdatesProgress(t *testing.T) {
	v := openChapter(t, newServices(), session.Route{NovelID: 1, ChapterNumber: 1})
	require.Greater(t, len(v.lines), v.visibleLines())
	assert.Zero(t, v.Session().Progress())

	v.Update(keyPress("G"))
	assert.Equal(t, 100.0, v.Session().Progress())

	v.Update(keyPress("g"))
	assert.Zero(t, v.Session().Progress())
}

func TestReaderSettingsPanel(t *testing.T) {
	svc := newServices()
	v := openChapter(t, svc, session.Route{NovelID: 1, ChapterNumber: 1})

	v.Update(keyPress("s"))
	assert.True(t, v.Capturing())
	assert.Contains(t, v.View(), "Reading Settings")

	v.Update(keyPress("l"))
	assert.Equal(t, "sepia", svc.Preferences.Current().Theme)
	v.Update(keyPress("h"))
	assert.Equal(t, "light", svc.Preferences.Current().Theme)

	before := len(v.lines)
	v.Update(keyPress("j"))
	v.Update(keyPress("l"))
	v.Update(keyPress("l"))
	assert.Equal(t, 22.0, svc.Preferences.Current().FontSize)
	assert.Greater(t, len(v.lines), before)

	v.Update(keyPress("esc"))
	assert.False(t, v.Capturing())
}

func TestReaderTOCOpensChapter(t *testing.T) {
	v := openChapter(t, newServices(), session.Route{NovelID: 1, ChapterNumber: 1})

	v.Update(keyPress("t"))
	require.True(t, v.showTOC)
	v.Update(keyPress("j"))
	v.Update(keyPress("j"))
	_, cmd := v.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	v.Update(cmd())

	assert.False(t, v.showTOC)
	assert.Equal(t, 3, v.Route().ChapterNumber)
}

func TestLibraryLoadsAndFilters(t *testing.T) {
	v := NewLibraryView(newServices())
	v.SetSize(100, 30)
	v.SetMode(true)
	v.Update(v.Init()())

	assert.Len(t, v.visibleNovels(), 4)

	v.Update(keyPress("c"))
	for _, n := range v.visibleNovels() {
		assert.Equal(t, v.categories[0].Name, n.Category)
	}

	v.Update(keyPress("x"))
	assert.Len(t, v.visibleNovels(), 4)
}

func TestLibrarySearch(t *testing.T) {
	v := NewLibraryView(newServices())
	v.SetSize(100, 30)
	v.Update(v.Init()())

	v.Update(keyPress("/"))
	require.True(t, v.Capturing())
	for _, r := range "三体" {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := v.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	v.Update(cmd())

	require.Len(t, v.novels, 1)
	assert.Equal(t, "三体", v.novels[0].Title)

	_, cmd = v.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, OpenNovelMsg{NovelID: 4}, cmd())
}

func TestLibraryDropsStaleLoad(t *testing.T) {
	v := NewLibraryView(newServices())
	first := v.Init()
	second := v.Init()

	v.Update(first())
	assert.True(t, v.loading)
	v.Update(second())
	assert.False(t, v.loading)
}

func TestNovelViewBookmarks(t *testing.T) {
	svc := newServices()
	ctx := context.Background()
	r := openChapter(t, svc, session.Route{NovelID: 1, ChapterNumber: 5})
	r.Update(keyPress("B"))

	v := NewNovelView(svc)
	v.SetSize(100, 40)
	v.SetNovel(1)
	v.Update(v.Init()())

	require.NotNil(t, v.novel)
	assert.Len(t, v.chapters, 50)
	assert.Equal(t, 5, v.lastChapter)
	require.Len(t, v.bookmarks, 1)

	v.Update(keyPress("2"))
	_, cmd := v.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, OpenChapterMsg{Route: session.Route{NovelID: 1, ChapterNumber: 5}}, cmd())

	v.Update(keyPress("d"))
	require.True(t, v.Capturing())
	v.Update(keyPress("y"))
	assert.Empty(t, v.bookmarks)

	ok, err := svc.Bookmarks.Exists(ctx, "1_5")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNovelViewNotFound(t *testing.T) {
	v := NewNovelView(newServices())
	v.SetNovel(42)
	v.Update(v.Init()())

	assert.Nil(t, v.novel)
	assert.Contains(t, v.View(), "Novel not found")
}

type cannedAssistant struct{ answer string }

func (c cannedAssistant) Ask(context.Context, assistant.Book, string) (string, error) {
	return c.answer, nil
}

func TestNovelViewAssistant(t *testing.T) {
	svc := newServices()
	svc.Assistant = cannedAssistant{answer: "萧炎是主角。"}

	v := NewNovelView(svc)
	v.SetSize(100, 40)
	v.SetNovel(1)
	v.Update(v.Init()())

	v.Update(keyPress("3"))
	require.True(t, v.Capturing())
	for _, r := range "主角是谁" {
		v.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	_, cmd := v.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.True(t, v.asking)

	v.Update(v.ask("主角是谁")())
	assert.False(t, v.asking)
	assert.Contains(t, v.View(), "萧炎是主角。")
}

func TestBookmarksViewDelete(t *testing.T) {
	svc := newServices()
	openChapter(t, svc, session.Route{NovelID: 1, ChapterNumber: 1}).Update(keyPress("B"))
	openChapter(t, svc, session.Route{NovelID: 2, ChapterNumber: 3}).Update(keyPress("B"))

	v := NewBookmarksView(svc)
	v.SetSize(100, 30)
	v.Update(v.Init()())
	require.Len(t, v.bookmarks, 2)
	assert.Equal(t, "2_3", v.bookmarks[0].ID)

	_, cmd := v.Update(keyPress("enter"))
	require.NotNil(t, cmd)
	assert.Equal(t, OpenChapterMsg{Route: session.Route{NovelID: 2, ChapterNumber: 3}}, cmd())

	v.Update(keyPress("d"))
	_, cmd = v.Update(keyPress("y"))
	require.NotNil(t, cmd)
	v.Update(v.loadBookmarks()())
	require.Len(t, v.bookmarks, 1)
	assert.Equal(t, "1_1", v.bookmarks[0].ID)
}
