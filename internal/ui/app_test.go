package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/cloudreader/internal/bookmark"
	"github.com/justyntemme/cloudreader/internal/content"
	"github.com/justyntemme/cloudreader/internal/kv"
	"github.com/justyntemme/cloudreader/internal/preferences"
	"github.com/justyntemme/cloudreader/internal/session"
	"github.com/justyntemme/cloudreader/internal/ui/styles"
	"github.com/justyntemme/cloudreader/internal/ui/views"
)

func newTestApp(t *testing.T, loc session.Location) (*App, views.Services) {
	t.Helper()
	t.Cleanup(func() { styles.SetCurrentTheme("light") })

	store := kv.NewMemory()
	svc := views.Services{
		Content:     content.NewMock(),
		Bookmarks:   bookmark.NewStore(store),
		History:     bookmark.NewHistory(store),
		Preferences: preferences.NewStore(store),
	}
	return NewApp(svc, loc), svc
}

func TestNewAppStartLocation(t *testing.T) {
	tests := []struct {
		loc  string
		want views.ViewType
	}{
		{"#/", views.ViewHome},
		{"#/library", views.ViewLibrary},
		{"#/novel/2", views.ViewNovel},
		{"#/read/1/3", views.ViewReader},
		{"#/bookmarks", views.ViewBookmarks},
	}
	for _, tt := range tests {
		t.Run(tt.loc, func(t *testing.T) {
			loc, err := session.ParseLocation(tt.loc)
			require.NoError(t, err)
			app, _ := newTestApp(t, loc)
			assert.Equal(t, tt.want, app.CurrentView())
			assert.NotNil(t, app.Init())
		})
	}
}

func TestAppNavigation(t *testing.T) {
	app, _ := newTestApp(t, session.Location{Page: session.PageHome})

	app.Update(views.OpenNovelMsg{NovelID: 1})
	assert.Equal(t, views.ViewNovel, app.CurrentView())

	app.Update(views.OpenChapterMsg{Route: session.Route{NovelID: 1, ChapterNumber: 2}})
	assert.Equal(t, views.ViewReader, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, views.ViewNovel, app.CurrentView())

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.Equal(t, views.ViewHome, app.CurrentView())

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestAppNovelReturnsToBookmarks(t *testing.T) {
	app, _ := newTestApp(t, session.Location{Page: session.PageBookmarks})

	app.Update(views.OpenNovelMsg{NovelID: 3})
	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, views.ViewBookmarks, app.CurrentView())
}

func TestAppAppliesTheme(t *testing.T) {
	app, svc := newTestApp(t, session.Location{Page: session.PageHome})
	require.NotNil(t, app)

	_, err := svc.Preferences.SetTheme(context.Background(), "dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", styles.CurrentTheme().Name)
}

func TestAppHelpOverlay(t *testing.T) {
	app, _ := newTestApp(t, session.Location{Page: session.PageHome})

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("?")})
	assert.Contains(t, app.View(), "Keyboard Shortcuts")
	assert.Contains(t, app.View(), "toggle bookmark")

	app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.NotContains(t, app.View(), "Keyboard Shortcuts")
}

func TestAppErrorBar(t *testing.T) {
	app, _ := newTestApp(t, session.Location{Page: session.PageHome})

	app.Update(views.ErrorMsg{Err: assert.AnError})
	assert.Contains(t, app.View(), assert.AnError.Error())

	app.Update(views.ClearErrorMsg{})
	assert.NotContains(t, app.View(), assert.AnError.Error())
}
