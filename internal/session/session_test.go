package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justyntemme/cloudreader/internal/bookmark"
	"github.com/justyntemme/cloudreader/internal/kv"
	"github.com/justyntemme/cloudreader/pkg/models"
)

var now = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func chapter(novelID, n int) (*models.Novel, *models.Chapter) {
	return &models.Novel{ID: novelID, Title: "斗破苍穹"},
		&models.Chapter{ID: 1000 + n, NovelID: novelID, ChapterNumber: n, Title: "第N章"}
}

func TestStaleCommitDropped(t *testing.T) {
	s := New(bookmark.NewStore(kv.NewMemory()))

	first := s.Navigate(Route{NovelID: 1, ChapterNumber: 1})
	second := s.Navigate(Route{NovelID: 1, ChapterNumber: 2})
	assert.True(t, s.Loading())

	n, c1 := chapter(1, 1)
	assert.False(t, s.Commit(first, n, c1), "older navigation must not apply")
	assert.Nil(t, s.Chapter())
	assert.True(t, s.Loading())

	_, c2 := chapter(1, 2)
	assert.True(t, s.Commit(second, n, c2))
	assert.Equal(t, 2, s.Chapter().ChapterNumber)
	assert.False(t, s.NotFound())
}

func TestNavigateResetsProgress(t *testing.T) {
	s := New(bookmark.NewStore(kv.NewMemory()))
	tk := s.Navigate(Route{NovelID: 1, ChapterNumber: 1})
	n, c := chapter(1, 1)
	require.True(t, s.Commit(tk, n, c))

	s.Scroll(250, 1500, 500)
	assert.InDelta(t, 25, s.Progress(), 1e-9)

	s.Navigate(Route{NovelID: 1, ChapterNumber: 2})
	assert.Zero(t, s.Progress())
}

func TestNotFound(t *testing.T) {
	s := New(bookmark.NewStore(kv.NewMemory()))
	tk := s.Navigate(Route{NovelID: 1, ChapterNumber: 99})
	n, _ := chapter(1, 99)
	require.True(t, s.Commit(tk, n, nil))
	assert.True(t, s.NotFound())

	// toggling without a chapter does nothing
	require.NoError(t, s.ToggleBookmark(context.Background(), now))
	assert.False(t, s.Bookmarked())
}

func TestToggleBookmark(t *testing.T) {
	ctx := context.Background()
	store := bookmark.NewStore(kv.NewMemory())
	s := New(store)

	tk := s.Navigate(Route{NovelID: 1, ChapterNumber: 5})
	n, c := chapter(1, 5)
	require.True(t, s.Commit(tk, n, c))
	require.NoError(t, s.RefreshBookmarked(ctx))
	assert.False(t, s.Bookmarked())

	require.NoError(t, s.ToggleBookmark(ctx, now))
	assert.True(t, s.Bookmarked())

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "1_5", all[0].ID)
	assert.Equal(t, "斗破苍穹", all[0].NovelTitle)
	assert.True(t, now.Equal(all[0].Created()))

	require.NoError(t, s.ToggleBookmark(ctx, now))
	assert.False(t, s.Bookmarked())
	ok, err := store.Exists(ctx, "1_5")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRefreshBookmarkedOnChapterChange(t *testing.T) {
	ctx := context.Background()
	store := bookmark.NewStore(kv.NewMemory())
	n, c3 := chapter(1, 3)
	require.NoError(t, store.Add(ctx, bookmark.New(n, c3, now)))

	s := New(store)
	tk := s.Navigate(Route{NovelID: 1, ChapterNumber: 3})
	require.True(t, s.Commit(tk, n, c3))
	require.NoError(t, s.RefreshBookmarked(ctx))
	assert.True(t, s.Bookmarked())

	tk = s.Navigate(Route{NovelID: 1, ChapterNumber: 4})
	assert.False(t, s.Bookmarked(), "navigation clears the flag")
	_, c4 := chapter(1, 4)
	require.True(t, s.Commit(tk, n, c4))
	require.NoError(t, s.RefreshBookmarked(ctx))
	assert.False(t, s.Bookmarked())
}
