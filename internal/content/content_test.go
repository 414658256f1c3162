package content

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockDataset(t *testing.T) {
	ctx := context.Background()
	p := NewMock()

	cats, err := p.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 5)

	all, err := p.AllNovels(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, []string{"热血", "升级", "爽文"}, all[0].TagList())

	for _, tc := range []struct {
		novel    int
		count    int
		firstID  int
		wantName string
	}{
		{novel: 1, count: 50, firstID: 1000, wantName: "第5章 斗之气，三段！"},
		{novel: 2, count: 50, firstID: 2000, wantName: "第5章 绯红"},
	} {
		chapters, err := p.Chapters(ctx, tc.novel)
		require.NoError(t, err)
		require.Len(t, chapters, tc.count)
		assert.Equal(t, tc.firstID, chapters[0].ID)
		assert.Equal(t, 1, chapters[0].ChapterNumber)

		ch, err := p.Chapter(ctx, tc.novel, 5)
		require.NoError(t, err)
		assert.Equal(t, tc.wantName, ch.Title)
		assert.Equal(t, tc.firstID+4, ch.ID)
		assert.NotEmpty(t, ch.Content)
	}
}

func TestRecentNovelsOrder(t *testing.T) {
	recent, err := NewMock().RecentNovels(context.Background())
	require.NoError(t, err)

	ids := make([]int, 0, len(recent))
	for _, n := range recent {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids)
	for i := 1; i < len(recent); i++ {
		assert.False(t, recent[i].UpdatedAt.After(recent[i-1].UpdatedAt))
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	p := NewMock()

	_, err := p.GetNovel(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.Chapter(ctx, 1, 51)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = p.Chapter(ctx, 3, 1)
	assert.ErrorIs(t, err, ErrNotFound, "novel without chapters")

	chapters, err := p.Chapters(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, chapters)
	assert.Empty(t, chapters)
}

func TestSearch(t *testing.T) {
	ctx := context.Background()
	p := NewMock()

	testCases := []struct {
		query string
		want  []int
	}{
		{query: "三体", want: []int{4}},
		{query: "乌贼", want: []int{2}},
		{query: "忘语", want: []int{3}},
		{query: "", want: []int{1, 2, 3, 4}},
		{query: "nothing", want: []int{}},
	}

	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			got, err := p.Search(ctx, tc.query)
			require.NoError(t, err)
			ids := []int{}
			for _, n := range got {
				ids = append(ids, n.ID)
			}
			assert.Equal(t, tc.want, ids)
		})
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	c := NewCatalog(nil, nil, nil)
	c.novels = append(c.novels, NewMock().novels[0])
	c.novels[0].Author = "Tian Can Tu Dou"

	got, err := c.Search(context.Background(), "tian CAN")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetNovelReturnsCopy(t *testing.T) {
	ctx := context.Background()
	p := NewMock()

	n, err := p.GetNovel(ctx, 1)
	require.NoError(t, err)
	n.Title = "changed"

	again, err := p.GetNovel(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "斗破苍穹", again.Title)
}

func TestWithLatency(t *testing.T) {
	p := WithLatency(NewMock(), 30*time.Millisecond)

	start := time.Now()
	n, err := p.GetNovel(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, "诡秘之主", n.Title)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = WithLatency(NewMock(), time.Hour).Chapter(ctx, 1, 1)
	assert.ErrorIs(t, err, context.Canceled)
}
