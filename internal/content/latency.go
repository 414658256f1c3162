package content

import (
	"context"
	"time"

	"github.com/justyntemme/cloudreader/internal/metrics"
	"github.com/justyntemme/cloudreader/pkg/models"
)

type delayed struct {
	next  Provider
	delay time.Duration
}

// WithLatency delays every read of p by d, returning early with the
// context's error if ctx is done first. Every read is observed in the
// content read histogram.
func WithLatency(p Provider, d time.Duration) Provider {
	return &delayed{next: p, delay: d}
}

func (l *delayed) wait(ctx context.Context) error {
	if l.delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(l.delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (l *delayed) RecentNovels(ctx context.Context) ([]models.Novel, error) {
	defer metrics.ObserveRead("recent_novels", time.Now())
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.RecentNovels(ctx)
}

func (l *delayed) AllNovels(ctx context.Context) ([]models.Novel, error) {
	defer metrics.ObserveRead("all_novels", time.Now())
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.AllNovels(ctx)
}

func (l *delayed) GetNovel(ctx context.Context, id int) (*models.Novel, error) {
	defer metrics.ObserveRead("novel", time.Now())
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.GetNovel(ctx, id)
}

func (l *delayed) Categories(ctx context.Context) ([]models.Category, error) {
	defer metrics.ObserveRead("categories", time.Now())
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Categories(ctx)
}

func (l *delayed) Chapters(ctx context.Context, novelID int) ([]models.Chapter, error) {
	defer metrics.ObserveRead("chapters", time.Now())
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Chapters(ctx, novelID)
}

func (l *delayed) Chapter(ctx context.Context, novelID, chapterNumber int) (*models.Chapter, error) {
	defer metrics.ObserveRead("chapter", time.Now())
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Chapter(ctx, novelID, chapterNumber)
}

func (l *delayed) Search(ctx context.Context, query string) ([]models.Novel, error) {
	defer metrics.ObserveRead("search", time.Now())
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	return l.next.Search(ctx, query)
}
