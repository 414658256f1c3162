package bookmark

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/justyntemme/cloudreader/internal/kv"
	"github.com/justyntemme/cloudreader/pkg/models"
)

// HistoryKey is the kv key holding the recently read list
const HistoryKey = "cloudreader_history"

// MaxHistory is the number of novels the history remembers
const MaxHistory = 10

// History tracks recently opened novels, newest first, one entry per novel
type History struct {
	kv kv.Store
	mu sync.Mutex
}

// NewHistory creates a reading history persisted in s
func NewHistory(s kv.Store) *History {
	return &History{kv: s}
}

// Recent returns the remembered novels, newest first
func (h *History) Recent(ctx context.Context) ([]models.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load(ctx)
}

// Record moves the novel to the front of the history with chapter as its
// last read chapter
func (h *History) Record(ctx context.Context, novel *models.Novel, chapter int, now time.Time) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]models.HistoryEntry, 0, len(entries)+1)
	kept = append(kept, models.HistoryEntry{
		NovelID:     novel.ID,
		Title:       novel.Title,
		LastChapter: chapter,
		OpenedAt:    now,
	})
	for _, e := range entries {
		if e.NovelID != novel.ID {
			kept = append(kept, e)
		}
	}
	if len(kept) > MaxHistory {
		kept = kept[:MaxHistory]
	}

	data, err := json.Marshal(kept)
	if err != nil {
		return errors.Wrap(err, "encode history")
	}
	return errors.Wrap(h.kv.Set(ctx, HistoryKey, string(data)), "write history")
}

// LastChapter returns the chapter last read in novelID, or 0 if the novel
// is not in the history
func (h *History) LastChapter(ctx context.Context, novelID int) (int, error) {
	entries, err := h.Recent(ctx)
	if err != nil {
		return 0, err
	}
	for _, e := range entries {
		if e.NovelID == novelID {
			return e.LastChapter, nil
		}
	}
	return 0, nil
}

func (h *History) load(ctx context.Context) ([]models.HistoryEntry, error) {
	raw, ok, err := h.kv.Get(ctx, HistoryKey)
	if err != nil {
		return nil, errors.Wrap(err, "read history")
	}
	if !ok || raw == "" {
		return []models.HistoryEntry{}, nil
	}

	var entries []models.HistoryEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		log.Warn().Err(err).Str("key", HistoryKey).Msg("discarding malformed history")
		return []models.HistoryEntry{}, nil
	}
	return entries, nil
}
