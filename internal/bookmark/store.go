// Package bookmark keeps the per-chapter bookmark list and the reading
// history, each persisted as a single JSON blob in a kv.Store.
package bookmark

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/justyntemme/cloudreader/internal/kv"
	"github.com/justyntemme/cloudreader/pkg/models"
)

// StorageKey is the kv key holding the bookmark list
const StorageKey = "cloudreader_bookmarks"

// Store manages bookmarks. The list is kept most recently added first.
type Store struct {
	kv kv.Store
	mu sync.Mutex
}

// NewStore creates a bookmark store persisted in s
func NewStore(s kv.Store) *Store {
	return &Store{kv: s}
}

// List returns every bookmark, most recently added first
func (s *Store) List(ctx context.Context) ([]models.Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// ListForNovel returns the bookmarks of one novel, highest chapter first
func (s *Store) ListForNovel(ctx context.Context, novelID int) ([]models.Bookmark, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.Bookmark, 0, len(all))
	for _, b := range all {
		if b.NovelID == novelID {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ChapterNumber > out[j].ChapterNumber
	})
	return out, nil
}

// Exists reports whether a bookmark with id is stored
func (s *Store) Exists(ctx context.Context, id string) (bool, error) {
	all, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	return indexOf(all, id) >= 0, nil
}

// Add inserts b at the head of the list. An existing id is left untouched.
func (s *Store) Add(ctx context.Context, b models.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(all, b.ID) >= 0 {
		return nil
	}

	all = append([]models.Bookmark{b}, all...)
	return s.save(ctx, all)
}

// Remove deletes the bookmark with id, if any
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(all, id)
	if i < 0 {
		return nil
	}

	all = append(all[:i], all[i+1:]...)
	return s.save(ctx, all)
}

func (s *Store) load(ctx context.Context) ([]models.Bookmark, error) {
	raw, ok, err := s.kv.Get(ctx, StorageKey)
	if err != nil {
		return nil, errors.Wrap(err, "read bookmarks")
	}
	if !ok || raw == "" {
		return []models.Bookmark{}, nil
	}

	var all []models.Bookmark
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		log.Warn().Err(err).Str("key", StorageKey).Msg("discarding malformed bookmark list")
		return []models.Bookmark{}, nil
	}
	if all == nil {
		all = []models.Bookmark{}
	}
	return all, nil
}

func (s *Store) save(ctx context.Context, all []models.Bookmark) error {
	data, err := json.Marshal(all)
	if err != nil {
		return errors.Wrap(err, "encode bookmarks")
	}
	if err := s.kv.Set(ctx, StorageKey, string(data)); err != nil {
		return errors.Wrap(err, "write bookmarks")
	}
	return nil
}

func indexOf(all []models.Bookmark, id string) int {
	for i, b := range all {
		if b.ID == id {
			return i
		}
	}
	return -1
}
