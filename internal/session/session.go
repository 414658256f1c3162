// Package session tracks the reader's active chapter: which route is open,
// whether a fetched chapter is still wanted, reading progress and the
// bookmark flag.
package session

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/justyntemme/cloudreader/internal/bookmark"
	"github.com/justyntemme/cloudreader/pkg/models"
)

// Bookmarks is the part of the bookmark store a session needs
type Bookmarks interface {
	Exists(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, b models.Bookmark) error
	Remove(ctx context.Context, id string) error
}

// Ticket identifies one navigation. Results fetched for an older ticket are
// stale.
type Ticket struct {
	Route
	version uint64
}

// Session is the state of the reading screen. It is owned by the UI event
// loop and is not safe for concurrent use.
type Session struct {
	bookmarks Bookmarks

	route   Route
	version uint64

	novel      *models.Novel
	chapter    *models.Chapter
	loaded     bool
	bookmarked bool
	progress   float64
}

// New creates an empty session backed by the given bookmark store
func New(b Bookmarks) *Session {
	return &Session{bookmarks: b}
}

// Navigate makes r the active route. Loaded content and progress are reset
// and any ticket handed out before is invalidated.
func (s *Session) Navigate(r Route) Ticket {
	s.version++
	s.route = r
	s.novel = nil
	s.chapter = nil
	s.loaded = false
	s.bookmarked = false
	s.progress = 0
	return Ticket{Route: r, version: s.version}
}

// Current reports whether t belongs to the latest navigation
func (s *Session) Current(t Ticket) bool {
	return t.version == s.version
}

// Commit applies content fetched for t. It returns false, leaving the
// session untouched, when t is stale. A nil chapter marks the route as not
// found.
func (s *Session) Commit(t Ticket, novel *models.Novel, chapter *models.Chapter) bool {
	if !s.Current(t) {
		return false
	}
	s.novel = novel
	s.chapter = chapter
	s.loaded = true
	s.progress = 0
	return true
}

// Route returns the active route
func (s *Session) Route() Route { return s.route }

// Novel returns the loaded novel, nil while loading or when not found
func (s *Session) Novel() *models.Novel { return s.novel }

// Chapter returns the loaded chapter, nil while loading or when not found
func (s *Session) Chapter() *models.Chapter { return s.chapter }

// Loading reports whether the active route is still waiting for content
func (s *Session) Loading() bool { return !s.loaded }

// NotFound reports whether the active route resolved to no chapter
func (s *Session) NotFound() bool { return s.loaded && (s.novel == nil || s.chapter == nil) }

// Bookmarked reports whether the active chapter is bookmarked
func (s *Session) Bookmarked() bool { return s.bookmarked }

// Progress returns the last computed chapter progress
func (s *Session) Progress() float64 { return s.progress }

// Scroll records a scroll position and returns the new progress
func (s *Session) Scroll(offset, documentHeight, viewportHeight float64) float64 {
	s.progress = Progress(offset, documentHeight, viewportHeight)
	return s.progress
}

// BookmarkID returns the composite id of the active chapter
func (s *Session) BookmarkID() string {
	return bookmark.ID(s.route.NovelID, s.route.ChapterNumber)
}

// RefreshBookmarked recomputes the bookmark flag for the active chapter
func (s *Session) RefreshBookmarked(ctx context.Context) error {
	if s.novel == nil || s.chapter == nil {
		s.bookmarked = false
		return nil
	}
	ok, err := s.bookmarks.Exists(ctx, s.BookmarkID())
	if err != nil {
		return errors.Wrap(err, "check bookmark")
	}
	s.bookmarked = ok
	return nil
}

// ToggleBookmark removes the active chapter's bookmark if it has one and
// adds one created at now otherwise. It does nothing until a chapter is
// loaded.
func (s *Session) ToggleBookmark(ctx context.Context, now time.Time) error {
	if s.novel == nil || s.chapter == nil {
		return nil
	}

	if s.bookmarked {
		if err := s.bookmarks.Remove(ctx, s.BookmarkID()); err != nil {
			return errors.Wrap(err, "remove bookmark")
		}
		s.bookmarked = false
		return nil
	}

	if err := s.bookmarks.Add(ctx, bookmark.New(s.novel, s.chapter, now)); err != nil {
		return errors.Wrap(err, "add bookmark")
	}
	s.bookmarked = true
	return nil
}
