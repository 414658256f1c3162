package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInvalidRoute is returned for locations that do not match a known route
var ErrInvalidRoute = errors.New("invalid route")

// Route identifies a reading position: a chapter of a novel
type Route struct {
	NovelID       int
	ChapterNumber int
}

// String renders the canonical "#/read/{novelId}/{chapterNumber}" form
func (r Route) String() string {
	return fmt.Sprintf("#/read/%d/%d", r.NovelID, r.ChapterNumber)
}

// Valid reports whether both ids are positive
func (r Route) Valid() bool {
	return r.NovelID > 0 && r.ChapterNumber > 0
}

// Next is the following chapter. There is no upper bound; reading past the
// last chapter lands on a not found page.
func (r Route) Next() Route {
	return Route{NovelID: r.NovelID, ChapterNumber: r.ChapterNumber + 1}
}

// Prev is the preceding chapter, stopping at chapter 1
func (r Route) Prev() Route {
	if r.ChapterNumber <= 1 {
		return Route{NovelID: r.NovelID, ChapterNumber: 1}
	}
	return Route{NovelID: r.NovelID, ChapterNumber: r.ChapterNumber - 1}
}

// ParseRoute parses "#/read/{novelId}/{chapterNumber}". The leading '#' is
// optional.
func ParseRoute(s string) (Route, error) {
	loc, err := ParseLocation(s)
	if err != nil {
		return Route{}, err
	}
	if loc.Page != PageReader {
		return Route{}, errors.Wrap(ErrInvalidRoute, s)
	}
	return loc.Route(), nil
}

// Page is a top level screen a location points at
type Page int

const (
	PageHome Page = iota
	PageLibrary
	PageNovel
	PageReader
	PageBookmarks
)

// String returns the name of the page
func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageLibrary:
		return "library"
	case PageNovel:
		return "novel"
	case PageReader:
		return "reader"
	case PageBookmarks:
		return "bookmarks"
	default:
		return "unknown"
	}
}

// Location is a parsed hash route
type Location struct {
	Page          Page
	NovelID       int
	ChapterNumber int
}

// Route returns the reading position of a reader location
func (l Location) Route() Route {
	return Route{NovelID: l.NovelID, ChapterNumber: l.ChapterNumber}
}

// ParseLocation parses any of the application's hash routes:
// "#/", "#/library", "#/bookmarks", "#/novel/{id}" and "#/read/{id}/{n}".
func ParseLocation(s string) (Location, error) {
	path := strings.TrimPrefix(strings.TrimSpace(s), "#")
	path = strings.Trim(path, "/")
	if path == "" {
		return Location{Page: PageHome}, nil
	}

	parts := strings.Split(path, "/")
	switch {
	case len(parts) == 1 && parts[0] == "library":
		return Location{Page: PageLibrary}, nil
	case len(parts) == 1 && parts[0] == "bookmarks":
		return Location{Page: PageBookmarks}, nil
	case len(parts) == 2 && parts[0] == "novel":
		id, ok := positive(parts[1])
		if !ok {
			break
		}
		return Location{Page: PageNovel, NovelID: id}, nil
	case len(parts) == 3 && parts[0] == "read":
		id, ok := positive(parts[1])
		if !ok {
			break
		}
		n, ok := positive(parts[2])
		if !ok {
			break
		}
		return Location{Page: PageReader, NovelID: id, ChapterNumber: n}, nil
	}

	return Location{}, errors.Wrap(ErrInvalidRoute, s)
}

func positive(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
