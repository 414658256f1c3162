// Package content serves the read-only novel catalog: novels, categories
// and chapter text.
package content

import (
	"context"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/justyntemme/cloudreader/pkg/models"
)

// ErrNotFound is returned for unknown novel or chapter ids
var ErrNotFound = errors.New("not found")

// Provider is a source of novels and chapters
type Provider interface {
	RecentNovels(ctx context.Context) ([]models.Novel, error)
	AllNovels(ctx context.Context) ([]models.Novel, error)
	GetNovel(ctx context.Context, id int) (*models.Novel, error)
	Categories(ctx context.Context) ([]models.Category, error)
	// Chapters lists a novel's chapters by chapter number. Unknown novels
	// have no chapters.
	Chapters(ctx context.Context, novelID int) ([]models.Chapter, error)
	Chapter(ctx context.Context, novelID, chapterNumber int) (*models.Chapter, error)
	Search(ctx context.Context, query string) ([]models.Novel, error)
}

// Catalog is an in-memory Provider. The mock dataset and the EPUB library
// are both loaded into one.
type Catalog struct {
	novels     []models.Novel
	categories []models.Category
	chapters   map[int][]models.Chapter
}

// NewCatalog builds a catalog. Chapters are keyed by novel id and sorted by
// chapter number.
func NewCatalog(novels []models.Novel, categories []models.Category, chapters map[int][]models.Chapter) *Catalog {
	c := &Catalog{
		novels:     novels,
		categories: categories,
		chapters:   make(map[int][]models.Chapter, len(chapters)),
	}
	for id, list := range chapters {
		sorted := append([]models.Chapter(nil), list...)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i].ChapterNumber < sorted[j].ChapterNumber })
		c.chapters[id] = sorted
	}
	return c
}

// RecentNovels returns all novels, most recently updated first
func (c *Catalog) RecentNovels(context.Context) ([]models.Novel, error) {
	out := append([]models.Novel(nil), c.novels...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

// AllNovels returns all novels in catalog order
func (c *Catalog) AllNovels(context.Context) ([]models.Novel, error) {
	return append([]models.Novel(nil), c.novels...), nil
}

// GetNovel implements Provider
func (c *Catalog) GetNovel(_ context.Context, id int) (*models.Novel, error) {
	for i := range c.novels {
		if c.novels[i].ID == id {
			n := c.novels[i]
			return &n, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "novel %d", id)
}

// Categories implements Provider
func (c *Catalog) Categories(context.Context) ([]models.Category, error) {
	return append([]models.Category(nil), c.categories...), nil
}

// Chapters implements Provider
func (c *Catalog) Chapters(_ context.Context, novelID int) ([]models.Chapter, error) {
	return append([]models.Chapter{}, c.chapters[novelID]...), nil
}

// Chapter implements Provider
func (c *Catalog) Chapter(_ context.Context, novelID, chapterNumber int) (*models.Chapter, error) {
	for _, ch := range c.chapters[novelID] {
		if ch.ChapterNumber == chapterNumber {
			return &ch, nil
		}
	}
	return nil, errors.Wrapf(ErrNotFound, "chapter %d of novel %d", chapterNumber, novelID)
}

// Search matches query case-insensitively against titles and authors
func (c *Catalog) Search(_ context.Context, query string) ([]models.Novel, error) {
	q := strings.ToLower(query)
	out := []models.Novel{}
	for _, n := range c.novels {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Author), q) {
			out = append(out, n)
		}
	}
	return out, nil
}
