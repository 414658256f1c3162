package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/taylorskalyo/goreader/epub"

	"github.com/justyntemme/cloudreader/pkg/models"
)

// ErrNoRootfile is returned for EPUB containers without a package document
var ErrNoRootfile = errors.New("no rootfiles found in epub")

// EPUBCategory is the category every EPUB library novel is filed under
const EPUBCategory = "本地书库"

// NewEPUBLibrary loads every *.epub file in dir into a catalog. Novel ids
// follow the sorted file names starting at 1. Files that fail to parse are
// listed as corrupted novels without chapters.
func NewEPUBLibrary(dir string) (*Catalog, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.epub"))
	if err != nil {
		return nil, errors.Wrap(err, "scan epub directory")
	}
	sort.Strings(paths)

	var (
		novels   = make([]models.Novel, 0, len(paths))
		chapters = make(map[int][]models.Chapter, len(paths))
	)

	for i, path := range paths {
		id := i + 1
		novel, list, err := loadEPUB(id, path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping unreadable epub")
			novel.IsCorrupted = true
		}
		novels = append(novels, novel)
		chapters[id] = list
	}

	categories := []models.Category{{ID: 1, Name: EPUBCategory, NovelCount: len(novels)}}
	return NewCatalog(novels, categories, chapters), nil
}

func loadEPUB(id int, path string) (models.Novel, []models.Chapter, error) {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	novel := models.Novel{
		ID:         id,
		Title:      base,
		CleanTitle: base,
		Category:   EPUBCategory,
		FilePath:   path,
		Encoding:   "utf-8",
	}

	if fi, err := os.Stat(path); err == nil {
		novel.FileSize = fi.Size()
		novel.CreatedAt = fi.ModTime()
		novel.UpdatedAt = fi.ModTime()
	}

	rc, err := epub.OpenReader(path)
	if err != nil {
		return novel, nil, errors.Wrap(err, "open epub")
	}
	defer rc.Close()

	if len(rc.Rootfiles) == 0 {
		return novel, nil, ErrNoRootfile
	}
	book := rc.Rootfiles[0]

	if t := strings.TrimSpace(book.Metadata.Title); t != "" {
		novel.Title = t
		novel.CleanTitle = t
	}
	novel.Author = strings.TrimSpace(book.Metadata.Creator)
	novel.Summary = htmlText(book.Metadata.Description)
	novel.Tags = strings.TrimSpace(book.Metadata.Subject)

	var list []models.Chapter
	for _, ref := range book.Spine.Itemrefs {
		if ref.Item == nil {
			continue
		}
		title, text, err := readItem(ref.Item)
		if err != nil {
			log.Debug().Err(err).Str("href", ref.Item.HREF).Msg("skipping spine item")
			continue
		}
		if text == "" {
			continue
		}

		n := len(list) + 1
		if title == "" {
			title = fmt.Sprintf("%s %d", novel.Title, n)
		}
		words := utf8.RuneCountInString(text)
		list = append(list, models.Chapter{
			ID:            id*100000 + n,
			NovelID:       id,
			ChapterNumber: n,
			Title:         title,
			Content:       text,
			WordCount:     words,
			CreatedAt:     novel.CreatedAt,
		})
		novel.WordCount += words
	}
	novel.ChapterCount = len(list)
	if novel.UpdatedAt.IsZero() {
		novel.UpdatedAt = time.Now()
	}

	return novel, list, nil
}

// readItem extracts the heading and paragraph text of one XHTML spine item
func readItem(item *epub.Item) (string, string, error) {
	r, err := item.Open()
	if err != nil {
		return "", "", errors.Wrap(err, "open item")
	}
	defer r.Close()

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", errors.Wrap(err, "parse item")
	}

	title := strings.TrimSpace(doc.Find("h1, h2, h3").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	var paras []string
	doc.Find("body p").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			paras = append(paras, t)
		}
	})
	if len(paras) == 0 {
		for _, line := range strings.Split(doc.Find("body").Text(), "\n") {
			if t := strings.TrimSpace(line); t != "" {
				paras = append(paras, t)
			}
		}
	}

	return title, strings.Join(paras, "\n\n"), nil
}

// htmlText strips markup from metadata fields that may carry HTML
func htmlText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, "<") {
		return s
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.TrimSpace(doc.Text())
}
