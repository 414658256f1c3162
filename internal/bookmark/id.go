package bookmark

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/justyntemme/cloudreader/pkg/models"
)

// ErrInvalidID is returned by ParseID for ids not shaped "{novelId}_{chapterNumber}"
var ErrInvalidID = errors.New("invalid bookmark id")

// ID builds the composite bookmark id for a chapter of a novel
func ID(novelID, chapterNumber int) string {
	return fmt.Sprintf("%d_%d", novelID, chapterNumber)
}

// ParseID splits a composite id back into its novel id and chapter number
func ParseID(id string) (novelID, chapterNumber int, err error) {
	left, right, ok := strings.Cut(id, "_")
	if !ok {
		return 0, 0, errors.Wrap(ErrInvalidID, id)
	}
	if novelID, err = strconv.Atoi(left); err != nil {
		return 0, 0, errors.Wrap(ErrInvalidID, id)
	}
	if chapterNumber, err = strconv.Atoi(right); err != nil {
		return 0, 0, errors.Wrap(ErrInvalidID, id)
	}
	return novelID, chapterNumber, nil
}

// New snapshots novel and chapter into a bookmark created at now
func New(novel *models.Novel, chapter *models.Chapter, now time.Time) models.Bookmark {
	return models.Bookmark{
		ID:            ID(novel.ID, chapter.ChapterNumber),
		NovelID:       novel.ID,
		NovelTitle:    novel.Title,
		ChapterNumber: chapter.ChapterNumber,
		ChapterTitle:  chapter.Title,
		CreatedAt:     now.UTC().Format(time.RFC3339Nano),
	}
}
