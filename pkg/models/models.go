package models

import (
	"strings"
	"time"
)

// Reader themes
const (
	ThemeLight    = "light"
	ThemeSepia    = "sepia"
	ThemeDark     = "dark"
	ThemeDarkBlue = "dark-blue"
)

// Font families
const (
	FontSans  = "sans"
	FontSerif = "serif"
)

// Author represents a novel author
type Author struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	NovelCount int    `json:"novel_count"`
	TotalWords int    `json:"total_words"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Category groups novels by genre
type Category struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	NovelCount  int    `json:"novel_count"`
	CreatedAt   string `json:"created_at,omitempty"`
}

// Novel represents a book in the library
type Novel struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	CleanTitle   string    `json:"clean_title"`
	Author       string    `json:"author"`
	Category     string    `json:"category"`
	WordCount    int       `json:"word_count"`
	ChapterCount int       `json:"chapter_count"`
	FilePath     string    `json:"file_path"`
	FileSize     int64     `json:"file_size"`
	Encoding     string    `json:"encoding"`
	IsCorrupted  bool      `json:"is_corrupted"`
	Summary      string    `json:"summary"`
	Tags         string    `json:"tags"` // comma separated
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TagList returns the novel's tags as a slice
func (n *Novel) TagList() []string {
	var tags []string
	for _, t := range strings.Split(n.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Chapter represents a single chapter with its full text
type Chapter struct {
	ID            int       `json:"id"`
	NovelID       int       `json:"novel_id"`
	ChapterNumber int       `json:"chapter_number"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	WordCount     int       `json:"word_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// Bookmark marks a chapter of a novel. Titles are copied at creation time.
type Bookmark struct {
	ID            string `json:"id"` // novelId_chapterNumber
	NovelID       int    `json:"novelId"`
	NovelTitle    string `json:"novelTitle"`
	ChapterNumber int    `json:"chapterNumber"`
	ChapterTitle  string `json:"chapterTitle"`
	CreatedAt     string `json:"createdAt"`
}

// Created parses CreatedAt, returning the zero time when it is not RFC 3339
func (b *Bookmark) Created() time.Time {
	t, err := time.Parse(time.RFC3339Nano, b.CreatedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

// ReaderSettings holds the reading view preferences
type ReaderSettings struct {
	Theme      string  `json:"theme"`
	FontSize   float64 `json:"fontSize"`
	LineHeight float64 `json:"lineHeight"`
	FontFamily string  `json:"fontFamily"`
}

// HistoryEntry records a recently opened novel
type HistoryEntry struct {
	NovelID     int       `json:"novelId"`
	Title       string    `json:"title"`
	LastChapter int       `json:"lastChapter"`
	OpenedAt    time.Time `json:"openedAt"`
}
