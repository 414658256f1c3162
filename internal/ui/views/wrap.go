package views

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/justyntemme/cloudreader/internal/preferences"
)

// wrapText lays text out for the reader. Paragraphs are the non-blank
// lines of text. Wide runes are measured as two cells and may break
// anywhere; other text breaks at spaces.
func wrapText(text string, l preferences.Layout) []string {
	width := max(l.Width, 1)

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		if len(lines) > 0 {
			lines = appendBlank(lines, max(1, l.Spacing))
		}
		for i, line := range wrapParagraph(l.Indent+para, width) {
			if i > 0 {
				lines = appendBlank(lines, l.Spacing)
			}
			lines = append(lines, line)
		}
	}
	return lines
}

func appendBlank(lines []string, n int) []string {
	for range n {
		lines = append(lines, "")
	}
	return lines
}

func wrapParagraph(p string, width int) []string {
	var (
		lines     []string
		line      strings.Builder
		lineWidth int
	)
	flush := func() {
		lines = append(lines, strings.TrimRight(line.String(), " "))
		line.Reset()
		lineWidth = 0
	}

	for _, tok := range tokenize(p) {
		if tok == " " {
			if lineWidth == 0 {
				continue
			}
			if lineWidth+1 > width {
				flush()
				continue
			}
			line.WriteByte(' ')
			lineWidth++
			continue
		}

		w := runewidth.StringWidth(tok)
		if lineWidth > 0 && lineWidth+w > width {
			flush()
		}
		for w > width {
			head := runewidth.Truncate(tok, width, "")
			if head == "" {
				head = string([]rune(tok)[:1])
			}
			lines = append(lines, head)
			tok = tok[len(head):]
			w = runewidth.StringWidth(tok)
		}
		line.WriteString(tok)
		lineWidth += w
	}
	if lineWidth > 0 {
		flush()
	}
	return lines
}

// tokenize splits s into words, single spaces and single wide runes
func tokenize(s string) []string {
	var (
		toks []string
		word strings.Builder
	)
	endWord := func() {
		if word.Len() > 0 {
			toks = append(toks, word.String())
			word.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == ' ' || r == '\t':
			endWord()
			if n := len(toks); n == 0 || toks[n-1] != " " {
				toks = append(toks, " ")
			}
		case runewidth.RuneWidth(r) > 1:
			endWord()
			toks = append(toks, string(r))
		default:
			word.WriteRune(r)
		}
	}
	endWord()
	return toks
}
