package views

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/justyntemme/cloudreader/internal/preferences"
)

func TestWrapTextCJK(t *testing.T) {
	lines := wrapText("萧炎，斗之力，三段！级别：低级！", preferences.Layout{Width: 10})

	assert.Len(t, lines, 4)
	for _, line := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(line), 10)
	}
	assert.Equal(t, "萧炎，斗之", lines[0])
}

func TestWrapTextWords(t *testing.T) {
	lines := wrapText("the quick brown fox jumps", preferences.Layout{Width: 10})
	assert.Equal(t, []string{"the quick", "brown fox", "jumps"}, lines)
}

func TestWrapTextLongWord(t *testing.T) {
	lines := wrapText("abcdefghijklmnop", preferences.Layout{Width: 6})
	assert.Equal(t, []string{"abcdef", "ghijkl", "mnop"}, lines)
}

func TestWrapTextParagraphs(t *testing.T) {
	text := "第一段。\n\n\n第二段。"

	assert.Equal(t, []string{"第一段。", "", "第二段。"},
		wrapText(text, preferences.Layout{Width: 20}))

	spaced := wrapText(text, preferences.Layout{Width: 20, Spacing: 2})
	assert.Equal(t, []string{"第一段。", "", "", "第二段。"}, spaced)
}

func TestWrapTextSpacingBetweenLines(t *testing.T) {
	lines := wrapText("一二三四五六", preferences.Layout{Width: 6, Spacing: 1})
	assert.Equal(t, []string{"一二三", "", "四五六"}, lines)
}

func TestWrapTextIndent(t *testing.T) {
	lines := wrapText("正文", preferences.Layout{Width: 20, Indent: preferences.ParagraphIndent})
	assert.Len(t, lines, 1)
	assert.True(t, strings.HasPrefix(lines[0], "　　正文"))
}

func TestWrapTextEmpty(t *testing.T) {
	assert.Empty(t, wrapText("", preferences.Layout{Width: 20}))
	assert.Empty(t, wrapText("\n \n", preferences.Layout{Width: 20}))
}
