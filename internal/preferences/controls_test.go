package preferences

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/justyntemme/cloudreader/pkg/models"
)

func TestStepFontSize(t *testing.T) {
	testCases := []struct {
		from float64
		dir  int
		want float64
	}{
		{from: 18, dir: 1, want: 20},
		{from: 18, dir: -1, want: 16},
		{from: 32, dir: 1, want: 32},
		{from: 14, dir: -1, want: 14},
		{from: 999, dir: -1, want: 32},
		{from: 19, dir: 1, want: 22},
	}

	for _, tc := range testCases {
		rs := models.ReaderSettings{FontSize: tc.from}
		StepFontSize(&rs, tc.dir)
		assert.Equal(t, tc.want, rs.FontSize, "from %v dir %d", tc.from, tc.dir)
	}
}

func TestStepLineHeight(t *testing.T) {
	rs := models.ReaderSettings{LineHeight: 1.8}
	StepLineHeight(&rs, 1)
	assert.InDelta(t, 2.0, rs.LineHeight, 1e-9)

	rs.LineHeight = 1.2
	StepLineHeight(&rs, -1)
	assert.InDelta(t, 1.2, rs.LineHeight, 1e-9)

	rs.LineHeight = 3.0
	StepLineHeight(&rs, 1)
	assert.InDelta(t, 3.0, rs.LineHeight, 1e-9)
}

func TestCycleTheme(t *testing.T) {
	rs := models.ReaderSettings{Theme: models.ThemeLight}
	var seen []string
	for range Themes {
		CycleTheme(&rs)
		seen = append(seen, rs.Theme)
	}
	assert.Equal(t, []string{"sepia", "dark", "dark-blue", "light"}, seen)

	rs.Theme = "neon"
	CycleTheme(&rs)
	assert.Equal(t, models.ThemeLight, rs.Theme)
}

func TestToggleFontFamily(t *testing.T) {
	rs := models.ReaderSettings{FontFamily: models.FontSans}
	ToggleFontFamily(&rs)
	assert.Equal(t, models.FontSerif, rs.FontFamily)
	ToggleFontFamily(&rs)
	assert.Equal(t, models.FontSans, rs.FontFamily)
}

func TestLayoutFor(t *testing.T) {
	l := LayoutFor(Defaults(), 90)
	assert.Equal(t, Layout{Width: 90, Spacing: 1}, l)

	l = LayoutFor(models.ReaderSettings{FontSize: 36, LineHeight: 1.2, FontFamily: models.FontSerif}, 90)
	assert.Equal(t, 45, l.Width)
	assert.Zero(t, l.Spacing)
	assert.Equal(t, ParagraphIndent, l.Indent)

	l = LayoutFor(models.ReaderSettings{FontSize: 999, LineHeight: 3}, 90)
	assert.Equal(t, 20, l.Width)
	assert.Equal(t, 2, l.Spacing)

	l = LayoutFor(models.ReaderSettings{FontSize: 14}, 90)
	assert.Equal(t, 90, l.Width, "never wider than the terminal")
}
