package preferences

import (
	"math"

	"github.com/justyntemme/cloudreader/pkg/models"
)

// BaseFontSize is the font size at which text uses the full column width
const BaseFontSize = 18

// ParagraphIndent is prepended to paragraphs in the serif family
const ParagraphIndent = "　　"

// Layout is how the settings translate to a character grid
type Layout struct {
	// Width is the text column width in cells
	Width int
	// Spacing is the number of blank lines after each wrapped line
	Spacing int
	// Indent starts every paragraph
	Indent string
}

// LayoutFor maps settings onto a terminal of the given width. Larger fonts
// give narrower columns.
func LayoutFor(rs models.ReaderSettings, width int) Layout {
	size := rs.FontSize
	if size <= 0 {
		size = BaseFontSize
	}

	w := int(float64(width) * BaseFontSize / size)
	if w > width {
		w = width
	}
	if w < 20 {
		w = min(20, width)
	}

	spacing := int(math.Round(rs.LineHeight)) - 1
	if spacing < 0 {
		spacing = 0
	}

	l := Layout{Width: w, Spacing: spacing}
	if rs.FontFamily == models.FontSerif {
		l.Indent = ParagraphIndent
	}
	return l
}
