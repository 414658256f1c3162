package preferences

import (
	"math"

	"github.com/justyntemme/cloudreader/pkg/models"
)

// StepFontSize moves the font size dir steps and clamps it to the control's
// range. Off-step stored values snap onto the step grid.
func StepFontSize(rs *models.ReaderSettings, dir int) {
	size := math.Round(rs.FontSize/FontSizeStep)*FontSizeStep + float64(dir*FontSizeStep)
	rs.FontSize = math.Max(MinFontSize, math.Min(MaxFontSize, size))
}

// StepLineHeight moves the line height dir steps within the control's range
func StepLineHeight(rs *models.ReaderSettings, dir int) {
	lh := rs.LineHeight + float64(dir)*LineHeightStep
	lh = math.Round(lh*10) / 10
	rs.LineHeight = math.Max(MinLineHeight, math.Min(MaxLineHeight, lh))
}

// CycleTheme switches to the next theme. Unknown themes restart the cycle.
func CycleTheme(rs *models.ReaderSettings) {
	for i, t := range Themes {
		if t == rs.Theme {
			rs.Theme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	rs.Theme = Themes[0]
}

// ToggleFontFamily flips between sans and serif
func ToggleFontFamily(rs *models.ReaderSettings) {
	if rs.FontFamily == models.FontSerif {
		rs.FontFamily = models.FontSans
		return
	}
	rs.FontFamily = models.FontSerif
}
