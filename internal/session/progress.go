package session

// Progress returns how far through the current chapter the reader has
// scrolled, as a percentage in [0, 100]. Content that fits in the viewport
// counts as fully read.
func Progress(scrollOffset, documentHeight, viewportHeight float64) float64 {
	scrollable := documentHeight - viewportHeight
	if scrollable <= 0 {
		return 100
	}
	return clamp(scrollOffset/scrollable*100, 0, 100)
}

// BookProgress spreads chapter progress over the whole book, weighting every
// chapter equally
func BookProgress(chapterNumber, chapterCount int, chapterProgress float64) float64 {
	if chapterCount <= 0 || chapterNumber <= 0 {
		return 0
	}
	done := float64(chapterNumber-1) + clamp(chapterProgress, 0, 100)/100
	return clamp(done/float64(chapterCount)*100, 0, 100)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
