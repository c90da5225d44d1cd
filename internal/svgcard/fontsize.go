package svgcard

import "github.com/mattn/go-runewidth"

// Average glyph width as a fraction of the font size.  Matches the estimate the
// card styles were tuned against.
const glyphWidthFactor = 0.6

// minHeaderFontSize keeps very long titles legible instead of shrinking forever
const minHeaderFontSize = 10

// FitFontSize shrinks a base font size until the text's estimated render width
// fits within the pixel budget.  Width is measured in display cells so CJK
// usernames (two cells per rune) are accounted for.
func FitFontSize(text string, baseSize, maxWidth int) int {
	size := baseSize
	cells := runewidth.StringWidth(text)
	for size > minHeaderFontSize && float64(cells)*float64(size)*glyphWidthFactor > float64(maxWidth) {
		size--
	}
	return size
}
