package figfont

import (
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// RenderResult is a rendered banner together with its measurements.
type RenderResult struct {
	// Text is the banner exactly as Render returns it
	Text string
	// Lines holds Text split on newlines
	Lines []string
	// Width is the display width of the widest line in terminal columns
	Width int
	// Height is the number of lines
	Height int
}

// NewRenderResult measures a rendered banner.
func NewRenderResult(text string) RenderResult {
	if text == "" {
		return RenderResult{}
	}
	lines := strings.Split(text, "\n")
	w := 0
	for _, l := range lines {
		w = max(w, DisplayWidth(l))
	}
	return RenderResult{Text: text, Lines: lines, Width: w, Height: len(lines)}
}

func (r RenderResult) String() string {
	return r.Text
}

// DisplayWidth returns the number of terminal columns s occupies. East
// Asian wide and fullwidth runes take two columns, combining marks none.
func DisplayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch {
		case unicode.Is(unicode.Mn, r), unicode.Is(unicode.Me, r):
		case isWide(r):
			n += 2
		default:
			n++
		}
	}
	return n
}

func isWide(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}
