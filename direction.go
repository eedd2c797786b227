package figfont

import (
	"fmt"
	"strings"
)

// PrintDirection controls the visual order in which glyphs are laid out.
type PrintDirection int

const (
	// LeftToRight places each glyph to the right of the previous one
	LeftToRight PrintDirection = iota
	// RightToLeft places each glyph to the left of the previous one
	RightToLeft
)

// PrintDirectionFromHeader maps the header's direction field (0 or 1).
func PrintDirectionFromHeader(v int) (PrintDirection, error) {
	switch v {
	case 0:
		return LeftToRight, nil
	case 1:
		return RightToLeft, nil
	}
	return LeftToRight, fmt.Errorf("%w: unrecognised print direction %d", ErrMalformedHeader, v)
}

// ParsePrintDirection accepts "ltr", "rtl" and their long forms,
// case-insensitively. An empty string is left to right.
func ParsePrintDirection(s string) (PrintDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ltr", "left-to-right":
		return LeftToRight, nil
	case "rtl", "right-to-left":
		return RightToLeft, nil
	}
	return LeftToRight, fmt.Errorf("unknown print direction %q", s)
}

func (d PrintDirection) String() string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	}
	return fmt.Sprintf("PrintDirection(%d)", int(d))
}
