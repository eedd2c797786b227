package figfont

import (
	"fmt"
	"strings"

	"github.com/ryanlewis/figfont/internal/common"
	"github.com/ryanlewis/figfont/debug"
	"github.com/ryanlewis/figfont/internal/parser"
)

// Layout is a FIGfont full-layout bitmask. The low byte controls horizontal
// composition:
//   - Bits 0-5: smushing rules (equal, underscore, hierarchy, pair, big X,
//     hardblank)
//   - Bit 6: fitting, glyphs move together until they touch
//   - Bit 7: smushing, glyphs move one column further when every collision
//     merges through an enabled rule
//
// Bits 8-14 hold the vertical equivalents. They are parsed and reported but
// never applied by the renderer.
type Layout int

// Horizontal layout bits
const (
	// FullWidth places glyphs side by side at their full width
	FullWidth Layout = 0

	HorizontalEqualChar    Layout = common.HorizontalEqualChar
	HorizontalUnderscore   Layout = common.HorizontalUnderscore
	HorizontalHierarchy    Layout = common.HorizontalHierarchy
	HorizontalOppositePair Layout = common.HorizontalOppositePair
	HorizontalBigX         Layout = common.HorizontalBigX
	HorizontalHardblank    Layout = common.HorizontalHardblank
	HorizontalFitting      Layout = common.HorizontalFitting
	HorizontalSmushing     Layout = common.HorizontalSmushing
)

// Vertical layout bits
const (
	VerticalEqualChar      Layout = common.VerticalEqualChar
	VerticalUnderscore     Layout = common.VerticalUnderscore
	VerticalHierarchy      Layout = common.VerticalHierarchy
	VerticalHorizontalLine Layout = common.VerticalHorizontalLine
	VerticalVerticalLine   Layout = common.VerticalVerticalLine
	VerticalFitting        Layout = common.VerticalFitting
	VerticalSmushing       Layout = common.VerticalSmushing
)

// horizontalRules covers the six horizontal smushing rule bits.
const horizontalRules = HorizontalEqualChar | HorizontalUnderscore | HorizontalHierarchy |
	HorizontalOppositePair | HorizontalBigX | HorizontalHardblank

// FullLayoutFromOldLayout derives a full layout from a legacy header value:
// -1 means full width, 0 means fitting, and positive values already carry
// the horizontal rule bits together with the smushing bit.
func FullLayoutFromOldLayout(old int) Layout {
	switch {
	case old == -1:
		return FullWidth
	case old == 0:
		return HorizontalFitting
	default:
		return Layout(old)
	}
}

// maxLayout is the largest value made only of defined layout bits.
const maxLayout = 1<<15 - 1

// ParseLayout parses a full layout written the way font headers write
// numbers: decimal, hexadecimal with 0x or #, or octal with a leading 0.
func ParseLayout(s string) (Layout, error) {
	n, err := parser.ParseInt(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 || n > maxLayout {
		return 0, fmt.Errorf("layout %q out of range", s)
	}
	return Layout(n), nil
}

// Has reports whether every bit of mask is set in l.
func (l Layout) Has(mask Layout) bool {
	return l&mask == mask
}

// Moves reports whether l lets adjacent glyphs move closer than full width.
func (l Layout) Moves() bool {
	return l&(HorizontalFitting|HorizontalSmushing) != 0
}

// Rules returns only the horizontal smushing rule bits.
func (l Layout) Rules() Layout {
	return l & horizontalRules
}

// String lists the set bits by name, or "FullWidth" when no bit is set.
func (l Layout) String() string {
	return strings.Join(debug.FormatRules(int(l)), "|")
}
