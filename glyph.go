package figfont

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGlyphIndex is returned by Glyph accessors for a cell outside the glyph.
var ErrGlyphIndex = errors.New("glyph index out of range")

// Glyph is the rectangular picture of one code point. Its data is stored
// row-major; the height is the owning font's height.
type Glyph struct {
	data   []rune
	height int
}

// newGlyph builds a glyph from concatenated row data.
func newGlyph(data string, height int) (*Glyph, error) {
	if height < 1 {
		return nil, fmt.Errorf("%w: height must be positive, got %d", ErrMalformedGlyph, height)
	}
	runes := []rune(data)
	if len(runes)%height != 0 {
		return nil, fmt.Errorf("%w: %d sub-characters do not divide into %d rows",
			ErrMalformedGlyph, len(runes), height)
	}
	return &Glyph{data: runes, height: height}, nil
}

// Width returns the number of columns.
func (g *Glyph) Width() int {
	return len(g.data) / g.height
}

// Height returns the number of rows.
func (g *Glyph) Height() int {
	return g.height
}

// At returns the sub-character at column col of row row.
func (g *Glyph) At(col, row int) (rune, error) {
	w := g.Width()
	if col < 0 || col >= w || row < 0 || row >= g.height {
		return 0, fmt.Errorf("%w: (%d,%d) in %dx%d glyph", ErrGlyphIndex, col, row, w, g.height)
	}
	return g.data[row*w+col], nil
}

// Row returns row row as a string.
func (g *Glyph) Row(row int) (string, error) {
	if row < 0 || row >= g.height {
		return "", fmt.Errorf("%w: row %d of %d", ErrGlyphIndex, row, g.height)
	}
	return string(g.row(row)), nil
}

// row returns a view of one row. Callers must not modify it.
func (g *Glyph) row(row int) []rune {
	w := g.Width()
	return g.data[row*w : (row+1)*w]
}

// String returns the rows joined by newlines, each row terminated.
func (g *Glyph) String() string {
	var sb strings.Builder
	sb.Grow(len(g.data) + g.height)
	for r := 0; r < g.height; r++ {
		sb.WriteString(string(g.row(r)))
		sb.WriteByte('\n')
	}
	return sb.String()
}
