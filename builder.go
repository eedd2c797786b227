package figfont

import (
	"fmt"
	"strings"

	"github.com/ryanlewis/figfont/internal/common"
	"github.com/ryanlewis/figfont/internal/parser"
)

// FontBuilder collects header values and glyphs and turns them into an
// immutable Font. The zero value is ready to use; set Height before adding
// glyphs.
type FontBuilder struct {
	Hardblank    rune
	Height       int
	Baseline     int
	MaxLength    int
	OldLayout    int
	FullLayout   Layout
	Direction    PrintDirection
	CodeTagCount int
	Comments     []string

	glyphs map[rune]*Glyph
}

// NewFontBuilder returns a builder with the defaults of a header that
// carries only the mandatory fields: hardblank '$' and full-width layout.
func NewFontBuilder() *FontBuilder {
	return &FontBuilder{
		Hardblank: '$',
		OldLayout: -1,
		glyphs:    make(map[rune]*Glyph),
	}
}

// SetGlyph binds code to a glyph made of row-major data. A later call for
// the same code point replaces the earlier glyph.
func (b *FontBuilder) SetGlyph(code rune, data string) error {
	if b.Height < 1 {
		return fmt.Errorf("%w: height must be set before glyphs", ErrMalformedHeader)
	}
	g, err := newGlyph(data, b.Height)
	if err != nil {
		return err
	}
	if b.glyphs == nil {
		b.glyphs = make(map[rune]*Glyph)
	}
	b.glyphs[code] = g
	return nil
}

// Build validates the collected data and returns the font. The builder
// may be reused afterwards without affecting the returned font.
func (b *FontBuilder) Build() (*Font, error) {
	if b.Height < 1 {
		return nil, fmt.Errorf("%w: height must be positive, got %d", ErrMalformedHeader, b.Height)
	}
	if b.Direction != LeftToRight && b.Direction != RightToLeft {
		return nil, fmt.Errorf("%w: unrecognised print direction %d", ErrMalformedHeader, int(b.Direction))
	}

	var missing []string
	check := func(c rune) {
		if _, ok := b.glyphs[c]; !ok {
			missing = append(missing, fmt.Sprintf("U+%04X", c))
		}
	}
	for c := rune(common.FirstASCII); c <= common.LastASCII; c++ {
		check(c)
	}
	for _, c := range common.DeutschCodePoints {
		check(c)
	}
	if len(missing) > 0 {
		if len(missing) > 8 {
			missing = append(missing[:8], fmt.Sprintf("and %d more", len(missing)-8))
		}
		return nil, fmt.Errorf("%w: missing %s", ErrIncompleteFont, strings.Join(missing, ", "))
	}

	glyphs := make(map[rune]*Glyph, len(b.glyphs))
	for c, g := range b.glyphs {
		if g.height != b.Height {
			return nil, fmt.Errorf("%w: glyph %s has %d rows, font height is %d",
				ErrMalformedGlyph, describeRune(c), g.height, b.Height)
		}
		glyphs[c] = g
	}

	return &Font{
		glyphs:       glyphs,
		Hardblank:    b.Hardblank,
		Height:       b.Height,
		Baseline:     b.Baseline,
		MaxLength:    b.MaxLength,
		OldLayout:    b.OldLayout,
		FullLayout:   b.FullLayout,
		Direction:    b.Direction,
		CodeTagCount: b.CodeTagCount,
		Comments:     append([]string(nil), b.Comments...),
	}, nil
}

// parserSink feeds parser callbacks into a FontBuilder.
type parserSink struct {
	b *FontBuilder
}

func (s parserSink) SetHeader(h parser.Header) error {
	if !h.HasHeight {
		return fmt.Errorf("%w: missing height", ErrMalformedHeader)
	}
	b := s.b
	b.Hardblank = h.Hardblank
	b.Height = h.Height
	b.Baseline = h.Baseline
	b.MaxLength = h.MaxLength
	b.CodeTagCount = h.CodeTagCount
	if h.HasOldLayout {
		b.OldLayout = h.OldLayout
		b.FullLayout = FullLayoutFromOldLayout(h.OldLayout)
	}
	if h.HasDirection {
		d, err := PrintDirectionFromHeader(h.Direction)
		if err != nil {
			return err
		}
		b.Direction = d
	}
	if h.HasFullLayout {
		b.FullLayout = Layout(h.FullLayout)
	}
	return nil
}

func (s parserSink) SetComments(comments []string) {
	s.b.Comments = comments
}

func (s parserSink) SetGlyph(code rune, data string) error {
	return s.b.SetGlyph(code, data)
}
