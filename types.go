package figfont

import (
	"fmt"
	"sort"

	"github.com/ryanlewis/figfont/internal/common"
	"github.com/ryanlewis/figfont/debug"
)

// Font is an immutable FIGfont. Fonts are created by ParseFont, the
// loaders, or FontBuilder.Build, and are safe for concurrent use. The
// exported fields describe the header and must be treated as read-only.
type Font struct {
	// glyphs maps code points to their pictures (unexported for immutability)
	glyphs map[rune]*Glyph

	// Name is the file name without extension, set by the file loaders
	Name string

	// Hardblank is the sub-character that renders as a space but is solid
	// while glyphs are fitted
	Hardblank rune

	// Height is the number of rows of every glyph
	Height int

	// Baseline is the number of rows from the top to the baseline
	Baseline int

	// MaxLength is the longest line length declared by the header
	MaxLength int

	// OldLayout is the legacy layout value from the header
	OldLayout int

	// FullLayout is the layout the font renders with unless overridden
	FullLayout Layout

	// Direction is the font's default print direction
	Direction PrintDirection

	// CodeTagCount is the header's declared number of code-tagged glyphs
	CodeTagCount int

	// Comments holds the header comment lines
	Comments []string
}

// Glyph returns the glyph bound to r.
func (f *Font) Glyph(r rune) (*Glyph, error) {
	if f == nil {
		return nil, ErrUnknownFont
	}
	g, ok := f.glyphs[r]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGlyphNotFound, describeRune(r))
	}
	return g, nil
}

// HasGlyph reports whether r is bound to a glyph.
func (f *Font) HasGlyph(r rune) bool {
	if f == nil {
		return false
	}
	_, ok := f.glyphs[r]
	return ok
}

// Runes returns every bound code point in ascending order.
func (f *Font) Runes() []rune {
	if f == nil {
		return nil
	}
	out := make([]rune, 0, len(f.glyphs))
	for r := range f.glyphs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func describeRune(r rune) string {
	return fmt.Sprintf("%q (U+%04X)", r, r)
}

// Errors returned by font loading and rendering. Test with errors.Is.
var (
	// ErrMalformedHeader is returned for a bad magic or header field
	ErrMalformedHeader = common.ErrMalformedHeader

	// ErrTruncatedFont is returned when the stream ends early
	ErrTruncatedFont = common.ErrTruncatedFont

	// ErrMalformedCodeTag is returned when a code tag is not an integer
	ErrMalformedCodeTag = common.ErrMalformedCodeTag

	// ErrMalformedGlyph is returned when glyph rows cannot form a rectangle
	ErrMalformedGlyph = common.ErrMalformedGlyph

	// ErrIncompleteFont is returned when mandatory glyphs are missing
	ErrIncompleteFont = common.ErrIncompleteFont

	// ErrGlyphNotFound is returned when a code point has no glyph
	ErrGlyphNotFound = common.ErrGlyphNotFound

	// ErrUnknownFont is returned when a nil font is used
	ErrUnknownFont = common.ErrUnknownFont
)

// Option configures rendering behavior.
type Option func(*options)

type options struct {
	layout         *Layout
	direction      *PrintDirection
	unknownRune    *rune
	trimWhitespace bool
	debug          *debug.Session
}

func defaultOptions() *options {
	return &options{}
}

// WithLayout replaces the font's full layout for one render. Only the
// horizontal bits take effect; FullWidth disables fitting altogether.
func WithLayout(layout Layout) Option {
	return func(opts *options) {
		opts.layout = &layout
	}
}

// WithPrintDirection replaces the font's print direction for one render.
// Right to left places every glyph to the left of the previous one; the
// input text itself is not reversed.
func WithPrintDirection(dir PrintDirection) Option {
	return func(opts *options) {
		opts.direction = &dir
	}
}

// WithUnknownRune substitutes r for printable code points the font does
// not define. Without it such code points fail the render with
// ErrGlyphNotFound, as does a substitute the font lacks.
func WithUnknownRune(r rune) Option {
	return func(opts *options) {
		opts.unknownRune = &r
	}
}

// WithTrimWhitespace removes trailing spaces from every output row.
// Rows are rectangular by default.
func WithTrimWhitespace(trim bool) Option {
	return func(opts *options) {
		opts.trimWhitespace = trim
	}
}

// WithDebug traces the render into session. A nil session traces nothing.
func WithDebug(session *debug.Session) Option {
	return func(opts *options) {
		opts.debug = session
	}
}
