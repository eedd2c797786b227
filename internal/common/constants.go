// Package common provides shared constants and errors for internal packages.
// The public figfont package re-exports these values.
package common

import "errors"

// Horizontal smushing rules (bits 0-5)
const (
	// HorizontalEqualChar merges two identical sub-characters (code value 1)
	HorizontalEqualChar = 1 << 0
	// HorizontalUnderscore lets "_" be replaced by a border character (code value 2)
	HorizontalUnderscore = 1 << 1
	// HorizontalHierarchy keeps the sub-character of the later class (code value 4)
	HorizontalHierarchy = 1 << 2
	// HorizontalOppositePair turns opposite brackets into "|" (code value 8)
	HorizontalOppositePair = 1 << 3
	// HorizontalBigX merges diagonals into "|", "Y" or "X" (code value 16)
	HorizontalBigX = 1 << 4
	// HorizontalHardblank merges two hardblanks (code value 32)
	HorizontalHardblank = 1 << 5
	// HorizontalFitting moves glyphs together until they touch (code value 64)
	HorizontalFitting = 1 << 6
	// HorizontalSmushing moves glyphs one column further than fitting (code value 128)
	HorizontalSmushing = 1 << 7
)

// Vertical smushing rules (bits 8-14). Parsed but never applied.
const (
	VerticalEqualChar      = 1 << 8
	VerticalUnderscore     = 1 << 9
	VerticalHierarchy      = 1 << 10
	VerticalHorizontalLine = 1 << 11
	VerticalVerticalLine   = 1 << 12
	VerticalFitting        = 1 << 13
	VerticalSmushing       = 1 << 14
)

// Magic is the prefix every FIGfont header starts with.
const Magic = "flf2"

// First and last code points of the mandatory ASCII range.
const (
	FirstASCII = 32
	LastASCII  = 126
)

// DeutschCodePoints lists the required German glyphs in file order.
var DeutschCodePoints = [...]rune{196, 214, 220, 228, 246, 252, 223}

// MandatoryCount is the number of code points every font must define.
const MandatoryCount = LastASCII - FirstASCII + 1 + len(DeutschCodePoints)

// Loading and lookup errors
var (
	// ErrMalformedHeader is returned for a bad magic or header field
	ErrMalformedHeader = errors.New("malformed font header")
	// ErrTruncatedFont is returned when the stream ends before the data it promised
	ErrTruncatedFont = errors.New("truncated font data")
	// ErrMalformedCodeTag is returned when a code tag is not an integer
	ErrMalformedCodeTag = errors.New("malformed code tag")
	// ErrMalformedGlyph is returned when glyph rows cannot form a rectangle
	ErrMalformedGlyph = errors.New("malformed glyph")
	// ErrIncompleteFont is returned when mandatory glyphs are missing
	ErrIncompleteFont = errors.New("incomplete font")
	// ErrGlyphNotFound is returned when a code point has no glyph
	ErrGlyphNotFound = errors.New("glyph not found")
	// ErrUnknownFont is returned when font is nil
	ErrUnknownFont = errors.New("unknown font")
)
