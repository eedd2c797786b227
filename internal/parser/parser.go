// Package parser implements the FIGfont (flf2) line grammar.
//
// The parser never builds a font itself. It reads the header, comments and
// glyph blocks in stream order and hands each piece to a Builder, which owns
// validation of the finished font.
package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ryanlewis/figfont/internal/common"
	"github.com/ryanlewis/figfont/debug"
)

const (
	defaultBufferSize = 64 * 1024
	maxBufferSize     = 4 * 1024 * 1024

	utf8BOM = "\uFEFF"
)

// Header holds the values of a FIGfont header line. The Has* flags record
// which optional fields were present; fields are positional, so a flag is
// only set when every field before it was present too.
type Header struct {
	Hardblank     rune
	Height        int
	Baseline      int
	MaxLength     int
	OldLayout     int
	CommentLines  int
	Direction     int
	FullLayout    int
	CodeTagCount  int
	HasHeight     bool
	HasOldLayout  bool
	HasDirection  bool
	HasFullLayout bool
}

// Builder receives the pieces of a font in stream order.
type Builder interface {
	SetHeader(h Header) error
	SetComments(comments []string)
	SetGlyph(code rune, data string) error
}

// lineReader wraps a scanner and counts consumed lines for error messages.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, defaultBufferSize), maxBufferSize)
	return &lineReader{sc: sc}
}

// next returns the next line with its terminator (LF or CRLF) removed.
func (lr *lineReader) next() (string, bool, error) {
	if !lr.sc.Scan() {
		return "", false, lr.sc.Err()
	}
	lr.line++
	return lr.sc.Text(), true, nil
}

// Parse reads a complete font stream into b. The reader is consumed but not
// closed; callers own its lifetime.
func Parse(r io.Reader, b Builder, session *debug.Session) error {
	lr := newLineReader(r)

	line, ok, err := lr.next()
	if err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if !ok {
		return fmt.Errorf("header: %w: empty stream", common.ErrTruncatedFont)
	}
	h, err := ParseHeader(strings.TrimPrefix(line, utf8BOM))
	if err != nil {
		return fmt.Errorf("header: %w", err)
	}
	if err := b.SetHeader(h); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	session.Emit("parse", "Header", debug.HeaderData{
		Hardblank:    h.Hardblank,
		Height:       h.Height,
		Baseline:     h.Baseline,
		MaxLength:    h.MaxLength,
		OldLayout:    h.OldLayout,
		FullLayout:   h.FullLayout,
		Direction:    h.Direction,
		CommentLines: h.CommentLines,
		CodeTagCount: h.CodeTagCount,
	})

	// grow as lines arrive: the header count is untrusted
	var comments []string
	for i := 0; i < h.CommentLines; i++ {
		line, ok, err := lr.next()
		if err != nil {
			return fmt.Errorf("comments: %w", err)
		}
		if !ok {
			return fmt.Errorf("comments: %w: expected %d comment lines, got %d",
				common.ErrTruncatedFont, h.CommentLines, i)
		}
		comments = append(comments, line)
	}
	b.SetComments(comments)

	for code := rune(common.FirstASCII); code <= common.LastASCII; code++ {
		if err := readInto(lr, b, code, h.Height); err != nil {
			return err
		}
	}
	for _, code := range common.DeutschCodePoints {
		if err := readInto(lr, b, code, h.Height); err != nil {
			return err
		}
	}

	tags := 0
	for {
		line, ok, err := lr.next()
		if err != nil {
			return fmt.Errorf("code tag: %w", err)
		}
		if !ok {
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		code, err := ParseCodeTag(line)
		if err != nil {
			return fmt.Errorf("code tag at line %d: %w", lr.line, err)
		}
		data, err := readGlyph(lr, h.Height)
		if err != nil {
			return fmt.Errorf("glyph for code tag %q: %w", strings.TrimSpace(line), err)
		}
		tags++
		if code < 0 {
			// Negative tags name glyphs outside Unicode; they are never rendered.
			continue
		}
		if err := b.SetGlyph(code, data); err != nil {
			return fmt.Errorf("glyph %d: %w", code, err)
		}
	}

	session.Emit("parse", "GlyphStats", debug.GlyphStatsData{
		Mandatory: common.MandatoryCount,
		CodeTags:  tags,
		Lines:     lr.line,
	})
	return nil
}

// readInto reads the mandatory glyph for code. A stream that ends before
// it lacks a mandatory glyph, so the error matches both ErrTruncatedFont
// and ErrIncompleteFont.
func readInto(lr *lineReader, b Builder, code rune, height int) error {
	data, err := readGlyph(lr, height)
	if errors.Is(err, common.ErrTruncatedFont) {
		return fmt.Errorf("glyph %d: %w: %w", code, common.ErrIncompleteFont, err)
	}
	if err != nil {
		return fmt.Errorf("glyph %d: %w", code, err)
	}
	if err := b.SetGlyph(code, data); err != nil {
		return fmt.Errorf("glyph %d: %w", code, err)
	}
	return nil
}

// ParseHeader parses a header line. The first field must start with the
// flf2 magic and ends with the hardblank; the numeric fields after it are
// optional and read left to right until the first absent one.
func ParseHeader(line string) (Header, error) {
	var h Header
	fields := strings.Fields(line)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], common.Magic) {
		return h, fmt.Errorf("%w: missing %q magic: %q", common.ErrMalformedHeader, common.Magic, line)
	}
	h.Hardblank, _ = utf8.DecodeLastRuneInString(fields[0])

	targets := []struct {
		name string
		dst  *int
		has  *bool
	}{
		{"height", &h.Height, &h.HasHeight},
		{"baseline", &h.Baseline, nil},
		{"max length", &h.MaxLength, nil},
		{"old layout", &h.OldLayout, &h.HasOldLayout},
		{"comment lines", &h.CommentLines, nil},
		{"print direction", &h.Direction, &h.HasDirection},
		{"full layout", &h.FullLayout, &h.HasFullLayout},
		{"code tag count", &h.CodeTagCount, nil},
	}
	for i, t := range targets {
		if i+1 >= len(fields) {
			break
		}
		v, err := ParseInt(fields[i+1])
		if err != nil {
			return h, fmt.Errorf("%w: invalid %s %q: %v", common.ErrMalformedHeader, t.name, fields[i+1], err)
		}
		*t.dst = v
		if t.has != nil {
			*t.has = true
		}
	}

	if h.HasHeight && h.Height < 1 {
		return h, fmt.Errorf("%w: height must be positive, got %d", common.ErrMalformedHeader, h.Height)
	}
	if h.CommentLines < 0 {
		return h, fmt.Errorf("%w: comment lines must be non-negative, got %d", common.ErrMalformedHeader, h.CommentLines)
	}
	if h.HasDirection && h.Direction != 0 && h.Direction != 1 {
		return h, fmt.Errorf("%w: unrecognised print direction %d", common.ErrMalformedHeader, h.Direction)
	}
	return h, nil
}

// ParseCodeTag returns the code point named by the first field of a code
// tag line. Anything after the first field is a free-form description.
func ParseCodeTag(line string) (rune, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty line", common.ErrMalformedCodeTag)
	}
	v, err := ParseInt(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", common.ErrMalformedCodeTag, fields[0], err)
	}
	if v > utf8.MaxRune {
		return 0, fmt.Errorf("%w: %q beyond Unicode range", common.ErrMalformedCodeTag, fields[0])
	}
	return rune(v), nil
}

// ParseInt parses an integer in C notation: an optional sign followed by
// 0x, 0X or # for hexadecimal, a leading 0 for octal, or plain decimal.
func ParseInt(s string) (int, error) {
	digits := s
	neg := false
	if digits != "" && (digits[0] == '-' || digits[0] == '+') {
		neg = digits[0] == '-'
		digits = digits[1:]
	}

	base := 10
	switch {
	case strings.HasPrefix(digits, "0x"), strings.HasPrefix(digits, "0X"):
		base, digits = 16, digits[2:]
	case strings.HasPrefix(digits, "#"):
		base, digits = 16, digits[1:]
	case len(digits) > 1 && digits[0] == '0':
		base, digits = 8, digits[1:]
	}
	if digits == "" || digits[0] == '-' || digits[0] == '+' {
		return 0, fmt.Errorf("malformed number %q", s)
	}

	v, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("malformed number %q", s)
	}
	if neg {
		if v > 1<<31 {
			return 0, fmt.Errorf("number %q out of range", s)
		}
		return -int(v), nil
	}
	if v > 1<<31-1 {
		return 0, fmt.Errorf("number %q out of range", s)
	}
	return int(v), nil
}

// readGlyph reads height lines and joins their bodies, end marks removed,
// into the row-major glyph data.
func readGlyph(lr *lineReader, height int) (string, error) {
	var sb strings.Builder
	width := -1
	for row := 0; row < height; row++ {
		line, ok, err := lr.next()
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("%w: expected %d lines, got %d", common.ErrTruncatedFont, height, row)
		}
		body, ok := StripEndMarks(line)
		if !ok {
			return "", fmt.Errorf("%w: line %d has no end mark", common.ErrMalformedGlyph, lr.line)
		}
		w := utf8.RuneCountInString(body)
		if width == -1 {
			width = w
		} else if w != width {
			return "", fmt.Errorf("%w: line %d is %d wide, expected %d", common.ErrMalformedGlyph, lr.line, w, width)
		}
		sb.WriteString(body)
	}
	return sb.String(), nil
}

// StripEndMarks drops trailing whitespace, takes the last remaining rune as
// the end mark and strips every trailing copy of it. It reports false when
// the line holds no end mark at all.
func StripEndMarks(line string) (string, bool) {
	trimmed := strings.TrimRightFunc(line, unicode.IsSpace)
	if trimmed == "" {
		return "", false
	}
	mark, size := utf8.DecodeLastRuneInString(trimmed)
	if mark == utf8.RuneError && size == 1 {
		// invalid UTF-8: strip the trailing run of the raw byte
		last := trimmed[len(trimmed)-1]
		i := len(trimmed)
		for i > 0 && trimmed[i-1] == last {
			i--
		}
		return trimmed[:i], true
	}
	return strings.TrimRight(trimmed, string(mark)), true
}
