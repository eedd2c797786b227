package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ryanlewis/figfont/internal/common"
)

// recordingBuilder captures everything Parse hands over, in order.
type recordingBuilder struct {
	header   Header
	comments []string
	glyphs   map[rune]string
	order    []rune
	failOn   rune
}

func newRecordingBuilder() *recordingBuilder {
	return &recordingBuilder{glyphs: make(map[rune]string), failOn: -1}
}

func (b *recordingBuilder) SetHeader(h Header) error {
	b.header = h
	return nil
}

func (b *recordingBuilder) SetComments(c []string) {
	b.comments = c
}

func (b *recordingBuilder) SetGlyph(code rune, data string) error {
	if code == b.failOn {
		return fmt.Errorf("%w: rejected by test", common.ErrMalformedGlyph)
	}
	b.glyphs[code] = data
	b.order = append(b.order, code)
	return nil
}

// mandatoryCodes returns the code points every font defines, in file order.
func mandatoryCodes() []rune {
	codes := make([]rune, 0, common.MandatoryCount)
	for c := rune(common.FirstASCII); c <= common.LastASCII; c++ {
		codes = append(codes, c)
	}
	return append(codes, common.DeutschCodePoints[:]...)
}

// glyphBlock renders rows as font lines: "@" after every row, "@@" after
// the last one.
func glyphBlock(rows ...string) string {
	var sb strings.Builder
	for i, r := range rows {
		sb.WriteString(r)
		sb.WriteString("@")
		if i == len(rows)-1 {
			sb.WriteString("@")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// fontStream builds a complete font of the given height in which every
// mandatory glyph is a single column filled with the glyph's own letter
// (code points outside ASCII use 'x'). Extra is appended verbatim.
func fontStream(t *testing.T, header string, height int, extra string) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	for _, c := range mandatoryCodes() {
		ch := c
		if c > 126 || c == ' ' || c == '@' {
			ch = 'x'
		}
		rows := make([]string, height)
		for i := range rows {
			rows[i] = string(ch)
		}
		sb.WriteString(glyphBlock(rows...))
	}
	sb.WriteString(extra)
	return sb.String()
}
