package figfont

import (
	"strings"
	"testing"

	"github.com/ryanlewis/figfont/internal/common"
)

// mandatoryRunes lists the code points every font binds, in file order.
func mandatoryRunes() []rune {
	out := make([]rune, 0, common.MandatoryCount)
	for c := rune(common.FirstASCII); c <= common.LastASCII; c++ {
		out = append(out, c)
	}
	return append(out, common.DeutschCodePoints[:]...)
}

// defaultRows is the picture a test font uses for c when none is given:
// one column of c itself, 'x' outside printable ASCII, blank for space.
func defaultRows(c rune, height int) []string {
	ch := c
	if c > 126 {
		ch = 'x'
	}
	rows := make([]string, height)
	for i := range rows {
		rows[i] = string(ch)
	}
	return rows
}

// newTestFont builds a complete font with hardblank '$'. Glyphs named in
// overrides replace the defaults; overrides outside the mandatory set are
// added as extra glyphs.
func newTestFont(t testing.TB, height int, layout Layout, overrides map[rune][]string) *Font {
	t.Helper()
	b := NewFontBuilder()
	b.Height = height
	b.FullLayout = layout

	seen := make(map[rune]bool)
	for _, c := range mandatoryRunes() {
		rows, ok := overrides[c]
		if !ok {
			rows = defaultRows(c, height)
		}
		if err := b.SetGlyph(c, strings.Join(rows, "")); err != nil {
			t.Fatalf("SetGlyph(%q): %v", c, err)
		}
		seen[c] = true
	}
	for c, rows := range overrides {
		if seen[c] {
			continue
		}
		if err := b.SetGlyph(c, strings.Join(rows, "")); err != nil {
			t.Fatalf("SetGlyph(%q): %v", c, err)
		}
	}
	f, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return f
}

// fontSource writes a font file: header, then every mandatory glyph in
// file order, then extra verbatim. Glyphs come from overrides or
// defaultRows; '@' is the end mark, so a bare '@' glyph uses '#' instead.
func fontSource(header string, height int, overrides map[rune][]string, skip rune, extra string) string {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	for _, c := range mandatoryRunes() {
		if c == skip {
			continue
		}
		rows, ok := overrides[c]
		if !ok {
			rows = defaultRows(c, height)
			if c == '@' {
				rows = defaultRows('#', height)
			}
		}
		writeGlyph(&sb, rows)
	}
	sb.WriteString(extra)
	return sb.String()
}

func writeGlyph(sb *strings.Builder, rows []string) {
	for i, r := range rows {
		sb.WriteString(r)
		sb.WriteString("@")
		if i == len(rows)-1 {
			sb.WriteString("@")
		}
		sb.WriteString("\n")
	}
}
