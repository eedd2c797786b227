package figfont

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/ryanlewis/figfont/debug"
)

// Buffers larger than these are dropped instead of going back to the pool,
// so one huge banner does not pin memory.
const (
	defaultMaxHeight      = 20
	maxRetainRow          = 2048
	maxRetainOutputBuffer = 64 * 1024
)

// renderStatePool reuses row buffers across render calls.
var renderStatePool = sync.Pool{
	New: func() interface{} {
		return &renderState{rows: make([][]rune, 0, defaultMaxHeight)}
	},
}

// renderState composes one banner. Rows hold the current line's
// sub-characters; out collects finished blocks.
type renderState struct {
	font    *Font
	layout  Layout
	dir     PrintDirection
	unknown *rune
	trim    bool
	debug   *debug.Session

	rows [][]rune
	prev *Glyph
	// prevRune is the code point of prev, for tracing
	prevRune rune
	out      bytes.Buffer

	blocks int
	glyphs int
}

func acquireRenderState(f *Font, o *options) *renderState {
	st := renderStatePool.Get().(*renderState)
	st.font = f
	st.layout = f.FullLayout
	if o.layout != nil {
		st.layout = *o.layout
	}
	st.dir = f.Direction
	if o.direction != nil {
		st.dir = *o.direction
	}
	st.unknown = o.unknownRune
	st.trim = o.trimWhitespace
	st.debug = o.debug

	if cap(st.rows) < f.Height {
		st.rows = make([][]rune, f.Height)
	}
	st.rows = st.rows[:f.Height]
	for i := range st.rows {
		st.rows[i] = st.rows[i][:0]
	}
	return st
}

func releaseRenderState(st *renderState) {
	for i, row := range st.rows {
		if cap(row) > maxRetainRow {
			st.rows[i] = nil
		}
	}
	if st.out.Cap() > maxRetainOutputBuffer {
		st.out = bytes.Buffer{}
	}
	st.out.Reset()
	st.font, st.prev, st.unknown, st.debug = nil, nil, nil, nil
	st.blocks, st.glyphs = 0, 0
	renderStatePool.Put(st)
}

// Render converts text to a FIGlet banner using f.
//
// Spaces and tabs render the font's space glyph. Any other whitespace
// (a "\r\n" pair counts once) ends the current banner block. Control
// characters are skipped. Every other code point must have a glyph, or
// the render fails with ErrGlyphNotFound unless WithUnknownRune supplies a
// substitute. Blocks are joined by single newlines; the last block has no
// trailing newline.
func Render(text string, f *Font, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := RenderTo(&sb, text, f, opts...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderTo writes the banner for text to w. Nothing is written when the
// render fails.
func RenderTo(w io.Writer, text string, f *Font, opts ...Option) error {
	if f == nil {
		return ErrUnknownFont
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	st := acquireRenderState(f, o)
	defer releaseRenderState(st)

	var start time.Time
	if st.debug != nil {
		start = time.Now()
		st.debug.Emit("render", "Start", debug.RenderStartData{
			Text:      text,
			Height:    f.Height,
			Hardblank: f.Hardblank,
			Layout:    int(st.layout),
			Rules:     debug.FormatRules(int(st.layout)),
			Direction: int(st.dir),
		})
	}

	if err := st.run(text); err != nil {
		return err
	}

	if st.debug != nil {
		st.debug.Emit("render", "End", debug.RenderEndData{
			Blocks:     st.blocks,
			Glyphs:     st.glyphs,
			Bytes:      st.out.Len(),
			DurationUS: time.Since(start).Microseconds(),
		})
	}

	_, err := w.Write(st.out.Bytes())
	return err
}

// RenderBanner renders text and measures the result.
func RenderBanner(text string, f *Font, opts ...Option) (RenderResult, error) {
	s, err := Render(text, f, opts...)
	if err != nil {
		return RenderResult{}, err
	}
	return NewRenderResult(s), nil
}

func (st *renderState) run(text string) error {
	for i, r := range text {
		switch {
		case r == ' ' || r == '\t':
			if err := st.addRune(' '); err != nil {
				return err
			}
		case r == '\r' && strings.HasPrefix(text[i+1:], "\n"):
			// the following '\n' ends the line
		case unicode.IsSpace(r) && !isNoBreakSpace(r):
			st.flush(false)
		case r < 32 || r == 127:
			st.debug.Emit("render", "Skip", debug.SkipData{Rune: r, Reason: "control"})
		default:
			if err := st.addRune(r); err != nil {
				return err
			}
		}
	}
	st.flush(true)
	return nil
}

// isNoBreakSpace reports the spaces that must not end a line. They are
// looked up as glyphs.
func isNoBreakSpace(r rune) bool {
	return r == '\u00A0' || r == '\u2007' || r == '\u202F'
}

// lookup resolves r to a glyph, substituting the unknown rune when set.
func (st *renderState) lookup(r rune) (*Glyph, rune, error) {
	g, err := st.font.Glyph(r)
	if err == nil {
		return g, r, nil
	}
	if st.unknown == nil {
		return nil, r, err
	}
	sub := *st.unknown
	g, subErr := st.font.Glyph(sub)
	if subErr != nil {
		// report the code point from the text, not the substitute
		return nil, r, err
	}
	st.debug.Emit("render", "Skip", debug.SkipData{Rune: r, Reason: "substituted " + describeRune(sub)})
	return g, sub, nil
}

func (st *renderState) addRune(r rune) error {
	g, code, err := st.lookup(r)
	if err != nil {
		return err
	}
	st.addGlyph(g, code)
	return nil
}

// addGlyph composes g onto the current line. Left to right, g is appended
// after the buffer; right to left, it is prepended before it.
func (st *renderState) addGlyph(g *Glyph, code rune) {
	st.glyphs++
	defer func() { st.prev, st.prevRune = g, code }()

	if st.prev == nil {
		for row := range st.rows {
			st.rows[row] = append(st.rows[row], g.row(row)...)
		}
		return
	}

	left, right := st.prev, g
	if st.dir == RightToLeft {
		left, right = g, st.prev
	}
	kern, n := st.font.overlap(left, right, st.layout)
	st.debug.Emit("render", "Overlap", debug.OverlapData{
		Prev:    st.prevRune,
		Next:    code,
		Kerning: kern,
		Overlap: n,
	})

	w := g.Width()
	for row := range st.rows {
		buf := st.rows[row]
		gr := g.row(row)
		if st.dir == RightToLeft {
			for c := 0; c < n; c++ {
				buf[c] = st.merge(row, c, gr[w-n+c], buf[c], false)
			}
			grown := make([]rune, 0, len(buf)+w-n)
			grown = append(grown, gr[:w-n]...)
			st.rows[row] = append(grown, buf...)
			continue
		}
		base := len(buf) - n
		for c := 0; c < n; c++ {
			buf[base+c] = st.merge(row, base+c, buf[base+c], gr[c], true)
		}
		st.rows[row] = append(buf, gr[n:]...)
	}
}

// merge resolves one overlapped cell. When no rule applies, the incoming
// glyph's sub-character is kept.
func (st *renderState) merge(row, col int, left, right rune, incomingRight bool) rune {
	res, rule, ok := smushVisual(left, right, st.font.Hardblank, st.layout)
	if !ok {
		rule = "incoming"
		res = left
		if incomingRight {
			res = right
		}
	}
	if left != ' ' && right != ' ' {
		st.debug.Emit("render", "Smush", debug.SmushData{
			Row:    row,
			Col:    col,
			Left:   left,
			Right:  right,
			Result: res,
			Rule:   rule,
		})
	}
	return res
}

// flush writes the current line as one block and clears it. A final line
// without glyphs writes nothing; any other block ends with a newline.
func (st *renderState) flush(final bool) {
	if final && st.prev == nil {
		return
	}
	hb := st.font.Hardblank
	width := 0
	for row, buf := range st.rows {
		line := []rune(nil)
		for i, r := range buf {
			if r == hb {
				if line == nil {
					line = append([]rune(nil), buf...)
				}
				line[i] = ' '
			}
		}
		if line == nil {
			line = buf
		}
		if st.trim {
			line = []rune(strings.TrimRight(string(line), " "))
		}
		if len(line) > width {
			width = len(line)
		}
		if row > 0 {
			st.out.WriteByte('\n')
		}
		st.out.WriteString(string(line))
		st.rows[row] = buf[:0]
	}
	if !final {
		st.out.WriteByte('\n')
	}
	st.debug.Emit("render", "Flush", debug.FlushData{Block: st.blocks, Width: width, Final: final})
	st.blocks++
	st.prev = nil
}
