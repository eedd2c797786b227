package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Sink is a destination for trace events.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes one JSON object per line.
type JSONSink struct {
	w   *bufio.Writer
	enc *json.Encoder
}

// NewJSONSink returns a JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	return &JSONSink{w: bw, enc: json.NewEncoder(bw)}
}

// Write encodes event as a single line.
func (s *JSONSink) Write(event Event) error {
	return s.enc.Encode(event)
}

// Flush writes buffered output.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the sink. The underlying writer stays open.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events for humans reading a terminal.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink returns a pretty sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{w: bufio.NewWriter(w)}
}

// Write formats event over one or more indented lines.
func (s *PrettySink) Write(event Event) error {
	fmt.Fprintf(s.w, "[%s] #%d %s/%s\n", event.SessionID, event.Seq, event.Phase, event.Event)

	switch d := event.Data.(type) {
	case HeaderData:
		fmt.Fprintf(s.w, "  hardblank: %s, height: %d, baseline: %d, max_length: %d\n",
			runeStr(d.Hardblank), d.Height, d.Baseline, d.MaxLength)
		fmt.Fprintf(s.w, "  old_layout: %d, full_layout: 0x%04X (%s), direction: %s\n",
			d.OldLayout, d.FullLayout, strings.Join(FormatRules(d.FullLayout), "|"), dirStr(d.Direction))
	case GlyphStatsData:
		fmt.Fprintf(s.w, "  mandatory: %d, code_tags: %d, lines: %d\n", d.Mandatory, d.CodeTags, d.Lines)
	case RenderStartData:
		fmt.Fprintf(s.w, "  text: %q\n", d.Text)
		fmt.Fprintf(s.w, "  height: %d, hardblank: %s, direction: %s\n", d.Height, runeStr(d.Hardblank), dirStr(d.Direction))
		fmt.Fprintf(s.w, "  layout: 0x%04X (%s)\n", d.Layout, strings.Join(d.Rules, "|"))
	case OverlapData:
		fmt.Fprintf(s.w, "  %s -> %s: kerning %d, overlap %d\n", runeStr(d.Prev), runeStr(d.Next), d.Kerning, d.Overlap)
	case SmushData:
		fmt.Fprintf(s.w, "  row %d col %d: %s + %s = %s (%s)\n",
			d.Row, d.Col, runeStr(d.Left), runeStr(d.Right), runeStr(d.Result), d.Rule)
	case SkipData:
		fmt.Fprintf(s.w, "  skipped %s: %s\n", runeStr(d.Rune), d.Reason)
	case FlushData:
		fmt.Fprintf(s.w, "  block %d, width %d, final %t\n", d.Block, d.Width, d.Final)
	case RenderEndData:
		fmt.Fprintf(s.w, "  blocks: %d, glyphs: %d, bytes: %d, took: %dus\n", d.Blocks, d.Glyphs, d.Bytes, d.DurationUS)
	case map[string]interface{}:
		for _, k := range sortedKeys(d) {
			fmt.Fprintf(s.w, "  %s: %v\n", k, d[k])
		}
	case map[string]int64:
		for k, v := range d {
			fmt.Fprintf(s.w, "  %s: %d\n", k, v)
		}
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}
	return nil
}

// Flush writes buffered output.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the sink. The underlying writer stays open.
func (s *PrettySink) Close() error {
	return s.Flush()
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// runeStr formats a rune as 'X' (0x58), or NUL for 0.
func runeStr(r rune) string {
	if r == 0 {
		return "NUL"
	}
	if r >= 32 && r < 127 {
		return fmt.Sprintf("'%c' (0x%02X)", r, r)
	}
	return fmt.Sprintf("U+%04X", r)
}

func dirStr(dir int) string {
	if dir == 0 {
		return "LTR"
	}
	return "RTL"
}
