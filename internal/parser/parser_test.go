package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ryanlewis/figfont/internal/common"
)

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Header
	}{
		{
			name:  "full_standard_header",
			input: "flf2a$ 6 5 16 15 11 0 24463 229",
			want: Header{
				Hardblank: '$', Height: 6, Baseline: 5, MaxLength: 16,
				OldLayout: 15, CommentLines: 11, Direction: 0, FullLayout: 24463, CodeTagCount: 229,
				HasHeight: true, HasOldLayout: true, HasDirection: true, HasFullLayout: true,
			},
		},
		{
			name:  "magic_only",
			input: "flf2a#",
			want:  Header{Hardblank: '#'},
		},
		{
			name:  "stops_at_first_absent_field",
			input: "flf2a$ 2 1 10 -1",
			want: Header{
				Hardblank: '$', Height: 2, Baseline: 1, MaxLength: 10, OldLayout: -1,
				HasHeight: true, HasOldLayout: true,
			},
		},
		{
			name:  "c_style_numbers",
			input: "flf2a$ 0x4 03 #10 -0x1 0 1 0200",
			want: Header{
				Hardblank: '$', Height: 4, Baseline: 3, MaxLength: 16, OldLayout: -1,
				Direction: 1, FullLayout: 128,
				HasHeight: true, HasOldLayout: true, HasDirection: true, HasFullLayout: true,
			},
		},
		{
			name:  "tabs_between_fields",
			input: "flf2a§\t3\t2  8 0",
			want: Header{
				Hardblank: '§', Height: 3, Baseline: 2, MaxLength: 8,
				HasHeight: true, HasOldLayout: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHeader(tt.input)
			if err != nil {
				t.Fatalf("ParseHeader(%q) error = %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseHeader(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseHeaderErrors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		errContains string
	}{
		{"bad_magic", "flf1a$ 2 1 10 0 0", "magic"},
		{"empty_line", "", "magic"},
		{"magic_not_first", "x flf2a$ 2", "magic"},
		{"bad_height", "flf2a$ two 1 10 0 0", "height"},
		{"zero_height", "flf2a$ 0 1 10 0 0", "positive"},
		{"bad_octal", "flf2a$ 2 08 10 0 0", "baseline"},
		{"bad_layout", "flf2a$ 2 1 10 0x 0", "old layout"},
		{"negative_comments", "flf2a$ 2 1 10 0 -3", "non-negative"},
		{"bad_direction", "flf2a$ 2 1 10 0 0 2", "print direction"},
		{"bad_full_layout", "flf2a$ 2 1 10 0 0 0 zz", "full layout"},
		{"bad_codetag_count", "flf2a$ 2 1 10 0 0 0 0 1_0", "code tag count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.input)
			if err == nil {
				t.Fatalf("ParseHeader(%q) succeeded, want error", tt.input)
			}
			if !errors.Is(err, common.ErrMalformedHeader) {
				t.Errorf("error %v is not ErrMalformedHeader", err)
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error %q does not mention %q", err, tt.errContains)
			}
		})
	}
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"-1", -1, false},
		{"+7", 7, false},
		{"0x1F", 31, false},
		{"0X1f", 31, false},
		{"#ff", 255, false},
		{"017", 15, false},
		{"-017", -15, false},
		{"00", 0, false},
		{"2147483647", 2147483647, false},
		{"-2147483648", -2147483648, false},
		{"2147483648", 0, true},
		{"", 0, true},
		{"-", 0, true},
		{"0x", 0, true},
		{"09", 0, true},
		{"--1", 0, true},
		{"0x-1", 0, true},
		{"1_000", 0, true},
		{"abc", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseInt(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseInt(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseCodeTag(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"196", 196, false},
		{"0x0102  LATIN CAPITAL LETTER A WITH BREVE", 0x0102, false},
		{"  0400 octal with indent", 0400, false},
		{"-2 non-unicode", -2, false},
		{"", 0, true},
		{"   ", 0, true},
		{"U+0102", 0, true},
		{"0x110000", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseCodeTag(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCodeTag(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if tt.wantErr && !errors.Is(err, common.ErrMalformedCodeTag) {
			t.Errorf("ParseCodeTag(%q) error %v is not ErrMalformedCodeTag", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseCodeTag(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestStripEndMarks(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"abc@", "abc", true},
		{"abc@@", "abc", true},
		{"abc@@@", "abc", true},
		{"  |#", "  |", true},
		{"abc@  \t", "abc", true},
		{"abc@\r", "abc", true},
		{"@@", "", true},
		{"$$@", "$$", true},
		{"世界界", "世", true},
		{"ab\xff\xff", "ab", true},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		got, ok := StripEndMarks(tt.in)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("StripEndMarks(%q) = %q, %v; want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseMandatoryGlyphs(t *testing.T) {
	src := fontStream(t, "flf2a$ 2 1 10 0 2\ncomment one\ncomment two", 2, "")
	b := newRecordingBuilder()
	if err := Parse(strings.NewReader(src), b, nil); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if diff := cmp.Diff([]string{"comment one", "comment two"}, b.comments); diff != "" {
		t.Errorf("comments mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(mandatoryCodes(), b.order); diff != "" {
		t.Errorf("glyph order mismatch (-want +got):\n%s", diff)
	}
	if got := b.glyphs['A']; got != "AA" {
		t.Errorf("glyph 'A' = %q, want %q", got, "AA")
	}
	if got := b.glyphs[223]; got != "xx" {
		t.Errorf("glyph 223 = %q, want %q", got, "xx")
	}
	if b.header.Height != 2 || b.header.Hardblank != '$' {
		t.Errorf("header = %+v", b.header)
	}
}

func TestParseCodeTags(t *testing.T) {
	extra := "0x0102 A WITH BREVE\n" + glyphBlock("ab", "cd") +
		"\n" + // blank separator line
		"-5 not unicode\n" + glyphBlock("zz", "zz") +
		"0400\n" + glyphBlock("ef", "gh")
	src := fontStream(t, "flf2a$ 2 1 10 0 0", 2, extra)
	b := newRecordingBuilder()
	if err := Parse(strings.NewReader(src), b, nil); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := b.glyphs[0x0102]; got != "abcd" {
		t.Errorf("glyph 0x0102 = %q, want %q", got, "abcd")
	}
	if got := b.glyphs[0400]; got != "efgh" {
		t.Errorf("glyph 0400 = %q, want %q", got, "efgh")
	}
	if _, ok := b.glyphs[-5]; ok {
		t.Error("negative code tag should not be bound")
	}
	if len(b.order) != common.MandatoryCount+2 {
		t.Errorf("bound %d glyphs, want %d", len(b.order), common.MandatoryCount+2)
	}
}

func TestParseCRLFAndBOM(t *testing.T) {
	src := fontStream(t, "\uFEFFflf2a$ 1 1 10 0 1\nwindows comment", 1, "")
	src = strings.ReplaceAll(src, "\n", "\r\n")
	b := newRecordingBuilder()
	if err := Parse(strings.NewReader(src), b, nil); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if b.header.Hardblank != '$' {
		t.Errorf("hardblank = %q, want '$'", b.header.Hardblank)
	}
	if got := b.comments[0]; got != "windows comment" {
		t.Errorf("comment = %q", got)
	}
	if got := b.glyphs['~']; got != "~" {
		t.Errorf("glyph '~' = %q, want %q", got, "~")
	}
}

func TestParseErrors(t *testing.T) {
	full := fontStream(t, "flf2a$ 2 1 10 0 0", 2, "")
	lines := strings.SplitAfter(full, "\n")

	tests := []struct {
		name    string
		input   string
		failOn  rune
		wantErr error
		stage   string
	}{
		{
			name:    "empty_stream",
			input:   "",
			failOn:  -1,
			wantErr: common.ErrTruncatedFont,
			stage:   "header",
		},
		{
			name:    "missing_comments",
			input:   "flf2a$ 2 1 10 0 3\nonly one\n",
			failOn:  -1,
			wantErr: common.ErrTruncatedFont,
			stage:   "comments",
		},
		{
			name:    "missing_tilde",
			input:   strings.Join(lines[:1+94*2], ""),
			failOn:  -1,
			wantErr: common.ErrTruncatedFont,
			stage:   "glyph 126",
		},
		{
			name:    "half_a_glyph",
			input:   strings.Join(lines[:len(lines)-2], ""),
			failOn:  -1,
			wantErr: common.ErrTruncatedFont,
			stage:   "glyph 223",
		},
		{
			name:    "bad_code_tag",
			input:   full + "U+0102\n" + glyphBlock("ab", "cd"),
			failOn:  -1,
			wantErr: common.ErrMalformedCodeTag,
			stage:   "code tag",
		},
		{
			name:    "code_tag_without_glyph",
			input:   full + "300\n" + glyphBlock("ab"),
			failOn:  -1,
			wantErr: common.ErrTruncatedFont,
			stage:   "glyph for code tag",
		},
		{
			name:    "ragged_glyph",
			input:   "flf2a$ 2 1 10 0 0\nab@\nabc@@\n",
			failOn:  -1,
			wantErr: common.ErrMalformedGlyph,
			stage:   "glyph 32",
		},
		{
			name:    "blank_glyph_line",
			input:   "flf2a$ 2 1 10 0 0\n   \nab@@\n",
			failOn:  -1,
			wantErr: common.ErrMalformedGlyph,
			stage:   "glyph 32",
		},
		{
			name:    "builder_rejects",
			input:   full,
			failOn:  'Q',
			wantErr: common.ErrMalformedGlyph,
			stage:   "glyph 81",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newRecordingBuilder()
			b.failOn = tt.failOn
			err := Parse(strings.NewReader(tt.input), b, nil)
			if err == nil {
				t.Fatal("Parse() succeeded, want error")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.HasPrefix(err.Error(), tt.stage) {
				t.Errorf("Parse() error %q does not start with stage %q", err, tt.stage)
			}
		})
	}
}

func TestParseHugeCommentCount(t *testing.T) {
	b := newRecordingBuilder()
	err := Parse(strings.NewReader("flf2a$ 1 1 1 0 2147483647\nonly one\n"), b, nil)
	if !errors.Is(err, common.ErrTruncatedFont) {
		t.Fatalf("Parse() error = %v, want ErrTruncatedFont", err)
	}
	if !strings.HasPrefix(err.Error(), "comments") {
		t.Errorf("Parse() error %q does not start with stage %q", err, "comments")
	}
}

func TestParseTruncatedMandatoryGlyphs(t *testing.T) {
	full := fontStream(t, "flf2a$ 2 1 10 0 0", 2, "")
	lines := strings.SplitAfter(full, "\n")

	tests := []struct {
		name  string
		input string
	}{
		{"header_only", "flf2a$ 2 1 10 0 0\n"},
		{"missing_tilde", strings.Join(lines[:1+94*2], "")},
		{"missing_last_deutsch", strings.Join(lines[:len(lines)-3], "")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Parse(strings.NewReader(tt.input), newRecordingBuilder(), nil)
			if !errors.Is(err, common.ErrIncompleteFont) {
				t.Errorf("Parse() error = %v, want ErrIncompleteFont", err)
			}
			if !errors.Is(err, common.ErrTruncatedFont) {
				t.Errorf("Parse() error = %v, want ErrTruncatedFont", err)
			}
		})
	}

	// running out inside the code-tag section is truncation only
	err := Parse(strings.NewReader(full+"300\n"+glyphBlock("ab")), newRecordingBuilder(), nil)
	if errors.Is(err, common.ErrIncompleteFont) {
		t.Errorf("Parse() error = %v, should not be ErrIncompleteFont", err)
	}
}
