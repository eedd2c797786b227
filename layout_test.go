package figfont

import (
	"errors"
	"testing"
)

func TestLayoutBitValues(t *testing.T) {
	tests := []struct {
		name string
		bit  Layout
		want int
	}{
		{"HorizontalEqualChar", HorizontalEqualChar, 1},
		{"HorizontalUnderscore", HorizontalUnderscore, 2},
		{"HorizontalHierarchy", HorizontalHierarchy, 4},
		{"HorizontalOppositePair", HorizontalOppositePair, 8},
		{"HorizontalBigX", HorizontalBigX, 16},
		{"HorizontalHardblank", HorizontalHardblank, 32},
		{"HorizontalFitting", HorizontalFitting, 64},
		{"HorizontalSmushing", HorizontalSmushing, 128},
		{"VerticalEqualChar", VerticalEqualChar, 256},
		{"VerticalUnderscore", VerticalUnderscore, 512},
		{"VerticalHierarchy", VerticalHierarchy, 1024},
		{"VerticalHorizontalLine", VerticalHorizontalLine, 2048},
		{"VerticalVerticalLine", VerticalVerticalLine, 4096},
		{"VerticalFitting", VerticalFitting, 8192},
		{"VerticalSmushing", VerticalSmushing, 16384},
	}
	for _, tt := range tests {
		if int(tt.bit) != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.bit, tt.want)
		}
	}
}

func TestFullLayoutFromOldLayout(t *testing.T) {
	tests := []struct {
		old  int
		want Layout
	}{
		{-1, FullWidth},
		{0, HorizontalFitting},
		{1, HorizontalEqualChar},
		{24, HorizontalOppositePair | HorizontalBigX},
		{63, horizontalRules},
	}
	for _, tt := range tests {
		if got := FullLayoutFromOldLayout(tt.old); got != tt.want {
			t.Errorf("FullLayoutFromOldLayout(%d) = %v, want %v", tt.old, got, tt.want)
		}
	}
}

func TestLayoutMethods(t *testing.T) {
	l := HorizontalSmushing | HorizontalEqualChar | HorizontalBigX | VerticalFitting

	if !l.Has(HorizontalEqualChar | HorizontalBigX) {
		t.Error("Has should report both set bits")
	}
	if l.Has(HorizontalEqualChar | HorizontalUnderscore) {
		t.Error("Has should fail when one bit is missing")
	}
	if !l.Moves() {
		t.Error("smushing layout should move glyphs")
	}
	if FullWidth.Moves() || (horizontalRules | VerticalSmushing).Moves() {
		t.Error("layouts without fitting or smushing should not move glyphs")
	}
	if got := l.Rules(); got != HorizontalEqualChar|HorizontalBigX {
		t.Errorf("Rules() = %v", got)
	}
}

func TestLayoutString(t *testing.T) {
	tests := []struct {
		layout Layout
		want   string
	}{
		{FullWidth, "FullWidth"},
		{HorizontalFitting, "Fitting"},
		{HorizontalSmushing | HorizontalUnderscore | HorizontalHardblank, "Underscore|Hardblank|Smushing"},
		{VerticalVerticalLine, "VVerticalLine"},
	}
	for _, tt := range tests {
		if got := tt.layout.String(); got != tt.want {
			t.Errorf("Layout(%d).String() = %q, want %q", int(tt.layout), got, tt.want)
		}
	}
}

func TestPrintDirection(t *testing.T) {
	for v, want := range map[int]PrintDirection{0: LeftToRight, 1: RightToLeft} {
		got, err := PrintDirectionFromHeader(v)
		if err != nil || got != want {
			t.Errorf("PrintDirectionFromHeader(%d) = %v, %v; want %v", v, got, err, want)
		}
	}
	if _, err := PrintDirectionFromHeader(2); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("PrintDirectionFromHeader(2) error = %v, want ErrMalformedHeader", err)
	}

	parseTests := []struct {
		in      string
		want    PrintDirection
		wantErr bool
	}{
		{"", LeftToRight, false},
		{"ltr", LeftToRight, false},
		{"RTL", RightToLeft, false},
		{" right-to-left ", RightToLeft, false},
		{"up", LeftToRight, true},
	}
	for _, tt := range parseTests {
		got, err := ParsePrintDirection(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePrintDirection(%q) = %v, %v", tt.in, got, err)
		}
	}

	if LeftToRight.String() != "ltr" || RightToLeft.String() != "rtl" {
		t.Errorf("String() = %q, %q", LeftToRight, RightToLeft)
	}
}

func TestParseLayout(t *testing.T) {
	tests := []struct {
		in      string
		want    Layout
		wantErr bool
	}{
		{"0", FullWidth, false},
		{"64", HorizontalFitting, false},
		{"0x8F", HorizontalSmushing | 0x0F, false},
		{"#C0", HorizontalSmushing | HorizontalFitting, false},
		{" 0300 ", HorizontalSmushing | HorizontalFitting, false},
		{"-1", 0, true},
		{"0x8000", 0, true},
		{"smush", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseLayout(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseLayout(%q) = %v, %v; want %v, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
