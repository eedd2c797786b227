// Package banner renders a configured FIGlet banner once, typically at
// program start, and prints it with optional decorations.
package banner

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ryanlewis/figfont"
)

// FontLoader resolves a config's font path to a font.
type FontLoader func(path string) (*figfont.Font, error)

// Hook writes something for a rendered banner.
type Hook func(w io.Writer, res figfont.RenderResult) error

// ErrNoFont is returned when a config names no font.
var ErrNoFont = errors.New("banner config names no font")

// Render loads the configured font through load and renders the text once.
// A nil load reads the font file directly. Extra options are applied after
// the config's own.
func Render(cfg Config, load FontLoader, extra ...figfont.Option) (figfont.RenderResult, error) {
	if cfg.Font == "" {
		return figfont.RenderResult{}, ErrNoFont
	}
	opts, err := cfg.Options()
	if err != nil {
		return figfont.RenderResult{}, err
	}
	if load == nil {
		load = loadFile
	}
	font, err := load(cfg.Font)
	if err != nil {
		return figfont.RenderResult{}, fmt.Errorf("failed to load banner font: %w", err)
	}
	text := cfg.Text
	if cfg.Normalize {
		text = norm.NFC.String(text)
	}
	return figfont.RenderBanner(text, font, append(opts, extra...)...)
}

func loadFile(path string) (*figfont.Font, error) {
	return figfont.LoadFont(path)
}

// Print writes the banner text followed by a newline. An empty banner
// writes nothing.
func Print(w io.Writer, res figfont.RenderResult) error {
	if res.Text == "" {
		return nil
	}
	_, err := io.WriteString(w, res.Text+"\n")
	return err
}

// Banner shows a configured banner. Before, Print and After run in that
// order; nil hooks fall back to the config's decorations and to Print.
type Banner struct {
	Config Config
	Load   FontLoader
	// Options are passed to every render, after the config's own
	Options []figfont.Option
	Before  Hook
	Print   Hook
	After   Hook
}

// New returns a banner for cfg with the default hooks.
func New(cfg Config) *Banner {
	return &Banner{Config: cfg}
}

// Show renders the banner and writes it to w through the hooks.
func (b *Banner) Show(w io.Writer) (figfont.RenderResult, error) {
	res, err := Render(b.Config, b.Load, b.Options...)
	if err != nil {
		return res, err
	}

	before, show, after := b.Before, b.Print, b.After
	if before == nil {
		before = b.defaultBefore
	}
	if show == nil {
		show = Print
	}
	if after == nil {
		after = b.defaultAfter
	}
	for _, hook := range []Hook{before, show, after} {
		if err := hook(w, res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func (b *Banner) defaultBefore(w io.Writer, res figfont.RenderResult) error {
	if !b.Config.Rule {
		return nil
	}
	_, err := fmt.Fprintln(w, RuleLine(res.Width))
	return err
}

func (b *Banner) defaultAfter(w io.Writer, res figfont.RenderResult) error {
	var lines []string
	if b.Config.Rule {
		lines = append(lines, RuleLine(res.Width))
	}
	if !b.Config.Footer.IsZero() {
		lines = append(lines, FooterLine(res.Width, b.Config.Footer.Left, b.Config.Footer.Right))
	}
	if len(lines) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

// RuleLine returns a line of dashes width columns wide.
func RuleLine(width int) string {
	return strings.Repeat("-", max(width, 0))
}

// FooterLine places left and right at the two ends of a line width columns
// wide. When they do not fit, a single space separates them.
func FooterLine(width int, left, right string) string {
	if right == "" {
		return left
	}
	gap := width - figfont.DisplayWidth(left) - figfont.DisplayWidth(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
