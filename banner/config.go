package banner

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/ryanlewis/figfont"
)

// DefaultText is rendered when a config names no text.
const DefaultText = "figfont"

// Config describes one banner. It is usually read from YAML:
//
//	font: fonts/standard.flf
//	text: Hello
//	layout: 0x8F
//	direction: rtl
//	normalize: true
//	trim_whitespace: false
//	unknown_rune: "?"
//	rule: true
//	footer:
//	  left: " MyApp v1.2.3 "
//	  right: "https://example.com/"
type Config struct {
	// Font is the path of the FIGfont file
	Font string `yaml:"font"`
	// Text is the banner text; embedded newlines stack blocks
	Text string `yaml:"text"`
	// Layout overrides the font's full layout when set
	Layout *LayoutValue `yaml:"layout,omitempty"`
	// Direction overrides the font's print direction: "ltr" or "rtl"
	Direction string `yaml:"direction,omitempty"`
	// Normalize composes Text to NFC before rendering, so decomposed
	// accents find the font's precomposed glyphs
	Normalize bool `yaml:"normalize"`
	// TrimWhitespace drops trailing spaces from every line
	TrimWhitespace bool `yaml:"trim_whitespace"`
	// UnknownRune replaces characters the font lacks; empty fails instead
	UnknownRune string `yaml:"unknown_rune,omitempty"`
	// Rule draws a line of dashes as wide as the banner above and below it
	Rule bool `yaml:"rule"`
	// Footer is printed under the banner
	Footer Footer `yaml:"footer,omitempty"`
}

// Footer is a one-line caption: Left is flush left, Right flush right
// within the banner width.
type Footer struct {
	Left  string `yaml:"left,omitempty"`
	Right string `yaml:"right,omitempty"`
}

// IsZero reports whether the footer has no text.
func (f Footer) IsZero() bool {
	return f.Left == "" && f.Right == ""
}

// LayoutValue is a full-layout bitmask that also accepts the C-style
// notations used in font headers ("0x8F", "0217") when given as a string.
type LayoutValue int

// UnmarshalYAML accepts a YAML integer or a string in C notation.
func (l *LayoutValue) UnmarshalYAML(node *yaml.Node) error {
	var n int
	if err := node.Decode(&n); err == nil {
		*l = LayoutValue(n)
		return nil
	}
	var s string
	if err := node.Decode(&s); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	v, err := figfont.ParseLayout(s)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	*l = LayoutValue(v)
	return nil
}

// DefaultConfig returns the settings used for fields a config omits.
func DefaultConfig() Config {
	return Config{
		Text:      DefaultText,
		Normalize: true,
	}
}

// LoadConfig reads a YAML config from r on top of DefaultConfig. Unknown
// keys are rejected. An empty document yields the defaults.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse banner config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config file.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to open banner config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

// Validate checks the fields that can be checked without loading the font.
func (c Config) Validate() error {
	if _, err := figfont.ParsePrintDirection(c.Direction); err != nil {
		return fmt.Errorf("invalid banner config: %w", err)
	}
	if c.Layout != nil {
		if _, err := figfont.ParseLayout(strconv.Itoa(int(*c.Layout))); err != nil {
			return fmt.Errorf("invalid banner config: %w", err)
		}
	}
	if c.UnknownRune != "" && utf8.RuneCountInString(c.UnknownRune) != 1 {
		return fmt.Errorf("invalid banner config: unknown_rune must be a single character, got %q", c.UnknownRune)
	}
	return nil
}

// Options converts the config into render options.
func (c Config) Options() ([]figfont.Option, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	var opts []figfont.Option
	if c.Layout != nil {
		opts = append(opts, figfont.WithLayout(figfont.Layout(*c.Layout)))
	}
	if c.Direction != "" {
		dir, _ := figfont.ParsePrintDirection(c.Direction)
		opts = append(opts, figfont.WithPrintDirection(dir))
	}
	if c.UnknownRune != "" {
		r, _ := utf8.DecodeRuneInString(c.UnknownRune)
		opts = append(opts, figfont.WithUnknownRune(r))
	}
	if c.TrimWhitespace {
		opts = append(opts, figfont.WithTrimWhitespace(true))
	}
	return opts, nil
}
