// Command figfont renders text as a FIGlet banner.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/ryanlewis/figfont"
	"github.com/ryanlewis/figfont/banner"
	"github.com/ryanlewis/figfont/debug"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type flags struct {
	fontPath       string
	configPath     string
	unknownRune    string
	layout         string
	showVersion    bool
	showHelp       bool
	trimWhitespace bool
	noNormalize    bool
	fullWidth      bool
	kernMode       bool
	smushMode      bool
	rtl            bool
	ltr            bool
	debugMode      bool
	debugFile      string
	debugPretty    bool
}

func newFlagSet(f *flags, out io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("figfont", pflag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVarP(&f.fontPath, "font", "f", "standard", "Path to FIGfont file or font name")
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to a YAML banner config")
	fs.StringVarP(&f.unknownRune, "unknown-rune", "u", "?", "Rune to replace unknown characters (empty to fail instead)")
	fs.StringVarP(&f.layout, "layout", "l", "", "Full layout bitmask, e.g. 64, 0x8F or 0217")
	fs.BoolVarP(&f.showVersion, "version", "v", false, "Show version information")
	fs.BoolVarP(&f.showHelp, "help", "h", false, "Show help message")
	fs.BoolVar(&f.trimWhitespace, "trim-whitespace", false, "Trim trailing whitespace from each line")
	fs.BoolVar(&f.noNormalize, "no-normalize", false, "Render the text without NFC normalization")
	fs.BoolVarP(&f.fullWidth, "full-width", "W", false, "Use full-width mode (no kerning or smushing)")
	fs.BoolVarP(&f.kernMode, "kern", "k", false, "Use kerning mode (characters touch but don't overlap)")
	fs.BoolVarP(&f.smushMode, "smush", "s", false, "Use smushing mode with the font's rules")
	fs.BoolVarP(&f.rtl, "rtl", "R", false, "Print right to left")
	fs.BoolVarP(&f.ltr, "ltr", "L", false, "Print left to right")
	fs.BoolVar(&f.debugMode, "debug", false, "Enable debug mode (outputs to stderr)")
	fs.StringVar(&f.debugFile, "debug-file", "", "Write debug output to file instead of stderr")
	fs.BoolVar(&f.debugPretty, "debug-pretty", false, "Use pretty format for debug output (default: JSON, or pretty on a terminal)")
	return fs
}

func run(args []string, stdout, stderr io.Writer) int {
	var f flags
	fs := newFlagSet(&f, stderr)
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	if f.showHelp {
		printHelp(stdout, fs)
		return 0
	}
	if f.showVersion {
		fmt.Fprintf(stdout, "figfont version %s (commit: %s, built: %s)\n", version, commit, date)
		return 0
	}

	cfg, err := buildConfig(&f, fs)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if fs.NArg() == 0 && f.configPath == "" {
		fmt.Fprintln(stderr, "Error: no text provided")
		printHelp(stderr, fs)
		return 1
	}

	session, closeDebug, err := openDebug(&f, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating debug file: %v\n", err)
		return 1
	}
	defer closeDebug()

	font, err := figfont.LoadFont(cfg.Font, figfont.WithLoadDebug(session))
	if err != nil {
		fmt.Fprintf(stderr, "Error loading font: %v\n", err)
		return 1
	}
	if f.smushMode && cfg.Layout == nil {
		l := banner.LayoutValue(font.FullLayout.Rules() | figfont.HorizontalSmushing)
		cfg.Layout = &l
	}

	b := banner.New(cfg)
	b.Load = func(string) (*figfont.Font, error) { return font, nil }
	if session != nil {
		b.Options = append(b.Options, figfont.WithDebug(session))
	}
	res, err := b.Show(stdout)
	if err != nil {
		fmt.Fprintf(stderr, "Error rendering text: %v\n", err)
		return 1
	}

	if cols, ok := terminalWidth(stdout); ok && res.Width > cols {
		fmt.Fprintf(stderr, "Warning: banner is %d columns wide, terminal has %d\n", res.Width, cols)
	}
	return 0
}

// buildConfig starts from the config file, if any, and applies the flags
// the user set explicitly.
func buildConfig(f *flags, fs *pflag.FlagSet) (banner.Config, error) {
	cfg := banner.DefaultConfig()
	if f.configPath != "" {
		var err error
		if cfg, err = banner.LoadConfigFile(f.configPath); err != nil {
			return cfg, err
		}
	}

	if fs.NArg() > 0 {
		cfg.Text = strings.Join(fs.Args(), " ")
	}
	if fs.Changed("font") || cfg.Font == "" {
		cfg.Font = resolveFontPath(f.fontPath)
	}
	if fs.Changed("unknown-rune") || f.configPath == "" {
		cfg.UnknownRune = ""
		if f.unknownRune != "" {
			r, err := parseUnknownRune(f.unknownRune)
			if err != nil {
				return cfg, fmt.Errorf("parsing unknown rune: %w", err)
			}
			cfg.UnknownRune = string(r)
		}
	}
	if f.trimWhitespace {
		cfg.TrimWhitespace = true
	}
	if f.noNormalize {
		cfg.Normalize = false
	}

	switch {
	case f.rtl && f.ltr:
		return cfg, errors.New("--rtl and --ltr are mutually exclusive")
	case f.rtl:
		cfg.Direction = figfont.RightToLeft.String()
	case f.ltr:
		cfg.Direction = figfont.LeftToRight.String()
	}

	modes := 0
	for _, set := range []bool{f.fullWidth, f.kernMode, f.smushMode, f.layout != ""} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return cfg, errors.New("--full-width, --kern, --smush and --layout are mutually exclusive")
	}
	var layout *banner.LayoutValue
	switch {
	case f.fullWidth:
		l := banner.LayoutValue(figfont.FullWidth)
		layout = &l
	case f.kernMode:
		l := banner.LayoutValue(figfont.HorizontalFitting)
		layout = &l
	case f.smushMode:
		// resolved against the font's rules once it is loaded
		cfg.Layout = nil
	case f.layout != "":
		parsed, err := figfont.ParseLayout(f.layout)
		if err != nil {
			return cfg, err
		}
		l := banner.LayoutValue(parsed)
		layout = &l
	}
	if layout != nil {
		cfg.Layout = layout
	}
	return cfg, cfg.Validate()
}

// openDebug creates the trace session requested by the flags or the
// environment. The returned func closes the session and any debug file.
func openDebug(f *flags, stderr io.Writer) (*debug.Session, func(), error) {
	debug.SetEnabled(f.debugMode || f.debugFile != "")
	debug.InitFromEnv()
	if !debug.Enabled() {
		return nil, func() {}, nil
	}

	out := stderr
	var file *os.File
	if f.debugFile != "" {
		var err error
		if file, err = os.Create(f.debugFile); err != nil {
			return nil, func() {}, err
		}
		out = file
	}

	pretty := f.debugPretty || debug.PrettyFromEnv()
	if !pretty && file == nil {
		_, pretty = terminalWidth(stderr)
	}
	var sink debug.Sink
	if pretty {
		sink = debug.NewPrettySink(out)
	} else {
		sink = debug.NewJSONSink(out)
	}

	session := debug.NewSession(sink)
	return session, func() {
		_ = session.Close()
		if file != nil {
			_ = file.Close()
		}
	}, nil
}

// terminalWidth reports the column count of w when it is a terminal.
func terminalWidth(w io.Writer) (int, bool) {
	file, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return 0, false
	}
	cols, _, err := term.GetSize(int(file.Fd()))
	if err != nil || cols <= 0 {
		return 0, false
	}
	return cols, true
}

// parseUnknownRune parses the unknown rune flag value which can be in various formats:
// - Literal character (e.g., "*", "?")
// - Escaped Unicode: "\uXXXX", "\UXXXXXXXX"
// - Unicode notation: "U+XXXX"
// - Decimal: "63"
// - Hexadecimal: "0x3F"
func parseUnknownRune(s string) (rune, error) {
	if s == "" {
		return 0, errors.New("unknown rune cannot be empty")
	}
	if utf8.RuneCountInString(s) == 1 {
		r, _ := utf8.DecodeRuneInString(s)
		return r, nil
	}

	var digits string
	base := 16
	switch {
	case strings.HasPrefix(s, `\u`) && len(s) == 6, strings.HasPrefix(s, `\U`) && len(s) == 10:
		digits = s[2:]
	case strings.HasPrefix(s, "U+"), strings.HasPrefix(s, "u+"),
		strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		digits = s[2:]
	case strings.HasPrefix(s, `\`):
		return 0, fmt.Errorf("invalid rune format: %s", s)
	default:
		digits, base = s, 10
	}

	code, err := strconv.ParseInt(digits, base, 32)
	if err != nil || !validRune(rune(code)) {
		return 0, fmt.Errorf("invalid rune format: %s", s)
	}
	return rune(code), nil
}

// validRune rejects negative values, values past utf8.MaxRune and UTF-16
// surrogates.
func validRune(r rune) bool {
	return r >= 0 && utf8.ValidRune(r)
}

// resolveFontPath resolves a font path from either a full path or just a font name
func resolveFontPath(fontPath string) string {
	if filepath.Ext(fontPath) == ".flf" {
		return fontPath
	}
	candidates := []string{
		fontPath,
		fontPath + ".flf",
		filepath.Join("fonts", fontPath+".flf"),
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c
		}
	}
	// the original name gives the clearest error later
	return fontPath
}

func printHelp(w io.Writer, fs *pflag.FlagSet) {
	fmt.Fprintln(w, "figfont - FIGlet banner generator")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  figfont [flags] <text>")
	fmt.Fprintln(w, "  figfont --config banner.yaml [flags] [text]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Unknown rune formats:")
	fmt.Fprintln(w, "  Literal: -u '*'")
	fmt.Fprintln(w, "  Unicode escape: -u '\\u2588'")
	fmt.Fprintln(w, "  Unicode notation: -u 'U+2588'")
	fmt.Fprintln(w, "  Decimal: -u '63'")
	fmt.Fprintln(w, "  Hexadecimal: -u '0x3F'")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Set %s=1 to trace, %s=1 for the pretty trace format.\n", debug.EnvVar, debug.PrettyEnvVar)
}
