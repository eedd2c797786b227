// Package figfont renders text as FIGlet banners using FIGfont (flf2) fonts.
//
// A Font is loaded once with ParseFont, LoadFont or LoadFontFS and is then
// immutable and safe to share between goroutines. Render composes a banner
// glyph by glyph, fitting and smushing neighbours as the font's layout (or
// WithLayout) allows.
package figfont

import (
	"archive/zip"
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ryanlewis/figfont/debug"
	"github.com/ryanlewis/figfont/internal/parser"
)

// LoadOption configures font loading.
type LoadOption func(*loadOptions)

type loadOptions struct {
	debug *debug.Session
}

// WithLoadDebug traces parsing into session.
func WithLoadDebug(session *debug.Session) LoadOption {
	return func(o *loadOptions) {
		o.debug = session
	}
}

// zipMagic starts every ZIP local file header. FIGlet accepts fonts
// compressed into a ZIP archive and reads the archive's first entry.
const zipMagic = "PK\x03\x04"

// maxCompressedFontSize bounds how much of a ZIP-compressed font is read.
const maxCompressedFontSize = 16 << 20

// ParseFont reads a FIGfont from r. The stream may also be a ZIP archive
// whose first entry is the font. The reader is consumed but not closed.
//
// Example:
//
//	file, err := os.Open("standard.flf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer file.Close()
//
//	font, err := figfont.ParseFont(file)
//	if err != nil {
//	    log.Fatal(err)
//	}
func ParseFont(r io.Reader, opts ...LoadOption) (*Font, error) {
	if r == nil {
		return nil, errors.New("reader cannot be nil")
	}
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	br := bufio.NewReader(r)
	if magic, err := br.Peek(len(zipMagic)); err == nil && string(magic) == zipMagic {
		entry, err := openZipFont(br)
		if err != nil {
			return nil, err
		}
		defer entry.Close()
		return parseFont(entry, o)
	}
	return parseFont(br, o)
}

func parseFont(r io.Reader, o loadOptions) (*Font, error) {
	b := NewFontBuilder()
	if err := parser.Parse(r, parserSink{b: b}, o.debug); err != nil {
		return nil, err
	}
	return b.Build()
}

// openZipFont opens the first entry of a ZIP archive read from r.
func openZipFont(r io.Reader) (io.ReadCloser, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxCompressedFontSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read compressed font: %w", err)
	}
	if len(data) > maxCompressedFontSize {
		return nil, fmt.Errorf("compressed font exceeds %d bytes", maxCompressedFontSize)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid zip archive: %v", ErrMalformedHeader, err)
	}
	if len(zr.File) == 0 {
		return nil, fmt.Errorf("%w: empty zip archive", ErrMalformedHeader)
	}
	entry, err := zr.File[0].Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s in zip archive: %w", zr.File[0].Name, err)
	}
	return entry, nil
}

// ParseFontBytes parses a FIGfont held in memory.
func ParseFontBytes(data []byte, opts ...LoadOption) (*Font, error) {
	return ParseFont(bytes.NewReader(data), opts...)
}

// LoadFont loads a FIGfont file from the local filesystem. The font's Name
// is the file name without its extension.
func LoadFont(fontPath string, opts ...LoadOption) (*Font, error) {
	f, err := os.Open(fontPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer f.Close()

	font, err := ParseFont(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", fontPath, err)
	}
	base := filepath.Base(fontPath)
	font.Name = strings.TrimSuffix(base, filepath.Ext(base))
	return font, nil
}

// cleanFSPath validates and cleans a path for use with fs.FS.
// It ensures the path is valid according to fs.ValidPath rules and
// prevents directory traversal.
func cleanFSPath(p string) (string, error) {
	if p == "" {
		return "", errors.New("path cannot be empty")
	}
	// fs.FS disallows leading slash and uses '/' only
	if strings.HasPrefix(p, "/") {
		return "", errors.New("absolute paths not allowed")
	}
	if strings.ContainsRune(p, '\\') {
		return "", errors.New("backslashes not allowed in fs paths")
	}
	if !fs.ValidPath(p) {
		// rejects ".", ".." segments, empty elements, etc.
		return "", fmt.Errorf("invalid fs path: %s", p)
	}
	clean := path.Clean(p)
	if clean == "." || strings.HasPrefix(clean, "../") {
		return "", errors.New("path traversal not allowed")
	}
	return clean, nil
}

// LoadFontFS loads a FIGfont from fsys. Paths use slash separators and may
// not escape the filesystem root.
//
// Example with embed.FS:
//
//	//go:embed fonts/*.flf
//	var fonts embed.FS
//
//	font, err := figfont.LoadFontFS(fonts, "fonts/standard.flf")
func LoadFontFS(fsys fs.FS, fontPath string, opts ...LoadOption) (*Font, error) {
	if fsys == nil {
		return nil, errors.New("filesystem cannot be nil")
	}
	clean, err := cleanFSPath(fontPath)
	if err != nil {
		return nil, err
	}

	file, err := fsys.Open(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to open font file: %w", err)
	}
	defer file.Close()

	font, err := ParseFont(file, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font %s: %w", clean, err)
	}
	font.Name = strings.TrimSuffix(path.Base(clean), path.Ext(clean))
	return font, nil
}
