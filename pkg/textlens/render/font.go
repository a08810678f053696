package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font/opentype"
	plotfont "gonum.org/v1/plot/font"

	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// Font is a parsed TrueType font usable by every renderer in this package.
// Chinese text needs a CJK font; the built-in chart fonts have no Han glyphs.
type Font struct {
	Path string

	tt *truetype.Font
	ot *opentype.Font
}

// LoadFont reads and parses the font at path. A missing or unreadable font
// is reported as ErrMissingFontResource.
func LoadFont(path string) (*Font, error) {
	if path == "" {
		return nil, fmt.Errorf("font path is empty: %w", internalerr.ErrMissingFontResource)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("font %s: %w", path, internalerr.ErrMissingFontResource)
		}
		return nil, fmt.Errorf("read font %s: %v: %w", path, err, internalerr.ErrMissingFontResource)
	}
	return ParseFont(path, data)
}

// ParseFont parses font bytes. path only names the font.
func ParseFont(path string, data []byte) (*Font, error) {
	tt, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %v: %w", path, err, internalerr.ErrMissingFontResource)
	}
	ot, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %v: %w", path, err, internalerr.ErrMissingFontResource)
	}
	return &Font{Path: path, tt: tt, ot: ot}, nil
}

// plotFont registers the font with the plot font cache once and returns
// its descriptor.
func (f *Font) plotFont() plotfont.Font {
	fnt := plotfont.Font{Typeface: plotfont.Typeface("textlens:" + filepath.Base(f.Path))}
	if !plotfont.DefaultCache.Has(fnt) {
		plotfont.DefaultCache.Add(plotfont.Collection{{Font: fnt, Face: f.ot}})
	}
	return fnt
}
