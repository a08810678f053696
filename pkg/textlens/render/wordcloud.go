package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"

	"github.com/cognicore/textlens/pkg/textlens/analytics"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
)

// WordCloudRenderer turns a frequency list into an image file.
type WordCloudRenderer interface {
	RenderWordCloud(entries []analytics.Entry, path string) error
}

// Word cloud defaults.
const (
	DefaultCloudWidth    = 800
	DefaultCloudHeight   = 400
	DefaultCloudMaxWords = 200
)

// DefaultCloudColors is a dark-to-light sequential palette.
var DefaultCloudColors = []color.Color{
	color.RGBA{0x44, 0x01, 0x54, 0xff},
	color.RGBA{0x3b, 0x52, 0x8b, 0xff},
	color.RGBA{0x21, 0x90, 0x8d, 0xff},
	color.RGBA{0x5d, 0xc8, 0x63, 0xff},
	color.RGBA{0xb5, 0xa3, 0x00, 0xff},
}

// WordCloud lays words out on an Archimedean spiral from the canvas
// center, largest first. Placement is deterministic for a given input.
type WordCloud struct {
	Font       *Font
	Width      int
	Height     int
	MaxWords   int
	Background color.Color
	Colors     []color.Color

	// Font sizes in points for the least and most frequent word.
	MinFontSize float64
	MaxFontSize float64
}

// NewWordCloud returns a renderer with the default canvas settings.
func NewWordCloud(font *Font) *WordCloud {
	return &WordCloud{
		Font:        font,
		Width:       DefaultCloudWidth,
		Height:      DefaultCloudHeight,
		MaxWords:    DefaultCloudMaxWords,
		Background:  color.White,
		Colors:      DefaultCloudColors,
		MinFontSize: 10,
		MaxFontSize: 80,
	}
}

// RenderWordCloud draws entries and writes a PNG to path, replacing any
// existing file.
func (w *WordCloud) RenderWordCloud(entries []analytics.Entry, path string) error {
	img, err := w.Draw(entries)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("save word cloud %s: %w", path, err)
	}
	return nil
}

type box struct {
	x0, y0, x1, y1 float64
}

func (b box) overlaps(o box) bool {
	return b.x0 < o.x1 && o.x0 < b.x1 && b.y0 < o.y1 && o.y0 < b.y1
}

// Draw renders entries, which must be ranked by count descending.
func (w *WordCloud) Draw(entries []analytics.Entry) (image.Image, error) {
	if w.Font == nil {
		return nil, fmt.Errorf("word cloud: %w", internalerr.ErrMissingFontResource)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("word cloud: no words: %w", internalerr.ErrEmptyInputText)
	}
	if w.MaxWords > 0 && len(entries) > w.MaxWords {
		entries = entries[:w.MaxWords]
	}

	colors := w.Colors
	if len(colors) == 0 {
		colors = DefaultCloudColors
	}

	dc := gg.NewContext(w.Width, w.Height)
	dc.SetColor(w.Background)
	dc.Clear()

	maxCount := float64(entries[0].Count)
	var placed []box
	for i, e := range entries {
		size := w.fontSize(float64(e.Count), maxCount)
		for size >= w.MinFontSize {
			dc.SetFontFace(truetype.NewFace(w.Font.tt, &truetype.Options{Size: size}))
			tw, th := dc.MeasureString(e.Token)
			if b, ok := w.place(tw, th, placed); ok {
				placed = append(placed, b)
				dc.SetColor(colors[i%len(colors)])
				dc.DrawStringAnchored(e.Token, (b.x0+b.x1)/2, (b.y0+b.y1)/2, 0.5, 0.5)
				break
			}
			size *= 0.85
		}
	}
	return dc.Image(), nil
}

// fontSize scales with the square root of the relative frequency.
func (w *WordCloud) fontSize(count, maxCount float64) float64 {
	if maxCount <= 0 {
		return w.MinFontSize
	}
	size := w.MaxFontSize * math.Sqrt(count/maxCount)
	return math.Max(size, w.MinFontSize)
}

// place searches the spiral for a free spot of the given size.
func (w *WordCloud) place(tw, th float64, placed []box) (box, bool) {
	const pad = 2
	width, height := float64(w.Width), float64(w.Height)
	cx, cy := width/2, height/2
	aspect := width / height
	maxRadius := math.Hypot(width, height) / 2

	for step := 0; ; step++ {
		theta := float64(step) * 0.1
		r := 1.5 * theta
		if r > maxRadius {
			return box{}, false
		}
		x := cx + r*math.Cos(theta)*aspect
		y := cy + r*math.Sin(theta)
		b := box{x - tw/2 - pad, y - th/2 - pad, x + tw/2 + pad, y + th/2 + pad}
		if b.x0 < 0 || b.y0 < 0 || b.x1 > width || b.y1 > height {
			continue
		}
		free := true
		for _, p := range placed {
			if b.overlaps(p) {
				free = false
				break
			}
		}
		if free {
			return b, true
		}
	}
}
