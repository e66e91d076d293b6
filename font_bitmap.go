package qrtext

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/qrtext/imageutil"
)

// DefaultFontSize is the point size used by NewDefaultLinePainter callers
// that have no preference.
const DefaultFontSize = 16.0

// LinePainter rasterizes rendered lines the way a terminal would show
// them: every rune starts on a column boundary and advances by its
// display width, so wide glyphs span two cells regardless of the font's
// own advance.
type LinePainter struct {
	Foreground color.Color
	Background color.Color

	font       *truetype.Font
	size       float64
	classifier Classifier
	cellWidth  int
	cellHeight int
	ascent     int
}

// NewLinePainter parses a TrueType font and sizes the terminal cell from
// its metrics. A nil classifier means TableClassifier.
func NewLinePainter(ttf []byte, size float64, c Classifier) (*LinePainter, error) {
	if size <= 0 {
		return nil, fmt.Errorf("qrtext: font size %v must be positive", size)
	}
	f, err := freetype.ParseFont(ttf)
	if err != nil {
		return nil, fmt.Errorf("qrtext: parse font: %w", err)
	}
	if c == nil {
		c = TableClassifier{}
	}

	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	defer face.Close()

	adv, ok := face.GlyphAdvance('M')
	if !ok {
		return nil, errors.New("qrtext: font has no glyph for 'M'")
	}
	metrics := face.Metrics()

	return &LinePainter{
		Foreground: color.Black,
		Background: color.White,
		font:       f,
		size:       size,
		classifier: c,
		cellWidth:  adv.Ceil(),
		cellHeight: (metrics.Ascent + metrics.Descent).Ceil(),
		ascent:     metrics.Ascent.Ceil(),
	}, nil
}

// NewDefaultLinePainter uses the embedded Go Mono face.
func NewDefaultLinePainter(size float64) (*LinePainter, error) {
	return NewLinePainter(gomono.TTF, size, nil)
}

// CellSize returns the pixel size of one terminal cell.
func (p *LinePainter) CellSize() (width, height int) {
	return p.cellWidth, p.cellHeight
}

// PaintLines draws lines onto a new image sized to the widest line. It
// returns ErrEmptyCanvas if that line has no width.
func (p *LinePainter) PaintLines(lines []string) (*image.RGBA, error) {
	cols := 0
	for _, line := range lines {
		w, err := textWidth(p.classifier, line)
		if err != nil {
			return nil, err
		}
		cols = max(cols, w)
	}
	if cols == 0 {
		return nil, ErrEmptyCanvas
	}

	img := image.NewRGBA(image.Rect(0, 0, cols*p.cellWidth, len(lines)*p.cellHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(p.Background), image.Point{}, draw.Src)

	ctx := freetype.NewContext()
	ctx.SetDPI(72)
	ctx.SetFont(p.font)
	ctx.SetFontSize(p.size)
	ctx.SetClip(img.Bounds())
	ctx.SetDst(img)
	ctx.SetSrc(image.NewUniform(p.Foreground))
	ctx.SetHinting(font.HintingFull)

	for row, line := range lines {
		col := 0
		baseline := row*p.cellHeight + p.ascent
		for _, r := range line {
			w, err := p.classifier.WidthOf(r)
			if err != nil {
				return nil, err
			}
			if r != Space {
				pt := freetype.Pt(col*p.cellWidth, baseline)
				if _, err := ctx.DrawString(string(r), pt); err != nil {
					return nil, fmt.Errorf("qrtext: draw %U: %w", r, err)
				}
			}
			col += w
		}
	}

	Logger().Debug("painted lines",
		"lines", len(lines),
		"columns", cols,
		"cell_width", p.cellWidth,
		"cell_height", p.cellHeight)
	return img, nil
}

// SaveLinesPNG paints lines and writes them to filename.
func (p *LinePainter) SaveLinesPNG(lines []string, filename string) error {
	img, err := p.PaintLines(lines)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(img, filename)
}
