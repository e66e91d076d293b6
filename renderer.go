package qrtext

import (
	"context"
	"fmt"
	"image"
	"strings"
)

// Glyphs used by the renderers.
const (
	FullBlock      = '\u2588'
	UpperHalfBlock = '\u2580'
	LowerHalfBlock = '\u2584'
	Space          = ' '
)

// TargetCellWidth is the number of terminal columns FullRenderer spends on
// each matrix cell. Terminal cells are roughly twice as tall as they are
// wide, so two columns approximate a square module.
const TargetCellWidth = 2

// Style selects between the two rendering strategies.
type Style int

const (
	// StyleFull emits one line per matrix row.
	StyleFull Style = iota
	// StyleCompact emits one line per two matrix rows using half blocks.
	StyleCompact
)

func (s Style) String() string {
	switch s {
	case StyleFull:
		return "full"
	case StyleCompact:
		return "compact"
	}
	return fmt.Sprintf("Style(%d)", int(s))
}

// Renderer turns a BitMatrix into lines of terminal text.
//
// A Renderer holds no per-call state, so one Renderer may serve concurrent
// renders provided its LineSink tolerates concurrent writes.
type Renderer struct {
	// PointChar is the glyph for dark cells (light cells when
	// ReverseColor is set). Used by RenderFull only.
	PointChar rune
	// EmptyChar is the glyph for light cells (dark cells when
	// ReverseColor is set). Used by RenderFull only.
	EmptyChar rune
	// ReverseColor swaps PointChar and EmptyChar, for terminals with a
	// light foreground on a dark background.
	ReverseColor bool
	// Classifier measures glyph widths.
	Classifier Classifier

	sink LineSink
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a Renderer that delivers lines to sink.
// Default values: PointChar=U+2588, EmptyChar=' ', ReverseColor=false,
// Classifier=TableClassifier{}.
func NewRenderer(sink LineSink, opts ...RendererOption) *Renderer {
	r := &Renderer{
		PointChar:  FullBlock,
		EmptyChar:  Space,
		Classifier: TableClassifier{},
		sink:       sink,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithPointChar sets the glyph used for dark cells.
func WithPointChar(c rune) RendererOption {
	return func(r *Renderer) {
		r.PointChar = c
	}
}

// WithEmptyChar sets the glyph used for light cells.
func WithEmptyChar(c rune) RendererOption {
	return func(r *Renderer) {
		r.EmptyChar = c
	}
}

// WithReverseColor swaps the dark and light glyphs.
func WithReverseColor(reverse bool) RendererOption {
	return func(r *Renderer) {
		r.ReverseColor = reverse
	}
}

// WithClassifier sets the Classifier used to measure glyphs. A nil
// classifier restores the default table.
func WithClassifier(c Classifier) RendererOption {
	return func(r *Renderer) {
		if c == nil {
			c = TableClassifier{}
		}
		r.Classifier = c
	}
}

// Render dispatches to RenderFull or RenderCompact.
func (r *Renderer) Render(ctx context.Context, m *BitMatrix, style Style) error {
	switch style {
	case StyleFull:
		return r.RenderFull(ctx, m)
	case StyleCompact:
		return r.RenderCompact(ctx, m)
	}
	return fmt.Errorf("qrtext: unknown style %v", style)
}

// RenderImage samples img with policy and renders the result.
func (r *Renderer) RenderImage(ctx context.Context, img image.Image, policy SamplePolicy, style Style) error {
	m, err := SampleImage(img, policy)
	if err != nil {
		return err
	}
	return r.Render(ctx, m, style)
}

// RenderFull emits one line per matrix row. Every cell is drawn as its
// glyph repeated until it spans TargetCellWidth columns, so a narrow glyph
// appears twice and a wide glyph once.
//
// Glyph widths are resolved before anything is written; an unmeasurable
// glyph fails the call without output. ctx is checked between rows.
func (r *Renderer) RenderFull(ctx context.Context, m *BitMatrix) error {
	if err := r.check(m); err != nil {
		return err
	}

	darkGlyph, lightGlyph := r.PointChar, r.EmptyChar
	if r.ReverseColor {
		darkGlyph, lightGlyph = lightGlyph, darkGlyph
	}
	dark, err := r.cellText(darkGlyph)
	if err != nil {
		return err
	}
	light, err := r.cellText(lightGlyph)
	if err != nil {
		return err
	}

	cellLen := max(len(dark), len(light))
	var sb strings.Builder
	for y := 0; y < m.height; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		sb.Reset()
		sb.Grow(m.width * cellLen)
		for x := 0; x < m.width; x++ {
			if m.At(x, y) {
				sb.WriteString(dark)
			} else {
				sb.WriteString(light)
			}
		}
		if err := r.sink.WriteLine(sb.String()); err != nil {
			return fmt.Errorf("qrtext: write row %d: %w", y, err)
		}
	}

	Logger().Debug("rendered matrix",
		"style", StyleFull.String(),
		"width", m.width,
		"height", m.height,
		"lines", m.height)
	return nil
}

// RenderCompact emits one line per pair of matrix rows, drawing each
// column pair as a full block, an upper or lower half block, or a space.
// When the height is odd the last row is emitted on its own, with dark
// cells drawn as upper half blocks. Glyph options are ignored.
func (r *Renderer) RenderCompact(ctx context.Context, m *BitMatrix) error {
	if err := r.check(m); err != nil {
		return err
	}

	// Every half block glyph is three bytes in UTF-8.
	lineLen := m.width * 3
	var sb strings.Builder
	lines := 0
	for y := 0; y < m.height; y += 2 {
		if err := ctx.Err(); err != nil {
			return err
		}
		sb.Reset()
		sb.Grow(lineLen)
		for x := 0; x < m.width; x++ {
			// At reports rows past the bottom edge as light.
			sb.WriteRune(halfBlock(m.At(x, y), m.At(x, y+1)))
		}
		if err := r.sink.WriteLine(sb.String()); err != nil {
			return fmt.Errorf("qrtext: write rows %d-%d: %w", y, min(y+1, m.height-1), err)
		}
		lines++
	}

	Logger().Debug("rendered matrix",
		"style", StyleCompact.String(),
		"width", m.width,
		"height", m.height,
		"lines", lines)
	return nil
}

// halfBlock picks the glyph for a vertically stacked pair of cells.
func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return FullBlock
	case top:
		return UpperHalfBlock
	case bottom:
		return LowerHalfBlock
	default:
		return Space
	}
}

// cellText returns glyph repeated until it covers TargetCellWidth columns.
func (r *Renderer) cellText(glyph rune) (string, error) {
	w, err := r.classifier().WidthOf(glyph)
	if err != nil {
		return "", err
	}
	if w <= 0 {
		return "", &ZeroWidthGlyphError{Glyph: glyph}
	}
	var sb strings.Builder
	for printed := 0; printed < TargetCellWidth; printed += w {
		sb.WriteRune(glyph)
	}
	return sb.String(), nil
}

func (r *Renderer) check(m *BitMatrix) error {
	if m == nil {
		return ErrNilMatrix
	}
	if r.sink == nil {
		return ErrNilSink
	}
	return nil
}

func (r *Renderer) classifier() Classifier {
	if r.Classifier == nil {
		return TableClassifier{}
	}
	return r.Classifier
}
