package qrtext

import (
	"errors"
	"fmt"
)

// Sentinel errors for the qrtext package.
var (
	// ErrNilSink is returned when a Renderer has no LineSink to write to.
	ErrNilSink = errors.New("qrtext: nil line sink")

	// ErrNilMatrix is returned when a render is asked for a nil BitMatrix.
	ErrNilMatrix = errors.New("qrtext: nil bit matrix")

	// ErrUnknownSampleMode is returned for a SamplePolicy with an
	// unrecognized Mode.
	ErrUnknownSampleMode = errors.New("qrtext: unknown sample mode")

	// ErrEmptyCanvas is returned when there is nothing to paint: no lines,
	// or lines that occupy no columns.
	ErrEmptyCanvas = errors.New("qrtext: nothing to paint")
)

// InvalidDimensionError is returned when a pixel source or bit matrix
// reports a negative size, or rows of differing lengths.
type InvalidDimensionError struct {
	Width  int
	Height int
}

func (e *InvalidDimensionError) Error() string {
	return fmt.Sprintf("qrtext: invalid dimensions %dx%d", e.Width, e.Height)
}

// ZeroWidthGlyphError is returned when FullRenderer is configured with a
// glyph that occupies no columns and so can never fill a cell.
type ZeroWidthGlyphError struct {
	Glyph rune
}

func (e *ZeroWidthGlyphError) Error() string {
	return fmt.Sprintf("qrtext: glyph %U has zero display width", e.Glyph)
}
