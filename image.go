package qrtext

import (
	"fmt"

	"github.com/wbrown/qrtext/imageutil"
)

// MatrixImage paints m as an opaque image with each cell drawn as a
// scale×scale square, dark cells black and light cells white. Feeding the
// result through imageutil.DownscaleModules and SamplePacked yields m again.
func MatrixImage(m *BitMatrix, scale int) (*imageutil.Image, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if scale < 1 {
		return nil, fmt.Errorf("qrtext: preview scale %d must be positive", scale)
	}
	img := imageutil.NewImage(m.width, m.height)
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			c := imageutil.White
			if m.At(x, y) {
				c = imageutil.Black
			}
			img.SetRGB(x, y, c)
		}
	}
	if scale == 1 {
		return img, nil
	}
	return imageutil.Resize(img, m.width*scale, m.height*scale, imageutil.InterpolationNearest), nil
}

// SaveMatrixPNG writes MatrixImage(m, scale) to filename.
func SaveMatrixPNG(m *BitMatrix, filename string, scale int) error {
	img, err := MatrixImage(m, scale)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(img, filename)
}
