package imageutil

import (
	"fmt"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationNearest keeps hard module edges intact. It is the
	// right choice for barcodes.
	InterpolationNearest Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationArea uses Catmull-Rom, for photographs of codes.
	InterpolationArea
)

func (interp Interpolation) scaler() draw.Scaler {
	switch interp {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationArea:
		return draw.CatmullRom
	default:
		return draw.NearestNeighbor
	}
}

// Resize scales img to width×height. The scalers blend in premultiplied
// space, so colour under fully transparent pixels is not kept; use
// DownscaleModules for module-aligned barcodes.
func Resize(img *Image, width, height int, interp Interpolation) *Image {
	dst := NewImage(width, height)
	interp.scaler().Scale(dst.NRGBA, dst.Rect, img.NRGBA, img.Rect, draw.Src, nil)
	return dst
}

// DownscaleModules shrinks a barcode rendered with module×module pixels
// per module so that every module becomes one pixel, taken from the
// module centre. Pixels are copied verbatim, alpha included. Trailing
// pixels that do not fill a whole module are dropped.
func DownscaleModules(img *Image, module int) (*Image, error) {
	if module < 1 {
		return nil, fmt.Errorf("imageutil: module size %d must be positive", module)
	}
	if module == 1 {
		return img, nil
	}
	width, height := img.Width()/module, img.Height()/module
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("imageutil: %dx%d image smaller than one %dpx module",
			img.Width(), img.Height(), module)
	}
	dst := NewImage(width, height)
	half := module / 2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dst.SetNRGBA(x, y, img.NRGBAAt(x*module+half, y*module+half))
		}
	}
	return dst, nil
}

// Pad surrounds img with a border of n opaque pixels in colour c, e.g. the
// quiet zone a barcode scanner needs around the symbol.
func Pad(img *Image, n int, c RGB) *Image {
	if n <= 0 {
		return img
	}
	dst := CreateSolidImage(img.Width()+2*n, img.Height()+2*n, c)
	for y := 0; y < img.Height(); y++ {
		src := img.Pix[img.PixOffset(0, y):img.PixOffset(img.Width(), y)]
		copy(dst.Pix[dst.PixOffset(n, n+y):], src)
	}
	return dst
}
