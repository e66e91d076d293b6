package qrtext

import (
	"fmt"
	"image"
	"image/color"

	"github.com/wbrown/qrtext/imageutil"
)

const (
	// OpaqueBlack is the only packed ARGB value SamplePacked treats as dark.
	OpaqueBlack uint32 = 0xFF000000

	// DefaultBlueThreshold is the highest blue channel value SampleBlue
	// still treats as dark.
	DefaultBlueThreshold uint8 = 180

	// DefaultLuminanceThreshold is the highest luma SampleLuminance still
	// treats as dark.
	DefaultLuminanceThreshold uint8 = 127
)

// PixelSource is a rectangular grid of pixels borrowed for sampling.
type PixelSource interface {
	Width() int
	Height() int
}

// PackedSource exposes pixels as packed 0xAARRGGBB values.
type PackedSource interface {
	PixelSource
	ARGBAt(x, y int) uint32
}

// RGBSource exposes pixels as 8-bit RGB triples. *imageutil.Image
// implements it.
type RGBSource interface {
	PixelSource
	GetRGB(x, y int) imageutil.RGB
}

// PackedImage adapts an image.Image to PackedSource. Coordinates are
// relative to the image bounds.
type PackedImage struct {
	img    image.Image
	bounds image.Rectangle
}

// NewPackedImage wraps img.
func NewPackedImage(img image.Image) PackedImage {
	return PackedImage{img: img, bounds: img.Bounds()}
}

// Width returns the image width.
func (p PackedImage) Width() int { return p.bounds.Dx() }

// Height returns the image height.
func (p PackedImage) Height() int { return p.bounds.Dy() }

// ARGBAt returns the non-premultiplied colour at (x, y) packed as
// 0xAARRGGBB.
func (p PackedImage) ARGBAt(x, y int) uint32 {
	c := color.NRGBAModel.Convert(p.img.At(p.bounds.Min.X+x, p.bounds.Min.Y+y)).(color.NRGBA)
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// SamplePacked marks a cell dark iff its pixel is exactly OpaqueBlack.
// This suits 1-bit barcode renderings, where every module is either pure
// black or pure white.
func SamplePacked(src PackedSource) (*BitMatrix, error) {
	m, err := matrixFor(src)
	if err != nil {
		return nil, err
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.set(x, y, src.ARGBAt(x, y) == OpaqueBlack)
		}
	}
	return m, nil
}

// SampleBlue marks a cell dark iff its blue channel is at most threshold.
// Use it for anti-aliased or lossy sources where exact black is rare.
func SampleBlue(src RGBSource, threshold uint8) (*BitMatrix, error) {
	m, err := matrixFor(src)
	if err != nil {
		return nil, err
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.set(x, y, src.GetRGB(x, y).B <= threshold)
		}
	}
	return m, nil
}

// SampleLuminance marks a cell dark iff its BT.601 luma is at most
// threshold. Unlike SampleBlue it is not fooled by saturated yellow or
// red modules.
func SampleLuminance(img *imageutil.Image, threshold uint8) (*BitMatrix, error) {
	gray := imageutil.ToGrayscale(img)
	m, err := matrixFor(gray)
	if err != nil {
		return nil, err
	}
	for y := 0; y < m.height; y++ {
		for x := 0; x < m.width; x++ {
			m.set(x, y, gray.GetGray(x, y) <= threshold)
		}
	}
	return m, nil
}

// SampleMode selects the dark/light rule used by SampleImage.
type SampleMode int

const (
	// ExactBlack uses SamplePacked.
	ExactBlack SampleMode = iota
	// BlueThreshold uses SampleBlue.
	BlueThreshold
	// Luminance uses SampleLuminance.
	Luminance
)

func (m SampleMode) String() string {
	switch m {
	case ExactBlack:
		return "exact"
	case BlueThreshold:
		return "blue"
	case Luminance:
		return "luma"
	}
	return fmt.Sprintf("SampleMode(%d)", int(m))
}

// ParseSampleMode is the inverse of SampleMode.String.
func ParseSampleMode(s string) (SampleMode, error) {
	for _, m := range []SampleMode{ExactBlack, BlueThreshold, Luminance} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSampleMode, s)
}

// SamplePolicy pairs a SampleMode with its threshold. Threshold is ignored
// by ExactBlack.
type SamplePolicy struct {
	Mode      SampleMode
	Threshold uint8
}

// DefaultSamplePolicy returns the exact-black policy.
func DefaultSamplePolicy() SamplePolicy {
	return SamplePolicy{Mode: ExactBlack}
}

// SampleImage converts img to a BitMatrix using policy.
func SampleImage(img image.Image, policy SamplePolicy) (*BitMatrix, error) {
	var (
		m   *BitMatrix
		err error
	)
	switch policy.Mode {
	case ExactBlack:
		m, err = SamplePacked(NewPackedImage(img))
	case BlueThreshold:
		m, err = SampleBlue(imageutil.FromImage(img), policy.Threshold)
	case Luminance:
		m, err = SampleLuminance(imageutil.FromImage(img), policy.Threshold)
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownSampleMode, policy.Mode)
	}
	if err != nil {
		return nil, err
	}
	Logger().Debug("sampled image",
		"mode", policy.Mode.String(),
		"width", m.Width(),
		"height", m.Height(),
		"dark", m.DarkCount())
	return m, nil
}

func matrixFor(src PixelSource) (*BitMatrix, error) {
	return newBitMatrix(src.Width(), src.Height())
}
