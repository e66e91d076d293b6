package qrtext

import "fmt"

// MaxCodepoint is the first code point past the end of the width table.
// The table covers the Basic Multilingual Plane only.
const MaxCodepoint = 0x10000

// WidthSegment assigns a display width class to the half-open code point
// range [Start, End).
type WidthSegment struct {
	Start uint32
	End   uint32
	Class uint8
}

// CodepointOutOfRangeError is returned when a code point falls outside the
// range covered by the width table.
type CodepointOutOfRangeError struct {
	Codepoint rune
}

func (e *CodepointOutOfRangeError) Error() string {
	return fmt.Sprintf("qrtext: code point %U out of range", e.Codepoint)
}

// Classifier reports how many terminal columns a code point occupies.
type Classifier interface {
	WidthOf(r rune) (int, error)
}

// TableClassifier is the default Classifier, backed by the interval table.
// The zero value is ready to use and safe for concurrent use.
type TableClassifier struct{}

// WidthOf implements Classifier.
func (TableClassifier) WidthOf(r rune) (int, error) {
	return WidthOf(r)
}

// widthSegments is sorted by Start, gapless and covers [0, MaxCodepoint).
// The class 8 on U+0009 is carried over unchanged from the table this one
// was derived from; see TestWidthTableTabAnomaly.
var widthSegments = [...]WidthSegment{
	{0x0000, 0x0007, 1},
	{0x0007, 0x0009, 0},
	{0x0009, 0x000A, 8},
	{0x000A, 0x000B, 0},
	{0x000B, 0x000D, 1},
	{0x000D, 0x000E, 0},
	{0x000E, 0x00A2, 1},
	{0x00A2, 0x00A6, 2},
	{0x00A6, 0x00A7, 1},
	{0x00A7, 0x00A9, 2},
	{0x00A9, 0x00AF, 1},
	{0x00AF, 0x00B2, 2},
	{0x00B2, 0x00B4, 1},
	{0x00B4, 0x00B6, 2},
	{0x00B6, 0x00B7, 1},
	{0x00B7, 0x00B8, 2},
	{0x00B8, 0x00D7, 1},
	{0x00D7, 0x00D8, 2},
	{0x00D8, 0x00F7, 1},
	{0x00F7, 0x00F8, 2},
	{0x00F8, 0x01C1, 1},
	{0x01C1, 0x01C2, 2},
	{0x01C2, 0x02C7, 1},
	{0x02C7, 0x02C8, 2},
	{0x02C8, 0x02C9, 1},
	{0x02C9, 0x02CC, 2},
	{0x02CC, 0x02D9, 1},
	{0x02D9, 0x02DA, 2},
	{0x02DA, 0x0391, 1},
	{0x0391, 0x03A2, 2},
	{0x03A2, 0x03A3, 1},
	{0x03A3, 0x03AA, 2},
	{0x03AA, 0x03B1, 1},
	{0x03B1, 0x03C2, 2},
	{0x03C2, 0x03C3, 1},
	{0x03C3, 0x03CA, 2},
	{0x03CA, 0x0401, 1},
	{0x0401, 0x0402, 2},
	{0x0402, 0x0410, 1},
	{0x0410, 0x0450, 2},
	{0x0450, 0x0451, 1},
	{0x0451, 0x0452, 2},
	{0x0452, 0x2010, 1},
	{0x2010, 0x2011, 2},
	{0x2011, 0x2013, 1},
	{0x2013, 0x2017, 2},
	{0x2017, 0x2018, 1},
	{0x2018, 0x201A, 2},
	{0x201A, 0x201C, 1},
	{0x201C, 0x201E, 2},
	{0x201E, 0x2025, 1},
	{0x2025, 0x2027, 2},
	{0x2027, 0x2030, 1},
	{0x2030, 0x2031, 2},
	{0x2031, 0x2032, 1},
	{0x2032, 0x2034, 2},
	{0x2034, 0x2035, 1},
	{0x2035, 0x2036, 2},
	{0x2036, 0x203B, 1},
	{0x203B, 0x203C, 2},
	{0x203C, 0x203E, 1},
	{0x203E, 0x203F, 2},
	{0x203F, 0x20AC, 1},
	{0x20AC, 0x20AD, 2},
	{0x20AD, 0x2103, 1},
	{0x2103, 0x2104, 2},
	{0x2104, 0x2105, 1},
	{0x2105, 0x2106, 2},
	{0x2106, 0x2109, 1},
	{0x2109, 0x210A, 2},
	{0x210A, 0x2116, 1},
	{0x2116, 0x2117, 2},
	{0x2117, 0x2121, 1},
	{0x2121, 0x2122, 2},
	{0x2122, 0x2160, 1},
	{0x2160, 0x216C, 2},
	{0x216C, 0x2170, 1},
	{0x2170, 0x217A, 2},
	{0x217A, 0x2190, 1},
	{0x2190, 0x2194, 2},
	{0x2194, 0x2196, 1},
	{0x2196, 0x219A, 2},
	{0x219A, 0x2208, 1},
	{0x2208, 0x2209, 2},
	{0x2209, 0x220F, 1},
	{0x220F, 0x2210, 2},
	{0x2210, 0x2211, 1},
	{0x2211, 0x2212, 2},
	{0x2212, 0x2215, 1},
	{0x2215, 0x2216, 2},
	{0x2216, 0x2218, 1},
	{0x2218, 0x2219, 2},
	{0x2219, 0x221A, 1},
	{0x221A, 0x221B, 2},
	{0x221B, 0x221D, 1},
	{0x221D, 0x2221, 2},
	{0x2221, 0x2223, 1},
	{0x2223, 0x2224, 2},
	{0x2224, 0x2225, 1},
	{0x2225, 0x2226, 2},
	{0x2226, 0x2227, 1},
	{0x2227, 0x222C, 2},
	{0x222C, 0x222E, 1},
	{0x222E, 0x222F, 2},
	{0x222F, 0x2234, 1},
	{0x2234, 0x2238, 2},
	{0x2238, 0x223C, 1},
	{0x223C, 0x223E, 2},
	{0x223E, 0x2248, 1},
	{0x2248, 0x2249, 2},
	{0x2249, 0x224C, 1},
	{0x224C, 0x224D, 2},
	{0x224D, 0x2252, 1},
	{0x2252, 0x2253, 2},
	{0x2253, 0x2260, 1},
	{0x2260, 0x2262, 2},
	{0x2262, 0x2264, 1},
	{0x2264, 0x2268, 2},
	{0x2268, 0x226E, 1},
	{0x226E, 0x2270, 2},
	{0x2270, 0x2295, 1},
	{0x2295, 0x2296, 2},
	{0x2296, 0x2299, 1},
	{0x2299, 0x229A, 2},
	{0x229A, 0x22A5, 1},
	{0x22A5, 0x22A6, 2},
	{0x22A6, 0x22BF, 1},
	{0x22BF, 0x22C0, 2},
	{0x22C0, 0x2312, 1},
	{0x2312, 0x2313, 2},
	{0x2313, 0x2460, 1},
	{0x2460, 0x246A, 2},
	{0x246A, 0x2474, 1},
	{0x2474, 0x249C, 2},
	{0x249C, 0x25A0, 1},
	{0x25A0, 0x25A2, 2},
	{0x25A2, 0x25B2, 1},
	{0x25B2, 0x25B4, 2},
	{0x25B4, 0x25BC, 1},
	{0x25BC, 0x25BE, 2},
	{0x25BE, 0x25C6, 1},
	{0x25C6, 0x25C8, 2},
	{0x25C8, 0x25CB, 1},
	{0x25CB, 0x25CC, 2},
	{0x25CC, 0x25CE, 1},
	{0x25CE, 0x25D0, 2},
	{0x25D0, 0x25E2, 1},
	{0x25E2, 0x25E6, 2},
	{0x25E6, 0x2605, 1},
	{0x2605, 0x2607, 2},
	{0x2607, 0x2609, 1},
	{0x2609, 0x260A, 2},
	{0x260A, 0x2640, 1},
	{0x2640, 0x2641, 2},
	{0x2641, 0x2642, 1},
	{0x2642, 0x2643, 2},
	{0x2643, 0x3000, 1},
	{0x3000, 0x3004, 2},
	{0x3004, 0x3005, 1},
	{0x3005, 0x3018, 2},
	{0x3018, 0x301D, 1},
	{0x301D, 0x301F, 2},
	{0x301F, 0x3021, 1},
	{0x3021, 0x302A, 2},
	{0x302A, 0x3041, 1},
	{0x3041, 0x3094, 2},
	{0x3094, 0x309B, 1},
	{0x309B, 0x309F, 2},
	{0x309F, 0x30A1, 1},
	{0x30A1, 0x30F7, 2},
	{0x30F7, 0x30FC, 1},
	{0x30FC, 0x30FF, 2},
	{0x30FF, 0x3105, 1},
	{0x3105, 0x312A, 2},
	{0x312A, 0x3192, 1},
	{0x3192, 0x31A0, 2},
	{0x31A0, 0x3220, 1},
	{0x3220, 0x3244, 2},
	{0x3244, 0x3280, 1},
	{0x3280, 0x329E, 2},
	{0x329E, 0x329F, 1},
	{0x329F, 0x32A4, 2},
	{0x32A4, 0x32A9, 1},
	{0x32A9, 0x32B1, 2},
	{0x32B1, 0x338E, 1},
	{0x338E, 0x3390, 2},
	{0x3390, 0x339C, 1},
	{0x339C, 0x339F, 2},
	{0x339F, 0x33A1, 1},
	{0x33A1, 0x33A2, 2},
	{0x33A2, 0x33C4, 1},
	{0x33C4, 0x33C5, 2},
	{0x33C5, 0x33CE, 1},
	{0x33CE, 0x33CF, 2},
	{0x33CF, 0x33D1, 1},
	{0x33D1, 0x33D3, 2},
	{0x33D3, 0x33D5, 1},
	{0x33D5, 0x33D6, 2},
	{0x33D6, 0x4E00, 1},
	{0x4E00, 0x9FA6, 2},
	{0x9FA6, 0xD800, 1},
	{0xD800, 0xD801, 0},
	{0xD801, 0xDC00, 1},
	{0xDC00, 0xDC01, 2},
	{0xDC01, 0xE000, 1},
	{0xE000, 0xE7C7, 2},
	{0xE7C7, 0xE7C9, 1},
	{0xE7C9, 0xE865, 2},
	{0xE865, 0xF8F5, 1},
	{0xF8F5, 0xF8F6, 2},
	{0xF8F6, 0xF900, 1},
	{0xF900, 0xFA2E, 2},
	{0xFA2E, 0xFE30, 1},
	{0xFE30, 0xFE32, 2},
	{0xFE32, 0xFE33, 1},
	{0xFE33, 0xFE45, 2},
	{0xFE45, 0xFE49, 1},
	{0xFE49, 0xFE53, 2},
	{0xFE53, 0xFE54, 1},
	{0xFE54, 0xFE58, 2},
	{0xFE58, 0xFE59, 1},
	{0xFE59, 0xFE67, 2},
	{0xFE67, 0xFE68, 1},
	{0xFE68, 0xFE6C, 2},
	{0xFE6C, 0xFF01, 1},
	{0xFF01, 0xFF5F, 2},
	{0xFF5F, 0xFFE0, 1},
	{0xFFE0, 0xFFE6, 2},
	{0xFFE6, 0x10000, 1},
}

// WidthSegments returns a copy of the interval table.
func WidthSegments() []WidthSegment {
	segs := make([]WidthSegment, len(widthSegments))
	copy(segs, widthSegments[:])
	return segs
}

// WidthOf returns the display width class of r: 0 for zero-width, 1 for
// narrow and 2 for wide characters. Code points outside the BMP yield a
// *CodepointOutOfRangeError.
func WidthOf(r rune) (int, error) {
	if r < 0 || r >= MaxCodepoint {
		return 0, &CodepointOutOfRangeError{Codepoint: r}
	}
	c := uint32(r)
	low, high := 0, len(widthSegments)
	for low < high {
		mid := int(uint(low+high) >> 1)
		seg := &widthSegments[mid]
		switch {
		case c < seg.Start:
			high = mid
		case c >= seg.End:
			low = mid + 1
		default:
			return int(seg.Class), nil
		}
	}
	// Unreachable while the table stays gapless.
	return 0, &CodepointOutOfRangeError{Codepoint: r}
}

// IsWide reports whether r occupies more than one terminal column.
func IsWide(r rune) (bool, error) {
	w, err := WidthOf(r)
	if err != nil {
		return false, err
	}
	return w > 1, nil
}

// TextDisplayWidth returns the summed display width of the runes in s.
func TextDisplayWidth(s string) (int, error) {
	return textWidth(TableClassifier{}, s)
}

func textWidth(c Classifier, s string) (int, error) {
	total := 0
	for _, r := range s {
		w, err := c.WidthOf(r)
		if err != nil {
			return 0, err
		}
		total += w
	}
	return total, nil
}
