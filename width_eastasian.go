package qrtext

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// EastAsianClassifier derives display widths from the Unicode East Asian
// Width property instead of the built-in interval table. Wide and
// Fullwidth characters take two columns, nonspacing and enclosing marks
// take none, and everything else takes one. Unlike TableClassifier it
// accepts code points from every plane.
//
// AmbiguousWide treats East Asian Ambiguous characters (many box drawing
// and block glyphs among them) as wide, which matches terminals configured
// for CJK locales.
type EastAsianClassifier struct {
	AmbiguousWide bool
}

// WidthOf implements Classifier.
func (c EastAsianClassifier) WidthOf(r rune) (int, error) {
	if !utf8.ValidRune(r) {
		return 0, &CodepointOutOfRangeError{Codepoint: r}
	}
	if unicode.In(r, unicode.Mn, unicode.Me) {
		return 0, nil
	}
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2, nil
	case width.EastAsianAmbiguous:
		if c.AmbiguousWide {
			return 2, nil
		}
	}
	return 1, nil
}
