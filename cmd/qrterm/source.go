package main

import (
	"errors"
	"fmt"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/wbrown/qrtext/imageutil"
)

// ecLevels maps -level values to QR error correction levels.
var ecLevels = map[string]qr.ErrorCorrectionLevel{
	"L": qr.L,
	"M": qr.M,
	"Q": qr.Q,
	"H": qr.H,
}

// loadSource produces the image named by exactly one of -input, -base64
// or -text.
func loadSource(cfg *config) (*imageutil.Image, error) {
	set := 0
	for _, s := range []string{cfg.input, cfg.base64, cfg.text} {
		if s != "" {
			set++
		}
	}
	if set != 1 {
		return nil, errors.New("exactly one of -input, -base64 or -text is required")
	}

	switch {
	case cfg.input != "":
		return imageutil.LoadImage(cfg.input)
	case cfg.base64 != "":
		return imageutil.DecodeBase64Image(cfg.base64)
	default:
		return encodeText(cfg.text, cfg.level, cfg.margin)
	}
}

// encodeText renders text as a QR code with one pixel per module and a
// white quiet zone of margin modules.
func encodeText(text, level string, margin int) (*imageutil.Image, error) {
	ec, ok := ecLevels[level]
	if !ok {
		return nil, fmt.Errorf("unknown error correction level %q (want L, M, Q or H)", level)
	}
	code, err := qr.Encode(text, ec, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return imageutil.Pad(imageutil.FromImage(code), margin, imageutil.White), nil
}

// saveCode encodes text and writes it as a size×size PNG, the way a
// barcode writer would hand it to a scanner.
func saveCode(text, level string, size int, path string) error {
	ec, ok := ecLevels[level]
	if !ok {
		return fmt.Errorf("unknown error correction level %q (want L, M, Q or H)", level)
	}
	code, err := qr.Encode(text, ec, qr.Auto)
	if err != nil {
		return fmt.Errorf("encode qr: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return fmt.Errorf("scale qr: %w", err)
	}
	return imageutil.SavePNG(scaled, path)
}
