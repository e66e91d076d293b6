package qrtext

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/wbrown/qrtext/imageutil"
)

const roundTripModule = 4

// encodeQR renders text as a QR code with roundTripModule pixels per
// module.
func encodeQR(t *testing.T, text string) barcode.Barcode {
	t.Helper()
	code, err := qr.Encode(text, qr.M, qr.Auto)
	if err != nil {
		t.Fatalf("qr.Encode failed: %v", err)
	}
	size := code.Bounds().Dx() * roundTripModule
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		t.Fatalf("barcode.Scale failed: %v", err)
	}
	return scaled
}

func TestRoundTripFullRenderPreservesDarkCells(t *testing.T) {
	t.Parallel()

	img := encodeQR(t, "Hello World")
	pixels, err := SampleImage(img, DefaultSamplePolicy())
	if err != nil {
		t.Fatalf("SampleImage failed: %v", err)
	}
	if pixels.DarkCount() == 0 {
		t.Fatal("Sampled QR code has no dark cells")
	}

	var c LineCollector
	if err := NewRenderer(&c).RenderFull(context.Background(), pixels); err != nil {
		t.Fatalf("RenderFull failed: %v", err)
	}
	if len(c.Lines) != pixels.Height() {
		t.Fatalf("Expected %d lines, got %d", pixels.Height(), len(c.Lines))
	}

	blocks := 0
	for _, line := range c.Lines {
		blocks += strings.Count(line, string(FullBlock))
		w, err := TextDisplayWidth(line)
		if err != nil {
			t.Fatalf("TextDisplayWidth failed: %v", err)
		}
		if w != pixels.Width()*TargetCellWidth {
			t.Fatalf("Expected line width %d, got %d", pixels.Width()*TargetCellWidth, w)
		}
	}
	if blocks/TargetCellWidth != pixels.DarkCount() || blocks%TargetCellWidth != 0 {
		t.Errorf("Rendered %d blocks for %d dark cells", blocks, pixels.DarkCount())
	}
}

func TestRoundTripCompactRenderPreservesDarkCells(t *testing.T) {
	t.Parallel()

	img := imageutil.FromImage(encodeQR(t, "https://example.com/qrtext"))
	modules, err := imageutil.DownscaleModules(img, roundTripModule)
	if err != nil {
		t.Fatalf("DownscaleModules failed: %v", err)
	}
	m, err := SampleBlue(modules, DefaultBlueThreshold)
	if err != nil {
		t.Fatalf("SampleBlue failed: %v", err)
	}

	var c LineCollector
	if err := NewRenderer(&c).RenderCompact(context.Background(), m); err != nil {
		t.Fatalf("RenderCompact failed: %v", err)
	}
	if want := (m.Height() + 1) / 2; len(c.Lines) != want {
		t.Fatalf("Expected %d lines, got %d", want, len(c.Lines))
	}

	halves := 0
	for _, line := range c.Lines {
		for _, r := range line {
			switch r {
			case FullBlock:
				halves += 2
			case UpperHalfBlock, LowerHalfBlock:
				halves++
			}
		}
	}
	if halves != m.DarkCount() {
		t.Errorf("Rendered %d dark halves for %d dark cells", halves, m.DarkCount())
	}
}

func TestRoundTripMatrixImage(t *testing.T) {
	t.Parallel()

	m := mustMatrix(t,
		"#.##.",
		"..#.#",
		"###..",
	)
	img, err := MatrixImage(m, 3)
	if err != nil {
		t.Fatalf("MatrixImage failed: %v", err)
	}
	if img.Width() != 15 || img.Height() != 9 {
		t.Fatalf("Expected 15x9, got %dx%d", img.Width(), img.Height())
	}
	modules, err := imageutil.DownscaleModules(img, 3)
	if err != nil {
		t.Fatalf("DownscaleModules failed: %v", err)
	}
	got, err := SamplePacked(NewPackedImage(modules))
	if err != nil {
		t.Fatalf("SamplePacked failed: %v", err)
	}
	if !reflect.DeepEqual(got, m) {
		t.Errorf("Round trip changed the matrix")
	}
}
