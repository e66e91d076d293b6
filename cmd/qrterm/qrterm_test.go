package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/wbrown/qrtext"
	"github.com/wbrown/qrtext/imageutil"
)

func mustParse(t *testing.T, args ...string) *config {
	t.Helper()
	cfg, err := parseFlags(args)
	if err != nil {
		t.Fatalf("parseFlags(%q) failed: %v", args, err)
	}
	return cfg
}

func renderText(t *testing.T, args ...string) []string {
	t.Helper()
	var buf bytes.Buffer
	if err := run(context.Background(), mustParse(t, args...), &buf); err != nil {
		t.Fatalf("run(%q) failed: %v", args, err)
	}
	return strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
}

func TestParseGlyph(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"#", '#', false},
		{"█", qrtext.FullBlock, false},
		{"中", '中', false},
		{"", 0, true},
		{"ab", 0, true},
		{"\xff", 0, true},
	}
	for _, tt := range tests {
		got, err := parseGlyph("point", tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseGlyph(%q): unexpected error state: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseGlyph(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestEnvDefaults(t *testing.T) {
	t.Setenv("QRTERM_MODE", "luma")
	t.Setenv("QRTERM_COMPACT", "true")
	t.Setenv("QRTERM_MODULE", "4")
	t.Setenv("QRTERM_POINT", "#")
	t.Setenv("QRTERM_MARGIN", "not a number")

	cfg := mustParse(t)
	if cfg.mode != "luma" {
		t.Errorf("Expected mode luma, got %q", cfg.mode)
	}
	if !cfg.compact {
		t.Error("Expected compact from environment")
	}
	if cfg.module != 4 {
		t.Errorf("Expected module 4, got %d", cfg.module)
	}
	if cfg.point != "#" {
		t.Errorf("Expected point #, got %q", cfg.point)
	}
	if cfg.margin != 1 {
		t.Errorf("Malformed value should keep the default margin, got %d", cfg.margin)
	}

	cfg = mustParse(t, "-mode", "blue", "-compact=false")
	if cfg.mode != "blue" || cfg.compact {
		t.Errorf("Flags should override environment, got mode=%q compact=%v", cfg.mode, cfg.compact)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("QRTERM_LEVEL=H\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("QRTERM_LEVEL", "")
	os.Unsetenv("QRTERM_LEVEL")

	if err := loadEnv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("loadEnv failed: %v", err)
	}
	if got := envString("LEVEL", "M"); got != "H" {
		t.Errorf("Expected level H from .env, got %q", got)
	}
}

func TestSamplePolicyThresholds(t *testing.T) {
	tests := []struct {
		args []string
		want qrtext.SamplePolicy
	}{
		{nil, qrtext.SamplePolicy{Mode: qrtext.ExactBlack}},
		{[]string{"-mode", "blue"}, qrtext.SamplePolicy{Mode: qrtext.BlueThreshold, Threshold: qrtext.DefaultBlueThreshold}},
		{[]string{"-mode", "luma"}, qrtext.SamplePolicy{Mode: qrtext.Luminance, Threshold: qrtext.DefaultLuminanceThreshold}},
		{[]string{"-mode", "blue", "-threshold", "90"}, qrtext.SamplePolicy{Mode: qrtext.BlueThreshold, Threshold: 90}},
	}
	for _, tt := range tests {
		got, err := mustParse(t, tt.args...).samplePolicy()
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.args, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %+v, got %+v", tt.args, tt.want, got)
		}
	}

	if _, err := mustParse(t, "-mode", "sepia").samplePolicy(); err == nil {
		t.Error("Expected error for unknown mode")
	}
	if _, err := mustParse(t, "-threshold", "300").samplePolicy(); err == nil {
		t.Error("Expected error for threshold above 255")
	}
}

func TestEncodeText(t *testing.T) {
	img, err := encodeText("hello", "M", 2)
	if err != nil {
		t.Fatalf("encodeText failed: %v", err)
	}
	if img.Width() != img.Height() {
		t.Errorf("Expected a square symbol, got %dx%d", img.Width(), img.Height())
	}
	// Version 1 is 21 modules plus the quiet zone.
	if img.Width() < 21+4 {
		t.Errorf("Expected at least 25 pixels, got %d", img.Width())
	}
	if img.GetRGB(0, 0) != imageutil.White || img.GetRGB(1, 1) != imageutil.White {
		t.Error("Expected a white quiet zone")
	}
	// Top-left finder pattern corner.
	if img.GetRGB(2, 2) != imageutil.Black {
		t.Errorf("Expected finder pattern at (2,2), got %v", img.GetRGB(2, 2))
	}

	if _, err := encodeText("hello", "X", 1); err == nil {
		t.Error("Expected error for unknown error correction level")
	}
}

func TestLoadSourceRequiresExactlyOne(t *testing.T) {
	if _, err := loadSource(&config{}); err == nil {
		t.Error("Expected error with no source")
	}
	if _, err := loadSource(&config{text: "a", base64: "b"}); err == nil {
		t.Error("Expected error with two sources")
	}
	if _, err := loadSource(&config{input: filepath.Join(t.TempDir(), "missing.png")}); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestRunTextFull(t *testing.T) {
	lines := renderText(t, "-text", "hello")
	h := len(lines)
	if h < 23 {
		t.Fatalf("Expected at least 23 lines, got %d", h)
	}
	for i, line := range lines {
		if n := utf8.RuneCountInString(line); n != 2*h {
			t.Fatalf("Line %d: expected %d characters, got %d", i, 2*h, n)
		}
	}
	if strings.TrimSpace(lines[0]) != "" {
		t.Errorf("Expected the quiet zone row to be blank, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "  ██████████████") {
		t.Errorf("Expected a finder pattern on row 1, got %q", lines[1])
	}
}

func TestRunTextCompact(t *testing.T) {
	full := renderText(t, "-text", "hello")
	compact := renderText(t, "-text", "hello", "-compact")
	if want := (len(full) + 1) / 2; len(compact) != want {
		t.Errorf("Expected %d compact lines, got %d", want, len(compact))
	}
	for i, line := range compact {
		if n := utf8.RuneCountInString(line); n != len(full) {
			t.Fatalf("Line %d: expected %d characters, got %d", i, len(full), n)
		}
	}
}

func TestRunReverseAndGlyphs(t *testing.T) {
	lines := renderText(t, "-text", "hello", "-point", "#", "-empty", ".", "-reverse")
	if !strings.HasPrefix(lines[0], "####") {
		t.Errorf("Reversed quiet zone should use the point glyph, got %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "##..............") {
		t.Errorf("Reversed finder pattern should use the empty glyph, got %q", lines[1])
	}
	var buf bytes.Buffer
	if err := run(context.Background(), mustParse(t, "-text", "x", "-point", "##"), &buf); err == nil {
		t.Error("Expected error for a multi-character point glyph")
	}
}

func TestRunInputWithModules(t *testing.T) {
	rows := [][]bool{
		{true, false},
		{false, true},
	}
	path := filepath.Join(t.TempDir(), "code.png")
	if err := imageutil.SavePNG(imageutil.CreateModuleImage(rows, 4, imageutil.Black, imageutil.White), path); err != nil {
		t.Fatal(err)
	}
	lines := renderText(t, "-input", path, "-module", "4")
	want := []string{"██  ", "  ██"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %q, got %q", want, lines)
	}
}

func TestRunFileOutputs(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "out.txt")
	png := filepath.Join(dir, "out.png")
	matrix := filepath.Join(dir, "matrix.png")
	code := filepath.Join(dir, "code.png")

	var buf bytes.Buffer
	cfg := mustParse(t, "-text", "hello", "-output", txt, "-matrixpng", matrix, "-save", code, "-size", "120")
	if err := run(context.Background(), cfg, &buf); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	data, err := os.ReadFile(txt)
	if err != nil {
		t.Fatalf("Failed to read text output: %v", err)
	}
	if !strings.Contains(string(data), "██") {
		t.Error("Text output contains no dark cells")
	}
	saved, err := imageutil.LoadImage(code)
	if err != nil {
		t.Fatalf("Failed to load saved code: %v", err)
	}
	if saved.Width() != 120 || saved.Height() != 120 {
		t.Errorf("Expected 120x120 saved code, got %dx%d", saved.Width(), saved.Height())
	}
	if _, err := os.Stat(matrix); err != nil {
		t.Errorf("Matrix PNG not written: %v", err)
	}

	cfg = mustParse(t, "-text", "hello", "-compact", "-output", png)
	if err := run(context.Background(), cfg, &buf); err != nil {
		t.Fatalf("run with png output failed: %v", err)
	}
	if _, err := imageutil.LoadImage(png); err != nil {
		t.Errorf("Failed to load png output: %v", err)
	}
}

func TestRunSaveRequiresText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "code.png")
	if err := imageutil.SavePNG(imageutil.CreateSolidImage(2, 2, imageutil.White), path); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := run(context.Background(), mustParse(t, "-input", path, "-save", "x.png"), &buf); err == nil {
		t.Error("Expected error for -save without -text")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	if err := run(ctx, mustParse(t, "-text", "hello"), &buf); err == nil {
		t.Error("Expected error from a cancelled context")
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no output, got %q", buf.String())
	}
}
