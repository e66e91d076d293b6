package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/image/font/gofont/gomono"

	"github.com/wbrown/qrtext"
	"github.com/wbrown/qrtext/imageutil"
)

type config struct {
	input  string
	base64 string
	text   string
	level  string
	margin int
	save   string
	size   int

	module    int
	mode      string
	threshold int

	compact   bool
	reverse   bool
	point     string
	empty     string
	eastAsian bool

	output    string
	matrixPNG string
	fontSize  float64
	verbose   bool
}

func parseFlags(args []string) (*config, error) {
	cfg := &config{}
	fs := flag.NewFlagSet("qrterm", flag.ContinueOnError)
	fs.StringVar(&cfg.input, "input", "",
		"Path to the input image file (PNG, JPEG, GIF or TIFF)")
	fs.StringVar(&cfg.base64, "base64", "",
		"Base64 encoded image, data URIs accepted")
	fs.StringVar(&cfg.text, "text", "",
		"Text to encode as a QR code and print")
	fs.StringVar(&cfg.level, "level", envString("LEVEL", "M"),
		"QR error correction level for -text: L, M, Q or H")
	fs.IntVar(&cfg.margin, "margin", envInt("MARGIN", 1),
		"Quiet zone in modules around a -text QR code")
	fs.StringVar(&cfg.save, "save", "",
		"With -text, also write the encoded QR code as a PNG to this path")
	fs.IntVar(&cfg.size, "size", envInt("SIZE", 300),
		"Pixel size of the PNG written by -save")
	fs.IntVar(&cfg.module, "module", envInt("MODULE", 1),
		"Pixels per barcode module in the input; the image is shrunk to one pixel per module")
	fs.StringVar(&cfg.mode, "mode", envString("MODE", qrtext.ExactBlack.String()),
		"Dark pixel rule: exact (pure black only), blue (blue <= threshold) or luma (luma <= threshold)")
	fs.IntVar(&cfg.threshold, "threshold", envInt("THRESHOLD", -1),
		"Threshold for -mode blue or luma (default 180 for blue, 127 for luma)")
	fs.BoolVar(&cfg.compact, "compact", envBool("COMPACT", false),
		"Use half blocks to print two rows per line")
	fs.BoolVar(&cfg.reverse, "reverse", envBool("REVERSE", false),
		"Swap the dark and light glyphs, for light-on-dark terminals")
	fs.StringVar(&cfg.point, "point", envString("POINT", string(qrtext.FullBlock)),
		"Glyph for dark cells")
	fs.StringVar(&cfg.empty, "empty", envString("EMPTY", string(qrtext.Space)),
		"Glyph for light cells")
	fs.BoolVar(&cfg.eastAsian, "eastasian", envBool("EASTASIAN", false),
		"Measure glyphs with East Asian Width, treating ambiguous glyphs as wide")
	fs.StringVar(&cfg.output, "output", "",
		"Path to save the output; a .png path saves a font rendering (default stdout)")
	fs.StringVar(&cfg.matrixPNG, "matrixpng", "",
		"Path to save the sampled bit matrix as a PNG")
	fs.Float64Var(&cfg.fontSize, "fontsize", qrtext.DefaultFontSize,
		"Font size for .png output")
	fs.BoolVar(&cfg.verbose, "v", envBool("VERBOSE", false),
		"Log debug output to stderr")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *config) samplePolicy() (qrtext.SamplePolicy, error) {
	mode, err := qrtext.ParseSampleMode(cfg.mode)
	if err != nil {
		return qrtext.SamplePolicy{}, err
	}
	policy := qrtext.SamplePolicy{Mode: mode}
	switch {
	case cfg.threshold > 255:
		return policy, fmt.Errorf("threshold %d out of range 0-255", cfg.threshold)
	case cfg.threshold >= 0:
		policy.Threshold = uint8(cfg.threshold)
	case mode == qrtext.BlueThreshold:
		policy.Threshold = qrtext.DefaultBlueThreshold
	case mode == qrtext.Luminance:
		policy.Threshold = qrtext.DefaultLuminanceThreshold
	}
	return policy, nil
}

func (cfg *config) style() qrtext.Style {
	if cfg.compact {
		return qrtext.StyleCompact
	}
	return qrtext.StyleFull
}

func (cfg *config) classifier() qrtext.Classifier {
	if cfg.eastAsian {
		return qrtext.EastAsianClassifier{AmbiguousWide: true}
	}
	return qrtext.TableClassifier{}
}

// parseGlyph accepts a flag value holding exactly one rune.
func parseGlyph(name, s string) (rune, error) {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("-%s must be a single character, got %q", name, s)
	}
	return r, nil
}

func run(ctx context.Context, cfg *config, stdout io.Writer) error {
	point, err := parseGlyph("point", cfg.point)
	if err != nil {
		return err
	}
	empty, err := parseGlyph("empty", cfg.empty)
	if err != nil {
		return err
	}
	policy, err := cfg.samplePolicy()
	if err != nil {
		return err
	}

	img, err := loadSource(cfg)
	if err != nil {
		return err
	}
	if cfg.save != "" {
		if cfg.text == "" {
			return errors.New("-save requires -text")
		}
		if err := saveCode(cfg.text, cfg.level, cfg.size, cfg.save); err != nil {
			return err
		}
	}
	if img, err = imageutil.DownscaleModules(img, cfg.module); err != nil {
		return err
	}

	m, err := qrtext.SampleImage(img, policy)
	if err != nil {
		return err
	}
	if cfg.matrixPNG != "" {
		if err := qrtext.SaveMatrixPNG(m, cfg.matrixPNG, 8); err != nil {
			return fmt.Errorf("write matrix png: %w", err)
		}
	}

	opts := []qrtext.RendererOption{
		qrtext.WithPointChar(point),
		qrtext.WithEmptyChar(empty),
		qrtext.WithReverseColor(cfg.reverse),
		qrtext.WithClassifier(cfg.classifier()),
	}

	switch {
	case strings.EqualFold(filepath.Ext(cfg.output), ".png"):
		var lines qrtext.LineCollector
		if err := qrtext.NewRenderer(&lines, opts...).Render(ctx, m, cfg.style()); err != nil {
			return err
		}
		painter, err := qrtext.NewLinePainter(gomono.TTF, cfg.fontSize, cfg.classifier())
		if err != nil {
			return err
		}
		if err := painter.SaveLinesPNG(lines.Lines, cfg.output); err != nil {
			return fmt.Errorf("write png: %w", err)
		}
		fmt.Fprintf(stdout, "PNG output written to %s\n", cfg.output)
	case cfg.output != "":
		// Render into a buffer first so a failed render leaves no
		// partial file behind.
		var lines qrtext.LineCollector
		if err := qrtext.NewRenderer(&lines, opts...).Render(ctx, m, cfg.style()); err != nil {
			return err
		}
		data := strings.Join(lines.Lines, "\n") + "\n"
		if err := os.WriteFile(cfg.output, []byte(data), 0644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(stdout, "Output written to %s\n", cfg.output)
	default:
		sink := qrtext.NewWriterSink(stdout)
		err := qrtext.NewRenderer(sink, opts...).Render(ctx, m, cfg.style())
		// Lines rendered before a failure are still delivered.
		if ferr := sink.Flush(); err == nil && ferr != nil {
			err = fmt.Errorf("write output: %w", ferr)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := loadEnv(".env.local", ".env"); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading environment: %v\n", err)
		os.Exit(1)
	}
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	qrtext.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
