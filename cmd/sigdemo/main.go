// Command sigdemo replays a signing session on a signature surface and
// exports the signed card as PNG and, optionally, PDF.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/sigpad"
	"github.com/gogpu/sigpad/export"
)

type flags struct {
	config     string
	output     string
	pdfOutput  string
	pixelRatio float64
}

func main() {
	var (
		f       flags
		verbose bool
	)
	flag.StringVar(&f.config, "config", "", "scenario file (TOML); empty signs a built-in wave")
	flag.StringVar(&f.output, "output", export.DefaultFilename, "output PNG file")
	flag.StringVar(&f.pdfOutput, "pdf", "", "also write a PDF to this file")
	flag.Float64Var(&f.pixelRatio, "pixel-ratio", export.DefaultPixelRatio, "output pixels per CSS pixel")
	flag.BoolVar(&verbose, "v", false, "debug logging")
	flag.Parse()

	if verbose {
		sigpad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(f); err != nil {
		log.Fatal(err)
	}
}

// run replays the scenario and writes the outputs. The surface is closed
// on every path.
func run(f flags) error {
	sc := defaultScenario()
	if f.config != "" {
		var err error
		if sc, err = LoadScenario(f.config); err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
	}

	surface, err := Replay(sc)
	if err != nil {
		return fmt.Errorf("failed to replay: %w", err)
	}
	defer surface.Close()

	page, err := sc.ExportPage(surface)
	if err != nil {
		return fmt.Errorf("failed to lay out page: %w", err)
	}

	dir, name := filepath.Split(f.output)
	exp := &export.Exporter{
		Dir:    dir,
		Notify: func(message string) { log.Print(message) },
	}
	opts := export.Options{PixelRatio: f.pixelRatio, Filename: name}
	path, err := exp.Save(page, opts)
	if err != nil {
		return fmt.Errorf("failed to save: %w", err)
	}
	log.Printf("Signature saved to %s (%dx%d buffer)\n", path, surface.Width(), surface.Height())

	if f.pdfOutput != "" {
		if err := writePDF(f.pdfOutput, page, opts); err != nil {
			return fmt.Errorf("failed to save PDF: %w", err)
		}
		log.Printf("PDF saved to %s\n", f.pdfOutput)
	}
	return nil
}

func writePDF(path string, page export.Page, opts export.Options) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WritePDF(f, page, opts); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
