package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gogpu/sigpad"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ErrExportFailed wraps every error returned by Exporter.Save.
var ErrExportFailed = errors.New("export: could not save image")

// FailureMessage is shown to the user when saving fails.
const FailureMessage = "Could not save image. Please try again."

// Exporter saves pages as PNG files.
type Exporter struct {
	// Dir is the destination directory. Empty means the working directory.
	Dir string

	// Notify, if set, receives FailureMessage when a save fails.
	Notify func(message string)
}

// Save renders the page and writes it to Dir under the sanitized
// Options.Filename. It returns the path written. The image is fully
// encoded before the file is created, so a rendering error never leaves a
// partial file behind.
func (e *Exporter) Save(page Page, opts Options) (string, error) {
	opts = opts.withDefaults()
	path := filepath.Join(e.Dir, SanitizeFilename(opts.Filename))

	if err := save(path, page, opts); err != nil {
		sigpad.Logger().Warn("export: save failed", "path", path, "err", err)
		if e.Notify != nil {
			e.Notify(FailureMessage)
		}
		return "", fmt.Errorf("%w: %w", ErrExportFailed, err)
	}

	sigpad.Logger().Info("export: image saved", "path", path)
	return path, nil
}

func save(path string, page Page, opts Options) error {
	var buf bytes.Buffer
	if err := WritePNG(&buf, page, opts); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// SanitizeFilename turns a user supplied name into a safe base name with a
// .png extension. Accents are folded ("Café" becomes "Cafe"), control
// characters are dropped, and path separators and characters reserved on
// Windows become '-'. An empty result falls back to DefaultFilename.
func SanitizeFilename(name string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		runes.Remove(runes.Predicate(unicode.IsControl)),
		runes.Map(safeRune),
		norm.NFC,
	)
	s, _, err := transform.String(t, name)
	if err != nil {
		s = strings.Map(func(r rune) rune {
			if unicode.IsControl(r) {
				return -1
			}
			return safeRune(r)
		}, name)
	}

	s = strings.Trim(s, " .")
	if s == "" {
		return DefaultFilename
	}
	if !strings.EqualFold(filepath.Ext(s), ".png") {
		s += ".png"
	}
	return s
}

// safeRune replaces path separators and characters reserved on Windows.
func safeRune(r rune) rune {
	if r == '/' || r == '\\' || strings.ContainsRune(`<>:"|?*`, r) {
		return '-'
	}
	return r
}
