package export

import (
	"fmt"
	"image/png"
	"io"
)

// WritePNG renders the page and writes it to w as a lossless PNG.
func WritePNG(w io.Writer, page Page, opts Options) error {
	img, err := Render(page, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}
	return nil
}
