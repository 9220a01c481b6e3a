package export

import (
	"bytes"
	"fmt"
	"image/png"
	"io"

	"github.com/gogpu/sigpad"
	"github.com/jung-kurt/gofpdf"
)

const pdfImageName = "page"

// WritePDF renders the page and writes a single-page PDF to w. The page
// measures the CSS size in points and carries the raster as a PNG image,
// so the output looks exactly like WritePNG.
func WritePDF(w io.Writer, page Page, opts Options) error {
	img, err := Render(page, opts)
	if err != nil {
		return err
	}
	opts = opts.withDefaults()

	var raster bytes.Buffer
	if err := png.Encode(&raster, img); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}

	// Portrait keeps Wd and Ht as given; "L" would swap them.
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: page.Width, Ht: page.Height},
	})
	pdf.SetTitle(opts.Filename, true)
	pdf.SetCreator("sigpad "+sigpad.Version, true)
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	imgOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader(pdfImageName, imgOpts, &raster)
	pdf.ImageOptions(pdfImageName, 0, 0, page.Width, page.Height, false, imgOpts, 0, "")
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("export: build pdf: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("export: write pdf: %w", err)
	}
	return nil
}
