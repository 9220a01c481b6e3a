// Package export rasterizes a page region holding one or more signature
// surfaces into a shareable image.
//
// A Page is a CSS-sized box with a background color and a stack of
// layers. Each layer draws the snapshot of a Source, typically a
// *sigpad.Surface, into its own rectangle. Render produces the page at
// Options.PixelRatio physical pixels per CSS pixel; WritePNG and WritePDF
// encode that raster.
//
// Exporter saves a page to disk under a sanitized filename and reports
// failures to the user through a notification callback. Exporting never
// modifies the surfaces it reads, so a failed export can always be retried.
package export
