// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package sigcanvas presents a signature surface in gogpu GPU-accelerated
// windows.
//
// The data flow is:
//
//	sigpad.Surface (strokes) -> Buffer (CPU) -> GPU Texture -> Window
//
// # Architecture
//
// Canvas wraps a *sigpad.Surface and manages the texture upload pipeline:
//
//   - Flush() uploads the surface pixels when they changed since the
//     previous upload, only the damaged rectangle when the texture
//     supports region updates
//   - a resize of the surface buffer recreates the texture
//   - RenderTo() draws the texture to a gogpu window
//
// # Usage
//
//	surface := sigpad.MustNew(host)
//	surface.Mount()
//
//	canvas, _ := sigcanvas.New(surface, sigcanvas.WithDeviceProvider(app.GPUContextProvider()))
//	defer canvas.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// # Damage Tracking
//
// Canvas consumes Surface.TakeDamage. Hosts that upload through a Canvas
// must not take the damage themselves.
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. Use it on the goroutine that owns
// the surface.
package sigcanvas
