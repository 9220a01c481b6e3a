// Package sigpad provides a freehand signature surface with a
// resolution-independent backing buffer.
//
// # Overview
//
// A Surface owns a premultiplied RGBA pixel buffer sized to the host
// container multiplied by the device pixel ratio. Pointer input is
// accumulated per stroke and painted incrementally with quadratic
// smoothing, so only the newest segment is rasterized on every move.
// The buffer follows container and pixel-ratio changes without losing
// what was already drawn: the old buffer is rescaled into the new one.
//
// # Quick Start
//
//	sp, err := sigpad.New(host, sigpad.WithScheduler(loop))
//	if err != nil {
//		log.Fatal(err)
//	}
//	sp.Mount()
//	defer sp.Close()
//
//	sp.HandlePointer(sigpad.PointerEvent{Kind: sigpad.PointerDown, X: 10, Y: 10})
//	sp.HandlePointer(sigpad.PointerEvent{Kind: sigpad.PointerMove, X: 40, Y: 24})
//	sp.HandlePointer(sigpad.PointerEvent{Kind: sigpad.PointerUp, X: 40, Y: 24})
//
//	img, err := sp.Snapshot()
//
// # Coordinate System
//
// Stroke operations take container-relative CSS pixels. They are mapped to
// buffer pixels with the ratio between the buffer size and the CSS display
// size of the last resize pass. The origin is the top-left corner, X grows
// right and Y grows down.
//
// # Scheduling
//
// Resize triggers are coalesced: any number of notifications between two
// animation frames produce a single resize pass. Frames come from a
// FrameScheduler; EventLoop and FrameQueue are the two implementations
// shipped with the package.
//
// # Thread Safety
//
// Surface is NOT safe for concurrent use. Drive it from a single goroutine,
// typically the one running EventLoop.
package sigpad

// Version is the current version of the library.
const Version = "0.1.0"
