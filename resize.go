package sigpad

import "math"

// Host describes the layout box the surface is displayed in.
// Measurements are read when a resize pass runs, never cached between
// passes, so a pass always uses the most recent layout.
type Host interface {
	// ContainerSize returns the container's layout size in CSS pixels.
	ContainerSize() (width, height float64)

	// DevicePixelRatio returns physical pixels per CSS pixel.
	// Values that are not positive finite numbers are treated as 1.
	DevicePixelRatio() float64
}

// TargetSize computes backing-buffer dimensions for a container: the CSS
// size times the device pixel ratio, floored, at least 1x1. ok is false
// for a degenerate (zero, negative or non-finite) container, in which case
// provisioning must be deferred.
func TargetSize(cssWidth, cssHeight, dpr float64) (width, height int, ok bool) {
	if !(cssWidth > 0) || !(cssHeight > 0) || math.IsInf(cssWidth, 0) || math.IsInf(cssHeight, 0) {
		return 0, 0, false
	}
	dpr = normalizeDPR(dpr)
	width = max(1, int(math.Floor(cssWidth*dpr)))
	height = max(1, int(math.Floor(cssHeight*dpr)))
	return width, height, true
}

// NotifyContainerResize reports a change of the container's layout box.
func (s *Surface) NotifyContainerResize() {
	s.scheduleResize("container")
}

// NotifyWindowResize reports a window resize or orientation change.
func (s *Surface) NotifyWindowResize() {
	s.scheduleResize("window")
}

// NotifyPixelRatioChange reports a device pixel ratio change, e.g. the
// window moving to another monitor or the page being zoomed.
func (s *Surface) NotifyPixelRatioChange() {
	s.scheduleResize("dpr")
}

// ResizePending reports whether a resize pass waits for the next frame.
func (s *Surface) ResizePending() bool {
	return s.resizePending
}

// Reallocations returns how many times the backing buffer was allocated.
func (s *Surface) Reallocations() int {
	return s.reallocs
}

// scheduleResize requests a resize pass on the next frame. Triggers that
// arrive while a pass is pending collapse into it.
func (s *Surface) scheduleResize(reason string) {
	if !s.mounted || s.closed {
		return
	}
	if s.resizePending {
		s.logger().Debug("sigpad: resize coalesced", "trigger", reason)
		return
	}
	s.resizePending = true
	s.cancelResize = s.scheduler.RequestFrame(s.runScheduledResize)
}

func (s *Surface) runScheduledResize() {
	if !s.resizePending {
		return
	}
	s.resizePending = false
	s.cancelResize = nil
	s.resize()
}

func (s *Surface) cancelPendingResize() {
	if !s.resizePending {
		return
	}
	s.resizePending = false
	if s.cancelResize != nil {
		s.cancelResize()
		s.cancelResize = nil
	}
}

// resize synchronizes the buffer with the container and reports whether
// the buffer was reallocated.
//
// When the target dimensions change, the old buffer is scaled into a newly
// allocated one before it is dropped: a pass never loses drawn pixels. The
// active stroke, if any, is left untouched.
func (s *Surface) resize() bool {
	if !s.mounted || s.closed {
		return false
	}

	cssW, cssH := s.host.ContainerSize()
	dpr := normalizeDPR(s.host.DevicePixelRatio())
	tw, th, ok := TargetSize(cssW, cssH, dpr)
	if !ok {
		s.logger().Debug("sigpad: resize deferred, container has no size", "css_width", cssW, "css_height", cssH)
		return false
	}

	s.displayW, s.displayH = cssW, cssH
	s.dpr = dpr

	if s.buf != nil && s.buf.Width() == tw && s.buf.Height() == th {
		s.applyStyle()
		return false
	}

	next := NewBuffer(tw, th)
	if prev := s.buf; prev != nil {
		next.ScaleFrom(prev)
		s.logger().Debug("sigpad: buffer reallocated",
			"from_width", prev.Width(), "from_height", prev.Height(),
			"to_width", tw, "to_height", th, "dpr", dpr)
	}
	s.buf = next
	s.reallocs++
	s.version++
	s.damage = next.Bounds()
	s.applyStyle()
	return true
}

// needsResize reports whether the buffer lags behind the container.
func (s *Surface) needsResize() bool {
	cssW, cssH := s.host.ContainerSize()
	tw, th, ok := TargetSize(cssW, cssH, s.host.DevicePixelRatio())
	if !ok {
		return false
	}
	return s.buf == nil || s.buf.Width() != tw || s.buf.Height() != th
}
