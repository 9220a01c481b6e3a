package sigpad

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// Common errors returned by Surface operations.
var (
	// ErrNilHost is returned by New when no Host is supplied.
	ErrNilHost = errors.New("sigpad: nil Host")

	// ErrNoTarget is returned by Snapshot when there is no backing buffer:
	// the surface is not mounted, the container has no size yet, or the
	// surface is closed.
	ErrNoTarget = errors.New("sigpad: no render target")

	// ErrStrokeActive is returned by BeginStroke while another stroke owns
	// the surface.
	ErrStrokeActive = errors.New("sigpad: stroke already in progress")
)

// Surface is a freehand drawing surface backed by a DPR-scaled pixel buffer.
//
// The rendered pixels are the only record of what was drawn: the point
// accumulator of a stroke exists only while the stroke is active.
//
// Surface is NOT safe for concurrent use.
type Surface struct {
	id        string
	host      Host
	scheduler FrameScheduler
	capturer  PointerCapturer

	style Style
	paint PaintConfig

	// Backing buffer and the layout it was provisioned for.
	buf      *Buffer
	dpr      float64
	displayW float64
	displayH float64

	// Resize coalescing.
	resizePending bool
	cancelResize  func()

	// Active stroke.
	active bool
	owner  int
	points []Point // buffer coordinates, append-only
	pen    Point

	damage   image.Rectangle
	version  uint64
	reallocs int

	mounted bool
	closed  bool
}

var _ io.Closer = (*Surface)(nil)

// New creates an unmounted surface for the given host.
// Call Mount once the host container is laid out.
func New(host Host, opts ...Option) (*Surface, error) {
	if host == nil {
		return nil, ErrNilHost
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.style.Validate(); err != nil {
		return nil, err
	}
	if o.scheduler == nil {
		o.scheduler = NewFrameQueue()
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}

	s := &Surface{
		id:        o.id,
		host:      host,
		scheduler: o.scheduler,
		capturer:  o.capturer,
		style:     o.style,
		dpr:       1,
		points:    make([]Point, 0, 64),
	}
	s.applyStyle()
	return s, nil
}

// MustNew is like New but panics on error.
func MustNew(host Host, opts ...Option) *Surface {
	s, err := New(host, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// ID returns the surface identifier.
func (s *Surface) ID() string {
	return s.id
}

// Scheduler returns the frame scheduler used to coalesce resize passes.
func (s *Surface) Scheduler() FrameScheduler {
	return s.scheduler
}

// Mount provisions the backing buffer immediately, so the first stroke is
// not pixelated, and schedules a follow-up pass for layout that settles
// during the first frame. Mounting twice or after Close is a no-op.
func (s *Surface) Mount() {
	if s.mounted || s.closed {
		return
	}
	s.mounted = true
	s.resize()
	s.scheduleResize("mount")
	s.logger().Info("sigpad: surface mounted", "width", s.Width(), "height", s.Height(), "dpr", s.dpr)
}

// Close tears the surface down: the pending resize is cancelled, an active
// stroke releases its pointer and the backing buffer is dropped.
// Close is idempotent and always returns nil. Implements io.Closer.
func (s *Surface) Close() error {
	if s.closed {
		return nil
	}
	if s.active {
		s.release()
	}
	s.cancelPendingResize()
	s.closed = true
	s.buf = nil
	s.version++
	s.logger().Info("sigpad: surface closed")
	return nil
}

// Closed reports whether Close has been called.
func (s *Surface) Closed() bool {
	return s.closed
}

// Style returns the current ink style.
func (s *Surface) Style() Style {
	return s.style
}

// SetStyle replaces the ink style. It applies from the next paint on;
// pixels already rendered keep their color and width.
func (s *Surface) SetStyle(st Style) error {
	if err := st.Validate(); err != nil {
		return err
	}
	s.style = st
	s.applyStyle()
	return nil
}

// SetStrokeColor changes the ink color for subsequent paints.
func (s *Surface) SetStrokeColor(c RGBA) {
	s.style.Color = c
	s.applyStyle()
}

// SetStrokeWidth changes the ink width (CSS pixels) for subsequent paints.
func (s *Surface) SetStrokeWidth(w float64) error {
	if err := validateWidth(w); err != nil {
		return err
	}
	s.style.Width = w
	s.applyStyle()
	return nil
}

// PaintConfig returns the configuration the next paint will use.
func (s *Surface) PaintConfig() PaintConfig {
	return s.paint
}

func (s *Surface) applyStyle() {
	s.paint = s.style.PaintConfig(s.dpr)
}

// Width returns the buffer width in pixels, 0 without a buffer.
func (s *Surface) Width() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.Width()
}

// Height returns the buffer height in pixels, 0 without a buffer.
func (s *Surface) Height() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.Height()
}

// DisplaySize returns the CSS size the buffer is displayed at.
func (s *Surface) DisplaySize() (width, height float64) {
	return s.displayW, s.displayH
}

// DevicePixelRatio returns the ratio the buffer was provisioned for.
func (s *Surface) DevicePixelRatio() float64 {
	return s.dpr
}

// Buffer returns the backing buffer, or nil when there is no render target.
// The buffer is owned by the surface and must be treated as read-only; it
// is replaced, not mutated in size, by resize passes.
func (s *Surface) Buffer() *Buffer {
	return s.buf
}

// Active reports whether a stroke currently owns the surface.
func (s *Surface) Active() bool {
	return s.active
}

// Version increases whenever the pixels or the buffer itself change.
// Hosts compare versions to skip redundant uploads.
func (s *Surface) Version() uint64 {
	return s.version
}

// TakeDamage returns the buffer rectangle changed since the previous call
// and resets it.
func (s *Surface) TakeDamage() image.Rectangle {
	r := s.damage
	s.damage = image.Rectangle{}
	return r
}

// Flush completes any scheduled resize pass synchronously. After Flush the
// buffer matches the last container measurement and nothing is pending.
func (s *Surface) Flush() {
	if !s.resizePending {
		return
	}
	s.cancelPendingResize()
	s.resize()
}

// Snapshot flushes pending work and returns a copy of the rendered pixels.
// It returns ErrNoTarget when there is nothing to capture.
func (s *Surface) Snapshot() (*image.RGBA, error) {
	s.Flush()
	if s.buf == nil {
		return nil, fmt.Errorf("%w: surface %s", ErrNoTarget, s.id)
	}
	return s.buf.Clone().RGBA(), nil
}

// ready reports whether the surface may paint.
func (s *Surface) ready() bool {
	return s.mounted && !s.closed && s.buf != nil
}

func (s *Surface) logger() *slog.Logger {
	return Logger().With(slog.String("surface", s.id))
}
