package sigpad

// Option configures a Surface during creation.
//
// Example:
//
//	// White ink on a host-driven frame queue
//	sp, err := sigpad.New(host)
//
//	// Gold ink, 2 CSS pixels wide, frames from an event loop
//	sp, err := sigpad.New(host,
//	    sigpad.WithStyle(sigpad.Style{Color: sigpad.Hex("#b68b2a"), Width: 2}),
//	    sigpad.WithScheduler(loop))
type Option func(*options)

// options holds optional configuration for Surface creation.
type options struct {
	style     Style
	scheduler FrameScheduler
	capturer  PointerCapturer
	id        string
}

func defaultOptions() options {
	return options{
		style:     DefaultStyle(),
		scheduler: nil, // a FrameQueue is created if nil
		capturer:  nil,
	}
}

// WithStyle sets the initial ink style.
func WithStyle(s Style) Option {
	return func(o *options) {
		o.style = s
	}
}

// WithStrokeColor sets the initial ink color.
func WithStrokeColor(c RGBA) Option {
	return func(o *options) {
		o.style.Color = c
	}
}

// WithStrokeWidth sets the initial ink width in CSS pixels.
func WithStrokeWidth(w float64) Option {
	return func(o *options) {
		o.style.Width = w
	}
}

// WithScheduler sets the source of animation frames used to coalesce
// resize passes. Without it the surface creates its own FrameQueue,
// available through Surface.Scheduler.
func WithScheduler(fs FrameScheduler) Option {
	return func(o *options) {
		o.scheduler = fs
	}
}

// WithPointerCapturer installs the platform pointer-capture primitive,
// invoked when a stroke takes and releases ownership of the surface.
func WithPointerCapturer(pc PointerCapturer) Option {
	return func(o *options) {
		o.capturer = pc
	}
}

// WithID overrides the generated surface identifier used in log records.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}
