package sigpad

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while an event loop is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for sigpad and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by sigpad:
//   - [slog.LevelDebug]: buffer reallocations, coalesced resize passes
//   - [slog.LevelInfo]: mount and teardown of surfaces
//   - [slog.LevelWarn]: export failures reported to the host
//
// Example:
//
//	sigpad.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by sigpad.
// Sub-packages (export/, integration/sigcanvas/) share it through this call.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
