package sigpad

import (
	"math"
	"testing"
)

func TestTargetSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h, dpr    float64
		wantW, wantH int
		wantOK       bool
	}{
		{"retina", 300, 150, 2, 600, 300, true},
		{"standard", 640, 480, 1, 640, 480, true},
		{"fractional floors", 100.7, 50.2, 1.5, 151, 75, true},
		{"tiny rounds up to one", 0.3, 0.3, 1, 1, 1, true},
		{"invalid dpr is one", 120, 80, 0, 120, 80, true},
		{"nan dpr is one", 120, 80, math.NaN(), 120, 80, true},
		{"zero width", 0, 80, 2, 0, 0, false},
		{"zero height", 120, 0, 2, 0, 0, false},
		{"negative", -5, 80, 1, 0, 0, false},
		{"nan", math.NaN(), 80, 1, 0, 0, false},
		{"inf", math.Inf(1), 80, 1, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, ok := TargetSize(tt.w, tt.h, tt.dpr)
			if w != tt.wantW || h != tt.wantH || ok != tt.wantOK {
				t.Errorf("TargetSize(%v, %v, %v) = (%d, %d, %v), want (%d, %d, %v)",
					tt.w, tt.h, tt.dpr, w, h, ok, tt.wantW, tt.wantH, tt.wantOK)
			}
		})
	}
}

func TestResizeCoalescing(t *testing.T) {
	s, host, q := newMounted(t, 300, 150, 1)
	if got := s.Reallocations(); got != 1 {
		t.Fatalf("Reallocations() after mount = %d, want 1", got)
	}

	host.w, host.h = 400, 200
	s.NotifyContainerResize()
	s.NotifyWindowResize()
	host.dpr = 2
	s.NotifyPixelRatioChange()

	if q.Pending() != 1 {
		t.Fatalf("pending frames = %d, want 1", q.Pending())
	}
	if s.Width() != 300 {
		t.Error("resize ran before the frame")
	}

	q.RunFrame()
	if got := s.Reallocations(); got != 2 {
		t.Errorf("Reallocations() = %d, want 2", got)
	}
	if s.Width() != 800 || s.Height() != 400 {
		t.Errorf("buffer = %dx%d, want 800x400", s.Width(), s.Height())
	}
	if s.ResizePending() {
		t.Error("ResizePending() after the frame ran")
	}
}

func TestResizeSameSizeKeepsBuffer(t *testing.T) {
	s, _, q := newMounted(t, 300, 150, 1)
	buf := s.Buffer()

	s.NotifyWindowResize()
	q.RunFrame()

	if s.Buffer() != buf {
		t.Error("unchanged container reallocated the buffer")
	}
	if s.Reallocations() != 1 {
		t.Errorf("Reallocations() = %d, want 1", s.Reallocations())
	}
}

func TestResizePreservesInk(t *testing.T) {
	s, host, q := newMounted(t, 200, 100, 1, WithStrokeWidth(6))

	_ = s.BeginStroke(Pt(20, 50))
	s.ExtendStroke(Pt(180, 50))
	s.EndStroke()

	steps := []struct {
		name string
		w, h float64
		x, y int
	}{
		{"shrink", 100, 50, 50, 25},
		{"grow", 400, 200, 200, 100},
	}
	for _, st := range steps {
		host.w, host.h = st.w, st.h
		s.NotifyContainerResize()
		q.RunFrame()

		if s.Width() != int(st.w) || s.Height() != int(st.h) {
			t.Fatalf("%s: buffer = %dx%d, want %vx%v", st.name, s.Width(), s.Height(), st.w, st.h)
		}
		if s.Buffer().At(st.x, st.y).A == 0 {
			t.Errorf("%s: ink at (%d,%d) lost", st.name, st.x, st.y)
		}
		if s.Buffer().At(st.x, 0).A != 0 {
			t.Errorf("%s: ink smeared to the top edge", st.name)
		}
	}
}

func TestPixelRatioChange(t *testing.T) {
	s, host, q := newMounted(t, 100, 50, 1, WithStrokeWidth(2))

	host.dpr = 3
	s.NotifyPixelRatioChange()
	q.RunFrame()

	if s.Width() != 300 || s.Height() != 150 {
		t.Errorf("buffer = %dx%d, want 300x150", s.Width(), s.Height())
	}
	if s.DevicePixelRatio() != 3 {
		t.Errorf("DevicePixelRatio() = %v, want 3", s.DevicePixelRatio())
	}
	if s.PaintConfig().LineWidth != 6 {
		t.Errorf("LineWidth = %v, want 6", s.PaintConfig().LineWidth)
	}
}

func TestZeroContainerDefersProvisioning(t *testing.T) {
	s, host, q := newMounted(t, 0, 0, 2)
	if s.Buffer() != nil {
		t.Fatal("buffer allocated for a zero-sized container")
	}

	host.w, host.h = 150, 75
	s.NotifyContainerResize()
	q.RunFrame()

	if s.Width() != 300 || s.Height() != 150 {
		t.Errorf("buffer = %dx%d, want 300x150", s.Width(), s.Height())
	}
}

func TestCollapsedContainerKeepsBuffer(t *testing.T) {
	s, host, q := newMounted(t, 100, 50, 1, WithStrokeWidth(4))
	_ = s.BeginStroke(Pt(50, 25))
	s.EndStroke()

	host.w, host.h = 0, 0
	s.NotifyContainerResize()
	q.RunFrame()

	if s.Width() != 100 || s.Height() != 50 {
		t.Errorf("buffer = %dx%d, want 100x50 kept", s.Width(), s.Height())
	}
	if s.Buffer().At(50, 25).A == 0 {
		t.Error("collapsed container lost ink")
	}
}

func TestResizeDuringStroke(t *testing.T) {
	s, host, q := newMounted(t, 200, 100, 1, WithStrokeWidth(2))

	_ = s.BeginStroke(Pt(10, 10))
	s.ExtendStroke(Pt(20, 20))

	host.w, host.h = 400, 200
	s.NotifyContainerResize()
	q.RunFrame()

	if !s.Active() {
		t.Fatal("resize ended the active stroke")
	}
	v := s.Version()
	s.ExtendStroke(Pt(30, 30))
	if s.Version() == v {
		t.Error("stroke could not continue after resize")
	}
	s.EndStroke()
	if s.Active() {
		t.Error("EndStroke() after resize did not release")
	}
}

func TestBeginStrokeCatchesUpWithLayout(t *testing.T) {
	s, host, q := newMounted(t, 100, 50, 1)

	host.w, host.h = 200, 100
	s.NotifyContainerResize()
	_ = s.BeginStroke(Pt(150, 80))

	if s.Width() != 200 {
		t.Errorf("Width() = %d, want 200 before the first point", s.Width())
	}
	reallocs := s.Reallocations()
	q.RunFrame()
	if s.Reallocations() != reallocs {
		t.Error("scheduled pass reallocated an up-to-date buffer")
	}
}

func TestClearAppliesPendingResize(t *testing.T) {
	s, host, _ := newMounted(t, 100, 50, 1, WithStrokeWidth(4))
	_ = s.BeginStroke(Pt(50, 25))
	s.EndStroke()

	host.w, host.h = 60, 30
	s.NotifyContainerResize()
	s.Clear()

	if s.Width() != 60 || s.Height() != 30 {
		t.Errorf("buffer = %dx%d, want 60x30", s.Width(), s.Height())
	}
	if !s.Buffer().IsEmpty() {
		t.Error("buffer not empty after Clear")
	}
}

// syncScheduler runs frame callbacks immediately.
type syncScheduler struct{ calls int }

func (s *syncScheduler) RequestFrame(fn func()) func() {
	s.calls++
	fn()
	return func() {}
}

func TestSynchronousScheduler(t *testing.T) {
	host := &testHost{w: 100, h: 50, dpr: 1}
	sched := &syncScheduler{}
	s := MustNew(host, WithScheduler(sched))
	defer s.Close()

	s.Mount()
	host.w = 120
	s.NotifyContainerResize()

	if s.Width() != 120 {
		t.Errorf("Width() = %d, want 120", s.Width())
	}
	if s.ResizePending() {
		t.Error("ResizePending() with a synchronous scheduler")
	}
	if sched.calls != 2 {
		t.Errorf("frames requested = %d, want 2", sched.calls)
	}
}
