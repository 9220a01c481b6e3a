package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/sigpad"
	"github.com/gogpu/sigpad/export"
)

func TestLoadScenario(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "guestbook.toml"))
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}
	if sc.Title != "guestbook" {
		t.Errorf("Title = %q, want guestbook", sc.Title)
	}
	if sc.Container != (ContainerConfig{Width: 300, Height: 150, DPR: 2}) {
		t.Errorf("Container = %+v", sc.Container)
	}
	if len(sc.Events) != 9 {
		t.Fatalf("len(Events) = %d, want 9", len(sc.Events))
	}
	if got := sc.Events[0].Points; len(got) != 5 || got[1] != [2]float64{60, 80} {
		t.Errorf("stroke points = %v", got)
	}
}

func TestLoadScenarioErrors(t *testing.T) {
	if _, err := LoadScenario(filepath.Join("testdata", "missing.toml")); err == nil {
		t.Error("LoadScenario(missing) succeeded")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("title = \n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadScenario(path); err == nil {
		t.Error("LoadScenario(malformed) succeeded")
	}
}

func TestReplayGuestbook(t *testing.T) {
	sc, err := LoadScenario(filepath.Join("testdata", "guestbook.toml"))
	if err != nil {
		t.Fatalf("LoadScenario() error = %v", err)
	}
	s, err := Replay(sc)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	defer s.Close()

	if s.Width() != 800 || s.Height() != 400 {
		t.Errorf("buffer = %dx%d, want 800x400 after the resize", s.Width(), s.Height())
	}
	if s.Active() {
		t.Error("surface still owned after the session")
	}

	buf := s.Buffer()
	// The second finger's line along y=140 CSS must not exist; the first
	// stroke, rescaled, must.
	if buf.At(400, 373).A != 0 {
		t.Error("ignored pointer left ink")
	}
	if buf.NonTransparent() == 0 {
		t.Fatal("session left no ink")
	}
	// Gold tap at (300,150) CSS on the 400x200 container.
	if c := buf.At(600, 300); c.A == 0 || c.R <= c.B {
		t.Errorf("tap pixel = %v, want gold ink", c)
	}
}

func TestReplayErrors(t *testing.T) {
	tests := []struct {
		name string
		sc   Scenario
	}{
		{"bad style color", Scenario{Container: ContainerConfig{Width: 10, Height: 10}, Style: StyleConfig{Color: "nope"}}},
		{"negative width", Scenario{Container: ContainerConfig{Width: 10, Height: 10}, Style: StyleConfig{Width: -1}}},
		{"unknown event", Scenario{Container: ContainerConfig{Width: 10, Height: 10}, Events: []Event{{Type: "hover"}}}},
		{"empty stroke", Scenario{Container: ContainerConfig{Width: 10, Height: 10}, Events: []Event{{Type: "stroke"}}}},
		{"bad event color", Scenario{Container: ContainerConfig{Width: 10, Height: 10}, Events: []Event{{Type: "color", Color: "#12"}}}},
		{"bad event width", Scenario{Container: ContainerConfig{Width: 10, Height: 10}, Events: []Event{{Type: "width"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Replay(&tt.sc); err == nil {
				t.Error("Replay() succeeded")
			}
		})
	}

	_, err := Replay(&Scenario{Container: ContainerConfig{Width: 10, Height: 10}, Events: []Event{{Type: "width", Value: 0}}})
	if !errors.Is(err, sigpad.ErrInvalidWidth) {
		t.Errorf("Replay(width 0) error = %v, want %v", err, sigpad.ErrInvalidWidth)
	}
}

func TestReplayClearAndDPR(t *testing.T) {
	sc := &Scenario{
		Container: ContainerConfig{Width: 100, Height: 50, DPR: 1},
		Events: []Event{
			{Type: "stroke", Points: [][2]float64{{10, 10}, {90, 40}}},
			{Type: "dpr", Value: 3},
			{Type: "clear"},
		},
	}
	s, err := Replay(sc)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	defer s.Close()

	if s.Width() != 300 || s.Height() != 150 {
		t.Errorf("buffer = %dx%d, want 300x150", s.Width(), s.Height())
	}
	if !s.Buffer().IsEmpty() {
		t.Error("buffer not empty after clear")
	}
}

func TestDefaultScenarioExport(t *testing.T) {
	sc := defaultScenario()
	s, err := Replay(sc)
	if err != nil {
		t.Fatalf("Replay() error = %v", err)
	}
	defer s.Close()

	page, err := sc.ExportPage(s)
	if err != nil {
		t.Fatalf("ExportPage() error = %v", err)
	}
	if page.Width != 348 || page.Height != 198 {
		t.Errorf("page = %vx%v, want 348x198", page.Width, page.Height)
	}

	dir := t.TempDir()
	path, err := (&export.Exporter{Dir: dir}).Save(page, export.Options{})
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("png.Decode() error = %v", err)
	}
	if img.Bounds().Dx() != 696 || img.Bounds().Dy() != 396 {
		t.Errorf("image = %v, want 696x396", img.Bounds().Size())
	}

	pdfPath := filepath.Join(dir, "card.pdf")
	if err := writePDF(pdfPath, page, export.Options{}); err != nil {
		t.Fatalf("writePDF() error = %v", err)
	}
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("PDF output has no header")
	}
}

func TestExportPageBadBackground(t *testing.T) {
	s := sigpad.MustNew(&sessionHost{w: 10, h: 10, dpr: 1})
	sc := &Scenario{Page: PageConfig{Background: "zz"}}
	if _, err := sc.ExportPage(s); err == nil || !strings.Contains(err.Error(), "page") {
		t.Errorf("ExportPage() error = %v, want page error", err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	f := flags{
		config:     filepath.Join("testdata", "guestbook.toml"),
		output:     filepath.Join(dir, "card.png"),
		pdfOutput:  filepath.Join(dir, "card.pdf"),
		pixelRatio: 1,
	}
	if err := run(f); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	for _, name := range []string{"card.png", "card.pdf"} {
		if st, err := os.Stat(filepath.Join(dir, name)); err != nil || st.Size() == 0 {
			t.Errorf("%s not written: %v", name, err)
		}
	}
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		f    flags
		want string
	}{
		{"missing scenario", flags{config: filepath.Join(dir, "nope.toml"), output: filepath.Join(dir, "a.png")}, "failed to load scenario"},
		{"missing output directory", flags{output: filepath.Join(dir, "missing", "a.png"), pixelRatio: 1}, "failed to save"},
		{"missing PDF directory", flags{output: filepath.Join(dir, "b.png"), pdfOutput: filepath.Join(dir, "missing", "b.pdf"), pixelRatio: 1}, "failed to save PDF"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(tt.f)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("run() error = %v, want %q", err, tt.want)
			}
		})
	}
}
