package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/BurntSushi/toml"
	"github.com/gogpu/sigpad"
	"github.com/gogpu/sigpad/export"
)

// Scenario is a recorded signing session.
type Scenario struct {
	Title     string          `toml:"title"`
	Container ContainerConfig `toml:"container"`
	Style     StyleConfig     `toml:"style"`
	Page      PageConfig      `toml:"page"`
	Events    []Event         `toml:"events"`
}

// ContainerConfig is the initial layout of the signature box.
type ContainerConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	DPR    float64 `toml:"dpr"`
}

// StyleConfig is the initial ink.
type StyleConfig struct {
	Color string  `toml:"color"`
	Width float64 `toml:"width"`
}

// PageConfig describes the exported card around the signature box.
type PageConfig struct {
	Background string  `toml:"background"`
	Padding    float64 `toml:"padding"`
}

// Event is one step of the session. Type selects which fields are used:
//
//	down, move, up  pointer, x, y
//	cancel          pointer
//	stroke          pointer, points (down on the first, up on the last)
//	resize          width, height (CSS pixels)
//	dpr             value
//	color           color
//	width           value
//	clear, frame    no fields
type Event struct {
	Type    string       `toml:"type"`
	Pointer int          `toml:"pointer"`
	X       float64      `toml:"x"`
	Y       float64      `toml:"y"`
	Points  [][2]float64 `toml:"points"`
	Width   float64      `toml:"width"`
	Height  float64      `toml:"height"`
	Value   float64      `toml:"value"`
	Color   string       `toml:"color"`
}

// LoadScenario reads a TOML scenario. Unknown keys are logged, not fatal.
func LoadScenario(path string) (*Scenario, error) {
	var sc Scenario
	md, err := toml.DecodeFile(path, &sc)
	if err != nil {
		return nil, fmt.Errorf("sigdemo: load %s: %w", path, err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		sigpad.Logger().Warn("sigdemo: unknown scenario keys", "path", path, "keys", fmt.Sprint(keys))
	}
	return &sc, nil
}

// defaultScenario signs a looping wave followed by a dot.
func defaultScenario() *Scenario {
	const n = 80
	pts := make([][2]float64, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / n
		x := 30 + 230*t
		y := 75 + 40*math.Sin(4*math.Pi*t)*(1-0.6*t)
		pts = append(pts, [2]float64{x, y})
	}
	return &Scenario{
		Title:     "sigdemo",
		Container: ContainerConfig{Width: 300, Height: 150, DPR: 2},
		Style:     StyleConfig{Color: "#f5e6c8", Width: 1.5},
		Page:      PageConfig{Background: "#0b0b0b", Padding: 24},
		Events: []Event{
			{Type: "stroke", Pointer: 1, Points: pts},
			{Type: "down", Pointer: 1, X: 272, Y: 112},
			{Type: "up", Pointer: 1, X: 272, Y: 112},
		},
	}
}

// sessionHost is the container of a replayed session.
type sessionHost struct {
	w, h, dpr float64
}

func (h *sessionHost) ContainerSize() (float64, float64) { return h.w, h.h }
func (h *sessionHost) DevicePixelRatio() float64         { return h.dpr }

// Replay runs the scenario against a new surface driven by a frame queue
// and returns the settled surface.
func Replay(sc *Scenario) (*sigpad.Surface, error) {
	style := sigpad.DefaultStyle()
	if sc.Style.Color != "" {
		c, err := sigpad.ParseHex(sc.Style.Color)
		if err != nil {
			return nil, fmt.Errorf("sigdemo: style: %w", err)
		}
		style.Color = c
	}
	if sc.Style.Width != 0 {
		style.Width = sc.Style.Width
	}

	host := &sessionHost{w: sc.Container.Width, h: sc.Container.Height, dpr: sc.Container.DPR}
	frames := sigpad.NewFrameQueue()
	s, err := sigpad.New(host, sigpad.WithStyle(style), sigpad.WithScheduler(frames))
	if err != nil {
		return nil, fmt.Errorf("sigdemo: %w", err)
	}
	s.Mount()
	frames.RunFrame()

	for i, ev := range sc.Events {
		if err := apply(s, host, frames, ev); err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("sigdemo: event %d (%s): %w", i, ev.Type, err)
		}
	}
	frames.RunFrame()
	s.Flush()

	sigpad.Logger().Debug("sigdemo: scenario replayed",
		"title", sc.Title, "events", len(sc.Events), "width", s.Width(), "height", s.Height())
	return s, nil
}

func apply(s *sigpad.Surface, host *sessionHost, frames *sigpad.FrameQueue, ev Event) error {
	id := ev.Pointer
	if id == 0 {
		id = sigpad.PrimaryPointer
	}

	switch ev.Type {
	case "down":
		s.HandlePointer(sigpad.PointerEvent{ID: id, Kind: sigpad.PointerDown, X: ev.X, Y: ev.Y})
	case "move":
		s.HandlePointer(sigpad.PointerEvent{ID: id, Kind: sigpad.PointerMove, X: ev.X, Y: ev.Y})
	case "up":
		s.HandlePointer(sigpad.PointerEvent{ID: id, Kind: sigpad.PointerUp, X: ev.X, Y: ev.Y})
	case "cancel":
		s.HandlePointer(sigpad.PointerEvent{ID: id, Kind: sigpad.PointerCancel})
	case "stroke":
		if len(ev.Points) == 0 {
			return errors.New("stroke without points")
		}
		for j, p := range ev.Points {
			kind := sigpad.PointerMove
			switch {
			case j == 0:
				kind = sigpad.PointerDown
			case j == len(ev.Points)-1:
				kind = sigpad.PointerUp
			}
			s.HandlePointer(sigpad.PointerEvent{ID: id, Kind: kind, X: p[0], Y: p[1]})
		}
		if len(ev.Points) == 1 {
			s.HandlePointer(sigpad.PointerEvent{ID: id, Kind: sigpad.PointerUp, X: ev.Points[0][0], Y: ev.Points[0][1]})
		}
	case "resize":
		host.w, host.h = ev.Width, ev.Height
		s.NotifyContainerResize()
	case "dpr":
		host.dpr = ev.Value
		s.NotifyPixelRatioChange()
	case "color":
		c, err := sigpad.ParseHex(ev.Color)
		if err != nil {
			return err
		}
		s.SetStrokeColor(c)
	case "width":
		return s.SetStrokeWidth(ev.Value)
	case "clear":
		s.Clear()
	case "frame":
		frames.RunFrame()
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
	return nil
}

// ExportPage lays the surface out on the card described by the scenario.
func (sc *Scenario) ExportPage(s *sigpad.Surface) (export.Page, error) {
	var bg color.Color = export.DefaultBackground
	if sc.Page.Background != "" {
		c, err := sigpad.ParseHex(sc.Page.Background)
		if err != nil {
			return export.Page{}, fmt.Errorf("sigdemo: page: %w", err)
		}
		bg = c.Color()
	}

	w, h := s.DisplaySize()
	pad := math.Max(0, sc.Page.Padding)
	return export.Page{
		Width:      w + 2*pad,
		Height:     h + 2*pad,
		Background: bg,
		Layers: []export.Layer{
			{Source: s, X: pad, Y: pad, Width: w, Height: h},
		},
	}, nil
}
