// Package chart draws per-core timelines produced by the trace parser.
package chart

import (
	"fmt"
	"image/color"
	"io"

	"schedgantt/internal/config"
	"schedgantt/internal/trace"
)

// Renderer turns parsed timelines into a chart artifact written to w.
// Timelines are read-only to a Renderer.
type Renderer interface {
	Render(w io.Writer, tl *trace.Timelines) error
}

// New returns the renderer selected by cfg.Mode.
func New(cfg config.Config) (Renderer, error) {
	colors, err := cfg.Colors()
	if err != nil {
		return nil, &RenderError{Mode: cfg.Mode, Err: err}
	}
	palette := Palette(colors)

	switch cfg.Mode {
	case config.ModePNG:
		var cs [3]color.RGBA
		for i, hex := range []string{cfg.Chart.Background, cfg.Chart.Grid, cfg.Chart.Foreground} {
			if cs[i], err = config.ParseColor(hex); err != nil {
				return nil, &RenderError{Mode: cfg.Mode, Err: err}
			}
		}
		return &PNG{
			Palette:    palette,
			SlotWidth:  cfg.Chart.SlotWidth,
			RowHeight:  cfg.Chart.RowHeight,
			MaxWidth:   cfg.Chart.MaxWidth,
			Background: cs[0],
			Grid:       cs[1],
			Foreground: cs[2],
		}, nil
	case config.ModeTable:
		return &Table{Palette: palette}, nil
	case config.ModeCSV:
		return &CSV{}, nil
	}
	return nil, &RenderError{Mode: cfg.Mode, Err: fmt.Errorf("%w %q", ErrUnknownMode, cfg.Mode)}
}

// Row is one interval flattened for tabular output.
type Row struct {
	Core     int
	PID      int
	Start    int
	End      int
	Duration int
}

// Rows flattens tl in core order, then dispatch order.
func Rows(tl *trace.Timelines) []Row {
	var rows []Row
	tl.Each(func(core int, ctl trace.CoreTimeline) {
		for _, iv := range ctl {
			rows = append(rows, Row{
				Core:     core,
				PID:      iv.PID,
				Start:    iv.Start,
				End:      iv.End,
				Duration: iv.Duration(),
			})
		}
	})
	return rows
}
