package chart

import (
	"encoding/csv"
	"io"
	"strconv"

	"schedgantt/internal/config"
	"schedgantt/internal/trace"
)

// CSV writes one record per interval, preceded by a header.
type CSV struct{}

func (CSV) Render(w io.Writer, tl *trace.Timelines) error {
	cw := csv.NewWriter(w)

	// write header
	cw.Write([]string{"core", "pid", "start", "end", "duration"})
	for _, r := range Rows(tl) {
		cw.Write([]string{
			strconv.Itoa(r.Core),
			strconv.Itoa(r.PID),
			strconv.Itoa(r.Start),
			strconv.Itoa(r.End),
			strconv.Itoa(r.Duration),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return &RenderError{Mode: config.ModeCSV, Err: err}
	}
	return nil
}
