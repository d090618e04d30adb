package chart

import (
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/emirpasic/gods/maps/treemap"

	"schedgantt/internal/config"
	"schedgantt/internal/trace"
)

const cellWidth = 10

// Table prints the intervals as aligned columns followed by a per-pid summary.
// Colours are only emitted when w is a colour-capable terminal.
type Table struct {
	Palette Palette
}

type usage struct {
	intervals int
	busy      int
}

func (t *Table) Render(w io.Writer, tl *trace.Timelines) error {
	r := lipgloss.NewRenderer(w)
	cell := r.NewStyle().Width(cellWidth).Align(lipgloss.Right)
	header := cell.Copy().Bold(true)
	title := r.NewStyle().Bold(true).MarginTop(1)

	line := func(style func(col int) lipgloss.Style, values ...string) string {
		cells := make([]string, len(values))
		for i, v := range values {
			cells[i] = style(i).Render(v)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	headerStyle := func(int) lipgloss.Style { return header }
	// pidStyle colours column pidCol in the pid's palette colour.
	pidStyle := func(pid, pidCol int) func(col int) lipgloss.Style {
		colored := cell.Copy().Foreground(lipgloss.Color(t.Palette.Hex(pid)))
		return func(col int) lipgloss.Style {
			if col == pidCol {
				return colored
			}
			return cell
		}
	}

	var out []string
	out = append(out, line(headerStyle, "CORE", "PID", "START", "END", "DURATION"))

	totals := treemap.NewWithIntComparator() // pid -> *usage
	for _, row := range Rows(tl) {
		out = append(out, line(pidStyle(row.PID, 1),
			strconv.Itoa(row.Core),
			strconv.Itoa(row.PID),
			strconv.Itoa(row.Start),
			strconv.Itoa(row.End),
			strconv.Itoa(row.Duration),
		))

		u, found := totals.Get(row.PID)
		if !found {
			u = &usage{}
			totals.Put(row.PID, u)
		}
		u.(*usage).intervals++
		u.(*usage).busy += row.Duration
	}

	out = append(out, title.Render("Summary"))
	out = append(out, line(headerStyle, "PID", "INTERVALS", "BUSY"))
	it := totals.Iterator()
	for it.Next() {
		pid, u := it.Key().(int), it.Value().(*usage)
		out = append(out, line(pidStyle(pid, 0), strconv.Itoa(pid), strconv.Itoa(u.intervals), strconv.Itoa(u.busy)))
	}

	if _, err := io.WriteString(w, strings.Join(out, "\n")+"\n"); err != nil {
		return &RenderError{Mode: config.ModeTable, Err: err}
	}
	return nil
}
