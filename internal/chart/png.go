package chart

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"schedgantt/internal/config"
	"schedgantt/internal/trace"
)

const (
	marginLeft   = 64
	marginRight  = 16
	marginTop    = 12
	marginBottom = 28
	dashLength   = 3
	dashGap      = 3

	defaultMaxWidth = 8192
)

var face = basicfont.Face7x13

// PNG draws a Gantt chart: one row per core with data, one bar per interval,
// x-axis spanning [0, max end] plus one slot of padding.
type PNG struct {
	Palette    Palette
	SlotWidth  int // px per slot, shrunk to fit MaxWidth
	RowHeight  int
	MaxWidth   int
	Background color.RGBA
	Grid       color.RGBA
	Foreground color.RGBA
}

// layout is the geometry of one rendering.
type layout struct {
	cores  []int
	slots  int // number of slot columns, max end + 1
	slotW  int
	axisY  int
	width  int
	height int
}

func (p *PNG) layout(tl *trace.Timelines) (layout, error) {
	l := layout{cores: tl.Active()}
	if len(l.cores) == 0 {
		return l, &RenderError{Mode: config.ModePNG, Err: ErrEmptyChart}
	}
	limit := p.MaxWidth
	if limit <= 0 {
		limit = defaultMaxWidth
	}
	avail := limit - marginLeft - marginRight

	// compare before multiplying: end slots can be as large as the trace says
	maxEnd := tl.MaxEnd()
	if avail < 1 || maxEnd >= avail {
		return l, renderErrorf(config.ModePNG, "time slot %d does not fit in %dpx", maxEnd, limit)
	}
	l.slots = maxEnd + 1

	l.slotW = p.SlotWidth
	if l.slotW < 1 || l.slots > avail/l.slotW {
		l.slotW = avail / l.slots
	}

	l.axisY = marginTop + len(l.cores)*p.RowHeight
	l.width = marginLeft + l.slots*l.slotW + marginRight
	l.height = l.axisY + marginBottom
	return l, nil
}

func (p *PNG) Render(w io.Writer, tl *trace.Timelines) error {
	img, err := p.Draw(tl)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return &RenderError{Mode: config.ModePNG, Err: err}
	}
	return nil
}

// Draw renders the chart into an image without encoding it.
func (p *PNG) Draw(tl *trace.Timelines) (*image.RGBA, error) {
	l, err := p.layout(tl)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, l.width, l.height))
	fill(img, img.Bounds(), p.Background)

	x := func(slot int) int { return marginLeft + slot*l.slotW }

	// dashed gridlines, one per slot boundary
	for s := 0; s <= l.slots; s++ {
		for y := marginTop; y < l.axisY; y += dashLength + dashGap {
			fill(img, image.Rect(x(s), y, x(s)+1, min(y+dashLength, l.axisY)), p.Grid)
		}
	}

	// x axis and tick labels; skip labels that would overlap
	fill(img, image.Rect(marginLeft, l.axisY, x(l.slots), l.axisY+1), p.Foreground)
	step := 1
	for step*l.slotW < textWidth(strconv.Itoa(l.slots-1))+6 {
		step++
	}
	for s := 0; s < l.slots; s += step {
		fill(img, image.Rect(x(s), l.axisY, x(s)+1, l.axisY+4), p.Foreground)
		drawText(img, strconv.Itoa(s), x(s), l.axisY+6+face.Ascent, p.Foreground, alignCenter)
	}

	// rows bottom-up: the first core with data sits right above the axis
	for row, core := range l.cores {
		top := l.axisY - (row+1)*p.RowHeight
		barTop := top + face.Height + 2
		barBottom := top + p.RowHeight - 3
		if barBottom-barTop < 2 {
			barTop = barBottom - 2
		}
		drawText(img, fmt.Sprintf("CPU%d", core), marginLeft-8, (barTop+barBottom)/2+face.Ascent/2, p.Foreground, alignRight)

		for _, iv := range tl.Core(core) {
			c := p.Palette.Color(iv.PID)
			x0, x1 := x(iv.Start), x(iv.End)
			if x1 <= x0 {
				x1 = x0 + 1
			}
			fill(img, image.Rect(x0, barTop, x1, barBottom), c)
			if x1-x0 > 2 {
				// edges in the background colour keep adjacent bars apart
				fill(img, image.Rect(x0, barTop, x0+1, barBottom), p.Background)
				fill(img, image.Rect(x1-1, barTop, x1, barBottom), p.Background)
			}
			drawText(img, fmt.Sprintf("PID: %d", iv.PID), (x0+x1)/2, top+face.Ascent+1, c, alignCenter)
		}
	}
	return img, nil
}

func fill(img draw.Image, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

type alignment int

const (
	alignLeft alignment = iota
	alignCenter
	alignRight
)

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}

// drawText draws s with its baseline at y, anchored at x according to align.
func drawText(img draw.Image, s string, x, y int, c color.RGBA, align alignment) {
	switch align {
	case alignCenter:
		x -= textWidth(s) / 2
	case alignRight:
		x -= textWidth(s)
	}
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}
