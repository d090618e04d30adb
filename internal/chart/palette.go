package chart

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette assigns colours to pids. Pids beyond the palette size wrap around.
type Palette []color.RGBA

// Color returns palette[(pid-1) mod len(palette)].
func (p Palette) Color(pid int) color.RGBA {
	n := len(p)
	if n == 0 {
		return color.RGBA{0x80, 0x80, 0x80, 0xff}
	}
	return p[((pid-1)%n+n)%n]
}

// Hex returns the colour of pid as "#rrggbb".
func (p Palette) Hex(pid int) string {
	c, _ := colorful.MakeColor(p.Color(pid))
	return c.Hex()
}

