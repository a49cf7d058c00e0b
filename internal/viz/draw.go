package viz

import (
	"fmt"

	"github.com/san-kum/partsim/internal/dynamo"
)

// DrawFrame clears c and projects f onto it: the arena outline, one
// ellipse per body (the arena is usually not square, so discs come out as
// ellipses), and a mass label on bodies large enough to hold one.
func DrawFrame(c *Canvas, f dynamo.Frame) {
	c.Clear()
	if f.Width <= 0 || f.Height <= 0 {
		return
	}

	pw, ph := c.PixelSize()
	sx := float64(pw-1) / f.Width
	sy := float64(ph-1) / f.Height

	c.DrawLine(0, 0, pw-1, 0, "wall")
	c.DrawLine(pw-1, 0, pw-1, ph-1, "wall")
	c.DrawLine(pw-1, ph-1, 0, ph-1, "wall")
	c.DrawLine(0, ph-1, 0, 0, "wall")

	for _, b := range f.Bodies {
		cx, cy := b.X*sx, b.Y*sy
		rx, ry := b.Radius*sx, b.Radius*sy
		c.DrawEllipse(cx, cy, rx, ry, b.Color)

		label := fmt.Sprintf("%g", b.Mass)
		if rx >= float64(2*len(label)) && ry >= 4 {
			c.Label(int(cx)/2, int(cy)/4, label)
		}
	}
}
