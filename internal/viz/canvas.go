package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const blank = 0x2800

// Canvas is a braille pixel grid. Each cell holds 2x4 sub-pixels, one
// colour name and optionally one overlay rune for labels.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Colors        [][]string
	overlay       [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:   w,
		Height:  h,
		Grid:    make([][]rune, h),
		Colors:  make([][]string, h),
		overlay: make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
		c.Colors[i] = make([]string, w)
		c.overlay[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// PixelSize is the canvas size in sub-pixels.
func (c *Canvas) PixelSize() (w, h int) { return c.Width * 2, c.Height * 4 }

// Set lights the sub-pixel (x, y) and tags its cell with color.
func (c *Canvas) Set(x, y int, color string) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if color != "" {
		c.Colors[row][col] = color
	}
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = blank
			c.Colors[i][j] = ""
			c.overlay[i][j] = 0
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int, color string) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0, color)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawEllipse outlines an axis-aligned ellipse in sub-pixel coordinates.
func (c *Canvas) DrawEllipse(cx, cy, rx, ry float64, color string) {
	if rx < 0.5 && ry < 0.5 {
		c.Set(int(cx), int(cy), color)
		return
	}
	steps := int(2 * math.Pi * math.Max(rx, ry))
	if steps < 8 {
		steps = 8
	}
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		c.Set(int(math.Round(cx+rx*math.Cos(a))), int(math.Round(cy+ry*math.Sin(a))), color)
	}
}

// Label writes text centred on cell (col, row), replacing the braille
// glyphs underneath.
func (c *Canvas) Label(col, row int, text string) {
	if row < 0 || row >= c.Height {
		return
	}
	runes := []rune(text)
	start := col - len(runes)/2
	for i, r := range runes {
		x := start + i
		if x >= 0 && x < c.Width {
			c.overlay[row][x] = r
		}
	}
}

func (c *Canvas) cell(row, col int) rune {
	if r := c.overlay[row][col]; r != 0 {
		return r
	}
	return c.Grid[row][col]
}

func (c *Canvas) String() string {
	var b strings.Builder
	for row := range c.Grid {
		for col := range c.Grid[row] {
			b.WriteRune(c.cell(row, col))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render is String with each run of same-coloured cells styled by style.
func (c *Canvas) Render(style func(color string) lipgloss.Style) string {
	var b strings.Builder
	for row := range c.Grid {
		var run strings.Builder
		current := c.Colors[row][0]
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(style(current).Render(run.String()))
			run.Reset()
		}
		for col := range c.Grid[row] {
			if color := c.Colors[row][col]; color != current {
				flush()
				current = color
			}
			run.WriteRune(c.cell(row, col))
		}
		flush()
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
