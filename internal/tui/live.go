package tui

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/san-kum/partsim/internal/dynamo"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is an observer that redraws a plain ASCII view of the arena
// at most frameRate times per second. It works on any terminal, including
// ones the Bubble Tea view cannot drive.
type LiveRenderer struct {
	out       io.Writer
	frameRate int
	lastFrame time.Time
	canvas    [][]rune
}

func NewLiveRenderer(out io.Writer, frameRate int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	if frameRate <= 0 {
		frameRate = 30
	}
	return &LiveRenderer{
		out:       out,
		frameRate: frameRate,
		canvas:    canvas,
	}
}

func (r *LiveRenderer) OnStep(f dynamo.Frame) {
	elapsed := time.Since(r.lastFrame)
	if elapsed < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()

	r.Draw(f)
	fmt.Fprint(r.out, clearScreen+r.String(f))
}

// Draw rasterises f onto the canvas. Bodies are filled with the first
// letter of their colour; overlaps show whichever body was drawn last.
func (r *LiveRenderer) Draw(f dynamo.Frame) {
	r.clear()
	if f.Width <= 0 || f.Height <= 0 {
		return
	}
	sx := float64(width) / f.Width
	sy := float64(height) / f.Height

	for _, b := range f.Bodies {
		mark := 'o'
		if b.Color != "" {
			mark = rune(b.Color[0])
		}
		x0, x1 := int(math.Floor((b.X-b.Radius)*sx)), int(math.Ceil((b.X+b.Radius)*sx))
		y0, y1 := int(math.Floor((b.Y-b.Radius)*sy)), int(math.Ceil((b.Y+b.Radius)*sy))
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dx := (float64(x)+0.5)/sx - b.X
				dy := (float64(y)+0.5)/sy - b.Y
				if dx*dx+dy*dy <= b.Radius*b.Radius {
					r.set(x, y, mark)
				}
			}
		}
		r.set(int(b.X*sx), int(b.Y*sy), mark)
	}
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// String renders the last drawn canvas with a status line for f.
func (r *LiveRenderer) String(f dynamo.Frame) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("  tick=%d  collisions=%d (walls %d, pairs %d)\n", f.Tick, f.Collisions, f.Walls, f.Pairs))
	b.WriteString("  +" + strings.Repeat("-", width) + "+\n")
	for _, row := range r.canvas {
		b.WriteString("  |")
		b.WriteString(string(row))
		b.WriteString("|\n")
	}
	b.WriteString("  +" + strings.Repeat("-", width) + "+\n")
	return b.String()
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
