package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/partsim/internal/dynamo"
)

// VelocityScatter plots every body of f at (vx, vy) on a width x height
// grid centred on the origin, with axes drawn through zero.
func VelocityScatter(f dynamo.Frame, width, height int) string {
	if len(f.Bodies) == 0 || width < 3 || height < 3 {
		return ""
	}

	// symmetric bounds so the axes sit in the middle
	limit := 0.0
	for _, b := range f.Bodies {
		limit = math.Max(limit, math.Max(math.Abs(b.VX), math.Abs(b.VY)))
	}
	if limit == 0 {
		limit = 1
	}
	limit *= 1.1

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	midCol, midRow := (width-1)/2, (height-1)/2
	for row := 0; row < height; row++ {
		canvas[row][midCol] = '│'
	}
	for col := 0; col < width; col++ {
		canvas[midRow][col] = '─'
	}
	canvas[midRow][midCol] = '┼'

	for _, b := range f.Bodies {
		col := int(math.Round((b.VX + limit) / (2 * limit) * float64(width-1)))
		row := height - 1 - int(math.Round((b.VY+limit)/(2*limit)*float64(height-1)))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
