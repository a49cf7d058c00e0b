package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/viz"
)

const background = "#0a0a0a"

// fill resolves a particle colour name through the terminal palette so both
// renderers agree. Unknown names are written as given.
func fill(name string) string {
	if c, ok := viz.Palette[name]; ok {
		return string(c)
	}
	if name == "" {
		return "#cccccc"
	}
	return name
}

func header(sb *strings.Builder, w, h float64) {
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, w, h, w, h, background))
}

func writeBodies(sb *strings.Builder, bodies []dynamo.Body) {
	sb.WriteString(`<g font-family="monospace" text-anchor="middle" dominant-baseline="central">` + "\n")
	for _, b := range bodies {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>
`, b.X, b.Y, b.Radius, fill(b.Color)))
		if size := b.Radius / 2.5; size >= 8 {
			sb.WriteString(fmt.Sprintf(`<text x="%.2f" y="%.2f" font-size="%.0f" fill="#000">m=%gKg</text>
`, b.X, b.Y, min(size, 20), b.Mass))
		}
	}
	sb.WriteString("</g>\n")
}

// FrameToSVG draws the arena and every body of f as a filled circle with
// its mass label.
func FrameToSVG(f dynamo.Frame) string {
	if f.Width <= 0 || f.Height <= 0 {
		return ""
	}
	var sb strings.Builder
	header(&sb, f.Width, f.Height)
	writeBodies(&sb, f.Bodies)
	sb.WriteString("</svg>")
	return sb.String()
}

// TrajectoriesToSVG draws the path of every body across frames underneath
// the last frame. Frames must share one population.
func TrajectoriesToSVG(frames []dynamo.Frame) string {
	if len(frames) == 0 {
		return ""
	}
	last := frames[len(frames)-1]
	if last.Width <= 0 || last.Height <= 0 {
		return ""
	}

	var sb strings.Builder
	header(&sb, last.Width, last.Height)

	for i, b := range last.Bodies {
		var d strings.Builder
		n := 0
		for _, f := range frames {
			if i >= len(f.Bodies) {
				continue
			}
			p := f.Bodies[i]
			if n == 0 {
				d.WriteString(fmt.Sprintf("M%.1f,%.1f", p.X, p.Y))
			} else {
				d.WriteString(fmt.Sprintf(" L%.1f,%.1f", p.X, p.Y))
			}
			n++
		}
		if n < 2 {
			continue
		}
		sb.WriteString(fmt.Sprintf(`<path fill="none" stroke="%s" stroke-opacity="0.5" stroke-width="1.5" d="%s"/>
`, fill(b.Color), d.String()))
	}

	writeBodies(&sb, last.Bodies)
	sb.WriteString("</svg>")
	return sb.String()
}
