package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/san-kum/partsim/internal/dynamo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// SpeedDistribution bins the particle speeds of one frame. Expected holds
// the count each bin would have if every particle of mass m followed the 2D
// Maxwell-Boltzmann speed law at the frame's mean kinetic energy.
type SpeedDistribution struct {
	Edges    []float64
	Counts   []float64
	Expected []float64
	KT       float64
}

// Speeds builds a distribution with the given number of equal-width bins.
// It returns nil for an empty frame or a population at rest.
func Speeds(f dynamo.Frame, bins int) *SpeedDistribution {
	if len(f.Bodies) == 0 || bins <= 0 {
		return nil
	}

	speeds := make([]float64, len(f.Bodies))
	for i, b := range f.Bodies {
		speeds[i] = b.Speed()
	}
	sort.Float64s(speeds)
	top := speeds[len(speeds)-1]
	if top == 0 {
		return nil
	}

	// 2D equipartition: mean kinetic energy per particle equals kT.
	kT := f.KineticEnergy() / float64(len(f.Bodies))

	edges := make([]float64, bins+1)
	// the last divider must sit above the fastest particle
	floats.Span(edges, 0, math.Nextafter(top, math.Inf(1)))

	d := &SpeedDistribution{
		Edges:    edges,
		Counts:   stat.Histogram(nil, edges, speeds, nil),
		Expected: make([]float64, bins),
		KT:       kT,
	}
	for _, b := range f.Bodies {
		for i := 0; i < bins; i++ {
			d.Expected[i] += speedCDF(edges[i+1], b.Mass, kT) - speedCDF(edges[i], b.Mass, kT)
		}
	}
	return d
}

func speedCDF(v, mass, kT float64) float64 {
	return 1 - math.Exp(-mass*v*v/(2*kT))
}

// ASCII draws one bar per bin scaled to width, with the expected count
// marked by '|'.
func (d *SpeedDistribution) ASCII(width int) string {
	if d == nil || len(d.Counts) == 0 {
		return ""
	}
	peak := math.Max(floats.Max(d.Counts), floats.Max(d.Expected))
	if peak == 0 {
		peak = 1
	}

	var sb strings.Builder
	for i, c := range d.Counts {
		bar := int(math.Round(c / peak * float64(width)))
		mark := int(math.Round(d.Expected[i] / peak * float64(width)))

		row := []rune(strings.Repeat("█", bar) + strings.Repeat(" ", max(width-bar, 0)+1))
		if mark >= 0 && mark < len(row) {
			row[mark] = '|'
		}
		sb.WriteString(fmt.Sprintf("%7.2f-%-7.2f %s %3.0f (%.1f)\n",
			d.Edges[i], d.Edges[i+1], string(row), c, d.Expected[i]))
	}
	return sb.String()
}

// MeanFreeTime is the average number of ticks a particle travels between
// contacts, taken between the first and last frame. Each contact involves
// two particles. It is +Inf when no contact happened.
func MeanFreeTime(frames []dynamo.Frame) float64 {
	if len(frames) < 2 {
		return math.Inf(1)
	}
	first, last := frames[0], frames[len(frames)-1]
	contacts := last.Pairs - first.Pairs
	ticks := last.Tick - first.Tick
	if contacts <= 0 || ticks <= 0 {
		return math.Inf(1)
	}
	return float64(ticks) * float64(len(last.Bodies)) / (2 * float64(contacts))
}
