package metrics

import (
	"math"

	"github.com/san-kum/partsim/internal/dynamo"
)

// MomentumDrift tracks the largest change of total momentum relative to the
// first frame, scaled by the sum of |m*v| at that frame. Particle contacts
// conserve momentum under every resolver, so between wall bounces the value
// only grows through rounding.
type MomentumDrift struct {
	name    string
	px0     float64
	py0     float64
	scale   float64
	drift   float64
	samples int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(f dynamo.Frame) {
	px, py := f.Momentum()
	if m.samples == 0 {
		m.px0, m.py0 = px, py
		for _, b := range f.Bodies {
			m.scale += b.Mass * b.Speed()
		}
	}
	m.samples++

	if m.scale > 0 {
		m.drift = math.Max(m.drift, math.Hypot(px-m.px0, py-m.py0)/m.scale)
	}
}

func (m *MomentumDrift) Value() float64 { return m.drift }

func (m *MomentumDrift) Reset() {
	*m = MomentumDrift{name: m.name}
}
