package dynamo

import "math"

// Body is a read-only copy of one particle's state.
type Body struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	VX     float64 `json:"vx" msgpack:"vx"`
	VY     float64 `json:"vy" msgpack:"vy"`
	Mass   float64 `json:"mass" msgpack:"m"`
	Radius float64 `json:"radius" msgpack:"r"`
	Color  string  `json:"color" msgpack:"c"`
}

func (b Body) Speed() float64 {
	return math.Hypot(b.VX, b.VY)
}

// Frame is the state of the arena after Tick steps.
type Frame struct {
	Tick       int64   `json:"tick" msgpack:"t"`
	Width      float64 `json:"width" msgpack:"w"`
	Height     float64 `json:"height" msgpack:"h"`
	Collisions int64   `json:"collisions" msgpack:"n"`
	Walls      int64   `json:"walls" msgpack:"wn"`
	Pairs      int64   `json:"pairs" msgpack:"pn"`
	Bodies     []Body  `json:"bodies" msgpack:"b"`
}

func (f Frame) Clone() Frame {
	c := f
	c.Bodies = make([]Body, len(f.Bodies))
	copy(c.Bodies, f.Bodies)
	return c
}

func (f Frame) KineticEnergy() float64 {
	ke := 0.0
	for _, b := range f.Bodies {
		ke += 0.5 * b.Mass * (b.VX*b.VX + b.VY*b.VY)
	}
	return ke
}

func (f Frame) Momentum() (px, py float64) {
	for _, b := range f.Bodies {
		px += b.Mass * b.VX
		py += b.Mass * b.VY
	}
	return
}

// IsValid reports whether every body has finite kinematics.
func (f Frame) IsValid() bool {
	for _, b := range f.Bodies {
		for _, v := range [...]float64{b.X, b.Y, b.VX, b.VY} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f Frame)
}

// ObserverFunc adapts a plain function to Observer.
type ObserverFunc func(f Frame)

func (fn ObserverFunc) OnStep(f Frame) { fn(f) }
