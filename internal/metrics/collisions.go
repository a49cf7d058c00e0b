package metrics

import "github.com/san-kum/partsim/internal/dynamo"

// CollisionRate is the mean number of collision events per tick.
type CollisionRate struct {
	name    string
	first   dynamo.Frame
	last    dynamo.Frame
	samples int
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{name: "collision_rate"}
}

func (c *CollisionRate) Name() string { return c.name }

func (c *CollisionRate) Observe(f dynamo.Frame) {
	if c.samples == 0 {
		c.first = f
	}
	c.last = f
	c.samples++
}

func (c *CollisionRate) Value() float64 {
	ticks := c.last.Tick - c.first.Tick
	if ticks <= 0 {
		return 0
	}
	return float64(c.last.Collisions-c.first.Collisions) / float64(ticks)
}

func (c *CollisionRate) Reset() {
	c.first = dynamo.Frame{}
	c.last = dynamo.Frame{}
	c.samples = 0
}

// WallFraction is the share of events that were wall bounces.
type WallFraction struct {
	name  string
	walls int64
	total int64
}

func NewWallFraction() *WallFraction {
	return &WallFraction{name: "wall_fraction"}
}

func (w *WallFraction) Name() string { return w.name }

func (w *WallFraction) Observe(f dynamo.Frame) {
	w.walls = f.Walls
	w.total = f.Collisions
}

func (w *WallFraction) Value() float64 {
	if w.total == 0 {
		return 0
	}
	return float64(w.walls) / float64(w.total)
}

func (w *WallFraction) Reset() {
	w.walls = 0
	w.total = 0
}
