package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/sim"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColLabel   = rl.NewColor(0, 0, 0, 255)
)

// Palette maps particle colour names to window colours.
var Palette = map[string]rl.Color{
	"green":  rl.NewColor(34, 204, 85, 255),
	"blue":   rl.NewColor(51, 119, 255, 255),
	"red":    rl.NewColor(255, 51, 68, 255),
	"teal":   rl.NewColor(0, 179, 164, 255),
	"orange": rl.NewColor(255, 153, 34, 255),
	"purple": rl.NewColor(153, 85, 238, 255),
	"pink":   rl.NewColor(255, 119, 187, 255),
}

func colorFor(name string) rl.Color {
	if c, ok := Palette[name]; ok {
		return c
	}
	return rl.LightGray
}

// App owns the window state for one simulation. The simulation advances one
// tick per rendered frame.
type App struct {
	Build    sim.Builder
	Sim      *sim.Simulation
	FPS      int32
	Running  bool
	ShowHUD  bool
	MaxTicks int64
}

func NewApp(build sim.Builder, fps int) (*App, error) {
	s, err := build()
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		fps = 60
	}
	return &App{Build: build, Sim: s, FPS: int32(fps), Running: true, ShowHUD: true}, nil
}

// Run opens a window sized to the arena and blocks until it is closed or
// maxTicks ticks have run (0 means no limit).
func Run(build sim.Builder, fps int, maxTicks int64) error {
	app, err := NewApp(build, fps)
	if err != nil {
		return err
	}
	app.MaxTicks = maxTicks

	w, h := app.Sim.Bounds()
	rl.InitWindow(int32(w), int32(h), "partsim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(app.FPS)
	rl.SetExitKey(rl.KeyQ)

	return app.RunLoop()
}

func (a *App) RunLoop() error {
	for !rl.WindowShouldClose() {
		if err := a.Update(); err != nil {
			return err
		}
		a.Draw()
		if a.MaxTicks > 0 && a.Sim.Ticks() >= a.MaxTicks {
			break
		}
	}
	return nil
}

func (a *App) Update() error {
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyR) {
		s, err := a.Build()
		if err != nil {
			return fmt.Errorf("reset: %w", err)
		}
		a.Sim = s
		a.Running = true
	}
	if a.Running || rl.IsKeyPressed(rl.KeyN) {
		a.Sim.Step()
	}
	return nil
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	f := a.Sim.Snapshot()
	for _, b := range f.Bodies {
		drawBody(b)
	}
	if a.ShowHUD {
		a.drawHUD(f)
	}

	rl.EndDrawing()
}

// drawBody fills the disc and writes the mass in its centre.
func drawBody(b dynamo.Body) {
	cx, cy := int32(b.X), int32(b.Y)
	rl.DrawEllipse(cx, cy, float32(b.Radius), float32(b.Radius), colorFor(b.Color))

	label := fmt.Sprintf("m=%gKg", b.Mass)
	size := labelSize(b.Radius)
	if size == 0 {
		return
	}
	tw := rl.MeasureText(label, size)
	rl.DrawText(label, cx-tw/2, cy-size/2, size, ColLabel)
}

// labelSize scales the label to the disc; bodies too small for legible text
// get none.
func labelSize(radius float64) int32 {
	size := int32(radius / 2.5)
	if size < 8 {
		return 0
	}
	return min(size, 20)
}

func (a *App) drawHUD(f dynamo.Frame) {
	rl.DrawText("partsim", 12, 10, 20, ColSelect)
	rl.DrawText(fmt.Sprintf("tick %d  collisions %d  walls %d  pairs %d",
		f.Tick, f.Collisions, f.Walls, f.Pairs), 110, 14, 14, ColText)

	status, col := "RUNNING", ColSelect
	if !a.Running {
		status, col = "PAUSED", ColTextDim
	}
	w, h := a.Sim.Bounds()
	rl.DrawText(status, int32(w)-90, 14, 14, col)
	rl.DrawText("[SPACE] PAUSE  [N] STEP  [R] RESET  [H] HUD  [Q] QUIT", 12, int32(h)-22, 12, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(w)-70, int32(h)-22, 12, ColTextDim)
}
