package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/partsim/internal/dynamo"
	"github.com/san-kum/partsim/internal/sim"
)

const (
	canvasWidth     = 72
	canvasHeight    = 24
	historyCapacity = 120
	maxStepsPerTick = 16
)

type TickMsg time.Time

// Model runs one simulation inside a Bubble Tea program. The simulation
// only advances inside Update, so View always reads a settled state.
type Model struct {
	build        sim.Builder
	sim          *sim.Simulation
	canvas       *Canvas
	fps          int
	stepsPerTick int
	running      bool
	showHelp     bool
	maxTicks     int64
	rates        []float64
	lastCount    int64
	err          error
}

// NewModel builds the first simulation. maxTicks stops the simulation
// after that many ticks; zero runs until quit.
func NewModel(build sim.Builder, fps int, maxTicks int64) (Model, error) {
	s, err := build()
	if err != nil {
		return Model{}, err
	}
	if fps <= 0 {
		fps = 60
	}
	return Model{
		build:        build,
		sim:          s,
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		fps:          fps,
		stepsPerTick: 1,
		running:      true,
		maxTicks:     maxTicks,
		rates:        make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.advance(1)
			}
		case "r":
			m.reset()
		case "+", "=":
			m.stepsPerTick = min(m.stepsPerTick*2, maxStepsPerTick)
		case "-", "_":
			m.stepsPerTick = max(m.stepsPerTick/2, 1)
		case "?":
			m.showHelp = !m.showHelp
		}
		return m, nil
	case TickMsg:
		if m.running {
			m.advance(m.stepsPerTick)
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		if m.maxTicks > 0 && m.sim.Ticks() >= m.maxTicks {
			m.running = false
			break
		}
		m.sim.Step()
	}

	count := m.sim.CollisionCount()
	m.rates = append(m.rates, float64(count-m.lastCount))
	m.lastCount = count
	if len(m.rates) > historyCapacity {
		m.rates = m.rates[len(m.rates)-historyCapacity:]
	}
}

func (m *Model) reset() {
	s, err := m.build()
	if err != nil {
		m.err = err
		return
	}
	m.sim = s
	m.rates = m.rates[:0]
	m.lastCount = 0
	m.err = nil
}

// Frame is the current state of the simulation.
func (m Model) Frame() dynamo.Frame { return m.sim.Snapshot() }

func (m Model) View() string {
	f := m.sim.Snapshot()
	DrawFrame(m.canvas, f)
	arena := canvasStyle.Render(m.canvas.Render(ColorStyle))

	return lipgloss.JoinHorizontal(lipgloss.Top, arena, m.stats(f))
}

func (m Model) stats(f dynamo.Frame) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("partsim"))
	b.WriteString("\n")

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("status", status)
	row("tick", fmt.Sprintf("%d", f.Tick))
	row("particles", fmt.Sprintf("%d", len(f.Bodies)))
	row("collisions", fmt.Sprintf("%d", f.Collisions))
	row("walls", fmt.Sprintf("%d", f.Walls))
	row("pairs", fmt.Sprintf("%d", f.Pairs))
	row("energy", fmt.Sprintf("%.1f", f.KineticEnergy()))
	row("resolver", m.sim.Resolver())
	row("speed", fmt.Sprintf("%dx", m.stepsPerTick))

	b.WriteString("\n" + labelStyle.Render("events/frame") + "\n")
	b.WriteString(SparklineChart(m.rates, 30) + "\n")

	if m.err != nil {
		b.WriteString("\n" + SparkLow.Render(m.err.Error()) + "\n")
	}

	if m.showHelp {
		b.WriteString(helpStyle.Render("space pause  n step  r reset\n+/- speed  ? help  q quit"))
	} else {
		b.WriteString(helpStyle.Render("? help  q quit"))
	}

	return statsStyle.Render(b.String())
}

// Run starts the live view and blocks until the user quits.
func Run(build sim.Builder, fps int, maxTicks int64) error {
	m, err := NewModel(build, fps, maxTicks)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
