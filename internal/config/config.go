package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth       = 1000.0
	DefaultHeight      = 650.0
	DefaultParticles   = 10
	DefaultSteps       = 600
	DefaultFPS         = 60
	DefaultMassMin     = 5
	DefaultMassMax     = 80
	DefaultSpeedMax    = 5
	DefaultMargin      = 50.0
	DefaultAttempts    = 100
	DefaultRecordEvery = 1
)

// DefaultColors is the palette particles are drawn from.
var DefaultColors = []string{"green", "blue", "red", "teal", "orange", "purple", "pink"}

type Config struct {
	Width       float64          `yaml:"width" toml:"width"`
	Height      float64          `yaml:"height" toml:"height"`
	Particles   int              `yaml:"particles" toml:"particles"`
	Steps       int              `yaml:"steps" toml:"steps"`
	Seed        int64            `yaml:"seed" toml:"seed"`
	Resolver    string           `yaml:"resolver" toml:"resolver"`
	Separation  string           `yaml:"separation" toml:"separation"`
	RecordEvery int              `yaml:"record_every" toml:"record_every"`
	FPS         int              `yaml:"fps" toml:"fps"`
	Population  PopulationConfig `yaml:"population" toml:"population"`
	Bodies      []BodyConfig     `yaml:"bodies,omitempty" toml:"bodies,omitempty"`
}

// PopulationConfig drives random initialization. Mass and velocity
// components are integers drawn from half-open ranges: mass in
// [MassMin, MassMax), vx and vy in [-SpeedMax, SpeedMax).
type PopulationConfig struct {
	MassMin      int      `yaml:"mass_min" toml:"mass_min"`
	MassMax      int      `yaml:"mass_max" toml:"mass_max"`
	SpeedMax     int      `yaml:"speed_max" toml:"speed_max"`
	Margin       float64  `yaml:"margin" toml:"margin"`
	Colors       []string `yaml:"colors" toml:"colors"`
	AvoidOverlap bool     `yaml:"avoid_overlap" toml:"avoid_overlap"`
	Attempts     int      `yaml:"attempts" toml:"attempts"`
}

// BodyConfig places one particle explicitly. When Bodies is non-empty it
// replaces the random population.
type BodyConfig struct {
	X     float64 `yaml:"x" toml:"x"`
	Y     float64 `yaml:"y" toml:"y"`
	VX    float64 `yaml:"vx" toml:"vx"`
	VY    float64 `yaml:"vy" toml:"vy"`
	Mass  float64 `yaml:"mass" toml:"mass"`
	Color string  `yaml:"color" toml:"color"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Particles:   DefaultParticles,
		Steps:       DefaultSteps,
		Resolver:    "axis-wise",
		Separation:  "truncate",
		RecordEvery: DefaultRecordEvery,
		FPS:         DefaultFPS,
		Population: PopulationConfig{
			MassMin:  DefaultMassMin,
			MassMax:  DefaultMassMax,
			SpeedMax: DefaultSpeedMax,
			Margin:   DefaultMargin,
			Colors:   append([]string(nil), DefaultColors...),
			Attempts: DefaultAttempts,
		},
	}
}

// Load reads a YAML or TOML file over the defaults. The format follows the
// file extension; anything other than .toml is read as YAML.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.Decode(string(data), cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Validate catches settings that would only fail later, deep inside a run.
func (c *Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("arena must be positive, got %vx%v", c.Width, c.Height)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", c.Steps)
	}
	if len(c.Bodies) > 0 {
		for i, b := range c.Bodies {
			if b.Mass <= 0 {
				return fmt.Errorf("body %d: mass must be positive, got %v", i, b.Mass)
			}
		}
		return nil
	}
	if c.Particles <= 0 {
		return fmt.Errorf("particles must be positive, got %d", c.Particles)
	}
	p := c.Population
	if p.MassMin <= 0 || p.MassMax <= p.MassMin {
		return fmt.Errorf("mass range [%d, %d) is empty or non-positive", p.MassMin, p.MassMax)
	}
	if p.SpeedMax < 0 {
		return fmt.Errorf("speed_max must not be negative, got %d", p.SpeedMax)
	}
	if 2*p.Margin >= c.Width || 2*p.Margin >= c.Height {
		return fmt.Errorf("margin %v leaves no room in a %vx%v arena", p.Margin, c.Width, c.Height)
	}
	return nil
}

// ParticleCount is the population size the config produces.
func (c *Config) ParticleCount() int {
	if len(c.Bodies) > 0 {
		return len(c.Bodies)
	}
	return c.Particles
}
