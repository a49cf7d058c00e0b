package config

import "sort"

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"crowded": func() *Config {
		c := DefaultConfig()
		c.Particles = 40
		c.Population.MassMax = 30
		c.Population.AvoidOverlap = true
		return c
	}(),
	"gas": func() *Config {
		c := DefaultConfig()
		c.Particles = 120
		c.Population.MassMin = 3
		c.Population.MassMax = 8
		c.Population.SpeedMax = 4
		c.Population.AvoidOverlap = true
		c.Resolver = "normal"
		c.Separation = "continuous"
		c.Steps = 2000
		c.RecordEvery = 10
		return c
	}(),
	"billiards": func() *Config {
		c := DefaultConfig()
		c.Particles = 16
		c.Population.MassMin = 12
		c.Population.MassMax = 13
		c.Population.AvoidOverlap = true
		c.Resolver = "normal"
		return c
	}(),
	"head-on": func() *Config {
		c := DefaultConfig()
		c.Steps = 120
		c.Bodies = []BodyConfig{
			{X: 100, Y: 100, VX: 5, Mass: 10, Color: "red"},
			{X: 135, Y: 100, VX: -5, Mass: 20, Color: "blue"},
		}
		return c
	}(),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Population.Colors = append([]string(nil), cfg.Population.Colors...)
	c.Bodies = append([]BodyConfig(nil), cfg.Bodies...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
