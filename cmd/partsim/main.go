package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/experiment"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string
	seed       int64
	particles  int
	steps      int
	width      float64
	height     float64
	resolver   string
	separation string
	frameRate  int
	runName    string
	watch      bool
	outFile    string
	trails     bool
	bins       int
	withFrames bool
	numRuns    int
	parallel   int

	benchSteps    int
	benchResolver string

	sweepFrom   float64
	sweepTo     float64
	sweepPoints int
)

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))

// main registers the commands and exits with status 1 when one fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "partsim",
		Short:        "2D elastic particle collision simulator",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".partsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to the preset or \"run\")")
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw an ASCII view while running")
	runCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "redraw rate for --watch")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run a simulation in a window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	addSimFlags(windowCmd)
	windowCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot collisions and energy of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().BoolVar(&withFrames, "frames", false, "include every recorded frame")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render the final frame of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  svgRun,
	}
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().BoolVar(&trails, "trails", false, "draw the path of every particle")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "speed distribution and contact statistics of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bins, "bins", 12, "speed histogram bins")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure step throughput for growing populations",
		Args:  cobra.NoArgs,
		RunE:  benchRun,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 500, "steps per population")
	benchCmd.Flags().StringVar(&benchResolver, "resolver", "axis-wise", "collision resolver")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run one configuration for consecutive seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addSimFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")
	ensembleCmd.Flags().IntVar(&parallel, "parallel", 0, "concurrent runs (0 means GOMAXPROCS)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a YAML scenario and save each",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "run a configuration across a range of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 10, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 50, "last value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 5, "number of values")

	rootCmd.AddCommand(runCmd, liveCmd, windowCmd, listCmd, plotCmd, exportCmd, svgCmd, analyzeCmd, presetsCmd, benchCmd, ensembleCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "number of particles")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "arena width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "arena height")
	cmd.Flags().StringVar(&resolver, "resolver", "axis-wise", "collision resolver (axis-wise, normal)")
	cmd.Flags().StringVar(&separation, "separation", "truncate", "separation rounding (truncate, continuous)")
}

// loadConfig layers defaults, then the preset, then the config file, then
// any flag set explicitly on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		slog.Debug("applied preset", "name", preset)
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		slog.Debug("loaded config file", "path", configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Particles = particles
		cfg.Bodies = nil
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("resolver") {
		cfg.Resolver = resolver
	}
	if flags.Changed("separation") {
		cfg.Separation = separation
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("config resolved",
		"width", cfg.Width, "height", cfg.Height,
		"particles", cfg.ParticleCount(), "steps", cfg.Steps,
		"seed", cfg.Seed, "resolver", cfg.Resolver, "separation", cfg.Separation)
	return cfg, nil
}

func newExperiment(cmd *cobra.Command) (*experiment.Experiment, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return experiment.New(cfg), nil
}
