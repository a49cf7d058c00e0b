package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/experiment"
	"github.com/san-kum/partsim/internal/gui"
	"github.com/san-kum/partsim/internal/sim"
	"github.com/san-kum/partsim/internal/storage"
	"github.com/san-kum/partsim/internal/tui"
	"github.com/san-kum/partsim/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner, err := exp.Runner()
	if err != nil {
		return err
	}
	if watch {
		lr := tui.NewLiveRenderer(os.Stdout, cfg.FPS)
		runner.AddObserver(lr)
		lr.Start()
		defer lr.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d particles for %d steps...\n", cfg.ParticleCount(), cfg.Steps)
	start := time.Now()

	result, err := runner.Run(ctx, exp.SimConfig())
	if err != nil {
		if result == nil || !errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Printf("interrupted after %d steps\n", result.StepsTaken)
	}
	elapsed := time.Since(start)

	name := runName
	if name == "" {
		name = preset
	}
	meta := storage.RunMetadata{
		Name:       name,
		Seed:       cfg.Seed,
		Width:      cfg.Width,
		Height:     cfg.Height,
		Particles:  cfg.ParticleCount(),
		Resolver:   cfg.Resolver,
		Separation: cfg.Separation,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}
	slog.Debug("run saved", "id", runID, "frames", len(result.Frames))

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("seed: %d\n", cfg.Seed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("collisions: %d (walls %d, pairs %d)\n", result.Collisions, result.Walls, result.Pairs)
	if len(result.Errors) > 0 {
		fmt.Printf("state errors: %d (first: %v)\n", len(result.Errors), result.Errors[0])
	}

	fmt.Println("\n" + headingStyle.Render("metrics:"))
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func interactiveLimit(cmd *cobra.Command, cfg config.Config) int64 {
	if cmd.Flags().Changed("steps") {
		return int64(cfg.Steps)
	}
	return 0
}

func runLive(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	return viz.Run(exp.Build, cfg.FPS, interactiveLimit(cmd, cfg))
}

func runWindow(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	return gui.Run(exp.Build, cfg.FPS, interactiveLimit(cmd, cfg))
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	exp, err := newExperiment(cmd)
	if err != nil {
		return err
	}
	cfg := exp.Config()
	if numRuns <= 0 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	ens := sim.NewEnsemble(exp.Factory(), numRuns, cfg.Seed)
	if parallel > 0 {
		ens.SetLimit(parallel)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d seeds from %d...\n\n", numRuns, cfg.Seed)
	start := time.Now()
	results, err := ens.Run(ctx, exp.SimConfig())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tCOLLISIONS\tWALLS\tPAIRS\tKINETIC_ENERGY")
	counts := make([]float64, len(results))
	for i, r := range results {
		counts[i] = float64(r.Collisions)
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.3f\n",
			cfg.Seed+int64(i), r.Collisions, r.Walls, r.Pairs, r.Metrics["kinetic_energy"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	mean, std := stat.MeanStdDev(counts, nil)
	fmt.Printf("\ncollisions: mean %.2f, stddev %.2f\n", mean, std)
	fmt.Printf("completed in %v\n", elapsed)
	return nil
}

func benchRun(cmd *cobra.Command, args []string) error {
	n, name := benchSteps, benchResolver
	if n <= 0 {
		return fmt.Errorf("steps must be positive, got %d", n)
	}

	fmt.Printf("benchmarking %s, %d steps\n\n", name, n)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tSTEPS\tTIME\tSTEPS/SEC\tCOLLISIONS")

	for _, count := range []int{10, 50, 100, 200, 400} {
		cfg := config.DefaultConfig()
		cfg.Particles = count
		cfg.Steps = n
		cfg.Seed = 42
		cfg.Resolver = name
		cfg.Population.MassMin = 2
		cfg.Population.MassMax = 12

		s, err := experiment.New(cfg).Build()
		if err != nil {
			return err
		}

		start := time.Now()
		for i := 0; i < n; i++ {
			s.Step()
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%d\n",
			count, n, elapsed, float64(n)/elapsed.Seconds(), s.CollisionCount())
	}

	return w.Flush()
}
