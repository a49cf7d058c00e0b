package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/san-kum/partsim/internal/automation"
	"github.com/san-kum/partsim/internal/storage"
	"github.com/spf13/cobra"
)

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("scenario %s: %d steps\n", sc.Name, len(sc.Steps))
	results, runErr := automation.RunScenario(ctx, sc)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tRUN ID\tPARTICLES\tSTEPS\tCOLLISIONS")
	for _, r := range results {
		meta := storage.RunMetadata{
			Name:       r.Name,
			Seed:       r.Config.Seed,
			Width:      r.Config.Width,
			Height:     r.Config.Height,
			Particles:  r.Config.ParticleCount(),
			Resolver:   r.Config.Resolver,
			Separation: r.Config.Separation,
		}
		runID, err := st.Save(meta, r.Result)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
			r.Name, runID, meta.Particles, r.Result.StepsTaken, r.Result.Collisions)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:      base,
		ParamName: args[0],
		ParamMin:  sweepFrom,
		ParamMax:  sweepTo,
		NumSteps:  sweepPoints,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunSweep(ctx, sweep)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tCOLLISIONS\tWALLS\tPAIRS\tCOLLISION_RATE\tENERGY_DRIFT\n", args[0])
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%d\t%d\t%d\t%.4f\t%.4f\n",
			r.ParamValue, r.Collisions, r.Walls, r.Pairs,
			r.Metrics["collision_rate"], r.Metrics["energy_drift"])
	}
	return w.Flush()
}
