package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/partsim/internal/analysis"
	"github.com/san-kum/partsim/internal/config"
	"github.com/san-kum/partsim/internal/export"
	"github.com/san-kum/partsim/internal/storage"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPARTICLES\tSTEPS\tRESOLVER\tCOLLISIONS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Steps,
			run.Resolver,
			run.Collisions,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if len(series.Ticks) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d, resolver: %s\n", meta.Particles, meta.Resolver)
	fmt.Printf("samples: %d\n\n", len(series.Ticks))

	plots := []struct {
		data    []float64
		caption string
	}{
		{series.Collisions, "collisions (cumulative)"},
		{series.Pairs, "particle contacts (cumulative)"},
		{series.KineticEnergy, "kinetic energy"},
	}
	for _, p := range plots {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	if withFrames {
		return st.ExportJSON(os.Stdout, runID)
	}

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func svgRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", runID)
	}

	var svg string
	if trails {
		svg = export.TrajectoriesToSVG(frames)
	} else {
		svg = export.FrameToSVG(frames[len(frames)-1])
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no frames", runID)
	}
	first, last := frames[0], frames[len(frames)-1]

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("ticks: %d, particles: %d\n", last.Tick, len(last.Bodies))
	fmt.Printf("mean free time: %.2f ticks\n", analysis.MeanFreeTime(frames))
	fmt.Printf("kinetic energy: %.3f -> %.3f\n\n", first.KineticEnergy(), last.KineticEnergy())

	d := analysis.Speeds(last, bins)
	if d == nil {
		fmt.Println("all particles at rest")
		return nil
	}
	fmt.Println(headingStyle.Render(fmt.Sprintf("speeds at tick %d (kT %.3f, | marks equipartition):", last.Tick, d.KT)))
	fmt.Println(d.ASCII(40))

	fmt.Println(headingStyle.Render("velocity space:"))
	fmt.Print(analysis.VelocityScatter(last, 41, 17))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPARTICLES\tSTEPS\tARENA\tRESOLVER\tSEPARATION")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%gx%g\t%s\t%s\n",
			name, p.ParticleCount(), p.Steps, p.Width, p.Height, p.Resolver, p.Separation)
	}
	return w.Flush()
}
