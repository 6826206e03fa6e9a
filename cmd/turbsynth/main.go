package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/turbsynth/internal/compute"
	"github.com/san-kum/turbsynth/internal/config"
	"github.com/san-kum/turbsynth/internal/experiment"
	"github.com/san-kum/turbsynth/internal/export"
	"github.com/san-kum/turbsynth/internal/metrics"
	"github.com/san-kum/turbsynth/internal/spectral"
	"github.com/san-kum/turbsynth/internal/storage"
	"github.com/san-kum/turbsynth/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	gridN      int
	length     float64
	binEdges   int
	seed       uint64
	policy     string
	phase      string
	phaseValue float64
	hermitian  bool
	backend    string
	configFile string
	preset     string
	// ensemble
	numRuns int
	// export-svg
	svgOut    string
	svgField  bool
	svgStride int
	svgSize   int
	// bench
	benchSizes []int
	benchIters int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "turbsynth",
		Short: "synthetic 2D Kolmogorov turbulence lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".turbsynth", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "synthesize a field and estimate its spectrum",
		Args:  cobra.NoArgs,
		RunE:  runSynthesis,
	}
	addSynthesisFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored spectrum to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and spectrum to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a stored spectrum or velocity field as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&svgField, "field", false, "draw the velocity field instead of the spectrum")
	exportSVGCmd.Flags().IntVar(&svgStride, "stride", 4, "field sampling stride")
	exportSVGCmd.Flags().IntVar(&svgSize, "size", 600, "image size in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tN\tEDGES\tPOLICY\tPHASE\tHERMITIAN\tBACKEND")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%v\t%s\n",
					name, p.Grid.N, p.Spectrum.BinEdges, p.Synthesis.Policy,
					p.Synthesis.Phase, p.Synthesis.Hermitian, p.Backend)
			}
			return w.Flush()
		},
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "average spectra over several seeds",
		Args:  cobra.NoArgs,
		RunE:  runEnsemble,
	}
	addSynthesisFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&numRuns, "runs", 8, "number of realizations")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive terminal viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return viz.Run(*cfg)
		},
	}
	addSynthesisFlags(tuiCmd)

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the pipeline per backend and grid size",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{32, 64, 128, 256}, "grid sizes")
	benchCmd.Flags().IntVar(&benchIters, "iters", 3, "iterations per case")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, ensembleCmd, tuiCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSynthesisFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&gridN, "n", config.DefaultN, "grid points per side")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "domain side length")
	cmd.Flags().IntVar(&binEdges, "edges", config.DefaultBinEdges, "number of radial bin edges")
	cmd.Flags().Uint64Var(&seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	cmd.Flags().StringVar(&policy, "policy", config.DefaultPolicy, "component policy (shared, independent)")
	cmd.Flags().StringVar(&phase, "phase", config.DefaultPhase, "phase source (uniform, constant)")
	cmd.Flags().Float64Var(&phaseValue, "phase-value", 0, "phase for the constant source")
	cmd.Flags().BoolVar(&hermitian, "hermitian", false, "enforce conjugate symmetry")
	cmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "transform backend (dsp, gonum)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file and explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("n") {
		cfg.Grid.N = gridN
	}
	if flags.Changed("length") {
		cfg.Grid.Length = length
	}
	if flags.Changed("edges") {
		cfg.Spectrum.BinEdges = binEdges
	}
	if flags.Changed("policy") {
		cfg.Synthesis.Policy = policy
	}
	if flags.Changed("phase") {
		cfg.Synthesis.Phase = phase
	}
	if flags.Changed("phase-value") {
		cfg.Synthesis.PhaseValue = phaseValue
	}
	if flags.Changed("hermitian") {
		cfg.Synthesis.Hermitian = hermitian
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func runSynthesis(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(*cfg)
	if err := exp.Setup(experiment.NewRegistry(), nil); err != nil {
		return err
	}

	fmt.Printf("synthesizing %dx%d field (seed %d, %s backend)...\n", cfg.Grid.N, cfg.Grid.N, cfg.Seed, cfg.Backend)

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	runID, err := st.Save(*cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("bins: %d  max k: %.4f  anchor k: %.4f\n",
		len(result.Spectrum.Bins), result.Grid.MaxK(), result.Reference.AnchorK)
	fmt.Println("\nmetrics:")
	for _, name := range metrics.Names(result.Metrics) {
		fmt.Printf("  %s: %.6g\n", name, result.Metrics[name])
	}
	fmt.Println()
	fmt.Println(viz.PlotSpectrum(result.Spectrum, result.Reference, 80, 15))

	return nil
}

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
	fmt.Fprintln(w, "ID\tTIME\tN\tSEED\tPOLICY\tHERMITIAN\tBACKEND\tBINS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%v\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Grid.N,
			run.Config.Seed,
			run.Config.Synthesis.Policy,
			run.Config.Synthesis.Hermitian,
			run.Config.Backend,
			run.Bins,
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

	rows, err := st.LoadSpectrum(runID)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d  bins: %d\n\n", meta.Config.Grid.N, meta.Config.Grid.N, len(rows))

	energy := make([]float64, len(rows))
	ref := make([]float64, len(rows))
	modes := make([]float64, len(rows))
	for i, r := range rows {
		energy[i] = r.Energy
		ref[i] = r.Reference
		modes[i] = float64(r.Modes)
	}

	graph := asciigraph.PlotMany([][]float64{viz.LogSeries(energy), viz.LogSeries(ref)},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.White),
		asciigraph.Caption("log10 E(k) per bin (green) vs k^-5/3 (white)"),
	)
	fmt.Println(graph)
	fmt.Println()

	graph = asciigraph.Plot(modes,
		asciigraph.Height(8),
		asciigraph.Width(80),
		asciigraph.Caption("modes per bin"),
	)
	fmt.Println(graph)

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	rows, err := st.LoadSpectrum(runID)
	if err != nil {
		return err
	}

	if len(rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"k_low", "k_high", "k_center", "energy", "modes", "reference"}); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.FormatFloat(r.Low, 'f', 6, 64),
			strconv.FormatFloat(r.High, 'f', 6, 64),
			strconv.FormatFloat(r.Center, 'f', 6, 64),
			strconv.FormatFloat(r.Energy, 'e', 8, 64),
			strconv.Itoa(r.Modes),
			strconv.FormatFloat(r.Reference, 'e', 8, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	rows, err := st.LoadSpectrum(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta, rows)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var svg string
	if svgField {
		ux, uy, err := st.LoadField(runID)
		if err != nil {
			return err
		}
		g, err := spectral.NewGrid(meta.Config.Grid.N, meta.Config.Grid.Length)
		if err != nil {
			return err
		}
		svg = export.FieldToSVG(g.X, ux, uy, svgStride, svgSize)
	} else {
		rows, err := st.LoadSpectrum(runID)
		if err != nil {
			return err
		}
		var centers, energies, refCenters, refValues []float64
		for _, r := range rows {
			centers = append(centers, r.Center)
			energies = append(energies, r.Energy)
			if !math.IsNaN(r.Reference) {
				refCenters = append(refCenters, r.Center)
				refValues = append(refValues, r.Reference)
			}
		}
		svg = export.SpectrumToSVG(centers, energies, refCenters, refValues, svgSize, svgSize*2/3)
	}

	if svg == "" {
		return fmt.Errorf("nothing to render for run %s", runID)
	}

	if svgOut == "" {
		_, err = fmt.Fprintln(os.Stdout, svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("running %d realizations of %dx%d from seed %d...\n", numRuns, cfg.Grid.N, cfg.Grid.N, cfg.Seed)
	start := time.Now()

	ens := experiment.NewEnsemble(*cfg, experiment.NewRegistry(), numRuns, cfg.Seed)
	results, err := ens.Run(context.Background())
	if err != nil {
		return err
	}

	mean, err := experiment.MeanSpectrum(results)
	if err != nil {
		return err
	}

	ref, err := spectral.NewReference(mean, cfg.Spectrum.AnchorIndex, cfg.Spectrum.FallbackAnchorIndex)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	_, slope := metrics.NewSpectralSlope(cfg.Spectrum.FitKMin, cfg.Spectrum.FitKMax).Fit(mean)
	fmt.Printf("mean total energy: %.6g\n", mean.Total())
	fmt.Printf("mean spectral slope: %.4f (reference %.4f)\n\n", slope, spectral.KolmogorovSlope)
	fmt.Println(viz.PlotSpectrum(mean, ref, 80, 15))

	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	if benchIters < 1 {
		return fmt.Errorf("iters must be positive")
	}

	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BACKEND\tN\tMODES\tTIME\tMODES/SEC\tMAX_IMAG")

	for _, name := range compute.ListBackends() {
		for _, n := range benchSizes {
			cfg := config.DefaultConfig()
			cfg.Grid.N = n
			cfg.Backend = name
			cfg.Seed = 42

			var total time.Duration
			var maxImag float64
			for i := 0; i < benchIters; i++ {
				exp := experiment.New(*cfg)
				if err := exp.Setup(registry, nil); err != nil {
					return err
				}
				result, err := exp.Run(context.Background())
				if err != nil {
					return err
				}
				total += result.Elapsed
				maxImag = result.Field.MaxImag
			}

			avg := total / time.Duration(benchIters)
			modes := n * n
			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\t%.2e\n",
				name, n, modes, avg, float64(modes)/avg.Seconds(), maxImag)
		}
	}

	return w.Flush()
}
