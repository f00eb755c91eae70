package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/barviz/internal/config"
	"github.com/san-kum/barviz/internal/dataset"
	"github.com/san-kum/barviz/internal/export"
	"github.com/san-kum/barviz/internal/logging"
	"github.com/san-kum/barviz/internal/loop"
	"github.com/san-kum/barviz/internal/render"
	"github.com/san-kum/barviz/internal/storage"
	"github.com/san-kum/barviz/internal/tui"
	"github.com/san-kum/barviz/internal/viz"
)

var (
	dataDir    string
	configFile string
	logFile    string
	verbose    bool
	preset     string

	count      int
	seed       int64
	speed      int
	sortFlag   string
	transition string
	theme      string
	autoplay   bool
	load       string

	outFile     string
	width       int
	height      int
	streamTicks int
	traceTicks  int
	saveTicks   int
	cols        int
	rows        int
	noColor     bool
	noClear     bool
	traceSVG    string
)

// main registers the commands and runs the interactive chart when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "barviz",
		Short:        "animated terminal bar chart",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "snapshot directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logFile, "log", "", "log file (default: no logging)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVarP(&count, "count", "n", dataset.DefaultCount, "number of bars")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.IntVar(&speed, "speed", config.DefaultSpeed, "perturbation speed 100-900")
	pf.StringVar(&sortFlag, "sort", "none", "sort mode: "+strings.Join(dataset.SortModeNames(), ", "))
	pf.StringVar(&transition, "transition", config.DefaultTransition, "bar transition: smooth, pop")

	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme: "+strings.Join(viz.ThemeNames(), ", "))
	rootCmd.Flags().BoolVar(&autoplay, "autoplay", false, "start animating immediately")
	rootCmd.Flags().StringVar(&load, "load", "", "start from a saved snapshot id (or latest)")

	svgCmd := &cobra.Command{
		Use:   "svg [snapshot_id]",
		Short: "write the chart as an animated SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeSVG,
	}
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "-", "output file (- for stdout)")
	svgCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "svg width")
	svgCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "svg height")

	streamCmd := &cobra.Command{
		Use:   "stream",
		Short: "print animated frames to stdout",
		Args:  cobra.NoArgs,
		RunE:  runStream,
	}
	streamCmd.Flags().IntVar(&streamTicks, "ticks", 0, "stop after n ticks (0 = until interrupted)")
	streamCmd.Flags().IntVar(&cols, "cols", 60, "frame width in columns")
	streamCmd.Flags().IntVar(&rows, "rows", 16, "frame height in rows")
	streamCmd.Flags().BoolVar(&noColor, "no-color", false, "plain output")
	streamCmd.Flags().BoolVar(&noClear, "no-clear", false, "append frames instead of redrawing")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "plot value trajectories over perturbation ticks",
		Args:  cobra.NoArgs,
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&traceTicks, "ticks", 60, "number of ticks")
	traceCmd.Flags().StringVar(&traceSVG, "svg", "", "also write the trace as svg to this file")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "manage saved datasets",
	}
	saveCmd := &cobra.Command{
		Use:   "save [name]",
		Short: "generate a dataset and save it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  saveSnapshot,
	}
	saveCmd.Flags().IntVar(&saveTicks, "ticks", 0, "perturb this many times before saving")
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots",
		Args:  cobra.NoArgs,
		RunE:  listSnapshots,
	}
	showCmd := &cobra.Command{
		Use:   "show [snapshot_id]",
		Short: "print a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}
	deleteCmd := &cobra.Command{
		Use:   "delete [snapshot_id]",
		Short: "remove a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteSnapshot,
	}
	snapshotCmd.AddCommand(saveCmd, listCmd, showCmd, deleteCmd)

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [snapshot_id]",
		Short: "export the data table to CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [snapshot_id]",
		Short: "export the data table to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOUNT\tSPEED\tSORT\tTRANSITION\tAUTOPLAY")
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\t%v\n", name, p.Count, p.Speed, p.Sort, p.Transition, p.Autoplay)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path := "barviz.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Printf("config written to %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(svgCmd, streamCmd, traceCmd, snapshotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			names := config.ListPresets()
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
	}
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	flags := cmd.Flags()
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log") {
		cfg.LogFile = logFile
	}
	if flags.Changed("count") {
		cfg.Count = count
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("speed") {
		cfg.Speed = speed
	}
	if flags.Changed("sort") {
		cfg.Sort = sortFlag
	}
	if flags.Changed("transition") {
		cfg.Transition = transition
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("autoplay") {
		cfg.Autoplay = autoplay
	}
	if flags.Changed("width") {
		cfg.Export.Width = width
	}
	if flags.Changed("height") {
		cfg.Export.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !knownTheme(cfg.Theme) {
		return nil, fmt.Errorf("theme %q (available: %v): %w", cfg.Theme, viz.ThemeNames(), config.ErrInvalid)
	}
	return cfg, nil
}

func knownTheme(name string) bool {
	for _, n := range viz.ThemeNames() {
		if n == name {
			return true
		}
	}
	return false
}

func newLogger(cfg *config.Config) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return logging.New(cfg.LogFile, level)
}

// resolveID maps "latest" to the newest snapshot id.
func resolveID(st *storage.Store, id string) (string, error) {
	if id == "latest" {
		return st.Latest()
	}
	return id, nil
}

// datasetFor loads the snapshot named in args, or generates a fresh dataset
// from the configured seed. The seed actually used is returned.
func datasetFor(cfg *config.Config, args []string) (dataset.Dataset, int64, error) {
	if len(args) == 1 {
		st := storage.New(cfg.DataDir)
		id, err := resolveID(st, args[0])
		if err != nil {
			return nil, 0, err
		}
		meta, err := st.Load(id)
		if err != nil {
			return nil, 0, err
		}
		d, err := st.LoadDataset(id)
		return d, meta.Seed, err
	}
	s := cfg.SeedOrNow()
	d, err := dataset.Generate(cfg.Count, rand.New(rand.NewSource(s)))
	return d, s, err
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}

	var data dataset.Dataset
	if load != "" {
		id, err := resolveID(st, load)
		if err != nil {
			return err
		}
		if data, err = st.LoadDataset(id); err != nil {
			return err
		}
		log.Info("snapshot loaded", "id", id)
	}

	log.Info("starting", "count", cfg.Count, "speed", cfg.Speed, "sort", cfg.Sort, "theme", cfg.Theme)
	return viz.Run(viz.Options{
		Config: cfg,
		Data:   data,
		Store:  st,
		Logger: log,
	})
}

func writeSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, _, err := datasetFor(cfg, args)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if outFile != "-" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	return export.WriteSVG(w, dataset.Sort(d, cfg.SortMode()), export.Options{
		Width:  float64(cfg.Export.Width),
		Height: float64(cfg.Export.Height),
		Transition: render.Transition{
			Mode:     cfg.TransitionMode(),
			Duration: render.DefaultDuration,
		},
	})
}

func runStream(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	s := cfg.SeedOrNow()
	rng := rand.New(rand.NewSource(s))
	d, err := dataset.Generate(cfg.Count, rng)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	r := tui.NewLiveRenderer(os.Stdout, cols, rows, cfg.SortMode(),
		tui.WithColor(!noColor), tui.WithClear(!noClear))
	runner, err := loop.NewRunner(d, cfg.Interval(),
		loop.WithRand(rng),
		loop.WithLogger(log),
		loop.WithTickFunc(func(n int, d dataset.Dataset) {
			r.OnTick(n, d)
			if r.Err() != nil || (streamTicks > 0 && n >= streamTicks) {
				cancel()
			}
		}),
	)
	if err != nil {
		return err
	}

	r.Start()
	defer r.Stop()
	r.OnTick(0, d)

	if err := runner.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	runner.Stop()

	log.Info("stream finished", "ticks", runner.Ticks(), "seed", s)
	return r.Err()
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if traceTicks < 1 {
		return fmt.Errorf("ticks must be positive, got %d", traceTicks)
	}

	s := cfg.SeedOrNow()
	rng := rand.New(rand.NewSource(s))
	d, err := dataset.Generate(cfg.Count, rng)
	if err != nil {
		return err
	}

	labels := make([]string, len(d))
	series := make([][]float64, len(d))
	for i, p := range d {
		labels[i] = p.Label
		series[i] = append(make([]float64, 0, traceTicks+1), p.Value)
	}
	for range traceTicks {
		loop.Perturb(d, rng)
		for i, p := range d {
			series[i] = append(series[i], p.Value)
		}
	}

	graph := asciigraph.PlotMany(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.LowerBound(dataset.MinValue),
		asciigraph.UpperBound(dataset.MaxValue),
		asciigraph.Caption(fmt.Sprintf("%s over %d ticks (seed %d)", strings.Join(labels, " "), traceTicks, s)),
	)
	fmt.Println(graph)

	if traceSVG != "" {
		f, err := os.Create(traceSVG)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.TraceSVG(f, labels, series, cfg.Export.Width, cfg.Export.Height); err != nil {
			return err
		}
		fmt.Printf("trace written to %s\n", traceSVG)
	}
	return nil
}

func saveSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	name := ""
	if len(args) == 1 {
		name = args[0]
	}

	s := cfg.SeedOrNow()
	rng := rand.New(rand.NewSource(s))
	d, err := dataset.Generate(cfg.Count, rng)
	if err != nil {
		return err
	}
	for range saveTicks {
		loop.Perturb(d, rng)
	}

	st := storage.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(name, d, storage.Metadata{Seed: s, Sort: cfg.Sort, Ticks: saveTicks})
	if err != nil {
		return err
	}
	fmt.Printf("snapshot id: %s\n", id)
	fmt.Printf("saved to: %s\n", st.Dir())
	return nil
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}
	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tCOUNT\tMAX\tSORT\tTICKS")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%s\t%d\n",
			s.ID,
			s.Name,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Count,
			s.Max,
			s.Sort,
			s.Ticks,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	id, err := resolveID(st, args[0])
	if err != nil {
		return err
	}
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	d, err := st.LoadDataset(id)
	if err != nil {
		return err
	}

	fmt.Printf("snapshot: %s\n", meta.ID)
	fmt.Printf("saved: %s\n", meta.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("seed: %d  ticks: %d  sort: %s\n\n", meta.Seed, meta.Ticks, meta.Sort)

	mode, _ := dataset.ParseSortMode(meta.Sort)
	for _, p := range dataset.Sort(d, mode) {
		n := int(p.Value / dataset.MaxValue * 40)
		fmt.Printf("  %-2s %6.2f %s\n", p.Label, p.Value, strings.Repeat("█", n))
	}
	return nil
}

func deleteSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := storage.New(cfg.DataDir)
	id, err := resolveID(st, args[0])
	if err != nil {
		return err
	}
	if err := st.Delete(id); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", id)
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, _, err := datasetFor(cfg, args)
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, dataset.Sort(d, cfg.SortMode()))
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, _, err := datasetFor(cfg, args)
	if err != nil {
		return err
	}
	mode := cfg.SortMode()
	return storage.WriteJSON(os.Stdout, dataset.Sort(d, mode), mode)
}
