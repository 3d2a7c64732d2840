package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/trackball/internal/config"
	"github.com/san-kum/trackball/internal/export"
	"github.com/san-kum/trackball/internal/gui"
	"github.com/san-kum/trackball/internal/logging"
	"github.com/san-kum/trackball/internal/replay"
	"github.com/san-kum/trackball/internal/scene"
	"github.com/san-kum/trackball/internal/session"
	"github.com/san-kum/trackball/internal/trackball"
	"github.com/san-kum/trackball/internal/viz"
	"github.com/san-kum/trackball/internal/window"
)

var (
	configFile  string
	dataDir     string
	logLevel    string
	sensitivity float64
	sceneName   string
	preset      string
	record      bool

	replayAll bool
	workers   int

	exportTrace bool
	exportOut   string
	exportSize  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "trackball",
		Short:         "drag to rotate 3d objects",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHost(cmd, "")
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level")
	pf.Float64Var(&sensitivity, "sensitivity", trackball.DefaultSensitivity, "degrees of rotation per unit of cursor travel")
	pf.StringVar(&sceneName, "scene", config.DefaultScene, "scene preset or yaml file")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.BoolVar(&record, "record", false, "record the session")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal frontend",
		RunE:  func(cmd *cobra.Command, args []string) error { return runHost(cmd, "tui") },
	}
	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "raylib window frontend",
		RunE:  func(cmd *cobra.Command, args []string) error { return runHost(cmd, "gui") },
	}
	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "ebiten window frontend",
		RunE:  func(cmd *cobra.Command, args []string) error { return runHost(cmd, "window") },
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded sessions",
		RunE:  listSessions,
	}

	replayCmd := &cobra.Command{
		Use:   "replay [session_id...]",
		Short: "replay sessions and check them against the recording",
		RunE:  replaySessions,
	}
	replayCmd.Flags().BoolVar(&replayAll, "all", false, "replay every session")
	replayCmd.Flags().IntVar(&workers, "workers", 0, "parallel replays (0 = one per cpu)")

	plotCmd := &cobra.Command{
		Use:   "plot [session_id]",
		Short: "plot rotation angle over a session",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotSession,
	}

	exportCmd := &cobra.Command{
		Use:   "export [session_id]",
		Short: "export a session's final scene or angle trace as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSession,
	}
	exportCmd.Flags().BoolVar(&exportTrace, "trace", false, "export the angle trace instead of the scene")
	exportCmd.Flags().StringVarP(&exportOut, "output", "o", "", "output file (default <session_id>.svg)")
	exportCmd.Flags().IntVar(&exportSize, "size", 600, "image width in pixels")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scene.ListPresets() {
				s, err := scene.GetPreset(name)
				if err != nil {
					return err
				}
				fmt.Printf("  %-8s %d object(s)\n", name, s.Len())
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSENSITIVITY\tFRONTEND\tSCENE")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%s\t%s\n", name, p.Sensitivity, orDash(p.Frontend), orDash(p.Scene))
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "trackball.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, windowCmd, listCmd, replayCmd, plotCmd, exportCmd, scenesCmd, presetsCmd, configCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// loadConfig layers defaults, the config file, a preset, then explicit flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg.Apply(p)
	}

	flags := cmd.Flags()
	if flags.Changed("data") || configFile == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("sensitivity") {
		cfg.Sensitivity = sensitivity
	}
	if flags.Changed("scene") {
		cfg.Scene = sceneName
	}
	if flags.Changed("record") {
		cfg.Record = record
	}
	return cfg, cfg.Validate()
}

// newLogger keeps the terminal frontend's log out of the alternate screen.
func newLogger(cfg *config.Config, frontend string) (*zap.Logger, error) {
	opts := logging.Options{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding, File: cfg.Log.File}
	if frontend == "tui" && opts.File == "" {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, err
		}
		opts.File = filepath.Join(cfg.DataDir, "trackball.log")
	}
	return logging.New(opts)
}

func runHost(cmd *cobra.Command, frontend string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if frontend == "" {
		frontend = cfg.Frontend
	}

	log, err := newLogger(cfg, frontend)
	if err != nil {
		return err
	}
	defer log.Sync()

	scn, err := scene.Open(cfg.Scene)
	if err != nil {
		return err
	}
	log.Info("starting",
		zap.String("frontend", frontend),
		zap.String("scene", scn.Name),
		zap.Int("objects", scn.Len()),
		zap.Float64("sensitivity", cfg.Sensitivity),
	)

	observers := []trackball.Observer{logging.StepLogger{Log: log}}
	var sink trackball.OrientationSink = scn
	var rec *session.Recorder
	if cfg.Record {
		st := session.New(cfg.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := session.Metadata{
			Scene:       cfg.Scene,
			Frontend:    frontend,
			Sensitivity: cfg.Sensitivity,
		}
		for _, o := range scn.Objects() {
			meta.Objects = append(meta.Objects, session.ObjectMeta{ID: o.ID.String(), Name: o.Name})
		}
		rec, err = st.Create(meta)
		if err != nil {
			return err
		}
		observers = append(observers, rec)
		sink = rec.Watch(scn)
		log.Info("recording", zap.String("session", rec.ID()))
	}

	tb := cfg.Trackball()
	switch frontend {
	case "gui":
		err = gui.Run(gui.Options{
			Scene: scn, Trackball: tb, Log: log, Observers: observers, Sink: sink,
			Width: cfg.Window.Width, Height: cfg.Window.Height, FPS: cfg.Window.FPS, Title: cfg.Window.Title,
			Recording: rec != nil,
		})
	case "window":
		err = window.Run(window.Options{
			Scene: scn, Trackball: tb, Log: log, Observers: observers, Sink: sink,
			Width: cfg.Window.Width, Height: cfg.Window.Height, FPS: cfg.Window.FPS, Title: cfg.Window.Title,
			Recording: rec != nil,
		})
	default:
		err = viz.Run(viz.Options{
			Scene: scn, Trackball: tb, Log: log, Observers: observers, Sink: sink,
			GraphHeight: cfg.TUI.GraphHeight, History: cfg.TUI.History,
			Recording: rec != nil,
		})
	}

	if rec != nil {
		meta, cerr := rec.Close()
		if cerr != nil {
			log.Error("session not saved cleanly", zap.String("session", rec.ID()), zap.Error(cerr))
		} else {
			fmt.Printf("session %s: %d events, %d rotations, %.1fs\n", meta.ID, meta.Events, meta.Rotations, meta.Duration)
		}
		if err == nil {
			err = cerr
		}
	}
	return err
}

func listSessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sessions, err := session.New(cfg.DataDir).List()
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("no sessions found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tFRONTEND\tTIME\tDURATION\tEVENTS\tROTATIONS\tSENS")
	for _, m := range sessions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1fs\t%d\t%d\t%.2f\n",
			m.ID,
			m.Scene,
			m.Frontend,
			m.Timestamp.Format("2006-01-02 15:04:05"),
			m.Duration,
			m.Events,
			m.Rotations,
			m.Sensitivity,
		)
	}
	return w.Flush()
}

func replaySessions(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st := session.New(cfg.DataDir)

	ids := args
	switch {
	case replayAll:
		sessions, err := st.List()
		if err != nil {
			return err
		}
		ids = ids[:0]
		for _, m := range sessions {
			ids = append(ids, m.ID)
		}
	case len(ids) == 0:
		m, err := st.Latest()
		if err != nil {
			return err
		}
		ids = []string{m.ID}
	}
	if len(ids) == 0 {
		return session.ErrNoSessions
	}

	results, err := replay.RunAll(cmd.Context(), st, ids, workers)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTEPS\tROTATIONS\tMISMATCH\tTOTAL\tMAX\tDRAGS\tDRIFT")
	mismatches := 0
	for _, r := range results {
		mismatches += r.Mismatches
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.1f\t%.2f\t%.0f\t%.1e\n",
			r.ID, r.Steps, r.Rotations, r.Mismatches,
			r.Metrics["total_rotation"], r.Metrics["max_step"], r.Metrics["drags"], r.Metrics["norm_drift"])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if mismatches > 0 {
		return fmt.Errorf("replay: %d step(s) diverged from the recording", mismatches)
	}
	return nil
}

func replayOne(cmd *cobra.Command, args []string) (*session.Metadata, *replay.Result, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st := session.New(cfg.DataDir)
	var id string
	if len(args) > 0 {
		id = args[0]
	}
	meta, err := st.Resolve(id)
	if err != nil {
		return nil, nil, err
	}
	res, err := replay.Session(cmd.Context(), st, meta.ID)
	if err != nil {
		return nil, nil, err
	}
	return meta, res, nil
}

func plotSession(cmd *cobra.Command, args []string) error {
	meta, res, err := replayOne(cmd, args)
	if err != nil {
		return err
	}
	if len(res.Angles) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("session: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("rotations: %d\n\n", res.Rotations)

	graph := asciigraph.Plot(res.Angles,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.Caption("rotation angle (deg)"),
	)
	fmt.Println(graph)

	names := make([]string, 0, len(res.Metrics))
	for name := range res.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, res.Metrics[name])
	}
	return nil
}

func exportSession(cmd *cobra.Command, args []string) error {
	meta, res, err := replayOne(cmd, args)
	if err != nil {
		return err
	}
	out := exportOut
	if out == "" {
		out = meta.ID + ".svg"
	}
	height := exportSize * 3 / 4

	var svg string
	if exportTrace {
		svg, err = export.AngleTraceToSVG(res.Times, res.Angles, exportSize, height, "#00ffff")
		if err != nil {
			return err
		}
	} else {
		scn, err := finalScene(meta, res)
		if err != nil {
			return err
		}
		svg = export.SceneToSVG(scn, viz.NewCamera(scn.Camera), exportSize, height, "#c8c8c8")
	}

	if err := export.WriteFile(out, svg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

// finalScene rebuilds the recorded scene and poses each object as the replay
// left it. Objects are matched by name, since rebuilt scenes get fresh ids.
func finalScene(meta *session.Metadata, res *replay.Result) (*scene.Scene, error) {
	scn, err := scene.Open(meta.Scene)
	if err != nil {
		return nil, err
	}
	for _, om := range meta.Objects {
		id, err := uuid.Parse(om.ID)
		if err != nil {
			continue
		}
		q, ok := res.Final[id]
		if !ok {
			continue
		}
		if o, ok := scn.Lookup(om.Name); ok {
			if err := scn.ApplyOrientation(o.ID, q); err != nil {
				return nil, err
			}
		}
	}
	return scn, nil
}
