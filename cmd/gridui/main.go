package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/johnmatter/gridui/internal/app"
	"github.com/johnmatter/gridui/internal/config"
	"github.com/johnmatter/gridui/internal/control"
	"github.com/johnmatter/gridui/internal/editor"
	"github.com/johnmatter/gridui/internal/grid"
	"github.com/johnmatter/gridui/internal/gui"
	"github.com/johnmatter/gridui/internal/journal"
	"github.com/johnmatter/gridui/internal/logging"
	"github.com/johnmatter/gridui/internal/monitor"
	"github.com/johnmatter/gridui/internal/sim"
)

var (
	configFile  string
	preset      string
	logLevel    string
	journalPath string
	// Hardware transport
	host     string
	prefix   string
	deviceID string
	echo     bool
	// Simulated grid size
	gridWidth  int
	gridHeight int
	// Rendering
	fps    int
	policy string
	seed   int64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gridui",
		Short: "geometric control editor for grid controllers",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the terminal simulator when no command given
			return runSim(cmd, args)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log to stderr (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "append touch events to file (json lines)")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "render frame rate")
	rootCmd.PersistentFlags().StringVar(&policy, "policy", config.DefaultPolicy, "brightness policy (static|flash)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "control id seed (0 = time-based)")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "edit on hardware via serialosc",
		RunE:  runHardware,
	}
	runCmd.Flags().StringVar(&host, "host", config.DefaultHost, "serialosc daemon host")
	runCmd.Flags().StringVar(&prefix, "prefix", config.DefaultPrefix, "osc address prefix")
	runCmd.Flags().StringVar(&deviceID, "device", "", "attach to this device id only")
	runCmd.Flags().BoolVar(&echo, "echo", false, "mirror frames to the terminal")

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "edit on the terminal simulator",
		RunE:  runSim,
	}
	simCmd.Flags().IntVar(&gridWidth, "width", config.DefaultWidth, "grid width")
	simCmd.Flags().IntVar(&gridHeight, "height", config.DefaultHeight, "grid height")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "edit on the desktop simulator",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&gridWidth, "width", config.DefaultWidth, "grid width")
	guiCmd.Flags().IntVar(&gridHeight, "height", config.DefaultHeight, "grid height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list grid presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-4s %dx%d, %s brightness\n",
					name, p.Sim.Width, p.Sim.Height, p.Render.Policy)
			}
		},
	}

	rootCmd.AddCommand(runCmd, simCmd, guiCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging() error {
	if logLevel == "" {
		return nil
	}
	var level slog.Level
	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", logLevel)
	}
	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig resolves defaults, preset, config file, then changed CLI
// flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("fps") {
		cfg.Render.FPS = fps
	}
	if cmd.Flags().Changed("policy") {
		cfg.Render.Policy = policy
	}
	if cmd.Flags().Changed("seed") {
		cfg.Editor.Seed = seed
	}
	if cmd.Flags().Changed("width") {
		cfg.Sim.Width = gridWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Sim.Height = gridHeight
	}
	if cmd.Flags().Changed("host") {
		cfg.Device.Host = host
	}
	if cmd.Flags().Changed("prefix") {
		cfg.Device.Prefix = prefix
	}
	if cmd.Flags().Changed("device") {
		cfg.Device.ID = deviceID
	}

	return cfg, nil
}

// buildEditor constructs the editor and attaches the touch journal when
// requested. The returned func closes the journal.
func buildEditor(cfg *config.Config) (*editor.Editor, func(), error) {
	pol, err := control.ParsePolicy(cfg.Render.Policy)
	if err != nil {
		return nil, nil, err
	}
	ed := editor.New(pol, cfg.Editor.Seed)

	cleanup := func() {}
	if journalPath != "" {
		jw, err := journal.Open(journalPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open journal: %w", err)
		}
		ed.AddObserver(jw)
		cleanup = func() { jw.Close() }
	}
	return ed, cleanup, nil
}

// buildRegistry wires the interactive surfaces next to the builtin
// hardware transport. The surface factories capture the editor so key
// hooks reach it.
func buildRegistry(ed *editor.Editor) *app.Registry {
	reg := app.NewRegistry()
	reg.Register("sim", func(cfg *config.Config) (grid.Device, error) {
		return sim.NewDevice(cfg.Sim.Width, cfg.Sim.Height, sim.Hooks{
			Snapshot:     ed.Snapshot,
			CycleVariant: ed.CycleSelectedVariant,
		}), nil
	})
	reg.Register("gui", func(cfg *config.Config) (grid.Device, error) {
		return gui.NewDevice(cfg.Sim.Width, cfg.Sim.Height, gui.Hooks{
			Snapshot:     ed.Snapshot,
			CycleVariant: ed.CycleSelectedVariant,
		}), nil
	})
	return reg
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()
	return ctx, cancel
}

func runHardware(cmd *cobra.Command, args []string) error {
	if err := setupLogging(); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ed, cleanup, err := buildEditor(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	dev, err := buildRegistry(ed).Get("hardware", cfg)
	if err != nil {
		return err
	}

	session := app.NewSession(dev, ed, cfg.Render.FPS)
	if echo {
		mon := monitor.Tee(dev, os.Stdout, 10)
		mon.Start()
		defer mon.Stop()
		session.SetSink(mon)
	} else {
		fmt.Println("waiting for grid... (ctrl-c to quit)")
	}

	ctx, cancel := signalContext()
	defer cancel()

	if err := session.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runSim(cmd *cobra.Command, args []string) error {
	return runSurface(cmd, "sim")
}

func runGUI(cmd *cobra.Command, args []string) error {
	return runSurface(cmd, "gui")
}

// surface is an interactive device that owns the main goroutine while
// the session runs in the background.
type surface interface {
	grid.Device
	Run(ctx context.Context) error
}

func runSurface(cmd *cobra.Command, name string) error {
	if err := setupLogging(); err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ed, cleanup, err := buildEditor(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	dev, err := buildRegistry(ed).Get(name, cfg)
	if err != nil {
		return err
	}
	ui, ok := dev.(surface)
	if !ok {
		return fmt.Errorf("device %q cannot run interactively", name)
	}

	ctx, cancel := signalContext()
	defer cancel()

	session := app.NewSession(dev, ed, cfg.Render.FPS)

	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()

	uiErr := ui.Run(ctx)
	sessErr := <-done

	if uiErr != nil && !errors.Is(uiErr, context.Canceled) {
		return uiErr
	}
	if sessErr != nil && !errors.Is(sessErr, context.Canceled) {
		return sessErr
	}
	return nil
}
