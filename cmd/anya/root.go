package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/anya/internal/app"
	"github.com/phanxgames/anya/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// rootCmd runs the widget when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "anya",
	Short: "Always-on clock widget with an animated background",
	Long: `anya is a small borderless desktop widget that shows a clock over an
animated background.

Running anya without a subcommand opens the widget. Click the + in the
corner for settings: themes, background, clock font and quit.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			setupLogger("")
			return fmt.Errorf("failed to load config: %w", err)
		}
		setupLogger(cfg.Log.Level)
		return nil
	},
	RunE: runWidget,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/anya/config.toml)")
}

// setupLogger configures the global slog logger. --verbose wins over the
// configured level.
func setupLogger(level string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(level),
	}
	if globalOpts.verbose {
		opts.Level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func runWidget(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	game, err := app.New(ctx, cfg, app.Options{Logger: logger})
	if err != nil {
		return err
	}
	defer game.Close()

	w := cfg.Window
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowSize(w.Width, w.Height)
	ebiten.SetWindowDecorated(w.Decorated)
	ebiten.SetWindowFloating(w.Floating)
	ebiten.SetTPS(w.TPS)

	logger.Info("starting widget", "width", w.Width, "height", w.Height, "tps", w.TPS)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
