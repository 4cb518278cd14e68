package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"acmcompass/internal/app"
	"acmcompass/internal/banner"
	"acmcompass/internal/bookmarklet"
	"acmcompass/internal/config"
	"acmcompass/internal/gitsync"
	"acmcompass/internal/server"
	"acmcompass/internal/store"
)

const version = "1.0.0"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "compass",
	Short: "ACM Compass - competitive programming tracker",
	Long: `ACM Compass tracks practice problems and contest results in plain
JSON files that live in a git-synced data directory.

Running without arguments starts the terminal UI together with the
bookmarklet import server. Use "compass serve" for a headless import
server, and "compass bookmarklet" to generate the browser bookmarklet
installation page.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bookmarklet import server without the terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe()
	},
}

var bookmarkletCmd = &cobra.Command{
	Use:   "bookmarklet [output.html]",
	Short: "Generate the bookmarklet installation page",
	Long: `Writes an HTML page containing the standings-scraper bookmarklet.
Open the page in a browser and drag the link to the bookmarks bar.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := "bookmarklet.html"
		if len(args) == 1 {
			out = args[0]
		}
		if err := bookmarklet.WritePage(out); err != nil {
			return fmt.Errorf("writing bookmarklet page: %w", err)
		}
		fmt.Printf("Bookmarklet page written to %s\n", out)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath(), "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bookmarkletCmd)
}

// buildDeps loads the config and wires the stores, reconciler, and pending
// import slot behind the given logger.
func buildDeps(cfg *config.Config, log *zap.Logger) (app.Deps, error) {
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return app.Deps{}, fmt.Errorf("creating data directory %s: %w", cfg.DataDir, err)
	}

	solutions := store.NewSolutionStore(cfg.SolutionsDir())
	problems := store.NewProblemStore(cfg.ProblemsPath(), solutions, log)
	contests := store.NewContestStore(cfg.ContestsPath(), log)
	pending := store.NewPendingImport()
	reconciler := gitsync.NewReconciler(cfg.DataDir, cfg.GitConfigPath(), gitsync.ExecRunner{}, log)

	return app.Deps{
		Config:     cfg,
		Problems:   problems,
		Contests:   contests,
		Solutions:  solutions,
		Pending:    pending,
		Reconciler: reconciler,
		Log:        log,
	}, nil
}

// fileLogger builds a logger writing to compass.log next to the data
// directory. The TUI owns the terminal, so nothing may log to it.
func fileLogger(cfg *config.Config) (*zap.Logger, error) {
	logPath := filepath.Join(filepath.Dir(cfg.DataDir), "compass.log")

	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{logPath}
	zc.ErrorOutputPaths = []string{logPath}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

func stderrLogger() (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}

// runTUI starts the import server in the background and the terminal UI in
// the foreground.
func runTUI() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := fileLogger(cfg)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	deps, err := buildDeps(cfg, log)
	if err != nil {
		return err
	}

	srv := server.New(cfg.ListenAddr, deps.Pending, log)
	go func() {
		if err := srv.Start(); err != nil {
			log.Error("import server failed", zap.Error(err))
		}
	}()

	p := tea.NewProgram(app.New(deps), tea.WithAltScreen())
	_, err = p.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if serr := srv.Shutdown(ctx); serr != nil {
		log.Warn("import server shutdown", zap.Error(serr))
	}

	if err != nil {
		return fmt.Errorf("running UI: %w", err)
	}
	return nil
}

// runServe runs only the import server, until interrupted.
func runServe() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log, err := stderrLogger()
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer log.Sync()

	deps, err := buildDeps(cfg, log)
	if err != nil {
		return err
	}

	fmt.Print(banner.Render(version, cfg.ListenAddr))

	srv := server.New(cfg.ListenAddr, deps.Pending, log)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
