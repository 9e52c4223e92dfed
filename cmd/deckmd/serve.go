package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	httpadapter "github.com/deckmd/deckmd/internal/adapters/primary/http"
	"github.com/deckmd/deckmd/internal/adapters/secondary/config"
	"github.com/deckmd/deckmd/internal/adapters/secondary/parser"
	"github.com/deckmd/deckmd/internal/adapters/secondary/watcher"
	"github.com/deckmd/deckmd/internal/domain/entities"
	"github.com/deckmd/deckmd/internal/domain/services"
)

var (
	servePort      int
	serveHost      string
	serveAssetsDir string
	serveNoWatch   bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Serve a deck with live reload",
	Long: `Start a local HTTP server exposing the compiled deck as JSON and
pushing updates over WebSocket whenever the markdown file changes.

Example:
  deckmd serve slides.md
  deckmd serve slides.md --port 8080`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (overrides config)")
	serveCmd.Flags().StringVar(&serveAssetsDir, "assets-dir", "", "Base directory for local images (overrides config)")
	serveCmd.Flags().BoolVar(&serveNoWatch, "no-watch", false, "Disable file watching")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	deckPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	cfg, err := loadConfig(cmd, filepath.Dir(deckPath))
	if err != nil {
		return err
	}

	p := parser.New(parser.Options{
		BasePath:          assetsBase(cfg, deckPath),
		MaxImageBytes:     cfg.Parser.MaxImageBytes,
		AllowedFigmaHosts: cfg.Parser.FigmaHosts,
	})
	compiler := services.NewDeckService(p)

	deck, err := compiler.Compile(ctx, deckPath)
	if err != nil {
		return err
	}

	server := httpadapter.NewServer(&cfg.Server, cfg.Logging.GetLevel())
	server.SetDeck(deck)

	if err := server.Start(ctx, cfg.Server.Port, cfg.Server.Host); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	var reload *services.ReloadService
	if !serveNoWatch {
		poller := watcher.NewPollingWatcher(
			time.Duration(cfg.Watcher.IntervalMs)*time.Millisecond,
			time.Duration(cfg.Watcher.DebounceMs)*time.Millisecond,
		)
		reload = services.NewReloadService(poller, compiler, server)
		if err := reload.Start(ctx, deckPath); err != nil {
			return fmt.Errorf("starting live reload: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s:%d\n", deckPath, cfg.Server.Host, cfg.Server.Port)

	<-ctx.Done()

	if reload != nil {
		if err := reload.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "stopping live reload: %v\n", err)
		}
	}

	shutdownCtx, cancel := contextWithShutdownTimeout(cfg)
	defer cancel()
	return server.Stop(shutdownCtx)
}

// loadConfig builds the effective configuration: defaults, global file,
// local file, then CLI flags.
func loadConfig(cmd *cobra.Command, dir string) (*entities.Config, error) {
	loader := config.NewTOMLLoader()
	merger := config.NewConfigMerger()

	global, err := loader.LoadGlobal(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("loading global config: %w", err)
	}
	local, err := loader.LoadLocal(cmd.Context(), dir)
	if err != nil {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	merged := merger.Merge(config.GetDefaultConfig(), global, local)

	verbose, _ := cmd.Flags().GetBool("verbose")
	return merger.ApplyFlags(merged, map[string]interface{}{
		"port":       servePort,
		"host":       serveHost,
		"assets-dir": serveAssetsDir,
		"verbose":    verbose,
	}), nil
}

func contextWithShutdownTimeout(cfg *entities.Config) (context.Context, context.CancelFunc) {
	timeout := time.Duration(cfg.Server.ShutdownTimeout) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(context.Background(), timeout)
}

// assetsBase picks the base directory for resolving local image refs.
func assetsBase(cfg *entities.Config, deckPath string) string {
	if cfg.Parser.AssetsDir != "" {
		return cfg.Parser.AssetsDir
	}
	return filepath.Dir(deckPath)
}
