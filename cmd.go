package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	addr    string
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Serve the portfolio site",
	Long: `Serves the portfolio pages: home, about, projects, contact and the
secret download page, with the picture box, the shape slideshow and the
optional visitor analytics dashboard.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if addr != "" {
			cfg.Server.Addr = addr
		}
		return serve(cmd.Context(), cfg)
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the theme catalog the picture box will use",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		catalog, err := LoadCatalog(cfg.Picker.Catalog)
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfg.Picker.ImagesDir); err == nil {
			if catalog, err = catalog.Discover(os.DirFS(cfg.Picker.ImagesDir)); err != nil {
				return err
			}
		}
		out := cmd.OutOrStdout()
		for i, t := range catalog {
			fmt.Fprintf(out, "%d  %-12s %d images  %s\n", i, t.Name, len(t.Images), t.Description)
		}
		return catalog.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "portfolio.yml", "config file path")
	rootCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	rootCmd.AddCommand(catalogCmd)
}

func Execute() error {
	return rootCmd.Execute()
}

// serve runs the site until the process is interrupted.
func serve(ctx context.Context, cfg *Config) error {
	// gin.SetMode panics on a mode it does not know.
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	gin.SetMode(cfg.Server.Mode)

	app, err := NewApp(cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: app.Router(),
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logStartup(cfg, app)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("Shutting down")
	// Hijacked websocket connections are not tracked by Shutdown. The
	// store is closed by the deferred Close once Shutdown has drained.
	app.endFeeds()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
