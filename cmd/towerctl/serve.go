package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ashfall/worldcore/internal/boundary"
	"github.com/ashfall/worldcore/pkg/config"
	"github.com/ashfall/worldcore/pkg/logging"
	"github.com/ashfall/worldcore/pkg/metrics"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Args:  cobra.NoArgs,
	Short: "Run the boundary service and metrics endpoint",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Uint64("seed", 0, "tower seed")
	serveCmd.Flags().String("metrics-addr", ":9090", "address to serve /metrics on")
}

func runServe(cmd *cobra.Command, args []string) error {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	logging.Init(logging.Options{Level: level, Format: logging.FormatConsole})

	if cfgFile == "" {
		return fmt.Errorf("--config is required")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	towerSeed, _ := cmd.Flags().GetUint64("seed")
	metricsAddr, _ := cmd.Flags().GetString("metrics-addr")

	reg := metrics.New()
	svc := boundary.New(cfg, towerSeed, reg)
	defer svc.Shutdown()

	watcher := config.NewWatcher(cfgFile, 2*time.Second, cfg)
	defer watcher.Stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", reg.Handler())
	server := &http.Server{Addr: metricsAddr, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", metricsAddr).Msg("serving metrics")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("metrics server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
