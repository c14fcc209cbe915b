package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hostwatch/diskwatch/pkg/api"
	"github.com/hostwatch/diskwatch/pkg/config"
	"github.com/hostwatch/diskwatch/pkg/dispatcher"
	"github.com/hostwatch/diskwatch/pkg/eventqueue"
	"github.com/hostwatch/diskwatch/pkg/healthhttp"
	"github.com/hostwatch/diskwatch/pkg/log"
	"github.com/hostwatch/diskwatch/pkg/shutdown"
	"github.com/hostwatch/diskwatch/pkg/source/disk"
)

// Version is set via -ldflags at build time.
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "diskwatchd",
	Short:   "diskwatchd streams a live block-device inventory over gRPC",
	Version: Version,
	RunE:    run,
}

func init() {
	rootCmd.Flags().String("config", config.DefaultConfigPath, "Path to YAML config file")
	rootCmd.Flags().String("ip", "", "Listen IP for the gRPC API (overrides config file)")
	rootCmd.Flags().Int("port", 0, "Listen port for the gRPC API (overrides config file)")
	rootCmd.Flags().String("log-level", "", "Log level: debug, info, warn, error (overrides config file)")
	rootCmd.Flags().Bool("log-json", false, "Output logs in JSON format (overrides config file)")
}

func run(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if ip, _ := cmd.Flags().GetString("ip"); ip != "" {
		cfg.IP = ip
	}
	if port, _ := cmd.Flags().GetInt("port"); port != 0 {
		cfg.Port = port
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.LogLevel = level
	}
	if json, _ := cmd.Flags().GetBool("log-json"); json {
		cfg.LogJSON = true
	}

	log.Init(log.Config{
		Level:      log.Level(cfg.LogLevel),
		JSONOutput: cfg.LogJSON,
	})
	healthhttp.Version = Version

	logger := log.WithComponent("main")
	logger.Info().Str("addr", cfg.Addr()).Msg("starting diskwatchd")

	sender, rootReceiver := shutdown.New()

	queue := eventqueue.New()

	diskCache := disk.NewCache()
	diskProducer := disk.NewProducer(diskCache, queue)

	d := dispatcher.New()
	d.BindQueue(queue)
	d.Register(disk.NewHandle(diskCache))

	runWithReceiver := func(fn func(ctx context.Context)) {
		r := rootReceiver.Clone()
		go func() {
			defer r.Release()
			fn(r.Context())
		}()
	}

	runWithReceiver(d.Run)
	runWithReceiver(diskProducer.Run)

	// The root receiver itself isn't a long-lived task: its Context is
	// handed to the API server for per-RPC cancellation (no Release
	// obligation there), and the long-lived tasks above hold their own
	// clones. Release it now so Shutdown only waits on those clones.
	apiCtx := rootReceiver.Context()
	rootReceiver.Release()

	apiServer := api.NewServer(d, apiCtx)
	apiErrCh := make(chan error, 1)
	go func() {
		if err := apiServer.Start(cfg.Addr()); err != nil {
			apiErrCh <- fmt.Errorf("gRPC API server: %w", err)
		}
	}()

	healthServer := healthhttp.NewServer(d)
	go func() {
		if err := healthServer.Start(cfg.HealthAddr); err != nil {
			logger.Warn().Err(err).Msg("health HTTP server stopped")
		}
	}()
	logger.Info().Str("addr", cfg.HealthAddr).Msg("health/metrics endpoints listening")

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var runErr error
	select {
	case <-sigCtx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-apiErrCh:
		logger.Error().Err(err).Msg("gRPC API server failed")
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := sender.Shutdown(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("shutdown did not complete cleanly within the timeout")
	}

	apiServer.Stop()
	logger.Info().Msg("diskwatchd stopped")
	return runErr
}
