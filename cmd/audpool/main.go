// SPDX-License-Identifier: EPL-2.0

// Command audpool plays, renders and inspects channel configurations.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ik5/audpool"
	"github.com/ik5/audpool/config"
	"github.com/ik5/audpool/formats"
	"github.com/ik5/audpool/internal/logging"
	"github.com/ik5/audpool/metrics"
	"github.com/ik5/audpool/output"
	"github.com/ik5/audpool/resource"
)

const defaultChannel = "main"

var (
	logger    zerolog.Logger
	collector *metrics.Collector

	logLevel    string
	pretty      bool
	metricsAddr string
	configPath  string
	assetRoot   string
)

var rootCmd = &cobra.Command{
	Use:               "audpool",
	Short:             "Channel based audio playback",
	Long:              "audpool drives voice pooled channels with fades and crossfades, live through the audio device or offline into a WAV file.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logLevel, "log-level", os.Getenv(config.EnvLogLevel), "Log level (trace, debug, info, warn, error)")
	pf.BoolVar(&pretty, "pretty", false, "Human readable log output")
	pf.StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	pf.StringVarP(&configPath, "config", "c", "", "Config file (default $"+config.EnvConfig+")")
	pf.StringVarP(&assetRoot, "root", "r", ".", "Directory clip addresses are resolved against")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	lvl, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	logger = logging.Setup(lvl, pretty, os.Stderr)

	collector = metrics.New("audpool")
	if metricsAddr == "" {
		return nil
	}
	if err := collector.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	srv := &http.Server{
		Addr:              metricsAddr,
		Handler:           promhttp.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info().Str("addr", metricsAddr).Msg("metrics listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("metrics server")
		}
	}()

	return nil
}

// loadConfig reads --config, then $AUDPOOL_CONFIG. Without either it falls
// back to the defaults with a single channel.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		path = config.PathFromEnv("")
	}
	if path == "" {
		cfg := config.Defaults()
		cfg.Channels = []config.Channel{config.DefaultChannel(defaultChannel)}
		return cfg, nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug().Str("path", path).Int("channels", len(cfg.Channels)).Msg("config loaded")

	return cfg, nil
}

func newManager(ctx context.Context, cfg config.Config, dev output.Device) (*audpool.Manager, error) {
	decoders := formats.Registry()
	loader := resource.FSLoader{FS: os.DirFS(assetRoot), Exts: decoders.Extensions()}

	return audpool.New(ctx, cfg, dev, loader,
		audpool.WithLogger(logger),
		audpool.WithObserver(collector),
		audpool.WithDecoders(decoders),
	)
}

// pickChannel returns name, or the first configured channel when empty.
func pickChannel(m *audpool.Manager, name string) (string, error) {
	if name != "" {
		return name, nil
	}

	names := m.Channels()
	if len(names) == 0 {
		return "", errors.New("no channels configured")
	}
	return names[0], nil
}
