// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ik5/audpool"
	"github.com/ik5/audpool/output"
	"github.com/ik5/audpool/resource"
)

var (
	playChannel string
	playGroup   string
	playVolume  float64
	playGap     time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play ADDRESS...",
	Short: "Play clips through the audio device",
	Long: `Load every address and play them one after another on a channel.

Examples:
  audpool play -r assets click
  audpool play -c game.yaml -r assets --channel music theme/intro theme/loop
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlay,
}

func init() {
	f := playCmd.Flags()
	f.StringVar(&playChannel, "channel", "", "Channel to play on (default first configured)")
	f.StringVar(&playGroup, "group", resource.CommonGroup, "Resource group to load into")
	f.Float64Var(&playVolume, "volume", -1, "Playback volume 0..100 (default channel volume)")
	f.DurationVar(&playGap, "gap", 0, "Pause between clips")
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dev, err := output.NewOtoDevice(cfg.Output.SampleRate, cfg.Output.Channels, output.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m, err := newManager(ctx, cfg, dev)
	if err != nil {
		_ = dev.Close()
		return err
	}
	defer func() {
		if err := m.Shutdown(); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
	}()

	ch, err := pickChannel(m, playChannel)
	if err != nil {
		return err
	}
	if err := m.LoadAll(ctx, args, playGroup); err != nil {
		return err
	}

	go func() { _ = m.Run(ctx, cfg.Output.Tick()) }()

	opts := []audpool.PlayOption{audpool.InGroup(playGroup)}
	if playVolume >= 0 {
		opts = append(opts, audpool.WithVolume(playVolume))
	}

	for _, address := range args {
		h, err := m.Play(address, ch, opts...)
		if err != nil {
			return err
		}
		logger.Info().Stringer("playback", h).Msg("playing")

		if err := wait(ctx, h.IsPlaying, cfg.Output.Tick()); err != nil {
			return nil
		}
		if playGap > 0 {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(playGap):
			}
		}
	}

	return nil
}

// wait polls until playing reports false or ctx ends.
func wait(ctx context.Context, playing func() bool, every time.Duration) error {
	t := time.NewTicker(every)
	defer t.Stop()

	for playing() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	return nil
}
