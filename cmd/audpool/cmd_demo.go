// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ik5/audpool/internal/tui"
	"github.com/ik5/audpool/output"
	"github.com/ik5/audpool/resource"
)

var demoLabel string

var demoCmd = &cobra.Command{
	Use:   "demo [ADDRESS...]",
	Short: "Interactive channel demo",
	Long: `Open a terminal UI over every configured channel. Clips come from the
arguments, or from a label in the config with --label.

Examples:
  audpool demo -r assets click boom theme
  audpool demo -c game.yaml -r assets --label ui
`,
	RunE: runDemo,
}

func init() {
	demoCmd.Flags().StringVar(&demoLabel, "label", "", "Load the addresses of this config label")
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addresses := args
	if demoLabel != "" {
		addresses = append(addresses, cfg.Labels[demoLabel]...)
	}
	if len(addresses) == 0 {
		return fmt.Errorf("nothing to play: pass addresses or --label")
	}

	dev, err := output.NewOtoDevice(cfg.Output.SampleRate, cfg.Output.Channels, output.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("opening audio device: %w", err)
	}

	ctx := cmd.Context()
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

	if err := m.LoadAll(ctx, addresses, resource.CommonGroup); err != nil {
		return err
	}

	return tui.Run(m, addresses, cfg.Output.Tick())
}
