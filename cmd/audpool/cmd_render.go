// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/audpool/output"
)

var (
	renderScript string
	renderOut    string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a timed script into a WAV file",
	Long: `Run a script of play, stop, force_stop, volume, playback_volume and
bus_volume events against the configured channels without an audio device,
and write the mix as 16-bit PCM WAV.

Example script:
  duration_ms: 2000
  events:
    - {at_ms: 0, op: play, channel: music, address: theme, ref: theme}
    - {at_ms: 1000, op: playback_volume, ref: theme, volume: 20, fade_ms: 500}
    - {at_ms: 1500, op: stop, channel: music}

Examples:
  audpool render -c game.yaml -r assets --script intro.yaml --out intro.wav
`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderScript, "script", "s", "", "Event script (YAML)")
	f.StringVarP(&renderOut, "out", "o", "mix.wav", "Output WAV file")
	_ = renderCmd.MarkFlagRequired("script")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	script, err := loadScript(renderScript)
	if err != nil {
		return err
	}

	r, err := output.NewRenderer(cfg.Output.SampleRate, cfg.Output.Channels, output.WithLogger(logger))
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	m, err := newManager(ctx, cfg, r)
	if err != nil {
		_ = r.Close()
		return err
	}

	if err := Render(ctx, m, r, script, cfg.Output.Tick()); err != nil {
		_ = m.Shutdown()
		return err
	}

	f, err := os.Create(renderOut)
	if err != nil {
		_ = m.Shutdown()
		return fmt.Errorf("creating output: %w", err)
	}
	if err := r.WriteWAV(f); err != nil {
		f.Close()
		_ = m.Shutdown()
		return err
	}
	if err := f.Close(); err != nil {
		_ = m.Shutdown()
		return err
	}

	logger.Info().Str("out", renderOut).Dur("duration", r.Duration()).Msg("rendered")

	return m.Shutdown()
}
