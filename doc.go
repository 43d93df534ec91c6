// SPDX-License-Identifier: EPL-2.0

// Package audpool is a small audio playback middleware. It groups voices
// into named channels, routes channels through a tree of volume buses and
// keeps decoded clips in a group aware cache.
//
// # Building blocks
//
//   - channel: voice pools with round-robin allocation, attack and release
//     fades, crossfade and per playback volume overrides
//   - bus: master and group buses mapping 0..100 volumes to decibels
//   - resource: clip cache with common and named groups, labels and packs
//   - output: playback devices, an oto backed one for speakers and an
//     offline Renderer for files and tests
//   - formats: wav, mp3, ogg vorbis, aiff and flac decoders
//
// # Quick Start
//
//	cfg := config.Defaults()
//	cfg.Channels = []config.Channel{config.DefaultChannel("sfx")}
//
//	dev, _ := output.NewOtoDevice(cfg.Output.SampleRate, cfg.Output.Channels)
//	m, _ := audpool.New(ctx, cfg, dev, resource.FSLoader{FS: os.DirFS("sounds"), Exts: []string{"wav"}})
//	defer m.Shutdown()
//
//	_ = m.Load(ctx, "click", resource.CommonGroup)
//	h, _ := m.Play("click", "sfx")
//
//	go m.Run(ctx, 0)
//
// Fades only move when the manager ticks. Run ticks on a timer; callers
// with their own frame loop call Tick directly.
package audpool
