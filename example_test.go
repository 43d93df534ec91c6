// SPDX-License-Identifier: EPL-2.0

package audpool_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ik5/audpool"
	"github.com/ik5/audpool/config"
	"github.com/ik5/audpool/formats/wav"
	"github.com/ik5/audpool/output"
	"github.com/ik5/audpool/resource"
)

// writeBeep stores 100ms of a constant tone as beep.wav in dir.
func writeBeep(dir string) error {
	samples := make([]float32, 800)
	for i := range samples {
		samples[i] = 0.5
	}

	f, err := os.Create(filepath.Join(dir, "beep.wav"))
	if err != nil {
		return err
	}
	if err := wav.Encode(f, 8000, 1, samples); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Example plays a clip on an offline renderer and lets it finish.
func Example() {
	ctx := context.Background()

	dir, err := os.MkdirTemp("", "audpool-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	if err := writeBeep(dir); err != nil {
		fmt.Println(err)
		return
	}

	cfg := config.Defaults()
	cfg.Output.SampleRate = 8000
	cfg.Output.Channels = 1
	cfg.Channels = []config.Channel{config.DefaultChannel("sfx")}

	r, err := output.NewRenderer(cfg.Output.SampleRate, cfg.Output.Channels)
	if err != nil {
		fmt.Println(err)
		return
	}

	loader := resource.FSLoader{FS: os.DirFS(dir), Exts: []string{"wav"}}
	m, err := audpool.New(ctx, cfg, r, loader)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer m.Shutdown()

	if err := m.Load(ctx, "beep", resource.CommonGroup); err != nil {
		fmt.Println(err)
		return
	}

	h, err := m.Play("beep", "sfx")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(h, h.IsPlaying())

	r.Render(200 * time.Millisecond)
	m.Tick(10 * time.Millisecond)

	playbacks, _ := m.Playbacks("sfx")
	fmt.Println(h.IsPlaying(), len(playbacks))
	// Output:
	// sfx/0(beep) true
	// false 0
}
