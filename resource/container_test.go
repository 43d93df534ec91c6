// SPDX-License-Identifier: EPL-2.0

package resource_test

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/ik5/audpool/audio"
	"github.com/ik5/audpool/formats"
	"github.com/ik5/audpool/internal/audiotest"
	"github.com/ik5/audpool/resource"
)

type countingLoader struct {
	resource.Loader
	opens atomic.Int32
}

func (l *countingLoader) Open(ctx context.Context, address string) (string, io.ReadCloser, error) {
	l.opens.Add(1)
	return l.Loader.Open(ctx, address)
}

func newContainer(t *testing.T, opts ...resource.Option) (*resource.Container, *countingLoader) {
	t.Helper()

	data := audiotest.WAV(t, 8000, 1, 800, 0.5)
	fsys := fstest.MapFS{
		"sfx/hit.wav":   {Data: data},
		"sfx/jump.wav":  {Data: data},
		"bgm/theme.wav": {Data: data},
		"notes.txt":     {Data: []byte("not audio")},
	}

	loader := &countingLoader{Loader: resource.FSLoader{FS: fsys, Exts: []string{"mp3", "wav"}}}
	return resource.New(loader, formats.Registry(), opts...), loader
}

func TestLoad(t *testing.T) {
	t.Parallel()

	c, loader := newContainer(t)
	ctx := context.Background()

	if err := c.Load(ctx, "sfx/hit.wav", resource.CommonGroup); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := c.Load(ctx, "sfx/hit.wav", resource.CommonGroup); err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if got := loader.opens.Load(); got != 1 {
		t.Errorf("opens = %d, want 1", got)
	}

	clip := c.Clip("sfx/hit.wav", resource.CommonGroup)
	if clip == nil {
		t.Fatal("Clip() = nil after Load")
	}
	if clip.Frames() != 800 || clip.SampleRate() != 8000 {
		t.Errorf("clip = %d frames at %d Hz, want 800 at 8000", clip.Frames(), clip.SampleRate())
	}
	if k, ok := c.Kind("sfx/hit.wav", resource.CommonGroup); !ok || k != resource.Streamed {
		t.Errorf("Kind() = %v, %v, want streamed, true", k, ok)
	}

	if c.Clip("sfx/hit.wav", "level1") != nil {
		t.Errorf("clip visible in a group it was not loaded into")
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	c, _ := newContainer(t)
	ctx := context.Background()

	tests := []struct {
		address string
		want    error
	}{
		{address: "", want: resource.ErrEmptyAddress},
		{address: "sfx/missing.wav", want: fs.ErrNotExist},
		{address: "sfx/missing", want: fs.ErrNotExist},
		{address: "notes.txt", want: audio.ErrUnknownFormat},
	}

	for _, tt := range tests {
		if err := c.Load(ctx, tt.address, resource.CommonGroup); !errors.Is(err, tt.want) {
			t.Errorf("Load(%q) error = %v, want %v", tt.address, err, tt.want)
		}
		if c.Loaded(tt.address, resource.CommonGroup) {
			t.Errorf("Loaded(%q) = true after failure", tt.address)
		}
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if err := c.Load(canceled, "sfx/hit.wav", resource.CommonGroup); !errors.Is(err, context.Canceled) {
		t.Errorf("Load(canceled) error = %v, want %v", err, context.Canceled)
	}
}

func TestLoadWithoutExtension(t *testing.T) {
	t.Parallel()

	c, _ := newContainer(t)

	if err := c.Load(context.Background(), "sfx/jump", "level1"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Clip("sfx/jump", "level1") == nil {
		t.Errorf("Clip() = nil")
	}
}

func TestLoadConverts(t *testing.T) {
	t.Parallel()

	c, _ := newContainer(t, resource.WithFormat(16000, 2))

	if err := c.Load(context.Background(), "bgm/theme.wav", resource.CommonGroup); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	clip := c.Clip("bgm/theme.wav", resource.CommonGroup)
	if clip.SampleRate() != 16000 || clip.Channels() != 2 {
		t.Errorf("clip format = %d Hz/%d ch, want 16000 Hz/2 ch", clip.SampleRate(), clip.Channels())
	}
}

func TestConcurrentLoadDecodesOnce(t *testing.T) {
	t.Parallel()

	c, loader := newContainer(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := c.Load(context.Background(), "bgm/theme.wav", "menu"); err != nil {
				t.Errorf("Load() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := loader.opens.Load(); got != 1 {
		t.Errorf("opens = %d, want 1", got)
	}
}

func TestLabels(t *testing.T) {
	t.Parallel()

	c, _ := newContainer(t, resource.WithLabels(map[string][]string{
		"combat": {"sfx/hit.wav", "sfx/jump.wav"},
		"broken": {"sfx/hit.wav", "sfx/nope.wav"},
	}))
	ctx := context.Background()

	if err := c.LoadLabel(ctx, "combat", "arena"); err != nil {
		t.Fatalf("LoadLabel() error = %v", err)
	}
	if got := c.Count("arena"); got != 2 {
		t.Errorf("Count(arena) = %d, want 2", got)
	}

	if err := c.LoadLabel(ctx, "", "arena"); !errors.Is(err, resource.ErrEmptyLabel) {
		t.Errorf("LoadLabel(\"\") error = %v, want %v", err, resource.ErrEmptyLabel)
	}
	if err := c.LoadLabel(ctx, "music", "arena"); !errors.Is(err, resource.ErrUnknownLabel) {
		t.Errorf("LoadLabel(music) error = %v, want %v", err, resource.ErrUnknownLabel)
	}
	if err := c.LoadLabel(ctx, "broken", "other"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("LoadLabel(broken) error = %v, want %v", err, fs.ErrNotExist)
	}

	if err := c.ReleaseLabel("combat", "arena"); err != nil {
		t.Fatalf("ReleaseLabel() error = %v", err)
	}
	if got := c.Count("arena"); got != 0 {
		t.Errorf("Count(arena) after ReleaseLabel = %d, want 0", got)
	}
}

func TestPacks(t *testing.T) {
	t.Parallel()

	c, _ := newContainer(t)
	ctx := context.Background()

	pack := resource.Pack{
		Name: "ui",
		Entries: []resource.PackEntry{
			{Path: "sfx/hit.wav"},
			{Address: "click", Path: "sfx/jump.wav"},
		},
	}
	if err := c.RegisterPack(ctx, pack, resource.CommonGroup); err != nil {
		t.Fatalf("RegisterPack() error = %v", err)
	}

	for _, address := range []string{"hit", "click"} {
		k, ok := c.Kind(address, resource.CommonGroup)
		if !ok || k != resource.Preloaded {
			t.Errorf("Kind(%q) = %v, %v, want preloaded, true", address, k, ok)
		}
	}

	if err := c.Release("hit", resource.CommonGroup, false); !errors.Is(err, resource.ErrPreloaded) {
		t.Errorf("Release() error = %v, want %v", err, resource.ErrPreloaded)
	}
	c.ReleaseAll(false, false)
	if !c.Loaded("click", resource.CommonGroup) {
		t.Errorf("preloaded clip dropped by unforced ReleaseAll")
	}
	if err := c.Release("hit", resource.CommonGroup, true); err != nil {
		t.Errorf("forced Release() error = %v", err)
	}
	if err := c.Release("hit", resource.CommonGroup, true); !errors.Is(err, resource.ErrNotLoaded) {
		t.Errorf("second Release() error = %v, want %v", err, resource.ErrNotLoaded)
	}

	if err := c.RegisterPack(ctx, resource.Pack{Name: "empty"}, resource.CommonGroup); !errors.Is(err, resource.ErrEmptyPack) {
		t.Errorf("RegisterPack(empty) error = %v, want %v", err, resource.ErrEmptyPack)
	}
	bad := resource.Pack{Name: "bad", Entries: []resource.PackEntry{{Path: "sfx/none.wav"}}}
	if err := c.RegisterPack(ctx, bad, "x"); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("RegisterPack(bad) error = %v, want %v", err, fs.ErrNotExist)
	}
}

func TestReleaseGroups(t *testing.T) {
	t.Parallel()

	c, _ := newContainer(t)
	ctx := context.Background()

	for _, grp := range []string{resource.CommonGroup, "level1", "level2"} {
		if err := c.LoadAll(ctx, []string{"sfx/hit.wav", "bgm/theme.wav"}, grp); err != nil {
			t.Fatalf("LoadAll(%q) error = %v", grp, err)
		}
	}

	if got, want := c.Groups(), []string{"", "level1", "level2"}; !slices.Equal(got, want) {
		t.Errorf("Groups() = %q, want %q", got, want)
	}

	if err := c.ReleaseGroup("level1", false); err != nil {
		t.Fatalf("ReleaseGroup() error = %v", err)
	}
	if err := c.ReleaseGroup("level9", false); !errors.Is(err, resource.ErrUnknownGroup) {
		t.Errorf("ReleaseGroup(unknown) error = %v, want %v", err, resource.ErrUnknownGroup)
	}

	c.RemoveEmptyGroups()
	if got, want := c.Groups(), []string{"", "level2"}; !slices.Equal(got, want) {
		t.Errorf("Groups() = %q, want %q", got, want)
	}

	c.ReleaseAll(true, false)
	if got := c.Count(resource.CommonGroup); got != 2 {
		t.Errorf("Count(common) = %d, want 2 with ignoreCommon", got)
	}
	if got, want := c.Groups(), []string{""}; !slices.Equal(got, want) {
		t.Errorf("Groups() = %q, want %q", got, want)
	}

	c.ReleaseAll(false, false)
	if got := c.Count(resource.CommonGroup); got != 0 {
		t.Errorf("Count(common) = %d, want 0", got)
	}
}

func TestPackEntryKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		entry resource.PackEntry
		want  string
	}{
		{entry: resource.PackEntry{Path: "ui/click.wav"}, want: "click"},
		{entry: resource.PackEntry{Path: "ui/click.sfx.ogg"}, want: "click.sfx"},
		{entry: resource.PackEntry{Address: "btn", Path: "ui/click.wav"}, want: "btn"},
		{entry: resource.PackEntry{}, want: ""},
	}

	for _, tt := range tests {
		if got := tt.entry.Key(); got != tt.want {
			t.Errorf("%+v.Key() = %q, want %q", tt.entry, got, tt.want)
		}
	}

	if resource.Preloaded.String() != "preloaded" || resource.Kind(7).String() != "Kind(7)" {
		t.Errorf("Kind.String() = %q, %q", resource.Preloaded.String(), resource.Kind(7).String())
	}
}
