// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/ik5/audpool/audio"
	"github.com/ik5/audpool/internal/audiotest"
)

type stubDecoder struct {
	src audio.Source
	err error
}

func (d stubDecoder) Decode(io.Reader) (audio.Source, error) { return d.src, d.err }

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	reg := audio.NewRegistry()
	dec := stubDecoder{}
	reg.Register(dec, ".WAV", "wave")

	for _, ext := range []string{"wav", ".wav", "WAVE"} {
		if _, ok := reg.Get(ext); !ok {
			t.Errorf("Get(%q) = false, want true", ext)
		}
	}

	if _, ok := reg.Get("mp3"); ok {
		t.Error("Get(mp3) = true for unregistered format")
	}
}

func TestRegistry_Decode(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	reg := audio.NewRegistry()
	reg.Register(stubDecoder{src: audiotest.NewConstantSource(8000, 1, 4, 0.5)}, "wav")
	reg.Register(stubDecoder{err: boom}, "mp3")

	tests := []struct {
		name    string
		file    string
		wantErr error
	}{
		{name: "by extension", file: "sfx/jump.wav"},
		{name: "decoder failure", file: "bgm/title.mp3", wantErr: boom},
		{name: "unknown extension", file: "voice.xyz", wantErr: audio.ErrUnknownFormat},
		{name: "no extension", file: "voice", wantErr: audio.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := reg.Decode(tt.file, strings.NewReader(""))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil || src == nil {
				t.Errorf("Decode() = %v, %v", src, err)
			}
		})
	}
}

func TestReadClip(t *testing.T) {
	t.Parallel()

	src := audiotest.NewRampSource(1000, 2, 10000).WithChunkLimit(333)
	clip, err := audio.ReadClip("ramp", src)
	if err != nil {
		t.Fatalf("ReadClip() error = %v", err)
	}

	if clip.Name() != "ramp" || clip.SampleRate() != 1000 || clip.Channels() != 2 {
		t.Fatalf("clip = %s %d Hz/%d ch", clip.Name(), clip.SampleRate(), clip.Channels())
	}
	if clip.Frames() != 10000 {
		t.Fatalf("Frames() = %d, want 10000", clip.Frames())
	}
	if got := clip.Duration().Seconds(); got != 10 {
		t.Errorf("Duration() = %vs, want 10s", got)
	}

	samples := clip.Samples()
	if samples[2*4321] != 4321 || samples[2*4321+1] != 5321 {
		t.Errorf("frame 4321 = %v,%v, want 4321,5321", samples[2*4321], samples[2*4321+1])
	}
}

type failingSource struct{ *audiotest.MockSource }

func (failingSource) ReadSamples([]float32) (int, error) { return 0, io.ErrUnexpectedEOF }

type stalledSource struct{ *audiotest.MockSource }

func (stalledSource) ReadSamples([]float32) (int, error) { return 0, nil }

func TestReadClip_Errors(t *testing.T) {
	t.Parallel()

	base := audiotest.NewConstantSource(8000, 1, 1, 0)

	tests := []struct {
		name string
		src  audio.Source
		want error
	}{
		{name: "read failure", src: failingSource{base}, want: io.ErrUnexpectedEOF},
		{name: "no progress", src: stalledSource{base}, want: audio.ErrStalledSource},
		{name: "bad format", src: audiotest.NewConstantSource(0, 1, 1, 0), want: audio.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := audio.ReadClip(tt.name, tt.src); !errors.Is(err, tt.want) {
				t.Errorf("ReadClip() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewClip_Invalid(t *testing.T) {
	t.Parallel()

	if _, err := audio.NewClip("x", 44100, 2, make([]float32, 3)); !errors.Is(err, audio.ErrInvalidFormat) {
		t.Errorf("NewClip() with partial frame error = %v, want %v", err, audio.ErrInvalidFormat)
	}
}
