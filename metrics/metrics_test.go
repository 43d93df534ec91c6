// SPDX-License-Identifier: EPL-2.0

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/ik5/audpool/audio"
	"github.com/ik5/audpool/channel"
	"github.com/ik5/audpool/envelope"
	"github.com/ik5/audpool/internal/audiotest"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T, r *prometheus.Registry) map[string]*dto.MetricFamily {
	t.Helper()

	families, err := r.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	out := make(map[string]*dto.MetricFamily, len(families))
	for _, f := range families {
		out[f.GetName()] = f
	}
	return out
}

// value returns the sample of family whose labels include want.
func value(f *dto.MetricFamily, want map[string]string) float64 {
	if f == nil {
		return 0
	}

	for _, m := range f.GetMetric() {
		matched := 0
		for _, lp := range m.GetLabel() {
			if v, ok := want[lp.GetName()]; ok && v == lp.GetValue() {
				matched++
			}
		}
		if matched != len(want) {
			continue
		}
		if c := m.GetCounter(); c != nil {
			return c.GetValue()
		}
		return m.GetGauge().GetValue()
	}
	return 0
}

func TestCollector(t *testing.T) {
	t.Parallel()

	c := New("audpool")
	reg := prometheus.NewRegistry()
	if err := c.Register(reg); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	c.Played("sfx")
	c.Played("sfx")
	c.Rejected("sfx", channel.ErrDuplicatePlay)
	c.Rejected("bgm", errors.New("decoder exploded"))
	c.Evicted("sfx")
	c.FadeStarted("bgm", envelope.Release)
	c.ActiveVoices("sfx", 3)

	fams := gather(t, reg)

	tests := []struct {
		family string
		labels map[string]string
		want   float64
	}{
		{family: "audpool_plays_total", labels: map[string]string{"channel": "sfx"}, want: 2},
		{family: "audpool_play_rejections_total", labels: map[string]string{"channel": "sfx", "reason": "duplicate"}, want: 1},
		{family: "audpool_play_rejections_total", labels: map[string]string{"channel": "bgm", "reason": "other"}, want: 1},
		{family: "audpool_evictions_total", labels: map[string]string{"channel": "sfx"}, want: 1},
		{family: "audpool_fades_total", labels: map[string]string{"channel": "bgm", "state": "release"}, want: 1},
		{family: "audpool_active_playbacks", labels: map[string]string{"channel": "sfx"}, want: 3},
	}

	for _, tt := range tests {
		if got := value(fams[tt.family], tt.labels); got != tt.want {
			t.Errorf("%s%v = %v, want %v", tt.family, tt.labels, got, tt.want)
		}
	}

	if err := c.Register(reg); err == nil {
		t.Errorf("second Register() error = nil, want already registered")
	}
}

func TestCollectorAsObserver(t *testing.T) {
	t.Parallel()

	c := New("test")
	reg := prometheus.NewRegistry()
	if err := c.Register(reg); err != nil {
		t.Fatal(err)
	}

	s, err := channel.New(channel.Config{Name: "sfx", Voices: 1, Volume: 100, Attack: 10 * time.Millisecond, AllowDuplicatePlay: true},
		audiotest.NewFakeDevice(48000, 1), channel.WithObserver(c))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	clip, _ := audio.NewClip("a", 48000, 1, make([]float32, 48))
	for range 3 {
		if _, err := s.Play(clip, "a"); err != nil {
			t.Fatalf("Play() error = %v", err)
		}
	}
	s.Tick(10 * time.Millisecond)

	fams := gather(t, reg)
	if got := value(fams["test_plays_total"], map[string]string{"channel": "sfx"}); got != 3 {
		t.Errorf("plays = %v, want 3", got)
	}
	if got := value(fams["test_evictions_total"], map[string]string{"channel": "sfx"}); got != 2 {
		t.Errorf("evictions = %v, want 2", got)
	}
	if got := value(fams["test_fades_total"], map[string]string{"channel": "sfx", "state": "attack"}); got != 3 {
		t.Errorf("attack fades = %v, want 3", got)
	}
	if got := value(fams["test_active_playbacks"], map[string]string{"channel": "sfx"}); got != 1 {
		t.Errorf("active = %v, want 1", got)
	}
}
