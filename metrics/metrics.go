// SPDX-License-Identifier: EPL-2.0

// Package metrics exports scheduler events as Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/ik5/audpool/channel"
	"github.com/ik5/audpool/envelope"
	"github.com/prometheus/client_golang/prometheus"
)

// Collector counts scheduler events per channel. It implements
// channel.Observer.
type Collector struct {
	plays     *prometheus.CounterVec
	rejects   *prometheus.CounterVec
	evictions *prometheus.CounterVec
	fades     *prometheus.CounterVec
	active    *prometheus.GaugeVec
}

var _ channel.Observer = (*Collector)(nil)

func New(namespace string) *Collector {
	return &Collector{
		plays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plays_total",
			Help:      "Playbacks started.",
		}, []string{"channel"}),
		rejects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "play_rejections_total",
			Help:      "Play requests refused.",
		}, []string{"channel", "reason"}),
		evictions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evictions_total",
			Help:      "Sounding playbacks cut off to free a voice.",
		}, []string{"channel"}),
		fades: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fades_total",
			Help:      "Fades started.",
		}, []string{"channel", "state"}),
		active: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_playbacks",
			Help:      "Active playback slots after the last tick.",
		}, []string{"channel"}),
	}
}

// Register adds every metric to r.
func (c *Collector) Register(r prometheus.Registerer) error {
	var errs []error
	for _, m := range []prometheus.Collector{c.plays, c.rejects, c.evictions, c.fades, c.active} {
		errs = append(errs, r.Register(m))
	}
	return errors.Join(errs...)
}

func (c *Collector) Played(ch string) {
	c.plays.WithLabelValues(ch).Inc()
}

func (c *Collector) Rejected(ch string, reason error) {
	c.rejects.WithLabelValues(ch, reasonLabel(reason)).Inc()
}

func (c *Collector) Evicted(ch string) {
	c.evictions.WithLabelValues(ch).Inc()
}

func (c *Collector) FadeStarted(ch string, s envelope.State) {
	c.fades.WithLabelValues(ch, s.String()).Inc()
}

func (c *Collector) ActiveVoices(ch string, n int) {
	c.active.WithLabelValues(ch).Set(float64(n))
}

func reasonLabel(err error) string {
	switch {
	case errors.Is(err, channel.ErrDuplicatePlay):
		return "duplicate"
	case errors.Is(err, channel.ErrNilClip):
		return "nil_clip"
	case errors.Is(err, channel.ErrClosed):
		return "closed"
	default:
		return "other"
	}
}
