// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ik5/audpool/bus"
	"github.com/ik5/audpool/channel"
	"github.com/ik5/audpool/output"
	"github.com/ik5/audpool/resource"
	"gopkg.in/yaml.v3"
)

// Environment variables the CLI consults.
const (
	EnvConfig   = "AUDPOOL_CONFIG"
	EnvLogLevel = "AUDPOOL_LOG_LEVEL"
)

// Defaults for fields left out of the file.
const (
	DefaultVolume         = 50.0
	DefaultMaxVoices      = 1
	DefaultAttackMS       = 100
	DefaultReleaseMS      = 100
	DefaultCrossfadeMS    = 300
	DefaultAllowDuplicate = true
	DefaultMaxDB          = 0.0
	DefaultMasterVolume   = 50.0
	DefaultSampleRate     = 48000
	DefaultChannels       = 2
	DefaultTickMS         = 10
	DefaultLoadWorkers    = 4
)

type Config struct {
	Output   Output              `yaml:"output"`
	Master   Master              `yaml:"master"`
	Buses    []Bus               `yaml:"buses,omitempty"`
	Channels []Channel           `yaml:"channels"`
	Packs    []Pack              `yaml:"packs,omitempty"`
	Labels   map[string][]string `yaml:"labels,omitempty"`
}

type Output struct {
	SampleRate int `yaml:"sample_rate"`
	Channels   int `yaml:"channels"`
	TickMS     int `yaml:"tick_ms"`
	Workers    int `yaml:"load_workers"`
}

func (o Output) Tick() time.Duration { return time.Duration(o.TickMS) * time.Millisecond }

type Master struct {
	Parameter string  `yaml:"parameter"`
	MaxDB     float64 `yaml:"max_db"`
	Volume    float64 `yaml:"volume"`
}

// Bus is a mixer group under master.
type Bus struct {
	Name      string  `yaml:"name"`
	Parameter string  `yaml:"parameter"`
	MaxDB     float64 `yaml:"max_db"`
	Volume    float64 `yaml:"volume"`
}

type Crossfade struct {
	Enabled   bool `yaml:"enabled"`
	AttackMS  int  `yaml:"attack_ms"`
	ReleaseMS int  `yaml:"release_ms"`
}

type Channel struct {
	Name               string    `yaml:"name"`
	Bus                string    `yaml:"bus,omitempty"`
	Mode               string    `yaml:"mode"`
	Volume             float64   `yaml:"volume"`
	MaxVoices          int       `yaml:"max_voices"`
	AttackMS           int       `yaml:"attack_ms"`
	ReleaseMS          int       `yaml:"release_ms"`
	Crossfade          Crossfade `yaml:"crossfade"`
	AllowDuplicatePlay bool      `yaml:"allow_duplicate_play"`
}

type Pack struct {
	Name    string      `yaml:"name"`
	Group   string      `yaml:"group,omitempty"`
	Entries []PackEntry `yaml:"entries"`
}

type PackEntry struct {
	Address string `yaml:"address,omitempty"`
	Path    string `yaml:"path"`
}

// Defaults is an empty configuration with every default filled in.
func Defaults() Config {
	return Config{
		Output: Output{
			SampleRate: DefaultSampleRate,
			Channels:   DefaultChannels,
			TickMS:     DefaultTickMS,
			Workers:    DefaultLoadWorkers,
		},
		Master: Master{
			MaxDB:  DefaultMaxDB,
			Volume: DefaultMasterVolume,
		},
	}
}

// DefaultChannel is a channel with every default filled in.
func DefaultChannel(name string) Channel {
	return Channel{
		Name:      name,
		Mode:      output.OneShot.String(),
		Volume:    DefaultVolume,
		MaxVoices: DefaultMaxVoices,
		AttackMS:  DefaultAttackMS,
		ReleaseMS: DefaultReleaseMS,
		Crossfade: Crossfade{
			AttackMS:  DefaultCrossfadeMS,
			ReleaseMS: DefaultCrossfadeMS,
		},
		AllowDuplicatePlay: DefaultAllowDuplicate,
	}
}

func (c *Channel) UnmarshalYAML(n *yaml.Node) error {
	type plain Channel
	p := plain(DefaultChannel(""))
	if err := n.Decode(&p); err != nil {
		return err
	}
	*c = Channel(p)
	return nil
}

func (b *Bus) UnmarshalYAML(n *yaml.Node) error {
	type plain Bus
	p := plain(Bus{MaxDB: DefaultMaxDB, Volume: DefaultVolume})
	if err := n.Decode(&p); err != nil {
		return err
	}
	*b = Bus(p)
	return nil
}

// Scheduler converts the channel settings for channel.New.
func (c Channel) Scheduler() (channel.Config, error) {
	mode, err := output.ParseLoopMode(c.Mode)
	if err != nil {
		return channel.Config{}, fmt.Errorf("channel %q: %w", c.Name, err)
	}

	return channel.Config{
		Name:    c.Name,
		Voices:  c.MaxVoices,
		Mode:    mode,
		Volume:  c.Volume,
		Attack:  ms(c.AttackMS),
		Release: ms(c.ReleaseMS),
		Crossfade: channel.Crossfade{
			Enabled: c.Crossfade.Enabled,
			Attack:  ms(c.Crossfade.AttackMS),
			Release: ms(c.Crossfade.ReleaseMS),
		},
		AllowDuplicatePlay: c.AllowDuplicatePlay,
	}, nil
}

// Resource converts the pack for resource.Container.RegisterPack.
func (p Pack) Resource() resource.Pack {
	out := resource.Pack{Name: p.Name, Entries: make([]resource.PackEntry, 0, len(p.Entries))}
	for _, e := range p.Entries {
		out.Entries = append(out.Entries, resource.PackEntry{Address: e.Address, Path: e.Path})
	}
	return out
}

func ms(n int) time.Duration {
	return time.Duration(max(n, 0)) * time.Millisecond
}

// Parse decodes YAML on top of Defaults and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// PathFromEnv returns $AUDPOOL_CONFIG, or def when it is unset.
func PathFromEnv(def string) string {
	if v := os.Getenv(EnvConfig); v != "" {
		return v
	}
	return def
}

// Validate reports the first structural problem in cfg.
func (cfg Config) Validate() error {
	if cfg.Output.SampleRate <= 0 || cfg.Output.Channels <= 0 {
		return fmt.Errorf("%w: %d Hz, %d channels", ErrInvalidOutput, cfg.Output.SampleRate, cfg.Output.Channels)
	}
	if cfg.Output.TickMS <= 0 {
		return fmt.Errorf("%w: %d ms", ErrInvalidTick, cfg.Output.TickMS)
	}

	buses := map[string]bool{bus.MasterName: true}
	for _, b := range cfg.Buses {
		if b.Name == "" {
			return ErrEmptyBusName
		}
		if buses[b.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateBus, b.Name)
		}
		buses[b.Name] = true
	}

	seen := map[string]bool{}
	for _, c := range cfg.Channels {
		if c.Name == "" {
			return ErrEmptyChannelName
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateChannel, c.Name)
		}
		seen[c.Name] = true

		if c.Bus != "" && !buses[c.Bus] {
			return fmt.Errorf("%w: channel %q, bus %q", ErrUnknownBus, c.Name, c.Bus)
		}
		if _, err := output.ParseLoopMode(c.Mode); err != nil {
			return fmt.Errorf("channel %q: %w", c.Name, err)
		}
	}

	for _, p := range cfg.Packs {
		if p.Name == "" {
			return ErrEmptyPackName
		}
	}

	return nil
}

// Marshal renders cfg as YAML.
func (cfg Config) Marshal() ([]byte, error) {
	return yaml.Marshal(cfg)
}
