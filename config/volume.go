// SPDX-License-Identifier: EPL-2.0

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// VolumeData is a snapshot of user facing volumes, usually persisted between
// sessions.
type VolumeData struct {
	Buses    []Volume `yaml:"buses"`
	Channels []Volume `yaml:"channels"`
}

type Volume struct {
	Name   string  `yaml:"name"`
	Volume float64 `yaml:"volume"`
}

// SaveVolumes writes v to path as YAML.
func SaveVolumes(path string, v VolumeData) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding volumes: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing volumes: %w", err)
	}
	return nil
}

// LoadVolumes reads a snapshot written by SaveVolumes.
func LoadVolumes(path string) (VolumeData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return VolumeData{}, fmt.Errorf("reading volumes: %w", err)
	}

	var v VolumeData
	if err := yaml.Unmarshal(data, &v); err != nil {
		return VolumeData{}, fmt.Errorf("parsing volumes: %w", err)
	}
	return v, nil
}
