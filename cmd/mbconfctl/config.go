package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// deviceProfile is one saved device entry in the profile config file
// (spec §6 supplement; mirrors elytra-cli's device-selection flags, but
// as a reusable saved list rather than per-invocation-only flags).
type deviceProfile struct {
	Name      string `yaml:"name"`
	Transport string `yaml:"transport"` // "tcp", "emulator", or "serial"
	Address   string `yaml:"address"`   // host:port, plugin path, or serial device path
}

// profileConfig is the root of the optional --config YAML file.
type profileConfig struct {
	Devices []deviceProfile `yaml:"devices"`
}

func loadProfileConfig(path string) (*profileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mbconfctl: read config: %w", err)
	}
	var cfg profileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("mbconfctl: parse config: %w", err)
	}
	return &cfg, nil
}

// lookupProfile finds a saved device entry by name.
func (c *profileConfig) lookupProfile(name string) (deviceProfile, bool) {
	for _, d := range c.Devices {
		if d.Name == name {
			return d, true
		}
	}
	return deviceProfile{}, false
}
