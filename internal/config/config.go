// Package config holds the configuration as read from a config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"

	"github.com/ja-he/edkeys/internal/input"
)

// Config is the configuration data as present in a config file at
// '${EDKEYS_HOME}/config.yaml' (or the XDG config directory if EDKEYS_HOME is
// not set).
type Config struct {
	Input    Input                    `yaml:"input"`
	Bindings map[input.Keyspec]string `yaml:"bindings"`
}

// Input is the input decoding configuration.
//
// Durations use the format of time.ParseDuration.
type Input struct {
	StrictChords     *bool  `yaml:"strict-chords,omitempty"`
	EscapeTimeout    string `yaml:"escape-timeout,omitempty"`
	Tick             string `yaml:"tick,omitempty"`
	RecoveryInterval string `yaml:"recovery-interval,omitempty"`
	Terminfo         *bool  `yaml:"terminfo,omitempty"`
	Term             string `yaml:"term,omitempty"`
}

// ResolvedInput is Input with all values parsed.
type ResolvedInput struct {
	StrictChords     bool
	EscapeTimeout    time.Duration
	Tick             time.Duration
	RecoveryInterval time.Duration
	Terminfo         bool
	Term             string
}

// Resolve parses the input configuration.
// Unset values must have been filled in from the defaults before.
func (c Input) Resolve() (ResolvedInput, error) {
	var err error
	r := ResolvedInput{
		StrictChords: c.StrictChords != nil && *c.StrictChords,
		Terminfo:     c.Terminfo != nil && *c.Terminfo,
		Term:         c.Term,
	}
	if r.Term == "" {
		r.Term = os.Getenv("TERM")
	}

	r.EscapeTimeout, err = parseDuration("escape-timeout", c.EscapeTimeout)
	if err != nil {
		return ResolvedInput{}, err
	}
	r.Tick, err = parseDuration("tick", c.Tick)
	if err != nil {
		return ResolvedInput{}, err
	}
	if r.Tick == 0 {
		return ResolvedInput{}, fmt.Errorf("tick must be positive")
	}
	r.RecoveryInterval, err = parseDuration("recovery-interval", c.RecoveryInterval)
	if err != nil {
		return ResolvedInput{}, err
	}
	return r, nil
}

func parseDuration(name, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s '%s' (%w)", name, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative (is '%s')", name, value)
	}
	return d, nil
}

// ParseConfigAugmentDefaults parses the configuration specified in
// YAML-formatted data and uses it to augment the default configuration.
func ParseConfigAugmentDefaults(yamlData []byte) (Config, error) {
	defaultConfig := Default()

	parsedConfig := Config{}
	err := yaml.Unmarshal(yamlData, &parsedConfig)
	if err != nil {
		return defaultConfig, fmt.Errorf("error unmarshaling yaml (%w)", err)
	}

	result := defaultConfig.augmentWith(parsedConfig)

	return result, nil
}

func (base Config) augmentWith(augment Config) Config {
	result := base

	result.Input = base.Input.augmentWith(augment.Input)

	// bindings are merged per keyspec, an empty command name unbinds
	result.Bindings = make(map[input.Keyspec]string, len(base.Bindings))
	for spec, name := range base.Bindings {
		result.Bindings[spec] = name
	}
	for spec, name := range augment.Bindings {
		if name == "" {
			delete(result.Bindings, spec)
		} else {
			result.Bindings[spec] = name
		}
	}

	return result
}

func (base Input) augmentWith(augment Input) Input {
	result := base

	if augment.StrictChords != nil {
		result.StrictChords = augment.StrictChords
	}
	if augment.EscapeTimeout != "" {
		result.EscapeTimeout = augment.EscapeTimeout
	}
	if augment.Tick != "" {
		result.Tick = augment.Tick
	}
	if augment.RecoveryInterval != "" {
		result.RecoveryInterval = augment.RecoveryInterval
	}
	if augment.Terminfo != nil {
		result.Terminfo = augment.Terminfo
	}
	if augment.Term != "" {
		result.Term = augment.Term
	}

	return result
}

// BaseDir returns the directory holding the config file.
func BaseDir() string {
	edkeysHome := os.Getenv("EDKEYS_HOME")
	if edkeysHome == "" {
		return filepath.Join(xdg.ConfigHome, "edkeys")
	}
	return strings.TrimRight(edkeysHome, "/")
}

// Load reads the config file in the given directory and augments the defaults
// with it. A missing file yields the defaults.
func Load(baseDir string) (Config, error) {
	yamlData, err := os.ReadFile(filepath.Join(baseDir, "config.yaml"))
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("can't read config file (%w)", err)
	}
	return ParseConfigAugmentDefaults(yamlData)
}
