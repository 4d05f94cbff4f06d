// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package config loads the optional callbackdemo.yaml file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the file name looked up when no path is given.
const DefaultFile = "callbackdemo.yaml"

// ErrInvalid is wrapped by every validation error.
var ErrInvalid = errors.New("invalid config")

// Config represents the optional callbackdemo.yaml configuration.
type Config struct {
	Log      LogConfig       `yaml:"log"`
	Counters []CounterConfig `yaml:"counters"`
	Events   []int           `yaml:"events"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `yaml:"level,omitempty"`
}

// CounterConfig describes one producer object.
type CounterConfig struct {
	Name  string `yaml:"name"`
	Start int    `yaml:"start,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Level    logrus.Level
	Counters []CounterConfig
	Events   []int
}

// LoadOptional reads the file at path if present.
func LoadOptional(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a YAML document.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Resolve applies defaults and validates cfg.
func Resolve(cfg *Config) (*Resolved, error) {
	levelName := strings.TrimSpace(cfg.Log.Level)
	if levelName == "" {
		levelName = "info"
	}
	level, err := logrus.ParseLevel(levelName)
	if err != nil {
		return nil, fmt.Errorf("%w: log level %q", ErrInvalid, levelName)
	}

	counters := cfg.Counters
	if len(counters) == 0 {
		counters = []CounterConfig{{Name: "default"}}
	}
	seen := make(map[string]struct{}, len(counters))
	for i, c := range counters {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: counter %d has no name", ErrInvalid, i)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate counter %q", ErrInvalid, name)
		}
		seen[name] = struct{}{}
	}

	events := cfg.Events
	if len(events) == 0 {
		events = []int{1}
	}

	return &Resolved{
		Level:    level,
		Counters: counters,
		Events:   events,
	}, nil
}
