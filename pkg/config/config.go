// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v8"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// Defaults for the external tools
const (
	DefaultExercism = "exercism"
	DefaultEditor   = "code"
	DefaultMake     = "make"
	DefaultCargo    = "cargo"
	DefaultPython   = "python3"
)

// DefaultBrowser opens a URL with the platform browser through python.
var DefaultBrowser = []string{"python3", "-m", "webbrowser"}

// 📚 Config represents the complete configuration
type Config struct {
	Workspace string   `json:"workspace,omitempty" yaml:"workspace,omitempty" toml:"workspace,omitempty" env:"EXMAN_WORKSPACE"` // Overrides `exercism workspace`
	Exercism  string   `json:"exercism,omitempty" yaml:"exercism,omitempty" toml:"exercism,omitempty" env:"EXMAN_EXERCISM"`    // exercism CLI binary
	Editor    string   `json:"editor,omitempty" yaml:"editor,omitempty" toml:"editor,omitempty" env:"EXMAN_EDITOR"`          // Opens solution and test files
	Browser   []string `json:"browser,omitempty" yaml:"browser,omitempty" toml:"browser,omitempty" env:"EXMAN_BROWSER" envSeparator:" "`
	Make      string   `json:"make,omitempty" yaml:"make,omitempty" toml:"make,omitempty" env:"EXMAN_MAKE"`
	Cargo     string   `json:"cargo,omitempty" yaml:"cargo,omitempty" toml:"cargo,omitempty" env:"EXMAN_CARGO"`
	Python    string   `json:"python,omitempty" yaml:"python,omitempty" toml:"python,omitempty" env:"EXMAN_PYTHON"`
}

// 🎯 Load loads the configuration from a file, then applies the environment
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	return finish(cfg, nil)
}

// LoadOptional behaves like Load but falls back to defaults when path does not exist.
func LoadOptional(ctx context.Context, path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no config file, using defaults")
		return finish(&Config{}, nil)
	}
	return Load(ctx, path)
}

// FileNames are the config file names Discover looks for, in order.
var FileNames = []string{".exman.yaml", ".exman.yml", ".exman.hcl", ".exman.json", ".exman.toml"}

// 🔍 Discover loads the first config file found in dirs, trying FileNames
// in each. Without any file the defaults apply.
func Discover(ctx context.Context, dirs ...string) (*Config, error) {
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				zerolog.Ctx(ctx).Debug().Str("path", path).Msg("found config file")
				return Load(ctx, path)
			}
		}
	}
	zerolog.Ctx(ctx).Debug().Strs("dirs", dirs).Msg("no config file, using defaults")
	return finish(&Config{}, nil)
}

// finish applies environment overrides from environ (the process environment
// when nil) and validates.
func finish(cfg *Config, environ map[string]string) (*Config, error) {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, errors.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// 🔍 Validate checks the configuration and fills defaults
func (cfg *Config) Validate() error {
	for i, arg := range cfg.Browser {
		if strings.TrimSpace(arg) == "" {
			return errors.Errorf("browser[%d] is empty", i)
		}
	}

	if cfg.Workspace != "" {
		cfg.Workspace = filepath.Clean(cfg.Workspace)
	}

	if cfg.Exercism == "" {
		cfg.Exercism = DefaultExercism
	}
	if cfg.Editor == "" {
		cfg.Editor = DefaultEditor
	}
	if len(cfg.Browser) == 0 {
		cfg.Browser = append([]string(nil), DefaultBrowser...)
	}
	if cfg.Make == "" {
		cfg.Make = DefaultMake
	}
	if cfg.Cargo == "" {
		cfg.Cargo = DefaultCargo
	}
	if cfg.Python == "" {
		cfg.Python = DefaultPython
	}

	return nil
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	workspace := cfg.Workspace
	if workspace == "" {
		workspace = "<" + cfg.Exercism + " workspace>"
	}
	return fmt.Sprintf("%s (editor=%s browser=%s)", workspace, cfg.Editor, strings.Join(cfg.Browser, " "))
}
