package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/redactyl/litscan/internal/literal"
	"github.com/redactyl/litscan/internal/types"
)

var (
	// ErrInvalidLimit reports a literal limit that cannot be used.
	ErrInvalidLimit = errors.New("invalid literal limit")
	// ErrNotFound is returned when no config file exists at a layer.
	ErrNotFound = errors.New("config not found")
)

// FileConfig is the on-disk YAML configuration shape for litscan.
type FileConfig struct {
	Include         *string  `yaml:"include"`
	Exclude         *string  `yaml:"exclude"`
	MaxBytes        *int64   `yaml:"max_bytes"`
	Enable          *string  `yaml:"enable"`
	Disable         *string  `yaml:"disable"`
	Threads         *int     `yaml:"threads"`
	MinConfidence   *float64 `yaml:"min_confidence"`
	NoColor         *bool    `yaml:"no_color"`
	DefaultExcludes *bool    `yaml:"default_excludes"`
	RulesFile       *string  `yaml:"rules_file"`
	History         *int     `yaml:"history"`
	FailOn          *string  `yaml:"fail_on"`

	Literals *LiteralsConfig `yaml:"literals"`
}

// LiteralsConfig bounds literal extraction. Unset fields keep the defaults.
type LiteralsConfig struct {
	MaxLiteralLen *int `yaml:"max_literal_len"`
	MaxClassSize  *int `yaml:"max_class_size"`
	MaxDepth      *int `yaml:"max_depth"`
}

// LoadFile reads a YAML config file from the provided path and validates it.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .litscan.yml/.yaml and litscan.yml/.yaml.
func LoadLocal(repoRoot string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".litscan.yml", ".litscan.yaml", "litscan.yml", "litscan.yaml"} {
		p := filepath.Join(repoRoot, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, fmt.Errorf("no local config: %w", ErrNotFound)
}

// Dir returns litscan's directory under the XDG config home or ~/.config.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return "", fmt.Errorf("no config dir: %w", ErrNotFound)
	}
	return filepath.Join(base, "litscan"), nil
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	dir, err := Dir()
	if err != nil {
		return cfg, err
	}
	p := filepath.Join(dir, "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, fmt.Errorf("no global config: %w", ErrNotFound)
}

// Validate checks values that would otherwise fail deep inside a scan.
func (fc FileConfig) Validate() error {
	if fc.FailOn != nil {
		if _, ok := types.ParseSeverity(*fc.FailOn); !ok {
			return fmt.Errorf("fail_on: unknown severity %q", *fc.FailOn)
		}
	}
	if fc.MinConfidence != nil && (*fc.MinConfidence < 0 || *fc.MinConfidence > 1) {
		return fmt.Errorf("min_confidence: %v outside [0,1]", *fc.MinConfidence)
	}
	if l := fc.Literals; l != nil {
		// A zero literal length is allowed and disables literal extraction.
		if v := l.MaxLiteralLen; v != nil && *v < 0 {
			return fmt.Errorf("literals.max_literal_len: %w: %d", ErrInvalidLimit, *v)
		}
		if v := l.MaxClassSize; v != nil && *v <= 0 {
			return fmt.Errorf("literals.max_class_size: %w: %d", ErrInvalidLimit, *v)
		}
		if v := l.MaxDepth; v != nil && *v <= 0 {
			return fmt.Errorf("literals.max_depth: %w: %d", ErrInvalidLimit, *v)
		}
	}
	return nil
}

// Builder returns a literal builder with the configured limits applied,
// or nil when no limit is set.
func (fc FileConfig) Builder() *literal.Builder {
	l := fc.Literals
	if l == nil || (l.MaxLiteralLen == nil && l.MaxClassSize == nil && l.MaxDepth == nil) {
		return nil
	}
	b := literal.NewBuilder()
	if l.MaxLiteralLen != nil {
		b.LimitLen(*l.MaxLiteralLen)
	}
	if l.MaxClassSize != nil {
		b.LimitClass(*l.MaxClassSize)
	}
	if l.MaxDepth != nil {
		b.LimitDepth(*l.MaxDepth)
	}
	return b
}
