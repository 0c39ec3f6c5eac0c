// Package config loads puzzle definitions and runtime settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/strata/pkg/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// Piece is one configured piece.
type Piece struct {
	ID    string `mapstructure:"id" validate:"required"`
	Label string `mapstructure:"label"`
	Asset string `mapstructure:"asset"`
}

// Sizing controls slot height measurement.
type Sizing struct {
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
	Padding int           `mapstructure:"padding" validate:"gte=0"`
}

// Server holds the HTTP host settings.
type Server struct {
	Addr string `mapstructure:"addr" validate:"omitempty,hostname_port"`
}

// Log holds logger settings.
type Log struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
}

// Config is a complete puzzle definition plus the settings of the hosts that run it.
type Config struct {
	Name         string        `mapstructure:"name"`
	Pieces       []Piece       `mapstructure:"pieces" validate:"required,min=1,dive"`
	Slots        []string      `mapstructure:"slots"`
	Solution     []string      `mapstructure:"solution" validate:"required,min=1,dive,required"`
	Dwell        time.Duration `mapstructure:"dwell" validate:"gte=0"`
	HistoryLimit int           `mapstructure:"history_limit" validate:"gte=0"`
	Sizing       Sizing        `mapstructure:"sizing"`
	AssetsDir    string        `mapstructure:"assets_dir"`
	Server       Server        `mapstructure:"server"`
	Log          Log           `mapstructure:"log"`
}

var validate = validator.New()

// DefaultName is the catalogue name of the embedded puzzle.
const DefaultName = "fossils"

// DefaultYAML returns a copy of the embedded puzzle definition.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultYAML...)
}

// Default returns the embedded fossil puzzle.
func Default() (*Config, error) {
	return Parse(defaultYAML)
}

// Load reads and parses a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML into a Config, fills defaults and validates it.
func Parse(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	if raw == nil {
		return nil, errors.New("config is empty")
	}

	var cfg Config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Dwell == 0 {
		c.Dwell = 600 * time.Millisecond
	}
	if c.Sizing.Timeout == 0 {
		c.Sizing.Timeout = 300 * time.Millisecond
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks field constraints and that the pieces, slots and solution form a
// usable registry.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// SlotNames returns the configured slot names. Without explicit names the slot count
// follows the solution length and every name falls back to "layer {index}".
func (c *Config) SlotNames() []string {
	if len(c.Slots) > 0 {
		return append([]string(nil), c.Slots...)
	}
	return make([]string, len(c.Solution))
}

// Registry builds the domain catalogue described by the config.
func (c *Config) Registry() (*domain.Registry, error) {
	pieces := make([]domain.Piece, len(c.Pieces))
	for i, p := range c.Pieces {
		pieces[i] = domain.Piece{ID: domain.PieceID(p.ID), Label: p.Label, Asset: p.Asset}
	}
	solution := make([]domain.PieceID, len(c.Solution))
	for i, id := range c.Solution {
		solution[i] = domain.PieceID(id)
	}
	return domain.NewRegistry(pieces, c.SlotNames(), solution)
}
