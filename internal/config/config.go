// Package config loads session configuration from YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/thelolagemann/gbmirror/internal/gameboy"
	"github.com/thelolagemann/gbmirror/internal/serial"
	"github.com/thelolagemann/gbmirror/internal/types"
	"github.com/thelolagemann/gbmirror/pkg/log"
	"gopkg.in/yaml.v3"
)

// Config describes one session.
type Config struct {
	ROM          string `yaml:"rom"`
	Mode         string `yaml:"mode"`
	SkipChecksum bool   `yaml:"skip_checksum"`
	State        string `yaml:"state"`
	Battery      string `yaml:"battery"`
	Audio        bool   `yaml:"audio"`
	// Serial prints bytes sent over the link to stdout.
	Serial       bool   `yaml:"serial"`
	HiddenFields bool   `yaml:"hidden_fields"`
	Listen       string `yaml:"listen"`
	LogLevel     string `yaml:"log_level"`
}

// Load reads the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML document, rejecting unknown fields.
func Parse(data []byte) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the fields that Options and Logger convert.
func (c *Config) Validate() error {
	if _, err := types.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.LogLevel != "" {
		if _, err := log.ParseLevel(c.LogLevel); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}
	return nil
}

// Options converts the config into options for a session.
func (c *Config) Options() []gameboy.Opt {
	mode, _ := types.ParseMode(c.Mode)
	opts := []gameboy.Opt{gameboy.AsMode(mode)}
	if c.SkipChecksum {
		opts = append(opts, gameboy.SkipChecksum())
	}
	if c.State != "" {
		opts = append(opts, gameboy.WithStatePath(c.State))
	}
	if c.Battery != "" {
		opts = append(opts, gameboy.WithBatteryPath(c.Battery))
	}
	if c.Audio {
		opts = append(opts, gameboy.WithAudio())
	}
	if c.Serial {
		opts = append(opts, gameboy.WithSerialCallback(serial.Printer(os.Stdout)))
	}
	return opts
}

// Logger returns a logger at the configured level.
func (c *Config) Logger() log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return log.New()
	}
	return log.NewWithOutput(os.Stderr, level)
}
