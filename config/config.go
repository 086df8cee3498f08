// Package config loads the YAML configuration of the edgehdc command.
package config

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/Amansingh-afk/edgehdc"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds the command settings.
type Config struct {
	Channels       []uint8 `yaml:"channels"`        // analog channels in record order
	Seed           uint64  `yaml:"seed"`            // role vector seed
	Averaging      int     `yaml:"averaging"`       // reads averaged per channel
	SentinelPolicy string  `yaml:"sentinel_policy"` // "reject" or "saturate"
	LogLevel       string  `yaml:"log_level"`       // logrus level name
	LogFormat      string  `yaml:"log_format"`      // "text" or "json"
	Database       string  `yaml:"database"`        // SQLite DSN; empty disables the vector log
	MetricsAddr    string  `yaml:"metrics_addr"`    // listen address for /metrics; empty disables
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Channels:       []uint8{0},
		Averaging:      4,
		SentinelPolicy: "reject",
		LogLevel:       "info",
		LogFormat:      "text",
	}
}

// Load reads path over Default and validates the result.
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "config: read")
	}
	return Parse(data)
}

// Parse decodes YAML over Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrap(err, "config: decode")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if len(c.Channels) == 0 {
		return errors.Wrap(ErrInvalid, "channels must not be empty")
	}
	seen := make(map[uint8]bool, len(c.Channels))
	for _, ch := range c.Channels {
		if seen[ch] {
			return errors.Wrapf(ErrInvalid, "channel %d listed twice", ch)
		}
		seen[ch] = true
	}
	if c.Averaging < 1 {
		return errors.Wrapf(ErrInvalid, "averaging %d must be >= 1", c.Averaging)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return errors.Wrapf(ErrInvalid, "log_format %q", c.LogFormat)
	}
	return nil
}

// Policy maps SentinelPolicy to its edgehdc value.
func (c Config) Policy() (edgehdc.SentinelPolicy, error) {
	switch c.SentinelPolicy {
	case "reject", "":
		return edgehdc.Reject, nil
	case "saturate":
		return edgehdc.Saturate, nil
	}
	return 0, errors.Wrapf(ErrInvalid, "sentinel_policy %q", c.SentinelPolicy)
}

// Level parses LogLevel.
func (c Config) Level() (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalid, "log_level %q", c.LogLevel)
	}
	return lvl, nil
}

// Logger builds a logrus logger from LogLevel and LogFormat.
func (c Config) Logger() (*logrus.Logger, error) {
	lvl, err := c.Level()
	if err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetLevel(lvl)
	if c.LogFormat == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l, nil
}

// Options converts the encoder settings to edgehdc options.
func (c Config) Options() ([]edgehdc.Option, error) {
	policy, err := c.Policy()
	if err != nil {
		return nil, err
	}
	return []edgehdc.Option{
		edgehdc.WithChannels(c.Channels...),
		edgehdc.WithSeed(c.Seed),
		edgehdc.WithAveraging(c.Averaging),
		edgehdc.WithSentinelPolicy(policy),
	}, nil
}
