// Package config loads the execution settings: which engine to bind, its
// version and devices, and the call defaults.
package config

import (
	"io"
	"log/slog"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/umer200/ivy/internal/backend"
	"github.com/umer200/ivy/internal/dispatch"
	"github.com/umer200/ivy/internal/ops"
	"github.com/umer200/ivy/internal/tensor"
)

// Config keys. Every key can also be set through IVY_<KEY>.
const (
	KeyBackend        = "backend"
	KeyBackendVersion = "backend_version"
	KeyDevices        = "devices"
	KeyDefaultDevice  = "default_device"
	KeyDefaultFloat   = "default_float"
	KeyLogLevel       = "log_level"

	envPrefix = "IVY"
)

// Config holds the loaded settings.
type Config struct {
	Backend        string   `mapstructure:"backend"`
	BackendVersion string   `mapstructure:"backend_version"`
	Devices        []string `mapstructure:"devices"`
	DefaultDevice  string   `mapstructure:"default_device"`
	DefaultFloat   string   `mapstructure:"default_float"`
	LogLevel       string   `mapstructure:"log_level"`
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyBackend, "cpu")
	v.SetDefault(KeyBackendVersion, "")
	v.SetDefault(KeyDevices, []string{})
	v.SetDefault(KeyDefaultDevice, "")
	v.SetDefault(KeyDefaultFloat, "float32")
	v.SetDefault(KeyLogLevel, "warn")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads path (YAML, TOML or JSON by extension) over the defaults.
// An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := New()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config %s", path)
		}
	}
	return FromViper(v)
}

// FromViper decodes and validates the settings held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	if c.Backend == "" {
		return nil, errors.New("config: backend must be set")
	}
	if _, err := tensor.ParseDType(c.DefaultFloat); err != nil {
		return nil, errors.Wrap(err, "config: default_float")
	}
	if _, err := c.Level(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, errors.Wrapf(err, "config: log_level %q", c.LogLevel)
	}
	return level, nil
}

// Logger returns a text logger writing to w at the configured level.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.Level()
	if err != nil {
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Open binds the configured engine to the default capability registry.
func (c *Config) Open(logger *slog.Logger) (*dispatch.Context, error) {
	b, err := backend.Open(backend.Spec{Name: c.Backend, Version: c.BackendVersion, Devices: c.Devices})
	if err != nil {
		return nil, err
	}
	float, err := tensor.ParseDType(c.DefaultFloat)
	if err != nil {
		return nil, errors.Wrap(err, "config: default_float")
	}
	return ops.NewContext(b,
		dispatch.WithDefaultDevice(tensor.Device(c.DefaultDevice)),
		dispatch.WithDefaultFloat(float),
		dispatch.WithLogger(logger),
	)
}
