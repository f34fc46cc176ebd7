// Package config loads settings for the calculator service.
package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables that override configuration,
// e.g. CALCULATOR_SERVER_PORT.
const EnvPrefix = "CALCULATOR"

// Config represents the service configuration.
type Config struct {
	AppName string `mapstructure:"app_name" validate:"required"`
	RunMode string `mapstructure:"run_mode" validate:"oneof=debug release test"`
	Server  Server `mapstructure:"server"`
	Logger  Logger `mapstructure:"logger"`
}

// Server holds HTTP listener settings.
type Server struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port" validate:"gte=0,lte=65535"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
	// MaxBodyBytes limits the size of a request body.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"gt=0"`
}

// Logger holds logging settings.
type Logger struct {
	Level  string `mapstructure:"level" validate:"oneof=trace debug info warn warning error fatal panic"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
	Output string `mapstructure:"output" validate:"oneof=stdout stderr"`
}

// Addr returns the listen address.
func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

var validate = validator.New()

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "calculator")
	v.SetDefault("run_mode", "release")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 15*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.max_body_bytes", 1<<20)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "text")
	v.SetDefault("logger.output", "stderr")
}

// New returns a viper instance with defaults and environment overrides. If
// path is not empty, the file is read as well.
func New(path string) (*viper.Viper, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", path)
		}
	}
	return v, nil
}

// Load reads the configuration from the file at path, if any, and the
// environment.
func Load(path string) (*Config, error) {
	v, err := New(path)
	if err != nil {
		return nil, err
	}
	return FromViper(v)
}

// FromViper decodes and validates the configuration held by v.
func FromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}
	cfg.RunMode = strings.ToLower(cfg.RunMode)
	cfg.Logger.Level = strings.ToLower(cfg.Logger.Level)
	cfg.Logger.Format = strings.ToLower(cfg.Logger.Format)
	cfg.Logger.Output = strings.ToLower(cfg.Logger.Output)
	if err := validate.Struct(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}
