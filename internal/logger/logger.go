package logger

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type LoggerConfig struct {
	Level          string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format         string `mapstructure:"format" validate:"oneof=json console"`
	TimeField      string `mapstructure:"timeField"`
	ServiceName    string `mapstructure:"serviceName"`
	ServiceVersion string `mapstructure:"serviceVersion"`
	Env            string `mapstructure:"env" validate:"oneof=dev staging prod"`
	WithCaller     bool   `mapstructure:"withCaller"`
}

func New(cfg *LoggerConfig) (logger zerolog.Logger, err error) {
	cfg.setDefaults()

	v := validator.New()
	if err = v.Struct(cfg); err != nil {
		return logger, fmt.Errorf("logger config validation error: %w", err)
	}

	zerolog.TimestampFieldName = cfg.TimeField
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnixMs

	switch cfg.Format {
	case "console":
		// development: human-readable console output
		writer := zerolog.ConsoleWriter{Out: os.Stderr}
		logger = zerolog.New(writer).
			With().
			Timestamp().
			Str("service", cfg.ServiceName).
			Str("version", cfg.ServiceVersion).
			Str("env", cfg.Env).
			Logger()
	default:
		// production-like environments: JSON logs on stdout
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Str("service", cfg.ServiceName).
			Str("version", cfg.ServiceVersion).
			Str("env", cfg.Env).
			Logger()
	}

	if cfg.WithCaller {
		logger = logger.With().Caller().Logger()
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return logger, err
	}
	zerolog.SetGlobalLevel(level)

	return logger, nil
}

func (c *LoggerConfig) setDefaults() {
	if c.Env == "" {
		c.Env = "prod"
	}
	if c.Level == "" {
		if c.Env == "dev" {
			c.Level = "debug"
		} else {
			c.Level = "info"
		}
	}
	if c.Format == "" {
		if c.Env == "dev" {
			c.Format = "console"
		} else {
			c.Format = "json"
		}
	}
	if c.TimeField == "" {
		c.TimeField = "ts"
	}
	if !c.WithCaller && c.Env == "dev" {
		c.WithCaller = true
	}
	if c.ServiceName == "" {
		c.ServiceName = "checkpoint-web"
	}
	if c.ServiceVersion == "" {
		c.ServiceVersion = "0.1.0"
	}
}
