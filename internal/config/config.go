package config

import (
	"github.com/gauthier-se/Checkpoint/internal/logger"
)

type Config struct {
	App      AppConfig           `mapstructure:"app"`
	Upstream UpstreamConfig      `mapstructure:"upstream"`
	Web      WebConfig           `mapstructure:"web"`
	Logger   logger.LoggerConfig `mapstructure:"logger"`
}

// AppConfig covers the HTTP listener itself.
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port int    `mapstructure:"port"`
}

// UpstreamConfig points at the remote Checkpoint API.
type UpstreamConfig struct {
	BaseURL string `mapstructure:"baseUrl" validate:"required,url"`
}

// WebConfig locates the template and asset trees on disk.
type WebConfig struct {
	TemplatesGlob string `mapstructure:"templatesGlob"`
	StaticDir     string `mapstructure:"staticDir"`
}
