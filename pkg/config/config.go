package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds the process settings of the relay server
type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	GinMode     string   `env:"GIN_MODE" envDefault:"debug"`
	LogLevel    string   `env:"LOG_LEVEL" envDefault:"info"`
	EnvFiles    []string `env:"ENV_FILES" envDefault:".env,env" envSeparator:","`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"*" envSeparator:","`
	// PhoneRule is either a phone or a JSON object keyed by utm_medium with a "default" key
	PhoneRule string `env:"PHONE_RULE"`
}

// LoadConfig reads settings from the process environment
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return &cfg, nil
}

// LoadConfigFrom reads settings from the given environment instead of the process one
func LoadConfigFrom(environ map[string]string) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return &cfg, nil
}
