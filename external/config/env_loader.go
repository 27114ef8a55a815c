package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/Priyanshu9798/lecture-zen-38/internal/config"
)

type envConfig struct {
	Env                  string   `env:"ENV" envDefault:"production"`
	HTTPListenAddr       string   `env:"HTTP_LISTEN_ADDR" envDefault:":8080"`
	DatabaseURL          string   `env:"DATABASE_URL,required"`
	OpenAIAPIKey         string   `env:"OPENAI_API_KEY,required"`
	OpenAIModel          string   `env:"OPENAI_MODEL" envDefault:"gpt-4.1-mini"`
	ChatRevealIntervalMS int      `env:"CHAT_REVEAL_INTERVAL_MS" envDefault:"15"`
	SeedDemoData         bool     `env:"SEED_DEMO_DATA" envDefault:"false"`
	AllowedOrigins       []string `env:"ALLOWED_ORIGINS" envDefault:"*"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                  raw.Env,
		HTTPListenAddr:       raw.HTTPListenAddr,
		DatabaseURL:          raw.DatabaseURL,
		OpenAIAPIKey:         raw.OpenAIAPIKey,
		OpenAIModel:          raw.OpenAIModel,
		ChatRevealIntervalMS: raw.ChatRevealIntervalMS,
		SeedDemoData:         raw.SeedDemoData,
		AllowedOrigins:       raw.AllowedOrigins,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
