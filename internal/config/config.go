package config

import "fmt"

type Config struct {
	Env                  string
	HTTPListenAddr       string
	DatabaseURL          string
	OpenAIAPIKey         string
	OpenAIModel          string
	ChatRevealIntervalMS int
	SeedDemoData         bool
	AllowedOrigins       []string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.ChatRevealIntervalMS < 0 {
		return fmt.Errorf("CHAT_REVEAL_INTERVAL_MS must not be negative, got %d", c.ChatRevealIntervalMS)
	}
	if len(c.AllowedOrigins) == 0 {
		return fmt.Errorf("ALLOWED_ORIGINS must contain at least one origin")
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "HTTP_LISTEN_ADDR", value: c.HTTPListenAddr},
		{name: "DATABASE_URL", value: c.DatabaseURL},
		{name: "OPENAI_API_KEY", value: c.OpenAIAPIKey},
		{name: "OPENAI_MODEL", value: c.OpenAIModel},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
