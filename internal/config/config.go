// Package config holds the application configuration, parsed once at startup
// and passed explicitly to every component that needs it.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Session assets. Rules and GM prompt are required at startup; the save
	// file is optional and falls back to a fresh session.
	RulesPath    string `env:"GMQUEST_RULES" envDefault:"rules.json"`
	GMPromptPath string `env:"GMQUEST_GM_PROMPT" envDefault:"prompts/gm.txt"`
	SavePath     string `env:"GMQUEST_SAVE" envDefault:"save.json"`
	TranscriptDB string `env:"GMQUEST_TRANSCRIPT_DB" envDefault:"transcript.db"`

	// Backend. Defaults target a local Ollama server through its
	// OpenAI-compatible endpoint; the key is a placeholder Ollama ignores.
	BaseURL string `env:"GMQUEST_BASE_URL" envDefault:"http://localhost:11434/v1"`
	APIKey  string `env:"GMQUEST_API_KEY" envDefault:"ollama"`
	Model   string `env:"GMQUEST_MODEL" envDefault:"llama3.1:8b"`

	Debug bool `env:"DEBUG"`
}

// Load parses configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
