package oracle

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config selects and tunes the oracle backend. All fields have working
// defaults except APIKey; without a key the engine runs with the oracle
// disabled.
type Config struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

// ConfigFromEnv reads oracle settings from the environment. OPENAI_API_KEY
// enables the oracle; ORACLE_BASE_URL, ORACLE_MODEL and ORACLE_TIMEOUT
// override the defaults.
func ConfigFromEnv() Config {
	cfg := Config{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: os.Getenv("ORACLE_BASE_URL"),
		Model:   os.Getenv("ORACLE_MODEL"),
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	if v := os.Getenv("ORACLE_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// LoadConfig reads a YAML config file and layers it over the environment
// settings. File values win where set.
func LoadConfig(path string) (Config, error) {
	cfg := ConfigFromEnv()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading oracle config: %w", err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, fmt.Errorf("parsing oracle config: %w", err)
	}
	if file.APIKey != "" {
		cfg.APIKey = file.APIKey
	}
	if file.BaseURL != "" {
		cfg.BaseURL = file.BaseURL
	}
	if file.Model != "" {
		cfg.Model = file.Model
	}
	if file.Timeout != 0 {
		cfg.Timeout = file.Timeout
	}
	return cfg, nil
}

// New builds a Mapper from the config: an OpenAI mapper when a key is
// present, otherwise Disabled.
func New(cfg Config, log *slog.Logger) Mapper {
	if cfg.APIKey == "" {
		return Disabled{}
	}
	return NewOpenAI(cfg, log)
}
