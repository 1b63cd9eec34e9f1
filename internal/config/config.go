// internal/config/config.go
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Scraper struct {
		TimeoutSeconds        int     `yaml:"timeout_seconds"`
		MaxRetries            int     `yaml:"max_retries"`
		RetryDelaySeconds     float64 `yaml:"retry_delay_seconds"`
		RateLimitDelaySeconds float64 `yaml:"rate_limit_delay_seconds"`
		RequestDelaySeconds   float64 `yaml:"request_delay_seconds"`
		Concurrency           int     `yaml:"concurrency"`
		Backoff               string  `yaml:"backoff"` // fixed | exponential
	} `yaml:"scraper"`

	Validation struct {
		CompletenessThreshold float64 `yaml:"completeness_threshold"`
		KeepRejected          bool    `yaml:"keep_rejected"`
		ExcludeFlagged        bool    `yaml:"exclude_flagged"`
		DeterministicOrder    bool    `yaml:"deterministic_order"`
	} `yaml:"validation"`

	Vocabulary struct {
		// ExtraTerms extend the built-in technology keyword set;
		// Replace swaps it out entirely.
		ExtraTerms []string `yaml:"extra_terms"`
		Replace    bool     `yaml:"replace"`
	} `yaml:"vocabulary"`

	BLS struct {
		Enabled        bool   `yaml:"enabled"`
		StartYear      int    `yaml:"start_year"`
		EndYear        int    `yaml:"end_year"`
		KeyringAccount string `yaml:"keyring_account"`
	} `yaml:"bls"`

	Export struct {
		CSVPath  string `yaml:"csv_path"`
		JSONPath string `yaml:"json_path"`
	} `yaml:"export"`
}

// Default returns the working configuration before any file is loaded.
func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.Scraper.TimeoutSeconds = 30
	cfg.Scraper.MaxRetries = 3
	cfg.Scraper.RetryDelaySeconds = 2
	cfg.Scraper.RateLimitDelaySeconds = 30
	cfg.Scraper.RequestDelaySeconds = 2
	cfg.Scraper.Concurrency = 1
	cfg.Scraper.Backoff = "fixed"
	cfg.Validation.CompletenessThreshold = 0.5
	cfg.BLS.StartYear = 2020
	cfg.BLS.EndYear = 2023
	cfg.Export.CSVPath = "occupations.csv"
	cfg.Export.JSONPath = "occupations.json"
	return cfg
}

// Load reads path over the defaults, so a partial file is fine.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

func (c Config) Timeout() time.Duration { return time.Duration(c.Scraper.TimeoutSeconds) * time.Second }
func (c Config) RetryDelay() time.Duration {
	return time.Duration(c.Scraper.RetryDelaySeconds * float64(time.Second))
}
func (c Config) RateLimitDelay() time.Duration {
	return time.Duration(c.Scraper.RateLimitDelaySeconds * float64(time.Second))
}
func (c Config) RequestDelay() time.Duration {
	return time.Duration(c.Scraper.RequestDelaySeconds * float64(time.Second))
}
