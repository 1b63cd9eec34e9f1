package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate rejects configs that would produce a nonsense run. Returned error
// lists every problem at once so a bad file only needs one round trip.
func Validate(cfg Config) error {
	var errs []string

	if cfg.Scraper.TimeoutSeconds <= 0 {
		errs = append(errs, "scraper.timeout_seconds must be > 0")
	}
	if cfg.Scraper.MaxRetries < 0 {
		errs = append(errs, "scraper.max_retries must be >= 0")
	}
	if cfg.Scraper.RetryDelaySeconds < 0 {
		errs = append(errs, "scraper.retry_delay_seconds must be >= 0")
	}
	if cfg.Scraper.RequestDelaySeconds < 0 {
		errs = append(errs, "scraper.request_delay_seconds must be >= 0")
	}
	if cfg.Scraper.Concurrency < 1 {
		errs = append(errs, "scraper.concurrency must be >= 1")
	}
	switch cfg.Scraper.Backoff {
	case "", "fixed", "exponential":
	default:
		errs = append(errs, fmt.Sprintf("scraper.backoff must be fixed or exponential, got %q", cfg.Scraper.Backoff))
	}

	if t := cfg.Validation.CompletenessThreshold; t < 0 || t > 1 {
		errs = append(errs, "validation.completeness_threshold must be in [0,1]")
	}

	if cfg.Vocabulary.Replace && len(cfg.Vocabulary.ExtraTerms) == 0 {
		errs = append(errs, "vocabulary.replace=true with no extra_terms would empty the vocabulary")
	}
	for i, term := range cfg.Vocabulary.ExtraTerms {
		if strings.TrimSpace(term) == "" {
			errs = append(errs, fmt.Sprintf("vocabulary.extra_terms[%d] cannot be empty", i))
		}
	}

	if cfg.BLS.Enabled {
		if cfg.BLS.StartYear <= 0 || cfg.BLS.EndYear <= 0 {
			errs = append(errs, "bls.start_year and bls.end_year are required when bls.enabled=true")
		} else if cfg.BLS.StartYear > cfg.BLS.EndYear {
			errs = append(errs, "bls.start_year must not be after bls.end_year")
		}
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + strings.Join(errs, "\n- "))
	}
	return nil
}
