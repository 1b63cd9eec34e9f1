// internal/config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type vocabularyFile struct {
	Terms []string `yaml:"terms"`
}

// OverlayVocabulary merges an optional standalone vocabulary file into the
// config, so teams can version a big keyword list separately from the main
// config. A missing file is not an error.
func OverlayVocabulary(cfg *Config, vocabPath string) error {
	b, err := os.ReadFile(vocabPath)
	if err != nil {
		return nil
	}

	var vf vocabularyFile
	if err := yaml.Unmarshal(b, &vf); err != nil {
		return err
	}

	if len(vf.Terms) > 0 {
		cfg.Vocabulary.ExtraTerms = append(cfg.Vocabulary.ExtraTerms, vf.Terms...)
	}
	return nil
}

// TechTerms resolves the effective vocabulary: the built-in set plus
// extra_terms, or extra_terms alone when replace is set.
func (c Config) TechTerms(builtin []string) []string {
	if c.Vocabulary.Replace {
		return c.Vocabulary.ExtraTerms
	}
	out := make([]string, 0, len(builtin)+len(c.Vocabulary.ExtraTerms))
	out = append(out, builtin...)
	out = append(out, c.Vocabulary.ExtraTerms...)
	return out
}
