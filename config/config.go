package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BaSui01/tokencount/tokenizer"
	"github.com/BaSui01/tokencount/types"
)

// Config is the complete tokencount configuration.
type Config struct {
	// Log controls logger construction in the CLI.
	Log LogConfig `yaml:"log"`
	// Models overrides or extends the built-in model table.
	Models []ModelConfig `yaml:"models"`
	// Heuristic overrides estimator ratios per model.
	Heuristic HeuristicConfig `yaml:"heuristic"`
}

// LogConfig selects the logger behavior.
type LogConfig struct {
	// Level: debug, info, warn, error.
	Level string `yaml:"level"`
	// Format: console or json.
	Format string `yaml:"format"`
}

// ModelConfig overrides one model profile. A name matching a built-in
// profile replaces its fields; an unknown name appends a new profile.
type ModelConfig struct {
	Name        string `yaml:"name"`
	DisplayName string `yaml:"display_name"`
	// Backend: exact_trie, external_vocab, or heuristic. Empty keeps the
	// built-in kind.
	Backend string `yaml:"backend"`
	// Locator is the vocabulary file path (exact_trie) or encoding name
	// (external_vocab).
	Locator  string `yaml:"locator"`
	Disabled bool   `yaml:"disabled"`
}

// HeuristicConfig carries estimator ratio overrides.
type HeuristicConfig struct {
	Ratios map[string]RatioConfig `yaml:"ratios"`
}

// RatioConfig is one model's chars-per-token pair.
type RatioConfig struct {
	EnglishCharsPerToken float64 `yaml:"english_chars_per_token"`
	CJKCharsPerToken     float64 `yaml:"cjk_chars_per_token"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "warn", Format: "console"},
	}
}

// Load builds the configuration: defaults, overlaid by the YAML file at
// path (skipped when path is empty or the file does not exist), overlaid
// by environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Missing file is fine; defaults and env still apply.
		case err != nil:
			return nil, types.NewError(types.ErrInvalidConfig,
				fmt.Sprintf("read config %s", path)).WithCause(err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, types.NewError(types.ErrInvalidConfig,
					fmt.Sprintf("parse config %s", path)).WithCause(err)
			}
		}
	}

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays TOKENCOUNT_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("TOKENCOUNT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TOKENCOUNT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TOKENCOUNT_CLAUDE_VOCAB"); v != "" {
		cfg.setLocator("claude", v)
	}
}

func (c *Config) setLocator(model, locator string) {
	for i := range c.Models {
		if c.Models[i].Name == model {
			c.Models[i].Locator = locator
			return
		}
	}
	c.Models = append(c.Models, ModelConfig{Name: model, Locator: locator})
}

func (c *Config) validate() error {
	for _, m := range c.Models {
		if m.Name == "" {
			return types.NewError(types.ErrInvalidConfig, "model entry without a name")
		}
		if m.Backend != "" {
			if _, err := parseBackendKind(m.Backend); err != nil {
				return err
			}
		}
	}
	for model, r := range c.Heuristic.Ratios {
		if r.EnglishCharsPerToken <= 0 || r.CJKCharsPerToken <= 0 {
			return types.NewError(types.ErrInvalidConfig,
				fmt.Sprintf("non-positive heuristic ratio for %s", model))
		}
	}
	return nil
}

func parseBackendKind(s string) (types.BackendKind, error) {
	switch s {
	case "exact_trie":
		return types.BackendExactTrie, nil
	case "external_vocab":
		return types.BackendExternalVocab, nil
	case "heuristic":
		return types.BackendHeuristicOnly, nil
	default:
		return 0, types.NewError(types.ErrInvalidConfig,
			fmt.Sprintf("unknown backend kind: %s", s))
	}
}

// Registry builds the model registry: built-in profiles with config
// overrides applied, disabled models removed, unknown names appended.
func (c *Config) Registry() (*tokenizer.Registry, error) {
	byName := make(map[string]ModelConfig, len(c.Models))
	for _, m := range c.Models {
		byName[m.Name] = m
	}

	var profiles []types.ModelProfile
	for _, p := range tokenizer.DefaultProfiles() {
		mc, ok := byName[p.Name]
		if ok {
			delete(byName, p.Name)
			if mc.Disabled {
				continue
			}
			if mc.DisplayName != "" {
				p.DisplayName = mc.DisplayName
			}
			if mc.Backend != "" {
				kind, err := parseBackendKind(mc.Backend)
				if err != nil {
					return nil, err
				}
				p.Backend = kind
			}
			if mc.Locator != "" {
				p.Locator = mc.Locator
			}
		}
		profiles = append(profiles, p)
	}

	// Append config-only models in their file order.
	for _, m := range c.Models {
		mc, ok := byName[m.Name]
		if !ok || mc.Disabled {
			continue
		}
		delete(byName, m.Name)
		kind := types.BackendHeuristicOnly
		if mc.Backend != "" {
			k, err := parseBackendKind(mc.Backend)
			if err != nil {
				return nil, err
			}
			kind = k
		}
		display := mc.DisplayName
		if display == "" {
			display = mc.Name
		}
		profiles = append(profiles, types.ModelProfile{
			Name:        mc.Name,
			DisplayName: display,
			Backend:     kind,
			Locator:     mc.Locator,
		})
	}

	return tokenizer.NewRegistry(profiles...), nil
}

// Estimator builds the heuristic estimator with config ratio overrides.
func (c *Config) Estimator() *tokenizer.Estimator {
	est := tokenizer.NewEstimator()
	for model, r := range c.Heuristic.Ratios {
		est.WithRatio(model, tokenizer.Ratio{
			EnglishCharsPerToken: r.EnglishCharsPerToken,
			CJKCharsPerToken:     r.CJKCharsPerToken,
		})
	}
	return est
}
