package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/tokencount/types"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Empty(t, cfg.Models)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
  format: json
models:
  - name: claude
    locator: /data/claude-vocab.json
  - name: internal-lm
    display_name: Internal LM
    backend: heuristic
heuristic:
  ratios:
    internal-lm:
      english_chars_per_token: 3.0
      cjk_chars_per_token: 1.1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	require.Len(t, cfg.Models, 2)
	assert.Equal(t, "/data/claude-vocab.json", cfg.Models[0].Locator)
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	path := writeConfig(t, "log:\n  level: debug\n")
	t.Setenv("TOKENCOUNT_LOG_LEVEL", "error")
	t.Setenv("TOKENCOUNT_CLAUDE_VOCAB", "/env/vocab.json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)

	reg, err := cfg.Registry()
	require.NoError(t, err)
	p, ok := reg.Lookup("claude")
	require.True(t, ok)
	assert.Equal(t, "/env/vocab.json", p.Locator)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "malformed yaml",
			content: "log: [broken",
		},
		{
			name:    "unknown backend kind",
			content: "models:\n  - name: x\n    backend: quantum\n",
		},
		{
			name:    "model without name",
			content: "models:\n  - locator: /v.json\n",
		},
		{
			name:    "non-positive ratio",
			content: "heuristic:\n  ratios:\n    claude:\n      english_chars_per_token: 0\n      cjk_chars_per_token: 1.5\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Equal(t, types.ErrInvalidConfig, types.GetErrorCode(err))
		})
	}
}

func TestConfig_Registry(t *testing.T) {
	cfg := Default()
	cfg.Models = []ModelConfig{
		{Name: "claude", Locator: "/data/vocab.json"},
		{Name: "grok", Disabled: true},
		{Name: "custom", DisplayName: "Custom", Backend: "external_vocab", Locator: "cl100k_base"},
	}

	reg, err := cfg.Registry()
	require.NoError(t, err)

	claude, ok := reg.Lookup("claude")
	require.True(t, ok)
	assert.Equal(t, "/data/vocab.json", claude.Locator)
	assert.Equal(t, types.BackendExactTrie, claude.Backend)

	_, ok = reg.Lookup("grok")
	assert.False(t, ok)

	custom, ok := reg.Lookup("custom")
	require.True(t, ok)
	assert.Equal(t, types.BackendExternalVocab, custom.Backend)
	assert.Equal(t, "Custom", custom.DisplayName)

	// Built-ins not mentioned in the config survive untouched.
	openai, ok := reg.Lookup("openai")
	require.True(t, ok)
	assert.Equal(t, "o200k_base", openai.Locator)
}

func TestConfig_Estimator(t *testing.T) {
	cfg := Default()
	cfg.Heuristic.Ratios = map[string]RatioConfig{
		"dense": {EnglishCharsPerToken: 1.0, CJKCharsPerToken: 1.0},
	}

	est := cfg.Estimator()
	long := est.Estimate("aaaaaaaaaaaaaaaaaaaa", "dense")
	short := est.Estimate("aaaaaaaaaaaaaaaaaaaa", "claude")
	assert.Greater(t, long, short)
}
