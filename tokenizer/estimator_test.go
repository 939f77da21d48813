package tokenizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestEstimator_Estimate(t *testing.T) {
	est := NewEstimator()

	tests := []struct {
		name  string
		text  string
		model string
		check func(t *testing.T, got int)
	}{
		{
			name:  "empty text is zero",
			text:  "",
			model: "claude",
			check: func(t *testing.T, got int) { assert.Equal(t, 0, got) },
		},
		{
			name:  "single character never rounds to zero",
			text:  "a",
			model: "claude",
			check: func(t *testing.T, got int) { assert.Equal(t, 1, got) },
		},
		{
			name:  "single space never rounds to zero",
			text:  " ",
			model: "gemini",
			check: func(t *testing.T, got int) { assert.GreaterOrEqual(t, got, 1) },
		},
		{
			name:  "english prose lands near chars per four",
			text:  strings.Repeat("hello world ", 20),
			model: "openai",
			check: func(t *testing.T, got int) {
				assert.InDelta(t, 55, got, 25)
			},
		},
		{
			name:  "unknown model uses fallback ratio",
			text:  "some text here",
			model: "not-a-model",
			check: func(t *testing.T, got int) { assert.Greater(t, got, 0) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, est.Estimate(tt.text, tt.model))
		})
	}
}

func TestEstimator_CJKBias(t *testing.T) {
	est := NewEstimator()

	// Same character count; the CJK text must cost noticeably more tokens
	// because its chars-per-token ratio is much lower.
	latin := strings.Repeat("ab", 50)
	cjk := strings.Repeat("你好", 50)

	latinTokens := est.Estimate(latin, "qwen")
	cjkTokens := est.Estimate(cjk, "qwen")
	assert.Greater(t, cjkTokens, latinTokens)
}

func TestEstimator_MixedTextBetweenExtremes(t *testing.T) {
	est := NewEstimator()

	latin := strings.Repeat("abcd", 25)
	cjk := strings.Repeat("你好再见", 25)
	mixed := strings.Repeat("ab你好", 25)

	lo := est.Estimate(latin, "claude")
	hi := est.Estimate(cjk, "claude")
	mid := est.Estimate(mixed, "claude")
	assert.Greater(t, mid, lo)
	assert.Less(t, mid, hi)
}

func TestEstimator_WithRatio(t *testing.T) {
	est := NewEstimator().WithRatio("custom", Ratio{EnglishCharsPerToken: 1.0, CJKCharsPerToken: 1.0})

	// With one char per token the char estimate dominates at text length.
	text := strings.Repeat("a", 100)
	got := est.Estimate(text, "custom")
	assert.GreaterOrEqual(t, got, 60)
}

func TestProperty_Estimator_NeverZeroForNonEmpty(t *testing.T) {
	est := NewEstimator()
	models := []string{"claude", "openai", "qwen", "unknown"}

	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringN(1, 200, -1).Draw(rt, "text")
		model := rapid.SampledFrom(models).Draw(rt, "model")

		got := est.Estimate(text, model)
		assert.GreaterOrEqual(t, got, 1)
	})
}

func TestIsCJK(t *testing.T) {
	tests := []struct {
		name     string
		r        rune
		expected bool
	}{
		{name: "han ideograph", r: '中', expected: true},
		{name: "hiragana", r: 'ひ', expected: true},
		{name: "katakana", r: 'カ', expected: true},
		{name: "hangul syllable", r: '한', expected: true},
		{name: "fullwidth latin", r: 'Ａ', expected: true},
		{name: "ideographic space", r: '　', expected: true},
		{name: "ascii letter", r: 'a', expected: false},
		{name: "ascii space", r: ' ', expected: false},
		{name: "latin accent", r: 'é', expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isCJK(tt.r))
		})
	}
}
