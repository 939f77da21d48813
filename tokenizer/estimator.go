package tokenizer

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Ratio holds the characters-per-token ratios used by the estimator for
// one model, split by script family.
type Ratio struct {
	EnglishCharsPerToken float64
	CJKCharsPerToken     float64
}

// defaultRatios biases estimates per model family. Values are tuned
// against sample counts from each vendor's published tokenizer.
var defaultRatios = map[string]Ratio{
	"claude":   {EnglishCharsPerToken: 3.5, CJKCharsPerToken: 1.4},
	"openai":   {EnglishCharsPerToken: 4.0, CJKCharsPerToken: 1.6},
	"gpt-4":    {EnglishCharsPerToken: 4.0, CJKCharsPerToken: 1.5},
	"gemini":   {EnglishCharsPerToken: 4.0, CJKCharsPerToken: 1.5},
	"deepseek": {EnglishCharsPerToken: 3.8, CJKCharsPerToken: 1.3},
	"qwen":     {EnglishCharsPerToken: 3.8, CJKCharsPerToken: 1.2},
	"llama":    {EnglishCharsPerToken: 3.6, CJKCharsPerToken: 1.8},
	"mistral":  {EnglishCharsPerToken: 3.6, CJKCharsPerToken: 1.8},
	"grok":     {EnglishCharsPerToken: 4.0, CJKCharsPerToken: 1.6},
	"minimax":  {EnglishCharsPerToken: 3.8, CJKCharsPerToken: 1.3},
}

// Estimator produces character-ratio token estimates for models whose
// exact backend is unavailable. It blends per-model English and CJK
// ratios by the fraction of CJK characters in the text.
type Estimator struct {
	ratios   map[string]Ratio
	fallback Ratio
}

// NewEstimator creates an estimator with the built-in per-model table.
func NewEstimator() *Estimator {
	ratios := make(map[string]Ratio, len(defaultRatios))
	for k, v := range defaultRatios {
		ratios[k] = v
	}
	return &Estimator{
		ratios:   ratios,
		fallback: Ratio{EnglishCharsPerToken: 4.0, CJKCharsPerToken: 1.5},
	}
}

// WithRatio overrides (or adds) the ratio for one model.
func (e *Estimator) WithRatio(model string, r Ratio) *Estimator {
	e.ratios[model] = r
	return e
}

// Estimate returns the token estimate for text under the named model.
// Empty text estimates to 0; non-empty text never estimates below 1.
func (e *Estimator) Estimate(text, model string) int {
	if text == "" {
		return 0
	}

	runes := utf8.RuneCountInString(text)
	cjk := 0
	for _, r := range text {
		if isCJK(r) {
			cjk++
		}
	}
	cjkFraction := float64(cjk) / float64(runes)

	ratio, ok := e.ratios[model]
	if !ok {
		ratio = e.fallback
	}
	blended := ratio.EnglishCharsPerToken +
		(ratio.CJKCharsPerToken-ratio.EnglishCharsPerToken)*cjkFraction

	charEstimate := math.Ceil(float64(runes) / blended)
	wordEstimate := math.Ceil(float64(len(strings.Fields(text))) * 1.3)

	estimate := int(math.Ceil(0.6*charEstimate + 0.4*wordEstimate))
	if estimate < 1 {
		estimate = 1
	}
	return estimate
}

// isCJK returns true if the rune falls in the CJK ranges the estimator
// treats as densely tokenized.
func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || // CJK Unified Ideographs
		(r >= 0x3400 && r <= 0x4DBF) || // CJK Extension A
		(r >= 0x3000 && r <= 0x303F) || // CJK Symbols and Punctuation
		(r >= 0x3040 && r <= 0x30FF) || // Hiragana and Katakana
		(r >= 0xAC00 && r <= 0xD7AF) || // Hangul Syllables
		(r >= 0x1100 && r <= 0x11FF) || // Hangul Jamo
		(r >= 0xFF00 && r <= 0xFFEF) // Halfwidth and Fullwidth Forms
}
