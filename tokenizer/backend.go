package tokenizer

// Backend is the capability contract every exact tokenizer implementation
// satisfies. Implementations are fully constructed before they are handed
// to the engine, so neither method returns an error.
type Backend interface {
	// Count returns the number of tokens in text. Empty text counts as 0.
	Count(text string) int

	// Encode returns the ordered token substrings for text. The sequence
	// may be shorter than Count(text) when a token's byte span does not
	// align to a whole character boundary; see ExactTokenizer.Encode.
	Encode(text string) []string
}
