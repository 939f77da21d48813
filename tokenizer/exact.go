package tokenizer

// ExactTokenizer tokenizes by greedy longest match against a fixed
// vocabulary trie. It owns the trie exclusively; construction is the only
// mutation and both methods are safe for concurrent use afterwards.
type ExactTokenizer struct {
	name string
	trie *vocabTrie
}

// NewExactTokenizer builds a tokenizer from a vocabulary list. Entries are
// matched on their raw UTF-8 bytes.
func NewExactTokenizer(name string, vocab []string) *ExactTokenizer {
	return &ExactTokenizer{name: name, trie: newVocabTrie(vocab)}
}

// Name returns the model name the tokenizer was built for.
func (t *ExactTokenizer) Name() string { return t.name }

// Count returns the number of greedy longest-match tokens in text.
func (t *ExactTokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	data := []byte(text)
	count := 0
	for pos := 0; pos < len(data); {
		pos += t.trie.longestMatch(data, pos)
		count++
	}
	return count
}

// Encode returns the token substrings produced by the same scan as Count.
// Each consumed byte range is translated back to a character-aligned slice
// of text. A token whose byte span ends in the interior of a multi-byte
// UTF-8 sequence maps to an empty character range and is omitted from the
// result even though Count included it; callers relying on
// len(Encode(text)) == Count(text) must avoid vocabularies with entries
// that split characters.
func (t *ExactTokenizer) Encode(text string) []string {
	if text == "" {
		return []string{}
	}
	data := []byte(text)

	// charStarts[c] is the byte offset where character c begins, with a
	// trailing entry at len(data); byteToChar[b] is the index of the
	// character owning byte b, with byteToChar[len(data)] == charCount.
	charStarts := make([]int, 0, len(data)+1)
	for i := range text {
		charStarts = append(charStarts, i)
	}
	charStarts = append(charStarts, len(data))
	byteToChar := make([]int, len(data)+1)
	for c := 0; c < len(charStarts)-1; c++ {
		for b := charStarts[c]; b < charStarts[c+1]; b++ {
			byteToChar[b] = c
		}
	}
	byteToChar[len(data)] = len(charStarts) - 1

	tokens := make([]string, 0, len(data)/2)
	for pos := 0; pos < len(data); {
		n := t.trie.longestMatch(data, pos)
		startChar := byteToChar[pos]
		endChar := byteToChar[pos+n]
		if endChar > startChar {
			tokens = append(tokens, text[charStarts[startChar]:charStarts[endChar]])
		}
		pos += n
	}
	return tokens
}

// VocabSize returns the number of trie nodes, a rough memory gauge logged
// after construction.
func (t *ExactTokenizer) VocabSize() int {
	return t.trie.size()
}
