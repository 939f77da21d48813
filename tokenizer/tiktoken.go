package tokenizer

import (
	"fmt"

	"github.com/pkoukk/tiktoken-go"

	"github.com/BaSui01/tokencount/types"
)

// TiktokenTokenizer wraps a tiktoken encoding as an opaque external
// backend: given text it returns a token count and a token-string
// sequence, and nothing about the underlying merge algorithm leaks out.
//
// Construction is eager: fetching and parsing the encoding data happens
// here, inside the engine's load lifecycle, so that a constructed value
// is always usable.
type TiktokenTokenizer struct {
	encoding string
	enc      *tiktoken.Tiktoken
}

// NewTiktokenTokenizer initializes the named tiktoken encoding
// (e.g. "o200k_base", "cl100k_base").
func NewTiktokenTokenizer(encoding string) (*TiktokenTokenizer, error) {
	enc, err := tiktoken.GetEncoding(encoding)
	if err != nil {
		return nil, types.NewError(types.ErrVocabLoadFailed,
			fmt.Sprintf("init tiktoken encoding %s", encoding)).WithCause(err)
	}
	return &TiktokenTokenizer{encoding: encoding, enc: enc}, nil
}

// Name returns the encoding name.
func (t *TiktokenTokenizer) Name() string {
	return fmt.Sprintf("tiktoken[%s]", t.encoding)
}

// Count returns the number of tokens in text.
func (t *TiktokenTokenizer) Count(text string) int {
	if text == "" {
		return 0
	}
	return len(t.enc.Encode(text, nil, nil))
}

// Encode returns the token substrings for text, decoding each token ID
// back to its byte content individually so the sequence lines up with
// Count.
func (t *TiktokenTokenizer) Encode(text string) []string {
	if text == "" {
		return []string{}
	}
	ids := t.enc.Encode(text, nil, nil)
	tokens := make([]string, len(ids))
	for i, id := range ids {
		tokens[i] = t.enc.Decode([]int{id})
	}
	return tokens
}
