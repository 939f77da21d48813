package tokenizer

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/BaSui01/tokencount/types"
)

// ReadVocabularyFile loads an exact-backend vocabulary from path.
//
// Two formats are accepted: a JSON array of strings (required for entries
// containing newlines or other control bytes), or plain text with one
// entry per line. Failures are wrapped as ErrVocabLoadFailed so the
// engine can mark only this backend as failed.
func ReadVocabularyFile(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, types.NewError(types.ErrVocabLoadFailed,
			fmt.Sprintf("read vocabulary %s", path)).WithCause(err)
	}

	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var vocab []string
		if err := json.Unmarshal(raw, &vocab); err != nil {
			return nil, types.NewError(types.ErrVocabLoadFailed,
				fmt.Sprintf("parse vocabulary %s", path)).WithCause(err)
		}
		return vocab, nil
	}

	var vocab []string
	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			vocab = append(vocab, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, types.NewError(types.ErrVocabLoadFailed,
			fmt.Sprintf("scan vocabulary %s", path)).WithCause(err)
	}
	if len(vocab) == 0 {
		return nil, types.NewError(types.ErrVocabLoadFailed,
			fmt.Sprintf("vocabulary %s is empty", path))
	}
	return vocab, nil
}
