package tokenizer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/tokencount/types"
)

func writeTempVocab(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadVocabularyFile(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
		wantCode types.ErrorCode
	}{
		{
			name:     "json array",
			content:  `["a", "ab", " ", "\n"]`,
			expected: []string{"a", "ab", " ", "\n"},
		},
		{
			name:     "json array with leading whitespace",
			content:  "\n  [\"x\"]",
			expected: []string{"x"},
		},
		{
			name:     "plain lines",
			content:  "the\nquick\nfox\n",
			expected: []string{"the", "quick", "fox"},
		},
		{
			name:     "plain lines skip blanks",
			content:  "a\n\nb\n",
			expected: []string{"a", "b"},
		},
		{
			name:     "malformed json",
			content:  `["a",`,
			wantCode: types.ErrVocabLoadFailed,
		},
		{
			name:     "empty file",
			content:  "",
			wantCode: types.ErrVocabLoadFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempVocab(t, "vocab", tt.content)
			vocab, err := ReadVocabularyFile(path)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, types.GetErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, vocab)
		})
	}
}

func TestReadVocabularyFile_Missing(t *testing.T) {
	_, err := ReadVocabularyFile(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.Equal(t, types.ErrVocabLoadFailed, types.GetErrorCode(err))
}
