package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/BaSui01/tokencount/tokenizer"
	"github.com/BaSui01/tokencount/types"
)

// backendLoader is the default Loader: it acquires real backends from
// each profile's locator.
type backendLoader struct {
	logger *zap.Logger
}

// Load builds the backend for profile. The context is honored between
// steps: a canceled load fails into the terminal Error state rather than
// leaving the model stuck in Loading.
func (l *backendLoader) Load(ctx context.Context, profile types.ModelProfile) (tokenizer.Backend, error) {
	if err := ctx.Err(); err != nil {
		return nil, types.NewError(types.ErrVocabLoadFailed, "load canceled").
			WithModel(profile.Name).WithCause(err)
	}

	switch profile.Backend {
	case types.BackendExactTrie:
		if profile.Locator == "" {
			return nil, types.NewError(types.ErrVocabLoadFailed,
				fmt.Sprintf("no vocabulary file configured for %s", profile.Name)).
				WithModel(profile.Name)
		}
		vocab, err := tokenizer.ReadVocabularyFile(profile.Locator)
		if err != nil {
			return nil, err
		}
		tok := tokenizer.NewExactTokenizer(profile.Name, vocab)
		l.logger.Debug("vocabulary trie built",
			zap.String("model", profile.Name),
			zap.Int("entries", len(vocab)),
			zap.Int("nodes", tok.VocabSize()))
		return tok, nil

	case types.BackendExternalVocab:
		return tokenizer.NewTiktokenTokenizer(profile.Locator)

	case types.BackendHeuristicOnly:
		// Nothing to acquire; the model is Ready with no exact backend and
		// Count keeps using the estimator.
		return nil, nil

	default:
		return nil, types.NewError(types.ErrVocabLoadFailed,
			fmt.Sprintf("unsupported backend kind %d for %s", profile.Backend, profile.Name)).
			WithModel(profile.Name)
	}
}
