package types

// BackendKind identifies how a model's token counts are produced.
type BackendKind int

const (
	// BackendHeuristicOnly models have no exact tokenizer; counts always
	// come from the character-ratio estimator.
	BackendHeuristicOnly BackendKind = iota
	// BackendExactTrie models tokenize by greedy longest match against a
	// vocabulary trie built from the profile's locator (a vocabulary file).
	BackendExactTrie
	// BackendExternalVocab models delegate to an externally sourced
	// vocabulary-driven tokenizer; the locator names its encoding.
	BackendExternalVocab
)

// String returns the backend kind name used in config files and logs.
func (k BackendKind) String() string {
	switch k {
	case BackendExactTrie:
		return "exact_trie"
	case BackendExternalVocab:
		return "external_vocab"
	case BackendHeuristicOnly:
		return "heuristic"
	default:
		return "unknown"
	}
}

// ModelProfile describes one tokenizer model known to the registry.
// Profiles are enumerated at process start and never mutated.
type ModelProfile struct {
	// Name is the unique registry key, e.g. "claude".
	Name string `json:"name"`
	// DisplayName is the human-readable label, e.g. "Claude".
	DisplayName string `json:"display_name"`
	// Backend selects how counts for this model are produced.
	Backend BackendKind `json:"backend"`
	// Locator is backend-specific: a vocabulary file path for
	// BackendExactTrie, an encoding name for BackendExternalVocab,
	// empty for BackendHeuristicOnly.
	Locator string `json:"locator,omitempty"`
}

// LoadState tracks one model backend through its load lifecycle.
//
// Transitions are monotonic: Pending → Loading → Ready or Error.
// Ready and Error are terminal; no transition leaves them.
type LoadState int

const (
	LoadPending LoadState = iota
	LoadLoading
	LoadReady
	LoadError
)

// String returns the state name used in logs and metrics labels.
func (s LoadState) String() string {
	switch s {
	case LoadPending:
		return "pending"
	case LoadLoading:
		return "loading"
	case LoadReady:
		return "ready"
	case LoadError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can leave the state.
func (s LoadState) Terminal() bool {
	return s == LoadReady || s == LoadError
}

// ModelCount is one model's token count for a text.
type ModelCount struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Tokens      int    `json:"tokens"`
	// Exact is true when the count came from a Ready exact or external
	// backend; false means the heuristic estimate was used and the value
	// may change once the backend finishes loading.
	Exact bool `json:"exact"`
}
