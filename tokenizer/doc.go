// Package tokenizer provides the tokenizer backends behind the engine:
// an exact byte-trie tokenizer built from a vocabulary list, an external
// vocabulary-driven tokenizer wrapped as an opaque capability, and a
// CJK-aware character-ratio estimator used while no exact backend is
// ready. It also owns the static registry of model profiles.
package tokenizer
