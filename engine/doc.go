// Package engine composes the tokenizer backends into a single token
// counting service. The Engine owns the per-model load state table and
// the in-flight load map, deduplicates concurrent load requests, and
// dispatches Count/Encode calls to a Ready backend or degrades to the
// character-ratio estimator while one is not.
package engine
