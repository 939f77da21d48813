// Package diff computes a word-level difference between two texts.
//
// Both inputs are split into alternating whitespace and non-whitespace
// runs so that every character belongs to exactly one run; a classic LCS
// alignment over the runs then yields typed segments. Concatenating the
// Unchanged+Removed segments reproduces the first text exactly, and
// Unchanged+Added the second, which lets callers both render the diff
// and price each change region in tokens.
package diff
