// Package config loads the tokencount configuration.
//
// Precedence: built-in defaults, then the YAML file, then TOKENCOUNT_*
// environment variables. The configuration covers logging, the model
// profile table (locator overrides, extra models, disabling), and
// heuristic ratio overrides.
package config
