// Package tokencount provides a top-level convenience entry point for
// counting tokens with minimal boilerplate.
//
// Usage:
//
//	import "github.com/BaSui01/tokencount"
//
//	eng := tokencount.New()
//	eng := tokencount.New(tokencount.WithLogger(logger))
//
//	_ = eng.Request(ctx, "claude")
//	count, err := eng.Count("some text", "claude")
//
// This is a thin wrapper over [engine.New] with the built-in model
// registry. Construct the engine directly when you need a custom
// registry or loader.
package tokencount

import (
	"github.com/BaSui01/tokencount/engine"
	"github.com/BaSui01/tokencount/tokenizer"
)

// Option configures the engine created by [New].
type Option = engine.Option

// New creates an [engine.Engine] over the built-in model registry.
func New(opts ...Option) *engine.Engine {
	return engine.New(tokenizer.DefaultRegistry(), opts...)
}

// Re-export engine options so callers never need to import engine/.

// WithLogger sets a custom zap logger.
var WithLogger = engine.WithLogger

// WithEstimator overrides the heuristic estimator.
var WithEstimator = engine.WithEstimator

// WithLoader overrides how backends acquire their vocabularies.
var WithLoader = engine.WithLoader

// WithMetrics attaches a prometheus collector.
var WithMetrics = engine.WithMetrics
