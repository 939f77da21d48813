package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/BaSui01/tokencount/internal/metrics"
	"github.com/BaSui01/tokencount/tokenizer"
	"github.com/BaSui01/tokencount/types"
)

// Engine dispatches token counting across all registered model backends.
//
// Every known model starts in LoadPending. Request moves it through
// Loading into Ready or Error; both are terminal for the process
// lifetime. A failed load is never retried, the model simply keeps
// serving heuristic estimates. All state is guarded by e.mu; load
// deduplication is delegated to a singleflight group keyed by model
// name, so at most one acquisition per model is ever in flight and every
// concurrent requester observes the same outcome.
type Engine struct {
	logger    *zap.Logger
	registry  *tokenizer.Registry
	estimator *tokenizer.Estimator
	loader    Loader
	collector *metrics.Collector

	mu       sync.RWMutex
	states   map[string]types.LoadState
	failures map[string]error
	backends map[string]tokenizer.Backend

	group singleflight.Group
}

// Loader performs the backend-specific acquisition for one model
// profile: reading and parsing a vocabulary, building a trie, or
// initializing an external encoding. A nil Backend with a nil error is
// valid and means the model has nothing to load (heuristic-only).
type Loader interface {
	Load(ctx context.Context, profile types.ModelProfile) (tokenizer.Backend, error)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the zap logger. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEstimator replaces the default heuristic estimator.
func WithEstimator(est *tokenizer.Estimator) Option {
	return func(e *Engine) {
		if est != nil {
			e.estimator = est
		}
	}
}

// WithLoader replaces the default backend loader. Tests use this to
// observe and control acquisitions.
func WithLoader(l Loader) Option {
	return func(e *Engine) {
		if l != nil {
			e.loader = l
		}
	}
}

// WithMetrics attaches a metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) { e.collector = c }
}

// New creates an Engine over the given registry. Every registered model
// starts in LoadPending.
func New(registry *tokenizer.Registry, opts ...Option) *Engine {
	e := &Engine{
		logger:    zap.NewNop(),
		registry:  registry,
		estimator: tokenizer.NewEstimator(),
		states:    make(map[string]types.LoadState),
		failures:  make(map[string]error),
		backends:  make(map[string]tokenizer.Backend),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.loader == nil {
		e.loader = &backendLoader{logger: e.logger}
	}
	for _, p := range registry.Profiles() {
		e.states[p.Name] = types.LoadPending
	}
	return e
}

// Registry returns the engine's model registry.
func (e *Engine) Registry() *tokenizer.Registry {
	return e.registry
}

// State returns the load state for the named model. The second return
// value is false for unknown models.
func (e *Engine) State(name string) (types.LoadState, bool) {
	profile, ok := e.registry.Lookup(name)
	if !ok {
		return 0, false
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.states[profile.Name], true
}

// LoadFailure returns the terminal load error for the named model, or
// nil when the model did not fail (or is unknown).
func (e *Engine) LoadFailure(name string) error {
	profile, ok := e.registry.Lookup(name)
	if !ok {
		return nil
	}
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.failures[profile.Name]
}

// Request ensures the named model's backend load has been attempted,
// blocking until the in-flight load (started by this call or an earlier
// concurrent one) completes. A model already in a terminal state returns
// immediately; Error in particular is a no-op, there is no retry.
//
// Load failures are not returned: callers observe them only via State
// and fall back to heuristic counts. The only errors Request itself
// produces are an unknown model name and context cancellation while
// waiting.
func (e *Engine) Request(ctx context.Context, name string) error {
	profile, ok := e.registry.Lookup(name)
	if !ok {
		return types.NewError(types.ErrModelNotFound,
			fmt.Sprintf("unknown model: %s", name)).WithModel(name)
	}

	e.mu.RLock()
	state := e.states[profile.Name]
	e.mu.RUnlock()
	if state.Terminal() {
		return nil
	}

	ch := e.group.DoChan(profile.Name, func() (any, error) {
		e.load(ctx, profile)
		return nil, nil
	})

	select {
	case <-ch:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestAll requests a load for every registered model concurrently and
// waits for all of them to settle.
func (e *Engine) RequestAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range e.registry.Profiles() {
		p := p
		g.Go(func() error {
			return e.Request(ctx, p.Name)
		})
	}
	return g.Wait()
}

// load runs inside the singleflight group: exactly one execution per
// model name at a time.
func (e *Engine) load(ctx context.Context, profile types.ModelProfile) {
	e.mu.Lock()
	if e.states[profile.Name].Terminal() {
		// A previous flight finished between the caller's state check and
		// DoChan; terminal states never transition again.
		e.mu.Unlock()
		return
	}
	e.states[profile.Name] = types.LoadLoading
	e.mu.Unlock()

	start := time.Now()
	backend, err := e.loader.Load(ctx, profile)
	elapsed := time.Since(start)

	e.mu.Lock()
	if err != nil {
		e.states[profile.Name] = types.LoadError
		e.failures[profile.Name] = err
	} else {
		e.states[profile.Name] = types.LoadReady
		e.backends[profile.Name] = backend
	}
	e.mu.Unlock()

	if err != nil {
		e.logger.Warn("backend load failed, model stays on heuristic estimates",
			zap.String("model", profile.Name),
			zap.Duration("elapsed", elapsed),
			zap.Error(err))
		if e.collector != nil {
			e.collector.ObserveLoad(profile.Name, "error", elapsed)
		}
		return
	}

	e.logger.Info("backend ready",
		zap.String("model", profile.Name),
		zap.Stringer("backend", profile.Backend),
		zap.Duration("elapsed", elapsed))
	if e.collector != nil {
		e.collector.ObserveLoad(profile.Name, "ready", elapsed)
	}
}

// Count returns the token count for text under the named model. A Ready
// exact or external backend serves the count; otherwise the heuristic
// estimator does, and the result is marked inexact.
func (e *Engine) Count(text, name string) (types.ModelCount, error) {
	profile, ok := e.registry.Lookup(name)
	if !ok {
		return types.ModelCount{}, types.NewError(types.ErrModelNotFound,
			fmt.Sprintf("unknown model: %s", name)).WithModel(name)
	}
	return e.countProfile(text, profile), nil
}

// CountAll returns the count for text under every registered model, in
// registration order.
func (e *Engine) CountAll(text string) []types.ModelCount {
	profiles := e.registry.Profiles()
	counts := make([]types.ModelCount, 0, len(profiles))
	for _, p := range profiles {
		counts = append(counts, e.countProfile(text, p))
	}
	return counts
}

func (e *Engine) countProfile(text string, profile types.ModelProfile) types.ModelCount {
	e.mu.RLock()
	ready := e.states[profile.Name] == types.LoadReady
	backend := e.backends[profile.Name]
	e.mu.RUnlock()

	start := time.Now()
	mc := types.ModelCount{Name: profile.Name, DisplayName: profile.DisplayName}
	if ready && backend != nil {
		mc.Tokens = backend.Count(text)
		mc.Exact = true
	} else {
		mc.Tokens = e.estimator.Estimate(text, profile.Name)
	}
	if e.collector != nil {
		e.collector.ObserveCount(profile.Name, mc.Exact, time.Since(start))
	}
	return mc
}

// Encode returns the ordered token substrings for text under the named
// model. Unlike Count there is no heuristic degradation: a model whose
// backend is not Ready (or that has no exact backend at all) returns
// ErrBackendNotReady, because an estimate cannot produce a token
// sequence.
func (e *Engine) Encode(text, name string) ([]string, error) {
	profile, ok := e.registry.Lookup(name)
	if !ok {
		return nil, types.NewError(types.ErrModelNotFound,
			fmt.Sprintf("unknown model: %s", name)).WithModel(name)
	}

	e.mu.RLock()
	ready := e.states[profile.Name] == types.LoadReady
	backend := e.backends[profile.Name]
	e.mu.RUnlock()

	if !ready || backend == nil {
		return nil, types.NewError(types.ErrBackendNotReady,
			fmt.Sprintf("token sequence unavailable for %s", profile.Name)).WithModel(profile.Name)
	}
	return backend.Encode(text), nil
}
