package engine

import (
	"time"

	"github.com/sigil-lang/sigil/internal/export"
	"github.com/sigil-lang/sigil/internal/ir"
	"github.com/sigil-lang/sigil/internal/ledger"
	"github.com/sigil-lang/sigil/internal/registry"
)

// Engine holds the shared state the five command executors operate on.
// It replaces process-wide singletons with an explicit context object so
// test fixtures can run isolated registries and counters.
type Engine struct {
	registry  *registry.Registry
	counter   *ledger.Counter
	catalogue ir.Catalogue
	sinks     []export.Sink
	clock     *Clock
	tokens    RunTokenGenerator
	now       func() time.Time

	// runToken stamps ledger events and export metadata; RunScript
	// refreshes it per script.
	runToken string
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalogue replaces the built-in symbol catalogue.
func WithCatalogue(cat ir.Catalogue) Option {
	return func(e *Engine) { e.catalogue = cat }
}

// WithSinks replaces the default export sinks.
func WithSinks(sinks ...export.Sink) Option {
	return func(e *Engine) { e.sinks = sinks }
}

// WithExportDir constructs the three standard sinks rooted at dir.
func WithExportDir(dir string) Option {
	return func(e *Engine) {
		e.sinks = []export.Sink{
			export.NewContentSink(dir),
			export.NewAuditSink(dir),
			export.NewSnapshotSink(dir),
		}
	}
}

// WithNow overrides the wall clock, for deterministic tests.
func WithNow(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithTokenGenerator overrides the run token generator, for tests.
func WithTokenGenerator(g RunTokenGenerator) Option {
	return func(e *Engine) { e.tokens = g }
}

// New creates an engine over the given registry and counter. Defaults:
// built-in catalogue, sinks rooted at the working directory, wall clock
// time, UUIDv7 run tokens.
func New(reg *registry.Registry, counter *ledger.Counter, opts ...Option) *Engine {
	e := &Engine{
		registry:  reg,
		counter:   counter,
		catalogue: ir.BuiltinCatalogue(),
		clock:     NewClock(),
		tokens:    UUIDv7Generator{},
		now:       time.Now,
	}
	WithExportDir(".")(e)

	for _, opt := range opts {
		opt(e)
	}

	e.runToken = e.tokens.Generate()
	return e
}

// Catalogue returns the engine's working catalogue. Synthesized entities
// add their symbol views here, so later commands can use them as operands.
func (e *Engine) Catalogue() ir.Catalogue {
	return e.catalogue
}

// Status summarizes the engine's shared state for display.
type Status struct {
	CounterValue  int64  `json:"counter_value"`
	EntityCount   int    `json:"entity_count"`
	CatalogueSize int    `json:"catalogue_size"`
	Signature     string `json:"signature"`
	EngineVersion string `json:"engine_version"`
}

// Status reports the current counter value, entity count, and catalogue
// size. Display-only; no mutation.
func (e *Engine) Status() Status {
	return Status{
		CounterValue:  e.counter.Value(),
		EntityCount:   e.registry.Len(),
		CatalogueSize: len(e.catalogue),
		Signature:     ir.Signature,
		EngineVersion: ir.EngineVersion,
	}
}
