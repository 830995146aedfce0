// Package pipeline runs the curation stages over the data directory:
// bronze ingestion, silver normalization, gold reconciliation and the
// database load. Each stage reads the previous stage's artifacts, so any
// stage can be rerun on its own.
package pipeline

import (
	"context"
	"time"

	"github.com/agentstation/toolmap/internal/artifacts"
	"github.com/agentstation/toolmap/internal/sources"
	"github.com/agentstation/toolmap/internal/store/postgres"
	"github.com/agentstation/toolmap/pkg/differ"
	"github.com/agentstation/toolmap/pkg/normalize"
	"github.com/agentstation/toolmap/pkg/reconciler"
	"github.com/agentstation/toolmap/pkg/records"
)

// Loader persists gold records.
type Loader interface {
	Load(ctx context.Context, tools []records.Gold) (*postgres.LoadResult, error)
}

// StageResult describes one stage execution.
type StageResult struct {
	Stage    string          `json:"stage" yaml:"stage"`
	Inputs   []string        `json:"inputs" yaml:"inputs"`
	Rows     int             `json:"rows" yaml:"rows"`
	Dropped  int             `json:"dropped" yaml:"dropped"`
	Output   []string        `json:"output" yaml:"output"`
	Duration time.Duration   `json:"duration" yaml:"duration"`
	Skipped  bool            `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Changes  *differ.Summary `json:"changes,omitempty" yaml:"changes,omitempty"`
	Errors   []string        `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func newStageResult(stage string) *StageResult {
	return &StageResult{
		Stage:  stage,
		Inputs: []string{},
		Output: []string{},
	}
}

// Pipeline wires the stages to a data directory.
type Pipeline struct {
	store      *artifacts.Store
	sources    []sources.Source
	normalizer *normalize.Normalizer
	reconcile  []reconciler.Option
	provenance bool
	loader     Loader
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithSources sets the bronze sources, run in order.
func WithSources(srcs ...sources.Source) Option {
	return func(p *Pipeline) {
		p.sources = srcs
	}
}

// WithNormalizer sets the silver normalizer.
func WithNormalizer(n *normalize.Normalizer) Option {
	return func(p *Pipeline) {
		if n != nil {
			p.normalizer = n
		}
	}
}

// WithReconcilerOptions passes options to the gold reconciler.
func WithReconcilerOptions(opts ...reconciler.Option) Option {
	return func(p *Pipeline) {
		p.reconcile = append(p.reconcile, opts...)
	}
}

// WithProvenance writes gold/provenance.yaml next to the gold table.
func WithProvenance(enabled bool) Option {
	return func(p *Pipeline) {
		p.provenance = enabled
	}
}

// WithLoader sets the database loader. Without one the load stage is
// skipped.
func WithLoader(l Loader) Option {
	return func(p *Pipeline) {
		p.loader = l
	}
}

// New creates a pipeline over store.
func New(store *artifacts.Store, opts ...Option) *Pipeline {
	p := &Pipeline{store: store}
	for _, opt := range opts {
		opt(p)
	}
	if p.normalizer == nil {
		p.normalizer = normalize.New()
	}
	return p
}

// Store returns the artifact store.
func (p *Pipeline) Store() *artifacts.Store {
	return p.store
}
