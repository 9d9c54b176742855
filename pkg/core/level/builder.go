package level

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dungeonforge/pkg/core/catalog"
	"github.com/matzehuels/dungeonforge/pkg/core/room"
	"github.com/matzehuels/dungeonforge/pkg/core/roomgraph"
	dferrors "github.com/matzehuels/dungeonforge/pkg/errors"
	"github.com/matzehuels/dungeonforge/pkg/observability"
)

// Builder runs layout generation. A Builder remembers the registry of its
// last attempt so the collaborator can be told to tear it down before the
// next one; it is not safe for concurrent use. Run independent generations
// on separate Builders.
type Builder struct {
	opts   Options
	collab Collaborator
	logger *log.Logger
	hooks  observability.GenerationHooks

	current  *Registry
	attempts int
}

// NewBuilder returns a Builder. Zero option fields take their defaults; a nil
// collaborator or logger is replaced by a no-op one.
func NewBuilder(opts Options, collab Collaborator, logger *log.Logger) *Builder {
	opts.SetDefaults()
	if collab == nil {
		collab = NopCollaborator{}
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Builder{
		opts:   opts,
		collab: collab,
		logger: logger,
		hooks:  observability.Generation(),
	}
}

// WithHooks overrides the globally registered generation hooks.
func (b *Builder) WithHooks(h observability.GenerationHooks) *Builder {
	if h != nil {
		b.hooks = h
	}
	return b
}

// Options returns the effective options.
func (b *Builder) Options() Options { return b.opts }

// Attempts returns the number of placement attempts made by the last
// Generate call.
func (b *Builder) Attempts() int { return b.attempts }

// Generate lays out one of graphs using templates. See GenerateContext.
func (b *Builder) Generate(graphs []*roomgraph.Graph, templates []*room.Template, rng Rand) (*Registry, error) {
	return b.GenerateContext(context.Background(), graphs, templates, rng)
}

// GenerateContext lays out one of graphs using templates. ctx is handed to
// the observability hooks only; generation runs to completion or budget
// exhaustion.
//
// It fails with NO_GRAPHS_AVAILABLE when graphs is empty and with
// BUDGET_EXHAUSTED when every attempt failed. The returned error of an
// exhausted run wraps the last attempt's failure.
func (b *Builder) GenerateContext(ctx context.Context, graphs []*roomgraph.Graph, templates []*room.Template, rng Rand) (*Registry, error) {
	start := time.Now()
	b.attempts = 0
	b.hooks.OnGenerateStart(ctx, len(graphs), len(templates))

	reg, err := b.generate(ctx, graphs, templates, rng)

	rooms := 0
	if reg != nil {
		rooms = reg.Len()
	}
	b.hooks.OnGenerateComplete(ctx, rooms, b.attempts, time.Since(start), err)
	return reg, err
}

func (b *Builder) generate(ctx context.Context, graphs []*roomgraph.Graph, templates []*room.Template, rng Rand) (*Registry, error) {
	if len(graphs) == 0 {
		return nil, dferrors.New(dferrors.ErrCodeNoGraphsAvailable, "no room graphs to choose from")
	}
	if rng == nil {
		return nil, dferrors.New(dferrors.ErrCodeInvalidInput, "random source is required")
	}
	if err := b.opts.Validate(); err != nil {
		return nil, err
	}

	cat := catalog.Build(templates, b.logger)

	var lastErr error
	for pick := 1; pick <= b.opts.OuterBudget; pick++ {
		g := graphs[rng.IntN(len(graphs))]
		b.hooks.OnGraphPicked(ctx, g.ID(), pick)
		b.logger.Debug("graph picked", "graph", g.ID(), "pick", pick, "nodes", g.Len())

		for try := 1; try <= b.opts.InnerBudget; try++ {
			b.discard()
			b.attempts++

			reg, err := b.attempt(ctx, g, cat, rng)
			b.current = reg
			b.hooks.OnAttempt(ctx, g.ID(), b.attempts, err)
			if err != nil {
				lastErr = err
				b.logger.Debug("attempt failed", "graph", g.ID(), "attempt", b.attempts, "reason", err)
				continue
			}

			for _, in := range reg.Instances() {
				b.collab.OnInstancePlaced(in)
			}
			b.logger.Info("layout generated", "graph", g.ID(), "rooms", reg.Len(), "attempts", b.attempts)
			return reg, nil
		}
	}

	b.discard()
	return nil, dferrors.Wrap(dferrors.ErrCodeBudgetExhausted, lastErr,
		"no layout after %d attempts (%d graph picks x %d rebuilds)",
		b.attempts, b.opts.OuterBudget, b.opts.InnerBudget)
}

// discard tears down the previous registry.
func (b *Builder) discard() {
	if b.current == nil {
		return
	}
	for _, in := range b.current.Instances() {
		b.collab.OnAttemptDiscarded(in)
	}
	b.current = nil
}
