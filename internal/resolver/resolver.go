// Package resolver walks declared chains of CRM relationships to turn a
// starting record into a leaf value, typically an email address.
package resolver

//go:generate mockgen -source=resolver.go -destination=mocks/resolver_mock.go -package=mocks RecordStore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"onsightnow/internal/platform/logger"
	"onsightnow/internal/platform/metrics"
	"onsightnow/internal/platform/tracer"
	"onsightnow/internal/recordstore"
)

// RecordStore retrieves one record with the given select/expand options.
type RecordStore interface {
	Retrieve(ctx context.Context, entityType, id string, q recordstore.Query) (recordstore.Record, error)
}

// Resolver walks resolution chains against a RecordStore. Steps run strictly
// one after another; each lookup completes before the next starts.
type Resolver struct {
	store   RecordStore
	logger  *slog.Logger
	tracer  tracer.Tracer
	metrics *metrics.Metrics
}

// Option configures the Resolver.
type Option func(*Resolver)

func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

func WithTracer(t tracer.Tracer) Option {
	return func(r *Resolver) { r.tracer = t }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// New creates a Resolver over store.
func New(store RecordStore, opts ...Option) *Resolver {
	r := &Resolver{
		store:  store,
		logger: logger.Discard(),
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve applies chain to startID and returns the last step's output. With
// an expand step whose collection is empty, that output is the fetched record.
func (r *Resolver) Resolve(ctx context.Context, chain Chain, startID string) (any, error) {
	value, _, err := r.resolve(ctx, chain, startID)
	return value, err
}

// ResolveEmail resolves the email address reachable from (entityType, id).
// A leaf that is not a non-empty string is a ResolutionFailure at the last step.
func (r *Resolver) ResolveEmail(ctx context.Context, entityType, id string, target CallTarget) (string, error) {
	chain, err := ChainFor(entityType, target)
	if err != nil {
		return "", err
	}
	value, lastID, err := r.resolve(ctx, chain, id)
	if err != nil {
		return "", err
	}
	email, ok := value.(string)
	if !ok || email == "" {
		last := len(chain) - 1
		return "", newFailure(last, chain[last].EntityType, lastID, nil,
			fmt.Sprintf("%s has no email address", chain[last].EntityType))
	}
	return email, nil
}

func (r *Resolver) resolve(ctx context.Context, chain Chain, startID string) (value any, lastID string, err error) {
	if err := chain.Validate(); err != nil {
		return nil, "", err
	}

	start := time.Now()
	ctx, span := r.tracer.Start(ctx, tracer.SpanResolve,
		tracer.String(tracer.AttrEntityType, chain[0].EntityType),
		tracer.Int(tracer.AttrChainLength, len(chain)),
	)
	defer func() {
		span.End(err)
		r.metrics.ObserveResolution(time.Since(start))
	}()

	value = startID
	for i, step := range chain {
		id, ok := value.(string)
		if !ok || id == "" {
			err = newFailure(i, step.EntityType, "", nil,
				fmt.Sprintf("step %d produced no identifier for %s", i-1, step.EntityType))
			return nil, "", err
		}
		lastID = id
		value, err = r.step(ctx, i, step, id)
		if err != nil {
			return nil, "", err
		}
	}
	return value, lastID, nil
}

func (r *Resolver) step(ctx context.Context, i int, step Step, id string) (value any, err error) {
	ctx, span := r.tracer.Start(ctx, tracer.SpanResolveStep,
		tracer.Int(tracer.AttrStep, i),
		tracer.String(tracer.AttrEntityType, step.EntityType),
	)
	defer func() { span.End(err) }()

	q := step.Selector.query()
	rec, err := r.store.Retrieve(ctx, step.EntityType, id, q)
	if err != nil {
		r.metrics.IncrementResolverStep(step.EntityType, metrics.OutcomeFailure)
		r.logger.WarnContext(ctx, "record lookup failed",
			"step", i,
			"entity_type", step.EntityType,
			"id", id,
			"error", err,
		)
		return nil, newFailure(i, step.EntityType, id, err,
			fmt.Sprintf("retrieve %s(%s) failed", step.EntityType, id))
	}
	if rec == nil {
		rec = recordstore.Record{}
	}

	value, fallback := step.Selector.extract(rec, q)
	span.SetAttributes(tracer.Bool(tracer.AttrFallback, fallback))
	if fallback {
		r.metrics.IncrementResolverStep(step.EntityType, metrics.OutcomeFallback)
		r.logger.DebugContext(ctx, "related collection empty, passing record through",
			"step", i,
			"entity_type", step.EntityType,
			"options", q.Options(),
		)
		return value, nil
	}
	r.metrics.IncrementResolverStep(step.EntityType, metrics.OutcomeSuccess)
	return value, nil
}
