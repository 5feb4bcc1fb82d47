// Package pipeline drives batches of partial resources through identifier
// mapping, merge and persistence in dependency order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ehr/transforms/internal/idmap"
	"github.com/ehr/transforms/internal/merge"
	"github.com/ehr/transforms/internal/store"
	"github.com/ehr/transforms/internal/walker"
	"github.com/ehr/transforms/pkg/fhirmodels"
)

const instrumentationName = "github.com/ehr/transforms/internal/pipeline"

// DefaultWorkers bounds the concurrency of each tier when no option is given.
const DefaultWorkers = 8

type Runner struct {
	ids     *idmap.Mapper
	store   store.Store
	engine  *merge.Engine
	workers int
	logger  zerolog.Logger
	locks   *keyLock

	tracer    trace.Tracer
	processed metric.Int64Counter
	failed    metric.Int64Counter
	created   metric.Int64Counter
	duration  metric.Float64Histogram
}

type Option func(*Runner)

func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// NewRunner wires a runner. Instruments come from the global OpenTelemetry
// providers, which are no-ops unless telemetry has been set up.
func NewRunner(ids *idmap.Mapper, st store.Store, engine *merge.Engine, logger zerolog.Logger, opts ...Option) (*Runner, error) {
	r := &Runner{
		ids:     ids,
		store:   st,
		engine:  engine,
		workers: DefaultWorkers,
		logger:  logger.With().Str("component", "pipeline").Logger(),
		locks:   newKeyLock(),
		tracer:  otel.Tracer(instrumentationName),
	}
	for _, opt := range opts {
		opt(r)
	}

	meter := otel.Meter(instrumentationName)
	var err error
	if r.processed, err = meter.Int64Counter("transforms.records.processed",
		metric.WithDescription("Records processed, by kind and outcome"),
		metric.WithUnit("{record}")); err != nil {
		return nil, fmt.Errorf("create processed counter: %w", err)
	}
	if r.failed, err = meter.Int64Counter("transforms.records.failed",
		metric.WithDescription("Records that failed to process, by kind"),
		metric.WithUnit("{record}")); err != nil {
		return nil, fmt.Errorf("create failed counter: %w", err)
	}
	if r.created, err = meter.Int64Counter("transforms.ids.created",
		metric.WithDescription("Global ids created"),
		metric.WithUnit("{id}")); err != nil {
		return nil, fmt.Errorf("create ids counter: %w", err)
	}
	if r.duration, err = meter.Float64Histogram("transforms.batch.duration",
		metric.WithDescription("Wall time of a batch run"),
		metric.WithUnit("s")); err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	return r, nil
}

// Run processes records tier by tier. Within a tier, records of different
// entities run concurrently on at most the configured number of workers and
// records of the same entity run in input order. A tier is fully drained
// before the next starts.
//
// Per-resource failures are collected in the report and the batch goes on;
// Run then returns ErrBatchFailed. A systemic failure cancels the remaining
// work and Run returns ErrBatchAborted. The report is returned in every
// case.
func (r *Runner) Run(ctx context.Context, records []Record) (*Report, error) {
	start := time.Now()
	ctx, span := r.tracer.Start(ctx, "pipeline.Run", trace.WithAttributes(attribute.Int("records", len(records))))
	defer span.End()

	batch := r.ids.NewBatch()
	w := walker.New(batch)
	t := &tally{}

	plans := make([]tierPlan, len(tiers))
	for i, rec := range records {
		if err := rec.validate(); err != nil {
			t.fail(recordError(rec, fmt.Errorf("record %d: %w", i, err)))
			continue
		}
		plans[tierOf[rec.Resource.Kind()]].add(rec)
	}

	var runErr error
	for i, p := range plans {
		if len(p.groups) == 0 {
			continue
		}
		if err := r.runTier(ctx, i, p.groups, func(ctx context.Context, rec Record) error {
			return r.apply(ctx, w, batch, rec, t)
		}); err != nil {
			runErr = err
			break
		}
	}

	rep := t.report()
	rep.Assignments = batch.Assignments()
	var created int64
	for _, a := range rep.Assignments {
		if a.Created {
			created++
		}
	}
	r.created.Add(ctx, created)
	r.duration.Record(ctx, time.Since(start).Seconds())

	lvl := zerolog.InfoLevel
	if runErr != nil || len(rep.Failures) > 0 {
		lvl = zerolog.WarnLevel
	}
	r.logger.WithLevel(lvl).Int("processed", rep.Processed).
		Int("created", rep.Created).
		Int("merged", rep.Merged).
		Int("deleted", rep.Deleted).
		Int("skipped", rep.Skipped).
		Int("failed", len(rep.Failures)).
		Int("ids_created", int(created)).
		Dur("elapsed", time.Since(start)).
		Msg("batch finished")

	if runErr != nil {
		span.RecordError(runErr)
		return rep, fmt.Errorf("%w: %w", ErrBatchAborted, runErr)
	}
	if len(rep.Failures) > 0 {
		return rep, fmt.Errorf("%w: %d of %d records", ErrBatchFailed, len(rep.Failures), rep.Processed)
	}
	return rep, nil
}

// tierPlan groups a tier's records by entity, keeping first-seen order of
// entities and input order within an entity.
type tierPlan struct {
	groups [][]Record
	index  map[string]int
}

func (p *tierPlan) add(rec Record) {
	if p.index == nil {
		p.index = make(map[string]int)
	}
	k := entityKey(rec.Scope, rec.Resource.Kind(), rec.Resource.GetID())
	if i, ok := p.index[k]; ok {
		p.groups[i] = append(p.groups[i], rec)
		return
	}
	p.index[k] = len(p.groups)
	p.groups = append(p.groups, []Record{rec})
}

func entityKey(scope string, kind fhirmodels.Kind, id string) string {
	return scope + "\x1f" + string(kind) + "\x1f" + id
}

func (r *Runner) runTier(ctx context.Context, tier int, groups [][]Record, fn func(context.Context, Record) error) error {
	ctx, span := r.tracer.Start(ctx, "pipeline.tier", trace.WithAttributes(
		attribute.Int("tier", tier),
		attribute.Int("entities", len(groups)),
	))
	defer span.End()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, group := range groups {
		group := group
		g.Go(func() error {
			for _, rec := range group {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(ctx, rec); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("tier %d: %w", tier, err)
	}
	return nil
}

// apply processes one record. It returns an error only for systemic
// failures; anything else is recorded in the tally.
func (r *Runner) apply(ctx context.Context, w *walker.Walker, batch *idmap.Batch, rec Record, t *tally) error {
	kind := rec.Resource.Kind()
	unlock := r.locks.Lock(entityKey(rec.Scope, kind, rec.Resource.GetID()))
	defer unlock()

	var (
		o   outcome
		gid string
		err error
	)
	if rec.Deleted {
		o, gid, err = r.delete(ctx, batch, rec)
	} else {
		o, gid, err = r.upsert(ctx, w, rec)
	}

	attrs := metric.WithAttributes(attribute.String("kind", string(kind)))
	if err != nil {
		re := recordError(rec, err)
		re.GlobalID = gid
		r.failed.Add(ctx, 1, attrs)
		if systemic(err) {
			r.logger.Error().Err(err).EmbedObject(re).Msg("systemic failure, aborting batch")
			t.fail(re)
			return re
		}
		r.logger.Warn().Err(err).EmbedObject(re).Msg("resource failed")
		t.fail(re)
		return nil
	}
	r.processed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", string(kind)),
		attribute.String("outcome", o.String()),
	))
	t.add(o)
	return nil
}

func (r *Runner) upsert(ctx context.Context, w *walker.Walker, rec Record) (outcome, string, error) {
	res, err := fhirmodels.Clone(rec.Resource)
	if err != nil {
		return 0, "", err
	}
	isNew, err := w.MapForward(ctx, res, rec.Scope)
	if err != nil {
		return 0, "", err
	}
	gid := res.GetID()
	key, err := store.KeyOf(rec.Scope, res)
	if err != nil {
		return 0, gid, fmt.Errorf("%w: %w", merge.ErrInvariant, err)
	}

	unlock := r.locks.Lock(key.String())
	defer unlock()

	// A false isNew only means this call did not create the id; the entity
	// may still have been referenced without ever being stored.
	var existing fhirmodels.Resource
	if !isNew {
		existing, err = r.store.GetCurrentVersion(ctx, key)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return 0, gid, err
		}
	}

	merged, err := r.engine.Merge(rec.Feed, existing, res, rec.EffectiveDate)
	if err != nil {
		return 0, gid, err
	}
	version, err := r.store.Save(ctx, key, merged)
	if err != nil {
		return 0, gid, err
	}
	r.logger.Debug().Str("key", key.String()).Int("version", version).Bool("merged", existing != nil).Msg("saved")
	if existing == nil {
		return outcomeCreated, gid, nil
	}
	return outcomeMerged, gid, nil
}

// delete never creates an id: deleting an entity that was never seen is a
// no-op.
func (r *Runner) delete(ctx context.Context, batch *idmap.Batch, rec Record) (outcome, string, error) {
	kind := rec.Resource.Kind()
	id, ok, err := batch.GetExisting(ctx, idmap.Key{
		Scope:        rec.Scope,
		ResourceType: string(kind),
		LocalID:      rec.Resource.GetID(),
	})
	if err != nil {
		return 0, "", err
	}
	if !ok {
		return outcomeSkipped, "", nil
	}
	key := store.Key{Scope: rec.Scope, Kind: kind, ID: id}
	unlock := r.locks.Lock(key.String())
	defer unlock()

	if err := r.store.Delete(ctx, key); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return outcomeSkipped, id.String(), nil
		}
		return 0, id.String(), err
	}
	return outcomeDeleted, id.String(), nil
}

func systemic(err error) bool {
	return errors.Is(err, idmap.ErrUnavailable) ||
		errors.Is(err, store.ErrUnavailable) ||
		errors.Is(err, merge.ErrInvariant) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func recordError(rec Record, err error) *ResourceError {
	re := &ResourceError{Scope: rec.Scope, Feed: rec.Feed, Err: err}
	if rec.Resource != nil {
		re.Kind = rec.Resource.Kind()
		re.LocalID = rec.Resource.GetID()
	}
	return re
}

func (o outcome) String() string {
	switch o {
	case outcomeCreated:
		return "created"
	case outcomeMerged:
		return "merged"
	case outcomeDeleted:
		return "deleted"
	default:
		return "skipped"
	}
}
