package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/ehr/transforms/internal/store"
	"github.com/ehr/transforms/internal/walker"
	"github.com/ehr/transforms/pkg/fhirmodels"
)

// Remap rewrites references inside stored resources. Each target is a
// global reference such as "Encounter/<uuid>"; dict maps old reference
// strings to their replacements. Targets are loaded, remapped and saved
// concurrently. Failures follow the same rules as Run.
func (r *Runner) Remap(ctx context.Context, scope string, targets []string, dict map[string]string) (*Report, error) {
	ctx, span := r.tracer.Start(ctx, "pipeline.Remap", trace.WithAttributes(
		attribute.Int("targets", len(targets)),
		attribute.Int("dictionary", len(dict)),
	))
	defer span.End()

	w := walker.New(nil)
	t := &tally{}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)
	for _, target := range targets {
		target := target
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			key, err := parseTarget(scope, target)
			if err != nil {
				t.fail(&ResourceError{Scope: scope, Feed: "remap", GlobalID: target, Err: err})
				return nil
			}
			o, err := r.remapOne(gctx, w, key, dict)
			if err != nil {
				re := &ResourceError{Scope: scope, Feed: "remap", Kind: key.Kind, GlobalID: key.ID.String(), Err: err}
				if systemic(err) {
					r.logger.Error().Err(err).EmbedObject(re).Msg("systemic failure, aborting remap")
					t.fail(re)
					return re
				}
				r.logger.Warn().Err(err).EmbedObject(re).Msg("remap failed")
				t.fail(re)
				return nil
			}
			t.add(o)
			return nil
		})
	}
	err := g.Wait()
	rep := t.report()

	r.logger.Info().
		Str("scope", scope).
		Int("remapped", rep.Merged).
		Int("skipped", rep.Skipped).
		Int("failed", len(rep.Failures)).
		Msg("remap finished")

	if err != nil {
		span.RecordError(err)
		return rep, fmt.Errorf("%w: %w", ErrBatchAborted, err)
	}
	if len(rep.Failures) > 0 {
		return rep, fmt.Errorf("%w: %d of %d targets", ErrBatchFailed, len(rep.Failures), rep.Processed)
	}
	return rep, nil
}

func (r *Runner) remapOne(ctx context.Context, w *walker.Walker, key store.Key, dict map[string]string) (outcome, error) {
	unlock := r.locks.Lock(key.String())
	defer unlock()

	res, err := r.store.GetCurrentVersion(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return outcomeSkipped, nil
	}
	if err != nil {
		return 0, err
	}
	before, err := fhirmodels.Marshal(res)
	if err != nil {
		return 0, err
	}
	if err := w.Remap(ctx, res, dict); err != nil {
		return 0, err
	}
	after, err := fhirmodels.Marshal(res)
	if err != nil {
		return 0, err
	}
	if bytes.Equal(before, after) {
		return outcomeSkipped, nil
	}
	if _, err := r.store.Save(ctx, key, res); err != nil {
		return 0, err
	}
	return outcomeMerged, nil
}

func parseTarget(scope, target string) (store.Key, error) {
	kind, id, err := fhirmodels.ParseReference(target)
	if err != nil {
		return store.Key{}, err
	}
	if _, err := fhirmodels.ParseKind(string(kind)); err != nil {
		return store.Key{}, err
	}
	gid, err := uuid.Parse(id)
	if err != nil {
		return store.Key{}, fmt.Errorf("target %q: %w", target, fhirmodels.ErrInvalidReference)
	}
	return store.Key{Scope: scope, Kind: kind, ID: gid}, nil
}
