// AngelaMos | 2026
// service.go

package resource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/carterperez-dev/templates/records-api/internal/core"
)

// Service is the lifecycle engine for one resource kind: idempotent create,
// paginated list, fetch, conditional update and idempotent soft delete.
// In owner scope every operation is confined to the caller's rows and a
// foreign row is reported exactly like a missing one.
type Service[T any] struct {
	schema Schema
	store  Store[T]
	lock   Locker
	logger *slog.Logger
}

// NewService builds an engine over store. lock may be nil, in which case
// concurrent identical creates are not serialized.
func NewService[T any](
	schema Schema,
	store Store[T],
	lock Locker,
	logger *slog.Logger,
) *Service[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service[T]{
		schema: schema,
		store:  store,
		lock:   lock,
		logger: logger.With("resource", schema.Kind),
	}
}

func (s *Service[T]) Schema() Schema {
	return s.schema
}

// Create returns the live row whose content equals fields, inserting one
// only when none exists.
func (s *Service[T]) Create(
	ctx context.Context,
	ownerID string,
	fields Fields,
) (*T, error) {
	ctx, span := core.StartSpan(ctx, s.schema.Kind+".create")
	defer span.End()

	if len(fields) == 0 {
		return nil, fmt.Errorf("create %s: no fields: %w", s.schema.Kind, core.ErrInvalidInput)
	}
	if err := s.schema.checkFields(fields); err != nil {
		return nil, err
	}

	filter, err := s.scopeFilter(ownerID)
	if err != nil {
		return nil, err
	}
	for col, v := range fields {
		filter.Equal[col] = v
	}

	if s.lock != nil {
		release := s.acquire(ctx, ownerID, fields)
		defer release()
	}

	existing, err := s.store.FindOne(ctx, filter)
	if err == nil {
		core.AddSpanEvent(ctx, "idempotent_hit")
		s.logger.DebugContext(ctx, "create matched existing row")
		return existing, nil
	}
	if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("create %s: %w", s.schema.Kind, err)
	}

	insert := fields.clone()
	if s.schema.Scoped() {
		insert[colOwnerID] = filter.Equal[colOwnerID]
	}

	row, err := s.store.Insert(ctx, uuid.NewString(), insert)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", s.schema.Kind, err)
	}

	return row, nil
}

func (s *Service[T]) List(
	ctx context.Context,
	ownerID string,
	req PageRequest,
) (*Page[T], error) {
	ctx, span := core.StartSpan(ctx, s.schema.Kind+".list",
		attribute.Int("page", req.Page),
		attribute.Int("page_size", req.PageSize),
	)
	defer span.End()

	if err := req.validate(); err != nil {
		return nil, err
	}

	filter, err := s.scopeFilter(ownerID)
	if err != nil {
		return nil, err
	}

	page := &Page[T]{Page: req.Page, PageSize: req.PageSize}

	err = s.store.Snapshot(ctx, func(tx Store[T]) error {
		total, err := tx.Count(ctx, filter)
		if err != nil {
			return err
		}

		rows, err := tx.List(ctx, filter, req.PageSize, req.offset())
		if err != nil {
			return err
		}

		page.Total = total
		page.Results = rows
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.schema.Kind, err)
	}

	if page.Results == nil {
		page.Results = []T{}
	}

	return page, nil
}

func (s *Service[T]) Get(
	ctx context.Context,
	ownerID, id string,
) (*T, error) {
	ctx, span := core.StartSpan(ctx, s.schema.Kind+".get")
	defer span.End()

	id, filter, err := s.targetFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	row, err := s.store.FindByID(ctx, id, filter)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.schema.Kind, err)
	}

	return row, nil
}

// Update applies only the provided fields. The write repeats the liveness
// and ownership conditions of the pre-check, so it cannot resurrect a row
// that was deleted in between.
func (s *Service[T]) Update(
	ctx context.Context,
	ownerID, id string,
	fields Fields,
) (*T, error) {
	ctx, span := core.StartSpan(ctx, s.schema.Kind+".update")
	defer span.End()

	if err := s.schema.checkFields(fields); err != nil {
		return nil, err
	}

	id, filter, err := s.targetFilter(ownerID, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.store.FindByID(ctx, id, filter); err != nil {
		return nil, fmt.Errorf("update %s: %w", s.schema.Kind, err)
	}

	row, err := s.store.UpdateByID(ctx, id, filter, fields)
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", s.schema.Kind, err)
	}

	return row, nil
}

// Remove soft-deletes a live row. Removing a missing, foreign or already
// deleted row succeeds without touching it.
func (s *Service[T]) Remove(
	ctx context.Context,
	ownerID, id string,
) error {
	ctx, span := core.StartSpan(ctx, s.schema.Kind+".remove")
	defer span.End()

	id, filter, err := s.targetFilter(ownerID, id)
	if err != nil {
		return err
	}

	deleted, err := s.store.SoftDeleteByID(ctx, id, filter)
	if err != nil {
		return fmt.Errorf("remove %s: %w", s.schema.Kind, err)
	}

	if !deleted {
		s.logger.DebugContext(ctx, "remove was a no-op", "id", id)
	}

	return nil
}

func (s *Service[T]) scopeFilter(ownerID string) (Filter, error) {
	f := Filter{Equal: Fields{}}
	if !s.schema.Scoped() {
		return f, nil
	}

	owner, err := uuid.Parse(ownerID)
	if err != nil {
		return f, fmt.Errorf("%s: invalid owner id: %w", s.schema.Kind, core.ErrInvalidInput)
	}

	f.Equal[colOwnerID] = owner.String()
	return f, nil
}

func (s *Service[T]) targetFilter(ownerID, id string) (string, Filter, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", Filter{}, fmt.Errorf("%s: invalid id: %w", s.schema.Kind, core.ErrInvalidInput)
	}

	f, err := s.scopeFilter(ownerID)
	if err != nil {
		return "", Filter{}, err
	}

	return parsed.String(), f, nil
}

// acquire takes the create lock for this content. Lock failures are logged
// and the create proceeds unserialized.
func (s *Service[T]) acquire(
	ctx context.Context,
	ownerID string,
	fields Fields,
) func() {
	noop := func() {}

	owner := ""
	if s.schema.Scoped() {
		owner = ownerID
	}

	key, err := fingerprint(s.schema.Kind, owner, fields)
	if err != nil {
		s.logger.WarnContext(ctx, "create lock skipped", "error", err)
		return noop
	}

	release, err := s.lock.Acquire(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "create lock unavailable", "error", err)
		return noop
	}

	return release
}
