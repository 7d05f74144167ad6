// AngelaMos | 2026
// repository.go

package resource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/carterperez-dev/templates/records-api/internal/core"
)

// Store is the persistence contract the lifecycle engine runs against.
type Store[T any] interface {
	Insert(ctx context.Context, id string, fields Fields) (*T, error)
	FindOne(ctx context.Context, f Filter) (*T, error)
	FindByID(ctx context.Context, id string, f Filter) (*T, error)
	UpdateByID(ctx context.Context, id string, f Filter, fields Fields) (*T, error)
	SoftDeleteByID(ctx context.Context, id string, f Filter) (bool, error)
	Count(ctx context.Context, f Filter) (int, error)
	List(ctx context.Context, f Filter, limit, offset int) ([]T, error)
	Snapshot(ctx context.Context, fn func(Store[T]) error) error
}

// Repository is the PostgreSQL Store. T must carry db tags for every column
// in the schema's select list.
type Repository[T any] struct {
	db     core.DBTX
	conn   *sqlx.DB
	schema Schema
}

func NewRepository[T any](db *sqlx.DB, schema Schema) *Repository[T] {
	return &Repository[T]{db: db, conn: db, schema: schema}
}

func (r *Repository[T]) Insert(
	ctx context.Context,
	id string,
	fields Fields,
) (*T, error) {
	cols := []string{colID}
	placeholders := []string{"$1"}
	args := []any{id}

	for _, col := range fields.sortedKeys() {
		if col != colOwnerID && !r.schema.allows(col) {
			return nil, fmt.Errorf(
				"insert %s: unknown field %q: %w",
				r.schema.Kind,
				col,
				core.ErrInvalidInput,
			)
		}
		args = append(args, fields[col])
		cols = append(cols, col)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
		r.schema.Table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		r.schema.selectList(),
	)

	var row T
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if core.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("insert %s: %w", r.schema.Kind, core.ErrDuplicateKey)
		}
		return nil, fmt.Errorf("insert %s: %w", r.schema.Kind, err)
	}

	return &row, nil
}

func (r *Repository[T]) FindOne(ctx context.Context, f Filter) (*T, error) {
	where, args, err := r.schema.whereClause(f, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s ORDER BY created_at ASC, id ASC LIMIT 1`,
		r.schema.selectList(),
		r.schema.Table,
		where,
	)

	var row T
	err = r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find %s: %w", r.schema.Kind, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", r.schema.Kind, err)
	}

	return &row, nil
}

func (r *Repository[T]) FindByID(
	ctx context.Context,
	id string,
	f Filter,
) (*T, error) {
	return r.FindOne(ctx, f.with(colID, id))
}

// UpdateByID writes fields only while the row still matches f, so a row
// deleted or reassigned after the caller's check is reported as not found.
func (r *Repository[T]) UpdateByID(
	ctx context.Context,
	id string,
	f Filter,
	fields Fields,
) (*T, error) {
	if err := r.schema.checkFields(fields); err != nil {
		return nil, err
	}

	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+len(f.Equal)+1)

	for _, col := range fields.sortedKeys() {
		args = append(args, fields[col])
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	sets = append(sets, colUpdatedAt+" = NOW()")

	where, whereArgs, err := r.schema.whereClause(f.with(colID, id), len(args)+1)
	if err != nil {
		return nil, err
	}
	args = append(args, whereArgs...)

	query := fmt.Sprintf(
		`UPDATE %s SET %s WHERE %s RETURNING %s`,
		r.schema.Table,
		strings.Join(sets, ", "),
		where,
		r.schema.selectList(),
	)

	var row T
	err = r.db.GetContext(ctx, &row, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update %s: %w", r.schema.Kind, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update %s: %w", r.schema.Kind, err)
	}

	return &row, nil
}

// SoftDeleteByID stamps deleted_at on a live row. It reports whether a row
// was stamped; an already deleted row keeps its original timestamp.
func (r *Repository[T]) SoftDeleteByID(
	ctx context.Context,
	id string,
	f Filter,
) (bool, error) {
	f = f.with(colID, id)
	f.IncludeDeleted = false

	where, args, err := r.schema.whereClause(f, 1)
	if err != nil {
		return false, err
	}

	query := fmt.Sprintf(
		`UPDATE %s SET deleted_at = NOW(), updated_at = NOW() WHERE %s`,
		r.schema.Table,
		where,
	)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", r.schema.Kind, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete %s: %w", r.schema.Kind, err)
	}

	return rows > 0, nil
}

func (r *Repository[T]) Count(ctx context.Context, f Filter) (int, error) {
	where, args, err := r.schema.whereClause(f, 1)
	if err != nil {
		return 0, err
	}

	query := fmt.Sprintf(
		`SELECT COUNT(*) FROM %s WHERE %s`,
		r.schema.Table,
		where,
	)

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", r.schema.Kind, err)
	}

	return total, nil
}

func (r *Repository[T]) List(
	ctx context.Context,
	f Filter,
	limit, offset int,
) ([]T, error) {
	where, args, err := r.schema.whereClause(f, 1)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM %s WHERE %s ORDER BY created_at ASC, id ASC LIMIT $%d OFFSET $%d`,
		r.schema.selectList(),
		r.schema.Table,
		where,
		len(args)+1,
		len(args)+2,
	)
	args = append(args, limit, offset)

	rows := make([]T, 0, limit)
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.schema.Kind, err)
	}

	return rows, nil
}

// Snapshot runs fn against a read-only repeatable-read transaction so every
// read inside it sees the same data. Inside an existing transaction fn runs
// on that transaction.
func (r *Repository[T]) Snapshot(
	ctx context.Context,
	fn func(Store[T]) error,
) error {
	if r.conn == nil {
		return fn(r)
	}

	return core.InTxWithOptions(ctx, r.conn, core.SnapshotTxOptions, func(tx *sqlx.Tx) error {
		return fn(&Repository[T]{db: tx, schema: r.schema})
	})
}
