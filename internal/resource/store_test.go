// AngelaMos | 2026
// store_test.go

package resource

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"time"

	"github.com/carterperez-dev/templates/records-api/internal/core"
)

type widget struct {
	ID        string     `db:"id"`
	OwnerID   *string    `db:"owner_id"`
	Name      string     `db:"name"`
	Color     *string    `db:"color"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func widgetSchema(scope Scope) Schema {
	return Schema{
		Kind:    "widget",
		Table:   "widgets",
		Columns: []string{"name", "color"},
		Scope:   scope,
	}
}

type memRow struct {
	id      string
	fields  Fields
	created time.Time
	updated time.Time
	deleted *time.Time
}

func (r *memRow) value(col string) any {
	if col == colID {
		return r.id
	}
	return r.fields[col]
}

func (r *memRow) matches(f Filter) bool {
	if !f.IncludeDeleted && r.deleted != nil {
		return false
	}
	for col, want := range f.Equal {
		got := r.value(col)
		if isNull(want) {
			if !isNull(got) {
				return false
			}
			continue
		}
		if !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func (r *memRow) widget() widget {
	w := widget{
		ID:        r.id,
		CreatedAt: r.created,
		UpdatedAt: r.updated,
		DeletedAt: r.deleted,
	}
	w.Name, _ = r.fields["name"].(string)
	if c, ok := r.fields["color"].(string); ok {
		w.Color = &c
	}
	if o, ok := r.fields[colOwnerID].(string); ok {
		w.OwnerID = &o
	}
	return w
}

// memStore is an in-memory Store with the same filter semantics as the
// PostgreSQL repository.
type memStore struct {
	mu      sync.Mutex
	rows    []*memRow
	tick    int
	inserts int
}

func (m *memStore) now() time.Time {
	m.tick++
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(m.tick) * time.Millisecond)
}

func (m *memStore) Insert(_ context.Context, id string, fields Fields) (*widget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.rows {
		if r.id == id {
			return nil, fmt.Errorf("insert: %w", core.ErrDuplicateKey)
		}
	}

	now := m.now()
	row := &memRow{id: id, fields: fields.clone(), created: now, updated: now}
	m.rows = append(m.rows, row)
	m.inserts++

	w := row.widget()
	return &w, nil
}

func (m *memStore) FindOne(_ context.Context, f Filter) (*widget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.sorted() {
		if r.matches(f) {
			w := r.widget()
			return &w, nil
		}
	}
	return nil, fmt.Errorf("find: %w", core.ErrNotFound)
}

func (m *memStore) FindByID(ctx context.Context, id string, f Filter) (*widget, error) {
	return m.FindOne(ctx, f.with(colID, id))
}

func (m *memStore) UpdateByID(
	_ context.Context,
	id string,
	f Filter,
	fields Fields,
) (*widget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f = f.with(colID, id)
	for _, r := range m.rows {
		if !r.matches(f) {
			continue
		}
		for col, v := range fields {
			r.fields[col] = v
		}
		r.updated = m.now()
		w := r.widget()
		return &w, nil
	}
	return nil, fmt.Errorf("update: %w", core.ErrNotFound)
}

func (m *memStore) SoftDeleteByID(_ context.Context, id string, f Filter) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f = f.with(colID, id)
	f.IncludeDeleted = false
	for _, r := range m.rows {
		if r.matches(f) {
			now := m.now()
			r.deleted = &now
			r.updated = now
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Count(_ context.Context, f Filter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range m.rows {
		if r.matches(f) {
			n++
		}
	}
	return n, nil
}

func (m *memStore) List(_ context.Context, f Filter, limit, offset int) ([]widget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var matched []widget
	for _, r := range m.sorted() {
		if r.matches(f) {
			matched = append(matched, r.widget())
		}
	}

	if offset >= len(matched) {
		return []widget{}, nil
	}
	end := min(offset+limit, len(matched))
	return matched[offset:end], nil
}

// Snapshot runs fn on a frozen copy of the rows.
func (m *memStore) Snapshot(_ context.Context, fn func(Store[widget]) error) error {
	m.mu.Lock()
	snap := &memStore{tick: m.tick}
	for _, r := range m.rows {
		cp := *r
		cp.fields = r.fields.clone()
		snap.rows = append(snap.rows, &cp)
	}
	m.mu.Unlock()

	return fn(snap)
}

func (m *memStore) sorted() []*memRow {
	rows := slices.Clone(m.rows)
	slices.SortStableFunc(rows, func(a, b *memRow) int {
		if c := a.created.Compare(b.created); c != 0 {
			return c
		}
		switch {
		case a.id < b.id:
			return -1
		case a.id > b.id:
			return 1
		}
		return 0
	})
	return rows
}

func (m *memStore) liveRows() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, r := range m.rows {
		if r.deleted == nil {
			n++
		}
	}
	return n
}

var _ Store[widget] = (*memStore)(nil)
var _ Store[widget] = (*Repository[widget])(nil)
