// AngelaMos | 2026
// filter.go

package resource

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"github.com/carterperez-dev/templates/records-api/internal/core"
)

// Fields maps column names to values. A nil value means SQL NULL.
type Fields map[string]any

func (f Fields) clone() Fields {
	out := make(Fields, len(f))
	maps.Copy(out, f)
	return out
}

func (f Fields) sortedKeys() []string {
	return slices.Sorted(maps.Keys(f))
}

// Filter is a conjunction of equality terms. Soft-deleted rows are excluded
// unless IncludeDeleted is set.
type Filter struct {
	Equal          Fields
	IncludeDeleted bool
}

func (f Filter) with(col string, v any) Filter {
	eq := f.Equal.clone()
	eq[col] = v
	return Filter{Equal: eq, IncludeDeleted: f.IncludeDeleted}
}

// whereClause renders f with placeholders numbered from start. Terms are
// emitted in column order so the same filter always yields the same SQL.
func (s Schema) whereClause(f Filter, start int) (string, []any, error) {
	conds := make([]string, 0, len(f.Equal)+1)
	args := make([]any, 0, len(f.Equal))
	argIdx := start

	for _, col := range f.Equal.sortedKeys() {
		if !s.filterable(col) {
			return "", nil, fmt.Errorf(
				"%s: unknown filter column %q: %w",
				s.Kind,
				col,
				core.ErrInvalidInput,
			)
		}

		v := f.Equal[col]
		if isNull(v) {
			conds = append(conds, col+" IS NULL")
			continue
		}

		conds = append(conds, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, v)
		argIdx++
	}

	if !f.IncludeDeleted {
		conds = append(conds, colDeletedAt+" IS NULL")
	}

	if len(conds) == 0 {
		return "TRUE", args, nil
	}

	return strings.Join(conds, " AND "), args, nil
}

func isNull(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
