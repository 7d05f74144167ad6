// AngelaMos | 2026
// schema.go

package resource

import (
	"fmt"
	"slices"
	"strings"

	"github.com/carterperez-dev/templates/records-api/internal/core"
)

type Scope string

const (
	// ScopeGlobal makes every live row visible to every caller.
	ScopeGlobal Scope = "global"
	// ScopeOwner restricts each row to the account that created it.
	ScopeOwner Scope = "owner"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case ScopeGlobal, ScopeOwner:
		return Scope(s), nil
	}
	return "", fmt.Errorf("unknown resource scope %q: %w", s, core.ErrInvalidInput)
}

const (
	colID        = "id"
	colOwnerID   = "owner_id"
	colCreatedAt = "created_at"
	colUpdatedAt = "updated_at"
	colDeletedAt = "deleted_at"
)

// Schema describes one resource kind. Columns is the allow-list of domain
// columns a caller may set; system columns are managed by the engine.
type Schema struct {
	Kind    string
	Table   string
	Columns []string
	Scope   Scope
}

func (s Schema) Scoped() bool {
	return s.Scope == ScopeOwner
}

func (s Schema) allows(col string) bool {
	return slices.Contains(s.Columns, col)
}

func (s Schema) checkFields(fields Fields) error {
	for col := range fields {
		if !s.allows(col) {
			return fmt.Errorf(
				"%s: unknown field %q: %w",
				s.Kind,
				col,
				core.ErrInvalidInput,
			)
		}
	}
	return nil
}

// filterable reports whether col may appear in a WHERE clause.
func (s Schema) filterable(col string) bool {
	return col == colID || col == colOwnerID || s.allows(col)
}

func (s Schema) selectList() string {
	cols := make([]string, 0, len(s.Columns)+5)
	cols = append(cols, colID, colOwnerID)
	cols = append(cols, s.Columns...)
	cols = append(cols, colCreatedAt, colUpdatedAt, colDeletedAt)
	return strings.Join(cols, ", ")
}
