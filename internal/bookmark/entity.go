// AngelaMos | 2026
// entity.go

package bookmark

import (
	"time"

	"github.com/carterperez-dev/templates/records-api/internal/resource"
)

const (
	Kind  = "bookmark"
	Table = "bookmarks"
)

var Columns = []string{"title", "description", "link"}

// Schema is fixed: bookmarks always belong to the account that created them.
var Schema = resource.Schema{
	Kind:    Kind,
	Table:   Table,
	Columns: Columns,
	Scope:   resource.ScopeOwner,
}

type Bookmark struct {
	ID          string     `db:"id"`
	OwnerID     string     `db:"owner_id"`
	Title       string     `db:"title"`
	Description *string    `db:"description"`
	Link        string     `db:"link"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	DeletedAt   *time.Time `db:"deleted_at"`
}

type Service = resource.Service[Bookmark]
