// AngelaMos | 2026
// entity.go

package business

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/carterperez-dev/templates/records-api/internal/resource"
)

const (
	Kind  = "business"
	Table = "businesses"
)

// Columns is the set of fields a caller may write on a business.
var Columns = []string{
	"name",
	"address",
	"city",
	"state",
	"country",
	"latitude",
	"longitude",
}

// NewSchema describes businesses under the given ownership mode.
func NewSchema(scope resource.Scope) resource.Schema {
	return resource.Schema{
		Kind:    Kind,
		Table:   Table,
		Columns: Columns,
		Scope:   scope,
	}
}

type Business struct {
	ID        string     `db:"id"`
	OwnerID   *string    `db:"owner_id"`
	Name      string     `db:"name"`
	Address   string     `db:"address"`
	City      string     `db:"city"`
	State     string     `db:"state"`
	Country   string     `db:"country"`
	Latitude  float64    `db:"latitude"`
	Longitude float64    `db:"longitude"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// Point returns the business location in orb's lng/lat order.
func (b *Business) Point() orb.Point {
	return orb.Point{b.Longitude, b.Latitude}
}

type Service = resource.Service[Business]
