// AngelaMos | 2026
// http.go

package resource

import (
	"errors"
	"net/http"

	"github.com/carterperez-dev/templates/records-api/internal/core"
)

// WriteError maps engine errors onto the response envelope. Anything that is
// not a client error is logged and reported as a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, kind string, err error) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, kind)
	case errors.Is(err, core.ErrInvalidInput):
		core.BadRequest(w, "invalid "+kind+" request")
	default:
		core.InternalServerError(w, r, err)
	}
}
