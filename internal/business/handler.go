// AngelaMos | 2026
// handler.go

package business

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/carterperez-dev/templates/records-api/internal/core"
	"github.com/carterperez-dev/templates/records-api/internal/middleware"
	"github.com/carterperez-dev/templates/records-api/internal/resource"
)

type Handler struct {
	service         *Service
	validator       *validator.Validate
	defaultPageSize int
}

func NewHandler(service *Service, defaultPageSize int) *Handler {
	return &Handler{
		service:         service,
		validator:       core.NewValidator(),
		defaultPageSize: defaultPageSize,
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/businesses", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Patch("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// Create answers 201 for a new business and for an identical live one.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.Create(
		r.Context(),
		middleware.GetUserID(r.Context()),
		req.Fields(),
	)
	if err != nil {
		resource.WriteError(w, r, Kind, err)
		return
	}

	core.Created(w, ToBusinessResponse(b))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	req, err := resource.ParsePageRequest(r, h.defaultPageSize)
	if err != nil {
		core.BadRequest(w, "page and page_size must be integers")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	page, err := h.service.List(r.Context(), middleware.GetUserID(r.Context()), req)
	if err != nil {
		resource.WriteError(w, r, Kind, err)
		return
	}

	core.OK(w, resource.MapPage(page, ToBusinessResponse))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.service.Get(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		resource.WriteError(w, r, Kind, err)
		return
	}

	core.OK(w, ToBusinessResponse(b))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.Update(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
		req.Fields(),
	)
	if err != nil {
		resource.WriteError(w, r, Kind, err)
		return
	}

	core.OK(w, ToBusinessResponse(b))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.service.Remove(
		r.Context(),
		middleware.GetUserID(r.Context()),
		chi.URLParam(r, "id"),
	)
	if err != nil {
		resource.WriteError(w, r, Kind, err)
		return
	}

	core.NoContent(w)
}
