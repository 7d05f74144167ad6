// AngelaMos | 2026
// dto.go

package bookmark

import (
	"time"

	"github.com/carterperez-dev/templates/records-api/internal/core"
	"github.com/carterperez-dev/templates/records-api/internal/resource"
)

type CreateBookmarkRequest struct {
	Title       string  `json:"title"       validate:"required,min=1,max=255"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	Link        string  `json:"link"        validate:"required,url,max=2048"`
}

// Fields maps an absent description to NULL so an identical request without
// one matches the stored row.
func (r CreateBookmarkRequest) Fields() resource.Fields {
	f := resource.Fields{
		"title":       r.Title,
		"description": nil,
		"link":        r.Link,
	}
	if r.Description != nil {
		f["description"] = *r.Description
	}
	return f
}

type UpdateBookmarkRequest struct {
	Title       *string             `json:"title"       validate:"omitempty,min=1,max=255"`
	Description core.OptionalString `json:"description" validate:"omitempty,max=2000"`
	Link        *string             `json:"link"        validate:"omitempty,url,max=2048"`
}

// Fields holds the attributes present in the body. An explicit null
// description clears it.
func (r UpdateBookmarkRequest) Fields() resource.Fields {
	f := resource.Fields{}
	if r.Title != nil {
		f["title"] = *r.Title
	}
	if r.Description.Set {
		if r.Description.Value == nil {
			f["description"] = nil
		} else {
			f["description"] = *r.Description.Value
		}
	}
	if r.Link != nil {
		f["link"] = *r.Link
	}
	return f
}

type BookmarkResponse struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Link        string    `json:"link"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToBookmarkResponse(b *Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		Title:       b.Title,
		Description: b.Description,
		Link:        b.Link,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}
