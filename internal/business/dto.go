// AngelaMos | 2026
// dto.go

package business

import (
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/carterperez-dev/templates/records-api/internal/resource"
)

type CreateBusinessRequest struct {
	Name      string   `json:"name"      validate:"required,min=1,max=255"`
	Address   string   `json:"address"   validate:"required,min=1,max=500"`
	City      string   `json:"city"      validate:"required,min=1,max=100"`
	State     string   `json:"state"     validate:"required,min=1,max=100"`
	Country   string   `json:"country"   validate:"required,min=1,max=100"`
	Latitude  *float64 `json:"latitude"  validate:"required,latitude"`
	Longitude *float64 `json:"longitude" validate:"required,longitude"`
}

func (r CreateBusinessRequest) Fields() resource.Fields {
	return resource.Fields{
		"name":      r.Name,
		"address":   r.Address,
		"city":      r.City,
		"state":     r.State,
		"country":   r.Country,
		"latitude":  *r.Latitude,
		"longitude": *r.Longitude,
	}
}

type UpdateBusinessRequest struct {
	Name      *string  `json:"name"      validate:"omitempty,min=1,max=255"`
	Address   *string  `json:"address"   validate:"omitempty,min=1,max=500"`
	City      *string  `json:"city"      validate:"omitempty,min=1,max=100"`
	State     *string  `json:"state"     validate:"omitempty,min=1,max=100"`
	Country   *string  `json:"country"   validate:"omitempty,min=1,max=100"`
	Latitude  *float64 `json:"latitude"  validate:"omitempty,latitude"`
	Longitude *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// Fields holds only the attributes present in the request body.
func (r UpdateBusinessRequest) Fields() resource.Fields {
	f := resource.Fields{}
	if r.Name != nil {
		f["name"] = *r.Name
	}
	if r.Address != nil {
		f["address"] = *r.Address
	}
	if r.City != nil {
		f["city"] = *r.City
	}
	if r.State != nil {
		f["state"] = *r.State
	}
	if r.Country != nil {
		f["country"] = *r.Country
	}
	if r.Latitude != nil {
		f["latitude"] = *r.Latitude
	}
	if r.Longitude != nil {
		f["longitude"] = *r.Longitude
	}
	return f
}

type BusinessResponse struct {
	ID        string            `json:"id"`
	OwnerID   *string           `json:"owner_id,omitempty"`
	Name      string            `json:"name"`
	Address   string            `json:"address"`
	City      string            `json:"city"`
	State     string            `json:"state"`
	Country   string            `json:"country"`
	Latitude  float64           `json:"latitude"`
	Longitude float64           `json:"longitude"`
	Location  *geojson.Geometry `json:"location"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func ToBusinessResponse(b *Business) BusinessResponse {
	return BusinessResponse{
		ID:        b.ID,
		OwnerID:   b.OwnerID,
		Name:      b.Name,
		Address:   b.Address,
		City:      b.City,
		State:     b.State,
		Country:   b.Country,
		Latitude:  b.Latitude,
		Longitude: b.Longitude,
		Location:  geojson.NewGeometry(b.Point()),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
