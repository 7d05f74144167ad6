// AngelaMos | 2026
// dto_test.go

package business

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateBusinessRequest_FieldsOnlyPresent(t *testing.T) {
	city := "Oakland"
	lat := 37.8

	f := UpdateBusinessRequest{City: &city, Latitude: &lat}.Fields()

	assert.Len(t, f, 2)
	assert.Equal(t, "Oakland", f["city"])
	assert.Equal(t, 37.8, f["latitude"])
	assert.Empty(t, UpdateBusinessRequest{}.Fields())
}

func TestCreateBusinessRequest_FieldsCoverColumns(t *testing.T) {
	lat, lng := 1.5, 2.5
	f := CreateBusinessRequest{
		Name: "a", Address: "b", City: "c", State: "d", Country: "e",
		Latitude: &lat, Longitude: &lng,
	}.Fields()

	require.Len(t, f, len(Columns))
	for _, col := range Columns {
		assert.Contains(t, f, col)
	}
}

func TestToBusinessResponse_Location(t *testing.T) {
	b := &Business{ID: "b-1", Latitude: 37.7955, Longitude: -122.3937}

	resp := ToBusinessResponse(b)

	require.NotNil(t, resp.Location)
	assert.Equal(t, orb.Point{-122.3937, 37.7955}, resp.Location.Coordinates)
	assert.Nil(t, resp.OwnerID)
}
