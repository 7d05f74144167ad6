// AngelaMos | 2026
// dto_test.go

package bookmark

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/records-api/internal/core"
)

func TestCreateBookmarkRequest_Fields(t *testing.T) {
	f := CreateBookmarkRequest{Title: "t", Link: "https://x.dev"}.Fields()
	assert.Contains(t, f, "description")
	assert.Nil(t, f["description"])

	d := "notes"
	f = CreateBookmarkRequest{Title: "t", Description: &d, Link: "https://x.dev"}.Fields()
	assert.Equal(t, "notes", f["description"])
}

func TestUpdateBookmarkRequest_Fields(t *testing.T) {
	link := "https://y.dev"
	f := UpdateBookmarkRequest{Link: &link}.Fields()

	assert.Equal(t, map[string]any{"link": "https://y.dev"}, map[string]any(f))
}

func TestUpdateBookmarkRequest_DescriptionPresence(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]any
	}{
		{"absent", `{"title":"t"}`, map[string]any{"title": "t"}},
		{"explicit null clears", `{"description":null}`, map[string]any{"description": nil}},
		{"value sets", `{"description":"notes"}`, map[string]any{"description": "notes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateBookmarkRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			assert.Equal(t, tt.want, map[string]any(req.Fields()))
		})
	}
}

func TestUpdateBookmarkRequest_ValidatesDescription(t *testing.T) {
	v := core.NewValidator()

	var req UpdateBookmarkRequest
	require.NoError(t, json.Unmarshal([]byte(`{"description":null}`), &req))
	assert.NoError(t, v.Struct(req))

	long := `{"description":"` + strings.Repeat("x", 2001) + `"}`
	require.NoError(t, json.Unmarshal([]byte(long), &req))
	assert.Error(t, v.Struct(req))
}
