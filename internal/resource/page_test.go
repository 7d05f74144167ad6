// AngelaMos | 2026
// page_test.go

package resource

import (
	"math"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/templates/records-api/internal/core"
)

func TestParsePageRequest(t *testing.T) {
	tests := []struct {
		query       string
		defaultSize int
		want        PageRequest
	}{
		{"", 10, PageRequest{Page: 1, PageSize: 10}},
		{"", 0, PageRequest{Page: 1, PageSize: DefaultPageSize}},
		{"", 99, PageRequest{Page: 1, PageSize: DefaultPageSize}},
		{"page=3", 10, PageRequest{Page: 3, PageSize: 10}},
		{"page=2&page_size=30", 10, PageRequest{Page: 2, PageSize: 30}},
		{"page_size=31", 10, PageRequest{Page: 1, PageSize: 31}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/things?"+tt.query, nil)
			got, err := ParsePageRequest(r, tt.defaultSize)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePageRequest_NonInteger(t *testing.T) {
	for _, q := range []string{"page=one", "page_size=1.5"} {
		r := httptest.NewRequest("GET", "/things?"+q, nil)
		_, err := ParsePageRequest(r, 10)
		assert.ErrorIs(t, err, core.ErrInvalidInput, q)
	}
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, PageSize: 10}.offset())
	assert.Equal(t, 20, PageRequest{Page: 3, PageSize: 10}.offset())
}

func TestPageRequest_LargestPageKeepsOffsetPositive(t *testing.T) {
	last := PageRequest{Page: math.MaxInt/MaxPageSize + 1, PageSize: MaxPageSize}
	require.NoError(t, last.validate())
	assert.GreaterOrEqual(t, last.offset(), 0)

	past := PageRequest{Page: last.Page + 1, PageSize: MaxPageSize}
	assert.ErrorIs(t, past.validate(), core.ErrInvalidInput)
}

func TestMapPage(t *testing.T) {
	p := &Page[widget]{
		Total:    3,
		PageSize: 2,
		Page:     2,
		Results:  []widget{{Name: "c"}},
	}

	out := MapPage(p, func(w *widget) string { return w.Name })
	assert.Equal(t, Page[string]{Total: 3, PageSize: 2, Page: 2, Results: []string{"c"}}, out)
}
