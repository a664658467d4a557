package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPageResponse(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		page       int
		perPage    int
		totalPages int
	}{
		{"exact multiple", 20, 1, 10, 2},
		{"remainder adds a page", 21, 1, 10, 3},
		{"single partial page", 3, 1, 10, 1},
		{"empty set", 0, 1, 10, 0},
		{"per_page one", 7, 1, 1, 7},
		{"defaults applied", 25, 0, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPageResponse(nil, tt.total, tt.page, tt.perPage)
			assert.Equal(t, tt.totalPages, resp.TotalPages)
			assert.Equal(t, tt.total, resp.Total)
		})
	}
}
