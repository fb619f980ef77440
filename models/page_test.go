package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemPageFlags(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		size      int
		total     int64
		wantPages int
		wantFirst bool
		wantLast  bool
	}{
		{"empty result", 0, 10, 0, 1, true, true},
		{"single partial page", 0, 10, 3, 1, true, true},
		{"first of many", 0, 10, 25, 3, true, false},
		{"middle page", 1, 10, 25, 3, false, false},
		{"last page", 2, 10, 25, 3, false, true},
		{"exact page boundary", 1, 10, 20, 2, false, true},
		{"size one", 4, 1, 5, 5, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewItemPage(nil, tt.page, tt.size, tt.total)

			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.size, p.Size)
			assert.Equal(t, tt.total, p.TotalElements)
			assert.Equal(t, tt.wantPages, p.TotalPages)
			assert.Equal(t, tt.wantFirst, p.First)
			assert.Equal(t, tt.wantLast, p.Last)

			// has_next/has_previous are always the flag complements
			assert.Equal(t, !p.Last, p.HasNext)
			assert.Equal(t, !p.First, p.HasPrevious)
		})
	}
}

func TestNewItemPageContentNeverNull(t *testing.T) {
	p := NewItemPage(nil, 0, 10, 0)
	require.NotNil(t, p.Content)

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"content":[]`)
}
