package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{Number: 1, Limit: DefaultPageLimit}, NewPage(1, 0))
	assert.Equal(t, Page{Number: 2, Limit: MaxPageLimit}, NewPage(2, 500))
	assert.Equal(t, Page{Number: 3, Limit: 7}, NewPage(3, 7))
}

func TestPage_Offset(t *testing.T) {
	tests := []struct {
		page   Page
		offset int
	}{
		{Page{Number: 1, Limit: 20}, 0},
		{Page{Number: 2, Limit: 20}, 20},
		{Page{Number: 5, Limit: 3}, 12},
		{Page{Number: 0, Limit: 20}, 0},
		{Page{Number: -4, Limit: 20}, 0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("page %d limit %d", tt.page.Number, tt.page.Limit), func(t *testing.T) {
			assert.Equal(t, tt.offset, tt.page.Offset())
		})
	}
}

func TestNewPaginated(t *testing.T) {
	t.Run("last page carries the remainder", func(t *testing.T) {
		p := NewPaginated([]int{21, 22, 23, 24, 25}, 25, Page{Number: 2, Limit: 20})

		assert.Equal(t, 2, p.TotalPages)
		assert.False(t, p.HasNext)
		assert.True(t, p.HasPrevious)
		assert.Len(t, p.Items, 5)
	})

	t.Run("first page of many", func(t *testing.T) {
		p := NewPaginated([]int{1}, 41, Page{Number: 1, Limit: 20})

		assert.Equal(t, 3, p.TotalPages)
		assert.True(t, p.HasNext)
		assert.False(t, p.HasPrevious)
	})

	t.Run("empty result has zero pages and non-nil items", func(t *testing.T) {
		p := NewPaginated[int](nil, 0, Page{Number: 1, Limit: 20})

		assert.Equal(t, 0, p.TotalPages)
		assert.NotNil(t, p.Items)
		assert.False(t, p.HasNext)
	})
}

func TestDomainError_Is(t *testing.T) {
	err := fmt.Errorf("loading: %w", NewDomainError("NOT_FOUND", "Partner not found"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "Partner not found", NewDomainError("NOT_FOUND", "Partner not found").Error())
}
