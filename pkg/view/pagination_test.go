package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 12)
	for i := range items {
		items[i] = i
	}

	window, p := Paginate(items, 1, 10)
	assert.Len(t, window, 10)
	assert.Equal(t, 2, p.PagesTotal())
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	window, p = Paginate(items, 2, 10)
	assert.Len(t, window, 2)
	assert.Equal(t, 10, window[0])
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
}

func TestPaginateClampsPage(t *testing.T) {
	items := []int{1, 2, 3}

	window, p := Paginate(items, 99, 10)
	assert.Equal(t, 1, p.Page)
	assert.Len(t, window, 3)

	window, p = Paginate(items, -4, 10)
	assert.Equal(t, 1, p.Page)
	assert.Len(t, window, 3)
}

func TestPaginateEmpty(t *testing.T) {
	window, p := Paginate([]string(nil), 1, 10)
	assert.Empty(t, window)
	assert.Equal(t, 1, p.PagesTotal())
	assert.False(t, p.HasPrev())
	assert.False(t, p.HasNext())
}
