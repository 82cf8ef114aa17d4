package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intRange(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i + 1
	}
	return out
}

func TestPaginate_LastPartialPage(t *testing.T) {
	page := Paginate(intRange(25), 10, 3)

	assert.Equal(t, []int{21, 22, 23, 24, 25}, page.Items)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
	assert.Equal(t, 3, page.TotalPages)
}

func TestPaginate_FirstPage(t *testing.T) {
	page := Paginate(intRange(25), 10, 1)

	assert.Len(t, page.Items, 10)
	assert.Equal(t, 1, page.Items[0])
	assert.True(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestPaginate_InvalidPageDefaultsToFirst(t *testing.T) {
	page := Paginate(intRange(25), 10, 0)
	assert.Equal(t, 1, page.PageNumber)

	page = Paginate(intRange(25), 10, -4)
	assert.Equal(t, 1, page.PageNumber)
}

func TestPaginate_OutOfRangeClampsToLast(t *testing.T) {
	page := Paginate(intRange(25), 10, 99)

	assert.Equal(t, 3, page.PageNumber)
	assert.Equal(t, []int{21, 22, 23, 24, 25}, page.Items)
	assert.False(t, page.HasNext)
}

func TestPaginate_Empty(t *testing.T) {
	page := Paginate([]int{}, 10, 1)

	assert.Empty(t, page.Items)
	assert.Equal(t, 1, page.PageNumber)
	assert.Equal(t, 1, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.False(t, page.HasPrev)
}

func TestPaginate_ExactMultiple(t *testing.T) {
	page := Paginate(intRange(20), 10, 2)

	assert.Len(t, page.Items, 10)
	assert.Equal(t, 2, page.TotalPages)
	assert.False(t, page.HasNext)
	assert.True(t, page.HasPrev)
}
