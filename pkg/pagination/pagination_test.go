package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseParamsDefaults(t *testing.T) {
	p := ParseParams("", "abc")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 15, p.PerPage)
	assert.Equal(t, 0, p.Offset())
}

func TestParseParamsClamps(t *testing.T) {
	p := ParseParams("3", "500")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 200, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 10, 25)
	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)
}
