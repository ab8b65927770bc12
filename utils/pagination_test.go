package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func paginationFor(query string) Pagination {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return ParsePagination(c)
}

func TestParsePaginationDefaults(t *testing.T) {
	p := paginationFor("")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())
}

func TestParsePaginationBounds(t *testing.T) {
	p := paginationFor("page=0&limit=-5")
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)

	p = paginationFor("page=3&limit=500")
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestEnvelope(t *testing.T) {
	env := Envelope([]string{"a", "b"}, 25, Pagination{Page: 2, Limit: 10})
	assert.Equal(t, int64(25), env["total"])
	assert.Equal(t, 2, env["page"])
	assert.Equal(t, 10, env["limit"])
	assert.Equal(t, 3, env["totalPages"])
}
