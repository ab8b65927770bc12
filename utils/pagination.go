package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Pagination carries the parsed page/limit query params.
type Pagination struct {
	Page  int
	Limit int
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ParsePagination reads ?page= and ?limit= with sane bounds.
func ParsePagination(c *gin.Context) Pagination {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return Pagination{Page: page, Limit: limit}
}

// Envelope is the list-response shape used by every paginated endpoint.
func Envelope(data interface{}, total int64, p Pagination) gin.H {
	totalPages := int((total + int64(p.Limit) - 1) / int64(p.Limit))
	return gin.H{
		"data":       data,
		"total":      total,
		"page":       p.Page,
		"limit":      p.Limit,
		"totalPages": totalPages,
	}
}
