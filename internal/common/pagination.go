// File: internal/common/pagination.go
package common

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// PublicListCap bounds un-paginated public listings.
	PublicListCap = 50
	// RecentItemsCount is the number of rows shown in the dashboard's recent tables.
	RecentItemsCount = 5
)

// Pagination describes one page of a listing.
type Pagination struct {
	TotalItems  int64 `json:"total"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"page"`
	PageSize    int   `json:"limit"`
}

// NewPagination creates a pagination object.
func NewPagination(totalItems int64, page, pageSize int) *Pagination {
	if page <= 0 {
		page = DefaultPage
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	totalPages := int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	return &Pagination{
		TotalItems:  totalItems,
		TotalPages:  totalPages,
		CurrentPage: page,
		PageSize:    pageSize,
	}
}

// PageQuery holds pagination parameters from the request query.
type PageQuery struct {
	Page  int
	Limit int
}

// GetPageQuery extracts ?page and ?limit, clamping them to sane values.
func GetPageQuery(c *gin.Context) PageQuery {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(DefaultPage)))
	if err != nil || page <= 0 {
		page = DefaultPage
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultPageSize)))
	if err != nil || limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return PageQuery{Page: page, Limit: limit}
}

// Offset calculates the offset for database queries.
func (pq PageQuery) Offset() int {
	if pq.Page <= 0 {
		return 0
	}
	return (pq.Page - 1) * pq.Limit
}
