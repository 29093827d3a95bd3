package helpers

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type Pagination struct {
	Page     int
	PageSize int
}

// GetPagination reads page/page_size from the query string, clamping the
// page size to [1, MaxPageSize] to keep response cost bounded.
func GetPagination(c *gin.Context) Pagination {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(DefaultPageSize)))
	if err != nil || pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return Pagination{Page: page, PageSize: pageSize}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type PaginatedResponse struct {
	Count       int64       `json:"count"`
	Next        *string     `json:"next"`
	Previous    *string     `json:"previous"`
	PageSize    int         `json:"page_size"`
	TotalPages  int         `json:"total_pages"`
	CurrentPage int         `json:"current_page"`
	Results     interface{} `json:"results"`
}

// NewPaginatedResponse wraps results in the pagination envelope, deriving
// next/previous links from the current request URL.
func NewPaginatedResponse(c *gin.Context, p Pagination, count int64, results interface{}) PaginatedResponse {
	totalPages := int((count + int64(p.PageSize) - 1) / int64(p.PageSize))
	if totalPages < 1 {
		totalPages = 1
	}

	var next, previous *string
	if p.Page < totalPages {
		next = pageLink(c, p.Page+1)
	}
	if p.Page > 1 {
		previous = pageLink(c, p.Page-1)
	}

	return PaginatedResponse{
		Count:       count,
		Next:        next,
		Previous:    previous,
		PageSize:    p.PageSize,
		TotalPages:  totalPages,
		CurrentPage: p.Page,
		Results:     results,
	}
}

func pageLink(c *gin.Context, page int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	values := c.Request.URL.Query()
	values.Set("page", strconv.Itoa(page))

	link := url.URL{
		Scheme:   scheme,
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: values.Encode(),
	}
	encoded := link.String()
	return &encoded
}
