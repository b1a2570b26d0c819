package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/projecthub/internal/app/models/dto"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultPage     = 1
)

// Page is a parsed 1-based page request.
type Page struct {
	Number int
	Size   int
}

// Offset returns the SQL offset for the page.
func (p Page) Offset() uint64 {
	offset, _ := CalculateOffsetLimit(p.Number, p.Size)
	return offset
}

// Limit returns the SQL limit for the page.
func (p Page) Limit() int {
	_, limit := CalculateOffsetLimit(p.Number, p.Size)
	return limit
}

// CalculateOffsetLimit calculates the offset and limit for SQL queries based on 1-based page index.
func CalculateOffsetLimit(page, size int) (offset uint64, limit int) {
	if size <= 0 || size > MaxPageSize {
		limit = DefaultPageSize
	} else {
		limit = size
	}

	if page < 1 {
		page = DefaultPage
	}

	offset = uint64((page - 1) * limit)
	return offset, limit
}

// NewPaginationInfo creates a standard PaginationInfo DTO.
func NewPaginationInfo(totalItems int64, page Page) dto.PaginationInfo {
	size := page.Limit()
	current := page.Number
	if current < 1 {
		current = DefaultPage
	}

	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(size)))
	} else if current == 1 {
		totalPages = 1
	}

	if totalPages > 0 && current > totalPages {
		current = totalPages
	}

	return dto.PaginationInfo{
		CurrentPage: current,
		TotalPages:  totalPages,
		PageSize:    size,
		TotalItems:  totalItems,
	}
}

// ParsePaginationParams extracts page and size query parameters, falling back to defaults.
func ParsePaginationParams(c *gin.Context) Page {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = DefaultPage
	}

	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(DefaultPageSize)))
	if err != nil || size <= 0 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return Page{Number: page, Size: size}
}
