package utils

import (
	"math"

	"app/models"
)

// CreatePagination derives paging metadata for a listing response. Page and
// pageSize fall back to 1 and 10 when the query string sends zero or garbage.
func CreatePagination(totalItems, page, pageSize int) *models.PaginationInfo {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}

	return &models.PaginationInfo{
		TotalItems:  totalItems,
		TotalPages:  int(math.Ceil(float64(totalItems) / float64(pageSize))),
		CurrentPage: page,
		PageSize:    pageSize,
	}
}
