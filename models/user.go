package models

// PaginatedUsersResponse is the response structure for paginated admin user listings.
type PaginatedUsersResponse struct {
	Data       []User         `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// PaginationInfo holds metadata for paginated responses.
type PaginationInfo struct {
	TotalItems  int `json:"totalItems"`
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
	PageSize    int `json:"pageSize"`
}

// BrandSelectionItem represents a brand in a format suitable for selection lists.
type BrandSelectionItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
