package handler

// PaginationMeta defines the structure for pagination metadata.
type PaginationMeta struct {
	TotalItems  int64 `json:"total_items"`
	TotalPages  int   `json:"total_pages"`
	CurrentPage int   `json:"current_page"`
	PageSize    int   `json:"page_size"`
}

// PaginatedResponse defines the structure for a paginated list of any type.
type PaginatedResponse[T any] struct {
	Data []T            `json:"data"`
	Meta PaginationMeta `json:"meta"`
}

// NewPaginatedResponse creates a new PaginatedResponse.
func NewPaginatedResponse[T any](data []T, totalItems int64, page, limit int) PaginatedResponse[T] {
	if limit <= 0 {
		limit = 1
	}
	totalPages := (int(totalItems) + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	return PaginatedResponse[T]{
		Data: data,
		Meta: PaginationMeta{
			TotalItems:  totalItems,
			TotalPages:  totalPages,
			CurrentPage: page,
			PageSize:    limit,
		},
	}
}

// pageLinks is the navigation data the browse template needs.
func pageLinks(basePath string, page int, totalItems int64, limit int) map[string]any {
	meta := NewPaginatedResponse[struct{}](nil, totalItems, page, limit).Meta
	return map[string]any{
		"BasePath":    basePath,
		"CurrentPage": meta.CurrentPage,
		"TotalPages":  meta.TotalPages,
		"HasPrev":     page > 1,
		"PrevPage":    page - 1,
		"HasNext":     page < meta.TotalPages,
		"NextPage":    page + 1,
	}
}
