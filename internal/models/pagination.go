package models

type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// NormalizePage clamps paging input to sane bounds.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}

	if size < 1 {
		size = DefaultPageSize
	}

	if size > MaxPageSize {
		size = MaxPageSize
	}

	return page, size
}
