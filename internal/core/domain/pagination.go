package domain

const (
	DefaultPage              = 1
	DefaultPropertyPageLimit = 12
	DefaultOwnerPageLimit    = 100
	FallbackPageLimit        = 10
)

// Pagination описывает страницу результата, как ее возвращает API.
type Pagination struct {
	Page       int
	Limit      int
	Total      int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}

// NewPagination вычисляет производные поля страницы.
func NewPagination(page, limit, total int) Pagination {
	if page < 1 {
		page = DefaultPage
	}
	totalPages := 0
	if limit > 0 && total > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}

// EmptyPagination — страница, которую отдают при неудачном чтении.
func EmptyPagination() Pagination {
	return Pagination{Page: DefaultPage, Limit: FallbackPageLimit}
}

// PageRequest — запрошенная страница.
type PageRequest struct {
	Page  int
	Limit int
}

// WithDefaults заменяет нулевые и отрицательные значения на значения по умолчанию.
func (r PageRequest) WithDefaults(defaultLimit int) PageRequest {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Limit < 1 {
		r.Limit = defaultLimit
	}
	return r
}

func (r PageRequest) Offset() int {
	if r.Page < 1 {
		return 0
	}
	return (r.Page - 1) * r.Limit
}
