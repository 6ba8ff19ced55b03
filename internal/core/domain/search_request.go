package domain

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

// ResolveRequest - путь страницы выдачи и состояние навигации.
type ResolveRequest struct {
	Pathname        string
	TypeID          int
	NavigationState *NavigationState
}

// SearchRequest - разбор пути плюс пагинация. Нулевые Page и PerPage
// заменяются значениями по умолчанию.
type SearchRequest struct {
	ResolveRequest
	Page    int
	PerPage int
}

// ApplySortRequest - смена сортировки для текущего фильтра.
type ApplySortRequest struct {
	Filters URLParams
	TypeID  int
	Fixed   URLParams
	Sort    string
	// PageAware - страница выдачи с пагинацией, сортировка сбрасывает ее на первую.
	PageAware bool
	PerPage   int
}

// NormalizePagination проверяет страницу и размер страницы и подставляет значения по умолчанию.
func NormalizePagination(page, perPage int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if perPage == 0 {
		perPage = DefaultPerPage
	}
	if page < 1 || perPage < 1 || perPage > MaxPerPage {
		return 0, 0, ErrInvalidPagination
	}
	return page, perPage, nil
}
