package searchparams

import (
	"fmt"
	"strings"

	"real-estate-system/internal/core/domain"
)

// SortOption - пара {sort, sort_name}. Пустой Sort означает сортировку
// по умолчанию (самые новые) и не отправляется в бекенд.
type SortOption struct {
	Sort string
	Name string
}

var (
	SortMostRecent   = SortOption{Sort: "", Name: "most recent"}
	SortHighestPrice = SortOption{Sort: "max", Name: "Highest price"}
	SortLowestPrice  = SortOption{Sort: "min", Name: "Lowest price"}
)

// ParseSortOption принимает "", "recent", "max" или "min".
func ParseSortOption(s string) (SortOption, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "recent", "most-recent":
		return SortMostRecent, nil
	case SortHighestPrice.Sort:
		return SortHighestPrice, nil
	case SortLowestPrice.Sort:
		return SortLowestPrice, nil
	default:
		return SortOption{}, fmt.Errorf("%w: %q", domain.ErrUnknownSort, s)
	}
}

// SortHandlerConfig - текущее состояние фильтра и колбэки, которые
// вызывает обработчик сортировки.
type SortHandlerConfig struct {
	// Current возвращает текущий фильтр на момент вызова обработчика.
	Current func() domain.URLParams
	TypeID  int
	// Fixed накладывается поверх текущего фильтра перед сортировкой.
	Fixed domain.URLParams

	SetFilters func(domain.URLParams)
	// SetPage опционален, вызывается с 1.
	SetPage func(int)
	Fetch   func(domain.URLParams)
	// CollapseOverlays опционален: просит UI закрыть открытые выпадашки.
	CollapseOverlays func()
}

// NewPaginatedSortHandler возвращает обработчик, который применяет option,
// сбрасывает пагинацию на первую страницу и перезапрашивает выдачу.
func NewPaginatedSortHandler(option SortOption, cfg SortHandlerConfig) func() {
	return func() {
		next := buildSorted(option, cfg)
		if cfg.SetFilters != nil {
			cfg.SetFilters(next)
		}
		if cfg.SetPage != nil {
			cfg.SetPage(1)
		}
		if cfg.Fetch != nil {
			cfg.Fetch(next)
		}
		if cfg.CollapseOverlays != nil {
			cfg.CollapseOverlays()
		}
	}
}

// NewSearchSortHandler - вариант без пагинации: вместо Fetch вызывается
// handleSearch, SetPage игнорируется.
func NewSearchSortHandler(option SortOption, cfg SortHandlerConfig, handleSearch func(domain.URLParams)) func() {
	cfg.SetPage = nil
	cfg.Fetch = handleSearch
	return NewPaginatedSortHandler(option, cfg)
}

func buildSorted(option SortOption, cfg SortHandlerConfig) domain.URLParams {
	var current domain.URLParams
	if cfg.Current != nil {
		current = cfg.Current()
	}
	next := current.Merge(cfg.Fixed)
	if cfg.TypeID != 0 {
		next.TypeID = cfg.TypeID
	}
	// пара задается напрямую: пустой Sort должен сбросить прежний
	next.Sort = option.Sort
	next.SortName = option.Name
	return next
}
