package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/searchparams"
)

// ApplySortUseCase выполняет обработчик сортировки на сервере: колбэки
// обработчика сохраняют новый фильтр и страницу и запускают поиск.
type ApplySortUseCase struct {
	listings port.ListingsSearchPort
}

func NewApplySortUseCase(listings port.ListingsSearchPort) *ApplySortUseCase {
	return &ApplySortUseCase{listings: listings}
}

func (uc *ApplySortUseCase) Execute(ctx context.Context, req domain.ApplySortRequest) (*domain.SortedListings, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "ApplySort",
		"sort":       req.Sort,
		"page_aware": req.PageAware,
	})

	option, err := searchparams.ParseSortOption(req.Sort)
	if err != nil {
		return nil, err
	}
	if req.TypeID < 0 {
		return nil, domain.ErrInvalidTypeID
	}
	_, perPage, err := domain.NormalizePagination(1, req.PerPage)
	if err != nil {
		return nil, err
	}

	out := &domain.SortedListings{Page: 1}
	var fetchErr error
	fetch := func(filters domain.URLParams) {
		out.Result, fetchErr = uc.listings.Search(ctx, filters, perPage, 0)
	}

	cfg := searchparams.SortHandlerConfig{
		Current:    func() domain.URLParams { return req.Filters },
		TypeID:     req.TypeID,
		Fixed:      req.Fixed,
		SetFilters: func(filters domain.URLParams) { out.Filters = filters },
	}

	var handler func()
	if req.PageAware {
		cfg.SetPage = func(page int) { out.Page = page }
		cfg.Fetch = fetch
		handler = searchparams.NewPaginatedSortHandler(option, cfg)
	} else {
		handler = searchparams.NewSearchSortHandler(option, cfg, fetch)
	}
	handler()

	if fetchErr != nil {
		ucLogger.Error("Storage returned an error", fetchErr, nil)
		return nil, fetchErr
	}

	ucLogger.Info("Sort applied", port.Fields{
		"sort_name":   option.Name,
		"total_found": out.Result.TotalCount,
	})
	return out, nil
}
