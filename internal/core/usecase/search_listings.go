package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/port/usecases_port"
)

type SearchListingsUseCase struct {
	resolver usecases_port.ResolveSearchParamsUseCase
	listings port.ListingsSearchPort
}

func NewSearchListingsUseCase(resolver usecases_port.ResolveSearchParamsUseCase, listings port.ListingsSearchPort) *SearchListingsUseCase {
	return &SearchListingsUseCase{resolver: resolver, listings: listings}
}

func (uc *SearchListingsUseCase) Execute(ctx context.Context, req domain.SearchRequest) (*domain.ListingsPage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SearchListings",
		"pathname": req.Pathname,
		"page":     req.Page,
		"per_page": req.PerPage,
	})

	page, perPage, err := domain.NormalizePagination(req.Page, req.PerPage)
	if err != nil {
		return nil, err
	}

	params, err := uc.resolver.Execute(ctx, req.ResolveRequest)
	if err != nil {
		return nil, err
	}

	ucLogger.Info("Use case started", nil)

	result, err := uc.listings.Search(ctx, *params, perPage, (page-1)*perPage)
	if err != nil {
		ucLogger.Error("Storage returned an error", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found":   result.TotalCount,
		"items_on_page": len(result.Listings),
	})
	return result, nil
}
