package usecases_port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

type SearchListingsUseCase interface {
	Execute(ctx context.Context, req domain.SearchRequest) (*domain.ListingsPage, error)
}
