package usecases_port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

type ApplySortUseCase interface {
	Execute(ctx context.Context, req domain.ApplySortRequest) (*domain.SortedListings, error)
}
