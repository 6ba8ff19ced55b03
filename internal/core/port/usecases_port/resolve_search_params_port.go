package usecases_port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

type ResolveSearchParamsUseCase interface {
	Execute(ctx context.Context, req domain.ResolveRequest) (*domain.URLParams, error)
}
