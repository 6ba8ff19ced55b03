package usecases_port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

type ListDevelopersUseCase interface {
	Execute(ctx context.Context) ([]domain.Developer, error)
}
