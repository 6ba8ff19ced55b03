package port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

// ListingsSearchPort выполняет поиск объявлений по нормализованному фильтру.
type ListingsSearchPort interface {
	Search(ctx context.Context, params domain.URLParams, limit, offset int) (*domain.ListingsPage, error)
}
