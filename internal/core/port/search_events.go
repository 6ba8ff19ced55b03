package port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

// SearchEventPublisherPort отправляет событие о каждом разобранном поиске.
type SearchEventPublisherPort interface {
	PublishSearchResolved(ctx context.Context, pathname string, params domain.URLParams) error
}

// NoopSearchEventPublisher используется, когда брокер отключен.
type NoopSearchEventPublisher struct{}

func (NoopSearchEventPublisher) PublishSearchResolved(ctx context.Context, pathname string, params domain.URLParams) error {
	return nil
}
