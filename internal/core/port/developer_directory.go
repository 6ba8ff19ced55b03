package port

import (
	"context"
	"real-estate-system/internal/core/domain"
)

// DeveloperDirectoryPort - справочник застройщиков для разрешения slug'ов.
type DeveloperDirectoryPort interface {
	ListDevelopers(ctx context.Context) ([]domain.Developer, error)
}
