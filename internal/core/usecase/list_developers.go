package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
)

type ListDevelopersUseCase struct {
	directory port.DeveloperDirectoryPort
}

func NewListDevelopersUseCase(directory port.DeveloperDirectoryPort) *ListDevelopersUseCase {
	return &ListDevelopersUseCase{directory: directory}
}

func (uc *ListDevelopersUseCase) Execute(ctx context.Context) ([]domain.Developer, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ListDevelopers",
	})

	developers, err := uc.directory.ListDevelopers(ctx)
	if err != nil {
		ucLogger.Error("Developer directory returned an error", err, nil)
		return nil, err
	}

	ucLogger.Debug("Use case finished successfully", port.Fields{"count": len(developers)})
	return developers, nil
}
