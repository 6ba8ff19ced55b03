package usecase

import (
	"context"
	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"
	"real-estate-system/internal/core/searchparams"
)

type ResolveSearchParamsUseCase struct {
	directory port.DeveloperDirectoryPort
	events    port.SearchEventPublisherPort
}

func NewResolveSearchParamsUseCase(directory port.DeveloperDirectoryPort, events port.SearchEventPublisherPort) *ResolveSearchParamsUseCase {
	if events == nil {
		events = port.NoopSearchEventPublisher{}
	}
	return &ResolveSearchParamsUseCase{directory: directory, events: events}
}

func (uc *ResolveSearchParamsUseCase) Execute(ctx context.Context, req domain.ResolveRequest) (*domain.URLParams, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "ResolveSearchParams",
		"pathname": req.Pathname,
		"type_id":  req.TypeID,
	})

	if req.TypeID <= 0 {
		return nil, domain.ErrInvalidTypeID
	}

	developers, err := uc.directory.ListDevelopers(ctx)
	if err != nil {
		// без справочника фильтр по застройщику просто не применяется
		ucLogger.Warn("Developer directory unavailable, developer filter skipped", port.Fields{"error": err.Error()})
		developers = nil
	}

	params := searchparams.Compose(req.Pathname, req.NavigationState, developers, req.TypeID)

	if err := params.Validate(); err != nil {
		ucLogger.Warn("Resolved params are inconsistent", port.Fields{"reason": err.Error()})
	}

	if err := uc.events.PublishSearchResolved(ctx, req.Pathname, params); err != nil {
		ucLogger.Error("Failed to publish search event", err, nil)
	}

	ucLogger.Debug("Search params resolved", port.Fields{"params": params})
	return &params, nil
}
