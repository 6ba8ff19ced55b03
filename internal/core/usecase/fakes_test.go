package usecase

import (
	"context"
	"sync"

	"real-estate-system/internal/core/domain"
)

type fakeDirectory struct {
	developers []domain.Developer
	err        error
}

func (f *fakeDirectory) ListDevelopers(context.Context) ([]domain.Developer, error) {
	return f.developers, f.err
}

type fakeEvents struct {
	mu        sync.Mutex
	pathnames []string
	params    []domain.URLParams
	err       error
}

func (f *fakeEvents) PublishSearchResolved(_ context.Context, pathname string, params domain.URLParams) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pathnames = append(f.pathnames, pathname)
	f.params = append(f.params, params)
	return f.err
}

type searchCall struct {
	params        domain.URLParams
	limit, offset int
}

type fakeListings struct {
	calls []searchCall
	page  *domain.ListingsPage
	err   error
}

func (f *fakeListings) Search(_ context.Context, params domain.URLParams, limit, offset int) (*domain.ListingsPage, error) {
	f.calls = append(f.calls, searchCall{params: params, limit: limit, offset: offset})
	if f.err != nil {
		return nil, f.err
	}
	if f.page != nil {
		return f.page, nil
	}
	return &domain.ListingsPage{CurrentPage: offset/limit + 1, ItemsPerPage: limit}, nil
}

var testDevelopers = []domain.Developer{
	{ID: 7, Name: "Emaar Properties"},
	{ID: 12, Name: "Damac"},
}
