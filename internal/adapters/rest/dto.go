package rest

import (
	"real-estate-system/internal/core/domain"
	"time"
)

// ResolveRequestBody - тело POST /search/resolve.
type ResolveRequestBody struct {
	Pathname        string                  `json:"pathname"`
	TypeID          int                     `json:"type_id"`
	NavigationState *domain.NavigationState `json:"navigation_state"`
}

func (b ResolveRequestBody) toDomain() domain.ResolveRequest {
	return domain.ResolveRequest{
		Pathname:        b.Pathname,
		TypeID:          b.TypeID,
		NavigationState: b.NavigationState,
	}
}

// SearchRequestBody - тело POST /search.
type SearchRequestBody struct {
	ResolveRequestBody
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
}

// SortRequestBody - тело POST /search/sort.
type SortRequestBody struct {
	Filters   domain.URLParams `json:"filters"`
	TypeID    int              `json:"type_id"`
	Fixed     domain.URLParams `json:"fixed"`
	Sort      string           `json:"sort"`
	PageAware bool             `json:"page_aware"`
	PerPage   int              `json:"per_page"`
}

// ListingCardResponse - DTO для карточки объекта в списке.
type ListingCardResponse struct {
	ID             int       `json:"id"`
	TypeID         int       `json:"type_id"`
	Title          string    `json:"title"`
	Price          int       `json:"price"`
	Bedrooms       int       `json:"bedrooms"`
	Area           int       `json:"area"`
	PropertyTypeID *int      `json:"property_type_id,omitempty"`
	PropertyName   string    `json:"property_name,omitempty"`
	DeveloperID    *int      `json:"developer_id,omitempty"`
	DeveloperName  string    `json:"developer_name,omitempty"`
	RegionName     string    `json:"region_name,omitempty"`
	IsSale         bool      `json:"is_sale"`
	IsFinish       bool      `json:"is_finish"`
	Images         []string  `json:"images"`
	CreatedAt      time.Time `json:"created_at"`
}

// PaginatedListingsResponse - ответ поиска с пагинацией.
type PaginatedListingsResponse struct {
	Data    []ListingCardResponse `json:"data"`
	Total   int64                 `json:"total"`
	Page    int                   `json:"page"`
	PerPage int                   `json:"per_page"`
}

// SortResponse - ответ POST /search/sort.
type SortResponse struct {
	Filters  domain.URLParams          `json:"filters"`
	Page     int                       `json:"page"`
	Listings PaginatedListingsResponse `json:"listings"`
}

func toPaginatedResponse(page *domain.ListingsPage) PaginatedListingsResponse {
	if page == nil {
		return PaginatedListingsResponse{Data: []ListingCardResponse{}}
	}
	response := PaginatedListingsResponse{
		Data:    make([]ListingCardResponse, len(page.Listings)),
		Total:   page.TotalCount,
		Page:    page.CurrentPage,
		PerPage: page.ItemsPerPage,
	}
	for i, l := range page.Listings {
		images := l.Images
		if images == nil {
			images = []string{}
		}
		response.Data[i] = ListingCardResponse{
			ID:             l.ID,
			TypeID:         l.TypeID,
			Title:          l.Title,
			Price:          l.Price,
			Bedrooms:       l.Bedrooms,
			Area:           l.Area,
			PropertyTypeID: l.PropertyTypeID,
			PropertyName:   l.PropertyName,
			DeveloperID:    l.DeveloperID,
			DeveloperName:  l.DeveloperName,
			RegionName:     l.RegionName,
			IsSale:         l.IsSale,
			IsFinish:       l.IsFinish,
			Images:         images,
			CreatedAt:      l.CreatedAt,
		}
	}
	return response
}
