package domain

import "time"

// ListingCard - объект в выдаче поиска.
type ListingCard struct {
	ID             int
	TypeID         int
	Title          string
	Price          int
	Bedrooms       int
	Area           int
	PropertyTypeID *int
	PropertyName   string
	DeveloperID    *int
	DeveloperName  string
	RegionName     string
	IsSale         bool
	IsFinish       bool
	Images         []string
	CreatedAt      time.Time
}

// ListingsPage - стандартная структура для ответа с пагинацией.
type ListingsPage struct {
	Listings     []ListingCard
	TotalCount   int64
	CurrentPage  int
	ItemsPerPage int
}

// SortedListings - результат применения сортировки: новый фильтр,
// сброшенная страница и выдача.
type SortedListings struct {
	Filters URLParams
	Page    int
	Result  *ListingsPage
}
