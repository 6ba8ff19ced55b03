package domain

import (
	"errors"
	"fmt"
)

// URLParams - нормализованный набор фильтров, который уходит в поиск объявлений.
// Все поля, кроме TypeID, опциональны: указатель nil или пустая строка/срез
// означают "фильтр не задан" и не сериализуются.
type URLParams struct {
	TypeID int `json:"type_id"`

	Search         string `json:"search,omitempty"`
	PropertyTypeID *int   `json:"property_type_id,omitempty"`
	PropertyName   string `json:"property_name,omitempty"`

	PriceMin   *int `json:"price_min,omitempty"`
	PriceMax   *int `json:"price_max,omitempty"`
	BedroomMin *int `json:"bedroom_min,omitempty"`
	BedroomMax *int `json:"bedroom_max,omitempty"`
	AreaMin    *int `json:"area_min,omitempty"`
	AreaMax    *int `json:"area_max,omitempty"`

	DeveloperID   *int   `json:"developer_id,omitempty"`
	DeveloperName string `json:"developer_name,omitempty"`

	Sort     string `json:"sort,omitempty"`
	SortName string `json:"sort_name,omitempty"`

	RegionName  string   `json:"region_name,omitempty"`
	RegionNames []string `json:"region_names,omitempty"`
	PropertyIDs []int    `json:"property_ids,omitempty"`

	IsSale   *bool `json:"is_sale,omitempty"`
	IsFinish *bool `json:"is_finish,omitempty"`
}

// NavigationState - данные, переданные в памяти при переходе между страницами.
// Форма совпадает с URLParams, type_id из состояния игнорируется.
type NavigationState URLParams

// IntPtr возвращает указатель на копию v.
func IntPtr(v int) *int { return &v }

// BoolPtr возвращает указатель на копию v.
func BoolPtr(v bool) *bool { return &v }

// Clone возвращает копию без общих срезов с исходником.
func (p URLParams) Clone() URLParams {
	out := p
	if p.RegionNames != nil {
		out.RegionNames = append([]string(nil), p.RegionNames...)
	}
	if p.PropertyIDs != nil {
		out.PropertyIDs = append([]int(nil), p.PropertyIDs...)
	}
	return out
}

// Merge накладывает overlay поверх p: каждое заданное в overlay поле
// перезаписывает соответствующее поле p. Незаданные поля overlay не трогают p.
func (p URLParams) Merge(overlay URLParams) URLParams {
	out := p.Clone()

	if overlay.TypeID != 0 {
		out.TypeID = overlay.TypeID
	}
	mergeString(&out.Search, overlay.Search)
	mergeInt(&out.PropertyTypeID, overlay.PropertyTypeID)
	mergeString(&out.PropertyName, overlay.PropertyName)

	mergeInt(&out.PriceMin, overlay.PriceMin)
	mergeInt(&out.PriceMax, overlay.PriceMax)
	mergeInt(&out.BedroomMin, overlay.BedroomMin)
	mergeInt(&out.BedroomMax, overlay.BedroomMax)
	mergeInt(&out.AreaMin, overlay.AreaMin)
	mergeInt(&out.AreaMax, overlay.AreaMax)

	mergeInt(&out.DeveloperID, overlay.DeveloperID)
	mergeString(&out.DeveloperName, overlay.DeveloperName)

	mergeString(&out.Sort, overlay.Sort)
	mergeString(&out.SortName, overlay.SortName)

	mergeString(&out.RegionName, overlay.RegionName)
	if len(overlay.RegionNames) > 0 {
		out.RegionNames = append([]string(nil), overlay.RegionNames...)
	}
	if len(overlay.PropertyIDs) > 0 {
		out.PropertyIDs = append([]int(nil), overlay.PropertyIDs...)
	}

	if overlay.IsSale != nil {
		out.IsSale = BoolPtr(*overlay.IsSale)
	}
	if overlay.IsFinish != nil {
		out.IsFinish = BoolPtr(*overlay.IsFinish)
	}
	return out
}

// Validate проверяет инварианты фильтра: положительный type_id, неотрицательные
// числа и min <= max для каждой пары границ. Compose его не вызывает.
func (p URLParams) Validate() error {
	var errs []error
	if p.TypeID <= 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidTypeID, p.TypeID))
	}

	numbers := map[string]*int{
		"property_type_id": p.PropertyTypeID,
		"developer_id":     p.DeveloperID,
	}
	for name, v := range numbers {
		if v != nil && *v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s is %d", ErrNegativeValue, name, *v))
		}
	}

	ranges := []struct {
		name     string
		min, max *int
	}{
		{"price", p.PriceMin, p.PriceMax},
		{"bedroom", p.BedroomMin, p.BedroomMax},
		{"area", p.AreaMin, p.AreaMax},
	}
	for _, r := range ranges {
		if r.min != nil && *r.min < 0 {
			errs = append(errs, fmt.Errorf("%w: %s_min is %d", ErrNegativeValue, r.name, *r.min))
		}
		if r.max != nil && *r.max < 0 {
			errs = append(errs, fmt.Errorf("%w: %s_max is %d", ErrNegativeValue, r.name, *r.max))
		}
		if r.min != nil && r.max != nil && *r.min > *r.max {
			errs = append(errs, fmt.Errorf("%w: %s %d > %d", ErrInvertedRange, r.name, *r.min, *r.max))
		}
	}
	for _, id := range p.PropertyIDs {
		if id < 0 {
			errs = append(errs, fmt.Errorf("%w: property_ids contains %d", ErrNegativeValue, id))
			break
		}
	}
	return errors.Join(errs...)
}

func mergeString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func mergeInt(dst **int, v *int) {
	if v != nil {
		*dst = IntPtr(*v)
	}
}
