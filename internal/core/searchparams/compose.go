package searchparams

import "real-estate-system/internal/core/domain"

// Compose собирает фильтр из пути и состояния навигации.
//
// Состояние навигации служит основой, type_id всегда берется из typeID,
// property_ids переносятся только непустым срезом. Затем поверх применяются
// экстракторы сегментов: значение из URL побеждает значение из состояния.
// Противоречивые границы (min > max) не отвергаются.
func Compose(pathname string, state *domain.NavigationState, developers []domain.Developer, typeID int) domain.URLParams {
	segments := SplitSegments(pathname)

	var params domain.URLParams
	if state != nil {
		params = domain.URLParams(*state).Clone()
	}
	params.TypeID = typeID
	if len(params.PropertyIDs) == 0 {
		params.PropertyIDs = nil
	}

	extractors := []Extractor{
		ExtractBedrooms,
		ExtractPrice,
		ExtractArea,
		DeveloperExtractor(developers),
	}
	for _, extract := range extractors {
		params = params.Merge(extract(segments))
	}

	return params
}
