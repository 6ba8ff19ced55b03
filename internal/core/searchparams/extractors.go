// Package searchparams разбирает SEO-адреса страниц поиска в фильтр URLParams.
package searchparams

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"real-estate-system/internal/core/domain"

	"golang.org/x/text/cases"
)

// Extractor получает сегменты пути и возвращает частичный фильтр:
// заданы только те поля, которые он распознал.
type Extractor func(segments []string) domain.URLParams

// rangePatterns - три взаимоисключающих шаблона одного диапазона.
// Шаблоны якорные: сегмент должен совпасть целиком.
type rangePatterns struct {
	between *regexp.Regexp
	min     *regexp.Regexp
	max     *regexp.Regexp
}

var (
	bedroomPatterns = rangePatterns{
		between: regexp.MustCompile(`^with-(\d+)-to-(\d+)-bedrooms$`),
		min:     regexp.MustCompile(`^more-than-(\d+)-bedrooms$`),
		max:     regexp.MustCompile(`^under-(\d+)-bedrooms$`),
	}
	pricePatterns = rangePatterns{
		between: regexp.MustCompile(`^between-(\d+)-(\d+)$`),
		min:     regexp.MustCompile(`^above-(\d+)$`),
		max:     regexp.MustCompile(`^below-(\d+)$`),
	}
	areaPatterns = rangePatterns{
		between: regexp.MustCompile(`^area-between-(\d+)-(\d+)-sqft$`),
		min:     regexp.MustCompile(`^area-more-than-(\d+)-sqft$`),
		max:     regexp.MustCompile(`^area-under-(\d+)-sqft$`),
	}

	developerPattern = regexp.MustCompile(`^developed-by-(.+)$`)
)

const developerSlugSuffix = "-properties"

// SplitSegments режет путь по "/" и отбрасывает пустые сегменты.
// Сегменты в percent-encoding декодируются, битые оставляются как есть.
func SplitSegments(pathname string) []string {
	raw := strings.Split(pathname, "/")
	segments := make([]string, 0, len(raw))
	for _, s := range raw {
		if s == "" {
			continue
		}
		if decoded, err := url.PathUnescape(s); err == nil {
			s = decoded
		}
		segments = append(segments, s)
	}
	return segments
}

// extract ищет сначала диапазон, и если он найден, шаблоны "только min"
// и "только max" не проверяются.
func (rp rangePatterns) extract(segments []string) (lo, hi *int) {
	for _, seg := range segments {
		if m := rp.between.FindStringSubmatch(seg); m != nil {
			return parseCount(m[1]), parseCount(m[2])
		}
	}
	for _, seg := range segments {
		if m := rp.min.FindStringSubmatch(seg); m != nil {
			lo = parseCount(m[1])
			break
		}
	}
	for _, seg := range segments {
		if m := rp.max.FindStringSubmatch(seg); m != nil {
			hi = parseCount(m[1])
			break
		}
	}
	return lo, hi
}

// parseCount разбирает десятичное неотрицательное число. Число, не влезающее
// в int, фильтр не задает.
func parseCount(s string) *int {
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

// ExtractBedrooms: with-{N}-to-{M}-bedrooms, more-than-{N}-bedrooms, under-{N}-bedrooms.
func ExtractBedrooms(segments []string) domain.URLParams {
	lo, hi := bedroomPatterns.extract(segments)
	return domain.URLParams{BedroomMin: lo, BedroomMax: hi}
}

// ExtractPrice: between-{min}-{max}, above-{min}, below-{max}.
func ExtractPrice(segments []string) domain.URLParams {
	lo, hi := pricePatterns.extract(segments)
	return domain.URLParams{PriceMin: lo, PriceMax: hi}
}

// ExtractArea: area-between-{min}-{max}-sqft, area-more-than-{min}-sqft, area-under-{max}-sqft.
func ExtractArea(segments []string) domain.URLParams {
	lo, hi := areaPatterns.extract(segments)
	return domain.URLParams{AreaMin: lo, AreaMax: hi}
}

// ExtractDeveloper ищет сегмент developed-by-{slug} и сопоставляет slug
// со справочником без учета регистра. Если точного совпадения нет,
// дефисы заменяются пробелами. Без совпадения возвращается пустой фильтр.
func ExtractDeveloper(segments []string, developers []domain.Developer) domain.URLParams {
	if len(developers) == 0 {
		return domain.URLParams{}
	}
	for _, seg := range segments {
		m := developerPattern.FindStringSubmatch(seg)
		if m == nil {
			continue
		}
		if dev, ok := resolveDeveloper(m[1], developers); ok {
			return domain.URLParams{
				DeveloperID:   domain.IntPtr(dev.ID),
				DeveloperName: dev.Name,
			}
		}
	}
	return domain.URLParams{}
}

// DeveloperExtractor привязывает справочник к ExtractDeveloper.
func DeveloperExtractor(developers []domain.Developer) Extractor {
	return func(segments []string) domain.URLParams {
		return ExtractDeveloper(segments, developers)
	}
}

// developerCandidates: сам slug, slug с пробелами, и то же самое без
// хвоста "-properties", если он есть.
func developerCandidates(slug string) []string {
	candidates := []string{slug, strings.ReplaceAll(slug, "-", " ")}
	if trimmed := strings.TrimSuffix(slug, developerSlugSuffix); trimmed != slug && trimmed != "" {
		candidates = append(candidates, trimmed, strings.ReplaceAll(trimmed, "-", " "))
	}
	return candidates
}

func resolveDeveloper(slug string, developers []domain.Developer) (domain.Developer, bool) {
	// cases.Caser хранит состояние, поэтому создается на каждый вызов
	fold := cases.Fold()
	names := make([]string, len(developers))
	for i, dev := range developers {
		names[i] = fold.String(strings.TrimSpace(dev.Name))
	}

	for _, candidate := range developerCandidates(slug) {
		want := fold.String(candidate)
		for i, name := range names {
			if name == want {
				return developers[i], true
			}
		}
	}
	return domain.Developer{}, false
}
