package postgres_adapter

import (
	"fmt"
	"strings"

	"real-estate-system/internal/core/domain"
)

type queryBuilder struct {
	conditions []string
	args       []interface{}
	argId      int
}

func newQueryBuilder() *queryBuilder {
	return &queryBuilder{
		argId:      1,
		conditions: []string{"l.is_published = true"},
		args:       make([]interface{}, 0),
	}
}

func (qb *queryBuilder) addCondition(condition string, fieldName string, arg interface{}) {
	qb.conditions = append(qb.conditions, fmt.Sprintf(condition, fieldName, qb.argId))
	qb.args = append(qb.args, arg)
	qb.argId++
}

// AddIntRange добавляет границы, которые заданы
func (qb *queryBuilder) AddIntRange(fieldName string, min *int, max *int) {
	if min != nil {
		qb.addCondition("%s >= $%d", fieldName, *min)
	}
	if max != nil {
		qb.addCondition("%s <= $%d", fieldName, *max)
	}
}

func (qb *queryBuilder) build() (string, []interface{}) {
	return "WHERE " + strings.Join(qb.conditions, " AND "), qb.args
}

// applyFilters переводит URLParams в WHERE и аргументы запроса.
// Противоречивые границы передаются как есть: такой запрос просто ничего не найдет.
func applyFilters(params domain.URLParams) (string, []interface{}) {
	qb := newQueryBuilder()

	qb.addCondition("%s = $%d", "l.type_id", params.TypeID)

	if params.Search != "" {
		qb.addCondition(`%s ILIKE $%d ESCAPE '\'`, "l.title", "%"+escapeLike(params.Search)+"%")
	}

	if params.PropertyTypeID != nil {
		qb.addCondition("%s = $%d", "l.property_type_id", *params.PropertyTypeID)
	} else if params.PropertyName != "" {
		qb.addCondition("lower(%s) = lower($%d)", "l.property_name", params.PropertyName)
	}

	qb.AddIntRange("l.price", params.PriceMin, params.PriceMax)
	qb.AddIntRange("l.bedrooms", params.BedroomMin, params.BedroomMax)
	qb.AddIntRange("l.area_sqft", params.AreaMin, params.AreaMax)

	if params.DeveloperID != nil {
		qb.addCondition("%s = $%d", "l.developer_id", *params.DeveloperID)
	}

	if params.RegionName != "" {
		qb.addCondition("%s = $%d", "l.region_name", params.RegionName)
	}
	if len(params.RegionNames) > 0 {
		qb.addCondition("%s = ANY($%d)", "l.region_name", params.RegionNames)
	}
	if len(params.PropertyIDs) > 0 {
		qb.addCondition("%s = ANY($%d)", "l.id", params.PropertyIDs)
	}

	if params.IsSale != nil {
		qb.addCondition("%s = $%d", "l.is_sale", *params.IsSale)
	}
	if params.IsFinish != nil {
		qb.addCondition("%s = $%d", "l.is_finish", *params.IsFinish)
	}

	return qb.build()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike экранирует метасимволы LIKE, чтобы строка поиска совпадала буквально.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// orderClause: "max" - дорогие первыми, "min" - дешевые, иначе самые новые.
func orderClause(sort string) string {
	switch sort {
	case "max":
		return "ORDER BY l.price DESC, l.id DESC"
	case "min":
		return "ORDER BY l.price ASC, l.id DESC"
	default:
		return "ORDER BY l.created_at DESC, l.id DESC"
	}
}
