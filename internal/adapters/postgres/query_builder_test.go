package postgres_adapter

import (
	"errors"
	"fmt"
	"testing"

	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestApplyFilters_OnlyTypeID(t *testing.T) {
	where, args := applyFilters(domain.URLParams{TypeID: 1})

	assert.Equal(t, "WHERE l.is_published = true AND l.type_id = $1", where)
	assert.Equal(t, []interface{}{1}, args)
}

func TestApplyFilters_AllFields(t *testing.T) {
	params := domain.URLParams{
		TypeID:        2,
		Search:        "marina",
		PropertyName:  "Villa",
		PriceMin:      domain.IntPtr(100),
		PriceMax:      domain.IntPtr(900),
		BedroomMin:    domain.IntPtr(1),
		AreaMax:       domain.IntPtr(2000),
		DeveloperID:   domain.IntPtr(7),
		DeveloperName: "Emaar Properties",
		RegionNames:   []string{"Dubai Marina", "JLT"},
		PropertyIDs:   []int{5, 6},
		IsSale:        domain.BoolPtr(true),
		IsFinish:      domain.BoolPtr(false),
	}

	where, args := applyFilters(params)

	assert.Equal(t, "WHERE l.is_published = true"+
		" AND l.type_id = $1"+
		" AND l.title ILIKE $2 ESCAPE '\\'"+
		" AND lower(l.property_name) = lower($3)"+
		" AND l.price >= $4 AND l.price <= $5"+
		" AND l.bedrooms >= $6"+
		" AND l.area_sqft <= $7"+
		" AND l.developer_id = $8"+
		" AND l.region_name = ANY($9)"+
		" AND l.id = ANY($10)"+
		" AND l.is_sale = $11"+
		" AND l.is_finish = $12", where)
	assert.Equal(t, []interface{}{
		2, "%marina%", "Villa", 100, 900, 1, 2000, 7,
		[]string{"Dubai Marina", "JLT"}, []int{5, 6}, true, false,
	}, args)
}

func TestApplyFilters_PropertyTypeIDWinsOverName(t *testing.T) {
	where, args := applyFilters(domain.URLParams{TypeID: 1, PropertyTypeID: domain.IntPtr(4), PropertyName: "villa"})

	assert.Contains(t, where, "l.property_type_id = $2")
	assert.NotContains(t, where, "property_name")
	assert.Equal(t, []interface{}{1, 4}, args)
}

func TestOrderClause(t *testing.T) {
	assert.Equal(t, "ORDER BY l.price DESC, l.id DESC", orderClause("max"))
	assert.Equal(t, "ORDER BY l.price ASC, l.id DESC", orderClause("min"))
	assert.Equal(t, "ORDER BY l.created_at DESC, l.id DESC", orderClause(""))
	assert.Equal(t, "ORDER BY l.created_at DESC, l.id DESC", orderClause("DROP TABLE"))
}

func TestApplyFilters_SearchEscapesLikeWildcards(t *testing.T) {
	where, args := applyFilters(domain.URLParams{TypeID: 1, Search: `50%_off\`})

	assert.Equal(t, `WHERE l.is_published = true AND l.type_id = $1 AND l.title ILIKE $2 ESCAPE '\'`, where)
	assert.Equal(t, []interface{}{1, `%50\%\_off\\%`}, args)
}

func TestPgErrorFields(t *testing.T) {
	err := fmt.Errorf("failed to query: %w", &pgconn.PgError{Code: "57014", TableName: "listings"})

	fields := pgErrorFields(err, port.Fields{"query": "SELECT 1"})
	assert.Equal(t, "57014", fields["pg_code"])
	assert.Equal(t, "listings", fields["pg_table"])
	assert.Equal(t, true, fields["pg_canceled"])
	assert.Equal(t, "SELECT 1", fields["query"])

	assert.Nil(t, pgErrorFields(errors.New("plain"), nil))
}
