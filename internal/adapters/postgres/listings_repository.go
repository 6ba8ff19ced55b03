package postgres_adapter

import (
	"context"
	"fmt"

	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresListingsRepository - реализация ListingsSearchPort.
type PostgresListingsRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresListingsRepository(pool *pgxpool.Pool) (*PostgresListingsRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresListingsRepository{pool: pool}, nil
}

const listingColumns = `l.id, l.type_id, l.title, l.price, l.bedrooms, l.area_sqft,
	l.property_type_id, COALESCE(l.property_name, ''), l.developer_id, COALESCE(d.name, ''),
	COALESCE(l.region_name, ''), l.is_sale, l.is_finish, l.images, l.created_at`

// Search считает общее число и читает страницу в одной read-only транзакции.
func (r *PostgresListingsRepository) Search(ctx context.Context, params domain.URLParams, limit, offset int) (*domain.ListingsPage, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresListingsRepository",
		"method":    "Search",
		"limit":     limit,
		"offset":    offset,
	})

	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidPagination, limit)
	}

	where, args := applyFilters(params)

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	page := &domain.ListingsPage{
		Listings:     []domain.ListingCard{},
		CurrentPage:  offset/limit + 1,
		ItemsPerPage: limit,
	}

	countQuery := "SELECT COUNT(*) FROM listings l " + where
	if err := tx.QueryRow(ctx, countQuery, args...).Scan(&page.TotalCount); err != nil {
		repoLogger.Error("Failed to count listings", err, pgErrorFields(err, port.Fields{"query": countQuery}))
		return nil, fmt.Errorf("failed to count listings: %w", err)
	}
	if page.TotalCount == 0 {
		return page, nil
	}

	dataQuery := fmt.Sprintf(
		"SELECT %s FROM listings l LEFT JOIN developers d ON d.id = l.developer_id %s %s LIMIT $%d OFFSET $%d",
		listingColumns, where, orderClause(params.Sort), len(args)+1, len(args)+2,
	)
	rows, err := tx.Query(ctx, dataQuery, append(args, limit, offset)...)
	if err != nil {
		repoLogger.Error("Failed to query listings", err, pgErrorFields(err, port.Fields{"query": dataQuery}))
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var card domain.ListingCard
		err := rows.Scan(
			&card.ID, &card.TypeID, &card.Title, &card.Price, &card.Bedrooms, &card.Area,
			&card.PropertyTypeID, &card.PropertyName, &card.DeveloperID, &card.DeveloperName,
			&card.RegionName, &card.IsSale, &card.IsFinish, &card.Images, &card.CreatedAt,
		)
		if err != nil {
			repoLogger.Error("Failed to scan listing row", err, nil)
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		page.Listings = append(page.Listings, card)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during listings iteration", err, nil)
		return nil, fmt.Errorf("error during listings iteration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	repoLogger.Debug("Listings found", port.Fields{"total_count": page.TotalCount, "on_page": len(page.Listings)})
	return page, nil
}
