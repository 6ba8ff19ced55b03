package postgres_adapter

import (
	"context"
	"fmt"

	"real-estate-system/internal/contextkeys"
	"real-estate-system/internal/core/domain"
	"real-estate-system/internal/core/port"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDeveloperRepository читает справочник застройщиков.
type PostgresDeveloperRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresDeveloperRepository(pool *pgxpool.Pool) (*PostgresDeveloperRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresDeveloperRepository{pool: pool}, nil
}

func (r *PostgresDeveloperRepository) ListDevelopers(ctx context.Context) ([]domain.Developer, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresDeveloperRepository",
		"method":    "ListDevelopers",
	})

	query := "SELECT id, name FROM developers ORDER BY name"
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		repoLogger.Error("Failed to query developers", err, pgErrorFields(err, port.Fields{"query": query}))
		return nil, fmt.Errorf("failed to query developers: %w", err)
	}
	defer rows.Close()

	developers := make([]domain.Developer, 0)
	for rows.Next() {
		var dev domain.Developer
		if err := rows.Scan(&dev.ID, &dev.Name); err != nil {
			repoLogger.Error("Failed to scan developer row", err, nil)
			return nil, fmt.Errorf("failed to scan developer: %w", err)
		}
		developers = append(developers, dev)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during developers iteration", err, nil)
		return nil, fmt.Errorf("error during developers iteration: %w", err)
	}

	repoLogger.Debug("Developers loaded", port.Fields{"count": len(developers)})
	return developers, nil
}
