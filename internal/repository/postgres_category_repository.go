package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/prohmpiriya/charity-events/internal/domain"
	"github.com/prohmpiriya/charity-events/pkg/telemetry"
)

// PostgresCategoryRepository implements CategoryRepository using PostgreSQL
type PostgresCategoryRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(pool *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{pool: pool}
}

// List retrieves all categories ordered by name
func (r *PostgresCategoryRepository) List(ctx context.Context) (categories []*domain.Category, err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, "list_categories")
	defer func() { telemetry.EndSpan(span, err) }()

	q := ListCategoriesQuery()
	rows, err := r.pool.Query(ctx, q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.Category, error) {
		c := &domain.Category{}
		if err := row.Scan(&c.ID, &c.Name, &c.Description); err != nil {
			return nil, err
		}
		return c, nil
	})
}
