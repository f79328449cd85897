package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/shelf/internal/domain"
)

type ItemRepo struct {
	pool *pgxpool.Pool
}

func NewItemRepo(pool *pgxpool.Pool) *ItemRepo {
	return &ItemRepo{pool: pool}
}

func (r *ItemRepo) Create(ctx context.Context, i *domain.Item) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO items (tenant_id, name, price, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		i.TenantID, i.Name, i.Price, nilIfEmpty(i.Description), i.CreatedAt, i.UpdatedAt,
	).Scan(&i.ID)
	if err != nil {
		return fmt.Errorf("itemRepo.Create: %w", err)
	}

	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Item, error) {
	var i domain.Item
	var description *string

	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, name, price, description, created_at, updated_at
		 FROM items WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	).Scan(&i.ID, &i.TenantID, &i.Name, &i.Price, &description, &i.CreatedAt, &i.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("itemRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("itemRepo.GetByID: %w", err)
	}

	i.Description = derefStr(description)

	return &i, nil
}

func (r *ItemRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Item, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, tenant_id, name, price, description, created_at, updated_at
		 FROM items WHERE tenant_id = $1 ORDER BY id DESC
		 LIMIT 500`,
		tenantID,
	)
	if err != nil {
		return nil, fmt.Errorf("itemRepo.List: %w", err)
	}
	defer rows.Close()

	var items []*domain.Item
	for rows.Next() {
		var i domain.Item
		var description *string

		err = rows.Scan(&i.ID, &i.TenantID, &i.Name, &i.Price, &description, &i.CreatedAt, &i.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("itemRepo.List: scan: %w", err)
		}

		i.Description = derefStr(description)
		items = append(items, &i)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("itemRepo.List: rows: %w", err)
	}

	return items, nil
}

func (r *ItemRepo) Update(ctx context.Context, i *domain.Item) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE items SET name = $1, price = $2, description = $3, updated_at = now()
		 WHERE tenant_id = $4 AND id = $5`,
		i.Name, i.Price, nilIfEmpty(i.Description), i.TenantID, i.ID,
	)
	if err != nil {
		return fmt.Errorf("itemRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("itemRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ItemRepo) Delete(ctx context.Context, tenantID uuid.UUID, id int64) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM items WHERE tenant_id = $1 AND id = $2`,
		tenantID, id,
	)
	if err != nil {
		return fmt.Errorf("itemRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("itemRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

// --- Helpers ---

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
