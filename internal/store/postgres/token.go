package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/shelf/internal/domain"
)

type TokenRepo struct {
	pool *pgxpool.Pool
}

func NewTokenRepo(pool *pgxpool.Pool) *TokenRepo {
	return &TokenRepo{pool: pool}
}

// GetOrCreate returns the tenant's token row, inserting candidate when none
// exists. A racing insert trips the unique index on tenant_id, in which case
// the winner's row is re-read and returned.
func (r *TokenRepo) GetOrCreate(ctx context.Context, candidate *domain.AuthToken) (*domain.AuthToken, error) {
	existing, err := r.getByTenant(ctx, candidate)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("tokenRepo.GetOrCreate: %w", err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO auth_tokens (id, tenant_id, token, created_at)
		 VALUES ($1, $2, $3, $4)`,
		candidate.ID, candidate.TenantID, candidate.Token, candidate.CreatedAt,
	)
	if isUniqueViolation(err) {
		return r.getByTenant(ctx, candidate)
	}
	if err != nil {
		return nil, fmt.Errorf("tokenRepo.GetOrCreate: %w", err)
	}

	return candidate, nil
}

func (r *TokenRepo) GetByToken(ctx context.Context, token string) (*domain.AuthToken, error) {
	var t domain.AuthToken

	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, token, created_at
		 FROM auth_tokens WHERE token = $1`,
		token,
	).Scan(&t.ID, &t.TenantID, &t.Token, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tokenRepo.GetByToken: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("tokenRepo.GetByToken: %w", err)
	}

	return &t, nil
}

func (r *TokenRepo) getByTenant(ctx context.Context, candidate *domain.AuthToken) (*domain.AuthToken, error) {
	var t domain.AuthToken

	err := r.pool.QueryRow(ctx,
		`SELECT id, tenant_id, token, created_at
		 FROM auth_tokens WHERE tenant_id = $1`,
		candidate.TenantID,
	).Scan(&t.ID, &t.TenantID, &t.Token, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("tokenRepo.getByTenant: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("tokenRepo.getByTenant: %w", err)
	}

	return &t, nil
}
