package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Tenant is an account that owns a disjoint subset of items. The email is
// stored lowercased and uniquely identifies the tenant.
type Tenant struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string // argon2id, never serialized outbound
	Name         string
	IsActive     bool
	IsStaff      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AuthToken is the opaque bearer credential for a tenant. Exactly one row
// exists per tenant; the token is handed back on every successful
// authentication rather than rotated, so the raw value is stored.
type AuthToken struct {
	ID        uuid.UUID
	TenantID  uuid.UUID
	Token     string
	CreatedAt time.Time
}

type TenantRepository interface {
	// Create inserts a tenant. Returns ErrConflict when the email is taken.
	Create(ctx context.Context, t *Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	GetByEmail(ctx context.Context, email string) (*Tenant, error)
	Update(ctx context.Context, t *Tenant) error
}

type TokenRepository interface {
	// GetOrCreate returns the tenant's existing token row, inserting the
	// candidate only when none exists yet.
	GetOrCreate(ctx context.Context, candidate *AuthToken) (*AuthToken, error)
	GetByToken(ctx context.Context, token string) (*AuthToken, error)
}
