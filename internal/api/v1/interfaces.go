package v1

import (
	"context"

	"github.com/gosuda/shelf/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Tenants() domain.TenantRepository
	Tokens() domain.TokenRepository
	Items() domain.ItemRepository
}

// AuthService abstracts credential and token operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.Tenant, error)
	Authenticate(ctx context.Context, email, password string) (*domain.Tenant, error)
	UpdateProfile(ctx context.Context, tenant *domain.Tenant, name, password *string) (*domain.Tenant, error)
	IssueToken(ctx context.Context, tenant *domain.Tenant) (string, error)
}
