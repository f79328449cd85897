package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/shelf/internal/domain"
)

type contextKey string

const (
	ContextKeyTenantID contextKey = "tenant_id"
	ContextKeyTenant   contextKey = "tenant"
)

func TenantIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	v, ok := ctx.Value(ContextKeyTenantID).(uuid.UUID)
	return v, ok
}

// TenantFromContext returns the full tenant record resolved by Auth. Handlers
// that only need the owner filter should use TenantIDFromContext instead.
func TenantFromContext(ctx context.Context) (*domain.Tenant, bool) {
	v, ok := ctx.Value(ContextKeyTenant).(*domain.Tenant)
	return v, ok
}
