package auth_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gosuda/shelf/internal/auth"
	"github.com/gosuda/shelf/internal/domain"
)

func TestIssueToken(t *testing.T) {
	t.Parallel()

	t.Run("mints_opaque_token", func(t *testing.T) {
		t.Parallel()

		tenant := &domain.Tenant{ID: uuid.New(), IsActive: true}
		tokens := &mockTokenRepo{}
		svc := newTestService(&mockTenantRepo{}, tokens)

		token, err := svc.IssueToken(context.Background(), tenant)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(token, "shelf_"), "token %q must carry the shelf_ prefix", token)
		assert.Len(t, token, len("shelf_")+40)
		require.NotNil(t, tokens.candidate)
		assert.Equal(t, tenant.ID, tokens.candidate.TenantID)
	})

	t.Run("reuses_existing_token", func(t *testing.T) {
		t.Parallel()

		tenant := &domain.Tenant{ID: uuid.New(), IsActive: true}
		existing := &domain.AuthToken{
			ID:        uuid.New(),
			TenantID:  tenant.ID,
			Token:     "shelf_0123456789abcdef0123456789abcdef01234567",
			CreatedAt: time.Now().Add(-time.Hour),
		}
		tokens := &mockTokenRepo{existing: existing}
		svc := newTestService(&mockTenantRepo{}, tokens)

		first, err := svc.IssueToken(context.Background(), tenant)
		require.NoError(t, err)
		second, err := svc.IssueToken(context.Background(), tenant)
		require.NoError(t, err)

		assert.Equal(t, existing.Token, first)
		assert.Equal(t, first, second, "repeated authentication must return the same token")
	})
}

func TestResolveToken(t *testing.T) {
	t.Parallel()

	tenantID := uuid.New()
	tokenRow := &domain.AuthToken{ID: uuid.New(), TenantID: tenantID, Token: "shelf_aa", CreatedAt: time.Now()}

	t.Run("happy_path", func(t *testing.T) {
		t.Parallel()

		tenants := &mockTenantRepo{getByIDTenant: &domain.Tenant{ID: tenantID, IsActive: true}}
		tokens := &mockTokenRepo{getByTokenToken: tokenRow}
		svc := newTestService(tenants, tokens)

		tenant, err := svc.ResolveToken(context.Background(), tokenRow.Token)
		require.NoError(t, err)
		assert.Equal(t, tenantID, tenant.ID)
	})

	t.Run("empty_token", func(t *testing.T) {
		t.Parallel()

		svc := newTestService(&mockTenantRepo{}, &mockTokenRepo{})

		_, err := svc.ResolveToken(context.Background(), "")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("unknown_token", func(t *testing.T) {
		t.Parallel()

		tokens := &mockTokenRepo{getByTokenErr: domain.ErrNotFound}
		svc := newTestService(&mockTenantRepo{}, tokens)

		_, err := svc.ResolveToken(context.Background(), "shelf_unknown")
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("missing_tenant_row", func(t *testing.T) {
		t.Parallel()

		tenants := &mockTenantRepo{getByIDErr: domain.ErrNotFound}
		tokens := &mockTokenRepo{getByTokenToken: tokenRow}
		svc := newTestService(tenants, tokens)

		_, err := svc.ResolveToken(context.Background(), tokenRow.Token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})

	t.Run("inactive_tenant", func(t *testing.T) {
		t.Parallel()

		tenants := &mockTenantRepo{getByIDTenant: &domain.Tenant{ID: tenantID, IsActive: false}}
		tokens := &mockTokenRepo{getByTokenToken: tokenRow}
		svc := newTestService(tenants, tokens)

		_, err := svc.ResolveToken(context.Background(), tokenRow.Token)
		assert.ErrorIs(t, err, auth.ErrInvalidToken)
	})
}
