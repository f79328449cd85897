package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/shelf/internal/domain"
)

// TokenResolver maps a raw bearer token to its owning tenant.
// *auth.Service satisfies this interface.
type TokenResolver interface {
	ResolveToken(ctx context.Context, raw string) (*domain.Tenant, error)
}

// TokenCache is an optional read-through cache for token resolution.
// *redis.TokenCache satisfies this interface; nil disables caching.
type TokenCache interface {
	Get(ctx context.Context, token string) (uuid.UUID, bool, error)
	Set(ctx context.Context, token string, tenantID uuid.UUID) error
}

// Auth is the access-control gate. It resolves the bearer token once per
// request and injects the tenant identity into the context; every downstream
// read and write is scoped by that identity and nothing else. Requests with a
// missing or invalid token fail closed with 401.
func Auth(resolver TokenResolver, tenants domain.TenantRepository, cache TokenCache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := extractBearer(r)
			if tok == "" {
				unauthorized(w)
				return
			}

			tenant := resolveCached(r.Context(), tok, tenants, cache)
			if tenant == nil {
				var err error
				tenant, err = resolver.ResolveToken(r.Context(), tok)
				if err != nil {
					unauthorized(w)
					return
				}
				if cache != nil {
					if cacheErr := cache.Set(r.Context(), tok, tenant.ID); cacheErr != nil {
						log.Warn().Err(cacheErr).Msg("auth: failed to cache token resolution")
					}
				}
			}

			ctx := context.WithValue(r.Context(), ContextKeyTenantID, tenant.ID)
			ctx = context.WithValue(ctx, ContextKeyTenant, tenant)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolveCached attempts a cache-hit resolution. The cached value is only the
// tenant ID, so the tenant row is still re-read; a deactivated account drops
// out here the same way it does on the uncached path.
func resolveCached(ctx context.Context, tok string, tenants domain.TenantRepository, cache TokenCache) *domain.Tenant {
	if cache == nil {
		return nil
	}

	tenantID, ok, err := cache.Get(ctx, tok)
	if err != nil {
		log.Warn().Err(err).Msg("auth: token cache lookup failed")
		return nil
	}
	if !ok {
		return nil
	}

	tenant, err := tenants.GetByID(ctx, tenantID)
	if err != nil || !tenant.IsActive {
		return nil
	}

	return tenant
}

func extractBearer(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return auth[7:]
	}
	return ""
}

func unauthorized(w http.ResponseWriter) {
	http.Error(w, `{"title":"Unauthorized","status":401,"detail":"missing or invalid credentials"}`, http.StatusUnauthorized)
}
