package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gosuda/shelf/internal/domain"
)

// ErrInvalidToken is returned when a bearer token resolves to no tenant.
var ErrInvalidToken = errors.New("auth: invalid token")

const (
	tokenPrefix  = "shelf_"
	tokenRandLen = 20 // 20 bytes = 40 hex chars
)

// IssueToken returns the tenant's bearer token, minting one on first call.
// Subsequent calls for the same tenant return the original token unchanged;
// tokens are never rotated, so the raw value is stored rather than a hash.
func (s *Service) IssueToken(ctx context.Context, tenant *domain.Tenant) (string, error) {
	raw := make([]byte, tokenRandLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("auth.IssueToken: %w", err)
	}

	candidate := &domain.AuthToken{
		ID:        uuid.New(),
		TenantID:  tenant.ID,
		Token:     tokenPrefix + hex.EncodeToString(raw),
		CreatedAt: time.Now(),
	}

	token, err := s.tokenRepo.GetOrCreate(ctx, candidate)
	if err != nil {
		return "", fmt.Errorf("auth.IssueToken: %w", err)
	}

	return token.Token, nil
}

// ResolveToken maps a raw bearer token to its owning tenant. Every failure
// mode (unknown token, missing tenant row, deactivated account) collapses to
// ErrInvalidToken so the gate fails closed.
func (s *Service) ResolveToken(ctx context.Context, raw string) (*domain.Tenant, error) {
	if raw == "" {
		return nil, fmt.Errorf("auth.ResolveToken: %w", ErrInvalidToken)
	}

	token, err := s.tokenRepo.GetByToken(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("auth.ResolveToken: %w", ErrInvalidToken)
	}

	tenant, err := s.tenantRepo.GetByID(ctx, token.TenantID)
	if err != nil {
		return nil, fmt.Errorf("auth.ResolveToken: %w", ErrInvalidToken)
	}

	if !tenant.IsActive {
		return nil, fmt.Errorf("auth.ResolveToken: %w", ErrInvalidToken)
	}

	return tenant, nil
}
