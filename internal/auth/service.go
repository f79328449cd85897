package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"

	"github.com/gosuda/shelf/internal/domain"
)

// Sentinel errors for the auth package.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrTenantExists       = errors.New("auth: tenant already exists")
	ErrWeakPassword       = errors.New("auth: password too short")
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 5

// argon2id parameters following OWASP recommendations.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024 // 64 MiB
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

// Service provides tenant registration, authentication, and profile updates.
type Service struct {
	tenantRepo domain.TenantRepository
	tokenRepo  domain.TokenRepository
}

// NewService creates a new auth service.
func NewService(tenantRepo domain.TenantRepository, tokenRepo domain.TokenRepository) *Service {
	return &Service{
		tenantRepo: tenantRepo,
		tokenRepo:  tokenRepo,
	}
}

// Register creates a new tenant with email/password. The email is lowercased
// so uniqueness is case-insensitive; the password is hashed with argon2id
// before storage and the plaintext is never persisted.
func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.Tenant, error) {
	if len(password) < MinPasswordLen {
		return nil, fmt.Errorf("auth.Register: %w", ErrWeakPassword)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	now := time.Now()
	tenant := &domain.Tenant{
		ID:           uuid.New(),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		Name:         name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, fmt.Errorf("auth.Register: %w", ErrTenantExists)
		}
		return nil, fmt.Errorf("auth.Register: %w", err)
	}

	return tenant, nil
}

// Authenticate validates email/password and returns the tenant. Unknown
// email, wrong password, blank password, and inactive account all fail with
// the same ErrInvalidCredentials so existence never leaks.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.Tenant, error) {
	if password == "" {
		return nil, fmt.Errorf("auth.Authenticate: %w", ErrInvalidCredentials)
	}

	tenant, err := s.tenantRepo.GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("auth.Authenticate: %w", ErrInvalidCredentials)
	}

	if !tenant.IsActive || !verifyPassword(password, tenant.PasswordHash) {
		return nil, fmt.Errorf("auth.Authenticate: %w", ErrInvalidCredentials)
	}

	return tenant, nil
}

// UpdateProfile applies a partial update to the tenant's own record. A nil
// field is left untouched; a new password is re-hashed. Email and role flags
// are not addressable here.
func (s *Service) UpdateProfile(ctx context.Context, tenant *domain.Tenant, name, password *string) (*domain.Tenant, error) {
	if name != nil {
		tenant.Name = *name
	}

	if password != nil {
		if len(*password) < MinPasswordLen {
			return nil, fmt.Errorf("auth.UpdateProfile: %w", ErrWeakPassword)
		}
		hash, err := hashPassword(*password)
		if err != nil {
			return nil, fmt.Errorf("auth.UpdateProfile: %w", err)
		}
		tenant.PasswordHash = hash
	}

	tenant.UpdatedAt = time.Now()

	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, fmt.Errorf("auth.UpdateProfile: %w", err)
	}

	return tenant, nil
}

// NormalizeEmail lowercases and trims an email address for case-insensitive
// lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// hashPassword generates an argon2id hash with a random salt.
// Format: hex(salt) + "$" + hex(hash)
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return hex.EncodeToString(salt) + "$" + hex.EncodeToString(hash), nil
}

// verifyPassword checks a password against an argon2id hash.
func verifyPassword(password, encoded string) bool {
	// Split salt$hash
	var saltHex, hashHex string
	for i := range len(encoded) {
		if encoded[i] == '$' {
			saltHex = encoded[:i]
			hashHex = encoded[i+1:]
			break
		}
	}

	if saltHex == "" || hashHex == "" {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}

	expectedHash, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	computed := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	// Constant-time comparison to prevent timing attacks.
	if len(computed) != len(expectedHash) {
		return false
	}

	var diff byte
	for i := range computed {
		diff |= computed[i] ^ expectedHash[i]
	}

	return diff == 0
}
