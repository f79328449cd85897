package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/shelf/internal/domain"
	"github.com/gosuda/shelf/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers — inject the resolved tenant into context for DoCtx
// ---------------------------------------------------------------------------

func tenantCtx(tenant *domain.Tenant) context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, middleware.ContextKeyTenantID, tenant.ID)
	ctx = context.WithValue(ctx, middleware.ContextKeyTenant, tenant)
	return ctx
}

func testTenant() *domain.Tenant {
	return &domain.Tenant{
		ID:       uuid.New(),
		Email:    "t1@x.com",
		Name:     "Tenant One",
		IsActive: true,
	}
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	tenants domain.TenantRepository
	tokens  domain.TokenRepository
	items   domain.ItemRepository
}

func (m *mockDataStore) Tenants() domain.TenantRepository { return m.tenants }
func (m *mockDataStore) Tokens() domain.TokenRepository   { return m.tokens }
func (m *mockDataStore) Items() domain.ItemRepository     { return m.items }

// ---------------------------------------------------------------------------
// Mock TenantRepository
// ---------------------------------------------------------------------------

type mockTenantRepo struct {
	createFunc     func(ctx context.Context, t *domain.Tenant) error
	getByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Tenant, error)
	getByEmailFunc func(ctx context.Context, email string) (*domain.Tenant, error)
	updateFunc     func(ctx context.Context, t *domain.Tenant) error
}

func (m *mockTenantRepo) Create(ctx context.Context, t *domain.Tenant) error {
	return m.createFunc(ctx, t)
}

func (m *mockTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockTenantRepo) GetByEmail(ctx context.Context, email string) (*domain.Tenant, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockTenantRepo) Update(ctx context.Context, t *domain.Tenant) error {
	return m.updateFunc(ctx, t)
}

// ---------------------------------------------------------------------------
// Mock TokenRepository
// ---------------------------------------------------------------------------

type mockTokenRepo struct {
	getOrCreateFunc func(ctx context.Context, candidate *domain.AuthToken) (*domain.AuthToken, error)
	getByTokenFunc  func(ctx context.Context, token string) (*domain.AuthToken, error)
}

func (m *mockTokenRepo) GetOrCreate(ctx context.Context, candidate *domain.AuthToken) (*domain.AuthToken, error) {
	return m.getOrCreateFunc(ctx, candidate)
}

func (m *mockTokenRepo) GetByToken(ctx context.Context, token string) (*domain.AuthToken, error) {
	return m.getByTokenFunc(ctx, token)
}

// ---------------------------------------------------------------------------
// Mock ItemRepository
// ---------------------------------------------------------------------------

type mockItemRepo struct {
	createFunc  func(ctx context.Context, i *domain.Item) error
	getByIDFunc func(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Item, error)
	listFunc    func(ctx context.Context, tenantID uuid.UUID) ([]*domain.Item, error)
	updateFunc  func(ctx context.Context, i *domain.Item) error
	deleteFunc  func(ctx context.Context, tenantID uuid.UUID, id int64) error
}

func (m *mockItemRepo) Create(ctx context.Context, i *domain.Item) error {
	return m.createFunc(ctx, i)
}

func (m *mockItemRepo) GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*domain.Item, error) {
	return m.getByIDFunc(ctx, tenantID, id)
}

func (m *mockItemRepo) List(ctx context.Context, tenantID uuid.UUID) ([]*domain.Item, error) {
	return m.listFunc(ctx, tenantID)
}

func (m *mockItemRepo) Update(ctx context.Context, i *domain.Item) error {
	return m.updateFunc(ctx, i)
}

func (m *mockItemRepo) Delete(ctx context.Context, tenantID uuid.UUID, id int64) error {
	return m.deleteFunc(ctx, tenantID, id)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc      func(ctx context.Context, email, password, name string) (*domain.Tenant, error)
	authenticateFunc  func(ctx context.Context, email, password string) (*domain.Tenant, error)
	updateProfileFunc func(ctx context.Context, tenant *domain.Tenant, name, password *string) (*domain.Tenant, error)
	issueTokenFunc    func(ctx context.Context, tenant *domain.Tenant) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password, name string) (*domain.Tenant, error) {
	return m.registerFunc(ctx, email, password, name)
}

func (m *mockAuthService) Authenticate(ctx context.Context, email, password string) (*domain.Tenant, error) {
	return m.authenticateFunc(ctx, email, password)
}

func (m *mockAuthService) UpdateProfile(ctx context.Context, tenant *domain.Tenant, name, password *string) (*domain.Tenant, error) {
	return m.updateProfileFunc(ctx, tenant, name, password)
}

func (m *mockAuthService) IssueToken(ctx context.Context, tenant *domain.Tenant) (string, error) {
	return m.issueTokenFunc(ctx, tenant)
}
