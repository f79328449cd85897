package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Item is a tenant-scoped record. TenantID is set from the authenticated
// caller at creation and is immutable afterwards; client-supplied owner
// values are discarded by the handlers.
type Item struct {
	ID          int64
	TenantID    uuid.UUID
	Name        string
	Price       float64 // non-negative, two decimal places
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type ItemRepository interface {
	// Create inserts an item and fills in the generated ID.
	Create(ctx context.Context, i *Item) error
	// GetByID returns ErrNotFound for missing and foreign-tenant ids alike.
	GetByID(ctx context.Context, tenantID uuid.UUID, id int64) (*Item, error)
	// List returns the tenant's items ordered by descending id.
	List(ctx context.Context, tenantID uuid.UUID) ([]*Item, error)
	// Update rewrites the item's mutable fields, scoped by TenantID and ID.
	Update(ctx context.Context, i *Item) error
	Delete(ctx context.Context, tenantID uuid.UUID, id int64) error
}
