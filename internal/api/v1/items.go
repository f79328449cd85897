package v1

import (
	"context"
	"errors"
	"math"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/shelf/internal/domain"
	"github.com/gosuda/shelf/internal/server/middleware"
)

// ItemSummary is the list representation; description is omitted there,
// matching the lighter list payload.
type ItemSummary struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ItemDetail is the full single-item representation.
type ItemDetail struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

type CreateItemInput struct {
	Body struct {
		Name        string  `json:"name" minLength:"1" maxLength:"255" doc:"Item name"`
		Price       float64 `json:"price" minimum:"0" doc:"Non-negative price, two decimal places"`
		Description string  `json:"description,omitempty" doc:"Optional description"`
		TenantID    string  `json:"tenant_id,omitempty" doc:"Ignored; the owner is always the authenticated tenant"`
	}
}

type CreateItemOutput struct {
	Body ItemDetail
}

type ListItemsOutput struct {
	Body []ItemSummary
}

type GetItemInput struct {
	ID int64 `path:"id" doc:"Item ID"`
}

type GetItemOutput struct {
	Body ItemDetail
}

type PatchItemInput struct {
	ID   int64 `path:"id" doc:"Item ID"`
	Body struct {
		Name        *string  `json:"name,omitempty" maxLength:"255" doc:"Item name"`
		Price       *float64 `json:"price,omitempty" minimum:"0" doc:"Non-negative price"`
		Description *string  `json:"description,omitempty" doc:"Description"`
		TenantID    string   `json:"tenant_id,omitempty" doc:"Ignored; the owner never changes"`
	}
}

type PutItemInput struct {
	ID   int64 `path:"id" doc:"Item ID"`
	Body struct {
		Name        string  `json:"name" minLength:"1" maxLength:"255" doc:"Item name"`
		Price       float64 `json:"price" minimum:"0" doc:"Non-negative price"`
		Description string  `json:"description,omitempty" doc:"Description; cleared when absent"`
		TenantID    string  `json:"tenant_id,omitempty" doc:"Ignored; the owner never changes"`
	}
}

type UpdateItemOutput struct {
	Body ItemDetail
}

type DeleteItemInput struct {
	ID int64 `path:"id" doc:"Item ID"`
}

// RegisterItemRoutes wires the tenant-scoped item CRUD endpoints. Every repo
// call takes the tenant resolved by the Auth middleware; a foreign tenant's
// item id is indistinguishable from a missing one.
func RegisterItemRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-item",
		Method:        http.MethodPost,
		Path:          "/items",
		Summary:       "Create an item owned by the authenticated tenant",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateItemInput) (*CreateItemOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing tenant context")
		}

		// The owner comes from the resolved identity; any tenant_id in the
		// payload is discarded.
		now := time.Now()
		item := &domain.Item{
			TenantID:    tenantID,
			Name:        input.Body.Name,
			Price:       roundPrice(input.Body.Price),
			Description: input.Body.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}

		if err := store.Items().Create(ctx, item); err != nil {
			return nil, huma.Error500InternalServerError("failed to create item", err)
		}

		return &CreateItemOutput{Body: itemDetail(item)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-items",
		Method:      http.MethodGet,
		Path:        "/items",
		Summary:     "List the authenticated tenant's items, most recent first",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, _ *struct{}) (*ListItemsOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing tenant context")
		}

		items, err := store.Items().List(ctx, tenantID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list items", err)
		}

		out := &ListItemsOutput{Body: make([]ItemSummary, 0, len(items))}
		for _, item := range items {
			out.Body = append(out.Body, ItemSummary{ID: item.ID, Name: item.Name, Price: item.Price})
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-item",
		Method:      http.MethodGet,
		Path:        "/items/{id}",
		Summary:     "Get one of the authenticated tenant's items",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, input *GetItemInput) (*GetItemOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing tenant context")
		}

		item, err := store.Items().GetByID(ctx, tenantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("item not found")
			}
			return nil, huma.Error500InternalServerError("failed to get item", err)
		}

		return &GetItemOutput{Body: itemDetail(item)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "patch-item",
		Method:      http.MethodPatch,
		Path:        "/items/{id}",
		Summary:     "Partially update an item",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, input *PatchItemInput) (*UpdateItemOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing tenant context")
		}

		existing, err := store.Items().GetByID(ctx, tenantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("item not found")
			}
			return nil, huma.Error500InternalServerError("failed to get item", err)
		}

		if input.Body.Name != nil {
			existing.Name = *input.Body.Name
		}
		if input.Body.Price != nil {
			existing.Price = roundPrice(*input.Body.Price)
		}
		if input.Body.Description != nil {
			existing.Description = *input.Body.Description
		}
		existing.UpdatedAt = time.Now()

		if err := store.Items().Update(ctx, existing); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("item not found")
			}
			return nil, huma.Error500InternalServerError("failed to update item", err)
		}

		return &UpdateItemOutput{Body: itemDetail(existing)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-item",
		Method:      http.MethodPut,
		Path:        "/items/{id}",
		Summary:     "Replace an item",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, input *PutItemInput) (*UpdateItemOutput, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing tenant context")
		}

		existing, err := store.Items().GetByID(ctx, tenantID, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("item not found")
			}
			return nil, huma.Error500InternalServerError("failed to get item", err)
		}

		existing.Name = input.Body.Name
		existing.Price = roundPrice(input.Body.Price)
		existing.Description = input.Body.Description
		existing.UpdatedAt = time.Now()

		if err := store.Items().Update(ctx, existing); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("item not found")
			}
			return nil, huma.Error500InternalServerError("failed to update item", err)
		}

		return &UpdateItemOutput{Body: itemDetail(existing)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-item",
		Method:      http.MethodDelete,
		Path:        "/items/{id}",
		Summary:     "Delete one of the authenticated tenant's items",
		Tags:        []string{"Items"},
	}, func(ctx context.Context, input *DeleteItemInput) (*struct{}, error) {
		tenantID, ok := middleware.TenantIDFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing tenant context")
		}

		if err := store.Items().Delete(ctx, tenantID, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("item not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete item", err)
		}

		return nil, nil
	})
}

func itemDetail(i *domain.Item) ItemDetail {
	return ItemDetail{
		ID:          i.ID,
		Name:        i.Name,
		Price:       i.Price,
		Description: i.Description,
	}
}

// roundPrice clamps a price to two decimal places.
func roundPrice(p float64) float64 {
	return math.Round(p*100) / 100
}
