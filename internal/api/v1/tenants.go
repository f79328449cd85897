package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/shelf/internal/auth"
	"github.com/gosuda/shelf/internal/server/middleware"
)

type CreateTenantInput struct {
	Body struct {
		Email    string `json:"email" format:"email" maxLength:"255" doc:"Tenant email (case-insensitive unique)"`
		Password string `json:"password" maxLength:"128" doc:"Password, at least 5 characters"` //nolint:gosec // G117: registration DTO
		Name     string `json:"name,omitempty" maxLength:"255" doc:"Display name"`
	}
}

type CreateTenantOutput struct {
	Body struct {
		ID    uuid.UUID `json:"id"`
		Email string    `json:"email"`
		Name  string    `json:"name,omitempty"`
	}
}

type CreateTokenInput struct {
	Body struct {
		Email    string `json:"email" maxLength:"255" doc:"Tenant email"`
		Password string `json:"password" maxLength:"128" doc:"Password"` //nolint:gosec // G117: login credential DTO
	}
}

type CreateTokenOutput struct {
	Body struct {
		Token string `json:"token"` //nolint:gosec // G117: auth response DTO
	}
}

type GetProfileOutput struct {
	Body struct {
		Name  string `json:"name,omitempty"`
		Email string `json:"email"`
	}
}

type UpdateProfileInput struct {
	Body struct {
		Name     *string `json:"name,omitempty" maxLength:"255" doc:"Display name"`
		Password *string `json:"password,omitempty" maxLength:"128" doc:"New password, at least 5 characters"` //nolint:gosec // G117: profile DTO
	}
}

type UpdateProfileOutput struct {
	Body struct {
		Name  string `json:"name,omitempty"`
		Email string `json:"email"`
	}
}

// RegisterTenantRoutes wires the unauthenticated tenant endpoints:
// registration and token issuance.
func RegisterTenantRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-tenant",
		Method:        http.MethodPost,
		Path:          "/tenants/create",
		Summary:       "Register a new tenant",
		Tags:          []string{"Tenants"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateTenantInput) (*CreateTenantOutput, error) {
		tenant, err := authSvc.Register(ctx, input.Body.Email, input.Body.Password, input.Body.Name)
		if err != nil {
			if errors.Is(err, auth.ErrTenantExists) {
				return nil, huma.Error400BadRequest("a tenant with this email already exists")
			}
			if errors.Is(err, auth.ErrWeakPassword) {
				return nil, huma.Error400BadRequest("password must be at least 5 characters")
			}
			return nil, huma.Error500InternalServerError("failed to register tenant", err)
		}

		out := &CreateTenantOutput{}
		out.Body.ID = tenant.ID
		out.Body.Email = tenant.Email
		out.Body.Name = tenant.Name
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "create-token",
		Method:      http.MethodPost,
		Path:        "/tenants/token",
		Summary:     "Issue a bearer token for valid credentials",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *CreateTokenInput) (*CreateTokenOutput, error) {
		tenant, err := authSvc.Authenticate(ctx, input.Body.Email, input.Body.Password)
		if err != nil {
			// Same response for unknown email and wrong password; no token
			// field is present in the error body.
			return nil, huma.Error400BadRequest("unable to authenticate with provided credentials")
		}

		token, err := authSvc.IssueToken(ctx, tenant)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to issue token", err)
		}

		out := &CreateTokenOutput{}
		out.Body.Token = token
		return out, nil
	})
}

// RegisterProfileRoutes wires the authenticated self-service profile
// endpoints. The record addressed is always the caller's own; no id-based
// addressing exists, so cross-tenant profile edits are impossible by
// construction.
func RegisterProfileRoutes(api huma.API, authSvc AuthService) {
	huma.Register(api, huma.Operation{
		OperationID: "get-profile",
		Method:      http.MethodGet,
		Path:        "/tenants/me",
		Summary:     "Get the authenticated tenant's profile",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, _ *struct{}) (*GetProfileOutput, error) {
		tenant, ok := middleware.TenantFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing tenant context")
		}

		out := &GetProfileOutput{}
		out.Body.Name = tenant.Name
		out.Body.Email = tenant.Email
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-profile",
		Method:      http.MethodPatch,
		Path:        "/tenants/me",
		Summary:     "Update the authenticated tenant's name or password",
		Tags:        []string{"Tenants"},
	}, func(ctx context.Context, input *UpdateProfileInput) (*UpdateProfileOutput, error) {
		tenant, ok := middleware.TenantFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("missing tenant context")
		}

		updated, err := authSvc.UpdateProfile(ctx, tenant, input.Body.Name, input.Body.Password)
		if err != nil {
			if errors.Is(err, auth.ErrWeakPassword) {
				return nil, huma.Error400BadRequest("password must be at least 5 characters")
			}
			return nil, huma.Error500InternalServerError("failed to update profile", err)
		}

		out := &UpdateProfileOutput{}
		out.Body.Name = updated.Name
		out.Body.Email = updated.Email
		return out, nil
	})
}
