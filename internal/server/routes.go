package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/gosuda/shelf/internal/api/v1"
	"github.com/gosuda/shelf/internal/auth"
	"github.com/gosuda/shelf/internal/store/postgres"
)

func registerPublicRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterTenantRoutes(api, authSvc)
}

func registerProtectedRoutes(api huma.API, store *postgres.Store, authSvc *auth.Service) {
	v1.RegisterProfileRoutes(api, authSvc)
	v1.RegisterItemRoutes(api, store)
}
