package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/gosuda/crew/internal/api/v1"
	"github.com/gosuda/crew/internal/notify"
	"github.com/gosuda/crew/internal/policy"
	"github.com/gosuda/crew/internal/store/postgres"
)

func registerAuthRoutes(api huma.API, authSvc v1.AuthService) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerAPIRoutes(api huma.API, store *postgres.Store, notifier *notify.Notifier, roster *policy.RosterFetcher) {
	v1.RegisterTaskRoutes(api, store, notifier)
	v1.RegisterMemberRoutes(api, store, roster)
	v1.RegisterDepartmentRoutes(api, store)
}
