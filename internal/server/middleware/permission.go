package middleware

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/gosuda/crew/internal/policy"
)

// RequirePermission returns a huma operation middleware that checks the
// context user against the permission evaluator for the given action. It
// must run inside a router group behind the Auth middleware, which stores
// the user in the request context.
//
// Writes 401 Unauthorized when no user is found in context (Auth middleware
// not applied or authentication failed) and 403 Forbidden when the policy
// denies the action.
func RequirePermission(api huma.API, action policy.Action) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		user, ok := UserFromContext(ctx.Context())
		if !ok {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "authentication required")
			return
		}

		if !policy.HasPermission(user, action) {
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "insufficient permissions")
			return
		}

		next(ctx)
	}
}
