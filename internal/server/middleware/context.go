package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/crew/internal/domain"
)

type contextKey string

const (
	// ContextKeyUser holds the authenticated *domain.User reconstructed from
	// token claims (id, roles, department: enough for policy checks).
	ContextKeyUser contextKey = "user"
)

func WithUser(ctx context.Context, u *domain.User) context.Context {
	return context.WithValue(ctx, ContextKeyUser, u)
}

func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(ContextKeyUser).(*domain.User)
	return u, ok && u != nil
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	u, ok := UserFromContext(ctx)
	if !ok {
		return uuid.Nil, false
	}
	return u.ID, true
}
