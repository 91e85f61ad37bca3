package v1

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/crew/internal/domain"
	"github.com/gosuda/crew/internal/notify"
)

// DataStore is the record provider consumed by the API handlers.
type DataStore interface {
	Users() domain.UserRepository
	Tasks() domain.TaskRepository
	Departments() domain.DepartmentRepository
	Projects() domain.ProjectRepository
}

// AuthService is the surface of the auth package used by the auth routes.
type AuthService interface {
	Register(ctx context.Context, email, password, name string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error)
	RefreshToken(ctx context.Context, refreshToken string) (string, error)
}

// AssignmentNotifier decides whether an assignment event fires for a task
// transition and delivers it.
type AssignmentNotifier interface {
	TaskAssigned(ctx context.Context, prev, next *domain.Task, assigner uuid.UUID) (notify.Event, bool, error)
}
