package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Project groups tasks under a name and color tag. MemberIDs is an ordered
// list of weak references: membership, not ownership.
type Project struct {
	ID         uuid.UUID
	Name       string
	Color      string
	Department string // optional department reference
	MemberIDs  []uuid.UUID
	CreatedAt  time.Time
}

// NewProject creates a Project with validated required fields and defaults.
func NewProject(name, color, department string, memberIDs []uuid.UUID) (*Project, error) {
	if name == "" {
		return nil, errors.New("project: name is required")
	}
	if color == "" {
		color = "#6b7280"
	}
	return &Project{
		ID:         uuid.New(),
		Name:       name,
		Color:      color,
		Department: department,
		MemberIDs:  memberIDs,
		CreatedAt:  time.Now(),
	}, nil
}

type ProjectRepository interface {
	Create(ctx context.Context, p *Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*Project, error)
	Update(ctx context.Context, p *Project) error
	List(ctx context.Context) ([]*Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
