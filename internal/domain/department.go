package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Department is an organizational unit. The ID is an opaque, case-sensitive
// identifier; users reference it by this string. HeadID is a back-reference
// to the user acting as department head, not ownership: deleting the user
// leaves the department intact and vice versa.
type Department struct {
	ID          string
	Name        string
	Description string
	HeadID      *uuid.UUID
	CreatedAt   time.Time
}

// NewDepartment creates a Department with validated required fields.
func NewDepartment(id, name, description string) (*Department, error) {
	if id == "" {
		return nil, errors.New("department: id is required")
	}
	if name == "" {
		return nil, errors.New("department: name is required")
	}
	return &Department{
		ID:          id,
		Name:        name,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

type DepartmentRepository interface {
	Create(ctx context.Context, d *Department) error
	GetByID(ctx context.Context, id string) (*Department, error)
	Update(ctx context.Context, d *Department) error
	List(ctx context.Context) ([]*Department, error)
	// Delete removes the department record only; member users are not
	// cascade-deleted and become unassigned.
	Delete(ctx context.Context, id string) error
}
