package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/gosuda/crew/internal/domain"
	"github.com/gosuda/crew/internal/policy"
	"github.com/gosuda/crew/internal/server/middleware"
)

type CreateDepartmentInput struct {
	Body struct {
		ID          string     `json:"id" minLength:"1" maxLength:"100" doc:"Department identifier"`
		Name        string     `json:"name" minLength:"1" maxLength:"255" doc:"Department name"`
		Description string     `json:"description,omitempty" doc:"Description"`
		HeadID      *uuid.UUID `json:"head_id,omitempty" doc:"Department head user ID"`
	}
}

type CreateDepartmentOutput struct {
	Body *domain.Department
}

type ListDepartmentsOutput struct {
	Body []*domain.Department
}

type UpdateDepartmentInput struct {
	ID   string `path:"id" doc:"Department identifier"`
	Body struct {
		Name        string     `json:"name,omitempty" maxLength:"255" doc:"Department name"`
		Description string     `json:"description,omitempty" doc:"Description"`
		HeadID      *uuid.UUID `json:"head_id,omitempty" doc:"Department head user ID"`
	}
}

type UpdateDepartmentOutput struct {
	Body *domain.Department
}

type DeleteDepartmentInput struct {
	ID string `path:"id" doc:"Department identifier"`
}

// RegisterDepartmentRoutes wires the department lifecycle. Mutations are
// guarded by the permission middleware; listing is scoped per actor.
func RegisterDepartmentRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "create-department",
		Method:      http.MethodPost,
		Path:        "/departments",
		Summary:     "Create a department",
		Tags:        []string{"Departments"},
		Middlewares: huma.Middlewares{middleware.RequirePermission(api, policy.ActionAddDepartment)},
	}, func(ctx context.Context, input *CreateDepartmentInput) (*CreateDepartmentOutput, error) {
		d, err := domain.NewDepartment(input.Body.ID, input.Body.Name, input.Body.Description)
		if err != nil {
			return nil, huma.Error422UnprocessableEntity(err.Error())
		}
		d.HeadID = input.Body.HeadID

		if err := store.Departments().Create(ctx, d); err != nil {
			return nil, huma.Error500InternalServerError("failed to create department", err)
		}
		return &CreateDepartmentOutput{Body: d}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-departments",
		Method:      http.MethodGet,
		Path:        "/departments",
		Summary:     "List departments visible to the acting user",
		Tags:        []string{"Departments"},
	}, func(ctx context.Context, _ *struct{}) (*ListDepartmentsOutput, error) {
		actor, ok := middleware.UserFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		all, err := store.Departments().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list departments", err)
		}

		visible := make([]*domain.Department, 0, len(all))
		for _, d := range all {
			if policy.CanViewDepartment(actor, d.ID) {
				visible = append(visible, d)
			}
		}
		return &ListDepartmentsOutput{Body: visible}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-department",
		Method:      http.MethodPut,
		Path:        "/departments/{id}",
		Summary:     "Update a department",
		Tags:        []string{"Departments"},
		Middlewares: huma.Middlewares{middleware.RequirePermission(api, policy.ActionEditDepartment)},
	}, func(ctx context.Context, input *UpdateDepartmentInput) (*UpdateDepartmentOutput, error) {
		d, err := store.Departments().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("department not found")
			}
			return nil, huma.Error500InternalServerError("failed to get department", err)
		}

		if input.Body.Name != "" {
			d.Name = input.Body.Name
		}
		if input.Body.Description != "" {
			d.Description = input.Body.Description
		}
		if input.Body.HeadID != nil {
			d.HeadID = input.Body.HeadID
		}

		if err := store.Departments().Update(ctx, d); err != nil {
			return nil, huma.Error500InternalServerError("failed to update department", err)
		}
		return &UpdateDepartmentOutput{Body: d}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-department",
		Method:      http.MethodDelete,
		Path:        "/departments/{id}",
		Summary:     "Delete a department, leaving its members unassigned",
		Tags:        []string{"Departments"},
		Middlewares: huma.Middlewares{middleware.RequirePermission(api, policy.ActionEditDepartment)},
	}, func(ctx context.Context, input *DeleteDepartmentInput) (*struct{}, error) {
		// Confirm the department exists before touching its members, so a
		// delete of an unknown id detaches nobody.
		if _, err := store.Departments().GetByID(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("department not found")
			}
			return nil, huma.Error500InternalServerError("failed to get department", err)
		}

		// Members are detached first; no cascade delete of users.
		if err := store.Users().ClearDepartment(ctx, input.ID); err != nil {
			return nil, huma.Error500InternalServerError("failed to detach members", err)
		}

		if err := store.Departments().Delete(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("department not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete department", err)
		}
		return nil, nil
	})
}
