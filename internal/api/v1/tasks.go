package v1

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/crew/internal/domain"
	"github.com/gosuda/crew/internal/policy"
	"github.com/gosuda/crew/internal/query"
	"github.com/gosuda/crew/internal/server/middleware"
)

type CreateTaskInput struct {
	Body struct {
		Title       string      `json:"title" minLength:"1" maxLength:"500" doc:"Task title"`
		Description string      `json:"description,omitempty" doc:"Task description"`
		Status      string      `json:"status,omitempty" doc:"Initial status (defaults to todo)"`
		Priority    string      `json:"priority,omitempty" doc:"Priority (defaults to medium)"`
		DueDate     *time.Time  `json:"due_date,omitempty" doc:"Due date"`
		Progress    int         `json:"progress,omitempty" minimum:"0" maximum:"100" doc:"Progress percentage"`
		AssigneeID  *uuid.UUID  `json:"assignee_id,omitempty" doc:"Single assignee"`
		AssigneeIDs []uuid.UUID `json:"assignee_ids,omitempty" doc:"Assignee list"`
		ProjectID   *uuid.UUID  `json:"project_id,omitempty" doc:"Optional project"`
		Tags        []string    `json:"tags,omitempty" doc:"Tag set"`
	}
}

type CreateTaskOutput struct {
	Body *domain.Task
}

type ListTasksInput struct {
	Search        string `query:"q" doc:"Free-text search over title, description, and tags"`
	Status        string `query:"status" doc:"Status filter or 'all'"`
	Priority      string `query:"priority" doc:"Priority filter or 'all'"`
	Assignee      string `query:"assignee" doc:"Assignee selector: all, me, unassigned, or a user id"`
	Due           string `query:"due" doc:"Due bucket: all, today, tomorrow, overdue, this_week"`
	Project       string `query:"project" doc:"Project id or 'all'"`
	Tags          string `query:"tags" doc:"Comma-separated tag set; tasks must carry every tag"`
	ShowCompleted *bool  `query:"show_completed" doc:"Include completed tasks (default true)"`
	Sort          string `query:"sort" doc:"Sort field"`
	Dir           string `query:"dir" enum:"asc,desc,," doc:"Sort direction"`
}

type ListTasksOutput struct {
	Body struct {
		Tasks             []*domain.Task `json:"tasks"`
		ActiveFilterCount int            `json:"active_filter_count"`
		AvailableTags     []string       `json:"available_tags"`
	}
}

type GetTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

type GetTaskOutput struct {
	Body *domain.Task
}

type AssignTaskInput struct {
	ID   uuid.UUID `path:"id" doc:"Task ID"`
	Body struct {
		AssigneeID *uuid.UUID `json:"assignee_id" doc:"New assignee; null clears the assignment"`
	}
}

type AssignTaskOutput struct {
	Body *domain.Task
}

type DeleteTaskInput struct {
	ID uuid.UUID `path:"id" doc:"Task ID"`
}

func RegisterTaskRoutes(api huma.API, store DataStore, notifier AssignmentNotifier) {
	huma.Register(api, huma.Operation{
		OperationID: "create-task",
		Method:      http.MethodPost,
		Path:        "/tasks",
		Summary:     "Create a new task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *CreateTaskInput) (*CreateTaskOutput, error) {
		actor, ok := middleware.UserFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}
		if !policy.HasPermission(actor, policy.ActionCreateTask) {
			return nil, huma.Error403Forbidden("not allowed to create tasks")
		}

		if input.Body.ProjectID != nil {
			if _, err := store.Projects().GetByID(ctx, *input.Body.ProjectID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("project not found")
				}
				return nil, huma.Error500InternalServerError("failed to validate project")
			}
		}

		now := time.Now()
		t := &domain.Task{
			ID:          uuid.New(),
			Title:       input.Body.Title,
			Description: input.Body.Description,
			Status:      domain.TaskStatus(input.Body.Status),
			Priority:    domain.TaskPriority(input.Body.Priority),
			DueDate:     input.Body.DueDate,
			Progress:    input.Body.Progress,
			AssigneeID:  input.Body.AssigneeID,
			AssigneeIDs: input.Body.AssigneeIDs,
			CreatedBy:   actor.ID,
			ProjectID:   input.Body.ProjectID,
			Tags:        input.Body.Tags,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		t.Normalize()

		if err := store.Tasks().Create(ctx, t); err != nil {
			return nil, huma.Error500InternalServerError("failed to create task", err)
		}

		if _, fired, err := notifier.TaskAssigned(ctx, nil, t, actor.ID); fired && err != nil {
			log.Warn().Err(err).Str("task_id", t.ID.String()).Msg("tasks: assignment notification failed")
		}

		return &CreateTaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-tasks",
		Method:      http.MethodGet,
		Path:        "/tasks",
		Summary:     "List tasks through the filter engine",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *ListTasksInput) (*ListTasksOutput, error) {
		actor, ok := middleware.UserFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		tasks, err := store.Tasks().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list tasks", err)
		}

		engine := buildEngine(input)

		out := &ListTasksOutput{}
		out.Body.Tasks = engine.FilteredTasks(tasks, actor.ID)
		out.Body.ActiveFilterCount = engine.ActiveFilterCount()
		out.Body.AvailableTags = query.AvailableTags(tasks)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-task",
		Method:      http.MethodGet,
		Path:        "/tasks/{id}",
		Summary:     "Get a task by ID",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *GetTaskInput) (*GetTaskOutput, error) {
		t, err := store.Tasks().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error500InternalServerError("failed to get task", err)
		}
		return &GetTaskOutput{Body: t}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "assign-task",
		Method:      http.MethodPatch,
		Path:        "/tasks/{id}/assignee",
		Summary:     "Set or clear a task's assignee",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *AssignTaskInput) (*AssignTaskOutput, error) {
		claimed, ok := middleware.UserFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}

		// Assignment checks run against the stored actor record, not the
		// token claims, so a role change takes effect immediately.
		actor, err := store.Users().GetByID(ctx, claimed.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to load acting user", err)
		}

		prev, err := store.Tasks().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error500InternalServerError("failed to get task", err)
		}

		if input.Body.AssigneeID != nil {
			candidate, candErr := store.Users().GetByID(ctx, *input.Body.AssigneeID)
			if candErr != nil {
				if errors.Is(candErr, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("assignee not found")
				}
				return nil, huma.Error500InternalServerError("failed to load assignee", candErr)
			}
			if !policy.CanAssignTo(actor, candidate) {
				return nil, huma.Error403Forbidden("not allowed to assign to this user")
			}
		}

		if err := store.Tasks().UpdateAssignee(ctx, input.ID, input.Body.AssigneeID); err != nil {
			return nil, huma.Error500InternalServerError("failed to update assignee", err)
		}

		next := *prev
		next.AssigneeID = input.Body.AssigneeID

		if _, fired, notifyErr := notifier.TaskAssigned(ctx, prev, &next, actor.ID); fired && notifyErr != nil {
			log.Warn().Err(notifyErr).Str("task_id", next.ID.String()).Msg("tasks: assignment notification failed")
		}

		return &AssignTaskOutput{Body: &next}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-task",
		Method:      http.MethodDelete,
		Path:        "/tasks/{id}",
		Summary:     "Delete a task",
		Tags:        []string{"Tasks"},
	}, func(ctx context.Context, input *DeleteTaskInput) (*struct{}, error) {
		actor, ok := middleware.UserFromContext(ctx)
		if !ok {
			return nil, huma.Error401Unauthorized("authentication required")
		}
		if !policy.HasPermission(actor, policy.ActionDeleteTask) {
			return nil, huma.Error403Forbidden("not allowed to delete tasks")
		}

		if err := store.Tasks().Delete(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("task not found")
			}
			return nil, huma.Error500InternalServerError("failed to delete task", err)
		}
		return nil, nil
	})
}

// buildEngine maps the wire-level filter parameters onto a fresh engine.
// Each request gets its own engine; the configuration is per-view state.
func buildEngine(input *ListTasksInput) *query.Engine {
	engine := query.NewEngine(nil)

	engine.SetSearch(input.Search)
	engine.SetStatus(input.Status)
	engine.SetPriority(input.Priority)
	engine.SetAssignee(query.ParseAssigneeSelector(input.Assignee))
	engine.SetDueBucket(query.DueBucket(input.Due))

	if input.Project != "" && input.Project != query.FilterAll {
		if id, err := uuid.Parse(input.Project); err == nil {
			engine.SetProject(id)
		}
	}

	if input.Tags != "" {
		var tags []string
		for _, tag := range strings.Split(input.Tags, ",") {
			tag = strings.TrimSpace(tag)
			if tag != "" {
				tags = append(tags, tag)
			}
		}
		engine.SetTags(tags)
	}

	if input.ShowCompleted != nil {
		engine.SetShowCompleted(*input.ShowCompleted)
	}

	if input.Sort != "" {
		engine.SetSort(query.SortConfig{
			Field:     query.SortField(input.Sort),
			Ascending: input.Dir != "desc",
		})
	}

	return engine
}
