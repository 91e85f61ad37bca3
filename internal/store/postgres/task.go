package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/crew/internal/domain"
)

type TaskRepo struct {
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{pool: pool}
}

const taskColumns = `id, title, description, status, priority, due_date, progress,
	assignee_id, assignee_ids, created_by, project_id, tags, created_at, updated_at`

func (r *TaskRepo) Create(ctx context.Context, t *domain.Task) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO tasks (id, title, description, status, priority, due_date, progress,
		        assignee_id, assignee_ids, created_by, project_id, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		t.ID, t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.Progress,
		t.AssigneeID, t.AssigneeIDs, t.CreatedBy, t.ProjectID, t.Tags,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Create: %w", err)
	}

	return nil
}

func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)

	t, err := scanTask(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("taskRepo.GetByID: %w", err)
	}

	return t, nil
}

func (r *TaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY created_at LIMIT 5000`)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.List: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.List")
}

func (r *TaskRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE project_id = $1 ORDER BY created_at LIMIT 5000`,
		projectID)
	if err != nil {
		return nil, fmt.Errorf("taskRepo.ListByProject: %w", err)
	}
	defer rows.Close()

	return scanTasks(rows, "taskRepo.ListByProject")
}

func (r *TaskRepo) Update(ctx context.Context, t *domain.Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET title = $1, description = $2, status = $3, priority = $4,
		        due_date = $5, progress = $6, assignee_id = $7, assignee_ids = $8,
		        project_id = $9, tags = $10, updated_at = now()
		 WHERE id = $11`,
		t.Title, t.Description, t.Status, t.Priority, t.DueDate, t.Progress,
		t.AssigneeID, t.AssigneeIDs, t.ProjectID, t.Tags, t.ID,
	)
	if err != nil {
		return fmt.Errorf("taskRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) UpdateAssignee(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET assignee_id = $1, updated_at = now() WHERE id = $2`,
		assignee, id)
	if err != nil {
		return fmt.Errorf("taskRepo.UpdateAssignee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.UpdateAssignee: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("taskRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("taskRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var t domain.Task
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
		&t.Progress, &t.AssigneeID, &t.AssigneeIDs, &t.CreatedBy, &t.ProjectID,
		&t.Tags, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	// Stored records may predate the current enum sets; normalize on read.
	t.Normalize()
	return &t, nil
}

func scanTasks(rows pgx.Rows, op string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return tasks, nil
}
