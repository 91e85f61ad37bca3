package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/crew/internal/domain"
)

type DepartmentRepo struct {
	pool *pgxpool.Pool
}

func NewDepartmentRepo(pool *pgxpool.Pool) *DepartmentRepo {
	return &DepartmentRepo{pool: pool}
}

func (r *DepartmentRepo) Create(ctx context.Context, d *domain.Department) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO departments (id, name, description, head_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.Name, d.Description, d.HeadID, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("departmentRepo.Create: %w", err)
	}

	return nil
}

func (r *DepartmentRepo) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	var d domain.Department

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description, head_id, created_at
		 FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.Description, &d.HeadID, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("departmentRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("departmentRepo.GetByID: %w", err)
	}

	return &d, nil
}

func (r *DepartmentRepo) Update(ctx context.Context, d *domain.Department) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE departments SET name = $1, description = $2, head_id = $3 WHERE id = $4`,
		d.Name, d.Description, d.HeadID, d.ID,
	)
	if err != nil {
		return fmt.Errorf("departmentRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("departmentRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *DepartmentRepo) List(ctx context.Context) ([]*domain.Department, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, head_id, created_at
		 FROM departments ORDER BY name LIMIT 1000`)
	if err != nil {
		return nil, fmt.Errorf("departmentRepo.List: %w", err)
	}
	defer rows.Close()

	var departments []*domain.Department
	for rows.Next() {
		var d domain.Department
		if scanErr := rows.Scan(&d.ID, &d.Name, &d.Description, &d.HeadID, &d.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("departmentRepo.List: scan: %w", scanErr)
		}
		departments = append(departments, &d)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("departmentRepo.List: rows: %w", rowsErr)
	}

	return departments, nil
}

func (r *DepartmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("departmentRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("departmentRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
