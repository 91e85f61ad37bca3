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

type ProjectRepo struct {
	pool *pgxpool.Pool
}

func NewProjectRepo(pool *pgxpool.Pool) *ProjectRepo {
	return &ProjectRepo{pool: pool}
}

func (r *ProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO projects (id, name, color, department, member_ids, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		p.ID, p.Name, p.Color, p.Department, p.MemberIDs, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("projectRepo.Create: %w", err)
	}

	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var p domain.Project

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, color, department, member_ids, created_at
		 FROM projects WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Color, &p.Department, &p.MemberIDs, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("projectRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("projectRepo.GetByID: %w", err)
	}

	return &p, nil
}

func (r *ProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET name = $1, color = $2, department = $3, member_ids = $4
		 WHERE id = $5`,
		p.Name, p.Color, p.Department, p.MemberIDs, p.ID,
	)
	if err != nil {
		return fmt.Errorf("projectRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("projectRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, color, department, member_ids, created_at
		 FROM projects ORDER BY name LIMIT 1000`)
	if err != nil {
		return nil, fmt.Errorf("projectRepo.List: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		var p domain.Project
		if scanErr := rows.Scan(&p.ID, &p.Name, &p.Color, &p.Department, &p.MemberIDs, &p.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("projectRepo.List: scan: %w", scanErr)
		}
		projects = append(projects, &p)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("projectRepo.List: rows: %w", rowsErr)
	}

	return projects, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("projectRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("projectRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}
