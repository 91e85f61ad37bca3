package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/crew/internal/domain"
	"github.com/gosuda/crew/internal/notify"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, name, roles, department, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Roles.Strings(), u.Department,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Create: %w", err)
	}

	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, "userRepo.GetByID",
		`SELECT id, email, password_hash, name, roles, department, created_at, updated_at
		 FROM users WHERE id = $1`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "userRepo.GetByEmail",
		`SELECT id, email, password_hash, name, roles, department, created_at, updated_at
		 FROM users WHERE email = $1`, email)
}

func (r *UserRepo) getOne(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	var (
		u     domain.User
		roles []string
	)

	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &roles, &u.Department,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	u.Roles = domain.NormalizeRoles("", roles)
	return &u, nil
}

func (r *UserRepo) Update(ctx context.Context, u *domain.User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $1, password_hash = $2, name = $3, roles = $4,
		        department = $5, updated_at = now()
		 WHERE id = $6`,
		u.Email, u.PasswordHash, u.Name, u.Roles.Strings(), u.Department, u.ID,
	)
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, password_hash, name, roles, department, created_at, updated_at
		 FROM users ORDER BY name LIMIT 1000`)
	if err != nil {
		return nil, fmt.Errorf("userRepo.List: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows, "userRepo.List")
}

func (r *UserRepo) ListByDepartment(ctx context.Context, department string) ([]*domain.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, password_hash, name, roles, department, created_at, updated_at
		 FROM users WHERE department = $1 ORDER BY name LIMIT 1000`,
		department)
	if err != nil {
		return nil, fmt.Errorf("userRepo.ListByDepartment: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows, "userRepo.ListByDepartment")
}

func (r *UserRepo) ClearDepartment(ctx context.Context, department string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET department = '', updated_at = now() WHERE department = $1`,
		department)
	if err != nil {
		return fmt.Errorf("userRepo.ClearDepartment: %w", err)
	}

	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("userRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("userRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

// MessengerLinks implements notify.LinkResolver.
func (r *UserRepo) MessengerLinks(ctx context.Context, userID uuid.UUID) ([]notify.Link, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT platform, external_id FROM user_messenger_links WHERE user_id = $1`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("userRepo.MessengerLinks: %w", err)
	}
	defer rows.Close()

	var links []notify.Link
	for rows.Next() {
		var l notify.Link
		if scanErr := rows.Scan(&l.Platform, &l.ExternalID); scanErr != nil {
			return nil, fmt.Errorf("userRepo.MessengerLinks: scan: %w", scanErr)
		}
		links = append(links, l)
	}
	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("userRepo.MessengerLinks: rows: %w", rowsErr)
	}

	return links, nil
}

func scanUsers(rows pgx.Rows, op string) ([]*domain.User, error) {
	var users []*domain.User
	for rows.Next() {
		var (
			u     domain.User
			roles []string
		)
		err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &roles, &u.Department,
			&u.CreatedAt, &u.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		u.Roles = domain.NormalizeRoles("", roles)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return users, nil
}
