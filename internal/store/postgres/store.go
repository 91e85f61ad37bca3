// Package postgres implements the record provider on PostgreSQL via pgx.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/crew/internal/domain"
)

type Store struct {
	pool        *pgxpool.Pool
	users       *UserRepo
	tasks       *TaskRepo
	departments *DepartmentRepo
	projects    *ProjectRepo
}

func New(ctx context.Context, dsn string, maxConns int32) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: parse config: %w", err)
	}

	cfg.MaxConns = maxConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: connect: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	return &Store{
		pool:        pool,
		users:       NewUserRepo(pool),
		tasks:       NewTaskRepo(pool),
		departments: NewDepartmentRepo(pool),
		projects:    NewProjectRepo(pool),
	}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

func (s *Store) Users() domain.UserRepository             { return s.users }
func (s *Store) Tasks() domain.TaskRepository             { return s.tasks }
func (s *Store) Departments() domain.DepartmentRepository { return s.departments }
func (s *Store) Projects() domain.ProjectRepository       { return s.projects }

// UserLinks exposes the messenger-link reads used by the notifier.
func (s *Store) UserLinks() *UserRepo { return s.users }
