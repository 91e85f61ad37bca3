package v1_test

import (
	"context"

	"github.com/google/uuid"

	"github.com/gosuda/crew/internal/domain"
	"github.com/gosuda/crew/internal/notify"
	"github.com/gosuda/crew/internal/server/middleware"
)

// ---------------------------------------------------------------------------
// Context helpers: inject the acting user into context for DoCtx
// ---------------------------------------------------------------------------

func userCtx(u *domain.User) context.Context {
	return middleware.WithUser(context.Background(), u)
}

func actorWith(dept string, roles ...domain.Role) *domain.User {
	return &domain.User{
		ID:         uuid.New(),
		Name:       "Actor",
		Email:      "actor@crew.dev",
		Roles:      domain.NewRoleSet(roles...),
		Department: dept,
	}
}

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	users       domain.UserRepository
	tasks       domain.TaskRepository
	departments domain.DepartmentRepository
	projects    domain.ProjectRepository
}

func (m *mockDataStore) Users() domain.UserRepository             { return m.users }
func (m *mockDataStore) Tasks() domain.TaskRepository             { return m.tasks }
func (m *mockDataStore) Departments() domain.DepartmentRepository { return m.departments }
func (m *mockDataStore) Projects() domain.ProjectRepository       { return m.projects }

// ---------------------------------------------------------------------------
// Mock UserRepository
// ---------------------------------------------------------------------------

type mockUserRepo struct {
	createFunc           func(ctx context.Context, u *domain.User) error
	getByIDFunc          func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	getByEmailFunc       func(ctx context.Context, email string) (*domain.User, error)
	updateFunc           func(ctx context.Context, u *domain.User) error
	listFunc             func(ctx context.Context) ([]*domain.User, error)
	listByDepartmentFunc func(ctx context.Context, department string) ([]*domain.User, error)
	clearDepartmentFunc  func(ctx context.Context, department string) error
	deleteFunc           func(ctx context.Context, id uuid.UUID) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.createFunc(ctx, u)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.getByEmailFunc(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.updateFunc(ctx, u)
}

func (m *mockUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	return m.listFunc(ctx)
}

func (m *mockUserRepo) ListByDepartment(ctx context.Context, department string) ([]*domain.User, error) {
	return m.listByDepartmentFunc(ctx, department)
}

func (m *mockUserRepo) ClearDepartment(ctx context.Context, department string) error {
	return m.clearDepartmentFunc(ctx, department)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock TaskRepository
// ---------------------------------------------------------------------------

type mockTaskRepo struct {
	createFunc         func(ctx context.Context, t *domain.Task) error
	getByIDFunc        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	listFunc           func(ctx context.Context) ([]*domain.Task, error)
	listByProjectFunc  func(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error)
	updateFunc         func(ctx context.Context, t *domain.Task) error
	updateAssigneeFunc func(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) error
	deleteFunc         func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTaskRepo) Create(ctx context.Context, t *domain.Task) error {
	return m.createFunc(ctx, t)
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockTaskRepo) List(ctx context.Context) ([]*domain.Task, error) {
	return m.listFunc(ctx)
}

func (m *mockTaskRepo) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*domain.Task, error) {
	return m.listByProjectFunc(ctx, projectID)
}

func (m *mockTaskRepo) Update(ctx context.Context, t *domain.Task) error {
	return m.updateFunc(ctx, t)
}

func (m *mockTaskRepo) UpdateAssignee(ctx context.Context, id uuid.UUID, assignee *uuid.UUID) error {
	return m.updateAssigneeFunc(ctx, id, assignee)
}

func (m *mockTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock DepartmentRepository
// ---------------------------------------------------------------------------

type mockDepartmentRepo struct {
	createFunc  func(ctx context.Context, d *domain.Department) error
	getByIDFunc func(ctx context.Context, id string) (*domain.Department, error)
	updateFunc  func(ctx context.Context, d *domain.Department) error
	listFunc    func(ctx context.Context) ([]*domain.Department, error)
	deleteFunc  func(ctx context.Context, id string) error
}

func (m *mockDepartmentRepo) Create(ctx context.Context, d *domain.Department) error {
	return m.createFunc(ctx, d)
}

func (m *mockDepartmentRepo) GetByID(ctx context.Context, id string) (*domain.Department, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockDepartmentRepo) Update(ctx context.Context, d *domain.Department) error {
	return m.updateFunc(ctx, d)
}

func (m *mockDepartmentRepo) List(ctx context.Context) ([]*domain.Department, error) {
	return m.listFunc(ctx)
}

func (m *mockDepartmentRepo) Delete(ctx context.Context, id string) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock ProjectRepository
// ---------------------------------------------------------------------------

type mockProjectRepo struct {
	createFunc  func(ctx context.Context, p *domain.Project) error
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	updateFunc  func(ctx context.Context, p *domain.Project) error
	listFunc    func(ctx context.Context) ([]*domain.Project, error)
	deleteFunc  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockProjectRepo) Create(ctx context.Context, p *domain.Project) error {
	return m.createFunc(ctx, p)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockProjectRepo) Update(ctx context.Context, p *domain.Project) error {
	return m.updateFunc(ctx, p)
}

func (m *mockProjectRepo) List(ctx context.Context) ([]*domain.Project, error) {
	return m.listFunc(ctx)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

// ---------------------------------------------------------------------------
// Mock AuthService
// ---------------------------------------------------------------------------

type mockAuthService struct {
	registerFunc     func(ctx context.Context, email, password, name string) (*domain.User, error)
	loginFunc        func(ctx context.Context, email, password string) (string, string, error)
	refreshTokenFunc func(ctx context.Context, refreshToken string) (string, error)
}

func (m *mockAuthService) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	return m.registerFunc(ctx, email, password, name)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (accessToken, refreshToken string, err error) {
	return m.loginFunc(ctx, email, password)
}

func (m *mockAuthService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	return m.refreshTokenFunc(ctx, refreshToken)
}

// ---------------------------------------------------------------------------
// Mock AssignmentNotifier
// ---------------------------------------------------------------------------

type mockNotifier struct {
	taskAssignedFunc func(ctx context.Context, prev, next *domain.Task, assigner uuid.UUID) (notify.Event, bool, error)
}

func (m *mockNotifier) TaskAssigned(ctx context.Context, prev, next *domain.Task, assigner uuid.UUID) (notify.Event, bool, error) {
	if m.taskAssignedFunc == nil {
		return notify.Event{}, false, nil
	}
	return m.taskAssignedFunc(ctx, prev, next, assigner)
}
