package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"electrotrack/internal/config"
	domainAudit "electrotrack/internal/domain/audit"
	domainUser "electrotrack/internal/domain/user"
	"electrotrack/internal/infrastructure/cache"
	"electrotrack/internal/usecase/audit"
	appErrors "electrotrack/pkg/errors"
	"electrotrack/pkg/utils"
)

type memoryUserRepo struct {
	users map[uuid.UUID]*domainUser.User
}

func (r *memoryUserRepo) Create(_ context.Context, u *domainUser.User) error {
	for _, existing := range r.users {
		if existing.Username == u.Username {
			return domainUser.ErrUserAlreadyExists
		}
	}
	u.ID = uuid.New()
	u.CreatedAt = time.Now().UTC()
	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memoryUserRepo) GetByUsername(_ context.Context, username string) (*domainUser.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domainUser.ErrUserNotFound
}

func (r *memoryUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domainUser.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domainUser.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *memoryUserRepo) GetAll(context.Context) ([]*domainUser.User, error) {
	out := make([]*domainUser.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, nil
}

func (r *memoryUserRepo) Count(context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memoryUserRepo) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.PasswordHashed = hash
	return nil
}

func (r *memoryUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	now := time.Now().UTC()
	u.LastLoginAt = &now
	return nil
}

func (r *memoryUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return domainUser.ErrUserNotFound
	}
	u.IsActive = false
	return nil
}

type auditLog struct {
	entries []*domainAudit.Entry
}

func (a *auditLog) Record(_ context.Context, e *domainAudit.Entry) error {
	a.entries = append(a.entries, e)
	return nil
}

func (a *auditLog) List(context.Context, *domainAudit.Filter) ([]*domainAudit.Entry, int64, error) {
	return a.entries, int64(len(a.entries)), nil
}

func newTestService() (*Service, *memoryUserRepo, *auditLog) {
	repo := &memoryUserRepo{users: make(map[uuid.UUID]*domainUser.User)}
	log := &auditLog{}
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiryHours: 2}}
	return NewService(repo, audit.NewRecorder(log, cache.Noop{}), cfg), repo, log
}

func createOperator(t *testing.T, svc *Service) *UserResponse {
	t.Helper()
	resp, err := svc.CreateUser(context.Background(), &CreateUserRequest{
		Username: "Operador1",
		FullName: "Rosa Condori",
		Password: "inventario2024",
		Role:     "operator",
	}, "admin")
	require.NoError(t, err)
	return resp
}

func TestCreateUser(t *testing.T) {
	svc, repo, log := newTestService()

	resp := createOperator(t, svc)
	assert.Equal(t, "operador1", resp.Username)
	assert.Equal(t, "operator", resp.Role)
	assert.True(t, resp.IsActive)
	assert.NotEqual(t, "inventario2024", repo.users[resp.ID].PasswordHashed)
	require.Len(t, log.entries, 1)
	assert.Equal(t, domainAudit.EntityUser, log.entries[0].Entity)

	_, err := svc.CreateUser(context.Background(), &CreateUserRequest{
		Username: "operador1", FullName: "Otra", Password: "inventario2024", Role: "viewer",
	}, "admin")
	assert.ErrorIs(t, err, domainUser.ErrUserAlreadyExists)
}

func TestCreateUserValidation(t *testing.T) {
	svc, _, _ := newTestService()

	tests := []struct {
		name string
		req  *CreateUserRequest
		code string
	}{
		{"unknown role", &CreateUserRequest{Username: "juan", FullName: "Juan", Password: "inventario2024", Role: "shipper"}, appErrors.CodeValidation},
		{"short password", &CreateUserRequest{Username: "juan", FullName: "Juan", Password: "abc1", Role: "viewer"}, appErrors.CodeValidation},
		{"password without digits", &CreateUserRequest{Username: "juan", FullName: "Juan", Password: "inventario", Role: "viewer"}, "WEAK_PASSWORD"},
		{"username with spaces", &CreateUserRequest{Username: "juan perez", FullName: "Juan", Password: "inventario2024", Role: "viewer"}, appErrors.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(context.Background(), tt.req, "admin")
			var appErr *appErrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}
}

func TestLogin(t *testing.T) {
	svc, repo, _ := newTestService()
	created := createOperator(t, svc)

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: " OPERADOR1 ", Password: "inventario2024"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, resp.User.ID)
	assert.WithinDuration(t, time.Now().Add(2*time.Hour), resp.ExpiresAt, time.Minute)
	assert.NotNil(t, repo.users[created.ID].LastLoginAt)

	claims, err := utils.ValidateToken(resp.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "operador1", claims.Username)
	assert.Equal(t, "operator", claims.Role)
	assert.Equal(t, created.ID.String(), claims.UserID)
}

func TestLoginFailures(t *testing.T) {
	svc, repo, _ := newTestService()
	created := createOperator(t, svc)

	_, err := svc.Login(context.Background(), &LoginRequest{Username: "operador1", Password: "wrong-password1"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), &LoginRequest{Username: "nadie", Password: "inventario2024"})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	repo.users[created.ID].IsActive = false
	_, err = svc.Login(context.Background(), &LoginRequest{Username: "operador1", Password: "inventario2024"})
	assert.ErrorIs(t, err, domainUser.ErrUserInactive)

	_, err = svc.Login(context.Background(), &LoginRequest{})
	var appErr *appErrors.AppError
	assert.ErrorAs(t, err, &appErr)
}

func TestDeactivateUser(t *testing.T) {
	svc, repo, log := newTestService()
	created := createOperator(t, svc)
	adminID := uuid.New()

	assert.ErrorIs(t, svc.DeactivateUser(context.Background(), adminID, adminID, "admin"), domainUser.ErrSelfDeactivation)

	require.NoError(t, svc.DeactivateUser(context.Background(), created.ID, adminID, "admin"))
	assert.False(t, repo.users[created.ID].IsActive)
	assert.Equal(t, domainAudit.ActionDeactivate, log.entries[len(log.entries)-1].Action)

	assert.ErrorIs(t, svc.DeactivateUser(context.Background(), uuid.New(), adminID, "admin"), domainUser.ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	svc, _, _ := newTestService()
	created := createOperator(t, svc)

	err := svc.ChangePassword(context.Background(), created.ID, &ChangePasswordRequest{
		OldPassword: "wrong", NewPassword: "nuevaClave99", ConfirmPassword: "nuevaClave99",
	})
	assert.ErrorIs(t, err, appErrors.ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), created.ID, &ChangePasswordRequest{
		OldPassword: "inventario2024", NewPassword: "nuevaClave99", ConfirmPassword: "otraClave99",
	})
	assert.Error(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), created.ID, &ChangePasswordRequest{
		OldPassword: "inventario2024", NewPassword: "nuevaClave99", ConfirmPassword: "nuevaClave99",
	}))
	_, err = svc.Login(context.Background(), &LoginRequest{Username: "operador1", Password: "nuevaClave99"})
	assert.NoError(t, err)
}

func TestBootstrapAdmin(t *testing.T) {
	svc, repo, _ := newTestService()

	created, err := svc.BootstrapAdmin(context.Background(), config.AdminConfig{})
	require.NoError(t, err)
	assert.False(t, created)

	created, err = svc.BootstrapAdmin(context.Background(), config.AdminConfig{Username: "Admin", Password: "cambiar2024", FullName: "Administrador"})
	require.NoError(t, err)
	assert.True(t, created)
	require.Len(t, repo.users, 1)
	for _, u := range repo.users {
		assert.Equal(t, domainUser.RoleAdmin, u.Role)
		assert.Equal(t, "admin", u.Username)
	}

	created, err = svc.BootstrapAdmin(context.Background(), config.AdminConfig{Username: "other", Password: "cambiar2024"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Len(t, repo.users, 1)
}
