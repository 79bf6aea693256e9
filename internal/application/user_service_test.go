package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sportgear/ecommerce-auth/internal/domain/entity"
)

func seedUsers(t *testing.T, repo *memoryUserRepo) map[string]string {
	t.Helper()
	ids := map[string]string{}
	seed := []struct {
		email, first, last string
		role               entity.Role
		status             entity.Status
	}{
		{"jane@example.com", "Jane", "Doe", entity.RoleCustomer, entity.StatusActive},
		{"john@example.com", "John", "Smith", entity.RoleCustomer, entity.StatusPending},
		{"root@example.com", "Ada", "Admin", entity.RoleAdmin, entity.StatusActive},
	}
	for _, s := range seed {
		u := &entity.User{
			Email:        s.email,
			FirstName:    s.first,
			LastName:     s.last,
			PasswordHash: "hashed:secret1",
			Role:         s.role,
			Status:       s.status,
		}
		require.NoError(t, repo.Create(context.Background(), u))
		ids[s.email] = u.ID
	}
	return ids
}

func newUserService(repo *memoryUserRepo) *UserService {
	return NewUserService(repo, plainHasher{}, nil, nil, nil, "")
}

func TestListAll(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUsers(t, repo)
	svc := newUserService(repo)

	out, err := svc.List(context.Background(), ListFilter{})
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestListByRoleAndStatus(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUsers(t, repo)
	svc := newUserService(repo)
	ctx := context.Background()

	admins, err := svc.List(ctx, ListFilter{Role: "ADMIN"})
	require.NoError(t, err)
	require.Len(t, admins, 1)
	assert.Equal(t, "root@example.com", admins[0].Email)

	pending, err := svc.List(ctx, ListFilter{Status: "PENDING"})
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "john@example.com", pending[0].Email)

	none, err := svc.List(ctx, ListFilter{Role: "ADMIN", Status: "PENDING"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListInvalidFilters(t *testing.T) {
	svc := newUserService(newMemoryUserRepo())
	ctx := context.Background()

	_, err := svc.List(ctx, ListFilter{Role: "SUPERUSER"})
	assert.ErrorIs(t, err, ErrInvalidRole)

	_, err = svc.List(ctx, ListFilter{Status: "FROZEN"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListSearchFallback(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUsers(t, repo)
	svc := newUserService(repo)

	out, err := svc.List(context.Background(), ListFilter{Search: "JANE"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "jane@example.com", out[0].Email)

	out, err = svc.List(context.Background(), ListFilter{Search: "example.com"})
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestStats(t *testing.T) {
	repo := newMemoryUserRepo()
	seedUsers(t, repo)
	svc := newUserService(repo)

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 2, st.ByRole["CUSTOMER"])
	assert.Equal(t, 1, st.ByRole["ADMIN"])
	assert.Equal(t, 2, st.ByStatus["ACTIVE"])
	assert.Equal(t, 1, st.ByStatus["PENDING"])
}

func TestUpdateRole(t *testing.T) {
	repo := newMemoryUserRepo()
	ids := seedUsers(t, repo)
	svc := newUserService(repo)
	ctx := context.Background()

	p, err := svc.UpdateRole(ctx, ids["jane@example.com"], "ADMIN")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", p.Role)

	u, err := repo.GetByID(ctx, ids["jane@example.com"])
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	_, err = svc.UpdateRole(ctx, ids["jane@example.com"], "SUPERUSER")
	assert.ErrorIs(t, err, ErrInvalidRole)
}

func TestUpdateStatus(t *testing.T) {
	repo := newMemoryUserRepo()
	ids := seedUsers(t, repo)
	svc := newUserService(repo)
	ctx := context.Background()

	p, err := svc.UpdateStatus(ctx, ids["john@example.com"], "ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", p.Status)

	_, err = svc.UpdateStatus(ctx, ids["john@example.com"], "FROZEN")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, "00000000-0000-0000-0000-000000000000", "ACTIVE")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfilePartial(t *testing.T) {
	repo := newMemoryUserRepo()
	ids := seedUsers(t, repo)
	svc := newUserService(repo)
	ctx := context.Background()

	phone := "3001234567"
	p, err := svc.UpdateProfile(ctx, ids["jane@example.com"], ProfileUpdate{PhoneNumber: &phone})
	require.NoError(t, err)
	assert.Equal(t, "3001234567", p.PhoneNumber)
	assert.Equal(t, "Jane", p.FirstName)

	dob := time.Date(1990, 4, 2, 0, 0, 0, 0, time.UTC)
	p, err = svc.UpdateProfile(ctx, ids["jane@example.com"], ProfileUpdate{DateOfBirth: &dob})
	require.NoError(t, err)
	require.NotNil(t, p.DateOfBirth)
	assert.Equal(t, "1990-04-02", *p.DateOfBirth)
}

func TestChangePassword(t *testing.T) {
	repo := newMemoryUserRepo()
	ids := seedUsers(t, repo)
	svc := newUserService(repo)
	ctx := context.Background()
	id := ids["jane@example.com"]

	err := svc.ChangePassword(ctx, id, "secret1", "short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	err = svc.ChangePassword(ctx, id, "wrong", "newsecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	require.NoError(t, svc.ChangePassword(ctx, id, "secret1", "newsecret"))

	u, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, u.VerifyPassword("newsecret", plainHasher{}))
	assert.False(t, u.VerifyPassword("secret1", plainHasher{}))

	err = svc.ChangePassword(ctx, "00000000-0000-0000-0000-000000000000", "x", "newsecret")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
