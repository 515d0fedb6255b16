package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-admin-backend/internal/features/user/models"
	"user-admin-backend/internal/features/user/repository"
)

func newTestRepo(t *testing.T) repository.UserRepository {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewUserRepository(client)
}

func testUser(id, email, phone string) *models.User {
	now := time.Now()
	return &models.User{
		ID:           id,
		Name:         "Alice",
		Email:        email,
		Phone:        phone,
		Age:          30,
		PasswordHash: "$2a$12$fakehashfakehashfakehashfakehash",
		Role:         models.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestCreateAndGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@x.com", "5551234567")))

	got, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", got.Email)
	assert.Empty(t, got.PasswordHash, "default reads must exclude the password hash")
}

func TestGetByIDNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@x.com", "5551234567")))

	err := repo.Create(ctx, testUser("u2", "a@x.com", "5559999999"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	// Uniqueness is case-insensitive.
	err = repo.Create(ctx, testUser("u3", "A@X.COM", "5558888888"))
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
}

func TestCreateDuplicatePhone(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@x.com", "5551234567")))

	err := repo.Create(ctx, testUser("u2", "b@x.com", "(555) 123-4567"))
	assert.ErrorIs(t, err, repository.ErrDuplicatePhone)

	// The email index claimed before the phone collision must be released.
	require.NoError(t, repo.Create(ctx, testUser("u3", "b@x.com", "5559999999")))
}

func TestGetByEmailExcludesPassword(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@x.com", "5551234567")))

	got, err := repo.GetByEmail(ctx, "A@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Empty(t, got.PasswordHash)

	withPw, err := repo.GetByEmailWithPassword(ctx, "a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, withPw.PasswordHash)
}

func TestUpdatePreservesHashWhenUnset(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := testUser("u1", "a@x.com", "5551234567")
	require.NoError(t, repo.Create(ctx, user))

	loaded, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	loaded.Name = "Alice Updated"
	require.NoError(t, repo.Update(ctx, loaded))

	stored, err := repo.GetByEmailWithPassword(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, user.PasswordHash, stored.PasswordHash, "save without password change must not alter the hash")
	assert.Equal(t, "Alice Updated", stored.Name)
}

func TestUpdateReplacesHashWhenSet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@x.com", "5551234567")))

	loaded, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	loaded.PasswordHash = "$2a$12$newhashnewhashnewhashnewhashnewh"
	require.NoError(t, repo.Update(ctx, loaded))

	stored, err := repo.GetByEmailWithPassword(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$12$newhashnewhashnewhashnewhashnewh", stored.PasswordHash)
}

func TestUpdateReindexesEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@x.com", "5551234567")))

	loaded, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	loaded.Email = "new@x.com"
	require.NoError(t, repo.Update(ctx, loaded))

	got, err := repo.GetByEmail(ctx, "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)

	_, err = repo.GetByEmail(ctx, "a@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound, "old email index must be released")

	// Released address becomes claimable again.
	require.NoError(t, repo.Create(ctx, testUser("u2", "a@x.com", "5559999999")))
}

func TestUpdateEmailConflict(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@x.com", "5551234567")))
	require.NoError(t, repo.Create(ctx, testUser("u2", "b@x.com", "5559999999")))

	loaded, err := repo.GetByID(ctx, "u2")
	require.NoError(t, err)
	loaded.Email = "a@x.com"
	assert.ErrorIs(t, repo.Update(ctx, loaded), repository.ErrDuplicateEmail)
}

func TestUpdatePhoneConflictKeepsOldIndexes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@x.com", "5551234567")))
	require.NoError(t, repo.Create(ctx, testUser("u2", "b@x.com", "5559999999")))

	// Change both fields at once, colliding on u2's phone.
	loaded, err := repo.GetByID(ctx, "u1")
	require.NoError(t, err)
	loaded.Email = "c@x.com"
	loaded.Phone = "5559999999"
	assert.ErrorIs(t, repo.Update(ctx, loaded), repository.ErrDuplicatePhone)

	// The old email lookup must survive the failed update.
	got, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "a@x.com", got.Email)

	// The half-claimed new email must have been released.
	_, err = repo.GetByEmail(ctx, "c@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	require.NoError(t, repo.Create(ctx, testUser("u3", "c@x.com", "5558888888")))
}

func TestDeleteReleasesIndexes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@x.com", "5551234567")))
	require.NoError(t, repo.Delete(ctx, "u1"))

	_, err := repo.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Create(ctx, testUser("u2", "a@x.com", "5551234567")))
}

func TestDeleteNotFound(t *testing.T) {
	repo := newTestRepo(t)
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), repository.ErrNotFound)
}

func TestListReturnsOnlyUserDocuments(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser("u1", "a@x.com", "5551234567")))
	require.NoError(t, repo.Create(ctx, testUser("u2", "b@x.com", "5559999999")))

	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}
