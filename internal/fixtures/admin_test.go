package fixtures

import (
	"context"
	"errors"
	"testing"

	"github.com/Rimhamzeh/Attendance-Management-System/internal/domain/admin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdminRepo struct {
	admin.AdminRepository
	admins    map[string]admin.AdminUser
	existsErr error
}

func (f *fakeAdminRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	if f.existsErr != nil {
		return false, f.existsErr
	}
	_, ok := f.admins[username]
	return ok, nil
}

func (f *fakeAdminRepo) Create(_ context.Context, newAdmin admin.AdminUser) (admin.AdminUser, error) {
	newAdmin.ID = "admin-" + newAdmin.Username
	f.admins[newAdmin.Username] = newAdmin
	return newAdmin, nil
}

func TestSeedAdmin(t *testing.T) {
	ctx := context.Background()
	repo := &fakeAdminRepo{admins: map[string]admin.AdminUser{}}

	created, err := SeedAdmin(ctx, repo, " root ", "s3cret")
	require.NoError(t, err)
	assert.True(t, created)

	stored, ok := repo.admins["root"]
	require.True(t, ok)
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))

	created, err = SeedAdmin(ctx, repo, "root", "other")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, stored.PasswordHash, repo.admins["root"].PasswordHash)
}

func TestSeedAdmin_Disabled(t *testing.T) {
	repo := &fakeAdminRepo{admins: map[string]admin.AdminUser{}}

	created, err := SeedAdmin(context.Background(), repo, "", "")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Empty(t, repo.admins)
}

func TestSeedAdmin_RepositoryError(t *testing.T) {
	boom := errors.New("connection refused")
	repo := &fakeAdminRepo{admins: map[string]admin.AdminUser{}, existsErr: boom}

	_, err := SeedAdmin(context.Background(), repo, "root", "pw")
	assert.ErrorIs(t, err, boom)
}
