package services

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lromero/authgate-be/internal/auth"
	"github.com/lromero/authgate-be/internal/models"
	"github.com/lromero/authgate-be/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*AuthService, *store.FileStore) {
	t.Helper()
	dir := t.TempDir()
	fileStore := store.New(filepath.Join(dir, "authentication.json"), filepath.Join(dir, "no-default.json"))
	require.NoError(t, fileStore.Save(map[string]models.UserRecord{}))

	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	return NewAuthService(fileStore, tokens), fileStore
}

func TestAuthenticate_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Authenticate("nobody", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateUser("alice", "pw1", models.RoleDefault)
	require.NoError(t, err)
	require.True(t, created)

	_, err = svc.Authenticate("alice", "pw2")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_StoreUnavailable(t *testing.T) {
	dir := t.TempDir()
	fileStore := store.New(filepath.Join(dir, "missing.json"), filepath.Join(dir, "no-default.json"))
	svc := NewAuthService(fileStore, auth.NewTokenManager([]byte("s"), time.Hour))

	_, err := svc.Authenticate("alice", "pw")
	require.ErrorIs(t, err, store.ErrUnavailable)
}

func TestCreateUser_SecondCreateIsFalse(t *testing.T) {
	svc, fileStore := newTestService(t)

	created, err := svc.CreateUser("alice", "pw1", models.RoleDefault)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.CreateUser("alice", "other", models.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, created)

	users, err := fileStore.Load()
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, models.RoleDefault, users["alice"].Role, "second create must not touch the record")
}

func TestDeleteUser_SecondDeleteIsFalse(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateUser("alice", "pw1", models.RoleDefault)
	require.NoError(t, err)

	deleted, err := svc.DeleteUser("alice")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteUser("alice")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestUpdatePassword_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.UpdatePassword("nobody", "pw")
	require.ErrorIs(t, err, ErrUnknownUser)
}

func TestVerifyRole_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.VerifyRole("nobody")
	require.ErrorIs(t, err, ErrUnknownUser)
}

func TestListUsers_RedactsHashes(t *testing.T) {
	svc, fileStore := newTestService(t)

	_, err := svc.CreateUser("alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)

	list, err := svc.ListUsers()
	require.NoError(t, err)
	require.Contains(t, list, "alice")
	assert.Equal(t, models.RoleAdmin, list["alice"].Role)

	// The persisted record still carries the hash; only the view drops it.
	users, err := fileStore.Load()
	require.NoError(t, err)
	assert.NotEmpty(t, users["alice"].PasswordHash)
}

func TestConcurrentCreates_BothPersist(t *testing.T) {
	svc, fileStore := newTestService(t)

	const users = 4
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			created, err := svc.CreateUser(fmt.Sprintf("user-%d", i), "pw", models.RoleDefault)
			assert.NoError(t, err)
			assert.True(t, created)
		}(i)
	}
	wg.Wait()

	stored, err := fileStore.Load()
	require.NoError(t, err)
	require.Len(t, stored, users)
}

func TestEndToEnd_PasswordLifecycle(t *testing.T) {
	svc, _ := newTestService(t)

	created, err := svc.CreateUser("alice", "pw1", models.RoleAdmin)
	require.NoError(t, err)
	require.True(t, created)

	token, err := svc.Authenticate("alice", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	require.NoError(t, svc.VerifyToken(token))

	role, err := svc.VerifyRole("alice")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)

	require.NoError(t, svc.UpdatePassword("alice", "pw2"))

	_, err = svc.Authenticate("alice", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	token, err = svc.Authenticate("alice", "pw2")
	require.NoError(t, err)
	require.NoError(t, svc.VerifyToken(token))
}
