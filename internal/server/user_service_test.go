package server

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/brhina/HR-System-In-ERP-sub001/internal/config"
	"github.com/brhina/HR-System-In-ERP-sub001/internal/types"
)

func newTestUserService() (*UserService, *fakeStaffStore) {
	store := newFakeStaffStore()
	return NewUserService(store, &config.PasswordConfig{BcryptCost: bcrypt.MinCost}), store
}

// TestUserService_RegisterHashesPassword tests that only a bcrypt hash is stored
func TestUserService_RegisterHashesPassword(t *testing.T) {
	svc, store := newTestUserService()

	user, err := svc.Register(context.Background(), &types.RegisterRequest{Name: " Jane ", Email: " JANE@example.com ", Password: "password123"})
	require.NoError(t, err)
	assert.Equal(t, "Jane", user.Name)
	assert.Equal(t, "jane@example.com", user.Email)

	stored := store.users[user.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

// TestUserService_RegisterRace tests that a unique violation on insert maps to the duplicate error
func TestUserService_RegisterRace(t *testing.T) {
	svc, store := newTestUserService()
	_, err := svc.Register(context.Background(), &types.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "password123"})
	require.NoError(t, err)

	store.hideExisting = true
	_, err = svc.Register(context.Background(), &types.RegisterRequest{Name: "Jane", Email: "jane@example.com", Password: "password123"})

	var taken *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, "jane@example.com", taken.Email)
}

// TestUserService_StoreFailure tests that storage errors are wrapped, not masked
func TestUserService_StoreFailure(t *testing.T) {
	svc, store := newTestUserService()
	store.err = errors.New("connection refused")

	_, err := svc.Login(context.Background(), &types.LoginRequest{Email: "jane@example.com", Password: "x"})
	require.Error(t, err)
	assert.ErrorIs(t, err, store.err)

	var creds *ErrInvalidCredentials
	assert.False(t, errors.As(err, &creds))
}
