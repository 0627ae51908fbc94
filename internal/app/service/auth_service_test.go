package service

import (
	"testing"
	"time"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/db"
	"github.com/craftnest/craftnest-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) AuthService {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	userRepo := repository.NewUserRepository(testDB)
	return NewAuthService(userRepo, "auth-test-secret", 15*time.Minute, 7*24*time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	svc := setupAuthServiceTest(t)

	user, tokens, err := svc.Register("buyer@example.com", "password123", "Test Buyer", "", model.RoleCustomer)
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, tokens)
	assert.Equal(t, model.RoleCustomer, user.Role)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NotEmpty(t, tokens.AccessToken)

	// duplicate email rejected
	_, _, err = svc.Register("buyer@example.com", "password123", "Impostor", "", model.RoleCustomer)
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}

func TestAuthService_Register_AdminRoleNotSelfAssignable(t *testing.T) {
	svc := setupAuthServiceTest(t)

	user, _, err := svc.Register("sneaky@example.com", "password123", "Sneaky", "", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCustomer, user.Role)

	artisan, _, err := svc.Register("maker@example.com", "password123", "Maker", "", model.RoleArtisan)
	require.NoError(t, err)
	assert.Equal(t, model.RoleArtisan, artisan.Role)
}

func TestAuthService_Login(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, _, err := svc.Register("buyer@example.com", "password123", "Test Buyer", "", model.RoleCustomer)
	require.NoError(t, err)

	user, tokens, err := svc.Login("buyer@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "buyer@example.com", user.Email)

	claims, err := util.ValidateToken(tokens.AccessToken, "auth-test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "customer", claims.Role)

	_, _, err = svc.Login("buyer@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc := setupAuthServiceTest(t)

	_, tokens, err := svc.Register("buyer@example.com", "password123", "Test Buyer", "", model.RoleCustomer)
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.RefreshToken("not-a-token")
	assert.Error(t, err)
}
