package service

import (
	"testing"

	"github.com/craftnest/craftnest-backend/internal/app/model"
	"github.com/craftnest/craftnest-backend/internal/app/repository"
	"github.com/craftnest/craftnest-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupUserServiceTest(t *testing.T) (UserService, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return NewUserService(repository.NewUserRepository(testDB)), testDB
}

func TestUserService_EnsureUser_MatchesByEmail(t *testing.T) {
	svc, testDB := setupUserServiceTest(t)

	existing := &model.User{
		Email:        "sofia@example.com",
		PasswordHash: "x",
		DisplayName:  "Sofia Chen",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, testDB.Create(existing).Error)

	user, err := svc.EnsureUser("sofia@example.com", "", "Someone Else")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)
	assert.Equal(t, "Sofia Chen", user.DisplayName)

	var count int64
	testDB.Model(&model.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUserService_EnsureUser_PhoneFallback(t *testing.T) {
	svc, testDB := setupUserServiceTest(t)

	// account originally created through phone sign-in
	existing := &model.User{
		Email:        "phone-signup@example.com",
		Phone:        "+15035551234",
		PasswordHash: "!",
		DisplayName:  "Sofia Chen",
		Role:         model.RoleCustomer,
	}
	require.NoError(t, testDB.Create(existing).Error)

	// same person now arrives with a different verified email
	user, err := svc.EnsureUser("sofia@example.com", "+15035551234", "Sofia Chen")
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)

	var count int64
	testDB.Model(&model.User{}).Count(&count)
	assert.EqualValues(t, 1, count, "phone match must not create a second account")
}

func TestUserService_EnsureUser_CreatesOnFirstContact(t *testing.T) {
	svc, testDB := setupUserServiceTest(t)

	user, err := svc.EnsureUser("new@example.com", "+15035559999", "")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, model.RoleCustomer, user.Role)
	// no local password for externally authenticated accounts
	assert.Equal(t, "!", user.PasswordHash)
	// display name defaults to the email when the provider sends none
	assert.Equal(t, "new@example.com", user.DisplayName)

	again, err := svc.EnsureUser("new@example.com", "", "")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	var count int64
	testDB.Model(&model.User{}).Count(&count)
	assert.EqualValues(t, 1, count)
}
