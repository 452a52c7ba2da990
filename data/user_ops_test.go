package data

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"offroad_server_go/models"
)

func TestCreateUserHashesPassword(t *testing.T) {
	initTestStore(t)

	user := &models.User{Username: "admin", Name: "Admin", Role: models.RoleAdmin, Password: "pw123"}
	require.NoError(t, CreateUser(user))

	assert.NotEmpty(t, user.ID)
	assert.True(t, strings.HasPrefix(user.Password, "$2"), "пароль должен храниться как bcrypt-хеш")

	stored, err := GetUserByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, CheckPasswordHash("pw123", stored.Password))
	assert.False(t, CheckPasswordHash("wrong", stored.Password))
}

func TestCreateUserRejectsDuplicateUsername(t *testing.T) {
	initTestStore(t)

	require.NoError(t, CreateUser(&models.User{Username: "admin", Role: models.RoleAdmin, Password: "pw"}))
	err := CreateUser(&models.User{Username: "admin", Role: models.RoleEditor, Password: "pw2"})
	require.Error(t, err)
}

func TestHasAdmin(t *testing.T) {
	initTestStore(t)

	initialized, err := HasAdmin()
	require.NoError(t, err)
	assert.False(t, initialized)

	require.NoError(t, CreateUser(&models.User{Username: "editor", Role: models.RoleEditor, Password: "pw"}))
	initialized, err = HasAdmin()
	require.NoError(t, err)
	assert.False(t, initialized, "редактор не делает систему инициализированной")

	require.NoError(t, CreateUser(&models.User{Username: "admin", Role: models.RoleAdmin, Password: "pw"}))
	initialized, err = HasAdmin()
	require.NoError(t, err)
	assert.True(t, initialized)
}

func TestVerifyPasswordPlaintextMigration(t *testing.T) {
	initTestStore(t)

	// Учетка, заведенная руками в users.json со старым открытым паролем.
	legacy := []models.User{{ID: "1", Username: "old", Role: models.RoleAdmin, Password: "plain-secret"}}
	require.NoError(t, WriteJSON("users.json", legacy))

	user, err := GetUserByUsername("old")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.False(t, VerifyPassword(user, "wrong"))

	require.True(t, VerifyPassword(user, "plain-secret"))

	// После успешного входа пароль должен быть перехеширован и сохранен.
	migrated, err := GetUserByUsername("old")
	require.NoError(t, err)
	require.NotNil(t, migrated)
	assert.True(t, strings.HasPrefix(migrated.Password, "$2"))
	assert.True(t, VerifyPassword(migrated, "plain-secret"))
	assert.False(t, VerifyPassword(migrated, "wrong"))
}

func TestUpdateUserKeepsPasswordWhenEmpty(t *testing.T) {
	initTestStore(t)

	user := &models.User{Username: "admin", Role: models.RoleAdmin, Password: "pw123"}
	require.NoError(t, CreateUser(user))

	updated := &models.User{ID: user.ID, Username: "admin", Name: "Renamed", Role: models.RoleAdmin}
	require.NoError(t, UpdateUser(updated))

	stored, err := GetUserByUsername("admin")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Renamed", stored.Name)
	assert.True(t, CheckPasswordHash("pw123", stored.Password))
}

func TestDeleteUserIdempotent(t *testing.T) {
	initTestStore(t)

	user := &models.User{Username: "admin", Role: models.RoleAdmin, Password: "pw"}
	require.NoError(t, CreateUser(user))

	require.NoError(t, DeleteUser(user.ID))
	require.NoError(t, DeleteUser(user.ID))

	stored, err := GetUserByUsername("admin")
	require.NoError(t, err)
	assert.Nil(t, stored)
}
