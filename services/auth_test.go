package services

import (
	"testing"
	"time"

	"legal_crm_go/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	err = gdb.AutoMigrate(
		&models.Client{},
		&models.Practice{},
		&models.Lawyer{},
		&models.TimeEntry{},
		&models.FirmProfile{},
		&models.User{},
		&models.Session{},
	)
	assert.NoError(t, err)
	return gdb
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("segreto123")
	assert.NoError(t, err)
	assert.NotEqual(t, "segreto123", hash)
	assert.True(t, CheckPassword("segreto123", hash))
	assert.False(t, CheckPassword("sbagliata", hash))
}

func TestRegisterUser(t *testing.T) {
	gdb := setupServiceTestDB(t)

	t.Run("Creates user with hashed password", func(t *testing.T) {
		user, err := RegisterUser(gdb, "avv.rossi", "segreto123", "Avv. Rossi", models.RoleAdmin)
		assert.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
		assert.True(t, CheckPassword("segreto123", user.Password))
	})

	t.Run("Unknown role falls back to user", func(t *testing.T) {
		user, err := RegisterUser(gdb, "segreteria", "segreto123", "Segreteria", "superuser")
		assert.NoError(t, err)
		assert.Equal(t, models.RoleUser, user.Role)
	})

	t.Run("Duplicate username is rejected", func(t *testing.T) {
		_, err := RegisterUser(gdb, "avv.rossi", "altra", "Doppione", models.RoleUser)
		assert.Error(t, err)
	})
}

func TestAuthenticateUser(t *testing.T) {
	gdb := setupServiceTestDB(t)
	_, err := RegisterUser(gdb, "avv.rossi", "segreto123", "Avv. Rossi", models.RoleAdmin)
	assert.NoError(t, err)

	t.Run("Valid credentials", func(t *testing.T) {
		user, err := AuthenticateUser(gdb, "avv.rossi", "segreto123")
		assert.NoError(t, err)
		assert.Equal(t, "avv.rossi", user.Username)
	})

	t.Run("Wrong password and unknown user look the same", func(t *testing.T) {
		_, err := AuthenticateUser(gdb, "avv.rossi", "sbagliata")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = AuthenticateUser(gdb, "nessuno", "segreto123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestSessionLifecycle(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user, err := RegisterUser(gdb, "avv.rossi", "segreto123", "Avv. Rossi", models.RoleAdmin)
	assert.NoError(t, err)

	session, err := CreateSession(gdb, user.ID)
	assert.NoError(t, err)
	assert.Len(t, session.Token, SessionTokenLength*2)

	t.Run("Valid token resolves with the user preloaded", func(t *testing.T) {
		got, err := ValidateSession(gdb, session.Token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, got.UserID)
		assert.Equal(t, "avv.rossi", got.User.Username)
	})

	t.Run("Unknown token is invalid", func(t *testing.T) {
		_, err := ValidateSession(gdb, "deadbeef")
		assert.ErrorIs(t, err, ErrSessionInvalid)
	})

	t.Run("Expired session is deleted on validation", func(t *testing.T) {
		expired, err := CreateSession(gdb, user.ID)
		assert.NoError(t, err)
		gdb.Model(&models.Session{}).Where("id = ?", expired.ID).
			Update("expires_at", time.Now().Add(-time.Hour))

		_, err = ValidateSession(gdb, expired.Token)
		assert.ErrorIs(t, err, ErrSessionInvalid)

		var count int64
		gdb.Model(&models.Session{}).Where("id = ?", expired.ID).Count(&count)
		assert.Equal(t, int64(0), count)
	})

	t.Run("Logout deletes the session", func(t *testing.T) {
		assert.NoError(t, DeleteSession(gdb, session.Token))
		_, err := ValidateSession(gdb, session.Token)
		assert.ErrorIs(t, err, ErrSessionInvalid)
	})
}

func TestCleanupExpiredSessions(t *testing.T) {
	gdb := setupServiceTestDB(t)
	user, err := RegisterUser(gdb, "avv.rossi", "segreto123", "Avv. Rossi", models.RoleAdmin)
	assert.NoError(t, err)

	live, _ := CreateSession(gdb, user.ID)
	stale, _ := CreateSession(gdb, user.ID)
	gdb.Model(&models.Session{}).Where("id = ?", stale.ID).
		Update("expires_at", time.Now().Add(-time.Minute))

	assert.NoError(t, CleanupExpiredSessions(gdb))

	var count int64
	gdb.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(1), count)
	_, err = ValidateSession(gdb, live.Token)
	assert.NoError(t, err)
}
