package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"legal_crm_go/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10
	// SessionTokenLength is the length of the session token in bytes (64 chars hex)
	SessionTokenLength = 32
	// DefaultSessionDuration is the default session duration (7 days)
	DefaultSessionDuration = 7 * 24 * time.Hour
)

// Auth-related errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrSessionInvalid     = errors.New("session not found or expired")
)

// HashPassword hashes a password using bcrypt
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// CheckPassword verifies a password against a bcrypt hash
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// RegisterUser creates a new identity record with a hashed password.
// A duplicate username violates the unique index; the storage error is
// returned verbatim for the caller to surface.
func RegisterUser(gdb *gorm.DB, username, password, name, role string) (*models.User, error) {
	if !models.IsValidRole(role) {
		role = models.RoleUser
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Password: hashed,
		Name:     name,
		Role:     role,
	}
	if err := gdb.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// AuthenticateUser verifies credentials and returns the matching user.
// Unknown username and wrong password produce the same error.
func AuthenticateUser(gdb *gorm.DB, username, password string) (*models.User, error) {
	var user models.User
	err := gdb.Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// GenerateSessionToken generates a cryptographically secure random token
func GenerateSessionToken() (string, error) {
	bytes := make([]byte, SessionTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// CreateSession creates a new session for a user
func CreateSession(gdb *gorm.DB, userID uint) (*models.Session, error) {
	token, err := GenerateSessionToken()
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: time.Now().Add(DefaultSessionDuration),
	}
	if err := gdb.Create(session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// ValidateSession validates a session token and returns the session if valid
func ValidateSession(gdb *gorm.DB, token string) (*models.Session, error) {
	var session models.Session
	err := gdb.Preload("User").Where("token = ?", token).First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("failed to validate session: %w", err)
	}

	if session.IsExpired() {
		// Delete expired session
		gdb.Delete(&session)
		return nil, ErrSessionInvalid
	}
	return &session, nil
}

// DeleteSession removes a session by token (logout)
func DeleteSession(gdb *gorm.DB, token string) error {
	return gdb.Where("token = ?", token).Delete(&models.Session{}).Error
}

// CleanupExpiredSessions removes all expired sessions
func CleanupExpiredSessions(gdb *gorm.DB) error {
	return gdb.Where("expires_at < ?", time.Now()).Delete(&models.Session{}).Error
}
