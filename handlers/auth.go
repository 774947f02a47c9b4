package handlers

import (
	"errors"
	"log"
	"net/http"

	"legal_crm_go/config"
	"legal_crm_go/db"
	"legal_crm_go/middleware"
	"legal_crm_go/models"
	"legal_crm_go/services"
	"legal_crm_go/store"

	"github.com/labstack/echo/v4"
)

// AuthHandler serves login, logout and account management. Registration
// writes an identity row, which is readable as the profiles resource, so
// the handler holds the cache to invalidate.
type AuthHandler struct {
	cfg   *config.Config
	cache *store.Cache
}

func NewAuthHandler(cfg *config.Config, cache *store.Cache) *AuthHandler {
	return &AuthHandler{cfg: cfg, cache: cache}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// Login authenticates credentials and opens a session
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	user, err := services.AuthenticateUser(db.DB, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	session, err := services.CreateSession(db.DB, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}

	middleware.SetSessionCookie(c, session, h.cfg.Environment == "production")
	return c.JSON(http.StatusOK, user)
}

// Logout closes the current session
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookieName); err == nil {
		if err := services.DeleteSession(db.DB, cookie.Value); err != nil {
			log.Printf("[WARNING] Failed to delete session on logout: %v", err)
		}
	}
	middleware.ClearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user
func (h *AuthHandler) Me(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
	}
	return c.JSON(http.StatusOK, user)
}

// Register creates a new account. Admin only.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username and password are required")
	}

	var existing models.User
	if err := db.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return echo.NewHTTPError(http.StatusConflict, "username already taken")
	}

	user, err := services.RegisterUser(db.DB, req.Username, req.Password, req.Name, req.Role)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "registration failed")
	}
	h.cache.InvalidateFor(store.ResourceProfiles)
	return c.JSON(http.StatusCreated, user)
}
