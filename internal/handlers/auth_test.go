package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/mizuka-dev/projecthub-api/internal/constants"
	"github.com/mizuka-dev/projecthub-api/internal/database"
	"github.com/mizuka-dev/projecthub-api/internal/dto"
	"github.com/mizuka-dev/projecthub-api/internal/models"
	"github.com/mizuka-dev/projecthub-api/internal/repository"
	"github.com/mizuka-dev/projecthub-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", env.handler.Signup)

	payload := map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["name"], response.Name)
	require.Equal(t, payload["email"], response.Email)
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", env.handler.Signup)

	payload := map[string]string{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "short",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Name:     "Existing",
		Email:    "taken@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/signup", env.handler.Signup)

	payload := map[string]string{
		"name":     "Another",
		"email":    "TAKEN@example.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Name:     "Existing",
		Email:    "existing@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/login", env.handler.Login)

	payload := map[string]string{
		"email":    "existing@example.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["email"], response.Email)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")
}

func TestAuthHandler_Login_Banned(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Signup(services.SignupInput{
		Name:     "Banned",
		Email:    "banned@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)
	require.NoError(t, env.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("banned", true).Error)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/login", env.handler.Login)

	payload := map[string]string{
		"email":    "banned@example.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Signup(services.SignupInput{
		Name:     "Current User",
		Email:    "current@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set(constants.ContextKeyUserID, user.ID)

	env.handler.GetCurrentUser(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.UserDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Email, response.Email)
}
