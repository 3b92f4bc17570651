package integration

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Tarunsai01/ARIA/internal/bootstrap"
	"github.com/Tarunsai01/ARIA/internal/config"
	"github.com/Tarunsai01/ARIA/internal/dto"
	"github.com/Tarunsai01/ARIA/internal/model"
	"github.com/Tarunsai01/ARIA/internal/pkg/serverutils"
	"github.com/Tarunsai01/ARIA/internal/server"
	"github.com/Tarunsai01/ARIA/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// Boots the full app and walks the token lifecycle over HTTP:
// login, me, refresh, logout, refresh-after-logout.
func TestAuthFlow(t *testing.T) {
	// Load .env from root (2 levels up) because tests run in package dir
	if err := godotenv.Load("../../.env"); err != nil {
		t.Logf("Warning: Could not load ../../.env: %v", err)
	}

	if os.Getenv("DB_CONNECTION_STRING") == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}
	if os.Getenv("JWT_SECRET") == "" || os.Getenv("ENCRYPTION_KEY") == "" {
		t.Skip("Skipping integration test: JWT_SECRET / ENCRYPTION_KEY not set")
	}

	cfg := config.Load()
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	container := bootstrap.NewContainer(db, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// Seed a verified, active user. Registration is exercised separately
	// because it depends on SMTP delivery.
	password := "integration-pass-1"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	hashStr := string(hash)

	userId := uuid.New()
	email := "auth-flow-" + userId.String() + "@example.com"
	user := model.User{
		Id:            userId,
		Email:         email,
		Username:      "authflow" + userId.String()[:8],
		FullName:      "Auth Flow User",
		PasswordHash:  &hashStr,
		Role:          "user",
		Status:        "active",
		EmailVerified: true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to seed user: %v", err)
	}
	defer db.Unscoped().Delete(&model.User{}, userId)
	defer db.Unscoped().Where("user_id = ?", userId).Delete(&model.UserRefreshToken{})

	var accessToken, refreshToken string

	t.Run("Login", func(t *testing.T) {
		reqBody := dto.LoginRequest{
			Email:      email,
			Password:   password,
			RememberMe: true,
		}
		body, _ := json.Marshal(reqBody)

		req := httptest.NewRequest("POST", "/api/auth/v1/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.ApiResponse[dto.LoginResponse]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.True(t, result.Success)
		assert.NotEmpty(t, result.Data.AccessToken)
		assert.NotEmpty(t, result.Data.RefreshToken)
		assert.Equal(t, email, result.Data.User.Email)

		accessToken = result.Data.AccessToken
		refreshToken = result.Data.RefreshToken
	})

	t.Run("Invalid password rejected", func(t *testing.T) {
		reqBody := dto.LoginRequest{Email: email, Password: "wrongpassword"}
		body, _ := json.Marshal(reqBody)

		req := httptest.NewRequest("POST", "/api/auth/v1/login", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Me returns the profile", func(t *testing.T) {
		if accessToken == "" {
			t.Skip("no access token from login step")
		}

		req := httptest.NewRequest("GET", "/api/auth/v1/me", nil)
		req.Header.Set("Authorization", "Bearer "+accessToken)

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.ApiResponse[dto.UserProfileResponse]
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, userId, result.Data.Id)
		assert.Equal(t, email, result.Data.Email)
	})

	t.Run("Me without token rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/auth/v1/me", nil)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Refresh rotates the pair", func(t *testing.T) {
		if refreshToken == "" {
			t.Skip("no refresh token from login step")
		}

		reqBody := dto.RefreshTokenRequest{RefreshToken: refreshToken}
		body, _ := json.Marshal(reqBody)

		req := httptest.NewRequest("POST", "/api/auth/v1/refresh", strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		var result serverutils.ApiResponse[dto.LoginResponse]
		json.NewDecoder(resp.Body).Decode(&result)

		assert.NotEmpty(t, result.Data.AccessToken)
		assert.NotEmpty(t, result.Data.RefreshToken)
		assert.NotEqual(t, refreshToken, result.Data.RefreshToken, "refresh must rotate the token")

		refreshToken = result.Data.RefreshToken
	})

	t.Run("Logout then refresh rejected", func(t *testing.T) {
		if refreshToken == "" {
			t.Skip("no refresh token to revoke")
		}

		logoutBody, _ := json.Marshal(dto.LogoutRequest{RefreshToken: refreshToken})
		req := httptest.NewRequest("POST", "/api/auth/v1/logout", strings.NewReader(string(logoutBody)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)

		refreshBody, _ := json.Marshal(dto.RefreshTokenRequest{RefreshToken: refreshToken})
		req = httptest.NewRequest("POST", "/api/auth/v1/refresh", strings.NewReader(string(refreshBody)))
		req.Header.Set("Content-Type", "application/json")

		resp, _ = app.Test(req, -1)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Health endpoint is open", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/health", nil)
		resp, _ := app.Test(req, -1)
		assert.Equal(t, 200, resp.StatusCode)
	})
}
