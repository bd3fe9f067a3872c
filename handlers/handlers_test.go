// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clarity-server/crypto"
	"clarity-server/db"
	"clarity-server/models"
	"clarity-server/notifications"
	"clarity-server/sessions"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type handlerTestEnv struct {
	echo    *echo.Echo
	sender  *notifications.MockSender
	mailer  *notifications.Dispatcher
	manager *sessions.Manager
}

func setupHandlerTest(t *testing.T) *handlerTestEnv {
	t.Helper()
	t.Setenv("BCRYPT_COST", "4")

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(models.AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	db.Conn = conn

	sender := &notifications.MockSender{}
	return &handlerTestEnv{
		echo:    echo.New(),
		sender:  sender,
		mailer:  notifications.NewDispatcher(sender),
		manager: sessions.NewManager("test-secret", sessions.DBHooks{}),
	}
}

func (env *handlerTestEnv) jsonRequest(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return env.echo.NewContext(req, rec), rec
}

func (env *handlerTestEnv) createUser(t *testing.T, email, password string, verified bool) models.User {
	t.Helper()
	hash, err := crypto.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	user := models.User{
		Email:         email,
		Name:          "Test User",
		PasswordHash:  hash,
		EmailVerified: verified,
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}

func hasFieldError(resp ErrorResponse, field, message string) bool {
	for _, d := range resp.Details {
		if d.Field == field && d.Message == message {
			return true
		}
	}
	return false
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessions.CookieName {
			return cookie
		}
	}
	return nil
}
