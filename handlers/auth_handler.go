// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"clarity-server/crypto"
	"clarity-server/db"
	"clarity-server/models"
	"clarity-server/notifications"
	"clarity-server/passwordcheck"
	"clarity-server/sessions"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// SignupHandler godoc
// @Summary      Register a new user
// @Description  Creates a new user account and dispatches a verification email.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        signupRequest  body  SignupRequest  true  "Signup request payload"
// @Success      201 {object} SignupResponse    "Signup successful"
// @Failure      400 {object} ErrorResponse     "Validation failed"
// @Failure      409 {object} ErrorResponse     "Duplicate email"
// @Failure      500 {object} ErrorResponse     "Internal server error"
// @Router       /api/auth/signup [post]
func SignupHandler(mailer *notifications.Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		var req SignupRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid signup request payload:", err)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		var details []FieldError
		if req.Email == "" {
			details = append(details, FieldError{Field: "email", Message: "Email is required"})
		} else if !emailRegex.MatchString(req.Email) {
			details = append(details, FieldError{Field: "email", Message: "Invalid email address"})
		}

		if req.Name == "" {
			details = append(details, FieldError{Field: "name", Message: "Name is required"})
		} else if len(req.Name) < 2 {
			details = append(details, FieldError{Field: "name", Message: "Name must be at least 2 characters"})
		} else if len(req.Name) > 100 {
			details = append(details, FieldError{Field: "name", Message: "Name must not exceed 100 characters"})
		}

		for _, msg := range passwordcheck.ValidatePassword(req.Password) {
			details = append(details, FieldError{Field: "password", Message: msg})
		}

		if len(details) > 0 {
			logger.Error("Signup validation failed.")
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Validation failed",
				Details: details,
			})
		}

		email := strings.ToLower(req.Email)

		var existing models.User
		err := db.Conn.Where("email = ?", email).First(&existing).Error
		if err == nil {
			logger.Error("This email is already registered.")
			return c.JSON(http.StatusConflict, ErrorResponse{
				Error: "An account with this email already exists",
			})
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Errorf("Failed to check existing user: %v", err)
			return echo.ErrInternalServerError
		}

		passwordHash, err := crypto.HashPassword(req.Password)
		if err != nil {
			logger.Errorf("Failed to hash password: %v", err)
			return echo.ErrInternalServerError
		}

		user := models.User{
			Email:        email,
			Name:         req.Name,
			PasswordHash: passwordHash,
		}
		if err := db.Conn.Create(&user).Error; err != nil {
			// Two concurrent signups can both pass the existence check; the
			// unique index rejects the loser.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				logger.Error("This email is already registered.")
				return c.JSON(http.StatusConflict, ErrorResponse{
					Error: "An account with this email already exists",
				})
			}
			logger.Errorf("Failed to create user: %v", err)
			return echo.ErrInternalServerError
		}

		if err := issueAndDispatchVerification(mailer, user); err != nil {
			// The account exists and can be verified via resend; never roll
			// back the signup over a token or email failure.
			logger.Errorf("Failed to issue verification after signup: %v", err)
		}

		logger.Infof("User signed up successfully")
		return c.JSON(http.StatusCreated, SignupResponse{
			Message: "Account created successfully. Please check your email to verify your account.",
			User: UserInfo{
				ID:    user.ID.String(),
				Email: user.Email,
				Name:  user.Name,
			},
		})
	}
}

// LoginHandler godoc
// @Summary      Login a user
// @Description  Authenticates credentials and sets the session cookie.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest  body  LoginRequest  true  "Login request payload"
// @Success      200 {object} LoginResponse     "Login successful"
// @Failure      401 {object} ErrorResponse     "Invalid credentials"
// @Failure      500 {object} ErrorResponse     "Internal server error"
// @Router       /api/auth/login [post]
func LoginHandler(manager *sessions.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		var req LoginRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid login request payload:", err)
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		}

		// Every credential failure looks the same to the caller.
		if req.Email == "" || req.Password == "" || !emailRegex.MatchString(req.Email) {
			logger.Error("Login validation failed.")
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		}

		var user models.User
		err := db.Conn.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				logger.Error("Login failed: user not found.")
				return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
			}
			logger.Errorf("Failed to find user: %v", err)
			return echo.ErrInternalServerError
		}

		if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
			logger.Error("Password verification failed.")
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid email or password"})
		}

		token, err := manager.Issue(user, req.RememberMe)
		if err != nil {
			logger.Errorf("Failed to issue session token: %v", err)
			return echo.ErrInternalServerError
		}
		c.SetCookie(manager.Cookie(token, req.RememberMe))

		logger.Infof("User logged in successfully")
		return c.JSON(http.StatusOK, LoginResponse{
			Message: "Login successful",
			User: SessionUser{
				ID:            user.ID.String(),
				EmailVerified: user.EmailVerified,
				RememberMe:    req.RememberMe,
			},
		})
	}
}

// LogoutHandler godoc
// @Summary      Logout a user
// @Description  Clears the session cookie.
// @Tags         auth
// @Produce      json
// @Success      204 "Logout successful"
// @Router       /api/auth/logout [post]
func LogoutHandler(manager *sessions.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.SetCookie(manager.ExpiredCookie())
		return c.NoContent(http.StatusNoContent)
	}
}

// SessionHandler godoc
// @Summary      Current session
// @Description  Returns the refreshed session claims, or a null user when not signed in.
// @Tags         auth
// @Produce      json
// @Success      200 {object} SessionResponse
// @Router       /api/auth/session [get]
func SessionHandler(manager *sessions.Manager) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		cookie, err := c.Cookie(sessions.CookieName)
		if err != nil {
			return c.JSON(http.StatusOK, SessionResponse{User: nil})
		}

		claims, err := manager.Parse(cookie.Value)
		if err != nil {
			return c.JSON(http.StatusOK, SessionResponse{User: nil})
		}

		refreshed, err := manager.Refresh(claims)
		if err != nil {
			logger.Errorf("Failed to refresh session claims: %v", err)
			refreshed = claims
		}

		return c.JSON(http.StatusOK, SessionResponse{
			User: &SessionUser{
				ID:            refreshed.UserID.String(),
				EmailVerified: refreshed.EmailVerified,
				RememberMe:    refreshed.RememberMe,
			},
		})
	}
}
