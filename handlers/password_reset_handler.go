// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"clarity-server/commons"
	"clarity-server/crypto"
	"clarity-server/db"
	"clarity-server/models"
	"clarity-server/notifications"
	"clarity-server/passwordcheck"
	"clarity-server/tokens"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

const forgotPasswordMessage = "If an account exists, a password reset email has been sent."

// ForgotPasswordHandler godoc
// @Summary      Request password reset
// @Description  Emails a reset link. The response does not reveal whether the account exists.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        emailRequest  body  EmailRequest  true  "Forgot password request"
// @Success      200 {object} GenericResponse "Reset email sent if the account exists"
// @Failure      400 {object} ErrorResponse   "Bad request"
// @Failure      500 {object} ErrorResponse   "Internal server error"
// @Router       /api/auth/forgot-password [post]
func ForgotPasswordHandler(mailer *notifications.Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		var req EmailRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid forgot password request payload:", err)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		if req.Email == "" {
			logger.Error("Email is required.")
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email is required"})
		}
		if !emailRegex.MatchString(req.Email) {
			logger.Error("Invalid email address.")
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid email address"})
		}

		var user models.User
		err := db.Conn.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// Identical response whether or not the account exists.
				logger.Info("Password reset requested for unknown email.")
				return c.JSON(http.StatusOK, GenericResponse{Message: forgotPasswordMessage})
			}
			logger.Errorf("Failed to find user: %v", err)
			return echo.ErrInternalServerError
		}

		token, err := tokens.IssuePasswordResetToken(user.ID)
		if err != nil {
			logger.Errorf("Failed to issue password reset token: %v", err)
			return echo.ErrInternalServerError
		}

		go func() {
			if err := mailer.SendPasswordResetEmail(user.Email, user.Name, token); err != nil {
				commons.Logger.Errorf("Failed to send password reset email: %v", err)
			}
		}()

		logger.Infof("Password reset email dispatched.")
		return c.JSON(http.StatusOK, GenericResponse{Message: forgotPasswordMessage})
	}
}

// ResetPasswordHandler godoc
// @Summary      Reset password
// @Description  Sets a new password using a reset token; the token is deleted after the mutation.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        resetPasswordRequest  body  ResetPasswordRequest  true  "Password reset request"
// @Success      200 {object} GenericResponse "Password reset successfully"
// @Failure      400 {object} ErrorResponse   "Validation failed or invalid token"
// @Failure      500 {object} ErrorResponse   "Internal server error"
// @Router       /api/auth/reset-password [post]
func ResetPasswordHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		var req ResetPasswordRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid password reset request payload:", err)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		var details []FieldError
		if req.Token == "" {
			details = append(details, FieldError{Field: "token", Message: "Token is required"})
		}
		for _, msg := range passwordcheck.ValidatePassword(req.Password) {
			details = append(details, FieldError{Field: "password", Message: msg})
		}
		if len(details) > 0 {
			logger.Error("Reset password validation failed.")
			return c.JSON(http.StatusBadRequest, ErrorResponse{
				Error:   "Validation failed",
				Details: details,
			})
		}

		userID, err := tokens.VerifyResetToken(req.Token)
		if err != nil {
			if errors.Is(err, tokens.ErrInvalidToken) {
				logger.Error("Invalid or expired password reset token")
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired token"})
			}
			logger.Errorf("Failed to verify reset token: %v", err)
			return echo.ErrInternalServerError
		}

		passwordHash, err := crypto.HashPassword(req.Password)
		if err != nil {
			logger.Errorf("Failed to hash new password: %v", err)
			return echo.ErrInternalServerError
		}

		if err := db.Conn.Model(&models.User{}).Where("id = ?", userID).
			Update("password_hash", passwordHash).Error; err != nil {
			logger.Errorf("Failed to update user password: %v", err)
			return echo.ErrInternalServerError
		}

		if err := tokens.DeleteResetToken(req.Token); err != nil {
			// The password change already landed; a lingering token dies at
			// expiry or on the next issuance.
			logger.Errorf("Failed to delete reset token: %v", err)
		}

		logger.Infof("Password reset successful for user %s", userID)
		return c.JSON(http.StatusOK, GenericResponse{
			Message: "Password reset successfully",
		})
	}
}
