// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"strings"

	"clarity-server/commons"
	"clarity-server/db"
	"clarity-server/models"
	"clarity-server/notifications"
	"clarity-server/tokens"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// issueAndDispatchVerification issues a fresh verification token and
// sends the email in the background. Delivery failure is logged only.
func issueAndDispatchVerification(mailer *notifications.Dispatcher, user models.User) error {
	token, err := tokens.IssueVerificationToken(user.ID)
	if err != nil {
		return err
	}
	go func() {
		if err := mailer.SendVerificationEmail(user.Email, user.Name, token); err != nil {
			commons.Logger.Errorf("Failed to send verification email: %v", err)
		}
	}()
	return nil
}

// VerifyEmailHandler godoc
// @Summary      Verify email address
// @Description  Consumes a verification token and marks the user's email verified.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        verifyEmailRequest  body  VerifyEmailRequest  true  "Email verification request"
// @Success      200 {object} GenericResponse "Email verified successfully"
// @Failure      400 {object} ErrorResponse   "Invalid or expired token"
// @Failure      500 {object} ErrorResponse   "Internal server error"
// @Router       /api/auth/verify-email [post]
func VerifyEmailHandler() echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		var req VerifyEmailRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid verification request payload:", err)
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		}

		if req.Token == "" {
			logger.Error("Verification token is required")
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Token is required"})
		}

		userID, err := tokens.VerifyAndConsume(req.Token)
		if err != nil {
			if errors.Is(err, tokens.ErrInvalidToken) {
				logger.Error("Invalid or expired verification token")
				return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid or expired token"})
			}
			logger.Errorf("Failed to verify token: %v", err)
			return echo.ErrInternalServerError
		}

		if err := db.Conn.Model(&models.User{}).Where("id = ?", userID).
			Update("email_verified", true).Error; err != nil {
			logger.Errorf("Failed to update user verification status: %v", err)
			return echo.ErrInternalServerError
		}

		logger.Infof("Email verified successfully for user %s", userID)
		return c.JSON(http.StatusOK, GenericResponse{
			Message: "Email verified successfully",
		})
	}
}

// ResendVerificationHandler godoc
// @Summary      Resend verification email
// @Description  Issues a new verification token for an unverified account and emails it.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        emailRequest  body  EmailRequest  true  "Resend verification request"
// @Success      200 {object} GenericResponse "Verification email sent successfully"
// @Failure      400 {object} ErrorResponse   "Bad request or already verified"
// @Failure      404 {object} ErrorResponse   "User not found"
// @Failure      500 {object} ErrorResponse   "Internal server error"
// @Router       /api/auth/resend-verification [post]
func ResendVerificationHandler(mailer *notifications.Dispatcher) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := c.Logger()

		var req EmailRequest
		if err := c.Bind(&req); err != nil {
			logger.Error("Invalid resend verification request payload:", err)
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
				logger.Error("User not found for resend verification.")
				return c.JSON(http.StatusNotFound, ErrorResponse{Error: "User not found"})
			}
			logger.Errorf("Failed to find user: %v", err)
			return echo.ErrInternalServerError
		}

		if user.EmailVerified {
			logger.Info("User email is already verified")
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Email already verified"})
		}

		token, err := tokens.IssueVerificationToken(user.ID)
		if err != nil {
			logger.Errorf("Failed to issue verification token: %v", err)
			return echo.ErrInternalServerError
		}

		// Unlike signup, the send is the whole point of this call, so it
		// runs synchronously and a failure is reported.
		if err := mailer.SendVerificationEmail(user.Email, user.Name, token); err != nil {
			logger.Errorf("Failed to send verification email: %v", err)
			return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to send verification email"})
		}

		logger.Infof("Verification email sent successfully.")
		return c.JSON(http.StatusOK, GenericResponse{
			Message: "Verification email sent successfully",
		})
	}
}
