// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"testing"

	"clarity-server/crypto"
	"clarity-server/db"
	"clarity-server/models"
	"clarity-server/tokens"
)

func TestForgotPasswordHandlerHidesAccountExistence(t *testing.T) {
	env := setupHandlerTest(t)
	env.createUser(t, "alice@example.com", "Sup3r$ecret", true)
	handler := ForgotPasswordHandler(env.mailer)

	c, recKnown := env.jsonRequest(http.MethodPost, "/api/auth/forgot-password",
		`{"email":"alice@example.com"}`)
	if err := handler(c); err != nil {
		t.Fatalf("ForgotPasswordHandler returned error: %v", err)
	}

	c, recUnknown := env.jsonRequest(http.MethodPost, "/api/auth/forgot-password",
		`{"email":"nobody@example.com"}`)
	if err := handler(c); err != nil {
		t.Fatalf("ForgotPasswordHandler returned error: %v", err)
	}

	if recKnown.Code != http.StatusOK || recUnknown.Code != http.StatusOK {
		t.Fatalf("Expected 200 for both, got %d and %d", recKnown.Code, recUnknown.Code)
	}
	if recKnown.Body.String() != recUnknown.Body.String() {
		t.Errorf("Known and unknown email must yield identical bodies: %q vs %q",
			recKnown.Body.String(), recUnknown.Body.String())
	}

	// A token exists only for the real account.
	var count int64
	db.Conn.Model(&models.PasswordResetToken{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected exactly one reset token, got %d", count)
	}
}

func TestResetPasswordHandler(t *testing.T) {
	env := setupHandlerTest(t)
	user := env.createUser(t, "alice@example.com", "Sup3r$ecret", true)
	handler := ResetPasswordHandler()

	token, err := tokens.IssuePasswordResetToken(user.ID)
	if err != nil {
		t.Fatalf("Failed to issue reset token: %v", err)
	}

	c, rec := env.jsonRequest(http.MethodPost, "/api/auth/reset-password",
		`{"token":"`+token+`","password":"N3w$ecret!"}`)
	if err := handler(c); err != nil {
		t.Fatalf("ResetPasswordHandler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var fresh models.User
	if err := db.Conn.First(&fresh, "id = ?", user.ID).Error; err != nil {
		t.Fatalf("Failed to reload user: %v", err)
	}
	if crypto.VerifyPassword("Sup3r$ecret", fresh.PasswordHash) {
		t.Error("Old password should no longer verify")
	}
	if !crypto.VerifyPassword("N3w$ecret!", fresh.PasswordHash) {
		t.Error("New password should verify")
	}

	// The token was deleted after the mutation.
	c, rec = env.jsonRequest(http.MethodPost, "/api/auth/reset-password",
		`{"token":"`+token+`","password":"An0ther$ecret"}`)
	if err := handler(c); err != nil {
		t.Fatalf("ResetPasswordHandler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 on token reuse, got %d", rec.Code)
	}
}

func TestResetPasswordHandlerValidation(t *testing.T) {
	env := setupHandlerTest(t)
	user := env.createUser(t, "alice@example.com", "Sup3r$ecret", true)
	handler := ResetPasswordHandler()

	token, err := tokens.IssuePasswordResetToken(user.ID)
	if err != nil {
		t.Fatalf("Failed to issue reset token: %v", err)
	}

	c, rec := env.jsonRequest(http.MethodPost, "/api/auth/reset-password",
		`{"token":"","password":"weak"}`)
	if err := handler(c); err != nil {
		t.Fatalf("ResetPasswordHandler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	resp := decodeError(t, rec)
	if resp.Error != "Validation failed" {
		t.Errorf("Unexpected error message: %q", resp.Error)
	}
	if !hasFieldError(resp, "token", "Token is required") {
		t.Errorf("Expected token violation, got %v", resp.Details)
	}
	if !hasFieldError(resp, "password", "Password must be at least 8 characters") {
		t.Errorf("Expected password violation, got %v", resp.Details)
	}

	// A weak password never reaches the token check, so the token
	// survives for a valid retry.
	c, rec = env.jsonRequest(http.MethodPost, "/api/auth/reset-password",
		`{"token":"`+token+`","password":"weak"}`)
	if err := handler(c); err != nil {
		t.Fatalf("ResetPasswordHandler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if _, err := tokens.VerifyResetToken(token); err != nil {
		t.Errorf("Token should survive a failed validation attempt: %v", err)
	}

	c, rec = env.jsonRequest(http.MethodPost, "/api/auth/reset-password",
		`{"token":"bogus-token","password":"N3w$ecret!"}`)
	if err := handler(c); err != nil {
		t.Fatalf("ResetPasswordHandler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", rec.Code)
	}
	if resp := decodeError(t, rec); resp.Error != "Invalid or expired token" {
		t.Errorf("Unexpected error message: %q", resp.Error)
	}
}
