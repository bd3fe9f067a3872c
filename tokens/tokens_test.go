// SPDX-License-Identifier: GPL-3.0-only

package tokens

import (
	"errors"
	"testing"
	"time"

	"clarity-server/db"
	"clarity-server/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
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
}

func createTestUser(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "irrelevant",
	}
	if err := db.Conn.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func TestVerificationTokenConsumedOnce(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	token, err := IssueVerificationToken(user.ID)
	if err != nil {
		t.Fatalf("IssueVerificationToken failed: %v", err)
	}

	userID, err := VerifyAndConsume(token)
	if err != nil {
		t.Fatalf("VerifyAndConsume failed: %v", err)
	}
	if userID != user.ID {
		t.Errorf("Expected user ID %s, got %s", user.ID, userID)
	}

	_, err = VerifyAndConsume(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Second consume should fail with ErrInvalidToken, got %v", err)
	}
}

func TestUnknownVerificationToken(t *testing.T) {
	setupTestDB(t)

	_, err := VerifyAndConsume("no-such-token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Unknown token should fail with ErrInvalidToken, got %v", err)
	}
}

func TestExpiredVerificationTokenRetained(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	record := models.VerificationToken{
		Token:     "expired-token-value",
		ExpiresAt: time.Now().Add(-time.Minute),
		UserID:    user.ID,
	}
	if err := db.Conn.Create(&record).Error; err != nil {
		t.Fatalf("Failed to create expired token: %v", err)
	}

	_, err := VerifyAndConsume(record.Token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expired token should fail with ErrInvalidToken, got %v", err)
	}

	// Expired rows are rejected but never deleted by consume.
	var count int64
	db.Conn.Model(&models.VerificationToken{}).Where("token = ?", record.Token).Count(&count)
	if count != 1 {
		t.Errorf("Expected expired token row to remain, count = %d", count)
	}
}

func TestMultipleVerificationTokensStayValid(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	first, err := IssueVerificationToken(user.ID)
	if err != nil {
		t.Fatalf("First IssueVerificationToken failed: %v", err)
	}
	second, err := IssueVerificationToken(user.ID)
	if err != nil {
		t.Fatalf("Second IssueVerificationToken failed: %v", err)
	}

	if _, err := VerifyAndConsume(second); err != nil {
		t.Errorf("Newer token should be valid: %v", err)
	}
	if _, err := VerifyAndConsume(first); err != nil {
		t.Errorf("Older token should remain valid: %v", err)
	}
}

func TestResetTokenSuperseded(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	first, err := IssuePasswordResetToken(user.ID)
	if err != nil {
		t.Fatalf("First IssuePasswordResetToken failed: %v", err)
	}
	second, err := IssuePasswordResetToken(user.ID)
	if err != nil {
		t.Fatalf("Second IssuePasswordResetToken failed: %v", err)
	}

	if _, err := VerifyResetToken(first); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Superseded token should fail with ErrInvalidToken, got %v", err)
	}
	if _, err := VerifyResetToken(second); err != nil {
		t.Errorf("Latest token should be valid: %v", err)
	}

	var count int64
	db.Conn.Model(&models.PasswordResetToken{}).Where("user_id = ?", user.ID).Count(&count)
	if count != 1 {
		t.Errorf("Expected at most one reset token per user, count = %d", count)
	}
}

func TestVerifyResetTokenDoesNotConsume(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "alice@example.com")

	token, err := IssuePasswordResetToken(user.ID)
	if err != nil {
		t.Fatalf("IssuePasswordResetToken failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		userID, err := VerifyResetToken(token)
		if err != nil {
			t.Fatalf("VerifyResetToken attempt %d failed: %v", i+1, err)
		}
		if userID != user.ID {
			t.Errorf("Expected user ID %s, got %s", user.ID, userID)
		}
	}

	if err := DeleteResetToken(token); err != nil {
		t.Fatalf("DeleteResetToken failed: %v", err)
	}
	if _, err := VerifyResetToken(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Deleted token should fail with ErrInvalidToken, got %v", err)
	}
}
