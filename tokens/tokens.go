// SPDX-License-Identifier: GPL-3.0-only

// Package tokens manages the lifecycle of verification and password
// reset tokens: issued, then either consumed, expired by the clock, or
// superseded (reset tokens only).
package tokens

import (
	"errors"
	"time"

	"clarity-server/crypto"
	"clarity-server/db"
	"clarity-server/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	VerificationTokenTTL = 24 * time.Hour
	ResetTokenTTL        = 1 * time.Hour
)

// ErrInvalidToken covers unknown, expired and already-consumed tokens
// alike; callers must not be able to distinguish them.
var ErrInvalidToken = errors.New("Invalid or expired token")

// IssueVerificationToken stores a fresh verification token for the user.
// Earlier tokens for the same user stay valid until they expire or are
// consumed.
func IssueVerificationToken(userID uuid.UUID) (string, error) {
	token, err := crypto.GenerateToken()
	if err != nil {
		return "", err
	}

	record := models.VerificationToken{
		Token:     token,
		ExpiresAt: time.Now().Add(VerificationTokenTTL),
		UserID:    userID,
	}
	if err := db.Conn.Create(&record).Error; err != nil {
		return "", err
	}
	return token, nil
}

// IssuePasswordResetToken stores a fresh reset token for the user after
// deleting any earlier ones, so at most one reset token per user exists.
func IssuePasswordResetToken(userID uuid.UUID) (string, error) {
	if err := db.Conn.Where("user_id = ?", userID).
		Delete(&models.PasswordResetToken{}).Error; err != nil {
		return "", err
	}

	token, err := crypto.GenerateToken()
	if err != nil {
		return "", err
	}

	record := models.PasswordResetToken{
		Token:     token,
		ExpiresAt: time.Now().Add(ResetTokenTTL),
		UserID:    userID,
	}
	if err := db.Conn.Create(&record).Error; err != nil {
		return "", err
	}
	return token, nil
}

// VerifyAndConsume validates a verification token and deletes it in the
// same breath. The delete repeats the validity predicate and the affected
// row count decides the outcome, so two concurrent consumers cannot both
// succeed: the loser's delete matches zero rows. Expired rows are never
// deleted here.
func VerifyAndConsume(token string) (uuid.UUID, error) {
	now := time.Now()

	var record models.VerificationToken
	err := db.Conn.Where("token = ? AND expires_at > ?", token, now).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrInvalidToken
		}
		return uuid.Nil, err
	}

	res := db.Conn.Where("token = ? AND expires_at > ?", token, now).
		Delete(&models.VerificationToken{})
	if res.Error != nil {
		return uuid.Nil, res.Error
	}
	if res.RowsAffected == 0 {
		return uuid.Nil, ErrInvalidToken
	}

	return record.UserID, nil
}

// VerifyResetToken validates a reset token without consuming it. The
// token is deleted separately, after the password mutation succeeds.
func VerifyResetToken(token string) (uuid.UUID, error) {
	var record models.PasswordResetToken
	err := db.Conn.Where("token = ? AND expires_at > ?", token, time.Now()).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, ErrInvalidToken
		}
		return uuid.Nil, err
	}
	return record.UserID, nil
}

// DeleteResetToken removes a reset token once it has served its purpose.
func DeleteResetToken(token string) error {
	return db.Conn.Where("token = ?", token).
		Delete(&models.PasswordResetToken{}).Error
}
