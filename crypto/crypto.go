// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"crypto/rand"
	"strconv"

	"clarity-server/commons"

	"golang.org/x/crypto/bcrypt"
)

const (
	defaultBcryptCost = 12

	// Opaque tokens carry no payload; validity is decided entirely by a
	// store lookup, so the only requirements are entropy and URL safety.
	tokenLength   = 32
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"
)

func bcryptCost() int {
	if v := commons.GetEnv("BCRYPT_COST"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= bcrypt.MinCost && i <= bcrypt.MaxCost {
			return i
		}
	}
	return defaultBcryptCost
}

// HashPassword returns a salted bcrypt hash of password. Equal inputs
// produce different hashes; compare with VerifyPassword, never directly.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost())
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. Any
// comparison failure, including a malformed hash, yields false.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GenerateToken returns a 32-character random string over a URL-safe
// alphabet, suitable for verification and reset tokens.
func GenerateToken() (string, error) {
	b := make([]byte, tokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = tokenAlphabet[int(b[i])%len(tokenAlphabet)]
	}
	return string(b), nil
}
