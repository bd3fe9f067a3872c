// SPDX-License-Identifier: GPL-3.0-only

package passwordcheck

import "unicode"

// ValidatePassword checks the password strength policy and returns every
// violated rule. An empty result means the password is acceptable.
func ValidatePassword(password string) []string {
	if password == "" {
		return []string{"Password is required"}
	}

	var errs []string
	runes := []rune(password)

	if len(runes) < 8 {
		errs = append(errs, "Password must be at least 8 characters")
	}
	if len(runes) > 100 {
		errs = append(errs, "Password must not exceed 100 characters")
	}
	if !hasLowercase(password) {
		errs = append(errs, "Password must contain at least one lowercase letter")
	}
	if !hasUppercase(password) {
		errs = append(errs, "Password must contain at least one uppercase letter")
	}
	if !hasDigit(password) {
		errs = append(errs, "Password must contain at least one number")
	}
	if !hasSpecialChar(password) {
		errs = append(errs, "Password must contain at least one special character")
	}

	return errs
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

func hasLowercase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}
	return false
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func hasSpecialChar(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
