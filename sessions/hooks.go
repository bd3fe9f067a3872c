// SPDX-License-Identifier: GPL-3.0-only

package sessions

import (
	"clarity-server/db"
	"clarity-server/models"
)

// DBHooks is the default Hooks implementation backed by the credential
// store.
type DBHooks struct{}

func (DBHooks) OnIssue(user models.User) Claims {
	return Claims{
		UserID:        user.ID,
		EmailVerified: user.EmailVerified,
	}
}

// OnRefresh re-reads the verified flag so a session issued before email
// verification picks up the change.
func (DBHooks) OnRefresh(claims Claims) (Claims, error) {
	var user models.User
	if err := db.Conn.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return claims, err
	}
	claims.EmailVerified = user.EmailVerified
	return claims, nil
}
