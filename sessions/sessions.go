// SPDX-License-Identifier: GPL-3.0-only

// Package sessions issues and validates the signed session cookie. The
// cookie carries a compact JWT whose claims are produced and refreshed
// through the Hooks interface at well-defined lifecycle points.
package sessions

import (
	"errors"
	"net/http"
	"time"

	"clarity-server/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	CookieName      = "clarity_session"
	DefaultLifetime = 30 * 24 * time.Hour
)

var ErrInvalidSession = errors.New("invalid or expired session")

// Claims is the session payload: who the user is, whether their email is
// verified, and whether they asked to be remembered across browser
// restarts.
type Claims struct {
	UserID        uuid.UUID
	EmailVerified bool
	RememberMe    bool
}

// Hooks are the session lifecycle extension points. OnIssue builds the
// initial claims at sign-in; OnRefresh recomputes claims that may have
// gone stale (the verified flag after email verification).
type Hooks interface {
	OnIssue(user models.User) Claims
	OnRefresh(claims Claims) (Claims, error)
}

type Manager struct {
	secret   []byte
	lifetime time.Duration
	hooks    Hooks
}

func NewManager(secret string, hooks Hooks) *Manager {
	return &Manager{
		secret:   []byte(secret),
		lifetime: DefaultLifetime,
		hooks:    hooks,
	}
}

// Issue signs a session token for the user via the OnIssue hook.
func (m *Manager) Issue(user models.User, rememberMe bool) (string, error) {
	claims := m.hooks.OnIssue(user)
	claims.RememberMe = rememberMe

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":            claims.UserID.String(),
		"email_verified": claims.EmailVerified,
		"remember_me":    claims.RememberMe,
		"iat":            now.Unix(),
		"exp":            now.Add(m.lifetime).Unix(),
	})
	return token.SignedString(m.secret)
}

// Parse validates the signed token and returns its claims. Any parse or
// signature failure yields ErrInvalidSession.
func (m *Manager) Parse(tokenString string) (Claims, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return Claims{}, ErrInvalidSession
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, ErrInvalidSession
	}

	sub, _ := mapClaims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Claims{}, ErrInvalidSession
	}

	verified, _ := mapClaims["email_verified"].(bool)
	rememberMe, _ := mapClaims["remember_me"].(bool)

	return Claims{
		UserID:        userID,
		EmailVerified: verified,
		RememberMe:    rememberMe,
	}, nil
}

// Refresh reruns the OnRefresh hook over existing claims.
func (m *Manager) Refresh(claims Claims) (Claims, error) {
	return m.hooks.OnRefresh(claims)
}

// Cookie wraps a signed token in the session cookie. RememberMe controls
// persistence: a 30-day Max-Age when set, a browser-session cookie
// otherwise. The JWT inside expires after 30 days either way.
func (m *Manager) Cookie(tokenString string, rememberMe bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if rememberMe {
		cookie.MaxAge = int(m.lifetime.Seconds())
	}
	return cookie
}

// ExpiredCookie returns a cookie that clears the session.
func (m *Manager) ExpiredCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
