// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"errors"
	"net/http"

	"clarity-server/db"
	"clarity-server/models"
	"clarity-server/sessions"

	"github.com/labstack/echo/v4"
)

// RequireSession authenticates API requests from the session cookie and
// stores the parsed claims in the request context.
func RequireSession(manager *sessions.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(sessions.CookieName)
			if err != nil {
				c.Logger().Error("Session cookie missing.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Authentication required",
				}
			}

			claims, err := manager.Parse(cookie.Value)
			if err != nil {
				c.Logger().Error("Session cookie invalid:", err)
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or expired session, please log in again",
				}
			}

			c.Set("claims", claims)
			return next(c)
		}
	}
}

// RequireVerified rejects authenticated but unverified users. Must run
// after RequireSession.
func RequireVerified() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := c.Get("claims").(sessions.Claims)
			if !ok {
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Authentication required",
				}
			}
			if !claims.EmailVerified {
				return &echo.HTTPError{
					Code:    http.StatusForbidden,
					Message: "Email verification required",
				}
			}
			return next(c)
		}
	}
}

// GetClaims returns the session claims stored by RequireSession.
func GetClaims(c echo.Context) (sessions.Claims, error) {
	claims, ok := c.Get("claims").(sessions.Claims)
	if !ok {
		return sessions.Claims{}, errors.New("no session claims in context")
	}
	return claims, nil
}

// GetAuthenticatedUser loads the full user record for the session.
func GetAuthenticatedUser(c echo.Context) (*models.User, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.Conn.Where("id = ?", claims.UserID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
