// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"net/url"
	"strings"

	"clarity-server/sessions"

	"github.com/labstack/echo/v4"
)

// Route tables for the gate. A path matches a rule when it equals the
// rule or starts with rule + "/".
var (
	publicRoutes = []string{
		"/",
		"/auth/login",
		"/auth/signup",
		"/auth/forgot-password",
		"/auth/reset-password",
		"/auth/verify-email",
		"/auth/error",
	}

	// Auth routes match exactly; a signed-in, verified user has no
	// business on them.
	authRoutes = []string{
		"/auth/login",
		"/auth/signup",
	}

	protectedRoutes = []string{
		"/dashboard",
		"/accounts",
		"/transactions",
		"/budgets",
		"/insights",
	}

	staticSuffixes = []string{".svg", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".ico", ".css", ".js"}
)

// Decision is the gate's verdict for a single request.
type Decision struct {
	Allow      bool
	RedirectTo string
}

func matchesRoute(path, rule string) bool {
	return path == rule || strings.HasPrefix(path, rule+"/")
}

// Decide classifies a path and maps (path, authenticated, verified) to a
// decision. It is pure: no state is read or written beyond its inputs,
// and it is re-evaluated independently per request.
func Decide(path, rawQuery string, isAuthenticated, isEmailVerified bool) Decision {
	isAuthRoute := false
	for _, route := range authRoutes {
		if path == route {
			isAuthRoute = true
			break
		}
	}

	isProtected := false
	for _, route := range protectedRoutes {
		if matchesRoute(path, route) {
			isProtected = true
			break
		}
	}

	// API endpoints enforce their own checks.
	if matchesRoute(path, "/api") {
		return Decision{Allow: true}
	}

	if isAuthRoute && isAuthenticated && isEmailVerified {
		return Decision{RedirectTo: "/dashboard"}
	}

	// Public pages short-circuit; the auth-route redirect above is the
	// only rule that outranks them.
	if isPublicRoute(path) {
		return Decision{Allow: true}
	}

	if isProtected && !isAuthenticated {
		callback := path
		if rawQuery != "" {
			callback += "?" + rawQuery
		}
		return Decision{RedirectTo: "/auth/login?callbackUrl=" + url.QueryEscape(callback)}
	}

	if isProtected && isAuthenticated && !isEmailVerified {
		if path != "/auth/verify-email" {
			return Decision{RedirectTo: "/auth/verify-email"}
		}
	}

	return Decision{Allow: true}
}

// isPublicRoute reports whether a path needs no authentication at all.
func isPublicRoute(path string) bool {
	for _, route := range publicRoutes {
		if matchesRoute(path, route) {
			return true
		}
	}
	return false
}

func isStaticAsset(path string) bool {
	if path == "/favicon.ico" || strings.HasPrefix(path, "/static/") {
		return true
	}
	for _, suffix := range staticSuffixes {
		if strings.HasSuffix(path, suffix) {
			return true
		}
	}
	return false
}

// SessionGate applies Decide to every request except static assets. The
// session cookie is the only authentication source considered here.
func SessionGate(manager *sessions.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path
			if isStaticAsset(path) {
				return next(c)
			}

			isAuthenticated := false
			isEmailVerified := false
			if cookie, err := c.Cookie(sessions.CookieName); err == nil {
				if claims, err := manager.Parse(cookie.Value); err == nil {
					isAuthenticated = true
					isEmailVerified = claims.EmailVerified
					c.Set("claims", claims)
				}
			}

			decision := Decide(path, c.Request().URL.RawQuery, isAuthenticated, isEmailVerified)
			if decision.Allow {
				return next(c)
			}
			return c.Redirect(http.StatusTemporaryRedirect, decision.RedirectTo)
		}
	}
}
