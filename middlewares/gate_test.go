// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"clarity-server/models"
	"clarity-server/sessions"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestDecide(t *testing.T) {
	cases := []struct {
		name          string
		path          string
		rawQuery      string
		authenticated bool
		verified      bool
		allow         bool
		redirectTo    string
	}{
		{
			name: "landing page anonymous",
			path: "/", allow: true,
		},
		{
			name: "login page anonymous",
			path: "/auth/login", allow: true,
		},
		{
			name: "login page while signed in and verified",
			path: "/auth/login", authenticated: true, verified: true,
			redirectTo: "/dashboard",
		},
		{
			name: "signup page while signed in but unverified",
			path: "/auth/signup", authenticated: true, verified: false,
			allow: true,
		},
		{
			name: "verify email page while signed in but unverified",
			path: "/auth/verify-email", authenticated: true, verified: false,
			allow: true,
		},
		{
			name: "dashboard anonymous",
			path: "/dashboard",
			redirectTo: "/auth/login?callbackUrl=%2Fdashboard",
		},
		{
			name: "dashboard subpage with query anonymous",
			path: "/transactions", rawQuery: "account_id=abc",
			redirectTo: "/auth/login?callbackUrl=%2Ftransactions%3Faccount_id%3Dabc",
		},
		{
			name: "dashboard signed in but unverified",
			path: "/dashboard", authenticated: true, verified: false,
			redirectTo: "/auth/verify-email",
		},
		{
			name: "dashboard signed in and verified",
			path: "/dashboard", authenticated: true, verified: true,
			allow: true,
		},
		{
			name: "budgets subpage signed in and verified",
			path: "/budgets/monthly", authenticated: true, verified: true,
			allow: true,
		},
		{
			name: "api path bypasses the gate",
			path: "/api/accounts", allow: true,
		},
		{
			name: "api auth path bypasses the gate",
			path: "/api/auth/login", authenticated: true, verified: true,
			allow: true,
		},
		{
			name: "prefix lookalike is not protected",
			path: "/dashboarding", allow: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Decide(tc.path, tc.rawQuery, tc.authenticated, tc.verified)
			if d.Allow != tc.allow {
				t.Errorf("Expected Allow=%v, got %v", tc.allow, d.Allow)
			}
			if d.RedirectTo != tc.redirectTo {
				t.Errorf("Expected redirect %q, got %q", tc.redirectTo, d.RedirectTo)
			}
		})
	}
}

func TestIsPublicRoute(t *testing.T) {
	public := []string{"/", "/auth/login", "/auth/signup", "/auth/forgot-password", "/auth/reset-password", "/auth/verify-email", "/auth/error"}
	for _, path := range public {
		if !isPublicRoute(path) {
			t.Errorf("Expected %q to be public", path)
		}
	}
	private := []string{"/dashboard", "/accounts", "/budgets/monthly"}
	for _, path := range private {
		if isPublicRoute(path) {
			t.Errorf("Expected %q not to be public", path)
		}
	}
}

func TestIsStaticAsset(t *testing.T) {
	assets := []string{"/favicon.ico", "/static/app.js", "/logo.svg", "/images/chart.png"}
	for _, path := range assets {
		if !isStaticAsset(path) {
			t.Errorf("Expected %q to be a static asset", path)
		}
	}
	if isStaticAsset("/dashboard") {
		t.Error("Expected /dashboard not to be a static asset")
	}
}

type gateTestHooks struct{}

func (gateTestHooks) OnIssue(user models.User) sessions.Claims {
	return sessions.Claims{UserID: user.ID, EmailVerified: user.EmailVerified}
}

func (gateTestHooks) OnRefresh(claims sessions.Claims) (sessions.Claims, error) {
	return claims, nil
}

func TestSessionGate(t *testing.T) {
	manager := sessions.NewManager("test-secret", gateTestHooks{})
	e := echo.New()
	handler := SessionGate(manager)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	t.Run("anonymous dashboard request redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(c); err != nil {
			t.Fatalf("Gate returned error: %v", err)
		}
		if rec.Code != http.StatusTemporaryRedirect {
			t.Errorf("Expected status 307, got %d", rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/auth/login?callbackUrl=%2Fdashboard" {
			t.Errorf("Unexpected redirect location: %q", loc)
		}
	})

	t.Run("verified session passes through", func(t *testing.T) {
		user := models.User{ID: uuid.New(), EmailVerified: true}
		token, err := manager.Issue(user, false)
		if err != nil {
			t.Fatalf("Issue failed: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(manager.Cookie(token, false))
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(c); err != nil {
			t.Fatalf("Gate returned error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", rec.Code)
		}
	})

	t.Run("garbage cookie treated as anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
		req.AddCookie(&http.Cookie{Name: sessions.CookieName, Value: "garbage"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := handler(c); err != nil {
			t.Fatalf("Gate returned error: %v", err)
		}
		if rec.Code != http.StatusTemporaryRedirect {
			t.Errorf("Expected status 307, got %d", rec.Code)
		}
	})
}
