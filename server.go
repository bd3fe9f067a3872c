// SPDX-License-Identifier: GPL-3.0-only

package main

import (
	"net/http"
	"os"
	"slices"

	"clarity-server/commons"
	"clarity-server/db"
	"clarity-server/handlers"
	"clarity-server/middlewares"
	"clarity-server/notifications"
	"clarity-server/routes"
	"clarity-server/sessions"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func httpErrorHandler(e *echo.Echo) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := http.StatusInternalServerError
		message := "Internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if code < 500 {
				if m, ok := he.Message.(string); ok {
					message = m
				} else {
					message = http.StatusText(code)
				}
			}
		}
		if code >= 500 {
			e.Logger.Errorf("Unhandled error: %v", err)
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, handlers.ErrorResponse{Error: message})
	}
}

func main() {
	commons.LoadEnvFile()

	e := echo.New()
	e.HideBanner = true

	e.Logger.SetLevel(commons.Logger.Level())
	e.Logger.SetHeader("${time_rfc3339} ${level} ${short_file}:${line} -")
	e.HTTPErrorHandler = httpErrorHandler(e)

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogMethod:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logMsg := func(format string, args ...any) {
				switch {
				case v.Status >= 500:
					e.Logger.Errorf(format, args...)
				case v.Status >= 400:
					e.Logger.Warnf(format, args...)
				default:
					e.Logger.Infof(format, args...)
				}
			}
			logMsg("%s %s - %d - %.2fms - %s",
				v.Method,
				v.URI,
				v.Status,
				float64(v.Latency.Microseconds())/1000.0,
				v.RemoteIP,
			)
			return nil
		},
	}))
	debugMode := slices.Contains(os.Args[1:], "--debug")
	if debugMode {
		e.Logger.Warn("Debug mode is enabled.")
		e.Debug = true
		e.Logger.SetLevel(log.DEBUG)
	}

	e.Use(middleware.Recover())

	db.InitDB()
	if slices.Contains(os.Args[1:], "--migrate-db") {
		commons.Logger.Debug("--migrate-db flag detected, running migrations")
		db.MigrateDB()
	}
	if slices.Contains(os.Args[1:], "--seed-db") {
		commons.Logger.Debug("--seed-db flag detected, seeding categories")
		db.SeedCategories()
	}

	var sender notifications.EmailSender
	if commons.GetEnv("MOCK_EMAIL_NOTIFICATIONS") == "true" {
		commons.Logger.Warn("Mock email notifications are enabled, emails will be logged instead of sent.")
		sender = &notifications.MockSender{}
	} else {
		smtpSender, err := notifications.NewSMTPSender()
		if err != nil {
			commons.Logger.Fatalf("Failed to configure SMTP sender: %v", err)
		}
		sender = smtpSender
	}
	mailer := notifications.NewDispatcher(sender)

	secret := commons.GetEnv("JWT_SECRET")
	if secret == "" {
		commons.Logger.Fatal("JWT_SECRET environment variable is required")
	}
	manager := sessions.NewManager(secret, sessions.DBHooks{})

	e.Use(middlewares.SessionGate(manager))

	routes.RegisterRoutes(e, manager, mailer)

	port := commons.GetEnv("PORT")
	if port == "" {
		port = ":8080"
	}
	if port[0] != ':' {
		port = ":" + port
	}
	e.Logger.Fatal(e.Start(port))
}
