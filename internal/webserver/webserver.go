// Package webserver hosts the onboarding form. It is a thin view over the
// form session state: every control on the form posts back here, the handler
// applies the mutation to the session and the page is re-rendered from the
// session. The session itself lives in an in-memory cache keyed by cookie.
package webserver

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"

	"github.com/edibridge/onboard/internal/apiclient"
	"github.com/edibridge/onboard/internal/cache"
	"github.com/edibridge/onboard/internal/clickup"
	"github.com/edibridge/onboard/internal/database"
	"github.com/edibridge/onboard/internal/forms"
	"github.com/edibridge/onboard/internal/html"
	"github.com/edibridge/onboard/internal/submit"
)

const sessionCookie = "onboard_session"

// Live sessions are dropped after half an hour without activity.
const sessionTTL = 30 * time.Minute

//go:embed views/*
var viewsfs embed.FS

// Config is the configuration for the onboarding web server.
type Config struct {
	Development bool
	Port        string
	PublicURL   string

	// Primary onboarding API.
	APIBaseURL string
	APIKey     string

	// Task tracking service. An empty token disables the integration.
	ClickUpToken  string
	ClickUpListID string

	// AdminPassword protects the submission attempt log endpoints.
	AdminPassword string

	// DatabasePath is the location of the attempt log database.
	DatabasePath string
}

// Server is the onboarding form web server.
type Server struct {
	cfg        Config
	app        *fiber.App
	htmlRender *html.Renderer
	sessions   *cache.Cache
	db         *database.Database
	api        *apiclient.Client
	orch       *submit.Orchestrator
}

// New creates the web server and wires the adapters and the orchestrator
// from the configuration.
func New(cfg Config) (*Server, error) {

	// The engine to display the HTML screens to the users
	htmlrender, err := html.NewRenderer(cfg.Development, viewsfs, "internal/webserver/views", ".html")
	if err != nil {
		return nil, err
	}

	api, err := apiclient.NewClient(&apiclient.Config{
		BaseURL: cfg.APIBaseURL,
		APIKey:  cfg.APIKey,
		Timeout: 30,
	})
	if err != nil {
		return nil, err
	}

	// The task tracking client is created only when a token is configured.
	// Without it the task creation step is skipped, which is not an error.
	var tasks *clickup.Client
	if cfg.ClickUpToken != "" {
		listID := cfg.ClickUpListID
		if listID == "" {
			listID = "901413221524" // the EDI onboarding list
		}
		tasks, err = clickup.NewClient(&clickup.Config{
			Token:  cfg.ClickUpToken,
			ListID: listID,
		})
		if err != nil {
			return nil, err
		}
	} else {
		slog.Info("Task tracking token not configured, integration disabled")
	}

	db := database.New(cfg.DatabasePath)

	app := fiber.New(fiber.Config{
		AppName:                 "EDI Vendor Onboarding",
		ServerHeader:            "Onboard",
		EnableTrustedProxyCheck: false,
		ReadTimeout:             30 * time.Second,
		WriteTimeout:            30 * time.Second,
	})

	// Recovers from panics anywhere in the stack chain
	app.Use(recover.New())

	// Helmet middleware helps secure the app by setting various HTTP headers
	app.Use(helmet.New())

	// Ignores favicon requests
	app.Use(favicon.New())

	// Logs HTTP request/response details
	app.Use(logger.New())

	// Enable CORS for all origins
	app.Use(cors.New())

	s := &Server{
		cfg:        cfg,
		app:        app,
		htmlRender: htmlrender,
		sessions:   cache.New(sessionTTL),
		db:         db,
		api:        api,
		orch:       submit.New(api, tasks, db),
	}

	// Register the health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		slog.Info("Health check", "from", c.Hostname())
		return c.JSON(fiber.Map{"status": "healthy", "hostname": c.Hostname()})
	})

	s.registerFormHandlers()
	s.registerAdminHandlers(cfg.AdminPassword)

	return s, nil
}

// Start initializes the attempt log and runs the server until the context is
// cancelled.
func (s *Server) Start(ctx context.Context) error {

	if s.app == nil {
		return errors.New("server not initialized")
	}

	if err := s.db.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer s.db.Close()

	addr := net.JoinHostPort("0.0.0.0", s.cfg.Port)
	slog.Info("Starting onboarding server", "addr", addr, "public_url", s.cfg.PublicURL)

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := s.app.Listen(addr); err != nil {
			errChan <- fmt.Errorf("failed to start server: %w", err)
		}
	}()

	// Wait for context cancellation or error
	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
		slog.Info("Shutting down server")
		return s.app.Shutdown()
	}
}

// registerAdminHandlers exposes the submission attempt log, protected with
// basic auth.
func (s *Server) registerAdminHandlers(adminPassword string) {

	admin := s.app.Group("/admin")

	adminAuth := basicauth.New(basicauth.Config{
		Users: map[string]string{
			"admin": adminPassword,
		},
		Realm: "Admin Area",
	})

	admin.Use(adminAuth)

	admin.Get("/attempts", s.listAttempts)
	admin.Get("/attempts/:id", s.getAttempt)
}

func (s *Server) listAttempts(c *fiber.Ctx) error {
	attempts, err := s.db.ListSubmissionAttempts(c.QueryInt("limit", 50))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return c.JSON(attempts)
}

func (s *Server) getAttempt(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid attempt id")
	}
	attempt, payload, err := s.db.GetSubmissionAttempt(int64(id))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return c.JSON(fiber.Map{"attempt": attempt, "payload": payload})
}

// session returns the form session for the request, creating a fresh one and
// setting the session cookie when needed.
func (s *Server) session(c *fiber.Ctx) *forms.Session {
	sid := c.Cookies(sessionCookie)
	if sid != "" {
		if v, ok := s.sessions.Get(sid); ok {
			sess := v.(*forms.Session)
			s.sessions.Set(sid, sess) // refresh the TTL
			return sess
		}
	}

	sid = uuid.NewString()
	sess := forms.NewSession()
	sess.Subscribe(func(ev forms.Event) {
		slog.Debug("Form session updated", "session", sid, "op", ev.Op, "field", ev.Field)
	})
	s.sessions.Set(sid, sess)

	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    sid,
		HTTPOnly: true,
		SameSite: "Lax",
	})
	return sess
}

// dropSession discards the session after a successful submission, so the
// redirect to the root starts a fresh form.
func (s *Server) dropSession(c *fiber.Ctx) {
	sid := c.Cookies(sessionCookie)
	if sid != "" {
		s.sessions.Delete(sid)
	}
	c.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})
}
