// Package server exposes the store over the REST surface consumed by the
// board UI. Handlers are pass-throughs: decode request, call the store,
// encode response, map failures to status codes.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tracklite/tracklite/internal/storage"
)

// ServerVersion is the version reported by the health endpoint.
// It's set as a var so it can be initialized from main.
var ServerVersion = "dev"

// Server wraps an echo instance around a storage.Store
type Server struct {
	store     storage.Store
	echo      *echo.Echo
	startTime time.Time
}

// New creates a server for the given store. Request logs are written to
// logOutput when it is non-nil.
func New(store storage.Store, logOutput io.Writer) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	if logOutput != nil {
		e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
			Output: logOutput,
			Format: `${time_rfc3339} ${id} ${method} ${uri} ${status} ${latency_human}` + "\n",
		}))
	}

	s := &Server{
		store:     store,
		echo:      e,
		startTime: time.Now(),
	}
	e.HTTPErrorHandler = s.errorHandler
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	api := s.echo.Group("/api")

	api.GET("/users", s.listUsers)

	api.POST("/auth/signin", s.signIn)
	api.POST("/auth/signup", s.signUp)

	api.GET("/projects", s.listProjects)
	api.POST("/projects", s.createProject)
	api.GET("/projects/:id", s.getProject)
	api.DELETE("/projects/:id", s.deleteProject)

	api.GET("/issues", s.listIssues)
	api.POST("/issues", s.createIssue)
	api.GET("/issues/:id", s.getIssue)
	api.PUT("/issues/:id", s.updateIssue)
	api.DELETE("/issues/:id", s.deleteIssue)
	api.GET("/issues/:id/comments", s.listComments)
	api.POST("/issues/:id/comments", s.createComment)

	api.GET("/stats", s.stats)

	s.echo.GET("/healthz", s.health)
}

// errorHandler renders every failure as {"error": message}
func (s *Server) errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	message := "internal server error"

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		code = httpErr.Code
		message = fmt.Sprintf("%v", httpErr.Message)
	}

	if c.Response().Committed {
		return
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, map[string]string{"error": message})
}

// Start begins serving on addr and blocks until Shutdown
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Shutdown stops the server gracefully
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler returns the underlying http.Handler, for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"version": ServerVersion,
		"uptime":  time.Since(s.startTime).Round(time.Second).String(),
	})
}

func (s *Server) stats(c echo.Context) error {
	stats, err := s.store.Stats(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute stats")
	}
	return c.JSON(http.StatusOK, stats)
}
