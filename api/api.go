package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/sciencelabshs/neonlink/api/handler"
	"github.com/sciencelabshs/neonlink/auth"
	"github.com/sciencelabshs/neonlink/config"
)

// Server is the neonlink HTTP server.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	guard     *auth.Guard
	handler   *handler.Handler
	admin     *handler.AdminHandler
	httpSrv   *http.Server
}

// New creates the API server around the auth service.
func New(cfg *config.Config, authService *auth.Service, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if authService == nil {
		return nil, fmt.Errorf("auth service is required")
	}

	if debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	s := &Server{
		cfg:       cfg,
		ginEngine: engine,
		guard:     auth.NewGuard(authService.Sessions()),
		handler:   handler.New(authService),
		admin:     handler.NewAdmin(authService),
	}
	s.setupSession()
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.Session.Key))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.Session.MaxAge,
		HttpOnly: true,
		Secure:   false, // Set to true in production
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(s.cfg.Session.CookieName, store))
	s.ginEngine.Use(s.guard.ResolveSession())
}

func (s *Server) setupRoutes() {
	s.ginEngine.GET("/health", s.handler.Health)

	users := s.ginEngine.Group("/api/users")

	// visitor-only
	users.POST("", s.guard.RequireVisitor(), s.handler.Register)
	users.POST("/login", s.guard.RequireVisitor(), s.handler.Login)

	// open to visitors and sessions alike
	users.POST("/logout", s.handler.Logout)
	users.GET("/me", s.handler.Me)

	// session-only
	users.PUT("/changePassword", s.guard.RequireSession(false), s.handler.ChangePassword)
	users.DELETE("", s.guard.RequireSession(false), s.handler.DeleteOwnAccount)

	// admin-only
	admin := users.Group("")
	admin.Use(s.guard.RequireSession(true))
	admin.GET("/all", s.admin.ListUsers)
	admin.PUT("/:id", s.admin.UpdateUser)
	admin.DELETE("/:id", s.admin.DeleteUser)
}

// Engine exposes the router, used by tests.
func (s *Server) Engine() *gin.Engine {
	return s.ginEngine
}

// Run starts the HTTP server and blocks until it stops.
func (s *Server) Run() error {
	s.httpSrv = &http.Server{
		Addr:    s.cfg.Listen,
		Handler: s.ginEngine,
	}
	if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
