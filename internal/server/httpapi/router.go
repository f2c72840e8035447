// Package httpapi exposes the HTTP surface: login, logout, dashboard view,
// add-note, download-notes, calculate and a liveness probe. Every route
// except login and health sits behind the session gate.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/msavelyev/notedesk/internal/server/models"
	"github.com/msavelyev/notedesk/internal/server/services"
	"github.com/msavelyev/notedesk/internal/server/sessions"
)

// SessionCookie is the name of the cookie carrying the signed session token.
const SessionCookie = "notedesk_session"

// NoteService, CalcService and UserService are the slices of the service
// layer the router needs; tests substitute fakes.
type NoteService interface {
	List(ctx context.Context) ([]models.Note, error)
	Add(ctx context.Context, text string, tags []string) ([]models.Note, services.PersistOutcome, error)
}

type CalcService interface {
	Calculate(ctx context.Context, expression string) (float64, []string, services.PersistOutcome, error)
	History(ctx context.Context) ([]string, error)
}

type UserService interface {
	Verify(ctx context.Context, username, password string) (bool, error)
}

type Router struct {
	engine   *gin.Engine
	logger   *slog.Logger
	sessions *sessions.Manager
	notes    NoteService
	calc     CalcService
	users    UserService
}

func NewRouter(logger *slog.Logger, sm *sessions.Manager, noteSvc NoteService, calcSvc CalcService, userSvc UserService) *Router {
	gin.SetMode(gin.ReleaseMode)

	r := &Router{
		engine:   gin.New(),
		logger:   logger,
		sessions: sm,
		notes:    noteSvc,
		calc:     calcSvc,
		users:    userSvc,
	}

	r.engine.Use(gin.Recovery(), r.requestLog())
	r.register()

	return r
}

// ServeHTTP delegates to the underlying gin engine.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

func (r *Router) register() {
	r.engine.GET("/health", r.handleHealth)
	r.engine.GET("/login", r.handleLoginPage)
	r.engine.POST("/login", r.handleLogin)

	protected := r.engine.Group("/", r.sessionGate())
	protected.GET("/", r.handleView)
	protected.GET("/logout", r.handleLogout)
	protected.POST("/add_note", r.handleAddNote)
	protected.GET("/download_notes", r.handleDownloadNotes)
	protected.POST("/calculate", r.handleCalculate)
}

// sessionGate redirects unauthenticated callers to the login flow before
// any handler body runs.
func (r *Router) sessionGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		username, err := r.sessions.Resolve(token)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}

		c.Set("username", username)
		c.Next()
	}
}

func (r *Router) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		r.logger.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
