// Package httpapi exposes the user and note services as a JSON API over gin.
package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/notebook/internal/logging"
	"github.com/dmitrijs2005/notebook/internal/server/auth"
	"github.com/dmitrijs2005/notebook/internal/server/models"
	"github.com/dmitrijs2005/notebook/internal/server/services"
	"github.com/gin-gonic/gin"
)

type UserService interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Login(ctx context.Context, in services.LoginInput) (*models.User, error)
	GetCurrentUser(ctx context.Context, userID string) (*models.User, error)
}

type NoteService interface {
	Create(ctx context.Context, userID string, in services.NoteInput) (*models.Note, error)
	List(ctx context.Context, userID string) ([]*models.Note, error)
	Update(ctx context.Context, userID, noteID string, in services.NoteInput) (*models.Note, error)
	Delete(ctx context.Context, userID, noteID string) (*models.Note, error)
}

type Exporter interface {
	Export(ctx context.Context, userID string) (*models.Export, error)
}

type TokenParser interface {
	ParseToken(token string) (*auth.Claims, error)
}

// Services groups the handlers' dependencies. Archive may be nil, in which
// case the export route is not registered.
type Services struct {
	Users   UserService
	Notes   NoteService
	Archive Exporter
}

type Server struct {
	address         string
	shutdownTimeout time.Duration
	logger          logging.Logger
	tokens          TokenParser
	users           UserService
	notes           NoteService
	archive         Exporter
	engine          *gin.Engine
}

func NewServer(address string, shutdownTimeout time.Duration, l logging.Logger, tokens TokenParser, svc Services) *Server {
	s := &Server{
		address:         address,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
		tokens:          tokens,
		users:           svc.Users,
		notes:           svc.Notes,
		archive:         svc.Archive,
	}
	s.engine = s.routes()
	return s
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler { return s.engine }

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(cors(), requestID(), s.requestLogger(), gin.CustomRecovery(s.onPanic))

	r.GET("/health", s.health)

	authGroup := r.Group("/api/auth")
	authGroup.POST("/createuser", s.createUser)
	authGroup.POST("/login", s.login)
	authGroup.POST("/getuser", s.authGate(), s.getUser)

	notes := r.Group("/api/notes", s.authGate())
	notes.POST("/createnote", s.createNote)
	notes.GET("/getnotes", s.getNotes)
	notes.PUT("/updatenote/:id", s.updateNote)
	notes.DELETE("/deletenote/:id", s.deleteNote)
	if s.archive != nil {
		notes.GET("/export", s.exportNotes)
	}

	return r
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve accepts connections on l until ctx is cancelled, then shuts down
// gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(context.Background(), "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", l.Addr().String())

	if err := srv.Serve(l); !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}
