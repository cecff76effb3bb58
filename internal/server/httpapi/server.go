// Package httpapi exposes the account service over HTTP: signup and login,
// the current-user endpoint, settings mutations, and account deletion. It owns
// request validation and the mapping of service errors to status codes; no
// HTTP types leak into the service layer.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/wholesaleos/backend/internal/logging"
	"github.com/wholesaleos/backend/internal/server/models"
)

// AccountStore is the service surface consumed by the handlers.
type AccountStore interface {
	CreateUser(ctx context.Context, email, password string, name *string) (*models.User, error)
	VerifyPassword(ctx context.Context, email, password string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateUserName(ctx context.Context, id int64, name string) error
	UpdateUserPassword(ctx context.Context, id int64, newPassword string) error
	GetUserPreferences(ctx context.Context, userID int64) (*models.UserPreferences, error)
	UpdateUserPreferences(ctx context.Context, userID int64, upd models.PreferencesUpdate) error
	DeleteUser(ctx context.Context, id int64) error
}

type Server struct {
	address    string
	accounts   AccountStore
	logger     logging.Logger
	jwtSecret  []byte
	sessionTTL time.Duration
}

func NewServer(address string, logger logging.Logger, accounts AccountStore, secretKey string, sessionTTL time.Duration) *Server {
	return &Server{
		address:    address,
		accounts:   accounts,
		logger:     logger.With("module", "httpapi"),
		jwtSecret:  []byte(secretKey),
		sessionTTL: sessionTTL,
	}
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware, s.loggingMiddleware)

	// Public routes
	r.HandleFunc("/api/auth/signup", s.handleSignup).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)

	// Protected routes
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(s.authMiddleware)
	protected.HandleFunc("/me", s.handleMe).Methods(http.MethodGet)
	protected.HandleFunc("/settings/name", s.handleUpdateName).Methods(http.MethodPut)
	protected.HandleFunc("/settings/password", s.handleUpdatePassword).Methods(http.MethodPut)
	protected.HandleFunc("/settings/preferences", s.handleGetPreferences).Methods(http.MethodGet)
	protected.HandleFunc("/settings/preferences", s.handleUpdatePreferences).Methods(http.MethodPatch)
	protected.HandleFunc("/account", s.handleDeleteAccount).Methods(http.MethodDelete)

	return r
}

// Run starts the HTTP server and blocks until ctx is cancelled or the
// listener fails.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         s.address,
		Handler:      s.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
