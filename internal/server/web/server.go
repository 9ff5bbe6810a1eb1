// Package web is the HTTP surface of BlueCup: form posts for registration,
// login and activity logging, JSON documents for everything else.
package web

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/bluecup/internal/logging"
	"github.com/dmitrijs2005/bluecup/internal/server/metrics"
	"github.com/dmitrijs2005/bluecup/internal/server/models"
	"github.com/dmitrijs2005/bluecup/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

// Authenticator is the subset of services.AuthService the handlers use.
type Authenticator interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
	Authenticate(ctx context.Context, in services.LoginInput) (*services.Session, error)
	ValidateSession(ctx context.Context, token string) (int64, error)
	EndSession(ctx context.Context, token string) error
	User(ctx context.Context, id int64) (*models.User, error)
}

type Ledger interface {
	Log(ctx context.Context, userID int64, in services.LogActivityInput) (*models.Activity, error)
	ListForUser(ctx context.Context, userID int64) ([]models.Activity, error)
}

type Aggregator interface {
	TotalHours(ctx context.Context, userID int64) (float64, error)
	Leaderboard(ctx context.Context) ([]models.LeaderboardEntry, error)
	RewardStatus(ctx context.Context, userID int64) (*models.RewardStatus, error)
}

type EventLister interface {
	List() []models.Event
}

// Deps bundles what the HTTP server needs. Metrics may be nil.
type Deps struct {
	Auth         Authenticator
	Ledger       Ledger
	Aggregation  Aggregator
	Events       EventLister
	Metrics      *metrics.Metrics
	SecureCookie bool
}

type HTTPServer struct {
	address string
	logger  logging.Logger
	deps    Deps
	router  *mux.Router
}

func NewHTTPServer(address string, l logging.Logger, deps Deps) *HTTPServer {
	s := &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		deps:    deps,
	}
	s.router = s.routes()
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *HTTPServer) Handler() http.Handler {
	return s.router
}

func (s *HTTPServer) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.requestLogger)
	if s.deps.Metrics != nil {
		r.Use(s.deps.Metrics.Middleware)
		r.Handle("/metrics", s.deps.Metrics.Handler()).Methods(http.MethodGet)
	}

	r.HandleFunc("/healthz", s.healthz).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/register", s.registerForm).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/login", s.loginForm).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/logout", s.logout).Methods(http.MethodGet, http.MethodPost)

	p := r.NewRoute().Subrouter()
	p.Use(s.requireSession)
	p.HandleFunc("/", s.home).Methods(http.MethodGet, http.MethodHead)
	p.HandleFunc("/activities", s.listActivities).Methods(http.MethodGet, http.MethodHead)
	p.HandleFunc("/activities", s.logActivity).Methods(http.MethodPost)
	p.HandleFunc("/leaderboard", s.leaderboard).Methods(http.MethodGet, http.MethodHead)
	p.HandleFunc("/rewards", s.rewards).Methods(http.MethodGet, http.MethodHead)
	p.HandleFunc("/events", s.events).Methods(http.MethodGet, http.MethodHead)

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
