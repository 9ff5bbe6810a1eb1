// Package services contains server-side business logic. This file implements
// AuthService, which handles registration, login with the optional bootstrap
// admin credential and the lifecycle of server-stored sessions.
package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/bluecup/internal/common"
	"github.com/dmitrijs2005/bluecup/internal/logging"
	"github.com/dmitrijs2005/bluecup/internal/server/auth"
	"github.com/dmitrijs2005/bluecup/internal/server/config"
	"github.com/dmitrijs2005/bluecup/internal/server/metrics"
	"github.com/dmitrijs2005/bluecup/internal/server/models"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/repomanager"
)

// bcrypt ignores everything past 72 bytes, so longer passwords are refused.
const maxPasswordBytes = 72

// Profile values given to the bootstrap admin when it is first created.
const (
	bootstrapCounty   = "Test County"
	bootstrapHomeClub = "Test Club"
)

type RegisterInput struct {
	Email    string
	Password string
	County   string
	HomeClub string
}

type LoginInput struct {
	Email    string
	Password string
}

// Session is an issued login session. Token goes into the session cookie.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
}

// AuthService provides authentication-related operations:
// - Register: create users
// - Authenticate: verify credentials and issue a session
// - ValidateSession / EndSession: check and revoke session tokens
type AuthService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	logger          logging.Logger
	metrics         *metrics.Metrics
	jwtSecret       []byte
	sessionValidity time.Duration
	bootstrapEmail  string
	bootstrapPass   string
	bcryptCost      int
}

// NewAuthService constructs an AuthService using repositories and server config.
// met may be nil.
func NewAuthService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger, met *metrics.Metrics) *AuthService {
	s := &AuthService{
		db:              db,
		repomanager:     m,
		logger:          logger.With("module", "auth"),
		metrics:         met,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
		bcryptCost:      bcrypt.DefaultCost,
	}
	if cfg.BootstrapEnabled() {
		s.bootstrapEmail = cfg.BootstrapEmail
		s.bootstrapPass = cfg.BootstrapPassword
	}
	return s
}

// Register creates a new account. It does not log the user in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" {
		s.metrics.ObserveRegistration(metrics.ResultInvalid)
		return nil, fmt.Errorf("%w: email is required", common.ErrValidation)
	}
	if err := checkPassword(in.Password); err != nil {
		s.metrics.ObserveRegistration(metrics.ResultInvalid)
		return nil, err
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        email,
		PasswordHash: hash,
		County:       strings.TrimSpace(in.County),
		HomeClub:     strings.TrimSpace(in.HomeClub),
	}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			s.metrics.ObserveRegistration(metrics.ResultDuplicate)
			return nil, common.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.metrics.ObserveRegistration(metrics.ResultSuccess)
	s.logger.Info(ctx, "user registered", "user_id", u.ID)
	return u, nil
}

// Authenticate verifies credentials and issues a new session. Unknown email
// and wrong password both yield common.ErrorUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, in LoginInput) (*Session, error) {
	// the bootstrap pair must match exactly, untrimmed
	if s.isBootstrap(in.Email, in.Password) {
		user, err := s.ensureBootstrapUser(ctx, in.Email, in.Password)
		if err != nil {
			return nil, err
		}
		s.metrics.ObserveLogin(metrics.ResultBootstrap)
		s.logger.Warn(ctx, "bootstrap admin login", "user_id", user.ID)
		return s.IssueSession(ctx, user.ID)
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// keep the timing of unknown and known emails alike
			_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(in.Password))
			s.metrics.ObserveLogin(metrics.ResultFailure)
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		s.metrics.ObserveLogin(metrics.ResultFailure)
		return nil, common.ErrorUnauthorized
	}

	s.metrics.ObserveLogin(metrics.ResultSuccess)
	return s.IssueSession(ctx, user.ID)
}

// IssueSession stores a new session row for userID and returns its signed token.
func (s *AuthService) IssueSession(ctx context.Context, userID int64) (*Session, error) {
	row := &models.Session{
		ID:      uuid.NewString(),
		UserID:  userID,
		Expires: time.Now().Add(s.sessionValidity).UTC(),
	}
	if err := s.repomanager.Sessions(s.db).Create(ctx, row); err != nil {
		return nil, fmt.Errorf("error creating session: %w", err)
	}

	token, err := auth.GenerateToken(userID, row.ID, s.jwtSecret, row.Expires)
	if err != nil {
		return nil, fmt.Errorf("error signing session: %w", err)
	}

	s.logger.Debug(ctx, "session issued", "user_id", userID, "session_id", row.ID)
	return &Session{Token: token, UserID: userID, ExpiresAt: row.Expires}, nil
}

// ValidateSession returns the user a live session token belongs to.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, common.ErrorUnauthorized
	}

	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrorUnauthorized
	}

	row, err := s.repomanager.Sessions(s.db).Find(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return 0, common.ErrorUnauthorized
		}
		return 0, fmt.Errorf("error searching session: %w", err)
	}
	if row.UserID != claims.UserID {
		return 0, common.ErrorUnauthorized
	}
	if !time.Now().Before(row.Expires) {
		return 0, common.ErrTokenExpired
	}
	return row.UserID, nil
}

// EndSession revokes the session named by token. Empty, malformed, expired
// or already ended tokens are not an error.
func (s *AuthService) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil
	}
	if err := s.repomanager.Sessions(s.db).Delete(ctx, claims.SessionID()); err != nil {
		return fmt.Errorf("error deleting session: %w", err)
	}
	s.logger.Debug(ctx, "session ended", "user_id", claims.UserID)
	return nil
}

// User returns the account with the given id.
func (s *AuthService) User(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return u, nil
}

// UserByEmail returns the account registered under email.
func (s *AuthService) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	u, err := s.repomanager.Users(s.db).GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return u, nil
}

// --- helpers below ---

func (s *AuthService) isBootstrap(email, password string) bool {
	if s.bootstrapEmail == "" || s.bootstrapPass == "" {
		return false
	}
	e := subtle.ConstantTimeCompare([]byte(email), []byte(s.bootstrapEmail))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(s.bootstrapPass))
	return e&p == 1
}

// ensureBootstrapUser finds or creates the bootstrap admin. The unique email
// constraint picks the winner of concurrent first logins; the others re-read
// its row.
func (s *AuthService) ensureBootstrapUser(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	hash, err := s.hashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err = s.repomanager.Users(s.db).Create(ctx, &models.User{
		Email:        email,
		PasswordHash: hash,
		County:       bootstrapCounty,
		HomeClub:     bootstrapHomeClub,
	})
	if errors.Is(err, common.ErrDuplicateEmail) {
		user, err = s.repomanager.Users(s.db).GetByEmail(ctx, email)
	}
	if err != nil {
		return nil, fmt.Errorf("error provisioning bootstrap user: %w", err)
	}
	return user, nil
}

func (s *AuthService) hashPassword(password string) (string, error) {
	if err := checkPassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hash), nil
}

func checkPassword(password string) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", common.ErrValidation)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", common.ErrValidation, maxPasswordBytes)
	}
	return nil
}

// dummyHash is compared against when the email is unknown.
var dummyHash = sync.OnceValue(func() []byte {
	secret := make([]byte, 32)
	_, _ = rand.Read(secret)
	hash, err := bcrypt.GenerateFromPassword(secret, bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
})
