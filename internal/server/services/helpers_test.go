package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/bluecup/internal/logging"
	"github.com/dmitrijs2005/bluecup/internal/server/config"
	"github.com/dmitrijs2005/bluecup/internal/server/metrics"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bluecup/internal/server/storetest"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

type testEnv struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	cfg    *config.Config
	auth   *AuthService
	ledger *LedgerService
	agg    *AggregationService
}

func testLogger() logging.Logger {
	return logging.NewJSONLogger(io.Discard, slog.LevelDebug)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "test-secret"
	cfg.SessionValidityDuration = time.Hour
	return cfg
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	cfg := testConfig()
	for _, fn := range mutate {
		fn(cfg)
	}

	db := storetest.NewSQLite(t)
	rm := repomanager.NewSQLiteRepositoryManager()
	met := metrics.New()

	a := NewAuthService(db, rm, cfg, testLogger(), met)
	a.bcryptCost = bcrypt.MinCost

	return &testEnv{
		db:     db,
		rm:     rm,
		cfg:    cfg,
		auth:   a,
		ledger: NewLedgerService(db, rm, testLogger(), met),
		agg:    NewAggregationService(db, rm, cfg.RewardTiers),
	}
}

func (e *testEnv) register(t *testing.T, email string) int64 {
	t.Helper()
	u, err := e.auth.Register(context.Background(), RegisterInput{Email: email, Password: "pw-" + email})
	require.NoError(t, err)
	return u.ID
}

func (e *testEnv) logHours(t *testing.T, userID int64, hours ...string) {
	t.Helper()
	for _, h := range hours {
		_, err := e.ledger.Log(context.Background(), userID, LogActivityInput{ActivityType: "cleanup", Hours: h, Description: "park"})
		require.NoError(t, err)
	}
}

func (e *testEnv) userCount(t *testing.T) int64 {
	t.Helper()
	n, err := e.rm.Users(e.db).Count(context.Background())
	require.NoError(t, err)
	return n
}
