// Package server initializes and runs the BlueCup server.
// It loads configuration, opens and migrates the store, builds the services
// and runs the HTTP server until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/bluecup/internal/logging"
	"github.com/dmitrijs2005/bluecup/internal/server/config"
	"github.com/dmitrijs2005/bluecup/internal/server/metrics"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bluecup/internal/server/services"
	"github.com/dmitrijs2005/bluecup/internal/server/web"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	db         *sql.DB
	httpServer *web.HTTPServer
}

// NewApp validates c, opens the store and wires the services.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))

	if err := c.Validate(); err != nil {
		return nil, err
	}
	if c.BootstrapEnabled() {
		logger.Warn(ctx, "bootstrap admin credential is enabled", "email", c.BootstrapEmail)
	}

	db, rm, err := repomanager.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	met := metrics.New()
	hs := web.NewHTTPServer(c.EndpointAddrHTTP, logger, web.Deps{
		Auth:         services.NewAuthService(db, rm, c, logger, met),
		Ledger:       services.NewLedgerService(db, rm, logger, met),
		Aggregation:  services.NewAggregationService(db, rm, c.RewardTiers),
		Events:       services.NewEventService(c.Events),
		Metrics:      met,
		SecureCookie: c.SecureCookie,
	})

	return &App{config: c, logger: logger, db: db, httpServer: hs}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "mode", app.config.Mode)

	app.initSignalHandler(cancelFunc)

	err := app.httpServer.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, err.Error())
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
