// Package cli implements bluecup-cli, the operator command line. It talks to
// the configured store directly rather than through the HTTP server.
package cli

import (
	"context"
	"database/sql"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dmitrijs2005/bluecup/internal/logging"
	"github.com/dmitrijs2005/bluecup/internal/server/config"
	"github.com/dmitrijs2005/bluecup/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bluecup/internal/server/services"
)

type App struct {
	in  io.Reader
	out io.Writer

	// seams for tests
	readPassword func() ([]byte, error)
	openStore    func(ctx context.Context, cfg *config.Config) (*sql.DB, repomanager.RepositoryManager, error)

	db     *sql.DB
	auth   *services.AuthService
	agg    *services.AggregationService
	events *services.EventService
}

func NewApp(in io.Reader, out io.Writer) *App {
	return &App{
		in:  in,
		out: out,
		readPassword: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
		openStore: repomanager.Open,
	}
}

// globalFlags mirror the server's config sources so both binaries resolve
// the same store.
type globalFlags struct {
	configPath string
	mode       string
	dsn        string
	sqlitePath string
}

// args renders the flags in the form config.LoadArgs understands.
func (g globalFlags) args() []string {
	var args []string
	add := func(name, v string) {
		if v != "" {
			args = append(args, name, v)
		}
	}
	add("-c", g.configPath)
	add("-m", g.mode)
	add("-d", g.dsn)
	add("-f", g.sqlitePath)
	return args
}

// RootCommand builds the command tree. Every subcommand opens the store
// before running and closes it afterwards.
func (a *App) RootCommand() *cobra.Command {
	var flags globalFlags

	root := &cobra.Command{
		Use:          "bluecup-cli",
		Short:        "Operate a BlueCup store",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd.Context(), config.LoadArgs(flags.args()))
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetIn(a.in)
	root.SetOut(a.out)

	pf := root.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "path to JSON config file")
	pf.StringVarP(&flags.mode, "mode", "m", "", "deployment mode (production selects PostgreSQL)")
	pf.StringVarP(&flags.dsn, "dsn", "d", "", "PostgreSQL DSN")
	pf.StringVarP(&flags.sqlitePath, "db", "f", "", "SQLite database file")

	root.AddCommand(
		a.registerCommand(),
		a.leaderboardCommand(),
		a.rewardsCommand(),
		a.eventsCommand(),
	)
	return root
}

func (a *App) open(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	// a failed RunE skips the post-run hook
	if err := a.close(); err != nil {
		return err
	}
	logger := logging.NewJSONLogger(os.Stderr, logging.ParseLevel(cfg.LogLevel))

	db, rm, err := a.openStore(ctx, cfg)
	if err != nil {
		return err
	}

	a.db = db
	a.auth = services.NewAuthService(db, rm, cfg, logger, nil)
	a.agg = services.NewAggregationService(db, rm, cfg.RewardTiers)
	a.events = services.NewEventService(cfg.Events)
	return nil
}

func (a *App) close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}
