package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/db"
	"github.com/alexanderramin/askjira/internal/repository"
	"github.com/alexanderramin/askjira/internal/service"
	"github.com/spf13/cobra"
)

// ErrNoCommand is returned when ask-jira is run without a command.
var ErrNoCommand = errors.New("no command given")

// Connection is an authenticated provider and the server it talks to.
type Connection struct {
	Provider service.Provider
	Server   string
}

// App holds the collaborators commands need. The provider and the run
// journal are opened on first use, so help and history work without
// credentials.
type App struct {
	Connect     func(ctx context.Context) (*Connection, error)
	OpenJournal func() (*sql.DB, error)

	// IsInteractive reports whether stdin is a terminal; confirmations
	// and progress output are only shown then.
	IsInteractive func() bool
	// IsTerminal reports whether stdout is a terminal; Markdown is
	// rendered only then.
	IsTerminal func() bool
	Confirm    func(ctx context.Context, title, description string) (bool, error)

	Logger   *slog.Logger
	LogLevel *slog.LevelVar

	conn      *Connection
	journalDB *sql.DB
	dbErr     error
}

// NewRootCmd creates the top-level "ask-jira" command and registers every
// command of the registry against the provided App.
func NewRootCmd(a *App) *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "ask-jira",
		Short:         "Aggregate and update JIRA issues selected by JQL",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose && a.LogLevel != nil {
				a.LogLevel.Set(slog.LevelDebug)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
			return ErrNoCommand
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	for _, entry := range Commands().Commands {
		root.AddCommand(buildCommand(a, entry))
	}
	return root
}

// Execute runs args against a fresh command tree. Unknown commands print
// usage to stderr.
func Execute(ctx context.Context, a *App, args []string, stdout, stderr io.Writer) error {
	root := NewRootCmd(a)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if err != nil && strings.Contains(err.Error(), "unknown command") {
		fmt.Fprint(stderr, root.UsageString())
	}
	return err
}

// Close releases the run journal.
func (a *App) Close() error {
	if a.journalDB != nil {
		return a.journalDB.Close()
	}
	return nil
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) terminal() bool {
	return a.IsTerminal != nil && a.IsTerminal()
}

func (a *App) connect(ctx context.Context) (*Connection, error) {
	if a.conn != nil {
		return a.conn, nil
	}
	if a.Connect == nil {
		return nil, errors.New("no JIRA connection configured")
	}
	conn, err := a.Connect(ctx)
	if err != nil {
		return nil, err
	}
	a.conn = conn
	return conn, nil
}

func (a *App) openJournal() (*sql.DB, error) {
	if a.journalDB == nil && a.dbErr == nil {
		if a.OpenJournal == nil {
			a.dbErr = errors.New("run journal not configured")
		} else {
			a.journalDB, a.dbErr = a.OpenJournal()
		}
	}
	return a.journalDB, a.dbErr
}

func (a *App) observer() service.UseCaseObserver {
	return service.NewLogUseCaseObserver(a.logger())
}

func (a *App) reports(ctx context.Context) (*service.ReportService, error) {
	conn, err := a.connect(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewReportService(conn.Provider, a.observer()), nil
}

// journal returns the run journal for conn. An unavailable journal only
// costs the record of the run.
func (a *App) journal(ctx context.Context, conn *Connection) service.Journal {
	database, err := a.openJournal()
	if err != nil {
		a.logger().WarnContext(ctx, "journal unavailable, run not recorded", "error", err)
		return service.NoopJournal{}
	}
	return service.NewSQLiteJournal(
		repository.NewSQLiteRunRepo(database),
		db.NewSQLiteUnitOfWork(database),
		conn.Server,
		a.logger(),
	)
}

func (a *App) autoAssign(ctx context.Context) (app.AutoAssignUseCase, error) {
	conn, err := a.connect(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewAutoAssignService(conn.Provider, a.journal(ctx, conn), a.logger(), a.observer()), nil
}

func (a *App) backfill(ctx context.Context) (app.BackfillUseCase, error) {
	conn, err := a.connect(ctx)
	if err != nil {
		return nil, err
	}
	return service.NewBackfillService(conn.Provider, a.journal(ctx, conn), a.logger(), a.observer()), nil
}

func (a *App) history() (app.HistoryUseCase, error) {
	database, err := a.openJournal()
	if err != nil {
		return nil, fmt.Errorf("opening run journal: %w", err)
	}
	return service.NewHistoryService(repository.NewSQLiteRunRepo(database)), nil
}
