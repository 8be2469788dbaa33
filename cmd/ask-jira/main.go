package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/askjira/internal/cli"
	"github.com/alexanderramin/askjira/internal/config"
	"github.com/alexanderramin/askjira/internal/db"
	"github.com/alexanderramin/askjira/internal/jira"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	level := new(slog.LevelVar)
	level.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	app := &cli.App{
		Connect: func(ctx context.Context) (*cli.Connection, error) {
			return connect(cfg, os.Stderr)
		},
		OpenJournal: func() (*sql.DB, error) {
			return db.OpenDB(cfg.HistoryPath)
		},
		IsInteractive: func() bool { return isTerminal(os.Stdin) },
		IsTerminal:    func() bool { return isTerminal(os.Stdout) },
		Logger:        logger,
		LogLevel:      level,
	}
	defer app.Close()

	return cli.Execute(ctx, app, os.Args[1:], os.Stdout, os.Stderr)
}

// connect loads the credentials file and builds the JIRA client. Provider
// calls are logged to callLog when ASKJIRA_LOG_CALLS is set.
func connect(cfg config.Config, callLog io.Writer) (*cli.Connection, error) {
	creds, err := config.LoadCredentials(cfg.CredentialsPath)
	if err != nil {
		return nil, err
	}
	var observer jira.Observer = jira.NoopObserver{}
	if cfg.LogCalls {
		observer = jira.NewLogObserver(callLog)
	}
	client, err := jira.NewClient(creds, cfg.MaxResults, observer)
	if err != nil {
		return nil, err
	}
	return &cli.Connection{Provider: client, Server: creds.Server}, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
