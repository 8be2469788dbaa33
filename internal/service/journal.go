package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/alexanderramin/askjira/internal/db"
	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/repository"
	"github.com/google/uuid"
)

type sqliteJournal struct {
	runs   repository.RunRepo
	uow    db.UnitOfWork
	server string
	logger *slog.Logger
	now    func() time.Time
}

// NewSQLiteJournal journals runs against server into the repository behind
// uow. Write failures are logged as warnings.
func NewSQLiteJournal(runs repository.RunRepo, uow db.UnitOfWork, server string, logger *slog.Logger) Journal {
	return &sqliteJournal{
		runs:   runs,
		uow:    uow,
		server: server,
		logger: loggerOrDiscard(logger),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (j *sqliteJournal) Begin(ctx context.Context, command, jql string, dryRun bool) string {
	run := &domain.Run{
		ID:        uuid.New().String(),
		Command:   command,
		JQL:       jql,
		Server:    j.server,
		DryRun:    dryRun,
		Status:    domain.RunRunning,
		StartedAt: j.now(),
	}
	if err := j.runs.Create(ctx, run); err != nil {
		j.logger.WarnContext(ctx, "journal unavailable, run not recorded", "command", command, "error", err)
		return ""
	}
	return run.ID
}

func (j *sqliteJournal) Record(ctx context.Context, runID string, item domain.RunItem) {
	if runID == "" {
		return
	}
	item.RunID = runID
	if item.CreatedAt.IsZero() {
		item.CreatedAt = j.now()
	}
	err := j.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteRunRepo(tx).AddItem(ctx, &item)
	})
	if err != nil {
		j.logger.WarnContext(ctx, "journal item not recorded", "run", runID, "key", item.IssueKey, "error", err)
	}
}

func (j *sqliteJournal) Finish(ctx context.Context, runID string, runErr error) {
	if runID == "" {
		return
	}
	status, msg := domain.RunOK, ""
	if runErr != nil {
		status, msg = domain.RunFailed, runErr.Error()
	}
	// The command context may already be cancelled; the outcome still
	// belongs in the journal.
	ctx = context.WithoutCancel(ctx)
	if err := j.runs.Finish(ctx, runID, status, msg, j.now()); err != nil {
		j.logger.WarnContext(ctx, "journal run not finished", "run", runID, "error", err)
	}
}

// NoopJournal discards all runs.
type NoopJournal struct{}

func (NoopJournal) Begin(context.Context, string, string, bool) string { return "" }
func (NoopJournal) Record(context.Context, string, domain.RunItem)     {}
func (NoopJournal) Finish(context.Context, string, error)              {}

func journalOrNoop(j Journal) Journal {
	if j == nil {
		return NoopJournal{}
	}
	return j
}
