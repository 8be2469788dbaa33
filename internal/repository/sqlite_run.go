package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/askjira/internal/db"
	"github.com/alexanderramin/askjira/internal/domain"
)

// SQLiteRunRepo implements RunRepo on the journal database.
type SQLiteRunRepo struct {
	db db.DBTX
}

// NewSQLiteRunRepo creates a new SQLiteRunRepo. conn may be a *sql.DB or a
// transaction.
func NewSQLiteRunRepo(conn db.DBTX) *SQLiteRunRepo {
	return &SQLiteRunRepo{db: conn}
}

const runColumns = `id, command, jql, server, dry_run, status, error, item_count, started_at, finished_at`

func (r *SQLiteRunRepo) Create(ctx context.Context, run *domain.Run) error {
	query := `INSERT INTO runs (id, command, jql, server, dry_run, status, error, item_count, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.Command,
		run.JQL,
		run.Server,
		boolToInt(run.DryRun),
		string(run.Status),
		run.Error,
		run.ItemCount,
		formatTime(run.StartedAt),
		nullableTimeToString(run.FinishedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}
	return nil
}

// AddItem appends item to its run, assigning the next sequence number and
// bumping the run's item count. Callers wanting both writes to be atomic
// pass a transaction-backed repo.
func (r *SQLiteRunRepo) AddItem(ctx context.Context, item *domain.RunItem) error {
	var seq int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(seq), 0) + 1 FROM run_items WHERE run_id = ?`, item.RunID).Scan(&seq)
	if err != nil {
		return fmt.Errorf("allocating item seq for run %s: %w", item.RunID, err)
	}

	query := `INSERT INTO run_items (run_id, seq, issue_key, action, user_name, hours, outcome, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query,
		item.RunID,
		seq,
		item.IssueKey,
		string(item.Action),
		item.User,
		item.Hours,
		string(item.Outcome),
		item.Error,
		formatTime(item.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting run item %s: %w", item.IssueKey, err)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE runs SET item_count = item_count + 1 WHERE id = ?`, item.RunID)
	if err != nil {
		return fmt.Errorf("counting run item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s: %w", item.RunID, ErrNotFound)
	}
	item.Seq = seq
	return nil
}

func (r *SQLiteRunRepo) Finish(ctx context.Context, id string, status domain.RunStatus, errMsg string, at time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE runs SET status = ?, error = ?, finished_at = ? WHERE id = ?`,
		string(status), errMsg, formatTime(at), id)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteRunRepo) GetByID(ctx context.Context, id string) (*domain.Run, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	return run, err
}

// GetByPrefix resolves a shortened run id. An exact match wins over longer
// ids sharing the prefix.
func (r *SQLiteRunRepo) GetByPrefix(ctx context.Context, prefix string) (*domain.Run, error) {
	if prefix == "" {
		return nil, fmt.Errorf("empty run id: %w", ErrNotFound)
	}
	if run, err := r.GetByID(ctx, prefix); err == nil {
		return run, nil
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id LIKE ? ESCAPE '\' ORDER BY started_at DESC LIMIT 2`,
		escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("looking up run prefix: %w", err)
	}
	defer rows.Close()

	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("run %s: %w", prefix, ErrNotFound)
	case 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("run %s: %w", prefix, ErrAmbiguousPrefix)
	}
}

// ListRecent returns up to limit runs, newest first.
func (r *SQLiteRunRepo) ListRecent(ctx context.Context, limit int) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func (r *SQLiteRunRepo) ListItems(ctx context.Context, runID string) ([]*domain.RunItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT run_id, seq, issue_key, action, user_name, hours, outcome, error, created_at
		FROM run_items WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing run items: %w", err)
	}
	defer rows.Close()

	var items []*domain.RunItem
	for rows.Next() {
		var it domain.RunItem
		var action, outcome, createdAt string
		if err := rows.Scan(&it.RunID, &it.Seq, &it.IssueKey, &action, &it.User, &it.Hours, &outcome, &it.Error, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning run item: %w", err)
		}
		it.Action = domain.RunAction(action)
		it.Outcome = domain.ItemOutcome(outcome)
		it.CreatedAt, _ = time.Parse(timeLayout, createdAt)
		items = append(items, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating run items: %w", err)
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*domain.Run, error) {
	var run domain.Run
	var dryRun int
	var status, startedAt string
	var finishedAt sql.NullString

	err := row.Scan(&run.ID, &run.Command, &run.JQL, &run.Server, &dryRun, &status,
		&run.Error, &run.ItemCount, &startedAt, &finishedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning run: %w", err)
	}

	run.DryRun = intToBool(dryRun)
	run.Status = domain.RunStatus(status)
	run.StartedAt, err = time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing run start: %w", err)
	}
	run.FinishedAt = parseNullableTime(finishedAt)
	return &run, nil
}

func scanRuns(rows *sql.Rows) ([]*domain.Run, error) {
	var runs []*domain.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating runs: %w", err)
	}
	return runs, nil
}
