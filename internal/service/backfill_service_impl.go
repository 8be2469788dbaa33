package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/timetracking"
)

// BackfillProvider is what the story-point backfill needs from the provider.
type BackfillProvider interface {
	Searcher
	FieldCatalog
	Updater
}

type backfillService struct {
	provider BackfillProvider
	journal  Journal
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewBackfillService(provider BackfillProvider, journal Journal, logger *slog.Logger, observers ...UseCaseObserver) app.BackfillUseCase {
	return &backfillService{
		provider: provider,
		journal:  journalOrNoop(journal),
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// SetStoryPoints sets story points to the original estimate in hours on
// every matching record that has an estimate and no points. Records the
// provider refuses are collected in the response; any other failure aborts.
func (s *backfillService) SetStoryPoints(ctx context.Context, req app.BackfillRequest) (resp *app.BackfillResponse, err error) {
	fields := map[string]any{"jql": req.JQL, "dry_run": req.DryRun}
	defer observe(ctx, s.observer, "set-story-points", time.Now(), fields, &err)

	query := timetracking.AndClause(req.JQL, timetracking.BackfillClause())

	m, err := fieldMap(ctx, s.provider)
	if err != nil {
		return nil, err
	}
	ids, err := resolveFieldIDs(m, domain.FieldNameOriginalEstimate, domain.FieldNameStoryPoints)
	if err != nil {
		return nil, err
	}
	estimateID, pointsID := ids[0], ids[1]

	records, err := s.provider.Search(ctx, query, []domain.FieldID{domain.FieldSummary, estimateID, pointsID})
	if err != nil {
		return nil, err
	}
	fields["records"] = len(records)

	resp = &app.BackfillResponse{Query: query}
	runID := s.journal.Begin(ctx, "set-story-points", query, req.DryRun)
	resp.RunID = runID
	defer func() { s.journal.Finish(ctx, runID, err) }()

	var failed []string
	for i, r := range records {
		reportProgress(req.Progress, i+1, len(records), r.Key)

		hours := domain.WorkdaysFromSeconds(r.Seconds(estimateID)).Hours()
		if r.Has(pointsID) || hours == 0 {
			continue
		}
		item := domain.RunItem{IssueKey: r.Key, Action: domain.ActionSetStoryPoints, Hours: hours, Outcome: domain.OutcomePlanned}

		if !req.DryRun {
			updErr := s.provider.UpdateFields(ctx, r.Key, map[domain.FieldID]any{pointsID: hours})
			switch {
			case errors.Is(updErr, domain.ErrUpdateRejected):
				s.logger.WarnContext(ctx, "unable to update story points", "key", r.Key, "error", updErr)
				failed = append(failed, r.Key)
				item.Outcome, item.Error = domain.OutcomeFailed, updErr.Error()
				s.journal.Record(ctx, runID, item)
				continue
			case updErr != nil:
				item.Outcome, item.Error = domain.OutcomeFailed, updErr.Error()
				s.journal.Record(ctx, runID, item)
				err = updErr
				return nil, err
			}
			item.Outcome = domain.OutcomeApplied
		}

		s.journal.Record(ctx, runID, item)
		resp.Updates = append(resp.Updates, app.StoryPointUpdate{Key: r.Key, Points: hours, Applied: !req.DryRun})
	}

	resp.Failed = sortedUnique(failed)
	fields["failed"] = len(resp.Failed)
	return resp, nil
}
