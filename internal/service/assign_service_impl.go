package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/timetracking"
)

// AssignProvider is what auto-assign needs from the provider.
type AssignProvider interface {
	Searcher
	FieldCatalog
	Updater
}

type autoAssignService struct {
	provider AssignProvider
	journal  Journal
	logger   *slog.Logger
	observer UseCaseObserver
}

func NewAutoAssignService(provider AssignProvider, journal Journal, logger *slog.Logger, observers ...UseCaseObserver) app.AutoAssignUseCase {
	return &autoAssignService{
		provider: provider,
		journal:  journalOrNoop(journal),
		logger:   loggerOrDiscard(logger),
		observer: useCaseObserverOrNoop(observers),
	}
}

// AutoAssign hands every unassigned record matching req.JQL to the roster
// member with the least planned hours so far. Prior load is taken from all
// records matching the query. The first failed update stops the run.
func (s *autoAssignService) AutoAssign(ctx context.Context, req app.AutoAssignRequest) (resp *app.AutoAssignResponse, err error) {
	name := domain.CoalesceStr(req.AssigneeField, domain.FieldNameAssignee)
	fields := map[string]any{"jql": req.JQL, "assignee_field": name, "dry_run": req.DryRun}
	defer observe(ctx, s.observer, "auto-assign", time.Now(), fields, &err)

	roster := timetracking.ParseRoster(strings.Join(req.Roster, ","))
	if len(roster) == 0 {
		return nil, ErrNoAssignableUsers
	}
	fields["roster"] = strings.Join(roster, ",")

	m, err := fieldMap(ctx, s.provider)
	if err != nil {
		return nil, err
	}
	assigneeID, err := m.ID(name)
	if err != nil {
		return nil, err
	}
	searchFields := []domain.FieldID{assigneeID, domain.FieldSummary, domain.FieldAggregateTimeOriginalEstimate}

	all, err := s.provider.Search(ctx, req.JQL, searchFields)
	if err != nil {
		return nil, err
	}
	prior := timetracking.SumHoursByUser(all, assigneeID)
	balancer, err := timetracking.NewBalancer(roster, prior)
	if err != nil {
		return nil, err
	}

	query := timetracking.AndClause(req.JQL, timetracking.IsEmptyClause(name))
	pending, err := s.provider.Search(ctx, query, searchFields)
	if err != nil {
		return nil, err
	}
	fields["records"] = len(pending)
	s.logger.DebugContext(ctx, "balancing", "query", query, "pending", len(pending), "prior", balancer.Load())

	resp = &app.AutoAssignResponse{Query: query, PriorLoad: balancer.Load()}
	runID := s.journal.Begin(ctx, "auto-assign", query, req.DryRun)
	resp.RunID = runID
	defer func() { s.journal.Finish(ctx, runID, err) }()

	for i, r := range pending {
		hours := r.PlannedHours()
		user := balancer.LeastLoaded()
		a := app.Assignment{Key: r.Key, Summary: r.Summary, User: user, Hours: hours}
		item := domain.RunItem{IssueKey: r.Key, Action: domain.ActionAssign, User: user, Hours: hours, Outcome: domain.OutcomePlanned}

		if !req.DryRun {
			s.logger.DebugContext(ctx, "assigning", "key", r.Key, "user", user, "n", i+1, "of", len(pending))
			err = s.provider.UpdateFields(ctx, r.Key, map[domain.FieldID]any{assigneeID: domain.UserRef{Name: user}})
			if err != nil {
				item.Outcome, item.Error = domain.OutcomeFailed, err.Error()
				s.journal.Record(ctx, runID, item)
				err = fmt.Errorf("assigning %s to %s: %w", r.Key, user, err)
				return nil, err
			}
			a.Applied = true
			item.Outcome = domain.OutcomeApplied
		}

		balancer.Add(user, hours)
		s.journal.Record(ctx, runID, item)
		resp.Assignments = append(resp.Assignments, a)
		reportProgress(req.Progress, i+1, len(pending), r.Key)
	}

	resp.FinalLoad = balancer.Load()
	return resp, nil
}
