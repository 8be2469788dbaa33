package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/timetracking"
)

// ReportProvider is what the read-only commands need from the provider.
type ReportProvider interface {
	Searcher
	FieldCatalog
	WorklogSource
	ProjectLister
}

// ReportService implements the read-only commands.
type ReportService struct {
	provider ReportProvider
	observer UseCaseObserver
}

func NewReportService(provider ReportProvider, observers ...UseCaseObserver) *ReportService {
	return &ReportService{
		provider: provider,
		observer: useCaseObserverOrNoop(observers),
	}
}

var (
	_ app.CatalogUseCase       = (*ReportService)(nil)
	_ app.TimetrackingUseCase  = (*ReportService)(nil)
	_ app.AssignedHoursUseCase = (*ReportService)(nil)
	_ app.WorklogUseCase       = (*ReportService)(nil)
	_ app.EpicTreeUseCase      = (*ReportService)(nil)
)

func (s *ReportService) Projects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.provider.Projects(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	return projects, nil
}

func (s *ReportService) Fields(ctx context.Context) ([]domain.Field, error) {
	fields, err := s.provider.Fields(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}
	return fields, nil
}

func (s *ReportService) SumTimetracking(ctx context.Context, req app.TimetrackingRequest) (resp *app.TimetrackingResponse, err error) {
	fields := map[string]any{"jql": req.JQL}
	defer observe(ctx, s.observer, "sum-timetracking", time.Now(), fields, &err)

	records, err := s.provider.Search(ctx, req.JQL, timetracking.TimeTrackingFields)
	if err != nil {
		return nil, err
	}
	fields["records"] = len(records)

	return &app.TimetrackingResponse{
		RecordCount: len(records),
		Totals:      timetracking.SumTimeFields(records),
	}, nil
}

func (s *ReportService) SumAssignedHours(ctx context.Context, req app.AssignedHoursRequest) (resp *app.AssignedHoursResponse, err error) {
	name := domain.CoalesceStr(req.AssigneeField, domain.FieldNameAssignee)
	fields := map[string]any{"jql": req.JQL, "assignee_field": name}
	defer observe(ctx, s.observer, "sum-assigned-hours", time.Now(), fields, &err)

	m, err := fieldMap(ctx, s.provider)
	if err != nil {
		return nil, err
	}
	assigneeID, err := m.ID(name)
	if err != nil {
		return nil, err
	}

	records, err := s.provider.Search(ctx, req.JQL,
		[]domain.FieldID{assigneeID, domain.FieldAggregateTimeOriginalEstimate})
	if err != nil {
		return nil, err
	}
	fields["records"] = len(records)

	return &app.AssignedHoursResponse{
		RecordCount: len(records),
		Load:        timetracking.SumHoursByUser(records, assigneeID),
	}, nil
}

// SumWorklogs fetches the worklogs of every matching record and totals the
// entries started in [From, To) per author. An empty or inverted range
// yields an empty result.
func (s *ReportService) SumWorklogs(ctx context.Context, req app.WorklogRequest) (resp *app.WorklogResponse, err error) {
	rng := timetracking.DateRange{From: req.From, To: req.To}
	fields := map[string]any{
		"jql":  req.JQL,
		"from": req.From.Format(time.DateOnly),
		"to":   req.To.Format(time.DateOnly),
	}
	defer observe(ctx, s.observer, "sum-worklogs", time.Now(), fields, &err)

	records, err := s.provider.Search(ctx, req.JQL, timetracking.TimeTrackingFields)
	if err != nil {
		return nil, err
	}
	fields["records"] = len(records)

	load := make(domain.UserLoad)
	for i, r := range records {
		logs, err := s.provider.Worklogs(ctx, r.Key)
		if err != nil {
			return nil, err
		}
		load = timetracking.SumWorklogs(load, logs, rng)
		reportProgress(req.Progress, i+1, len(records), r.Key)
	}

	return &app.WorklogResponse{RecordCount: len(records), Range: rng, Load: load}, nil
}

var treeFields = []domain.FieldID{domain.FieldSummary, domain.FieldIssueType, domain.FieldSubtasks}

// EpicTree builds epic > story > sub-task trees for the matching records.
// Stories of an epic are found through its Epic Link; sub-tasks come from
// each record's subtasks field.
func (s *ReportService) EpicTree(ctx context.Context, req app.EpicTreeRequest) (resp *app.EpicTreeResponse, err error) {
	fields := map[string]any{"jql": req.JQL}
	defer observe(ctx, s.observer, "epic-tree", time.Now(), fields, &err)

	records, err := s.provider.Search(ctx, req.JQL, treeFields)
	if err != nil {
		return nil, err
	}
	fields["records"] = len(records)

	resp = &app.EpicTreeResponse{}
	for _, r := range records {
		node := treeNode(r)
		if r.IsEpic() {
			children, err := s.provider.Search(ctx, timetracking.EpicChildrenClause(r.Key), treeFields)
			if err != nil {
				return nil, fmt.Errorf("listing stories of %s: %w", r.Key, err)
			}
			for _, c := range children {
				node.Children = append(node.Children, treeNode(c))
			}
		}
		resp.Roots = append(resp.Roots, node)
	}
	return resp, nil
}

func treeNode(r domain.Record) *app.TreeNode {
	node := &app.TreeNode{Key: r.Key, Summary: r.Summary}
	for _, st := range r.Subtasks {
		node.Children = append(node.Children, &app.TreeNode{Key: st.Key, Summary: st.Summary})
	}
	return node
}
