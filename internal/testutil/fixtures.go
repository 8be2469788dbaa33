package testutil

import (
	"time"

	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/google/uuid"
)

// Field ids used by the default test catalog.
const (
	StoryPointsField domain.FieldID = "customfield_10002"
	EpicLinkField    domain.FieldID = "customfield_10008"
	DeveloperField   domain.FieldID = "customfield_10100"
)

// DefaultCatalog is a field catalog shaped like a stock JIRA server.
func DefaultCatalog() []domain.Field {
	return []domain.Field{
		{ID: domain.FieldAssignee, Name: domain.FieldNameAssignee},
		{ID: domain.FieldSummary, Name: "Summary"},
		{ID: domain.FieldOriginalEstimate, Name: domain.FieldNameOriginalEstimate},
		{ID: StoryPointsField, Name: domain.FieldNameStoryPoints, Custom: true},
		{ID: EpicLinkField, Name: domain.FieldNameEpicLink, Custom: true},
		{ID: DeveloperField, Name: "Developer", Custom: true},
	}
}

// Record options
type RecordOption func(*domain.Record)

func WithSummary(s string) RecordOption {
	return func(r *domain.Record) {
		r.Summary = s
	}
}

func WithIssueType(t string) RecordOption {
	return func(r *domain.Record) {
		r.IssueType = t
	}
}

// WithUser sets a user-valued field, e.g. the assignee.
func WithUser(id domain.FieldID, name string) RecordOption {
	return func(r *domain.Record) {
		r.Fields[id] = domain.UserRef{Name: name, DisplayName: name}
	}
}

func WithAssignee(name string) RecordOption {
	return WithUser(domain.FieldAssignee, name)
}

// WithPlannedHours sets the aggregate original estimate.
func WithPlannedHours(h float64) RecordOption {
	return WithSeconds(domain.FieldAggregateTimeOriginalEstimate, int64(h*3600))
}

// WithOriginalEstimateHours sets the record's own original estimate.
func WithOriginalEstimateHours(h float64) RecordOption {
	return WithSeconds(domain.FieldOriginalEstimate, int64(h*3600))
}

func WithSeconds(id domain.FieldID, s int64) RecordOption {
	return func(r *domain.Record) {
		r.Fields[id] = s
	}
}

func WithNumber(id domain.FieldID, v float64) RecordOption {
	return func(r *domain.Record) {
		r.Fields[id] = v
	}
}

func WithSubtasks(refs ...domain.RecordRef) RecordOption {
	return func(r *domain.Record) {
		r.Subtasks = append(r.Subtasks, refs...)
	}
}

func NewTestRecord(key string, opts ...RecordOption) domain.Record {
	r := domain.Record{
		Key:       key,
		Summary:   "Summary of " + key,
		IssueType: "Story",
		Fields:    make(map[domain.FieldID]any),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func NewTestWorkLog(key, author string, started time.Time, seconds int64) domain.WorkLog {
	return domain.WorkLog{
		ID:               uuid.New().String(),
		IssueKey:         key,
		Author:           domain.UserRef{Name: author},
		Started:          started,
		TimeSpentSeconds: seconds,
	}
}

// Run options
type RunOption func(*domain.Run)

func WithRunStartedAt(t time.Time) RunOption {
	return func(r *domain.Run) {
		r.StartedAt = t
	}
}

func WithRunID(id string) RunOption {
	return func(r *domain.Run) {
		r.ID = id
	}
}

func WithDryRun() RunOption {
	return func(r *domain.Run) {
		r.DryRun = true
	}
}

func NewTestRun(command string, opts ...RunOption) *domain.Run {
	r := &domain.Run{
		ID:        uuid.New().String(),
		Command:   command,
		JQL:       "project = OPS",
		Server:    "https://jira.example.com",
		Status:    domain.RunRunning,
		StartedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func NewTestRunItem(runID, key string, action domain.RunAction, outcome domain.ItemOutcome) *domain.RunItem {
	return &domain.RunItem{
		RunID:     runID,
		IssueKey:  key,
		Action:    action,
		Outcome:   outcome,
		CreatedAt: time.Now().UTC(),
	}
}
