package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/testutil"
	"github.com/alexanderramin/askjira/internal/timetracking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumTimetracking(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Default = []domain.Record{
		testutil.NewTestRecord("OPS-1",
			testutil.WithSeconds(domain.FieldAggregateTimeOriginalEstimate, 8*3600),
			testutil.WithSeconds(domain.FieldAggregateTimeSpent, 3600),
			testutil.WithSeconds(domain.FieldAggregateTimeEstimate, 7*3600)),
		testutil.NewTestRecord("OPS-2",
			testutil.WithSeconds(domain.FieldAggregateTimeOriginalEstimate, 2*3600)),
	}

	resp, err := NewReportService(p).SumTimetracking(context.Background(), app.TimetrackingRequest{JQL: baseJQL})
	require.NoError(t, err)

	assert.Equal(t, 2, resp.RecordCount)
	assert.Equal(t, 10.0, resp.Totals.OriginalEstimate.Hours())
	assert.Equal(t, 1.0, resp.Totals.TimeSpent.Hours())
	assert.Equal(t, 7.0, resp.Totals.TimeRemaining.Hours())
	assert.Equal(t, timetracking.TimeTrackingFields, p.Searches[0].Fields)
}

func TestSumAssignedHours_NullBucket(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Default = []domain.Record{
		testutil.NewTestRecord("OPS-1", testutil.WithAssignee("alice"), testutil.WithPlannedHours(3)),
		testutil.NewTestRecord("OPS-2"),
	}
	svc := NewReportService(p)

	resp, err := svc.SumAssignedHours(context.Background(), app.AssignedHoursRequest{JQL: baseJQL})
	require.NoError(t, err)
	assert.Equal(t, domain.UserLoad{"alice": 3}, resp.Load, "zero unassigned bucket is dropped")

	p.Default = append(p.Default, testutil.NewTestRecord("OPS-3", testutil.WithPlannedHours(2)))
	resp, err = svc.SumAssignedHours(context.Background(), app.AssignedHoursRequest{JQL: baseJQL})
	require.NoError(t, err)
	assert.Equal(t, domain.UserLoad{"alice": 3, domain.Unassigned: 2}, resp.Load)
}

func TestSumAssignedHours_UnknownField(t *testing.T) {
	p := testutil.NewFakeProvider()

	_, err := NewReportService(p).SumAssignedHours(context.Background(), app.AssignedHoursRequest{JQL: baseJQL, AssigneeField: "Reviewer"})

	assert.ErrorIs(t, err, domain.ErrUnknownField)
}

func TestSumWorklogs_HalfOpenRange(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC)
	p := testutil.NewFakeProvider()
	p.Default = []domain.Record{testutil.NewTestRecord("OPS-1"), testutil.NewTestRecord("OPS-2")}
	p.WorklogsFor["OPS-1"] = []domain.WorkLog{
		testutil.NewTestWorkLog("OPS-1", "alice", from.Add(9*time.Hour), 3600),
		testutil.NewTestWorkLog("OPS-1", "alice", to.Add(9*time.Hour), 3600),
		testutil.NewTestWorkLog("OPS-1", "bob", from.Add(-time.Hour), 3600),
	}
	p.WorklogsFor["OPS-2"] = []domain.WorkLog{
		testutil.NewTestWorkLog("OPS-2", "bob", to.Add(-time.Minute), 1800),
	}

	var seen []string
	resp, err := NewReportService(p).SumWorklogs(context.Background(), app.WorklogRequest{
		JQL: baseJQL, From: from, To: to,
		Progress: func(done, total int, key string) { seen = append(seen, key) },
	})
	require.NoError(t, err)

	assert.Equal(t, domain.UserLoad{"alice": 1, "bob": 0.5}, resp.Load)
	assert.Equal(t, []string{"OPS-1", "OPS-2"}, seen)
}

func TestSumWorklogs_InvertedRangeIsEmpty(t *testing.T) {
	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	p := testutil.NewFakeProvider()
	p.Default = []domain.Record{testutil.NewTestRecord("OPS-1")}
	p.WorklogsFor["OPS-1"] = []domain.WorkLog{testutil.NewTestWorkLog("OPS-1", "alice", day, 3600)}

	resp, err := NewReportService(p).SumWorklogs(context.Background(), app.WorklogRequest{JQL: baseJQL, From: day, To: day})
	require.NoError(t, err)

	assert.Empty(t, resp.Load)
}

func TestEpicTree(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Results[baseJQL] = []domain.Record{
		testutil.NewTestRecord("OPS-1", testutil.WithIssueType("Epic"), testutil.WithSummary("Billing")),
		testutil.NewTestRecord("OPS-9", testutil.WithSummary("Loose task"),
			testutil.WithSubtasks(domain.RecordRef{Key: "OPS-10", Summary: "Sub"})),
	}
	p.Results[`"Epic Link" = OPS-1`] = []domain.Record{
		testutil.NewTestRecord("OPS-2", testutil.WithSummary("Invoices"),
			testutil.WithSubtasks(domain.RecordRef{Key: "OPS-3", Summary: "Template"})),
	}

	resp, err := NewReportService(p).EpicTree(context.Background(), app.EpicTreeRequest{JQL: baseJQL})
	require.NoError(t, err)

	require.Len(t, resp.Roots, 2)
	epic := resp.Roots[0]
	assert.Equal(t, "OPS-1", epic.Key)
	require.Len(t, epic.Children, 1)
	assert.Equal(t, "Invoices", epic.Children[0].Summary)
	require.Len(t, epic.Children[0].Children, 1)
	assert.Equal(t, "OPS-3", epic.Children[0].Children[0].Key)

	loose := resp.Roots[1]
	require.Len(t, loose.Children, 1)
	assert.Equal(t, "OPS-10", loose.Children[0].Key)
	assert.Len(t, p.Searches, 2, "only epics trigger a child search")
}

func TestCatalog(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.ProjectList = []domain.Project{{ID: "1", Key: "OPS", Name: "Operations"}}
	svc := NewReportService(p)

	projects, err := svc.Projects(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p.ProjectList, projects)

	fields, err := svc.Fields(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testutil.DefaultCatalog(), fields)
}
