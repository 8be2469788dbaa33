package service

import (
	"context"
	"errors"
	"testing"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/repository"
	"github.com/alexanderramin/askjira/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	baseJQL    = "project = OPS"
	pendingJQL = `(project = OPS) AND "Assignee" IS EMPTY`
)

func TestAutoAssign_GreedyScenario(t *testing.T) {
	p := testutil.NewFakeProvider()
	pending := []domain.Record{
		testutil.NewTestRecord("OPS-1", testutil.WithPlannedHours(5)),
		testutil.NewTestRecord("OPS-2", testutil.WithPlannedHours(3)),
		testutil.NewTestRecord("OPS-3", testutil.WithPlannedHours(2)),
	}
	p.Results[baseJQL] = pending
	p.Results[pendingJQL] = pending

	svc := NewAutoAssignService(p, nil, nil)
	resp, err := svc.AutoAssign(context.Background(), app.AutoAssignRequest{
		JQL:    baseJQL,
		Roster: []string{"A", "B"},
	})
	require.NoError(t, err)

	assert.Equal(t, pendingJQL, resp.Query)
	require.Len(t, resp.Assignments, 3)
	assert.Equal(t, "A", resp.Assignments[0].User)
	assert.Equal(t, "B", resp.Assignments[1].User)
	assert.Equal(t, "B", resp.Assignments[2].User)
	for _, a := range resp.Assignments {
		assert.True(t, a.Applied)
	}
	assert.Equal(t, domain.UserLoad{"A": 0, "B": 0}, resp.PriorLoad)
	assert.Equal(t, domain.UserLoad{"A": 5, "B": 5}, resp.FinalLoad)

	require.Len(t, p.Updates, 3)
	assert.Equal(t, []string{"OPS-1", "OPS-2", "OPS-3"}, p.UpdatedKeys())
	assert.Equal(t, map[domain.FieldID]any{domain.FieldAssignee: domain.UserRef{Name: "A"}}, p.Updates[0].Values)
}

func TestAutoAssign_PriorLoadRestrictedToRoster(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Results[baseJQL] = []domain.Record{
		testutil.NewTestRecord("OPS-1", testutil.WithAssignee("B"), testutil.WithPlannedHours(4)),
		testutil.NewTestRecord("OPS-2", testutil.WithAssignee("carol"), testutil.WithPlannedHours(100)),
		testutil.NewTestRecord("OPS-3", testutil.WithPlannedHours(2)),
		testutil.NewTestRecord("OPS-4", testutil.WithPlannedHours(2)),
	}
	p.Results[pendingJQL] = []domain.Record{
		testutil.NewTestRecord("OPS-3", testutil.WithPlannedHours(2)),
		testutil.NewTestRecord("OPS-4", testutil.WithPlannedHours(2)),
	}

	resp, err := NewAutoAssignService(p, nil, nil).AutoAssign(context.Background(), app.AutoAssignRequest{
		JQL:    baseJQL,
		Roster: []string{"A", "B"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.UserLoad{"A": 0, "B": 4}, resp.PriorLoad)
	assert.Equal(t, []string{"A", "A"}, []string{resp.Assignments[0].User, resp.Assignments[1].User})
	assert.Equal(t, domain.UserLoad{"A": 4, "B": 4}, resp.FinalLoad)
}

func TestAutoAssign_EmptyRosterFailsBeforeProviderCalls(t *testing.T) {
	for _, roster := range [][]string{nil, {}, {"", " ", ","}} {
		p := testutil.NewFakeProvider()

		_, err := NewAutoAssignService(p, nil, nil).AutoAssign(context.Background(), app.AutoAssignRequest{
			JQL:    baseJQL,
			Roster: roster,
		})

		assert.ErrorIs(t, err, ErrNoAssignableUsers)
		assert.Zero(t, p.Calls())
	}
}

func TestAutoAssign_NoPendingRecordsLeavesLoadUnchanged(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Results[baseJQL] = []domain.Record{
		testutil.NewTestRecord("OPS-1", testutil.WithAssignee("A"), testutil.WithPlannedHours(3)),
	}
	p.Results[pendingJQL] = nil

	resp, err := NewAutoAssignService(p, nil, nil).AutoAssign(context.Background(), app.AutoAssignRequest{
		JQL:    baseJQL,
		Roster: []string{"A", "B"},
	})
	require.NoError(t, err)

	assert.Empty(t, resp.Assignments)
	assert.Equal(t, resp.PriorLoad, resp.FinalLoad)
	assert.Empty(t, p.Updates)
}

func TestAutoAssign_UpdateFailureStopsRun(t *testing.T) {
	p := testutil.NewFakeProvider()
	pending := []domain.Record{
		testutil.NewTestRecord("OPS-1", testutil.WithPlannedHours(1)),
		testutil.NewTestRecord("OPS-2", testutil.WithPlannedHours(1)),
		testutil.NewTestRecord("OPS-3", testutil.WithPlannedHours(1)),
	}
	p.Results[pendingJQL] = pending
	boom := errors.New("boom")
	p.UpdateErrs["OPS-2"] = boom

	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteRunRepo(database)
	journal := NewSQLiteJournal(runs, testutil.NewTestUoW(database), "https://jira.example.com", nil)

	_, err := NewAutoAssignService(p, journal, nil).AutoAssign(context.Background(), app.AutoAssignRequest{
		JQL:    baseJQL,
		Roster: []string{"A"},
	})

	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "OPS-2")
	assert.Equal(t, []string{"OPS-1"}, p.UpdatedKeys(), "records after the failure are not touched")

	recent, err := runs.ListRecent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, domain.RunFailed, recent[0].Status)
	assert.Equal(t, 2, recent[0].ItemCount)

	items, err := runs.ListItems(context.Background(), recent[0].ID)
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeApplied, items[0].Outcome)
	assert.Equal(t, domain.OutcomeFailed, items[1].Outcome)
}

func TestAutoAssign_DryRunDoesNotUpdate(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Results[pendingJQL] = []domain.Record{
		testutil.NewTestRecord("OPS-1", testutil.WithPlannedHours(5)),
		testutil.NewTestRecord("OPS-2", testutil.WithPlannedHours(3)),
	}

	var progress []int
	resp, err := NewAutoAssignService(p, nil, nil).AutoAssign(context.Background(), app.AutoAssignRequest{
		JQL:      baseJQL,
		Roster:   []string{"B", "A"},
		DryRun:   true,
		Progress: func(done, total int, key string) { progress = append(progress, done) },
	})
	require.NoError(t, err)

	assert.Empty(t, p.Updates)
	require.Len(t, resp.Assignments, 2)
	assert.Equal(t, "A", resp.Assignments[0].User, "ties go to the lexicographically smaller user")
	assert.False(t, resp.Assignments[0].Applied)
	assert.Equal(t, "B", resp.Assignments[1].User)
	assert.Equal(t, []int{1, 2}, progress)
}

func TestAutoAssign_CustomAssigneeField(t *testing.T) {
	p := testutil.NewFakeProvider()
	query := `(project = OPS) AND "Developer" IS EMPTY`
	p.Results[query] = []domain.Record{testutil.NewTestRecord("OPS-1", testutil.WithPlannedHours(1))}

	_, err := NewAutoAssignService(p, nil, nil).AutoAssign(context.Background(), app.AutoAssignRequest{
		JQL:           baseJQL,
		AssigneeField: "Developer",
		Roster:        []string{"A"},
	})
	require.NoError(t, err)

	require.Len(t, p.Updates, 1)
	assert.Equal(t, domain.UserRef{Name: "A"}, p.Updates[0].Values[testutil.DeveloperField])
	assert.Equal(t, []domain.FieldID{testutil.DeveloperField, domain.FieldSummary, domain.FieldAggregateTimeOriginalEstimate}, p.Searches[0].Fields)
}

func TestAutoAssign_UnknownAssigneeField(t *testing.T) {
	p := testutil.NewFakeProvider()

	_, err := NewAutoAssignService(p, nil, nil).AutoAssign(context.Background(), app.AutoAssignRequest{
		JQL:           baseJQL,
		AssigneeField: "Nope",
		Roster:        []string{"A"},
	})

	assert.ErrorIs(t, err, domain.ErrUnknownField)
	assert.Empty(t, p.Searches)
}

func TestAutoAssign_CatalogFailurePropagates(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.FieldsErr = errors.New("unreachable")

	_, err := NewAutoAssignService(p, nil, nil).AutoAssign(context.Background(), app.AutoAssignRequest{
		JQL:    baseJQL,
		Roster: []string{"A"},
	})

	assert.ErrorIs(t, err, p.FieldsErr)
}
