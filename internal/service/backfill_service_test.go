package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/repository"
	"github.com/alexanderramin/askjira/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const backfillJQL = `(project = OPS) AND originalEstimate IS NOT EMPTY AND "Story Points" IS EMPTY`

func rejected(key string) error {
	return fmt.Errorf("updating %s: %w", key, domain.ErrUpdateRejected)
}

func TestSetStoryPoints_PartialFailureIsCollected(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Results[backfillJQL] = []domain.Record{
		testutil.NewTestRecord("OPS-9", testutil.WithOriginalEstimateHours(2)),
		testutil.NewTestRecord("OPS-10", testutil.WithOriginalEstimateHours(3)),
		testutil.NewTestRecord("OPS-11", testutil.WithOriginalEstimateHours(1.5)),
	}
	p.UpdateErrs["OPS-9"] = rejected("OPS-9")
	p.UpdateErrs["OPS-10"] = rejected("OPS-10")

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	resp, err := NewBackfillService(p, nil, logger).SetStoryPoints(context.Background(), app.BackfillRequest{JQL: baseJQL})
	require.NoError(t, err)

	assert.Equal(t, backfillJQL, resp.Query)
	assert.Equal(t, []string{"OPS-10", "OPS-9"}, resp.Failed)
	require.Len(t, resp.Updates, 1)
	assert.Equal(t, app.StoryPointUpdate{Key: "OPS-11", Points: 1.5, Applied: true}, resp.Updates[0])
	assert.Equal(t, map[domain.FieldID]any{testutil.StoryPointsField: 1.5}, p.Updates[0].Values)
	assert.Contains(t, logs.String(), "unable to update story points")
	assert.Contains(t, logs.String(), "key=OPS-9")
}

func TestSetStoryPoints_SkipsRecordsWithPointsOrNoEstimate(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Results[backfillJQL] = []domain.Record{
		testutil.NewTestRecord("OPS-1", testutil.WithOriginalEstimateHours(4), testutil.WithNumber(testutil.StoryPointsField, 8)),
		testutil.NewTestRecord("OPS-2"),
		testutil.NewTestRecord("OPS-3", testutil.WithOriginalEstimateHours(4)),
	}

	resp, err := NewBackfillService(p, nil, nil).SetStoryPoints(context.Background(), app.BackfillRequest{JQL: baseJQL})
	require.NoError(t, err)

	assert.Equal(t, []string{"OPS-3"}, p.UpdatedKeys())
	assert.Empty(t, resp.Failed)
	require.Len(t, resp.Updates, 1)
	assert.Equal(t, 4.0, resp.Updates[0].Points)
}

func TestSetStoryPoints_OtherErrorsAbort(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Results[backfillJQL] = []domain.Record{
		testutil.NewTestRecord("OPS-1", testutil.WithOriginalEstimateHours(1)),
		testutil.NewTestRecord("OPS-2", testutil.WithOriginalEstimateHours(1)),
	}
	reset := errors.New("connection reset")
	p.UpdateErrs["OPS-1"] = reset

	_, err := NewBackfillService(p, nil, nil).SetStoryPoints(context.Background(), app.BackfillRequest{JQL: baseJQL})

	assert.ErrorIs(t, err, reset)
	assert.Empty(t, p.Updates)
}

func TestSetStoryPoints_DryRunJournalsPlan(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Results[backfillJQL] = []domain.Record{
		testutil.NewTestRecord("OPS-1", testutil.WithOriginalEstimateHours(6)),
	}
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteRunRepo(database)
	journal := NewSQLiteJournal(runs, testutil.NewTestUoW(database), "https://jira.example.com", nil)

	resp, err := NewBackfillService(p, journal, nil).SetStoryPoints(context.Background(), app.BackfillRequest{JQL: baseJQL, DryRun: true})
	require.NoError(t, err)

	assert.Empty(t, p.Updates)
	require.Len(t, resp.Updates, 1)
	assert.False(t, resp.Updates[0].Applied)
	require.NotEmpty(t, resp.RunID)

	run, err := runs.GetByID(context.Background(), resp.RunID)
	require.NoError(t, err)
	assert.True(t, run.DryRun)
	assert.Equal(t, domain.RunOK, run.Status)
	assert.Equal(t, backfillJQL, run.JQL)

	items, err := runs.ListItems(context.Background(), resp.RunID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.OutcomePlanned, items[0].Outcome)
	assert.Equal(t, domain.ActionSetStoryPoints, items[0].Action)
	assert.Equal(t, 6.0, items[0].Hours)
}

func TestSetStoryPoints_MissingStoryPointsField(t *testing.T) {
	p := testutil.NewFakeProvider()
	p.Catalog = []domain.Field{{ID: domain.FieldOriginalEstimate, Name: domain.FieldNameOriginalEstimate}}

	_, err := NewBackfillService(p, nil, nil).SetStoryPoints(context.Background(), app.BackfillRequest{JQL: baseJQL})

	assert.ErrorIs(t, err, domain.ErrUnknownField)
	assert.Contains(t, err.Error(), "Story Points")
}
