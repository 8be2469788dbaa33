package service

import (
	"context"
	"testing"

	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/repository"
	"github.com/alexanderramin/askjira/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryService_ListAndShow(t *testing.T) {
	database := testutil.NewTestDB(t)
	runs := repository.NewSQLiteRunRepo(database)
	ctx := context.Background()

	run := testutil.NewTestRun("auto-assign", testutil.WithRunID("0f3c9a7e-1111"))
	require.NoError(t, runs.Create(ctx, run))
	require.NoError(t, runs.AddItem(ctx, testutil.NewTestRunItem(run.ID, "OPS-1", domain.ActionAssign, domain.OutcomeApplied)))

	svc := NewHistoryService(runs)

	list, err := svc.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].ItemCount)

	detail, err := svc.ShowRun(ctx, "0f3c")
	require.NoError(t, err)
	assert.Equal(t, run.ID, detail.Run.ID)
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "OPS-1", detail.Items[0].IssueKey)

	_, err = svc.ShowRun(ctx, "ffff")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
