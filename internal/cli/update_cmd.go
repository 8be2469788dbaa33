package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/cli/formatter"
	"github.com/alexanderramin/askjira/internal/service"
	"github.com/alexanderramin/askjira/internal/timetracking"
)

func runAutoAssign(ctx context.Context, a *App, inv *Invocation) error {
	roster := inv.Roster(flagAssignableUsers)
	if len(roster) == 0 {
		return service.ErrNoAssignableUsers
	}
	jql := inv.Arg("JQL")
	dryRun := inv.Bool(flagDryRun)

	svc, err := a.autoAssign(ctx)
	if err != nil {
		return err
	}
	ok, err := a.confirm(ctx, inv,
		"Assign unassigned issues?",
		fmt.Sprintf("Issues matching %q will be shared among %s.", jql, strings.Join(roster, ", ")))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(inv.Out(), formatter.Dim("Aborted."))
		return nil
	}

	progress, done := progressFor(a, inv, "assigning")
	resp, err := svc.AutoAssign(ctx, app.AutoAssignRequest{
		JQL:           jql,
		AssigneeField: inv.String(flagAssigneeField),
		Roster:        roster,
		DryRun:        dryRun,
		Progress:      progress,
	})
	done()
	if err != nil {
		return err
	}
	fmt.Fprintln(inv.Out(), formatter.FormatAutoAssign(resp, dryRun))
	return nil
}

// runSetStoryPoints reports refused updates on stderr but still succeeds.
func runSetStoryPoints(ctx context.Context, a *App, inv *Invocation) error {
	jql := inv.Arg("JQL")
	dryRun := inv.Bool(flagDryRun)

	svc, err := a.backfill(ctx)
	if err != nil {
		return err
	}
	ok, err := a.confirm(ctx, inv,
		"Set story points?",
		fmt.Sprintf("Issues matching %q get story points from their original estimate.", timetracking.AndClause(jql, timetracking.BackfillClause())))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(inv.Out(), formatter.Dim("Aborted."))
		return nil
	}

	progress, done := progressFor(a, inv, "story points")
	resp, err := svc.SetStoryPoints(ctx, app.BackfillRequest{JQL: jql, DryRun: dryRun, Progress: progress})
	done()
	if err != nil {
		return err
	}

	fmt.Fprintln(inv.Out(), formatter.FormatBackfill(resp, dryRun))
	if len(resp.Failed) > 0 {
		fmt.Fprintln(inv.ErrOut(), formatter.FailedUpdates(resp.Failed))
	}
	return nil
}
