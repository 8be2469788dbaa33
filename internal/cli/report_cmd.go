package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/cli/formatter"
)

// withSpinner shows a spinner on stderr while fn runs, when interactive.
func withSpinner(a *App, inv *Invocation, message string, fn func() error) error {
	if a.interactive() {
		stop := formatter.StartSpinner(inv.ErrOut(), message)
		defer stop()
	}
	return fn()
}

// progressFor returns a progress line on stderr when interactive. The
// returned stop func is always safe to call.
func progressFor(a *App, inv *Invocation, label string) (app.ProgressFunc, func()) {
	if !a.interactive() {
		return nil, func() {}
	}
	bar := formatter.NewProgressBar(inv.ErrOut(), label)
	return bar.Update, bar.Done
}

func runProjects(ctx context.Context, a *App, inv *Invocation) error {
	svc, err := a.reports(ctx)
	if err != nil {
		return err
	}
	projects, err := svc.Projects(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(inv.Out(), formatter.FormatProjects(projects))
	return nil
}

func runFields(ctx context.Context, a *App, inv *Invocation) error {
	svc, err := a.reports(ctx)
	if err != nil {
		return err
	}
	fields, err := svc.Fields(ctx)
	if err != nil {
		return err
	}
	fmt.Fprint(inv.Out(), formatter.FormatFields(fields))
	return nil
}

func runSumTimetracking(ctx context.Context, a *App, inv *Invocation) error {
	svc, err := a.reports(ctx)
	if err != nil {
		return err
	}
	var resp *app.TimetrackingResponse
	err = withSpinner(a, inv, "Searching issues...", func() error {
		resp, err = svc.SumTimetracking(ctx, app.TimetrackingRequest{JQL: inv.Arg("JQL")})
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(inv.Out(), formatter.FormatTimeTotals(resp.RecordCount, resp.Totals))
	return nil
}

func runSumAssignedHours(ctx context.Context, a *App, inv *Invocation) error {
	svc, err := a.reports(ctx)
	if err != nil {
		return err
	}
	var resp *app.AssignedHoursResponse
	err = withSpinner(a, inv, "Searching issues...", func() error {
		resp, err = svc.SumAssignedHours(ctx, app.AssignedHoursRequest{
			JQL:           inv.Arg("JQL"),
			AssigneeField: inv.String(flagAssigneeField),
		})
		return err
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(inv.Out(), formatter.FormatUserLoad("Assigned hours", resp.RecordCount, resp.Load))
	return nil
}

func runSumWorklogs(ctx context.Context, a *App, inv *Invocation) error {
	from, err := parseDate("START", inv.Arg("START"))
	if err != nil {
		return err
	}
	to, err := parseDate("END", inv.Arg("END"))
	if err != nil {
		return err
	}

	svc, err := a.reports(ctx)
	if err != nil {
		return err
	}
	progress, done := progressFor(a, inv, "worklogs")
	resp, err := svc.SumWorklogs(ctx, app.WorklogRequest{
		JQL:      inv.Arg("JQL"),
		From:     from,
		To:       to,
		Progress: progress,
	})
	done()
	if err != nil {
		return err
	}
	fmt.Fprintln(inv.Out(), formatter.FormatUserLoad(formatter.WorklogTitle(resp.Range), resp.RecordCount, resp.Load))
	return nil
}

func runEpicTree(ctx context.Context, a *App, inv *Invocation) error {
	svc, err := a.reports(ctx)
	if err != nil {
		return err
	}
	var resp *app.EpicTreeResponse
	err = withSpinner(a, inv, "Collecting epics...", func() error {
		resp, err = svc.EpicTree(ctx, app.EpicTreeRequest{JQL: inv.Arg("JQL")})
		return err
	})
	if err != nil {
		return err
	}

	md := formatter.EpicTreeMarkdown(resp.Roots)
	if a.terminal() {
		rendered, err := formatter.RenderMarkdown(md)
		if err != nil {
			a.logger().DebugContext(ctx, "markdown rendering failed", "error", err)
		} else {
			md = rendered
		}
	}
	fmt.Fprint(inv.Out(), md)
	return nil
}

func parseDate(name, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q: expected YYYY-MM-DD", name, value)
	}
	return t, nil
}
