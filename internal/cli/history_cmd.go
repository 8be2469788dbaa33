package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/askjira/internal/cli/formatter"
)

func runHistory(ctx context.Context, a *App, inv *Invocation) error {
	svc, err := a.history()
	if err != nil {
		return err
	}
	runs, err := svc.ListRuns(ctx, inv.Int(flagLimit))
	if err != nil {
		return err
	}
	fmt.Fprint(inv.Out(), formatter.FormatRuns(runs))
	return nil
}

func runHistoryShow(ctx context.Context, a *App, inv *Invocation) error {
	svc, err := a.history()
	if err != nil {
		return err
	}
	detail, err := svc.ShowRun(ctx, inv.Arg("RUN"))
	if err != nil {
		return err
	}
	fmt.Fprintln(inv.Out(), formatter.FormatRunDetail(detail))
	return nil
}
