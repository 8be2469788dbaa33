package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/domain"
)

// FormatAutoAssign renders the balancer's decisions followed by the load
// each roster member started and ended with.
func FormatAutoAssign(resp *app.AutoAssignResponse, dryRun bool) string {
	var b strings.Builder
	b.WriteString(FormatQuery(resp.Query))
	b.WriteString("\n")

	if len(resp.Assignments) == 0 {
		b.WriteString(Dim("No unassigned issues matched.") + "\n")
	} else {
		rows := make([][]string, 0, len(resp.Assignments))
		for _, a := range resp.Assignments {
			outcome := domain.OutcomeApplied
			if !a.Applied {
				outcome = domain.OutcomePlanned
			}
			rows = append(rows, []string{Bold(a.Key), a.Summary, a.User, Hours(a.Hours), OutcomePill(outcome)})
		}
		t := Table{
			Headers:    []string{"ISSUE", "SUMMARY", "USER", "HOURS", ""},
			Rows:       rows,
			RightAlign: []int{3},
		}
		b.WriteString(t.Render())
	}

	b.WriteString("\n")
	b.WriteString(formatLoadChange(resp.PriorLoad, resp.FinalLoad))

	title := "Auto-assign"
	if dryRun {
		title += " (dry run)"
	}
	if resp.RunID != "" {
		b.WriteString("\n" + Dim("run ") + TruncID(resp.RunID))
	}
	return RenderBox(title, b.String())
}

func formatLoadChange(prior, final domain.UserLoad) string {
	rows := make([][]string, 0, len(final))
	for _, u := range final.Users() {
		delta := final[u] - prior[u]
		deltaStr := Dim("--")
		if delta != 0 {
			deltaStr = StyleGreen.Render("+" + Hours(delta))
		}
		rows = append(rows, []string{u, Hours(prior[u]), deltaStr, Bold(Hours(final[u]))})
	}
	t := Table{
		Headers:    []string{"USER", "BEFORE", "ADDED", "AFTER"},
		Rows:       rows,
		RightAlign: []int{1, 2, 3},
	}
	return t.Render()
}

// FormatBackfill renders the story points set (or planned) per issue.
func FormatBackfill(resp *app.BackfillResponse, dryRun bool) string {
	var b strings.Builder
	b.WriteString(FormatQuery(resp.Query))
	b.WriteString("\n")

	if len(resp.Updates)+len(resp.Failed) == 0 {
		b.WriteString(Dim("No issues need story points.") + "\n")
	} else {
		rows := make([][]string, 0, len(resp.Updates))
		applied := 0
		for _, u := range resp.Updates {
			outcome := domain.OutcomePlanned
			if u.Applied {
				outcome = domain.OutcomeApplied
				applied++
			}
			rows = append(rows, []string{Bold(u.Key), StoryPoints(u.Points), OutcomePill(outcome)})
		}
		for _, key := range resp.Failed {
			rows = append(rows, []string{Bold(key), Dim("--"), OutcomePill(domain.OutcomeFailed)})
		}
		t := Table{
			Headers:    []string{"ISSUE", "POINTS", ""},
			Rows:       rows,
			RightAlign: []int{1},
		}
		b.WriteString(t.Render())
		b.WriteString("\n" + Dim(fmt.Sprintf("%s of %s updated", Count(applied), Count(len(resp.Updates)+len(resp.Failed)))))
	}

	title := "Story points"
	if dryRun {
		title += " (dry run)"
	}
	if resp.RunID != "" {
		b.WriteString("\n" + Dim("run ") + TruncID(resp.RunID))
	}
	return RenderBox(title, b.String())
}

// StoryPoints renders a point value without trailing zeros.
func StoryPoints(v float64) string {
	return strings.TrimSuffix(Hours(v), "h")
}

// FailedUpdates is the diagnostic printed when some story-point updates
// were refused.
func FailedUpdates(keys []string) string {
	return fmt.Sprintf("Updates could not be made on the following issues: %s", strings.Join(keys, ", "))
}
