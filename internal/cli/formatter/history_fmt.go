package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/askjira/internal/app"
	"github.com/alexanderramin/askjira/internal/domain"
)

// FormatRuns lists journaled runs, newest first.
func FormatRuns(runs []*domain.Run) string {
	if len(runs) == 0 {
		return Dim("No runs recorded yet.") + "\n"
	}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		command := r.Command
		if r.DryRun {
			command += Dim(" (dry run)")
		}
		rows = append(rows, []string{
			TruncID(r.ID),
			RelativeTime(r.StartedAt),
			command,
			RunStatusPill(r.Status),
			Count(r.ItemCount),
			truncate(r.JQL, 48),
		})
	}
	t := Table{
		Headers:    []string{"RUN", "STARTED", "COMMAND", "STATUS", "ITEMS", "JQL"},
		Rows:       rows,
		RightAlign: []int{4},
	}
	return t.Render()
}

// FormatRunDetail renders one run and its per-issue outcomes.
func FormatRunDetail(d *app.RunDetail) string {
	r := d.Run
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", Dim("Run:     "), r.ID)
	fmt.Fprintf(&b, "%s %s\n", Dim("Command: "), r.Command)
	if r.Server != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Server:  "), r.Server)
	}
	fmt.Fprintf(&b, "%s %s\n", Dim("JQL:     "), r.JQL)
	fmt.Fprintf(&b, "%s %s (%s)\n", Dim("Started: "), r.StartedAt.Local().Format("2006-01-02 15:04:05"), RelativeTime(r.StartedAt))
	fmt.Fprintf(&b, "%s %s\n", Dim("Took:    "), Duration(r.StartedAt, r.FinishedAt))
	fmt.Fprintf(&b, "%s %s\n", Dim("Status:  "), RunStatusPill(r.Status))
	if r.Error != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Error:   "), StyleRed.Render(r.Error))
	}
	b.WriteString("\n")

	if len(d.Items) == 0 {
		b.WriteString(Dim("No issues touched.") + "\n")
	} else {
		rows := make([][]string, 0, len(d.Items))
		for _, it := range d.Items {
			value := it.User
			if it.Action == domain.ActionSetStoryPoints {
				value = StoryPoints(it.Hours) + " pts"
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", it.Seq),
				Bold(it.IssueKey),
				string(it.Action),
				value,
				Hours(it.Hours),
				OutcomePill(it.Outcome),
				StyleRed.Render(it.Error),
			})
		}
		t := Table{
			Headers:    []string{"#", "ISSUE", "ACTION", "VALUE", "HOURS", "OUTCOME", "ERROR"},
			Rows:       rows,
			RightAlign: []int{0, 4},
		}
		b.WriteString(t.Render())
	}

	title := "Run"
	if r.DryRun {
		title += " (dry run)"
	}
	return RenderBox(title, b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
