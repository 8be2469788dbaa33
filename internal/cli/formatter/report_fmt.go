package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/timetracking"
)

// FormatProjects lists projects as a KEY / NAME table.
func FormatProjects(projects []domain.Project) string {
	if len(projects) == 0 {
		return Dim("No projects visible to this user.") + "\n"
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{Bold(p.Key), p.Name, Dim(p.ID)})
	}
	return RenderTable([]string{"KEY", "NAME", "ID"}, rows)
}

// FormatFields lists the field catalog, custom fields marked.
func FormatFields(fields []domain.Field) string {
	rows := make([][]string, 0, len(fields))
	for _, f := range fields {
		kind := Dim("system")
		if f.Custom {
			kind = StylePurple.Render("custom")
		}
		rows = append(rows, []string{f.Name, string(f.ID), kind})
	}
	return RenderTable([]string{"NAME", "ID", "KIND"}, rows)
}

// FormatTimeTotals renders the three time-tracking sums in business time.
func FormatTimeTotals(records int, totals timetracking.TimeTotals) string {
	row := func(label string, w domain.Workdays) []string {
		return []string{label, Bold(w.String()), Hours(w.Hours()), fmt.Sprintf("%.1fd", w.Days())}
	}
	t := Table{
		Headers: []string{"FIELD", "TOTAL", "HOURS", "DAYS"},
		Rows: [][]string{
			row("Original estimate", totals.OriginalEstimate),
			row("Time spent", totals.TimeSpent),
			row("Time remaining", totals.TimeRemaining),
		},
		RightAlign: []int{2, 3},
	}
	body := t.Render() + "\n" + Dim(fmt.Sprintf("%s issues", Count(records)))
	return RenderBox("Time tracking", body)
}

// FormatUserLoad renders per-user hour totals sorted by identity, with a
// total row. The unassigned bucket, when present, is listed first.
func FormatUserLoad(title string, records int, load domain.UserLoad) string {
	if len(load) == 0 {
		return RenderBox(title, Dim(fmt.Sprintf("No hours across %s issues.", Count(records))))
	}
	rows := make([][]string, 0, len(load))
	for _, u := range load.Users() {
		rows = append(rows, []string{UserName(u), Hours(load[u])})
	}
	t := Table{
		Headers:    []string{"USER", "HOURS"},
		Rows:       rows,
		Footer:     []string{"Total", Hours(load.Total())},
		RightAlign: []int{1},
	}
	body := t.Render() + "\n" + Dim(fmt.Sprintf("%s issues", Count(records)))
	return RenderBox(title, body)
}

// WorklogTitle names a worklog report by its half-open date range.
func WorklogTitle(rng timetracking.DateRange) string {
	return fmt.Sprintf("Worklogs %s to %s", rng.From.Format(time.DateOnly), rng.To.Format(time.DateOnly))
}

// FormatQuery shows the query a command actually ran.
func FormatQuery(jql string) string {
	return Dim("JQL: ") + StyleFg.Render(strings.TrimSpace(jql)) + "\n"
}
