package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

// CommandSpec is the static registry of every command the tool offers.
// The cobra tree is built from it; nothing is discovered at runtime.
type CommandSpec struct {
	Commands []CommandEntry
}

// CommandEntry describes a single command or subcommand.
type CommandEntry struct {
	Name        string
	Aliases     []string
	Short       string
	Long        string
	Args        []ArgEntry
	Flags       []FlagEntry
	Examples    string
	Subcommands []CommandEntry
	Run         Handler
}

// ArgEntry describes a positional argument.
type ArgEntry struct {
	Name        string
	Description string
}

// FlagEntry describes a single flag on a command.
type FlagEntry struct {
	Name        string
	Type        string // bool, string, int or roster
	Default     string
	Description string
}

// Handler runs a command against the App.
type Handler func(ctx context.Context, a *App, inv *Invocation) error

const (
	flagAssigneeField   = "assignee-field"
	flagAssignableUsers = "assignable-users"
	flagDryRun          = "dry-run"
	flagYes             = "yes"
	flagLimit           = "limit"
)

var (
	argJQL = ArgEntry{Name: "JQL", Description: "JQL query selecting the issues"}

	assigneeFieldFlag = FlagEntry{Name: flagAssigneeField, Type: "string", Default: "Assignee", Description: "Display name of the field holding the assignee"}
	dryRunFlag        = FlagEntry{Name: flagDryRun, Type: "bool", Description: "Compute and print the changes without updating issues"}
	yesFlag           = FlagEntry{Name: flagYes, Type: "bool", Description: "Skip the confirmation prompt"}
)

// Commands returns the command registry.
func Commands() *CommandSpec {
	return &CommandSpec{
		Commands: []CommandEntry{
			{
				Name:  "projects",
				Short: "List the projects visible to the configured user",
				Run:   runProjects,
			},
			{
				Name:  "fields",
				Short: "List field names and ids",
				Run:   runFields,
			},
			{
				Name:     "sum-timetracking",
				Aliases:  []string{"sum_timetracking_for_jql"},
				Short:    "Sum original estimate, time spent and time remaining",
				Args:     []ArgEntry{argJQL},
				Examples: `ask-jira sum-timetracking "project = OPS AND fixVersion = 1.4"`,
				Run:      runSumTimetracking,
			},
			{
				Name:     "sum-assigned-hours",
				Aliases:  []string{"sum_assigned_hours_by_user_for_jql"},
				Short:    "Sum original estimate hours per assignee",
				Args:     []ArgEntry{argJQL},
				Flags:    []FlagEntry{assigneeFieldFlag},
				Examples: `ask-jira sum-assigned-hours --assignee-field Developer "sprint in openSprints()"`,
				Run:      runSumAssignedHours,
			},
			{
				Name:    "auto-assign",
				Aliases: []string{"auto_assign_issues_for_jql"},
				Short:   "Assign unassigned issues to the least loaded users",
				Long: "Assigns every issue matching JQL that has no assignee to the user in the\n" +
					"roster with the fewest planned hours so far, counting the hours of issues\n" +
					"already assigned to them by the same query.",
				Args: []ArgEntry{argJQL},
				Flags: []FlagEntry{
					assigneeFieldFlag,
					{Name: flagAssignableUsers, Type: "roster", Description: "Comma-separated users to assign issues to"},
					dryRunFlag,
					yesFlag,
				},
				Examples: `ask-jira auto-assign --assignable-users alice,bob "project = OPS AND sprint = 12"`,
				Run:      runAutoAssign,
			},
			{
				Name:    "sum-worklogs",
				Aliases: []string{"sum_worklogs_by_user_for_jql"},
				Short:   "Sum logged hours per user between two dates",
				Long:    "Totals worklog entries that started on or after START and before END.",
				Args: []ArgEntry{
					argJQL,
					{Name: "START", Description: "First day included, YYYY-MM-DD"},
					{Name: "END", Description: "First day excluded, YYYY-MM-DD"},
				},
				Examples: `ask-jira sum-worklogs "project = OPS" 2024-03-01 2024-04-01`,
				Run:      runSumWorklogs,
			},
			{
				Name:     "set-story-points",
				Aliases:  []string{"set_story_points_from_hours"},
				Short:    "Set story points from original estimate hours",
				Args:     []ArgEntry{argJQL},
				Flags:    []FlagEntry{dryRunFlag, yesFlag},
				Examples: `ask-jira set-story-points "project = OPS"`,
				Run:      runSetStoryPoints,
			},
			{
				Name:     "epic-tree",
				Aliases:  []string{"list_epics_stories_and_tasks_for_jql"},
				Short:    "Print epics, their stories and sub-tasks as a Markdown list",
				Args:     []ArgEntry{argJQL},
				Examples: `ask-jira epic-tree "project = OPS AND issuetype = Epic"`,
				Run:      runEpicTree,
			},
			{
				Name:  "history",
				Short: "List recent auto-assign and story point runs",
				Flags: []FlagEntry{{Name: flagLimit, Type: "int", Default: "20", Description: "Number of runs to show"}},
				Run:   runHistory,
				Subcommands: []CommandEntry{
					{
						Name:  "show",
						Short: "Show the issues touched by a run",
						Args:  []ArgEntry{{Name: "RUN", Description: "Run id or unique id prefix"}},
						Run:   runHistoryShow,
					},
				},
			},
		},
	}
}

// FindCommand returns the top-level entry named name or one of its
// aliases, or nil.
func (spec *CommandSpec) FindCommand(name string) *CommandEntry {
	for i := range spec.Commands {
		c := &spec.Commands[i]
		if c.Name == name {
			return c
		}
		for _, alias := range c.Aliases {
			if alias == name {
				return c
			}
		}
	}
	return nil
}

// buildCommand turns an entry into a cobra command bound to a.
func buildCommand(a *App, entry CommandEntry) *cobra.Command {
	use := entry.Name
	for _, arg := range entry.Args {
		use += " " + arg.Name
	}

	cmd := &cobra.Command{
		Use:     use,
		Aliases: entry.Aliases,
		Short:   entry.Short,
		Long:    longHelp(entry),
		Example: entry.Examples,
		Args:    cobra.ExactArgs(len(entry.Args)),
	}
	for _, f := range entry.Flags {
		bindFlag(cmd, f)
	}
	if entry.Run != nil {
		run := entry.Run
		cmd.RunE = func(cmd *cobra.Command, args []string) error {
			inv := &Invocation{cmd: cmd, entry: entry, args: args}
			return run(cmd.Context(), a, inv)
		}
	}
	for _, sub := range entry.Subcommands {
		cmd.AddCommand(buildCommand(a, sub))
	}
	return cmd
}

func longHelp(entry CommandEntry) string {
	long := entry.Long
	if long == "" {
		long = entry.Short
	}
	if len(entry.Args) == 0 {
		return long
	}
	var b strings.Builder
	b.WriteString(long)
	b.WriteString("\n\nArguments:\n")
	for _, arg := range entry.Args {
		fmt.Fprintf(&b, "  %-6s %s\n", arg.Name, arg.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func bindFlag(cmd *cobra.Command, f FlagEntry) {
	switch f.Type {
	case "bool":
		cmd.Flags().Bool(f.Name, f.Default == "true", f.Description)
	case "int":
		n, _ := strconv.Atoi(f.Default)
		cmd.Flags().Int(f.Name, n, f.Description)
	case "roster":
		cmd.Flags().Var(&rosterValue{}, f.Name, f.Description)
	default:
		cmd.Flags().String(f.Name, f.Default, f.Description)
	}
}

// Invocation gives a handler its positional arguments, flag values and
// output streams.
type Invocation struct {
	cmd   *cobra.Command
	entry CommandEntry
	args  []string
}

// Arg returns the positional argument declared as name.
func (inv *Invocation) Arg(name string) string {
	for i, a := range inv.entry.Args {
		if a.Name == name && i < len(inv.args) {
			return inv.args[i]
		}
	}
	return ""
}

func (inv *Invocation) Bool(name string) bool {
	v, _ := inv.cmd.Flags().GetBool(name)
	return v
}

func (inv *Invocation) String(name string) string {
	v, _ := inv.cmd.Flags().GetString(name)
	return v
}

func (inv *Invocation) Int(name string) int {
	v, _ := inv.cmd.Flags().GetInt(name)
	return v
}

// Roster returns the users given to a roster flag.
func (inv *Invocation) Roster(name string) []string {
	f := inv.cmd.Flags().Lookup(name)
	if f == nil {
		return nil
	}
	if r, ok := f.Value.(*rosterValue); ok {
		return r.users
	}
	return nil
}

func (inv *Invocation) Out() io.Writer    { return inv.cmd.OutOrStdout() }
func (inv *Invocation) ErrOut() io.Writer { return inv.cmd.ErrOrStderr() }
