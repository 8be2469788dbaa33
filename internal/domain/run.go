package domain

import "time"

type RunStatus string

const (
	RunRunning RunStatus = "running"
	RunOK      RunStatus = "ok"
	RunFailed  RunStatus = "failed"
)

type RunAction string

const (
	ActionAssign         RunAction = "assign"
	ActionSetStoryPoints RunAction = "set_story_points"
)

type ItemOutcome string

const (
	OutcomeApplied ItemOutcome = "applied"
	OutcomePlanned ItemOutcome = "planned"
	OutcomeFailed  ItemOutcome = "failed"
)

// Run is one journaled invocation of a mutating command.
type Run struct {
	ID         string
	Command    string
	JQL        string
	Server     string
	DryRun     bool
	Status     RunStatus
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
	ItemCount  int
}

// RunItem records what a run did to a single record.
type RunItem struct {
	RunID     string
	Seq       int
	IssueKey  string
	Action    RunAction
	User      string
	Hours     float64
	Outcome   ItemOutcome
	Error     string
	CreatedAt time.Time
}
