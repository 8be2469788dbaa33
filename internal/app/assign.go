package app

import "github.com/alexanderramin/askjira/internal/domain"

type AutoAssignRequest struct {
	JQL string
	// AssigneeField is a display name; empty means "Assignee".
	AssigneeField string
	Roster        []string
	DryRun        bool
	Progress      ProgressFunc
}

// Assignment is one balancer decision.
type Assignment struct {
	Key     string
	Summary string
	User    string
	Hours   float64
	Applied bool
}

type AutoAssignResponse struct {
	RunID       string
	Query       string
	PriorLoad   domain.UserLoad
	FinalLoad   domain.UserLoad
	Assignments []Assignment
}
