package app

import (
	"time"

	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/timetracking"
)

type TimetrackingRequest struct {
	JQL string
}

type TimetrackingResponse struct {
	RecordCount int
	Totals      timetracking.TimeTotals
}

type AssignedHoursRequest struct {
	JQL string
	// AssigneeField is a display name; empty means "Assignee".
	AssigneeField string
}

type AssignedHoursResponse struct {
	RecordCount int
	Load        domain.UserLoad
}

type WorklogRequest struct {
	JQL      string
	From     time.Time
	To       time.Time
	Progress ProgressFunc
}

type WorklogResponse struct {
	RecordCount int
	Range       timetracking.DateRange
	Load        domain.UserLoad
}

type EpicTreeRequest struct {
	JQL string
}

// TreeNode is a record with its nested children in provider order.
type TreeNode struct {
	Key      string
	Summary  string
	Children []*TreeNode
}

type EpicTreeResponse struct {
	Roots []*TreeNode
}
