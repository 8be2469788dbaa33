package domain

import "fmt"

// FieldID is a provider-internal field identifier such as "assignee" or
// "customfield_10002".
type FieldID string

// Well-known system field ids.
const (
	FieldAssignee                      FieldID = "assignee"
	FieldSummary                       FieldID = "summary"
	FieldIssueType                     FieldID = "issuetype"
	FieldSubtasks                      FieldID = "subtasks"
	FieldOriginalEstimate              FieldID = "timeoriginalestimate"
	FieldRemainingEstimate             FieldID = "timeestimate"
	FieldTimeSpent                     FieldID = "timespent"
	FieldAggregateTimeOriginalEstimate FieldID = "aggregatetimeoriginalestimate"
	FieldAggregateTimeSpent            FieldID = "aggregatetimespent"
	FieldAggregateTimeEstimate         FieldID = "aggregatetimeestimate"
)

// Display names used by the built-in commands.
const (
	FieldNameAssignee         = "Assignee"
	FieldNameOriginalEstimate = "Original Estimate"
	FieldNameStoryPoints      = "Story Points"
	FieldNameEpicLink         = "Epic Link"
)

// Field is a single entry of the provider's field catalog.
type Field struct {
	ID     FieldID
	Name   string
	Custom bool
}

// FieldMap maps human-readable field names to field ids.
type FieldMap map[string]FieldID

// ID returns the id registered for name.
func (m FieldMap) ID(name string) (FieldID, error) {
	id, ok := m[name]
	if !ok {
		return "", fmt.Errorf("field %q: %w", name, ErrUnknownField)
	}
	return id, nil
}
