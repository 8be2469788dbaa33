package domain

// UserRef identifies a provider user.
type UserRef struct {
	Name        string
	DisplayName string
}

// RecordRef is a lightweight reference to another record, e.g. a sub-task.
type RecordRef struct {
	Key     string
	Summary string
}

// Record is an issue returned by a provider search. Only the fields the
// caller asked for are present in Fields. Values are normalized to UserRef,
// int64 (seconds), float64, string or nil.
type Record struct {
	Key       string
	Summary   string
	IssueType string
	Subtasks  []RecordRef
	Fields    map[FieldID]any
}

// Has reports whether id is present with a non-nil value.
func (r Record) Has(id FieldID) bool {
	v, ok := r.Fields[id]
	return ok && v != nil
}

// User returns the user identity stored in id.
func (r Record) User(id FieldID) (string, bool) {
	switch v := r.Fields[id].(type) {
	case UserRef:
		if v.Name == "" {
			return "", false
		}
		return v.Name, true
	case *UserRef:
		if v == nil || v.Name == "" {
			return "", false
		}
		return v.Name, true
	default:
		return "", false
	}
}

// Seconds returns a duration field in seconds, treating absent values as 0.
func (r Record) Seconds(id FieldID) int64 {
	switch v := r.Fields[id].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	default:
		return 0
	}
}

// Number returns a numeric field such as story points.
func (r Record) Number(id FieldID) (float64, bool) {
	switch v := r.Fields[id].(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}

// PlannedHours is the record's aggregate original estimate in hours.
func (r Record) PlannedHours() float64 {
	return WorkdaysFromSeconds(r.Seconds(FieldAggregateTimeOriginalEstimate)).Hours()
}

// IssueTypeEpic is the issue type name of epics.
const IssueTypeEpic = "Epic"

// IsEpic reports whether the record is an epic.
func (r Record) IsEpic() bool {
	return r.IssueType == IssueTypeEpic
}
