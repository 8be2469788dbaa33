package jira

import (
	"time"

	gojira "github.com/andygrunwald/go-jira"

	"github.com/alexanderramin/askjira/internal/domain"
)

func recordFromIssue(issue *gojira.Issue) domain.Record {
	r := domain.Record{Key: issue.Key, Fields: make(map[domain.FieldID]any)}
	f := issue.Fields
	if f == nil {
		return r
	}

	r.Summary = f.Summary
	r.IssueType = f.Type.Name
	for _, st := range f.Subtasks {
		if st == nil {
			continue
		}
		r.Subtasks = append(r.Subtasks, domain.RecordRef{Key: st.Key, Summary: st.Fields.Summary})
	}

	if f.Assignee != nil {
		r.Fields[domain.FieldAssignee] = userRef(f.Assignee)
	}
	// go-jira drops zero durations through omitempty, so zero and unset
	// are indistinguishable here; both read back as 0 seconds.
	setSeconds(r.Fields, domain.FieldOriginalEstimate, f.TimeOriginalEstimate)
	setSeconds(r.Fields, domain.FieldRemainingEstimate, f.TimeEstimate)
	setSeconds(r.Fields, domain.FieldTimeSpent, f.TimeSpent)
	setSeconds(r.Fields, domain.FieldAggregateTimeOriginalEstimate, f.AggregateTimeOriginalEstimate)
	setSeconds(r.Fields, domain.FieldAggregateTimeSpent, f.AggregateTimeSpent)
	setSeconds(r.Fields, domain.FieldAggregateTimeEstimate, f.AggregateTimeEstimate)

	for k, v := range f.Unknowns {
		r.Fields[domain.FieldID(k)] = normalize(v)
	}
	return r
}

func setSeconds(fields map[domain.FieldID]any, id domain.FieldID, v int) {
	if v != 0 {
		fields[id] = int64(v)
	}
}

func userRef(u *gojira.User) domain.UserRef {
	return domain.UserRef{
		Name:        domain.CoalesceStr(u.Name, u.AccountID),
		DisplayName: u.DisplayName,
	}
}

// normalize maps a raw custom field value onto the value set Record
// accessors understand. User pickers arrive as objects with a name or
// accountId key.
func normalize(v interface{}) any {
	switch val := v.(type) {
	case map[string]interface{}:
		name, _ := val["name"].(string)
		accountID, _ := val["accountId"].(string)
		if name == "" && accountID == "" {
			return val
		}
		display, _ := val["displayName"].(string)
		return domain.UserRef{Name: domain.CoalesceStr(name, accountID), DisplayName: display}
	default:
		return val
	}
}

// updateValue turns domain values into the JSON shapes the REST API
// expects on update.
func updateValue(v any) interface{} {
	switch val := v.(type) {
	case domain.UserRef:
		return map[string]string{"name": val.Name}
	case *domain.UserRef:
		if val == nil {
			return nil
		}
		return map[string]string{"name": val.Name}
	default:
		return val
	}
}

func worklogFromRecord(key string, rec gojira.WorklogRecord) domain.WorkLog {
	w := domain.WorkLog{
		ID:               rec.ID,
		IssueKey:         key,
		TimeSpentSeconds: int64(rec.TimeSpentSeconds),
	}
	if rec.Author != nil {
		w.Author = userRef(rec.Author)
	}
	if rec.Started != nil {
		w.Started = time.Time(*rec.Started)
	}
	return w
}
