package timetracking

import "github.com/alexanderramin/askjira/internal/domain"

// TimeTotals holds the summed time-tracking fields of a record set.
type TimeTotals struct {
	OriginalEstimate domain.Workdays
	TimeSpent        domain.Workdays
	TimeRemaining    domain.Workdays
}

// TimeTrackingFields are the fields SumTimeFields reads.
var TimeTrackingFields = []domain.FieldID{
	domain.FieldAggregateTimeEstimate,
	domain.FieldAggregateTimeSpent,
	domain.FieldAggregateTimeOriginalEstimate,
}

// SumTimeFields sums aggregate original estimate, time spent and remaining
// estimate across records. Missing values count as zero.
func SumTimeFields(records []domain.Record) TimeTotals {
	var planned, spent, remaining int64
	for _, r := range records {
		planned += r.Seconds(domain.FieldAggregateTimeOriginalEstimate)
		spent += r.Seconds(domain.FieldAggregateTimeSpent)
		remaining += r.Seconds(domain.FieldAggregateTimeEstimate)
	}
	return TimeTotals{
		OriginalEstimate: domain.WorkdaysFromSeconds(planned),
		TimeSpent:        domain.WorkdaysFromSeconds(spent),
		TimeRemaining:    domain.WorkdaysFromSeconds(remaining),
	}
}

// SumHoursByUser groups records by the identity in assigneeField and sums
// their planned hours. Records without an assignee land in the
// domain.Unassigned bucket, which is dropped only when it sums to exactly 0.
func SumHoursByUser(records []domain.Record, assigneeField domain.FieldID) domain.UserLoad {
	load := make(domain.UserLoad)
	for _, r := range records {
		user, ok := r.User(assigneeField)
		if !ok {
			user = domain.Unassigned
		}
		load[user] += r.PlannedHours()
	}
	if v, ok := load[domain.Unassigned]; ok && v == 0 {
		delete(load, domain.Unassigned)
	}
	return load
}

// RosterLoad restricts prior to the roster: the unassigned bucket and users
// outside the roster are dropped, roster members without prior load start
// at zero.
func RosterLoad(prior domain.UserLoad, roster []string) domain.UserLoad {
	load := make(domain.UserLoad, len(roster))
	for _, u := range roster {
		if u == domain.Unassigned {
			continue
		}
		load[u] = prior[u]
	}
	return load
}
