package timetracking

import (
	"time"

	"github.com/alexanderramin/askjira/internal/domain"
)

// DateRange is a half-open calendar date range [From, To).
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether the calendar date of t falls in the range.
func (r DateRange) Contains(t time.Time) bool {
	d := domain.CivilDate(t)
	return !d.Before(domain.CivilDate(r.From)) && d.Before(domain.CivilDate(r.To))
}

// SumWorklogs adds the hours of every entry that started inside rng to the
// author's total in load. A nil load is allocated.
func SumWorklogs(load domain.UserLoad, logs []domain.WorkLog, rng DateRange) domain.UserLoad {
	if load == nil {
		load = make(domain.UserLoad)
	}
	for _, w := range logs {
		if !rng.Contains(w.Started) {
			continue
		}
		load[w.Author.Name] += w.Hours()
	}
	return load
}
