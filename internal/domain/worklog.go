package domain

import "time"

type WorkLog struct {
	ID               string
	IssueKey         string
	Author           UserRef
	Started          time.Time
	TimeSpentSeconds int64
}

// Hours returns the logged time in hours.
func (w WorkLog) Hours() float64 {
	return float64(w.TimeSpentSeconds) / secondsPerHour
}

// StartDate returns the calendar date the entry started on, in the offset
// the entry was recorded with, as midnight UTC.
func (w WorkLog) StartDate() time.Time {
	return CivilDate(w.Started)
}

// CivilDate truncates t to its calendar date in t's own location and
// returns that date as midnight UTC so dates compare independently of zones.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
