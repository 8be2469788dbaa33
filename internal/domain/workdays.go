package domain

import (
	"fmt"
	"strings"
)

const (
	secondsPerHour  = 3600
	HoursPerWorkday = 8
	DaysPerWorkweek = 5
)

// Workdays is a second count presented in business time: 8 hour days and
// 5 day weeks.
type Workdays struct {
	Seconds int64
}

func WorkdaysFromSeconds(s int64) Workdays {
	return Workdays{Seconds: s}
}

// Hours returns the total in hours.
func (w Workdays) Hours() float64 {
	return float64(w.Seconds) / secondsPerHour
}

// Days returns the total in business days.
func (w Workdays) Days() float64 {
	return w.Hours() / HoursPerWorkday
}

// Breakdown splits the total into weeks, days, hours and minutes of
// business time. Leftover seconds are dropped.
func (w Workdays) Breakdown() (weeks, days, hours, minutes int64) {
	s := w.Seconds
	if s < 0 {
		s = -s
	}
	const (
		minute = 60
		hour   = secondsPerHour
		day    = HoursPerWorkday * hour
		week   = DaysPerWorkweek * day
	)
	weeks = s / week
	s %= week
	days = s / day
	s %= day
	hours = s / hour
	s %= hour
	minutes = s / minute
	return weeks, days, hours, minutes
}

// String renders the breakdown like "1w 2d 3h 30m". Zero is "0h".
func (w Workdays) String() string {
	weeks, days, hours, minutes := w.Breakdown()
	var parts []string
	if weeks > 0 {
		parts = append(parts, fmt.Sprintf("%dw", weeks))
	}
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if len(parts) == 0 {
		return "0h"
	}
	out := strings.Join(parts, " ")
	if w.Seconds < 0 {
		return "-" + out
	}
	return out
}
