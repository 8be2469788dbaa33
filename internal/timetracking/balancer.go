package timetracking

import (
	"errors"
	"strings"

	"github.com/alexanderramin/askjira/internal/domain"
)

// ErrEmptyRoster indicates a balancer was built without assignable users.
var ErrEmptyRoster = errors.New("no users specified to assign to")

// Balancer hands out records to the currently least-loaded roster member.
// It is a greedy one-pass heuristic, not an optimal bin packing.
type Balancer struct {
	load domain.UserLoad
}

// NewBalancer starts a balancer from the roster's prior load. Users of
// prior outside the roster are ignored.
func NewBalancer(roster []string, prior domain.UserLoad) (*Balancer, error) {
	load := RosterLoad(prior, roster)
	if len(load) == 0 {
		return nil, ErrEmptyRoster
	}
	return &Balancer{load: load}, nil
}

// LeastLoaded returns the user with the smallest accumulated hours, ties
// broken by ascending identity.
func (b *Balancer) LeastLoaded() string {
	var winner string
	first := true
	for user, hours := range b.load {
		if first || hours < b.load[winner] || (hours == b.load[winner] && user < winner) {
			winner = user
			first = false
		}
	}
	return winner
}

// Add charges hours to user. Negative hours are ignored so totals never
// decrease.
func (b *Balancer) Add(user string, hours float64) {
	if hours < 0 {
		hours = 0
	}
	b.load[user] += hours
}

// Assign picks the least-loaded user for a record of the given planned
// hours and charges them.
func (b *Balancer) Assign(hours float64) string {
	user := b.LeastLoaded()
	b.Add(user, hours)
	return user
}

// Load returns a snapshot of the current totals.
func (b *Balancer) Load() domain.UserLoad {
	return b.load.Clone()
}

// ParseRoster splits a comma-delimited user list, trimming blanks and
// dropping empty entries and duplicates while keeping first-seen order.
func ParseRoster(s string) []string {
	seen := make(map[string]bool)
	var roster []string
	for _, part := range strings.Split(s, ",") {
		u := strings.TrimSpace(part)
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		roster = append(roster, u)
	}
	return roster
}
