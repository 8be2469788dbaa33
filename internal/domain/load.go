package domain

import "sort"

// Unassigned is the UserLoad key for records without an assignee.
const Unassigned = ""

// UserLoad maps a user identity to accumulated hours.
type UserLoad map[string]float64

// Clone returns a copy of l.
func (l UserLoad) Clone() UserLoad {
	out := make(UserLoad, len(l))
	for k, v := range l {
		out[k] = v
	}
	return out
}

// Users returns the identities in l sorted ascending. The unassigned bucket
// sorts first when present.
func (l UserLoad) Users() []string {
	users := make([]string, 0, len(l))
	for u := range l {
		users = append(users, u)
	}
	sort.Strings(users)
	return users
}

// Total sums all buckets.
func (l UserLoad) Total() float64 {
	var total float64
	for _, v := range l {
		total += v
	}
	return total
}
