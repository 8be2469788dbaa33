package cli

import (
	"strings"

	"github.com/alexanderramin/askjira/internal/timetracking"
	"github.com/spf13/pflag"
)

var _ pflag.Value = (*rosterValue)(nil)

// rosterValue is a pflag.Value collecting comma-separated user names.
// Repeating the flag appends; blanks and duplicates are dropped.
type rosterValue struct {
	users []string
}

func (r *rosterValue) String() string {
	return strings.Join(r.users, ",")
}

func (r *rosterValue) Set(s string) error {
	r.users = timetracking.ParseRoster(strings.Join(append(r.users, s), ","))
	return nil
}

func (r *rosterValue) Type() string {
	return "users"
}
