package timetracking

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alexanderramin/askjira/internal/domain"
)

var orderByRe = regexp.MustCompile(`(?i)\s*\border\s+by\b`)

// AndClause narrows jql with clause. The existing condition is
// parenthesised so OR terms keep their meaning, and a trailing ORDER BY is
// kept at the end.
func AndClause(jql, clause string) string {
	where, order := jql, ""
	if loc := orderByRe.FindStringIndex(jql); loc != nil {
		where, order = jql[:loc[0]], strings.TrimSpace(jql[loc[0]:])
	}
	where = strings.TrimSpace(where)

	out := clause
	if where != "" {
		out = fmt.Sprintf("(%s) AND %s", where, clause)
	}
	if order != "" {
		out += " " + order
	}
	return out
}

// IsEmptyClause renders `"<field name>" IS EMPTY`.
func IsEmptyClause(fieldName string) string {
	return fmt.Sprintf("%q IS EMPTY", fieldName)
}

// BackfillClause selects records with an original estimate and no story
// points.
func BackfillClause() string {
	return fmt.Sprintf("originalEstimate IS NOT EMPTY AND %s", IsEmptyClause(domain.FieldNameStoryPoints))
}

// EpicChildrenClause selects the records linked to epicKey.
func EpicChildrenClause(epicKey string) string {
	return fmt.Sprintf("%q = %s", domain.FieldNameEpicLink, epicKey)
}
