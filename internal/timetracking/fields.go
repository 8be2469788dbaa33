package timetracking

import "github.com/alexanderramin/askjira/internal/domain"

// ResolveFields builds a display name to id lookup from the provider's field
// catalog. When two fields share a name the later one wins.
func ResolveFields(catalog []domain.Field) domain.FieldMap {
	m := make(domain.FieldMap, len(catalog))
	for _, f := range catalog {
		m[f.Name] = f.ID
	}
	return m
}
