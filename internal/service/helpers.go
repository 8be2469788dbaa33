package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/alexanderramin/askjira/internal/timetracking"
)

// ErrNoAssignableUsers indicates auto-assign was run without a roster.
var ErrNoAssignableUsers = errors.New("no users specified to assign to")

func fieldMap(ctx context.Context, catalog FieldCatalog) (domain.FieldMap, error) {
	fields, err := catalog.Fields(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading field catalog: %w", err)
	}
	return timetracking.ResolveFields(fields), nil
}

// resolveFieldIDs looks up every name in one pass over m.
func resolveFieldIDs(m domain.FieldMap, names ...string) ([]domain.FieldID, error) {
	ids := make([]domain.FieldID, 0, len(names))
	for _, name := range names {
		id, err := m.ID(name)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func loggerOrDiscard(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.DiscardHandler)
}

func reportProgress(fn func(done, total int, key string), done, total int, key string) {
	if fn != nil {
		fn(done, total, key)
	}
}

func sortedUnique(keys []string) []string {
	if len(keys) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
