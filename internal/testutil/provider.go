package testutil

import (
	"context"
	"sync"

	"github.com/alexanderramin/askjira/internal/domain"
)

// SearchCall records one Search invocation.
type SearchCall struct {
	JQL    string
	Fields []domain.FieldID
}

// UpdateCall records one UpdateFields invocation.
type UpdateCall struct {
	Key    string
	Values map[domain.FieldID]any
}

// FakeProvider is an in-memory provider. Search returns Results[jql] when
// present and Default otherwise.
type FakeProvider struct {
	mu sync.Mutex

	Catalog     []domain.Field
	Results     map[string][]domain.Record
	Default     []domain.Record
	WorklogsFor map[string][]domain.WorkLog
	ProjectList []domain.Project

	FieldsErr  error
	SearchErr  error
	UpdateErrs map[string]error

	Searches []SearchCall
	Updates  []UpdateCall
	calls    int
}

// NewFakeProvider creates a FakeProvider with the default field catalog.
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		Catalog:     DefaultCatalog(),
		Results:     make(map[string][]domain.Record),
		WorklogsFor: make(map[string][]domain.WorkLog),
		UpdateErrs:  make(map[string]error),
	}
}

// Calls reports how many provider calls were made.
func (p *FakeProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func (p *FakeProvider) Search(_ context.Context, jql string, fields []domain.FieldID) ([]domain.Record, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	p.Searches = append(p.Searches, SearchCall{JQL: jql, Fields: fields})
	if p.SearchErr != nil {
		return nil, p.SearchErr
	}
	if recs, ok := p.Results[jql]; ok {
		return recs, nil
	}
	return p.Default, nil
}

func (p *FakeProvider) Fields(context.Context) ([]domain.Field, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if p.FieldsErr != nil {
		return nil, p.FieldsErr
	}
	return p.Catalog, nil
}

func (p *FakeProvider) UpdateFields(_ context.Context, key string, values map[domain.FieldID]any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	if err := p.UpdateErrs[key]; err != nil {
		return err
	}
	p.Updates = append(p.Updates, UpdateCall{Key: key, Values: values})
	return nil
}

func (p *FakeProvider) Worklogs(_ context.Context, key string) ([]domain.WorkLog, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.WorklogsFor[key], nil
}

func (p *FakeProvider) Projects(context.Context) ([]domain.Project, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.ProjectList, nil
}

// UpdatedKeys lists the keys of successful updates in call order.
func (p *FakeProvider) UpdatedKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.Updates))
	for _, u := range p.Updates {
		keys = append(keys, u.Key)
	}
	return keys
}
