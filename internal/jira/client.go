package jira

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	gojira "github.com/andygrunwald/go-jira"

	"github.com/alexanderramin/askjira/internal/config"
	"github.com/alexanderramin/askjira/internal/domain"
)

// Client talks to a JIRA server through go-jira and converts its payloads
// into domain records.
type Client struct {
	api        *gojira.Client
	maxResults int
	observer   Observer
}

// NewClient creates a Client authenticated with basic auth.
func NewClient(creds config.Credentials, maxResults int, observer Observer) (*Client, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	if observer == nil {
		observer = NoopObserver{}
	}
	if maxResults <= 0 || maxResults > config.MaxResultsCap {
		maxResults = config.MaxResultsCap
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if creds.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed servers
	}
	tp := gojira.BasicAuthTransport{
		Username:  creds.User,
		Password:  creds.Password,
		Transport: transport,
	}
	httpClient := tp.Client()
	httpClient.Timeout = creds.Timeout

	api, err := gojira.NewClient(httpClient, creds.Server)
	if err != nil {
		return nil, fmt.Errorf("cannot create Jira client: %w", err)
	}
	return &Client{api: api, maxResults: maxResults, observer: observer}, nil
}

// Search runs jql and returns at most one page of records. A nil fields
// slice asks the server for its default field set.
func (c *Client) Search(ctx context.Context, jql string, fields []domain.FieldID) ([]domain.Record, error) {
	opts := &gojira.SearchOptions{MaxResults: c.maxResults}
	for _, f := range fields {
		opts.Fields = append(opts.Fields, string(f))
	}

	var issues []gojira.Issue
	err := c.call(ctx, OpSearch, "", func() (*gojira.Response, error) {
		var resp *gojira.Response
		var err error
		issues, resp, err = c.api.Issue.SearchWithContext(ctx, jql, opts)
		return resp, err
	})
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", jql, err)
	}

	records := make([]domain.Record, 0, len(issues))
	for i := range issues {
		records = append(records, recordFromIssue(&issues[i]))
	}
	return records, nil
}

// Fields lists the server's field catalog.
func (c *Client) Fields(ctx context.Context) ([]domain.Field, error) {
	var list []gojira.Field
	err := c.call(ctx, OpFields, "", func() (*gojira.Response, error) {
		var resp *gojira.Response
		var err error
		list, resp, err = c.api.Field.GetListWithContext(ctx)
		return resp, err
	})
	if err != nil {
		return nil, fmt.Errorf("listing fields: %w", err)
	}

	out := make([]domain.Field, 0, len(list))
	for _, f := range list {
		out = append(out, domain.Field{ID: domain.FieldID(f.ID), Name: f.Name, Custom: f.Custom})
	}
	return out, nil
}

// UpdateFields sets the given fields on the record identified by key.
// Refusals by the server wrap domain.ErrUpdateRejected.
func (c *Client) UpdateFields(ctx context.Context, key string, values map[domain.FieldID]any) error {
	fields := make(map[string]interface{}, len(values))
	for id, v := range values {
		fields[string(id)] = updateValue(v)
	}
	data := map[string]interface{}{"fields": fields}

	err := c.call(ctx, OpUpdate, key, func() (*gojira.Response, error) {
		return c.api.Issue.UpdateIssueWithContext(ctx, key, data)
	})
	if err != nil {
		return fmt.Errorf("updating %s: %w", key, err)
	}
	return nil
}

// Worklogs lists the worklog entries of the record identified by key.
func (c *Client) Worklogs(ctx context.Context, key string) ([]domain.WorkLog, error) {
	var wl *gojira.Worklog
	err := c.call(ctx, OpWorklogs, key, func() (*gojira.Response, error) {
		var resp *gojira.Response
		var err error
		wl, resp, err = c.api.Issue.GetWorklogsWithContext(ctx, key)
		return resp, err
	})
	if err != nil {
		return nil, fmt.Errorf("listing worklogs of %s: %w", key, err)
	}
	if wl == nil {
		return nil, nil
	}

	out := make([]domain.WorkLog, 0, len(wl.Worklogs))
	for _, rec := range wl.Worklogs {
		out = append(out, worklogFromRecord(key, rec))
	}
	return out, nil
}

// Projects lists the projects visible to the configured user.
func (c *Client) Projects(ctx context.Context) ([]domain.Project, error) {
	var list *gojira.ProjectList
	err := c.call(ctx, OpProjects, "", func() (*gojira.Response, error) {
		var resp *gojira.Response
		var err error
		list, resp, err = c.api.Project.GetListWithContext(ctx)
		return resp, err
	})
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	if list == nil {
		return nil, nil
	}

	out := make([]domain.Project, 0, len(*list))
	for _, p := range *list {
		out = append(out, domain.Project{ID: p.ID, Key: p.Key, Name: p.Name})
	}
	return out, nil
}

// call runs fn, classifies its error and reports the call to the observer.
func (c *Client) call(ctx context.Context, op Op, target string, fn func() (*gojira.Response, error)) error {
	start := time.Now()
	resp, err := fn()

	event := CallEvent{Op: op, Target: target, Latency: time.Since(start), Success: err == nil}
	if resp != nil && resp.Response != nil {
		event.StatusCode = resp.StatusCode
	}
	if err != nil {
		err = classify(ctx, op, event.StatusCode, err)
		event.ErrorCode = errorCode(err)
	}
	c.observer.OnCallComplete(ctx, event)
	return err
}

func classify(ctx context.Context, op Op, status int, err error) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	case status >= 400 && op == OpUpdate:
		return fmt.Errorf("%w: %v", domain.ErrUpdateRejected, err)
	case status != 0:
		return err
	case ctx.Err() != nil || isTimeout(err):
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	case isConnectionError(err):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	default:
		return err
	}
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, domain.ErrUpdateRejected):
		return "REJECTED"
	default:
		return "UNKNOWN"
	}
}
