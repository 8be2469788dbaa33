package jira

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/askjira/internal/config"
	"github.com/alexanderramin/askjira/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []CallEvent
}

func (o *recordingObserver) OnCallComplete(_ context.Context, e CallEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *recordingObserver) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	obs := &recordingObserver{}
	c, err := NewClient(config.Credentials{Server: srv.URL, User: "alice", Password: "pw"}, 1000, obs)
	require.NoError(t, err)
	return c, obs
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func TestClient_Search(t *testing.T) {
	c, obs := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/search", r.URL.Path)
		assert.Equal(t, "project = OPS", r.URL.Query().Get("jql"))
		assert.Equal(t, "1000", r.URL.Query().Get("maxResults"))
		assert.Equal(t, "assignee,aggregatetimeoriginalestimate", r.URL.Query().Get("fields"))
		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "alice", user)
		assert.Equal(t, "pw", pass)

		writeJSON(w, map[string]any{
			"startAt": 0, "maxResults": 1000, "total": 2,
			"issues": []any{
				map[string]any{"key": "OPS-1", "fields": map[string]any{
					"summary":                       "First",
					"issuetype":                     map[string]any{"name": "Story"},
					"assignee":                      map[string]any{"name": "bob", "displayName": "Bob"},
					"aggregatetimeoriginalestimate": 7200,
					"customfield_10002":             3.0,
					"customfield_10100":             map[string]any{"name": "carol"},
					"customfield_10200":             nil,
				}},
				map[string]any{"key": "OPS-2", "fields": map[string]any{
					"summary":  "Second",
					"assignee": nil,
					"subtasks": []any{map[string]any{"key": "OPS-3", "fields": map[string]any{"summary": "Sub"}}},
				}},
			},
		})
	})

	records, err := c.Search(context.Background(), "project = OPS",
		[]domain.FieldID{domain.FieldAssignee, domain.FieldAggregateTimeOriginalEstimate})
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "OPS-1", first.Key)
	assert.Equal(t, "First", first.Summary)
	assert.Equal(t, "Story", first.IssueType)
	user, ok := first.User(domain.FieldAssignee)
	require.True(t, ok)
	assert.Equal(t, "bob", user)
	assert.Equal(t, 2.0, first.PlannedHours())
	sp, ok := first.Number("customfield_10002")
	require.True(t, ok)
	assert.Equal(t, 3.0, sp)
	dev, ok := first.User("customfield_10100")
	require.True(t, ok)
	assert.Equal(t, "carol", dev)
	assert.False(t, first.Has("customfield_10200"))

	second := records[1]
	_, ok = second.User(domain.FieldAssignee)
	assert.False(t, ok)
	assert.Equal(t, 0.0, second.PlannedHours())
	require.Len(t, second.Subtasks, 1)
	assert.Equal(t, domain.RecordRef{Key: "OPS-3", Summary: "Sub"}, second.Subtasks[0])

	require.Len(t, obs.events, 1)
	assert.Equal(t, OpSearch, obs.events[0].Op)
	assert.True(t, obs.events[0].Success)
}

func TestClient_Fields(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/field", r.URL.Path)
		writeJSON(w, []any{
			map[string]any{"id": "assignee", "name": "Assignee", "custom": false},
			map[string]any{"id": "customfield_10002", "name": "Story Points", "custom": true},
		})
	})

	fields, err := c.Fields(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Field{
		{ID: "assignee", Name: "Assignee"},
		{ID: "customfield_10002", Name: "Story Points", Custom: true},
	}, fields)
}

func TestClient_UpdateFields_SendsUserAndNumberShapes(t *testing.T) {
	var body map[string]map[string]any
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/rest/api/2/issue/OPS-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.UpdateFields(context.Background(), "OPS-1", map[domain.FieldID]any{
		domain.FieldAssignee: domain.UserRef{Name: "bob"},
		"customfield_10002":  2.5,
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"name": "bob"}, body["fields"]["assignee"])
	assert.Equal(t, 2.5, body["fields"]["customfield_10002"])
}

func TestClient_UpdateFields_RejectedByServer(t *testing.T) {
	c, obs := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		writeJSON(w, map[string]any{"errorMessages": []string{}, "errors": map[string]string{"customfield_10002": "not on screen"}})
	})

	err := c.UpdateFields(context.Background(), "OPS-1", map[domain.FieldID]any{"customfield_10002": 1.0})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpdateRejected)
	assert.Contains(t, err.Error(), "OPS-1")
	require.Len(t, obs.events, 1)
	assert.Equal(t, "REJECTED", obs.events[0].ErrorCode)
	assert.Equal(t, http.StatusBadRequest, obs.events[0].StatusCode)
}

func TestClient_Unauthorized(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Fields(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = c.UpdateFields(context.Background(), "OPS-1", map[domain.FieldID]any{"x": 1.0})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.NotErrorIs(t, err, domain.ErrUpdateRejected, "auth failures are not per-record refusals")
}

func TestClient_Unavailable(t *testing.T) {
	c, err := NewClient(config.Credentials{Server: "http://127.0.0.1:1", User: "a", Password: "b"}, 0, nil)
	require.NoError(t, err)

	_, err = c.Search(context.Background(), "project = OPS", nil)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		writeJSON(w, []any{})
	}))
	defer srv.Close()

	c, err := NewClient(config.Credentials{Server: srv.URL, User: "a", Password: "b", Timeout: 50 * time.Millisecond}, 0, nil)
	require.NoError(t, err)

	_, err = c.Fields(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestClient_Worklogs(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/issue/OPS-1/worklog", r.URL.Path)
		writeJSON(w, map[string]any{
			"startAt": 0, "maxResults": 2, "total": 2,
			"worklogs": []any{
				map[string]any{"id": "10", "author": map[string]any{"name": "alice"},
					"started": "2024-03-01T09:00:00.000+0900", "timeSpentSeconds": 3600},
				map[string]any{"id": "11", "author": map[string]any{"accountId": "5b10ac"},
					"started": "2024-03-02T10:30:00.000+0000", "timeSpentSeconds": 1800},
			},
		})
	})

	logs, err := c.Worklogs(context.Background(), "OPS-1")
	require.NoError(t, err)
	require.Len(t, logs, 2)

	assert.Equal(t, "alice", logs[0].Author.Name)
	assert.Equal(t, "OPS-1", logs[0].IssueKey)
	assert.Equal(t, int64(3600), logs[0].TimeSpentSeconds)
	_, offset := logs[0].Started.Zone()
	assert.Equal(t, 9*3600, offset, "entry keeps its recorded offset")
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), logs[0].StartDate())

	assert.Equal(t, "5b10ac", logs[1].Author.Name, "cloud users fall back to account id")
}

func TestClient_Projects(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/2/project", r.URL.Path)
		writeJSON(w, []any{
			map[string]any{"id": "1", "key": "OPS", "name": "Operations"},
			map[string]any{"id": "2", "key": "DEV", "name": "Development"},
		})
	})

	projects, err := c.Projects(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.Project{
		{ID: "1", Key: "OPS", Name: "Operations"},
		{ID: "2", Key: "DEV", Name: "Development"},
	}, projects)
}

func TestNewClient_RejectsInvalidCredentials(t *testing.T) {
	_, err := NewClient(config.Credentials{Server: "https://jira.example.com"}, 0, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestLogObserver_WritesStructuredLine(t *testing.T) {
	var b strings.Builder
	obs := NewLogObserver(&b)

	obs.OnCallComplete(context.Background(), CallEvent{Op: OpUpdate, Target: "OPS-1", Latency: 12 * time.Millisecond, StatusCode: 400, ErrorCode: "REJECTED"})

	line := b.String()
	assert.Contains(t, line, "msg=jira_call")
	assert.Contains(t, line, "op=update")
	assert.Contains(t, line, "target=OPS-1")
	assert.Contains(t, line, "status=err:REJECTED")
}
