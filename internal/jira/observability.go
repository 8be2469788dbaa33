package jira

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Op names a provider call.
type Op string

const (
	OpSearch   Op = "search"
	OpFields   Op = "fields"
	OpUpdate   Op = "update"
	OpWorklogs Op = "worklogs"
	OpProjects Op = "projects"
)

// CallEvent records metadata about a single provider call.
type CallEvent struct {
	Op         Op
	Target     string
	Latency    time.Duration
	StatusCode int
	Success    bool
	ErrorCode  string
}

// Observer receives events about provider calls for logging.
type Observer interface {
	OnCallComplete(ctx context.Context, event CallEvent)
}

// LogObserver writes call events as structured log lines.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to w.
func NewLogObserver(w io.Writer) *LogObserver {
	return &LogObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *LogObserver) OnCallComplete(ctx context.Context, event CallEvent) {
	attrs := []any{
		"op", string(event.Op),
		"latency_ms", event.Latency.Milliseconds(),
	}
	if event.Target != "" {
		attrs = append(attrs, "target", event.Target)
	}
	if event.StatusCode != 0 {
		attrs = append(attrs, "http_status", event.StatusCode)
	}
	if !event.Success {
		attrs = append(attrs, "status", "err:"+event.ErrorCode)
		o.logger.WarnContext(ctx, "jira_call", attrs...)
		return
	}
	attrs = append(attrs, "status", "ok")
	o.logger.InfoContext(ctx, "jira_call", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(context.Context, CallEvent) {}
