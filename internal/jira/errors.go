package jira

import "errors"

var (
	// ErrUnavailable indicates the JIRA server could not be reached.
	ErrUnavailable = errors.New("jira server unavailable")

	// ErrUnauthorized indicates the server refused the configured credentials.
	ErrUnauthorized = errors.New("jira credentials rejected")

	// ErrTimeout indicates a request exceeded its deadline.
	ErrTimeout = errors.New("jira request timed out")
)
