package content

import (
	"errors"
	"time"
)

// Issue records why a content file was left out of a collection.
type Issue struct {
	File       string
	Slug       string
	Err        error
	Violations Violations
}

// Message returns a one-line description of the issue.
func (i Issue) Message() string {
	if len(i.Violations) > 0 {
		return i.Violations.Error()
	}
	if i.Err != nil {
		return i.Err.Error()
	}
	return "rejected"
}

func newIssue(f File, err error) Issue {
	is := Issue{File: f.Name, Slug: f.Slug, Err: err}
	var vs Violations
	if errors.As(err, &vs) {
		is.Violations = vs
	}
	return is
}

// Report summarizes one full collection scan.
type Report struct {
	Kind      Kind
	Dir       string
	ScannedAt time.Time
	Files     int
	Items     int
	Issues    []Issue
}

// OK reports whether every file produced an item.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}
