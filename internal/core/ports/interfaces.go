// Package ports defines interfaces for core application services.
// The registrar talks to the job scheduler only through these, so tests can
// swap the OS crontab for an in-memory or file-backed fake.
package ports

import "context"

// Crontab is the per-user list of scheduled jobs owned by the OS scheduler.
type Crontab interface {
	// List returns the current lines in order. An empty schedule is an empty
	// slice and a nil error.
	List(ctx context.Context) ([]string, error)
	// Replace atomically overwrites the whole list.
	Replace(ctx context.Context, lines []string) error
}
