// Package crontabtest provides an in-memory schedule list for tests.
package crontabtest

import (
	"context"
	"slices"
	"sync"

	"github.com/xzzpig/schedreg/internal/core/ports"
)

// Fake is an in-memory ports.Crontab. ListErr and ReplaceErr, when set, are
// returned instead of touching the stored lines.
type Fake struct {
	mu         sync.Mutex
	lines      []string
	ListErr    error
	ReplaceErr error
	Lists      int
	Replaces   int
}

var _ ports.Crontab = (*Fake)(nil)

// New returns a Fake holding a copy of lines.
func New(lines ...string) *Fake {
	return &Fake{lines: slices.Clone(lines)}
}

func (f *Fake) List(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Lists++
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return slices.Clone(f.lines), nil
}

func (f *Fake) Replace(_ context.Context, lines []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Replaces++
	if f.ReplaceErr != nil {
		return f.ReplaceErr
	}
	f.lines = slices.Clone(lines)
	return nil
}

// Lines returns a copy of the stored list.
func (f *Fake) Lines() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.lines)
}
