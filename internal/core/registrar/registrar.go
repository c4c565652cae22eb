// Package registrar appends recurring jobs to a user's schedule.
package registrar

import (
	"context"
	"fmt"
	"slices"

	"github.com/xzzpig/schedreg/internal/core/errs"
	"github.com/xzzpig/schedreg/internal/core/logger"
	"github.com/xzzpig/schedreg/internal/core/ports"
	"github.com/xzzpig/schedreg/internal/i18n"
	"go.uber.org/zap"
)

// Registrar performs a read-modify-write of the whole schedule list.
// It never inspects existing lines, so registering the same entry twice
// leaves two copies. The list is not locked between the read and the write.
type Registrar struct {
	crontab  ports.Crontab
	logger   *zap.Logger
	validate bool
}

// Option configures a Registrar.
type Option func(*Registrar)

// WithValidation makes Install and Preview reject a cadence the cron parser
// does not accept, before the schedule is read.
func WithValidation(enabled bool) Option {
	return func(r *Registrar) { r.validate = enabled }
}

// New creates a Registrar writing to crontab.
func New(crontab ports.Crontab, opts ...Option) *Registrar {
	r := &Registrar{
		crontab: crontab,
		logger:  logger.Named("core.registrar"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Install appends entry to the end of the schedule. A failed read returns
// before anything is written.
func (r *Registrar) Install(ctx context.Context, entry Entry) error {
	lines, err := r.Preview(ctx, entry)
	if err != nil {
		return err
	}

	if err := r.crontab.Replace(ctx, lines); err != nil {
		r.logger.Error("Failed to write schedule", zap.Error(err))
		return fmt.Errorf("write schedule: %w", err)
	}

	r.logger.Info("Entry installed",
		zap.String("entry", entry.String()),
		zap.Int("entries", len(lines)))
	return nil
}

// Preview returns the list Install would write, without writing it.
func (r *Registrar) Preview(ctx context.Context, entry Entry) ([]string, error) {
	if r.validate {
		if err := ValidateCadence(entry.Cadence); err != nil {
			return nil, i18n.NewError(i18n.ErrInvalidSchedule, fmt.Errorf("%w: %w", errs.ErrInvalidInput, err)).
				WithData(map[string]interface{}{"Cadence": entry.Cadence, "Reason": err.Error()})
		}
	}

	current, err := r.crontab.List(ctx)
	if err != nil {
		r.logger.Error("Failed to read schedule", zap.Error(err))
		return nil, fmt.Errorf("read schedule: %w", err)
	}
	r.logger.Debug("Read schedule", zap.Int("entries", len(current)))

	return append(slices.Clone(current), entry.String()), nil
}
