package crontab

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/xzzpig/schedreg/internal/core/errs"
	"github.com/xzzpig/schedreg/internal/core/logger"
	"github.com/xzzpig/schedreg/internal/core/ports"
	"go.uber.org/zap"
)

// FileCrontab keeps the schedule list in a single file, such as a spool
// file or an /etc/cron.d fragment. Replace writes a temp file next to the
// target and renames it over, so readers see the old or the new list.
type FileCrontab struct {
	fs     afero.Fs
	path   string
	mode   fs.FileMode
	logger *zap.Logger
}

var _ ports.Crontab = (*FileCrontab)(nil)

// NewFileCrontab returns a backend for path on fsys.
func NewFileCrontab(fsys afero.Fs, path string) *FileCrontab {
	return &FileCrontab{
		fs:     fsys,
		path:   path,
		mode:   0o644,
		logger: logger.Named("crontab.file"),
	}
}

// List reads the file. A missing file is an empty list.
func (c *FileCrontab) List(_ context.Context) ([]string, error) {
	data, err := afero.ReadFile(c.fs, c.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %w", errs.ErrSchedulerUnavailable, c.path, err)
	}
	return splitLines(string(data)), nil
}

// Replace atomically swaps the file contents for lines.
func (c *FileCrontab) Replace(ctx context.Context, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := c.replace(lines); err != nil {
		c.logger.Warn("Failed to replace schedule file", zap.String("path", c.path), zap.Error(err))
		return fmt.Errorf("%w: replace %s: %w", errs.ErrSchedulerUnavailable, c.path, err)
	}
	return nil
}

func (c *FileCrontab) replace(lines []string) (err error) {
	tmp, err := afero.TempFile(c.fs, filepath.Dir(c.path), "."+filepath.Base(c.path)+"-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = c.fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.WriteString(joinLines(lines)); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = c.fs.Chmod(tmpName, c.mode); err != nil {
		return err
	}
	return c.fs.Rename(tmpName, c.path)
}
