package crontab

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/xzzpig/schedreg/internal/core/errs"
	"github.com/xzzpig/schedreg/internal/core/logger"
	"github.com/xzzpig/schedreg/internal/core/ports"
	"go.uber.org/zap"
)

// DefaultBinary is looked up on PATH.
const DefaultBinary = "crontab"

// ExecCrontab drives the OS crontab(1) binary for the invoking user.
// `crontab -` installs the new table in one step, so a failed Replace leaves
// the previous table in place.
type ExecCrontab struct {
	binary string
	logger *zap.Logger
}

var _ ports.Crontab = (*ExecCrontab)(nil)

// NewExecCrontab returns a backend calling binary, or DefaultBinary if empty.
func NewExecCrontab(binary string) *ExecCrontab {
	if binary == "" {
		binary = DefaultBinary
	}
	return &ExecCrontab{
		binary: binary,
		logger: logger.Named("crontab.exec"),
	}
}

// List runs `crontab -l`. A user without a crontab gets an empty list.
func (c *ExecCrontab) List(ctx context.Context) ([]string, error) {
	stdout, stderr, err := c.run(ctx, nil, "-l")
	if err != nil {
		if strings.Contains(strings.ToLower(stderr), "no crontab for") {
			c.logger.Debug("No crontab installed yet")
			return []string{}, nil
		}
		return nil, c.fail("-l", err, stderr)
	}
	return splitLines(stdout), nil
}

// Replace pipes the whole list into `crontab -`.
func (c *ExecCrontab) Replace(ctx context.Context, lines []string) error {
	_, stderr, err := c.run(ctx, strings.NewReader(joinLines(lines)), "-")
	if err != nil {
		return c.fail("-", err, stderr)
	}
	return nil
}

func (c *ExecCrontab) run(ctx context.Context, stdin *strings.Reader, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, c.binary, args...)
	if stdin != nil {
		cmd.Stdin = stdin
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	c.logger.Debug("Running crontab", zap.String("binary", c.binary), zap.Strings("args", args))
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func (c *ExecCrontab) fail(arg string, err error, stderr string) error {
	stderr = strings.TrimSpace(stderr)
	c.logger.Warn("crontab call failed",
		zap.String("binary", c.binary),
		zap.String("arg", arg),
		zap.String("stderr", stderr),
		zap.Error(err))
	if stderr != "" {
		return fmt.Errorf("%w: %s %s: %w: %s", errs.ErrSchedulerUnavailable, c.binary, arg, err, stderr)
	}
	return fmt.Errorf("%w: %s %s: %w", errs.ErrSchedulerUnavailable, c.binary, arg, err)
}
