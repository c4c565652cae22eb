/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/xzzpig/schedreg/internal/core/config"
	"github.com/xzzpig/schedreg/internal/core/errs"
	"github.com/xzzpig/schedreg/internal/core/logger"
	"github.com/xzzpig/schedreg/internal/core/ports"
	"github.com/xzzpig/schedreg/internal/crontab"
	"github.com/xzzpig/schedreg/internal/i18n"
	"go.uber.org/zap"
)

// app holds what every command needs after startup.
type app struct {
	cfg     *config.Config
	ctx     context.Context
	crontab ports.Crontab
	log     *zap.Logger
}

// newApp loads configuration, then initializes logging, i18n and the
// configured crontab backend, in that order.
func newApp(cmd *cobra.Command, cfgFile string) (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return nil, err
	}

	logger.InitLogger(logger.Environment(cfg.App.Environment), logger.LogLevel(cfg.Log.Level), cfg.Log.Levels)
	log := logger.Named("cli")

	if err := i18n.Init(); err != nil {
		log.Error("Failed to initialize i18n", zap.Error(err))
		return nil, err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = i18n.WithLocalizer(ctx, i18n.NewLocalizer(cfg.App.Language))

	a := &app{cfg: cfg, ctx: ctx, log: log}
	a.crontab, err = openCrontab(cfg)
	if err != nil {
		return nil, a.fail(cmd, err)
	}
	log.Debug("Crontab backend ready", zap.String("backend", cfg.Crontab.Backend))
	return a, nil
}

func openCrontab(cfg *config.Config) (ports.Crontab, error) {
	switch cfg.Crontab.Backend {
	case config.BackendExec:
		return crontab.NewExecCrontab(cfg.Crontab.Binary), nil
	case config.BackendFile:
		if cfg.Crontab.File == "" {
			return nil, i18n.NewError(i18n.ErrMissingScheduleFile, fmt.Errorf("%w: crontab.file is empty", errs.ErrInvalidInput))
		}
		return crontab.NewFileCrontab(afero.NewOsFs(), cfg.Crontab.File), nil
	default:
		return nil, i18n.NewError(i18n.ErrUnknownBackend, errs.ErrInvalidInput).
			WithData(map[string]interface{}{"Backend": cfg.Crontab.Backend})
	}
}

// fail logs err, prints its translated message and returns it unchanged.
func (a *app) fail(cmd *cobra.Command, err error) error {
	a.log.Error("Command failed", zap.Error(err))

	var msg string
	if i18nErr, ok := i18n.AsError(err); ok {
		msg = i18nErr.TranslateCtx(a.ctx)
	} else if errors.Is(err, errs.ErrSchedulerUnavailable) {
		msg = i18n.Ctx(a.ctx, i18n.ErrSchedulerUnavailable)
	} else {
		msg = i18n.Ctx(a.ctx, i18n.ErrGeneric)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), msg)
	return err
}

func (a *app) close() {
	logger.Sync()
}
