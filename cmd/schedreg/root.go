/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/xzzpig/schedreg/internal/core/config"
	"github.com/xzzpig/schedreg/internal/core/registrar"
	"github.com/xzzpig/schedreg/internal/i18n"
	"go.uber.org/zap"
)

// newRootCmd builds the command tree. Running the root with no arguments
// installs the configured entry.
func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		dryRun  bool
	)

	rootCmd := &cobra.Command{
		Use:   "schedreg",
		Short: "Register a recurring job in the user's crontab",
		Long: `Appends one entry "<cadence> <interpreter> <script>" to the current user's crontab.
Running it again appends a duplicate entry.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, cfgFile)
			if err != nil {
				return err
			}
			defer a.close()

			entry := registrar.Entry{
				Cadence:     a.cfg.Schedule.Cadence,
				Interpreter: a.cfg.Schedule.Interpreter,
				Script:      a.cfg.Schedule.Script,
			}
			reg := registrar.New(a.crontab, registrar.WithValidation(a.cfg.Schedule.Validate))
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, i18n.CtxWithData(a.ctx, i18n.StatusInstalling, map[string]interface{}{"Entry": entry.String()}))

			if dryRun {
				lines, err := reg.Preview(a.ctx, entry)
				if err != nil {
					return a.fail(cmd, err)
				}
				fmt.Fprintln(out, i18n.Ctx(a.ctx, i18n.StatusDryRun))
				printLines(out, lines)
				return nil
			}

			if err := reg.Install(a.ctx, entry); err != nil {
				return a.fail(cmd, err)
			}
			a.log.Info("Schedule updated", zap.String("entry", entry.String()))
			fmt.Fprintln(out, i18n.Ctx(a.ctx, i18n.StatusInstalled))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./schedreg.toml)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print the resulting schedule without writing it")
	config.BindFlags(rootCmd)

	rootCmd.AddCommand(newListCmd(&cfgFile))
	return rootCmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
