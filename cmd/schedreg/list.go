/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/xzzpig/schedreg/internal/i18n"
)

// newListCmd prints the current schedule list.
func newListCmd(cfgFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the current schedule",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd, *cfgFile)
			if err != nil {
				return err
			}
			defer a.close()

			lines, err := a.crontab.List(a.ctx)
			if err != nil {
				return a.fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			if len(lines) == 0 {
				fmt.Fprintln(out, i18n.Ctx(a.ctx, i18n.StatusListEmpty))
				return nil
			}
			fmt.Fprintln(out, i18n.CtxPlural(a.ctx, i18n.StatusListHeader, len(lines), nil))
			printLines(out, lines)
			return nil
		},
	}
}

func printLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
