package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "directory",
		Short:         "Parse and summarize the employee directory sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newParseCmd())
	cmd.AddCommand(newStatsCmd())
	cmd.AddCommand(newFieldsCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
