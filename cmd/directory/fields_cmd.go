package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
)

func newFieldsCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "fields",
		Short: "Print the sheet header to field key table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := profile.Fields()
			if asJSON {
				return writeJSONIndent(cmd.OutOrStdout(), fields)
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "HEADER\tKEY")
			for _, f := range fields {
				fmt.Fprintf(tw, "%s\t%s\n", f.Header, f.Key)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}
