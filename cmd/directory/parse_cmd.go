package main

import (
	"github.com/spf13/cobra"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
)

type parseOptions struct {
	source sourceOptions
	nip    string
}

func newParseCmd() *cobra.Command {
	var opts parseOptions

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Print every directory record as one JSON object per line",
		RunE: func(cmd *cobra.Command, args []string) error {
			records, _, err := opts.source.load(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if opts.nip != "" {
				records = profile.FilterByNIP(records, opts.nip)
			}
			for _, r := range records {
				if err := writeJSONLine(cmd.OutOrStdout(), r); err != nil {
					return err
				}
			}
			return nil
		},
	}
	opts.source.bind(cmd)
	cmd.Flags().StringVar(&opts.nip, "nip", "", "Only print records with this NIP")
	return cmd
}
