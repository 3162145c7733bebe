package main

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
	"github.com/jacksonlee411/hcdash/modules/directory/infrastructure/sheet"
	"github.com/jacksonlee411/hcdash/modules/directory/services"
)

type statsOptions struct {
	source sourceOptions
	asOf   string
	by     []string
}

type statsReport struct {
	Parse      sheet.Stats                  `json:"parse"`
	Total      int                          `json:"total"`
	AsOf       string                       `json:"asOf"`
	Generation profile.Breakdown            `json:"generation"`
	Tenure     profile.Breakdown            `json:"tenure"`
	By         map[string]profile.Breakdown `json:"by"`
}

func newStatsCmd() *cobra.Command {
	var opts statsOptions

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print generation, tenure and per-field breakdowns as JSON",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range opts.by {
				if !profile.IsCanonicalKey(key) {
					return withCode(exitUsage, errors.Errorf("--by: unknown field %q", key))
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			asOf := time.Now()
			if v := strings.TrimSpace(opts.asOf); v != "" {
				parsed, err := time.Parse(time.DateOnly, v)
				if err != nil {
					return withCode(exitValidation, errors.Wrap(err, "--as-of"))
				}
				asOf = parsed
			}

			records, stats, err := opts.source.load(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			a := services.BuildAnalytics(records, asOf)
			report := statsReport{
				Parse:      stats,
				Total:      a.Total,
				AsOf:       asOf.Format(time.DateOnly),
				Generation: a.Generation,
				Tenure:     a.Tenure,
				By:         map[string]profile.Breakdown{},
			}
			for _, key := range opts.by {
				report.By[key] = profile.CountBy(records, key)
			}
			return writeJSONIndent(cmd.OutOrStdout(), report)
		},
	}
	opts.source.bind(cmd)
	cmd.Flags().StringVar(&opts.asOf, "as-of", "", "Reference date (YYYY-MM-DD) for generation bounds (default: today)")
	cmd.Flags().StringSliceVar(&opts.by, "by", []string{profile.KeyUnitKerja}, "Extra fields to count by")
	return cmd
}
