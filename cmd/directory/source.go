package main

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
	"github.com/jacksonlee411/hcdash/modules/directory/infrastructure/sheet"
	"github.com/jacksonlee411/hcdash/pkg/configuration"
	"github.com/jacksonlee411/hcdash/pkg/logging"
)

type sourceOptions struct {
	file      string
	url       string
	xlsx      string
	sheetName string
	timeout   time.Duration
	verbose   bool
}

func (o *sourceOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.file, "file", "", "CSV file to read")
	cmd.Flags().StringVar(&o.url, "url", "", "Published sheet CSV URL to fetch")
	cmd.Flags().StringVar(&o.xlsx, "xlsx", "", "XLSX workbook to read")
	cmd.Flags().StringVar(&o.sheetName, "sheet", "", "Worksheet name for --xlsx (default: first sheet)")
	cmd.Flags().DurationVar(&o.timeout, "timeout", 15*time.Second, "Fetch timeout for --url")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Log parse statistics to stderr")
	cmd.MarkFlagsMutuallyExclusive("file", "url", "xlsx")
	cmd.MarkFlagsOneRequired("file", "url", "xlsx")
}

func (o *sourceOptions) sheetOptions() configuration.SheetOptions {
	opts := configuration.SheetOptions{FetchTimeout: o.timeout, SheetName: strings.TrimSpace(o.sheetName)}
	switch {
	case strings.TrimSpace(o.url) != "":
		opts.Source = configuration.SheetSourceHTTP
		opts.URL = strings.TrimSpace(o.url)
	case strings.TrimSpace(o.xlsx) != "":
		opts.Source = configuration.SheetSourceXLSX
		opts.Path = strings.TrimSpace(o.xlsx)
	default:
		opts.Source = configuration.SheetSourceFile
		opts.Path = strings.TrimSpace(o.file)
	}
	return opts
}

// logger writes to w so stdout stays machine-readable.
func (o *sourceOptions) logger(w io.Writer) *logrus.Logger {
	level := logrus.WarnLevel
	if o.verbose {
		level = logrus.InfoLevel
	}
	log := logging.ConsoleLogger(level)
	log.SetOutput(w)
	return log
}

// load fetches and parses the selected source once.
func (o *sourceOptions) load(ctx context.Context, logOut io.Writer) ([]profile.Profile, sheet.Stats, error) {
	src, err := sheet.NewSource(o.sheetOptions())
	if err != nil {
		return nil, sheet.Stats{}, withCode(exitUsage, err)
	}
	text, err := src.Fetch(ctx)
	if err != nil {
		return nil, sheet.Stats{}, withCode(exitSource, errors.Wrap(err, "load directory"))
	}
	records, stats := sheet.ParseWithStats(text)
	o.logger(logOut).WithFields(logrus.Fields{
		"source":   src.Name(),
		"lines":    stats.Lines,
		"records":  stats.Records,
		"blank":    stats.Blank,
		"mapped":   stats.MappedColumns,
		"unmapped": stats.UnmappedColumns,
	}).Info("directory parsed")
	return records, stats, nil
}
