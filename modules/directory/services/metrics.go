package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jacksonlee411/hcdash/modules/directory/infrastructure/sheet"
)

var (
	directoryLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "directory",
		Subsystem: "sheet",
		Name:      "loads_total",
		Help:      "Total number of directory sheet loads broken down by result.",
	}, []string{"result"})

	directoryRecordsParsed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "directory",
		Subsystem: "sheet",
		Name:      "records_parsed_total",
		Help:      "Total number of profile records parsed from the directory sheet.",
	})

	directoryBlankRows = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "directory",
		Subsystem: "sheet",
		Name:      "blank_rows_total",
		Help:      "Total number of blank sheet rows skipped while parsing.",
	})

	directoryLastRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "directory",
		Subsystem: "sheet",
		Name:      "last_records",
		Help:      "Number of records produced by the most recent successful load.",
	})

	directoryLoadLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "directory",
		Subsystem: "sheet",
		Name:      "load_duration_seconds",
		Help:      "Latency of fetching and parsing the directory sheet.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})
)

func recordLoad(stats sheet.Stats, took time.Duration, err error) {
	directoryLoadLatency.Observe(took.Seconds())
	if err != nil {
		directoryLoads.WithLabelValues("error").Inc()
		return
	}
	directoryLoads.WithLabelValues("ok").Inc()
	directoryRecordsParsed.Add(float64(stats.Records))
	directoryBlankRows.Add(float64(stats.Blank))
	directoryLastRecords.Set(float64(stats.Records))
}
