// Package sheet turns a published directory spreadsheet into profile records.
package sheet

import (
	"strings"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
)

// Stats describes one parse for logging and metrics.
type Stats struct {
	// Lines is the number of lines after the header.
	Lines           int `json:"lines"`
	Blank           int `json:"blank"`
	Records         int `json:"records"`
	MappedColumns   int `json:"mappedColumns"`
	UnmappedColumns int `json:"unmappedColumns"`
}

// Parse converts CSV text into profile records in row order. Text with
// fewer than two lines yields an empty slice. Each call allocates fresh
// records.
func Parse(text string) []profile.Profile {
	records, _ := ParseWithStats(text)
	return records
}

func ParseWithStats(text string) ([]profile.Profile, Stats) {
	var stats Stats
	text = strings.TrimPrefix(text, "\uFEFF")
	lines := strings.Split(text, "\n")
	if len(lines) < 2 {
		return []profile.Profile{}, stats
	}

	headers := NormalizeHeaders(strings.TrimSuffix(lines[0], "\r"))
	for _, h := range headers {
		if h == "" {
			stats.UnmappedColumns++
		} else {
			stats.MappedColumns++
		}
	}

	records := make([]profile.Profile, 0, len(lines)-1)
	for _, line := range lines[1:] {
		line = strings.TrimSuffix(line, "\r")
		stats.Lines++
		if strings.TrimSpace(line) == "" {
			stats.Blank++
			continue
		}
		records = append(records, BuildProfile(headers, Tokenize(line, 0, len(headers))))
	}
	stats.Records = len(records)
	return records, stats
}
