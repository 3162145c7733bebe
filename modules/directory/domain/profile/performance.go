package profile

import "strings"

type YearRating struct {
	Year int      `json:"year"`
	PL   []string `json:"pl"`
	TC   []string `json:"tc"`
}

var performanceYears = []struct {
	year   int
	pl, tc string
}{
	{2022, KeyPL2022, KeyTC2022},
	{2023, KeyPL2023, KeyTC2023},
	{2024, KeyPL2024, KeyTC2024},
}

// SplitRatings splits a comma-joined rating cell into its codes.
func SplitRatings(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PerformanceHistory returns one entry per year that has a PL or TC column.
func PerformanceHistory(p Profile) []YearRating {
	out := make([]YearRating, 0, len(performanceYears))
	for _, y := range performanceYears {
		pl, hasPL := p.Get(y.pl)
		tc, hasTC := p.Get(y.tc)
		if !hasPL && !hasTC {
			continue
		}
		out = append(out, YearRating{Year: y.year, PL: SplitRatings(pl), TC: SplitRatings(tc)})
	}
	return out
}
