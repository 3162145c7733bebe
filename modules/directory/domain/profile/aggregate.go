package profile

import (
	"sort"
	"strings"
	"time"
)

// EmptyLabel groups records whose field is absent or blank.
const EmptyLabel = "(kosong)"

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type Breakdown struct {
	Buckets []Bucket `json:"buckets"`
	// Total is the number of records seen.
	Total int `json:"total"`
	// Skipped counts records that did not land in any bucket.
	Skipped int `json:"skipped"`
}

// Count returns the count for label, or 0.
func (b Breakdown) Count(label string) int {
	for _, bk := range b.Buckets {
		if bk.Label == label {
			return bk.Count
		}
	}
	return 0
}

func fixedBreakdown(labels []string, records []Profile, classify func(Profile) (string, bool)) Breakdown {
	index := make(map[string]int, len(labels))
	out := Breakdown{Buckets: make([]Bucket, len(labels)), Total: len(records)}
	for i, l := range labels {
		index[l] = i
		out.Buckets[i] = Bucket{Label: l}
	}
	for _, r := range records {
		label, ok := classify(r)
		if !ok {
			out.Skipped++
			continue
		}
		out.Buckets[index[label]].Count++
	}
	return out
}

func GenerationBreakdown(records []Profile, now time.Time) Breakdown {
	gens := Generations()
	labels := make([]string, len(gens))
	for i, g := range gens {
		labels[i] = string(g)
	}
	return fixedBreakdown(labels, records, func(p Profile) (string, bool) {
		g, ok := ClassifyGeneration(p.Value(KeyBirthDate), now)
		return string(g), ok
	})
}

func TenureBreakdown(records []Profile) Breakdown {
	bands := TenureBands()
	labels := make([]string, len(bands))
	for i, b := range bands {
		labels[i] = string(b)
	}
	return fixedBreakdown(labels, records, func(p Profile) (string, bool) {
		b, ok := ClassifyTenure(p.Value(KeyMasaKerja))
		return string(b), ok
	})
}

// CountBy groups records by the trimmed value of key, largest group first.
func CountBy(records []Profile, key string) Breakdown {
	counts := make(map[string]int)
	for _, r := range records {
		label := strings.TrimSpace(r.Value(key))
		if label == "" {
			label = EmptyLabel
		}
		counts[label]++
	}
	out := Breakdown{Buckets: make([]Bucket, 0, len(counts)), Total: len(records)}
	for l, c := range counts {
		out.Buckets = append(out.Buckets, Bucket{Label: l, Count: c})
	}
	sort.Slice(out.Buckets, func(i, j int) bool {
		a, b := out.Buckets[i], out.Buckets[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Label < b.Label
	})
	return out
}
