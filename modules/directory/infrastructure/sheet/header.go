package sheet

import (
	"strings"
	"unicode"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
)

// NormalizeHeaders maps each cell of the raw header line to its canonical
// profile key, or "" for columns that have no mapping. Positions are kept.
// The split is a plain comma split; header cells are not expected to be quoted.
func NormalizeHeaders(line string) []string {
	cells := strings.Split(line, ",")
	out := make([]string, len(cells))
	for i, cell := range cells {
		if key, ok := profile.CanonicalKeyFor(normalizeHeader(cell)); ok {
			out[i] = key
		}
	}
	return out
}

// normalizeHeader lower-cases cell and drops whitespace and double quotes.
// Parentheses are kept: "Masa Kerja (Dari Kontrak)" -> "masakerja(darikontrak)".
func normalizeHeader(cell string) string {
	cell = strings.ToLower(strings.TrimSpace(cell))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '"' || r == '\uFEFF' {
			return -1
		}
		return r
	}, cell)
}
