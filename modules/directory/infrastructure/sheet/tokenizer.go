package sheet

import (
	"regexp"
	"strings"
)

// fieldPattern matches one field at the scan position: a quoted group with
// "" escapes, or a run of non-comma characters.
var fieldPattern = regexp.MustCompile(`^(?:"((?:[^"]|"")*)"|([^,]*))`)

// Tokenize splits line into field values starting at byte offset start.
// Scanning stops at the end of the line, after limit fields when limit > 0,
// or when content after a closing quote is not a comma. It never fails;
// malformed input yields the fields read so far.
func Tokenize(line string, start, limit int) []string {
	if start < 0 {
		start = 0
	}
	var out []string
	if start > len(line) {
		return out
	}

	pos := start
	for limit <= 0 || len(out) < limit {
		if len(out) > 0 {
			if pos >= len(line) || line[pos] != ',' {
				break
			}
			pos++
		}
		m := fieldPattern.FindStringSubmatchIndex(line[pos:])
		if m == nil {
			break
		}
		if m[2] >= 0 {
			out = append(out, strings.ReplaceAll(line[pos+m[2]:pos+m[3]], `""`, `"`))
		} else {
			out = append(out, line[pos+m[4]:pos+m[5]])
		}
		pos += m[1]
		if pos >= len(line) {
			break
		}
	}
	return out
}
