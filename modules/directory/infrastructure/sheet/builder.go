package sheet

import (
	"strings"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
)

// BuildProfile pairs headers with fields by position. Unmapped headers are
// skipped and missing trailing fields leave their keys absent.
func BuildProfile(headers, fields []string) profile.Profile {
	n := len(headers)
	if len(fields) < n {
		n = len(fields)
	}
	p := make(profile.Profile, n)
	for i := 0; i < n; i++ {
		if headers[i] == "" {
			continue
		}
		p[headers[i]] = strings.TrimSpace(fields[i])
	}
	return p
}
