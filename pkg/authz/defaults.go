package authz

import (
	_ "embed"
	"encoding/csv"
	"strings"

	"github.com/casbin/casbin/v2"
)

//go:embed defaults/model.conf
var defaultModel string

//go:embed defaults/policy.csv
var defaultPolicy string

// loadDefaultPolicy adds the embedded policy rows to enf.
// Rows are "p, sub, obj, act" or "g, member, role".
func loadDefaultPolicy(enf *casbin.Enforcer) error {
	r := csv.NewReader(strings.NewReader(defaultPolicy))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comment = '#'
	rows, err := r.ReadAll()
	if err != nil {
		return configError("parse default policy: %v", err)
	}
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		args := make([]interface{}, 0, len(row)-1)
		for _, v := range row[1:] {
			args = append(args, strings.TrimSpace(v))
		}
		switch strings.TrimSpace(row[0]) {
		case "p":
			_, err = enf.AddPolicy(args...)
		case "g":
			_, err = enf.AddGroupingPolicy(args...)
		default:
			err = configError("unknown policy type %q", row[0])
		}
		if err != nil {
			return err
		}
	}
	return nil
}
