// Package profile holds the employee directory record and the analytics
// derived from it.
package profile

import (
	"sort"
	"strings"
)

// Canonical field keys.
const (
	KeyNIP              = "nip"
	KeyFullName         = "fullName"
	KeyLevel            = "level"
	KeyGrade            = "grade"
	KeyStartDate        = "startDate"
	KeyEmployeeSubgroup = "employeeSubgroup"
	KeyJabatan          = "jabatan"
	KeyTMTJabatan       = "tmtJabatan"
	KeyLamaJabatan      = "lamaJabatan"
	KeyUnitKerja        = "unitKerja"
	KeyArea             = "area"
	KeyKelasCabang      = "kelasCabang"
	KeyTMTMasuk         = "tmtMasuk"
	KeyMasaKerja        = "masaKerja"
	KeyTMTMandiri       = "tmtMandiri"
	KeyTMTTetap         = "tmtTetap"
	KeyUsiaPensiun      = "usiaPensiun"
	KeyTanggalPensiun   = "tanggalPensiun"
	KeyAgama            = "agama"
	KeyBirthDate        = "birthDate"
	KeyNoHPLinkAja      = "noHpLinkAja"
	KeyPL2022           = "pl2022"
	KeyTC2022           = "tc2022"
	KeyPL2023           = "pl2023"
	KeyTC2023           = "tc2023"
	KeyPL2024           = "pl2024"
	KeyTC2024           = "tc2024"
)

// Field pairs a normalized sheet header with the profile key it fills.
type Field struct {
	Header string `json:"header"`
	Key    string `json:"key"`
}

var fields = []Field{
	{"nip", KeyNIP},
	{"fullname", KeyFullName},
	{"level", KeyLevel},
	{"grade", KeyGrade},
	{"startdate", KeyStartDate},
	{"employeesubgroup", KeyEmployeeSubgroup},
	{"jabatan", KeyJabatan},
	{"tmtjabatan", KeyTMTJabatan},
	{"lamajabatan", KeyLamaJabatan},
	{"unitkerja", KeyUnitKerja},
	{"area", KeyArea},
	{"kelascabang", KeyKelasCabang},
	{"tmtmasuk", KeyTMTMasuk},
	{"masakerja(darikontrak)", KeyMasaKerja},
	{"tmtmandiri", KeyTMTMandiri},
	{"tmttetap", KeyTMTTetap},
	{"usiapensiunpegawai", KeyUsiaPensiun},
	{"tanggalpensiun", KeyTanggalPensiun},
	{"religiousdenominationkey", KeyAgama},
	{"birthdate", KeyBirthDate},
	{"mobilephonelinkaja", KeyNoHPLinkAja},
	{"pl2022", KeyPL2022},
	{"tc2022", KeyTC2022},
	{"pl2023", KeyPL2023},
	{"tc2023", KeyTC2023},
	{"pl2024", KeyPL2024},
	{"tc2024", KeyTC2024},
}

var (
	byHeader = make(map[string]string, len(fields))
	byKey    = make(map[string]struct{}, len(fields))
)

func init() {
	for _, f := range fields {
		byHeader[f.Header] = f.Key
		byKey[f.Key] = struct{}{}
	}
}

// Fields returns a copy of the canonical field table in sheet order.
func Fields() []Field {
	out := make([]Field, len(fields))
	copy(out, fields)
	return out
}

// CanonicalKeyFor maps a normalized header to its profile key.
func CanonicalKeyFor(normalized string) (string, bool) {
	k, ok := byHeader[normalized]
	return k, ok
}

func IsCanonicalKey(key string) bool {
	_, ok := byKey[key]
	return ok
}

// Profile is one sparse directory record keyed by canonical field key.
// A key is present only when the sheet had a mapped column for it.
// NIP may be empty or repeated across records.
type Profile map[string]string

func (p Profile) Get(key string) (string, bool) {
	v, ok := p[key]
	return v, ok
}

// Value returns the field or "" when absent.
func (p Profile) Value(key string) string {
	return p[key]
}

func (p Profile) NIP() string      { return p[KeyNIP] }
func (p Profile) FullName() string { return p[KeyFullName] }

func (p Profile) Clone() Profile {
	out := make(Profile, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Keys returns the present keys in sorted order.
func (p Profile) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FilterByNIP returns every record whose nip equals nip after trimming.
func FilterByNIP(records []Profile, nip string) []Profile {
	nip = strings.TrimSpace(nip)
	out := make([]Profile, 0, 1)
	if nip == "" {
		return out
	}
	for _, r := range records {
		if strings.TrimSpace(r.NIP()) == nip {
			out = append(out, r)
		}
	}
	return out
}
