package sheet

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jacksonlee411/hcdash/modules/directory/domain/profile"
)

func readFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "directory.csv"))
	require.NoError(t, err)
	return string(data)
}

func TestParse_Fixture(t *testing.T) {
	records, stats := ParseWithStats(readFixture(t))

	require.Len(t, records, 2)
	require.Equal(t, profile.Profile{
		"nip":       "1001",
		"fullName":  "Siti Rahma",
		"unitKerja": "Jakarta, Pusat",
		"area":      "Jawa",
		"masaKerja": "7,5 Tahun",
		"birthDate": "15/03/1990",
		"pl2022":    "B,BS",
	}, records[0])
	require.Equal(t, "Bandung", records[1]["unitKerja"])
	require.Equal(t, "", records[1]["pl2022"])

	require.Equal(t, Stats{Lines: 4, Blank: 2, Records: 2, MappedColumns: 7, UnmappedColumns: 1}, stats)
}

func TestParse_TooFewLines(t *testing.T) {
	for _, in := range []string{"", "nip,fullname", "nip,fullname\r"} {
		got := Parse(in)
		require.NotNil(t, got)
		require.Empty(t, got)
	}
}

func TestParse_RecordCountEqualsNonBlankLines(t *testing.T) {
	text := "nip,fullname\n1,A\n\n   \n2,B\n3,C\n"
	require.Len(t, Parse(text), 3)
}

func TestParse_BlankLinesDoNotShiftAlignment(t *testing.T) {
	text := "nip,fullname,area\n1,A,X\n\n\n2,B,Y\n"
	records := Parse(text)
	require.Equal(t, []profile.Profile{
		{"nip": "1", "fullName": "A", "area": "X"},
		{"nip": "2", "fullName": "B", "area": "Y"},
	}, records)
}

func TestParse_UnknownColumnsNeverLeak(t *testing.T) {
	text := "nip,secret column,fullname\n1,hidden,A\n"
	records := Parse(text)
	require.Len(t, records, 1)
	for k, v := range records[0] {
		require.True(t, profile.IsCanonicalKey(k), k)
		require.NotEqual(t, "hidden", v)
	}
}

func TestParse_ShortRowIsPartial(t *testing.T) {
	records := Parse("nip,fullname,area\n7\n")
	require.Equal(t, []profile.Profile{{"nip": "7"}}, records)
}

func TestParse_Idempotent(t *testing.T) {
	text := readFixture(t)
	a := Parse(text)
	b := Parse(text)
	require.Equal(t, a, b)

	a[0]["nip"] = "changed"
	require.Equal(t, "1001", b[0]["nip"])
}

func TestParse_StripsBOM(t *testing.T) {
	records := Parse("\uFEFFnip,fullname\n1,A\n")
	require.Equal(t, "1", records[0]["nip"])
}
