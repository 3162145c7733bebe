package sheet

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		start int
		limit int
		want  []string
	}{
		{"plain", "a,b,c", 0, 0, []string{"a", "b", "c"}},
		{"quoted comma", `1,"Jakarta, Pusat",x`, 0, 0, []string{"1", "Jakarta, Pusat", "x"}},
		{"escaped quote", `"5'2"" Tower",y`, 0, 0, []string{`5'2" Tower`, "y"}},
		{"empty fields", "a,,c,", 0, 0, []string{"a", "", "c", ""}},
		{"limit", "a,b,c,d", 0, 2, []string{"a", "b"}},
		{"start offset", "skip,a,b", 5, 0, []string{"a", "b"}},
		{"garbage after quote stops", `"a"b,c`, 0, 0, []string{"a"}},
		{"unterminated quote is raw", `"abc,def`, 0, 0, []string{`"abc`, "def"}},
		{"empty line", "", 0, 0, []string{""}},
		{"start past end", "a", 5, 0, nil},
		{"spaces kept", " a , b ", 0, 0, []string{" a ", " b "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Tokenize(tc.line, tc.start, tc.limit))
		})
	}
}

func TestNormalizeHeaders(t *testing.T) {
	got := NormalizeHeaders(` NIP ,Full Name,Masa Kerja (Dari Kontrak),"Unit Kerja",Directorate,Religious Denomination Key,MOBILE PHONE LINKAJA`)
	require.Equal(t, []string{"nip", "fullName", "masaKerja", "unitKerja", "", "agama", "noHpLinkAja"}, got)
}

func TestNormalizeHeaders_KeepsParentheses(t *testing.T) {
	require.Equal(t, "masakerja(darikontrak)", normalizeHeader("Masa Kerja (Dari Kontrak)"))
	require.Equal(t, []string{""}, NormalizeHeaders("Masa Kerja Dari Kontrak"))
}

func TestBuildProfile(t *testing.T) {
	headers := []string{"nip", "", "fullName", "area"}

	p := BuildProfile(headers, []string{" 1 ", "dropped", " Ana "})
	require.Len(t, p, 2)
	require.Equal(t, "1", p["nip"])
	require.Equal(t, "Ana", p["fullName"])
	_, ok := p["area"]
	require.False(t, ok)
}

func TestBuildProfile_DuplicateHeaderLastWins(t *testing.T) {
	p := BuildProfile([]string{"area", "area"}, []string{"Jawa", "Sumatera"})
	require.Equal(t, "Sumatera", p["area"])
}
