package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyTenure(t *testing.T) {
	cases := []struct {
		in   string
		want TenureBand
		ok   bool
	}{
		{"7,5 Tahun", Tenure6To10, true},
		{"20 Thn", Tenure16To20, true},
		{"21 Tahun", TenureOver20, true},
		{"5 tahun", Tenure0To5, true},
		{"5,5 THN", Tenure6To10, true},
		{"0 Tahun 3 Bulan", Tenure0To5, true},
		{"10.0 Tahun", Tenure6To10, true},
		{"15Tahun", Tenure11To15, true},
		{"20,1 Tahun", TenureOver20, true},
		{"12 Bulan", "", false},
		{"Tahun", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ClassifyTenure(tc.in)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestParseTenureYears_CommaDecimal(t *testing.T) {
	y, ok := ParseTenureYears("Masa kerja 7,25 thn")
	require.True(t, ok)
	require.Equal(t, "7.25", y.String())
}
