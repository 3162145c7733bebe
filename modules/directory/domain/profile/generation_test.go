package profile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

func TestClassifyGeneration(t *testing.T) {
	cases := []struct {
		in   string
		want Generation
		ok   bool
	}{
		{"15/03/1990", Millennial, true},
		{"1-1-1997", GenZ, true},
		{"31/12/2012", GenZ, true},
		{"01/01/2013", GenOther, true},
		{"12-08-1975", GenX, true},
		{"3/4/1950", BabyBoomer, true},
		{"3/4/1930", GenOther, true},
		{"Lahir 7/7/1981 di Bandung", Millennial, true},
		{"1990", "", false},
		{"1990-03-15", "", false},
		{"01/01/1919", "", false},
		{"01/01/2026", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ClassifyGeneration(tc.in, fixedNow)
			require.Equal(t, tc.ok, ok)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestClassifyGeneration_UpperBoundFollowsNow(t *testing.T) {
	_, ok := ClassifyGeneration("01/01/2025", fixedNow)
	require.True(t, ok)
	_, ok = ClassifyGeneration("01/01/2025", fixedNow.AddDate(-1, 0, 0))
	require.False(t, ok)
}
