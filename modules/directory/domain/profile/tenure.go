package profile

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

type TenureBand string

const (
	Tenure0To5   TenureBand = "0-5 Tahun"
	Tenure6To10  TenureBand = "6-10 Tahun"
	Tenure11To15 TenureBand = "11-15 Tahun"
	Tenure16To20 TenureBand = "16-20 Tahun"
	TenureOver20 TenureBand = "20+ Tahun"
)

var tenurePattern = regexp.MustCompile(`(?i)(\d+(?:[.,]\d+)?)\s*(tahun|thn)`)

var tenureBands = []struct {
	band TenureBand
	max  decimal.Decimal
}{
	{Tenure0To5, decimal.NewFromInt(5)},
	{Tenure6To10, decimal.NewFromInt(10)},
	{Tenure11To15, decimal.NewFromInt(15)},
	{Tenure16To20, decimal.NewFromInt(20)},
}

func TenureBands() []TenureBand {
	return []TenureBand{Tenure0To5, Tenure6To10, Tenure11To15, Tenure16To20, TenureOver20}
}

// ParseTenureYears extracts the year count from phrases like "5 Tahun" or
// "7,5 thn".
func ParseTenureYears(masaKerja string) (decimal.Decimal, bool) {
	m := tenurePattern.FindStringSubmatch(masaKerja)
	if m == nil {
		return decimal.Zero, false
	}
	years, err := decimal.NewFromString(strings.Replace(m[1], ",", ".", 1))
	if err != nil {
		return decimal.Zero, false
	}
	return years, true
}

// ClassifyTenure buckets a tenure phrase. Bands are upper-inclusive and
// checked in order, so 5.5 years falls in 6-10.
func ClassifyTenure(masaKerja string) (TenureBand, bool) {
	years, ok := ParseTenureYears(masaKerja)
	if !ok {
		return "", false
	}
	for _, b := range tenureBands {
		if years.LessThanOrEqual(b.max) {
			return b.band, true
		}
	}
	return TenureOver20, true
}
