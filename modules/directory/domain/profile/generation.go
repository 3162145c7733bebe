package profile

import (
	"regexp"
	"strconv"
	"time"
)

type Generation string

const (
	GenZ       Generation = "Gen Z"
	Millennial Generation = "Millennial"
	GenX       Generation = "Gen X"
	BabyBoomer Generation = "Baby Boomer"
	GenOther   Generation = "Other"
)

const minBirthYear = 1920

var birthDatePattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})[/-](\d{4})`)

var generationRanges = []struct {
	gen      Generation
	from, to int
}{
	{GenZ, 1997, 2012},
	{Millennial, 1981, 1996},
	{GenX, 1965, 1980},
	{BabyBoomer, 1946, 1964},
}

// Generations lists every bucket in report order.
func Generations() []Generation {
	return []Generation{GenZ, Millennial, GenX, BabyBoomer, GenOther}
}

// ClassifyGeneration buckets a D/M/YYYY or D-M-YYYY birth date. It reports
// false when no date is found or the year is outside [1920, now.Year()].
func ClassifyGeneration(birthDate string, now time.Time) (Generation, bool) {
	m := birthDatePattern.FindStringSubmatch(birthDate)
	if m == nil {
		return "", false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil || year < minBirthYear || year > now.Year() {
		return "", false
	}
	for _, r := range generationRanges {
		if year >= r.from && year <= r.to {
			return r.gen, true
		}
	}
	return GenOther, true
}
