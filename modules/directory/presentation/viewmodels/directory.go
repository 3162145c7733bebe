package viewmodels

import "time"

// Profile is one directory record keyed by canonical field name.
type Profile map[string]string

type ProfileList struct {
	Items    []Profile `json:"items"`
	Total    int       `json:"total"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
	LoadedAt time.Time `json:"loadedAt"`
}

type ProfileMatches struct {
	NIP   string    `json:"nip"`
	Items []Profile `json:"items"`
}

type YearRating struct {
	Year int      `json:"year"`
	PL   []string `json:"pl"`
	TC   []string `json:"tc"`
}

type Performance struct {
	NIP      string       `json:"nip"`
	FullName string       `json:"fullName"`
	History  []YearRating `json:"history"`
}

type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
	// Percent of all records, one decimal place.
	Percent string `json:"percent"`
}

type Breakdown struct {
	Buckets []Bucket `json:"buckets"`
	Total   int      `json:"total"`
	Skipped int      `json:"skipped"`
}

type Analytics struct {
	Total      int       `json:"total"`
	LoadedAt   time.Time `json:"loadedAt"`
	Generation Breakdown `json:"generation"`
	Tenure     Breakdown `json:"tenure"`
	ByUnit     Breakdown `json:"byUnit"`
	ByArea     Breakdown `json:"byArea"`
	ByLevel    Breakdown `json:"byLevel"`
}

type Field struct {
	Header string `json:"header"`
	Key    string `json:"key"`
}

// LiveEvent is pushed to websocket subscribers of the directory channel.
type LiveEvent struct {
	Type      string    `json:"type"`
	Source    string    `json:"source"`
	Records   int       `json:"records,omitempty"`
	Blank     int       `json:"blank,omitempty"`
	Unmapped  int       `json:"unmapped,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
