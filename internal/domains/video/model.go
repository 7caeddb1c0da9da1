package video

import (
	"regexp"
	"strings"
	"time"
)

// Platform values for Record.Platform.
const (
	PlatformYouTube = "YouTube"
	PlatformManual  = "Manual"
)

// SentinelDate is the normalized form of a missing or unparseable publish
// date. It is 10 characters like every valid date, and sorts after any real
// date when the combined list is ordered newest-first.
const SentinelDate = "0000-00-00"

// Record is the unified video shape returned by every search endpoint.
// API-sourced records are built fresh per request; manual records are
// persisted rows from the last spreadsheet upload.
type Record struct {
	VideoID   string `json:"video_id,omitempty"`
	Title     string `json:"title"`
	Channel   string `json:"channel"`
	Published string `json:"published"` // always YYYY-MM-DD once normalized
	Views     int64  `json:"views"`
	Likes     int64  `json:"likes"`
	Comments  int64  `json:"comments"`
	URL       string `json:"url"`
	Platform  string `json:"platform"`
	Keywords  string `json:"keywords,omitempty"` // lowercase
}

var isoDatePrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

// dateLayouts covers the formats spreadsheets and the upstream API produce.
// Excel cells commonly render as m/d/yy or m-d-yy depending on cell style.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"1/2/06",
	"1/2/2006",
	"02-Jan-06",
}

// NormalizeDate coerces a raw date value to the 10-character YYYY-MM-DD
// form. Unparseable or missing input maps to SentinelDate so ordering
// stays deterministic.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return SentinelDate
	}

	if isoDatePrefix.MatchString(s) {
		return s[:10]
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}

	return SentinelDate
}

// ApplyManualDefaults fills the documented defaults for a manual record so
// the merged list never carries missing required fields.
func (r *Record) ApplyManualDefaults() {
	if r.Title == "" {
		r.Title = "Untitled"
	}
	if r.Channel == "" {
		if r.VideoID != "" {
			r.Channel = r.VideoID
		} else {
			r.Channel = "Unknown"
		}
	}
	if r.URL == "" {
		r.URL = "#"
	}
	if r.Published == "" {
		r.Published = SentinelDate
	}
	r.Platform = PlatformManual
	r.Keywords = strings.ToLower(r.Keywords)
	if r.Views < 0 {
		r.Views = 0
	}
	if r.Likes < 0 {
		r.Likes = 0
	}
	if r.Comments < 0 {
		r.Comments = 0
	}
}

// MatchesWindow reports whether the record's publish date lies in the
// inclusive [start, end] window. Lexicographic compare is chronological
// because dates are zero-padded ISO strings.
func (r *Record) MatchesWindow(start, end string) bool {
	return r.Published >= start && r.Published <= end
}

// MatchesKeyword does a case-insensitive substring match of query against
// the keywords field. An empty query matches everything.
func (r *Record) MatchesKeyword(query string) bool {
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(r.Keywords), strings.ToLower(query))
}
