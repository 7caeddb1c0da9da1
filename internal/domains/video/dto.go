package video

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Source selectors for combined search.
const (
	SourceAll     = "all"
	SourceYouTube = "youtube"
	SourceManual  = "manual"
)

const (
	DefaultMaxResults = 50
	MaxMaxResults     = 500
)

// SearchRequest carries the query parameters of the search endpoints.
type SearchRequest struct {
	Query      string `form:"query"`
	Start      string `form:"start"`
	End        string `form:"end"`
	MaxResults int64  `form:"max_results"`
	Source     string `form:"source"`
}

// Normalize applies the documented defaults before validation.
func (r *SearchRequest) Normalize() {
	if r.MaxResults == 0 {
		r.MaxResults = DefaultMaxResults
	}
	if r.Source == "" {
		r.Source = SourceAll
	}
	r.Source = strings.ToLower(r.Source)
}

func (r SearchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required),
		validation.Field(&r.Start, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.End, validation.Required, validation.Date("2006-01-02")),
		validation.Field(&r.MaxResults, validation.Min(1), validation.Max(MaxMaxResults)),
		validation.Field(&r.Source, validation.In(SourceAll, SourceYouTube, SourceManual)),
	)
}

// SearchResponse is the raw contract shape of the search endpoints.
type SearchResponse struct {
	Videos []Record `json:"videos"`
	Total  int      `json:"total"`
}

// ImportResult is returned by the spreadsheet upload endpoint.
type ImportResult struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}
