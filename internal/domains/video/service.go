package video

import (
	"context"
	"io"
)

// Searcher is the external video API client: paginated search plus
// statistics enrichment. Implemented by infrastructure/youtube.
type Searcher interface {
	// SearchAndEnrich collects up to maxResults video ids published inside
	// [start, end] and enriches them with statistics. A search failure
	// returns an error wrapping ErrUpstream; enrichment batch failures
	// degrade the result set instead of failing the call.
	SearchAndEnrich(ctx context.Context, query, start, end string, maxResults int64) ([]Record, error)
}

// ImportService ingests a spreadsheet into the Manual Record Store.
type ImportService interface {
	// Import parses the uploaded spreadsheet and replaces all prior manual
	// records with its rows.
	Import(ctx context.Context, r io.Reader, filename string) (*ImportResult, error)
}

// SearchService is the merge & filter engine over both sources.
type SearchService interface {
	// Search queries the external API only (the /search-videos contract).
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)

	// Combined merges the selected sources, filters manual records by
	// publish window and keyword, and sorts by publish date descending.
	Combined(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}
