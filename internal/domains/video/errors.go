package video

import "errors"

var (
	// ErrEmptyQuery: the query is empty after stripping a leading hashtag.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrBadFileType: the uploaded file is not a recognized spreadsheet.
	ErrBadFileType = errors.New("only .xlsx and .xls files are accepted")

	// ErrUpstream tags transport or API failures from the video platform.
	// Surfaced to the caller as 502.
	ErrUpstream = errors.New("upstream video api failure")

	// ErrParse tags malformed spreadsheet content. Surfaced as 500 with
	// the underlying message.
	ErrParse = errors.New("spreadsheet parse failure")

	// ErrPersistence tags storage read/write failures.
	ErrPersistence = errors.New("manual record storage failure")
)
