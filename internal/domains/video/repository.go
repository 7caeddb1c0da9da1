package video

import "context"

// Repository is the Manual Record Store: the persisted table of
// spreadsheet-sourced records. Mutated only by the importer (full replace),
// read only by combined search.
type Repository interface {
	// ReplaceAll deletes every existing manual record and inserts the new
	// batch inside one transaction. Returns the number of inserted rows.
	ReplaceAll(ctx context.Context, records []Record) (int64, error)

	// GetAll returns every persisted manual record.
	GetAll(ctx context.Context) ([]Record, error)
}
