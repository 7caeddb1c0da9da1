package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"videodash-backend/internal/domains/video"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

type importService struct {
	repo video.Repository
}

func NewImportService(repo video.Repository) video.ImportService {
	return &importService{repo: repo}
}

// Import parses the uploaded spreadsheet and replaces all prior manual
// records with its rows in one transaction.
func (s *importService) Import(ctx context.Context, r io.Reader, filename string) (*video.ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".xlsx" && ext != ".xls" {
		return nil, video.ErrBadFileType
	}

	records, err := s.parseSpreadsheet(r)
	if err != nil {
		return nil, err
	}

	// An empty sheet imports nothing and leaves the store untouched.
	if len(records) == 0 {
		return &video.ImportResult{Status: "ok", Count: 0}, nil
	}

	count, err := s.repo.ReplaceAll(ctx, records)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("file_name", filename).
		Int64("count", count).
		Msg("[IMPORT] Manual records replaced")

	return &video.ImportResult{Status: "ok", Count: int(count)}, nil
}

// parseSpreadsheet reads the first sheet into normalized records: headers
// trimmed and lowercased, missing cells empty, numeric columns coerced,
// dates reduced to their 10-character form, keywords lowercased.
func (s *importService) parseSpreadsheet(r io.Reader) ([]video.Record, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", video.ErrParse, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", video.ErrParse, err)
	}

	if len(rows) < 2 {
		return nil, nil
	}

	colMap := buildColumnIndexMap(rows[0])

	records := make([]video.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		getCol := func(name string) string {
			if idx, ok := colMap[name]; ok && idx < len(row) {
				return strings.TrimSpace(row[idx])
			}
			return ""
		}

		records = append(records, video.Record{
			Title:     getCol("title"),
			Channel:   getCol("channel"),
			Published: video.NormalizeDate(getCol("published")),
			Views:     parseCount(getCol("views")),
			Likes:     parseCount(getCol("likes")),
			Comments:  parseCount(getCol("comments")),
			URL:       getCol("url"),
			Keywords:  strings.ToLower(getCol("keywords")),
			Platform:  video.PlatformManual,
		})
	}

	return records, nil
}

// buildColumnIndexMap maps normalized column name -> index.
func buildColumnIndexMap(header []string) map[string]int {
	colMap := make(map[string]int, len(header))
	for i, name := range header {
		colMap[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return colMap
}

// parseCount coerces a numeric cell to a non-negative int64. Empty or
// unparseable values become 0; Excel may render integers as floats.
func parseCount(raw string) int64 {
	if raw == "" {
		return 0
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n < 0 {
			return 0
		}
		return n
	}
	if fl, err := strconv.ParseFloat(raw, 64); err == nil && fl > 0 {
		return int64(fl)
	}
	return 0
}
