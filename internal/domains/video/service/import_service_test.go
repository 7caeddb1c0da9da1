package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"videodash-backend/internal/domains/video"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// buildWorkbook produces an in-memory .xlsx with the given header and rows.
func buildWorkbook(t *testing.T, header []interface{}, rows ...[]interface{}) io.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	for i, row := range rows {
		cell := fmt.Sprintf("A%d", i+2)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func defaultHeader() []interface{} {
	return []interface{}{"Title", "Channel", "Published", "Views", "Likes", "Comments", "URL", "Keywords"}
}

func TestImportReplacesStore(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewImportService(repo)

	wb := buildWorkbook(t, defaultHeader(),
		[]interface{}{"First", "Chan A", "2024-01-05", 100, 10, 2, "http://a", "Music,Pop"},
		[]interface{}{"Second", "Chan B", "2024-01-06", 200, 20, 4, "http://b", "news"},
	)

	res, err := svc.Import(context.Background(), wb, "videos.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Status)
	assert.Equal(t, 2, res.Count)
	assert.Equal(t, 1, repo.replaceCalls)

	stored, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "First", stored[0].Title)
	assert.Equal(t, "music,pop", stored[0].Keywords)
	assert.Equal(t, int64(100), stored[0].Views)
	assert.Equal(t, video.PlatformManual, stored[0].Platform)
}

func TestImportIsFullReplace(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewImportService(repo)

	first := buildWorkbook(t, defaultHeader(),
		[]interface{}{"Old A", "", "2024-01-01", 1, 0, 0, "", ""},
		[]interface{}{"Old B", "", "2024-01-02", 2, 0, 0, "", ""},
		[]interface{}{"Old C", "", "2024-01-03", 3, 0, 0, "", ""},
	)
	_, err := svc.Import(context.Background(), first, "old.xlsx")
	require.NoError(t, err)

	second := buildWorkbook(t, defaultHeader(),
		[]interface{}{"New", "", "2024-02-01", 9, 0, 0, "", ""},
	)
	res, err := svc.Import(context.Background(), second, "new.xlsx")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)

	stored, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "New", stored[0].Title)
}

func TestImportCoercesCells(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewImportService(repo)

	wb := buildWorkbook(t, defaultHeader(),
		// Missing counts, garbage date, negative likes, float views.
		[]interface{}{"Odd", "C", "sometime in march", "1200.0", -5, "", "http://x", "Pop"},
	)

	res, err := svc.Import(context.Background(), wb, "odd.xlsx")
	require.NoError(t, err)
	require.Equal(t, 1, res.Count)

	stored, err := repo.GetAll(context.Background())
	require.NoError(t, err)

	rec := stored[0]
	assert.Equal(t, video.SentinelDate, rec.Published)
	assert.Equal(t, int64(1200), rec.Views)
	assert.Zero(t, rec.Likes)
	assert.Zero(t, rec.Comments)
	assert.Equal(t, "pop", rec.Keywords)
}

func TestImportHeaderCaseInsensitive(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewImportService(repo)

	wb := buildWorkbook(t,
		[]interface{}{" TITLE ", "channel", "PUBLISHED", "views"},
		[]interface{}{"Shouty", "C", "2024-03-01", 7},
	)

	_, err := svc.Import(context.Background(), wb, "caps.xlsx")
	require.NoError(t, err)

	stored, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Shouty", stored[0].Title)
	assert.Equal(t, int64(7), stored[0].Views)
}

func TestImportEmptySheetLeavesStoreUntouched(t *testing.T) {
	repo := &fakeRepository{records: []video.Record{{Title: "keep"}}}
	svc := NewImportService(repo)

	wb := buildWorkbook(t, defaultHeader())

	res, err := svc.Import(context.Background(), wb, "empty.xlsx")
	require.NoError(t, err)
	assert.Equal(t, "ok", res.Status)
	assert.Zero(t, res.Count)
	assert.Zero(t, repo.replaceCalls)

	stored, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestImportRejectsBadExtension(t *testing.T) {
	svc := NewImportService(&fakeRepository{})

	for _, name := range []string{"data.csv", "data.txt", "data", "data.xlsx.pdf"} {
		_, err := svc.Import(context.Background(), strings.NewReader("irrelevant"), name)
		assert.ErrorIs(t, err, video.ErrBadFileType, name)
	}
}

func TestImportAcceptsUppercaseExtension(t *testing.T) {
	repo := &fakeRepository{}
	svc := NewImportService(repo)

	wb := buildWorkbook(t, defaultHeader(),
		[]interface{}{"T", "C", "2024-01-01", 1, 1, 1, "u", "k"},
	)

	res, err := svc.Import(context.Background(), wb, "DATA.XLSX")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Count)
}

func TestImportTagsUnparseableFile(t *testing.T) {
	svc := NewImportService(&fakeRepository{})

	_, err := svc.Import(context.Background(), bytes.NewReader([]byte("not a zip archive")), "broken.xlsx")
	assert.ErrorIs(t, err, video.ErrParse)
}

func TestImportPropagatesStoreError(t *testing.T) {
	repo := &fakeRepository{failReplace: fmt.Errorf("%w: insert failed", video.ErrPersistence)}
	svc := NewImportService(repo)

	wb := buildWorkbook(t, defaultHeader(),
		[]interface{}{"T", "C", "2024-01-01", 1, 1, 1, "u", "k"},
	)

	_, err := svc.Import(context.Background(), wb, "fail.xlsx")
	assert.ErrorIs(t, err, video.ErrPersistence)
}
