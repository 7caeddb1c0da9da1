package service

import (
	"context"
	"fmt"
	"testing"

	"videodash-backend/internal/domains/video"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manualReq(query string) video.SearchRequest {
	return video.SearchRequest{
		Query:      query,
		Start:      "2024-01-01",
		End:        "2024-01-31",
		MaxResults: 50,
		Source:     video.SourceManual,
	}
}

func TestCombinedFiltersManualByKeyword(t *testing.T) {
	repo := &fakeRepository{records: []video.Record{
		{Title: "T1", Channel: "C1", Published: "2024-01-05", Views: 100, Likes: 10, Comments: 2, URL: "http://x", Keywords: "music,pop"},
	}}
	svc := NewSearchService(&fakeSearcher{}, repo, nil, 0)

	resp, err := svc.Combined(context.Background(), manualReq("pop"))
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "T1", resp.Videos[0].Title)

	resp, err = svc.Combined(context.Background(), manualReq("xyz"))
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Total)
	assert.Empty(t, resp.Videos)
}

func TestCombinedFiltersManualByWindow(t *testing.T) {
	repo := &fakeRepository{records: []video.Record{
		{Title: "inside", Published: "2024-01-15", Keywords: "pop"},
		{Title: "before", Published: "2023-12-31", Keywords: "pop"},
		{Title: "after", Published: "2024-02-01", Keywords: "pop"},
		{Title: "no date", Published: "", Keywords: "pop"},
	}}
	svc := NewSearchService(&fakeSearcher{}, repo, nil, 0)

	resp, err := svc.Combined(context.Background(), manualReq("pop"))
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "inside", resp.Videos[0].Title)
}

func TestCombinedEmptyQueryMatchesAllKeywords(t *testing.T) {
	repo := &fakeRepository{records: []video.Record{
		{Title: "a", Published: "2024-01-10", Keywords: "music"},
		{Title: "b", Published: "2024-01-11", Keywords: "sports"},
	}}
	svc := NewSearchService(&fakeSearcher{}, repo, nil, 0)

	resp, err := svc.Combined(context.Background(), manualReq(""))
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)
}

func TestCombinedAppliesManualDefaults(t *testing.T) {
	repo := &fakeRepository{records: []video.Record{
		{Published: "2024-01-10", Keywords: "pop"},
	}}
	svc := NewSearchService(&fakeSearcher{}, repo, nil, 0)

	resp, err := svc.Combined(context.Background(), manualReq("pop"))
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)

	rec := resp.Videos[0]
	assert.Equal(t, "Untitled", rec.Title)
	assert.Equal(t, "1", rec.Channel, "channel falls back to the record id")
	assert.Equal(t, "#", rec.URL)
	assert.Equal(t, video.PlatformManual, rec.Platform)
	assert.Len(t, rec.Published, 10)
}

func TestCombinedSortsNewestFirst(t *testing.T) {
	searcher := &fakeSearcher{records: []video.Record{
		{VideoID: "y1", Title: "yt old", Published: "2024-01-10", Platform: video.PlatformYouTube},
		{VideoID: "y2", Title: "yt tie", Published: "2024-01-15", Platform: video.PlatformYouTube},
	}}
	repo := &fakeRepository{records: []video.Record{
		{Title: "manual newest", Published: "2024-01-20", Keywords: "pop"},
		{Title: "manual tie", Published: "2024-01-15", Keywords: "pop"},
		{Title: "manual oldest", Published: "2024-01-05", Keywords: "pop"},
	}}
	svc := NewSearchService(searcher, repo, nil, 0)

	req := manualReq("pop")
	req.Source = video.SourceAll

	resp, err := svc.Combined(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 5, resp.Total)

	titles := make([]string, 0, 5)
	for _, v := range resp.Videos {
		titles = append(titles, v.Title)
	}

	// Descending by published; on ties the API result stays ahead of the
	// manual one because concatenation is YouTube-first and the sort is
	// stable.
	assert.Equal(t, []string{"manual newest", "yt tie", "manual tie", "yt old", "manual oldest"}, titles)

	for i := 1; i < len(resp.Videos); i++ {
		assert.GreaterOrEqual(t, resp.Videos[i-1].Published, resp.Videos[i].Published)
	}
}

func TestCombinedSourceGating(t *testing.T) {
	searcher := &fakeSearcher{records: []video.Record{
		{Title: "yt", Published: "2024-01-10", Platform: video.PlatformYouTube},
	}}
	repo := &fakeRepository{records: []video.Record{
		{Title: "manual", Published: "2024-01-10", Keywords: "pop"},
	}}
	svc := NewSearchService(searcher, repo, nil, 0)

	req := manualReq("pop")
	req.Source = video.SourceYouTube
	resp, err := svc.Combined(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "yt", resp.Videos[0].Title)
	assert.Zero(t, repo.getCalls, "manual store must not be read for source=youtube")

	req.Source = video.SourceManual
	resp, err = svc.Combined(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	assert.Equal(t, "manual", resp.Videos[0].Title)
	assert.Equal(t, 1, searcher.calls, "API must not be queried again for source=manual")
}

func TestCombinedPropagatesUpstreamError(t *testing.T) {
	searcher := &fakeSearcher{err: fmt.Errorf("%w: connection refused", video.ErrUpstream)}
	svc := NewSearchService(searcher, &fakeRepository{}, nil, 0)

	req := manualReq("pop")
	req.Source = video.SourceAll

	_, err := svc.Combined(context.Background(), req)
	assert.ErrorIs(t, err, video.ErrUpstream)
}

func TestSearchUsesCache(t *testing.T) {
	searcher := &fakeSearcher{records: []video.Record{
		{VideoID: "y1", Title: "yt", Published: "2024-01-10", Platform: video.PlatformYouTube},
	}}
	svc := NewSearchService(searcher, &fakeRepository{}, newMemCache(), 0)

	req := manualReq("pop")
	req.Source = video.SourceYouTube

	first, err := svc.Search(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Search(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, searcher.calls, "second identical query must be served from cache")
	assert.Equal(t, first, second)
}

func TestCombinedPropagatesStoreError(t *testing.T) {
	repo := &fakeRepository{failGet: fmt.Errorf("%w: broken pool", video.ErrPersistence)}
	svc := NewSearchService(&fakeSearcher{}, repo, nil, 0)

	_, err := svc.Combined(context.Background(), manualReq("pop"))
	assert.ErrorIs(t, err, video.ErrPersistence)
}
