package youtube

import (
	"context"
	"fmt"
	"strings"
	"time"

	"videodash-backend/internal/domains/video"
	"videodash-backend/internal/shared/utils"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// pageSize is the fixed search page size; batchSize caps one statistics
// lookup. Both are the YouTube Data API maximum.
const (
	pageSize  = 50
	batchSize = 50
)

// Client is the external video API client: paginated search queries plus
// batched statistics lookups against the YouTube Data API v3.
type Client struct {
	svc     *yt.Service
	timeout time.Duration
}

// NewClient builds an API-key authenticated client. Extra options are used
// by tests to point the client at a fake endpoint.
func NewClient(ctx context.Context, apiKey string, timeout time.Duration, opts ...option.ClientOption) (*Client, error) {
	all := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)

	svc, err := yt.NewService(ctx, all...)
	if err != nil {
		return nil, fmt.Errorf("failed to create youtube service: %w", err)
	}

	return &Client{svc: svc, timeout: timeout}, nil
}

// SearchAndEnrich collects up to maxResults video ids published inside
// [start, end] and enriches them with snippet and statistics data.
// A search-page failure is returned as an upstream error; a statistics
// batch failure is logged and skipped, degrading the result set.
func (c *Client) SearchAndEnrich(ctx context.Context, query, start, end string, maxResults int64) ([]video.Record, error) {
	query = strings.TrimPrefix(query, "#")
	if strings.TrimSpace(query) == "" {
		return nil, video.ErrEmptyQuery
	}

	ids, err := c.collectIDs(ctx, query, start, end, maxResults)
	if err != nil {
		return nil, err
	}

	return c.enrich(ctx, ids, strings.ToLower(query)), nil
}

// collectIDs pages through the search endpoint with a continuation token
// until maxResults ids are gathered or the provider reports no next page.
func (c *Client) collectIDs(ctx context.Context, query, start, end string, maxResults int64) ([]string, error) {
	var ids []string
	pageToken := ""

	for {
		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		call := c.svc.Search.List([]string{"snippet"}).
			Q(query).
			Type("video").
			MaxResults(pageSize).
			PublishedAfter(start + "T00:00:00Z").
			PublishedBefore(end + "T23:59:59Z")
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		resp, err := call.Context(callCtx).Do()
		cancel()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", video.ErrUpstream, err)
		}

		for _, item := range resp.Items {
			if item.Id == nil || item.Id.VideoId == "" {
				continue
			}
			ids = append(ids, item.Id.VideoId)
			if int64(len(ids)) >= maxResults {
				break
			}
		}

		if int64(len(ids)) >= maxResults || resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return ids, nil
}

// enrich resolves statistics for the collected ids in batches. Duplicate
// ids across batches are dropped; the first occurrence wins.
func (c *Client) enrich(ctx context.Context, ids []string, keywords string) []video.Record {
	records := make([]video.Record, 0, len(ids))
	seen := make(map[string]bool, len(ids))

	for i := 0; i < len(ids); i += batchSize {
		end := i + batchSize
		if end > len(ids) {
			end = len(ids)
		}

		callCtx, cancel := context.WithTimeout(ctx, c.timeout)
		resp, err := c.svc.Videos.List([]string{"snippet", "statistics"}).
			Id(ids[i:end]...).
			Context(callCtx).
			Do()
		cancel()
		if err != nil {
			log.Warn().Err(err).
				Int("batch_start", i).
				Int("batch_size", end-i).
				Msg("[YOUTUBE] Statistics batch failed, skipping")
			continue
		}

		for _, item := range resp.Items {
			if seen[item.Id] {
				continue
			}
			seen[item.Id] = true
			records = append(records, buildRecord(item, keywords))
		}
	}

	return records
}

func buildRecord(item *yt.Video, keywords string) video.Record {
	rec := video.Record{
		VideoID:  item.Id,
		URL:      "https://youtu.be/" + item.Id,
		Platform: video.PlatformYouTube,
		Keywords: keywords,
	}

	if item.Snippet != nil {
		rec.Title = utils.RepairUTF8(item.Snippet.Title)
		rec.Channel = utils.RepairUTF8(item.Snippet.ChannelTitle)
		rec.Published = video.NormalizeDate(item.Snippet.PublishedAt)
	} else {
		rec.Published = video.SentinelDate
	}

	// Counts default to 0 when the provider omits statistics.
	if item.Statistics != nil {
		rec.Views = int64(item.Statistics.ViewCount)
		rec.Likes = int64(item.Statistics.LikeCount)
		rec.Comments = int64(item.Statistics.CommentCount)
	}

	return rec
}
