package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"videodash-backend/internal/domains/video"
	"videodash-backend/pkg/cache"

	"github.com/rs/zerolog/log"
)

type searchService struct {
	searcher video.Searcher
	repo     video.Repository

	// cache is optional; nil disables response caching entirely.
	cache    cache.Cache
	cacheTTL time.Duration
}

func NewSearchService(searcher video.Searcher, repo video.Repository, c cache.Cache, cacheTTL time.Duration) video.SearchService {
	return &searchService{
		searcher: searcher,
		repo:     repo,
		cache:    c,
		cacheTTL: cacheTTL,
	}
}

// Search is the API-only path behind /search-videos.
func (s *searchService) Search(ctx context.Context, req video.SearchRequest) (*video.SearchResponse, error) {
	videos, err := s.fetchYouTube(ctx, req)
	if err != nil {
		return nil, err
	}
	return &video.SearchResponse{Videos: videos, Total: len(videos)}, nil
}

// Combined merges the selected sources. API results come first, manual
// records after, then the whole list is stable-sorted newest-first.
// Upstream failures propagate (gateway policy) rather than degrading to
// an empty result.
func (s *searchService) Combined(ctx context.Context, req video.SearchRequest) (*video.SearchResponse, error) {
	combined := make([]video.Record, 0, req.MaxResults)

	if req.Source == video.SourceAll || req.Source == video.SourceYouTube {
		videos, err := s.fetchYouTube(ctx, req)
		if err != nil {
			return nil, err
		}
		combined = append(combined, videos...)
	}

	if req.Source == video.SourceAll || req.Source == video.SourceManual {
		manual, err := s.filteredManual(ctx, req)
		if err != nil {
			return nil, err
		}
		combined = append(combined, manual...)
	}

	sort.SliceStable(combined, func(i, j int) bool {
		return combined[i].Published > combined[j].Published
	})

	return &video.SearchResponse{Videos: combined, Total: len(combined)}, nil
}

// filteredManual reads the Manual Record Store and applies the publish
// window, the keyword substring match, and the documented field defaults.
func (s *searchService) filteredManual(ctx context.Context, req video.SearchRequest) ([]video.Record, error) {
	records, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(strings.TrimPrefix(req.Query, "#"))

	filtered := make([]video.Record, 0, len(records))
	for _, rec := range records {
		rec.ApplyManualDefaults()

		if !rec.MatchesWindow(req.Start, req.End) {
			continue
		}
		if !rec.MatchesKeyword(query) {
			continue
		}
		filtered = append(filtered, rec)
	}

	return filtered, nil
}

// fetchYouTube delegates to the external API client, fronted by the
// optional response cache. Cache failures never fail the request.
func (s *searchService) fetchYouTube(ctx context.Context, req video.SearchRequest) ([]video.Record, error) {
	key := s.cacheKey(req)

	if s.cache != nil {
		var cached []video.Record
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("[SEARCH] Cache read failed")
		} else if found {
			return cached, nil
		}
	}

	videos, err := s.searcher.SearchAndEnrich(ctx, req.Query, req.Start, req.End, req.MaxResults)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, videos, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("[SEARCH] Cache write failed")
		}
	}

	return videos, nil
}

func (s *searchService) cacheKey(req video.SearchRequest) string {
	return fmt.Sprintf("yt:search:%s:%s:%s:%d",
		strings.ToLower(strings.TrimPrefix(req.Query, "#")),
		req.Start,
		req.End,
		req.MaxResults,
	)
}
