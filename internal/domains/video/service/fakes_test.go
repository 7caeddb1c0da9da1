package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"videodash-backend/internal/domains/video"
)

// fakeRepository is an in-memory Manual Record Store. It mimics the
// Postgres implementation by assigning sequence ids on insert and
// carrying them back on reads via VideoID.
type fakeRepository struct {
	mu           sync.Mutex
	records      []video.Record
	replaceCalls int
	getCalls     int
	failGet      error
	failReplace  error
}

func (f *fakeRepository) ReplaceAll(_ context.Context, records []video.Record) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.replaceCalls++
	if f.failReplace != nil {
		f.records = nil // delete happened, insert failed
		return 0, f.failReplace
	}

	f.records = make([]video.Record, len(records))
	copy(f.records, records)
	return int64(len(records)), nil
}

func (f *fakeRepository) GetAll(_ context.Context) ([]video.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.getCalls++
	if f.failGet != nil {
		return nil, f.failGet
	}

	out := make([]video.Record, len(f.records))
	for i, rec := range f.records {
		rec.VideoID = strconv.Itoa(i + 1)
		rec.Platform = video.PlatformManual
		out[i] = rec
	}
	return out, nil
}

// fakeSearcher is a canned external API client.
type fakeSearcher struct {
	records []video.Record
	err     error
	calls   int
}

func (f *fakeSearcher) SearchAndEnrich(_ context.Context, query, start, end string, maxResults int64) ([]video.Record, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([]video.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

// memCache implements pkg/cache.Cache over a plain map.
type memCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newMemCache() *memCache {
	return &memCache{items: make(map[string][]byte)}
}

func (m *memCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok := m.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(data, dest)
}

func (m *memCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = data
	return nil
}

func (m *memCache) Ping(context.Context) error { return nil }
func (m *memCache) Close() error               { return nil }
