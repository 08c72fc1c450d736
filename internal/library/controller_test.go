// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package library

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edunex/study-engine/pkg/types"
)

// fakeFetcher scripts list and search responses and records every call.
type fakeFetcher struct {
	mu          sync.Mutex
	listCalls   int
	searchCalls int
	queries     []string

	listRecords []types.RawRecord
	listErr     error
	searchFn    func(query string) ([]types.RawRecord, error)
}

func (f *fakeFetcher) ListResources(_ context.Context) ([]types.RawRecord, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	return f.listRecords, f.listErr
}

func (f *fakeFetcher) SearchResources(_ context.Context, query string) ([]types.RawRecord, error) {
	f.mu.Lock()
	f.searchCalls++
	f.queries = append(f.queries, query)
	fn := f.searchFn
	f.mu.Unlock()
	if fn != nil {
		return fn(query)
	}
	return nil, nil
}

func (f *fakeFetcher) counts() (list, search int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls, f.searchCalls
}

func record(id int64, title string) types.RawRecord {
	return types.RawRecord{ID: id, Title: title}
}

func titles(resources []types.Resource) []string {
	out := make([]string, len(resources))
	for i, r := range resources {
		out[i] = r.Title
	}
	return out
}

func TestSetQueryShortQueriesListAll(t *testing.T) {
	f := &fakeFetcher{listRecords: []types.RawRecord{record(1, "a")}}
	c := NewController(f, "dana", nil)

	for _, q := range []string{"", "x", "  x  ", " "} {
		require.NoError(t, c.SetQuery(context.Background(), q))
	}

	list, search := f.counts()
	assert.Equal(t, 4, list, "queries under two characters must list, not search")
	assert.Equal(t, 0, search)
	assert.Equal(t, ModeListing, c.Mode())
}

func TestSetQueryLongQueriesSearch(t *testing.T) {
	f := &fakeFetcher{
		searchFn: func(string) ([]types.RawRecord, error) {
			return []types.RawRecord{record(2, "match")}, nil
		},
	}
	c := NewController(f, "dana", nil)

	require.NoError(t, c.SetQuery(context.Background(), "  graph  "))

	list, search := f.counts()
	assert.Equal(t, 0, list)
	assert.Equal(t, 1, search)
	assert.Equal(t, []string{"graph"}, f.queries, "query is trimmed before sending")
	assert.Equal(t, ModeSearching, c.Mode())
	assert.Equal(t, []string{"match"}, titles(c.Resources()))
}

func TestSetQueryIssueOrderWins(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	f := &fakeFetcher{
		searchFn: func(query string) ([]types.RawRecord, error) {
			if query == "first" {
				close(entered)
				<-release
				return []types.RawRecord{record(1, "stale")}, nil
			}
			return []types.RawRecord{record(2, "fresh")}, nil
		},
	}
	c := NewController(f, "dana", nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		// Returns nil: a discarded stale response is not an error.
		assert.NoError(t, c.SetQuery(context.Background(), "first"))
	}()

	<-entered // request "first" has taken its sequence number
	require.NoError(t, c.SetQuery(context.Background(), "second"))
	close(release) // now let the earlier response arrive late
	wg.Wait()

	assert.Equal(t, []string{"fresh"}, titles(c.Resources()),
		"a late-arriving earlier response must never replace a later one")
}

func TestSetQueryFailureKeepsList(t *testing.T) {
	f := &fakeFetcher{listRecords: []types.RawRecord{record(1, "kept")}}
	c := NewController(f, "dana", nil)
	require.NoError(t, c.SetQuery(context.Background(), ""))

	f.searchFn = func(string) ([]types.RawRecord, error) {
		return nil, fmt.Errorf("backend exploded")
	}

	err := c.SetQuery(context.Background(), "boom")
	require.Error(t, err)
	assert.Equal(t, []string{"kept"}, titles(c.Resources()), "list unchanged on failure")
	assert.Equal(t, ModeListing, c.Mode(), "mode reverts to its pre-request value")
}

func TestPrependThenRefetchReplaces(t *testing.T) {
	f := &fakeFetcher{listRecords: []types.RawRecord{record(5, "authoritative")}}
	c := NewController(f, "dana", nil)

	c.Prepend(types.Resource{ID: "tmp", Title: "optimistic", Category: types.CategoryText})
	assert.Equal(t, []string{"optimistic"}, titles(c.Resources()))

	fromCache, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, fromCache)
	assert.Equal(t, []string{"authoritative"}, titles(c.Resources()))
}

func TestLoadFailureRetainsOptimisticEntry(t *testing.T) {
	f := &fakeFetcher{listErr: fmt.Errorf("down")}
	c := NewController(f, "dana", nil)

	c.Prepend(types.Resource{ID: "tmp", Title: "optimistic"})

	_, err := c.Load(context.Background())
	require.Error(t, err)
	assert.Equal(t, []string{"optimistic"}, titles(c.Resources()),
		"a failed refetch keeps the optimistic entry rather than rolling it back")
}

func TestLoadFallsBackToCache(t *testing.T) {
	cache, err := OpenCache(types.LibraryConfig{CacheDir: t.TempDir()})
	require.NoError(t, err)
	defer cache.Close()

	// A healthy controller populates the cache.
	healthy := NewController(&fakeFetcher{listRecords: []types.RawRecord{record(1, "saved")}}, "dana", cache)
	_, err = healthy.Load(context.Background())
	require.NoError(t, err)

	// A controller with a dead network serves the cached list, but still
	// reports the failure.
	offline := NewController(&fakeFetcher{listErr: fmt.Errorf("no route to host")}, "dana", cache)
	fromCache, err := offline.Load(context.Background())
	require.Error(t, err)
	assert.True(t, fromCache)
	assert.Equal(t, []string{"saved"}, titles(offline.Resources()))
}

// fakeDeleter fails for ids in failIDs and records successful deletions.
type fakeDeleter struct {
	failIDs map[string]error
	deleted []string
}

func (d *fakeDeleter) DeleteResource(_ context.Context, id string) error {
	if err := d.failIDs[id]; err != nil {
		return err
	}
	d.deleted = append(d.deleted, id)
	return nil
}

func TestRemove(t *testing.T) {
	f := &fakeFetcher{listRecords: []types.RawRecord{record(1, "a"), record(2, "b")}}
	c := NewController(f, "dana", nil)
	require.NoError(t, c.SetQuery(context.Background(), ""))

	d := &fakeDeleter{}
	require.NoError(t, c.Remove(context.Background(), d, "1"))

	assert.Equal(t, []string{"1"}, d.deleted)
	assert.Equal(t, []string{"b"}, titles(c.Resources()))
}

func TestRemoveFailureKeepsList(t *testing.T) {
	f := &fakeFetcher{listRecords: []types.RawRecord{record(1, "a")}}
	c := NewController(f, "dana", nil)
	require.NoError(t, c.SetQuery(context.Background(), ""))

	d := &fakeDeleter{failIDs: map[string]error{"1": fmt.Errorf("not yours")}}
	require.Error(t, c.Remove(context.Background(), d, "1"))
	assert.Equal(t, []string{"a"}, titles(c.Resources()))
}
