// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package library owns the client-held resource list: fetching and
// searching it against the remote store, keeping response application in
// issue order, and persisting the last good list to a local SQLite cache
// so a dead network still shows something.
package library

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/edunex/study-engine/internal/classify"
	"github.com/edunex/study-engine/pkg/types"
)

// Mode reports whether the list currently shows everything or a filtered
// search result.
type Mode string

const (
	ModeListing   Mode = "listing"
	ModeSearching Mode = "searching"
)

// searchMinLength is the query length below which the controller lists
// everything instead of searching. Mirrors the server's minimum, which
// rejects shorter queries outright.
const searchMinLength = 2

// Fetcher is the remote-store surface the controller consumes.
type Fetcher interface {
	ListResources(ctx context.Context) ([]types.RawRecord, error)
	SearchResources(ctx context.Context, query string) ([]types.RawRecord, error)
}

// Deleter removes a resource from the remote store.
type Deleter interface {
	DeleteResource(ctx context.Context, id string) error
}

// Controller holds the canonical resource list and the search state. All
// methods are safe for concurrent use; overlapping requests are resolved by
// issue order, so a slow early response can never clobber a later one.
type Controller struct {
	mu       sync.Mutex
	fetch    Fetcher
	cache    *Cache // optional
	uploader string

	resources []types.Resource
	query     string
	mode      Mode

	issued  uint64 // sequence of the most recently issued request
	applied uint64 // sequence of the last response applied to the list
}

// NewController builds a Controller. cache may be nil to disable the
// offline cache. uploader is stamped on normalized resources.
func NewController(fetch Fetcher, uploader string, cache *Cache) *Controller {
	return &Controller{
		fetch:    fetch,
		cache:    cache,
		uploader: uploader,
		mode:     ModeListing,
	}
}

// Resources returns a copy of the current list.
func (c *Controller) Resources() []types.Resource {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]types.Resource, len(c.resources))
	copy(out, c.resources)
	return out
}

// Mode returns the current display mode.
func (c *Controller) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// Query returns the current query string.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// SetQuery updates the query and refreshes the list: queries shorter than
// two characters after trimming fall back to listing everything, longer
// ones issue a filtered search.
//
// Only the response to the most recently issued request may update the
// list. Each request takes a sequence number at issue time; a response is
// discarded when a later-issued response has already been applied, so the
// winner is decided by issue order, not arrival order. On failure the list
// is left untouched and the error is returned for the caller to surface;
// the mode reverts unless a later request has since taken over.
func (c *Controller) SetQuery(ctx context.Context, query string) error {
	trimmed := strings.TrimSpace(query)
	searching := len(trimmed) >= searchMinLength

	c.mu.Lock()
	c.query = query
	prevMode := c.mode
	if searching {
		c.mode = ModeSearching
	} else {
		c.mode = ModeListing
	}
	c.issued++
	seq := c.issued
	c.mu.Unlock()

	var (
		records []types.RawRecord
		err     error
	)
	if searching {
		records, err = c.fetch.SearchResources(ctx, trimmed)
	} else {
		records, err = c.fetch.ListResources(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.applied {
		// A later-issued request already resolved; this response is
		// stale whether it succeeded or not.
		return nil
	}
	if err != nil {
		if c.issued == seq {
			c.mode = prevMode
		}
		return err
	}

	c.resources = classify.Normalize(records, c.uploader)
	c.applied = seq

	// Only the unfiltered list is worth caching; search results are a
	// subset and would lie about what exists.
	if !searching && c.cache != nil {
		if cerr := c.cache.ReplaceAll(ctx, c.resources); cerr != nil {
			return fmt.Errorf("caching resource list: %w", cerr)
		}
	}
	return nil
}

// Load fetches the unfiltered list. When the fetch fails and the list is
// still empty, it falls back to the cached last good list; fromCache
// reports that, and the fetch error is still returned so the caller can
// warn that the data may be stale.
func (c *Controller) Load(ctx context.Context) (fromCache bool, err error) {
	err = c.SetQuery(ctx, "")
	if err == nil {
		return false, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cache == nil || len(c.resources) > 0 {
		return false, err
	}

	cached, cerr := c.cache.Resources(ctx)
	if cerr != nil || len(cached) == 0 {
		return false, err
	}
	c.resources = cached
	return true, err
}

// Prepend inserts a resource at the head of the list without consuming a
// sequence number, so a later authoritative refetch replaces it. This is
// the optimistic-insert half of the submit flow.
func (c *Controller) Prepend(res types.Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resources = append([]types.Resource{res}, c.resources...)
}

// Remove deletes a resource from the remote store and, on success, prunes
// it from the local list and the cache.
func (c *Controller) Remove(ctx context.Context, d Deleter, id string) error {
	if err := d.DeleteResource(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	kept := c.resources[:0:0]
	for _, r := range c.resources {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	c.resources = kept
	c.mu.Unlock()

	if c.cache != nil {
		if err := c.cache.Delete(ctx, id); err != nil {
			return fmt.Errorf("pruning cache: %w", err)
		}
	}
	return nil
}

// OfflineSearch queries the cached list with full-text search. It only
// sees resources from the last successful full fetch.
func (c *Controller) OfflineSearch(ctx context.Context, query string) ([]types.Resource, error) {
	if c.cache == nil {
		return nil, fmt.Errorf("offline search requires the cache, which is disabled")
	}
	return c.cache.Search(ctx, query, 0)
}
