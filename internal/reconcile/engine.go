// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package reconcile merges the local cache inventory with the upstream model
// catalog into one de-duplicated, filtered, paginated result set.
//
// Failure semantics: an upstream catalog failure aborts the whole operation;
// a cache failure degrades to "nothing cached" and the operation continues.
package reconcile

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/traylinx/hubproxy/internal/catalog"
	"github.com/traylinx/hubproxy/internal/filter"
)

// DefaultRemoteLimit bounds upstream listing calls when the caller gives no limit.
const DefaultRemoteLimit = 100

// CacheIndex lists locally available model repositories. Implementations
// degrade to empty on failure instead of returning errors.
type CacheIndex interface {
	List(ctx context.Context) []string
	Contains(ctx context.Context, id string) bool
}

// HubCatalog is the upstream model catalog. Failures propagate.
type HubCatalog interface {
	Search(ctx context.Context, limit int, params filter.HubParams) ([]catalog.Model, error)
	Get(ctx context.Context, id string) (catalog.Model, error)
}

// Engine reconciles the two model sources. It holds no per-request state;
// every query builds fresh data from the two fetched snapshots.
type Engine struct {
	index CacheIndex
	hub   HubCatalog
}

// NewEngine creates a reconciliation engine over the given collaborators.
func NewEngine(index CacheIndex, hub HubCatalog) *Engine {
	return &Engine{index: index, hub: hub}
}

// Query parses the filter string, fetches the matching records from the
// cache and the upstream catalog, reconciles them, applies the conditions
// the upstream API could not evaluate, and paginates.
//
// Three mutually exclusive fetch strategies, in priority order:
//
//  1. cached_only: cache only, the upstream catalog is never invoked.
//  2. no conditions: cache first; when it holds anything, that inventory is
//     returned without an upstream call. An empty cache falls back to the
//     upstream listing.
//  3. at least one condition: cache scan and upstream search run
//     concurrently; the merge keeps every local record and every upstream
//     record whose ID is not already local.
func (e *Engine) Query(ctx context.Context, filterString string, limit, offset int) ([]catalog.Model, error) {
	f := filter.Parse(filterString)

	remoteLimit := limit
	if remoteLimit <= 0 {
		remoteLimit = DefaultRemoteLimit
	}

	var records []catalog.Model
	localConditions := f.LocalConditions()

	switch {
	case f.CachedOnly:
		records = e.localModels(ctx)
		// Nothing is pushed upstream here, so conditions the classifier
		// would hand to the upstream search are evaluated locally instead
		// of being dropped.
		localConditions = f.Conditions

	case !f.HasConditions():
		records = e.localModels(ctx)
		if len(records) == 0 {
			remote, err := e.hub.Search(ctx, remoteLimit, filter.HubParams{})
			if err != nil {
				return nil, fmt.Errorf("upstream search failed: %w", err)
			}
			records = remote
		}

	default:
		merged, err := e.fetchAndMerge(ctx, f, remoteLimit)
		if err != nil {
			return nil, err
		}
		records = merged
	}

	records = filter.Apply(records, localConditions)
	page := catalog.Paginate(records, offset, limit)

	log.WithFields(log.Fields{
		"total": len(records),
		"page":  len(page),
	}).Debug("Reconciled model inventory")
	return page, nil
}

// GetOne resolves a single model by ID. A cache hit answers without an
// upstream call; the cache alone cannot vouch for visibility, gating, or
// tags, so the record carries neutral defaults.
func (e *Engine) GetOne(ctx context.Context, id string) (catalog.Model, error) {
	if e.index.Contains(ctx, id) {
		log.WithField("repo_id", id).Debug("Model found in cache, skipping upstream call")
		return catalog.CachedModel(id), nil
	}

	model, err := e.hub.Get(ctx, id)
	if err != nil {
		return catalog.Model{}, fmt.Errorf("upstream lookup failed: %w", err)
	}
	return model, nil
}

// fetchAndMerge runs the fan-out/fan-in of strategy 3: both source fetches
// start together and reconciliation proceeds only once both resolve. The
// merge prefers the cache-confirmed record when both sources report an ID.
func (e *Engine) fetchAndMerge(ctx context.Context, f *filter.Filter, remoteLimit int) ([]catalog.Model, error) {
	var (
		local     []catalog.Model
		remote    []catalog.Model
		remoteErr error
	)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		local = e.localModels(ctx)
	}()
	go func() {
		defer wg.Done()
		remote, remoteErr = e.hub.Search(ctx, remoteLimit, f.HubParams())
	}()
	wg.Wait()

	if remoteErr != nil {
		return nil, fmt.Errorf("upstream search failed: %w", remoteErr)
	}

	seen := make(map[string]struct{}, len(local))
	for _, m := range local {
		seen[m.ID] = struct{}{}
	}

	merged := local
	for _, m := range remote {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		merged = append(merged, m)
	}
	return merged, nil
}

// localModels turns the cache inventory into minimal cached records.
func (e *Engine) localModels(ctx context.Context) []catalog.Model {
	ids := e.index.List(ctx)
	models := make([]catalog.Model, 0, len(ids))
	for _, id := range ids {
		models = append(models, catalog.CachedModel(id))
	}
	return models
}
