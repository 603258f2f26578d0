// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package catalog defines the model record shared by the cache index, the
// upstream hub client, and the reconciliation engine. Records are value
// objects: identity is the catalog ID alone and a record is never mutated
// after construction.
package catalog

import "strings"

// Visibility values for a model repository.
const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

// Model is a single entry of the reconciled model inventory.
type Model struct {
	// ID is the canonical catalog identifier, e.g. "meta-llama/Llama-3.1-8B-Instruct".
	ID string `json:"id"`
	// Name is the repository name without the owner prefix.
	Name string `json:"name"`
	// Visibility is "public" or "private".
	Visibility string `json:"visibility"`
	// Gated reports whether access to the model requires approval.
	Gated bool `json:"gated"`
	// Tags lists the repository tags.
	Tags []string `json:"tags"`
	// Cached reports whether the model is present in the local cache.
	Cached bool `json:"cached"`
	// LastModified is the upstream modification timestamp, when known.
	LastModified string `json:"last_modified,omitempty"`
	// Downloads is the upstream download counter, when known.
	Downloads int64 `json:"downloads,omitempty"`
	// Likes is the upstream like counter, when known.
	Likes int64 `json:"likes,omitempty"`
}

// NameFromID derives the short model name from a catalog ID. IDs without an
// owner prefix are their own name.
func NameFromID(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}

// CachedModel builds the minimal record the cache index can vouch for.
// The cache knows only that the artifact exists locally; visibility, gating,
// and tags are unknown there and take neutral defaults.
func CachedModel(id string) Model {
	return Model{
		ID:         id,
		Name:       NameFromID(id),
		Visibility: VisibilityPublic,
		Gated:      false,
		Tags:       []string{},
		Cached:     true,
	}
}
