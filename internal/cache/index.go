// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cache indexes the local model cache directory. The cache uses the
// hub layout: each downloaded repository lives in a directory named
// "models--<org>--<name>", derived from the repository ID by replacing "/"
// with "--".
//
// The transform is not injective for IDs that legitimately contain "--"
// ("a/b--c" and "a--b/c" share a directory name). The upstream tooling has
// the same ambiguity; the index does not attempt to resolve it.
package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// repoDirPrefix marks model repository directories in the cache root.
const repoDirPrefix = "models--"

// RepoDirName derives the cache directory name for a repository ID.
func RepoDirName(id string) string {
	return repoDirPrefix + strings.ReplaceAll(id, "/", "--")
}

// RepoID recovers the repository ID from a cache directory name. The second
// return is false when the name does not carry the repository prefix.
func RepoID(dir string) (string, bool) {
	if !strings.HasPrefix(dir, repoDirPrefix) {
		return "", false
	}
	return strings.Replace(strings.TrimPrefix(dir, repoDirPrefix), "--", "/", 1), true
}

// Index scans a cache root for locally available model repositories.
// All methods are safe to call on a missing or unreadable root: the index
// degrades to empty rather than failing the caller.
type Index struct {
	root string
}

// NewIndex creates an index over the given cache root. A leading ~ expands
// to the user's home directory. The root is not required to exist.
func NewIndex(root string) *Index {
	if len(root) > 0 && root[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			root = filepath.Join(home, root[1:])
		}
	}
	return &Index{root: root}
}

// List returns the IDs of all locally cached repositories. A missing or
// unreadable root yields an empty list; the error is logged, never returned.
func (x *Index) List(ctx context.Context) []string {
	if x.root == "" {
		log.Debug("Cache directory not configured")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return nil
	}

	entries, err := os.ReadDir(x.root)
	if err != nil {
		log.WithField("error", err).Debug("Error scanning cache directory")
		return nil
	}

	var ids []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if id, ok := RepoID(entry.Name()); ok {
			ids = append(ids, id)
		}
	}

	log.WithField("count", len(ids)).Debug("Found cached models")
	return ids
}

// Contains reports whether the repository with the given ID is cached
// locally. It checks the transformed directory name directly instead of
// scanning the whole root.
func (x *Index) Contains(ctx context.Context, id string) bool {
	if x.root == "" || id == "" {
		return false
	}
	if err := ctx.Err(); err != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(x.root, RepoDirName(id)))
	if err != nil {
		return false
	}
	return info.IsDir()
}
