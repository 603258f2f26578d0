// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package catalog

// Paginate returns the slice [offset, offset+limit) of models, clamped to the
// list bounds. A limit <= 0 means everything from offset onward. Pagination is
// applied strictly after filtering; the upstream fetch limit is a separate,
// coarser cap.
func Paginate(models []Model, offset, limit int) []Model {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(models) {
		return []Model{}
	}
	end := len(models)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return models[offset:end]
}
