// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package filter implements the query language of the model inventory:
// parsing of filter strings into typed conditions, classification of
// conditions into upstream-pushable versus local-only, and local evaluation
// against catalog records.
//
// Filter syntax: field:operator:value,field2:operator2:value2
//
// Operators:
//   - eq:   exact match (case-insensitive)
//   - ne:   not equal (case-insensitive)
//   - like: contains substring (case-insensitive)
//   - in:   value exists in a list field
//
// Examples:
//   - visibility:eq:public
//   - name:like:llama
//   - gated:eq:true,cached:eq:true
//   - tags:in:text-generation
//   - cached_only (special token restricting results to cached models)
//
// A bare string without any separator is shorthand for name:like:<string>.
// Conditions combine with AND semantics only.
package filter

import (
	"strings"

	log "github.com/sirupsen/logrus"
)

// Operator is a comparison operator of a filter condition.
type Operator string

// Supported filter operators.
const (
	OpEQ   Operator = "eq"
	OpNE   Operator = "ne"
	OpLike Operator = "like"
	OpIn   Operator = "in"
)

// cachedOnlyToken restricts results to locally cached models when present
// anywhere in a filter string.
const cachedOnlyToken = "cached_only"

// Condition is a single parsed filter clause. Immutable once parsed.
type Condition struct {
	Field string
	Op    Operator
	Value string
}

// Filter is the parsed form of a filter string: an ordered condition list
// plus the cached-only flag. It is built once per request and never mutated
// afterwards.
type Filter struct {
	Conditions []Condition
	CachedOnly bool
}

// HubParams is the subset of a filter expressible as upstream catalog search
// parameters. At most one search term is carried.
type HubParams struct {
	// Search maps to the upstream 'search' parameter (substring match on repo names).
	Search string
	// Author maps to the upstream 'author' parameter.
	Author string
	// Tags map to the upstream tag filter parameter; all occurrences survive.
	Tags []string
}

// Parse turns a filter string into a Filter. Malformed clauses are dropped
// with a logged warning; parsing never fails the whole request.
func Parse(s string) *Filter {
	f := &Filter{}
	s = strings.TrimSpace(s)
	if s == "" {
		return f
	}

	if strings.Contains(strings.ToLower(s), cachedOnlyToken) {
		f.CachedOnly = true
		s = stripCachedOnly(s)
		if s == "" {
			return f
		}
	}

	// Bare search term shorthand.
	if !strings.Contains(s, ":") {
		f.Conditions = append(f.Conditions, Condition{Field: "name", Op: OpLike, Value: s})
		return f
	}

	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		pieces := strings.Split(part, ":")
		if len(pieces) != 3 {
			log.Warnf("Invalid filter clause %q, expected field:operator:value", part)
			continue
		}

		op, ok := parseOperator(pieces[1])
		if !ok {
			log.Warnf("Unknown filter operator: %s", pieces[1])
			continue
		}

		f.Conditions = append(f.Conditions, Condition{
			Field: strings.ToLower(pieces[0]),
			Op:    op,
			Value: pieces[2],
		})
	}

	return f
}

// stripCachedOnly removes every cached_only token (case-insensitive) together
// with one adjacent comma separator.
func stripCachedOnly(s string) string {
	for {
		lower := strings.ToLower(s)
		idx := strings.Index(lower, cachedOnlyToken)
		if idx < 0 {
			break
		}
		end := idx + len(cachedOnlyToken)
		if end < len(s) && s[end] == ',' {
			end++
		} else if idx > 0 && s[idx-1] == ',' {
			idx--
		}
		s = s[:idx] + s[end:]
	}
	return strings.TrimSpace(strings.Trim(strings.TrimSpace(s), ","))
}

func parseOperator(s string) (Operator, bool) {
	switch Operator(strings.ToLower(s)) {
	case OpEQ:
		return OpEQ, true
	case OpNE:
		return OpNE, true
	case OpLike:
		return OpLike, true
	case OpIn:
		return OpIn, true
	}
	return "", false
}

// HasConditions reports whether the filter carries any conditions.
func (f *Filter) HasConditions() bool {
	return len(f.Conditions) > 0
}

// HubParams extracts the conditions the upstream catalog can evaluate
// server-side:
//
//   - id:like:* or name:like:* → search (first occurrence only; it is not
//     duplicated into the local conditions)
//   - tags:in:*               → tags list
//   - author:eq:*             → author (first occurrence wins)
func (f *Filter) HubParams() HubParams {
	params := HubParams{}

	for _, c := range f.Conditions {
		switch {
		case (c.Field == "id" || c.Field == "name") && c.Op == OpLike:
			if params.Search == "" {
				params.Search = c.Value
			}
		case c.Field == "tags" && c.Op == OpIn:
			params.Tags = append(params.Tags, c.Value)
		case c.Field == "author" && c.Op == OpEQ:
			if params.Author == "" {
				params.Author = c.Value
			}
		}
	}

	return params
}

// LocalConditions returns the conditions that must be evaluated locally
// because the upstream search API cannot express them, preserving original
// order. A LIKE on id/name after the first stays local; everything not
// extracted by HubParams is local.
func (f *Filter) LocalConditions() []Condition {
	var local []Condition
	searchTaken := false

	for _, c := range f.Conditions {
		switch {
		case (c.Field == "id" || c.Field == "name") && c.Op == OpLike:
			if searchTaken {
				local = append(local, c)
			}
			searchTaken = true
		case c.Field == "tags" && c.Op == OpIn:
			// Pushed upstream, all occurrences.
		case c.Field == "author" && c.Op == OpEQ:
			// First occurrence is pushed upstream; repeats are redundant with
			// it and the merged records carry no author field to re-check.
		default:
			local = append(local, c)
		}
	}

	return local
}
