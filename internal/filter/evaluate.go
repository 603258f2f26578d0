// Copyright 2026 The hubproxy Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package filter

import (
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/traylinx/hubproxy/internal/catalog"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindBool
	kindInt
	kindList
)

// fieldValue is the closed variant a field accessor yields, so operator
// dispatch over field types is exhaustive instead of duck-typed.
type fieldValue struct {
	kind fieldKind
	str  string
	b    bool
	n    int64
	list []string
}

func stringVal(s string) fieldValue { return fieldValue{kind: kindString, str: s} }
func boolVal(b bool) fieldValue     { return fieldValue{kind: kindBool, b: b} }
func intVal(n int64) fieldValue     { return fieldValue{kind: kindInt, n: n} }
func listVal(l []string) fieldValue { return fieldValue{kind: kindList, list: l} }

// fieldAccessors maps filter field names to typed accessors over a catalog
// record. The second return reports whether the record carries a value for
// the field at all.
var fieldAccessors = map[string]func(catalog.Model) (fieldValue, bool){
	"id":         func(m catalog.Model) (fieldValue, bool) { return stringVal(m.ID), true },
	"name":       func(m catalog.Model) (fieldValue, bool) { return stringVal(m.Name), true },
	"visibility": func(m catalog.Model) (fieldValue, bool) { return stringVal(m.Visibility), true },
	"gated":      func(m catalog.Model) (fieldValue, bool) { return boolVal(m.Gated), true },
	"cached":     func(m catalog.Model) (fieldValue, bool) { return boolVal(m.Cached), true },
	"tags":       func(m catalog.Model) (fieldValue, bool) { return listVal(m.Tags), true },
	"downloads":  func(m catalog.Model) (fieldValue, bool) { return intVal(m.Downloads), true },
	"likes":      func(m catalog.Model) (fieldValue, bool) { return intVal(m.Likes), true },
	"last_modified": func(m catalog.Model) (fieldValue, bool) {
		return stringVal(m.LastModified), m.LastModified != ""
	},
}

// Apply returns the subset of models matching all conditions (AND).
// An empty condition list keeps every record.
func Apply(models []catalog.Model, conditions []Condition) []catalog.Model {
	if len(conditions) == 0 {
		return models
	}

	result := models
	for _, c := range conditions {
		var kept []catalog.Model
		for _, m := range result {
			if Matches(m, c) {
				kept = append(kept, m)
			}
		}
		result = kept
	}

	log.WithField("conditions", len(conditions)).Debugf("Filter applied: %d -> %d models", len(models), len(result))
	if result == nil {
		result = []catalog.Model{}
	}
	return result
}

// Matches reports whether a single record satisfies a single condition.
// A missing or unknown field matches only NE: "absent" is trivially not
// equal to anything.
func Matches(m catalog.Model, c Condition) bool {
	accessor, known := fieldAccessors[c.Field]
	if !known {
		return c.Op == OpNE
	}
	v, present := accessor(m)
	if !present {
		return c.Op == OpNE
	}

	switch c.Op {
	case OpEQ:
		return equalValue(v, c.Value)
	case OpNE:
		return !equalValue(v, c.Value)
	case OpLike:
		return strings.Contains(strings.ToLower(stringForm(v)), strings.ToLower(c.Value))
	case OpIn:
		if v.kind != kindList {
			return false
		}
		for _, elem := range v.list {
			if strings.EqualFold(elem, c.Value) {
				return true
			}
		}
		return false
	}

	return false
}

// equalValue compares a typed field value against a filter string.
// Booleans compare by their case-insensitive "true"/"false" form, integers
// numerically when the filter value parses as an integer, everything else as
// case-insensitive strings.
func equalValue(v fieldValue, filterValue string) bool {
	switch v.kind {
	case kindBool:
		return strconv.FormatBool(v.b) == strings.ToLower(filterValue)
	case kindInt:
		n, err := strconv.ParseInt(filterValue, 10, 64)
		if err != nil {
			return false
		}
		return v.n == n
	default:
		return strings.EqualFold(stringForm(v), filterValue)
	}
}

// stringForm renders a field value for substring and string comparisons.
func stringForm(v fieldValue) string {
	switch v.kind {
	case kindString:
		return v.str
	case kindBool:
		return strconv.FormatBool(v.b)
	case kindInt:
		return strconv.FormatInt(v.n, 10)
	case kindList:
		return strings.Join(v.list, ",")
	}
	return ""
}
