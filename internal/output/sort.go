// Copyright © 2026 Andrés Rodríguez Cantú acantu@tec.mx
// SPDX-License-Identifier: MIT

package output

import (
	"sort"
	"strings"
)

// SortDataset sorts the result set in place per the --sort spec: a comma
// separated list of output keys, each optionally prefixed with '-' for
// descending order or '!' for case-sensitive string comparison. String
// comparisons are case-insensitive by default; numeric values compare
// numerically.
func SortDataset(resultSet []map[string]interface{}, spec string) {
	if spec == "" || len(resultSet) < 2 {
		return
	}

	type sortKey struct {
		key           string
		descending    bool
		caseSensitive bool
	}

	//nolint:prealloc
	var keys []sortKey
	for _, k := range strings.Split(spec, ",") {
		k = strings.TrimSpace(k)
		sk := sortKey{}
		for {
			if strings.HasPrefix(k, "-") {
				sk.descending = true
				k = k[1:]
				continue
			}
			if strings.HasPrefix(k, "!") {
				sk.caseSensitive = true
				k = k[1:]
				continue
			}
			break
		}
		if k == "" {
			continue
		}
		sk.key = k
		keys = append(keys, sk)
	}

	sort.SliceStable(resultSet, func(i, j int) bool {
		for _, sk := range keys {
			cmp := compareValues(resultSet[i][sk.key], resultSet[j][sk.key], sk.caseSensitive)
			if cmp == 0 {
				continue
			}
			if sk.descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// compareValues returns -1/0/1. Numbers compare numerically, everything
// else as strings. nil sorts first.
func compareValues(a, b interface{}, caseSensitive bool) int {
	if a == nil && b == nil {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if aok && bok {
		switch {
		case af < bf:
			return -1
		case af > bf:
			return 1
		default:
			return 0
		}
	}

	as := InterfaceToString(a)
	bs := InterfaceToString(b)
	if !caseSensitive {
		as = strings.ToLower(as)
		bs = strings.ToLower(bs)
	}
	return strings.Compare(as, bs)
}

func toFloat64(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
