// Package ordering sorts items by one or more attribute paths.
//
// Keys are written as paths with an optional "-" prefix for descending
// order. Two strategies share one entry point:
//
//   - every key in the same direction: each item's composite key is resolved
//     once and the tuples are sorted in that direction
//   - mixed directions: items are compared pairwise, key by key, stopping
//     at the first key that differs and negating descending keys
//
// Both strategies are stable: items with equal keys keep their input order.
package ordering

import (
	"slices"
	"strings"

	"github.com/roach88/filterator/internal/attrpath"
	"github.com/roach88/filterator/internal/ir"
)

// DescPrefix marks a descending key.
const DescPrefix = "-"

// Key is one sort key.
type Key struct {
	Path string
	Desc bool
}

// String renders the key the way it is written ("-age", "name").
func (k Key) String() string {
	if k.Desc {
		return DescPrefix + k.Path
	}
	return k.Path
}

// ParseKeys converts written keys into Keys.
func ParseKeys(raw []string) ([]Key, error) {
	keys := make([]Key, 0, len(raw))
	for _, r := range raw {
		k := Key{Path: r}
		if rest, ok := strings.CutPrefix(r, DescPrefix); ok {
			k = Key{Path: rest, Desc: true}
		}
		if _, err := attrpath.Split(k.Path); err != nil {
			return nil, ir.NewInvalidPathError(r, "invalid order key")
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// Uniform reports whether all keys share one direction.
// An empty key list is uniform.
func Uniform(keys []Key) bool {
	for _, k := range keys[min(1, len(keys)):] {
		if k.Desc != keys[0].Desc {
			return false
		}
	}
	return true
}

// Sort returns a sorted copy of items. items is not modified.
//
// Returns the first resolution or comparison error; no partial result is
// returned. With no keys the copy keeps the input order.
func Sort[T any](items []T, keys []Key) ([]T, error) {
	if len(keys) == 0 || len(items) < 2 {
		return slices.Clone(items), nil
	}
	if Uniform(keys) {
		return sortByTuple(items, keys)
	}
	return sortPairwise(items, keys)
}

type keyed[T any] struct {
	item  T
	tuple []any
}

func sortByTuple[T any](items []T, keys []Key) ([]T, error) {
	rows := make([]keyed[T], len(items))
	for i, item := range items {
		tuple := make([]any, len(keys))
		for j, k := range keys {
			v, err := attrpath.Resolve(item, k.Path)
			if err != nil {
				return nil, err
			}
			tuple[j] = v
		}
		rows[i] = keyed[T]{item: item, tuple: tuple}
	}

	desc := keys[0].Desc
	var sortErr error
	slices.SortStableFunc(rows, func(a, b keyed[T]) int {
		if sortErr != nil {
			return 0
		}
		for j := range keys {
			c, err := ir.Compare(a.tuple[j], b.tuple[j])
			if err != nil {
				sortErr = ir.WithPath(err, keys[j].Path)
				return 0
			}
			if c != 0 {
				if desc {
					return -c
				}
				return c
			}
		}
		return 0
	})
	if sortErr != nil {
		return nil, sortErr
	}

	out := make([]T, len(rows))
	for i, r := range rows {
		out[i] = r.item
	}
	return out, nil
}

func sortPairwise[T any](items []T, keys []Key) ([]T, error) {
	// values are resolved lazily and memoized per item; later keys are only
	// resolved when earlier keys tie
	type cell struct {
		v    any
		done bool
	}
	memo := make([][]cell, len(items))
	for i := range memo {
		memo[i] = make([]cell, len(keys))
	}
	value := func(i, j int) (any, error) {
		c := &memo[i][j]
		if !c.done {
			v, err := attrpath.Resolve(items[i], keys[j].Path)
			if err != nil {
				return nil, err
			}
			c.v, c.done = v, true
		}
		return c.v, nil
	}

	idx := make([]int, len(items))
	for i := range idx {
		idx[i] = i
	}

	var sortErr error
	slices.SortStableFunc(idx, func(a, b int) int {
		if sortErr != nil {
			return 0
		}
		for j, k := range keys {
			va, err := value(a, j)
			if err != nil {
				sortErr = err
				return 0
			}
			vb, err := value(b, j)
			if err != nil {
				sortErr = err
				return 0
			}
			c, err := ir.Compare(va, vb)
			if err != nil {
				sortErr = ir.WithPath(err, k.Path)
				return 0
			}
			if c != 0 {
				if k.Desc {
					return -c
				}
				return c
			}
		}
		return 0
	})
	if sortErr != nil {
		return nil, sortErr
	}

	out := make([]T, len(idx))
	for i, n := range idx {
		out[i] = items[n]
	}
	return out, nil
}
