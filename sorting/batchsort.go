// Copyright 2026 Vireo Labs, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package sorting

import (
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/vireodb/vireo/heap"
	"github.com/vireodb/vireo/vector"
)

// BatchSorter turns single unordered batches into intra-sorted
// batches. With a nonzero bound (offset+limit of the enclosing
// query) only the first bound rows of the ordering are produced,
// via bounded heap selection instead of a total sort.
type BatchSorter struct {
	keys    []Key
	project []ColumnExpr
	bound   int
	ord     ordering
}

// NewBatchSorter constructs a sorter over keys. project, when
// non-empty, re-projects each batch through the given expressions
// before key resolution. bound <= 0 means unbounded.
func NewBatchSorter(keys []Key, project []ColumnExpr, bound int) *BatchSorter {
	if len(keys) == 0 {
		panic("sorting: batch sorter with no keys")
	}
	return &BatchSorter{keys: normalizeKeys(keys), project: project, bound: bound}
}

func normalizeKeys(keys []Key) []Key {
	out := slices.Clone(keys)
	for i := range out {
		if out[i].Direction == 0 {
			out[i].Direction = Ascending
		}
	}
	return out
}

// Sort returns a new batch holding the rows of b in key order.
// b itself is left untouched: expressions run against a projected
// shell, so a failed evaluation commits nothing. When the sorter
// has a bound, the result keeps only the first bound rows.
func (s *BatchSorter) Sort(b *vector.Batch) (*vector.Batch, error) {
	work := shell(b)
	if len(s.project) > 0 {
		ids := make([]int, len(s.project))
		for i, e := range s.project {
			id, err := e.Eval(work)
			if err != nil {
				return nil, fmt.Errorf("sorting: projection %d: %w", i, err)
			}
			ids[i] = id
		}
		work = work.Project(ids...)
	}
	cols := make([]int, len(s.keys))
	for i := range s.keys {
		id, err := s.keys[i].Expr.Eval(work)
		if err != nil {
			return nil, fmt.Errorf("sorting: key %d: %w", i, err)
		}
		cols[i] = id
	}
	s.ord = ordering{keys: s.keys, cols: cols}

	out := work.CloneEmpty()
	for _, row := range s.orderRows(work) {
		out.AppendRow(work, row)
	}
	return out, nil
}

// orderRows returns the row indices of work in output order,
// truncated to the bound when one is set.
func (s *BatchSorter) orderRows(work *vector.Batch) []int {
	n := work.Rows()
	if s.bound > 0 && s.bound < n {
		return s.selectRows(work, n)
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) bool {
		return s.ord.compareRows(work, i, work, j) < 0
	})
	return order
}

// selectRows keeps the bound first rows of the ordering in a
// max-heap of row indices, then pops them back into order. Equal
// keys keep their ingestion order, same as the stable path.
func (s *BatchSorter) selectRows(work *vector.Batch, n int) []int {
	after := func(i, j int) bool {
		if rel := s.ord.compareRows(work, i, work, j); rel != 0 {
			return rel > 0
		}
		return i > j
	}
	top := make([]int, 0, s.bound)
	for i := 0; i < n; i++ {
		if len(top) < s.bound {
			heap.Push(&top, i, after)
			continue
		}
		if after(top[0], i) {
			top[0] = i
			heap.Fix(top, 0, after)
		}
	}
	order := make([]int, len(top))
	for i := len(top) - 1; i >= 0; i-- {
		order[i] = heap.Pop(&top, after)
	}
	return order
}

// shell returns a batch sharing all of b's columns, so expression
// evaluation can extend it without touching b.
func shell(b *vector.Batch) *vector.Batch {
	ids := make([]int, b.Cols())
	for i := range ids {
		ids[i] = i
	}
	return b.Project(ids...)
}
