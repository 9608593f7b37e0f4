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
	"github.com/vireodb/vireo/heap"
)

// runPruner decides, for bounded queries, whether a freshly sorted
// run can still contribute rows to the first bound rows of the
// final ordering. It tracks only the summaries of retained runs in
// a max-heap keyed by each run's greatest row; runs are judged at
// admission time and never re-examined or evicted afterwards.
type runPruner struct {
	ord   *ordering
	runs  []*run // heap: runs[0] has the greatest last row
	rows  int    // rows across retained runs
	bound int    // offset+limit of the query
}

func newRunPruner(ord *ordering, bound int) *runPruner {
	return &runPruner{ord: ord, bound: bound}
}

// admit reports whether r must be retained. A run is rejected only
// when at least bound retained rows all sort strictly before its
// least row; rows of such a run can never reach the result window.
func (p *runPruner) admit(r *run) bool {
	if p.rows < p.bound {
		p.keep(r)
		return true
	}
	worst := p.runs[0]
	if p.ord.compareRows(r.summary, 0, worst.summary, 1) > 0 {
		return false
	}
	p.keep(r)
	return true
}

func (p *runPruner) keep(r *run) {
	p.rows += r.rows
	heap.Push(&p.runs, r, p.after)
}

func (p *runPruner) retained() int { return len(p.runs) }

func (p *runPruner) after(a, b *run) bool {
	return p.ord.compareRows(a.summary, 1, b.summary, 1) > 0
}
