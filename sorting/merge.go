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
	"github.com/vireodb/vireo/ints"
	"github.com/vireodb/vireo/vector"
)

// cursor marks the current row of one run during the merge. Runs
// live in the merge state's arena; a cursor holds an index into it,
// never a pointer.
type cursor struct {
	run int
	row int
}

// advance moves the cursor to the next row of r.
func (c *cursor) advance(r *run) {
	if c.row+1 >= r.rows {
		panic("sorting: cursor advanced past the end of its run")
	}
	c.row++
}

// mergeState owns the retained runs, their cursors, the merge
// queue, and the offset/limit accounting of the output stream.
type mergeState struct {
	ord     ordering
	runs    []*run
	cursors []cursor
	queue   []int // cursor indices, least current row on top

	batch    int // rows per output batch
	skip     int // remaining rows of OFFSET
	remain   int // rows still owed under LIMIT; -1 when unlimited
	produced int

	single *vector.Batch // sole run's remaining rows, 0/1-run path
}

// build prepares the state for reading. With fewer than two runs
// the queue is never constructed: zero runs produce an immediate
// end of stream, and a single run is offset-cut in place and then
// streamed directly.
func (m *mergeState) build() {
	switch len(m.runs) {
	case 0:
		return
	case 1:
		data := m.runs[0].data
		data.SkipRows(ints.Min(m.skip, data.Rows()))
		m.skip = 0
		m.single = data
		return
	}
	m.cursors = make([]cursor, len(m.runs))
	m.queue = make([]int, len(m.runs))
	for i := range m.runs {
		m.cursors[i] = cursor{run: i}
		m.queue[i] = i
	}
	heap.Init(m.queue, m.less)
}

// less orders cursor indices by their current rows; equal keys fall
// back to the run ordinal, so the earlier-admitted run wins and the
// merge order is reproducible.
func (m *mergeState) less(a, b int) bool {
	ca, cb := &m.cursors[a], &m.cursors[b]
	rel := m.ord.compareRows(m.runs[ca.run].data, ca.row, m.runs[cb.run].data, cb.row)
	if rel != 0 {
		return rel < 0
	}
	return ca.run < cb.run
}

// next returns the next output batch, or nil once the stream is
// exhausted. Exhaustion is stable: every later call returns nil.
func (m *mergeState) next() *vector.Batch {
	want := m.batch
	if m.remain >= 0 {
		want = ints.Min(want, m.remain)
	}
	if want <= 0 {
		return nil
	}
	var out *vector.Batch
	switch {
	case m.single != nil:
		out = m.readSingle(want)
	case len(m.queue) > 0:
		out = m.readMerge(want)
	}
	if out == nil {
		return nil
	}
	if m.remain >= 0 {
		m.remain -= out.Rows()
	}
	m.produced += out.Rows()
	return out
}

// readSingle streams the only run in batch-size chunks. Once the
// remainder fits in one chunk the run body is handed off whole.
func (m *mergeState) readSingle(want int) *vector.Batch {
	data := m.single
	if data.Rows() == 0 {
		m.single = nil
		return nil
	}
	if data.Rows() <= want {
		m.single = nil
		return data
	}
	out := data.CloneEmpty()
	for i := 0; i < want; i++ {
		out.AppendRow(data, i)
	}
	data.SkipRows(want)
	return out
}

// readMerge copies rows out of the cursor queue in key order until
// the output batch fills or the queue drains. Rows consumed while
// OFFSET remains are skipped without being copied.
func (m *mergeState) readMerge(want int) *vector.Batch {
	if len(m.cursors) < 2 {
		panic("sorting: merge read with fewer than two runs")
	}
	out := m.runs[0].data.CloneEmpty()
	got := 0
	for len(m.queue) > 0 && got < want {
		cur := &m.cursors[m.queue[0]]
		r := m.runs[cur.run]
		if m.skip > 0 {
			m.skip--
		} else {
			out.AppendRow(r.data, cur.row)
			got++
		}
		if cur.row+1 == r.rows {
			heap.Pop(&m.queue, m.less)
		} else {
			cur.advance(r)
			heap.Fix(m.queue, 0, m.less)
		}
	}
	if got == 0 {
		return nil
	}
	return out
}
