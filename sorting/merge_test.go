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
	"testing"

	"golang.org/x/exp/slices"
)

func mkState(batch, skip, remain int, runs ...*run) *mergeState {
	m := &mergeState{
		ord:    ordering{keys: []Key{{Expr: Col(0), Direction: Ascending}}, cols: []int{0}},
		runs:   runs,
		batch:  batch,
		skip:   skip,
		remain: remain,
	}
	m.build()
	return m
}

// drainState pulls the state dry, checking batch sizes along the
// way and that exhaustion is stable.
func drainState(t *testing.T, m *mergeState, maxBatch int) []int64 {
	t.Helper()
	var out []int64
	for i := 0; ; i++ {
		if i > 1000 {
			t.Fatal("merge never reached end of stream")
		}
		b := m.next()
		if b == nil {
			break
		}
		if b.Rows() == 0 {
			t.Fatal("empty batch emitted instead of end of stream")
		}
		if b.Rows() > maxBatch {
			t.Fatalf("batch of %d rows exceeds size %d", b.Rows(), maxBatch)
		}
		out = append(out, column(t, b, 0)...)
	}
	for i := 0; i < 3; i++ {
		if m.next() != nil {
			t.Fatal("stream resumed after end")
		}
	}
	return out
}

func TestMergeTwoRuns(t *testing.T) {
	m := mkState(10, 0, -1, mkRun(1, 3, 4), mkRun(1, 5, 9))
	got := drainState(t, m, 10)
	if want := []int64{1, 1, 3, 4, 5, 9}; !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestMergeTiebreak(t *testing.T) {
	// identical keys everywhere; tags expose the interleaving
	a := newRun(taggedBatch([]int64{1, 3}, []int64{10, 11}))
	b := newRun(taggedBatch([]int64{1, 3}, []int64{20, 21}))

	m := mkState(10, 0, -1, a, b)
	var tags []int64
	for batch := m.next(); batch != nil; batch = m.next() {
		tags = append(tags, column(t, batch, 1)...)
	}
	if want := []int64{10, 20, 11, 21}; !slices.Equal(tags, want) {
		t.Errorf("tags %v, want %v", tags, want)
	}

	// swapping admission order swaps the winner, and nothing else
	// about the construction affects it
	a = newRun(taggedBatch([]int64{1, 3}, []int64{10, 11}))
	b = newRun(taggedBatch([]int64{1, 3}, []int64{20, 21}))
	m = mkState(10, 0, -1, b, a)
	tags = tags[:0]
	for batch := m.next(); batch != nil; batch = m.next() {
		tags = append(tags, column(t, batch, 1)...)
	}
	if want := []int64{20, 10, 21, 11}; !slices.Equal(tags, want) {
		t.Errorf("tags %v, want %v", tags, want)
	}
}

func TestMergeChunks(t *testing.T) {
	m := mkState(2, 0, -1, mkRun(1, 3, 4), mkRun(1, 5, 9))
	var chunks [][]int64
	for b := m.next(); b != nil; b = m.next() {
		chunks = append(chunks, column(t, b, 0))
	}
	want := [][]int64{{1, 1}, {3, 4}, {5, 9}}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks %v, want %v", len(chunks), chunks, want)
	}
	for i := range want {
		if !slices.Equal(chunks[i], want[i]) {
			t.Errorf("chunk %d: got %v, want %v", i, chunks[i], want[i])
		}
	}
}

func TestMergeOffset(t *testing.T) {
	m := mkState(10, 3, -1, mkRun(1, 3, 4), mkRun(1, 5, 9))
	if got := drainState(t, m, 10); !slices.Equal(got, []int64{4, 5, 9}) {
		t.Errorf("offset 3: got %v", got)
	}

	// offset swallowing the whole input ends the stream immediately
	m = mkState(10, 6, -1, mkRun(1, 3, 4), mkRun(1, 5, 9))
	if got := drainState(t, m, 10); got != nil {
		t.Errorf("offset 6: got %v, want nothing", got)
	}
	m = mkState(10, 100, -1, mkRun(1, 3, 4), mkRun(1, 5, 9))
	if got := drainState(t, m, 10); got != nil {
		t.Errorf("offset 100: got %v, want nothing", got)
	}
}

func TestMergeLimit(t *testing.T) {
	m := mkState(10, 0, 3, mkRun(1, 3, 4), mkRun(1, 5, 9))
	if got := drainState(t, m, 10); !slices.Equal(got, []int64{1, 1, 3}) {
		t.Errorf("limit 3: got %v", got)
	}

	m = mkState(10, 0, 0, mkRun(1, 3, 4), mkRun(1, 5, 9))
	if got := drainState(t, m, 10); got != nil {
		t.Errorf("limit 0: got %v, want nothing", got)
	}
}

func TestMergeWindow(t *testing.T) {
	m := mkState(10, 2, 2, mkRun(1, 3, 4), mkRun(1, 5, 9))
	if got := drainState(t, m, 10); !slices.Equal(got, []int64{3, 4}) {
		t.Errorf("offset 2 limit 2: got %v", got)
	}
}

func TestMergeManyRuns(t *testing.T) {
	runs := []*run{
		mkRun(1, 6), mkRun(2, 7), mkRun(3, 8), mkRun(4, 9), mkRun(5, 10),
	}
	m := mkState(4, 0, -1, runs...)
	want := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	if got := drainState(t, m, 4); !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}

	runs = []*run{
		mkRun(1, 6), mkRun(2, 7), mkRun(3, 8), mkRun(4, 9), mkRun(5, 10),
	}
	m = mkState(4, 2, 5, runs...)
	if got := drainState(t, m, 4); !slices.Equal(got, []int64{3, 4, 5, 6, 7}) {
		t.Errorf("windowed: got %v", got)
	}
}

func TestMergeSingleRun(t *testing.T) {
	// small enough to fit one batch: the run body is handed off
	// without copying
	data := intBatch(1, 2, 3, 4)
	m := mkState(10, 0, -1, newRun(data))
	if m.queue != nil {
		t.Error("single-run path built a merge queue")
	}
	out := m.next()
	if out != data {
		t.Error("single fitting run was copied instead of handed off")
	}
	if m.next() != nil {
		t.Error("stream continued past the handed-off batch")
	}

	// chunked with an offset: the cut happens in place
	data = intBatch(1, 2, 3, 4)
	m = mkState(2, 1, -1, newRun(data))
	first := m.next()
	if got := column(t, first, 0); !slices.Equal(got, []int64{2, 3}) {
		t.Fatalf("first chunk %v", got)
	}
	if first == data {
		t.Error("partial chunk must be a copy")
	}
	second := m.next()
	if got := column(t, second, 0); !slices.Equal(got, []int64{4}) {
		t.Fatalf("second chunk %v", got)
	}
	if m.next() != nil {
		t.Error("stream continued past the last chunk")
	}
}

func TestMergeNoRuns(t *testing.T) {
	m := mkState(10, 0, -1)
	for i := 0; i < 3; i++ {
		if m.next() != nil {
			t.Fatal("empty state produced a batch")
		}
	}
}

func TestCursorAdvancePastEnd(t *testing.T) {
	r := mkRun(7)
	c := cursor{}
	expectPanic(t, "advance past end", func() { c.advance(r) })
}

func TestMergeReadNeedsTwoRuns(t *testing.T) {
	m := mkState(5, 0, -1, mkRun(1, 2))
	expectPanic(t, "merge read on single run", func() { m.readMerge(1) })
}
