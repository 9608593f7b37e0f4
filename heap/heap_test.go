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

package heap

import (
	"math/rand"
	"testing"

	"golang.org/x/exp/slices"
)

func drain(t *testing.T, h *[]int, less func(a, b int) bool) []int {
	t.Helper()
	out := make([]int, 0, len(*h))
	for len(*h) > 0 {
		out = append(out, Pop(h, less))
	}
	if !slices.IsSorted(out) {
		t.Fatalf("pop order not sorted: %v", out)
	}
	return out
}

func TestPushPop(t *testing.T) {
	less := func(a, b int) bool { return a < b }
	rng := rand.New(rand.NewSource(0))
	h := make([]int, 0, 1000)
	for len(h) < cap(h) {
		Push(&h, rng.Intn(5000), less)
	}
	if got := drain(t, &h, less); len(got) != 1000 {
		t.Fatalf("popped %d elements, pushed 1000", len(got))
	}
}

func TestInit(t *testing.T) {
	less := func(a, b int) bool { return a < b }
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 2, 3, 17, 256} {
		h := make([]int, n)
		for i := range h {
			h[i] = rng.Intn(100)
		}
		Init(h, less)
		drain(t, &h, less)
	}
}

func TestFix(t *testing.T) {
	less := func(a, b int) bool { return a < b }
	rng := rand.New(rand.NewSource(2))
	h := make([]int, 0, 100)
	for len(h) < cap(h) {
		Push(&h, rng.Intn(1000)+1000, less)
	}
	// move an element both directions, fixing each time
	h[len(h)/2] = 1
	Fix(h, len(h)/2, less)
	if h[0] != 1 {
		t.Fatalf("expected 1 at the root, got %d", h[0])
	}
	h[0] = 5000
	Fix(h, 0, less)
	got := drain(t, &h, less)
	if got[len(got)-1] != 5000 {
		t.Fatalf("expected 5000 to pop last, got %d", got[len(got)-1])
	}
}
