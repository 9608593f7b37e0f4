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

// Package heap implements min-heap operations on plain slices,
// ordered by a caller-supplied comparison function.
package heap

// Init arranges h into min-heap order under less.
// After Init, the "smallest" element is h[0].
func Init[T any](h []T, less func(a, b T) bool) {
	for i := len(h)/2 - 1; i >= 0; i-- {
		down(h, i, less)
	}
}

// Push adds item to *h while preserving the heap invariant.
func Push[T any](h *[]T, item T, less func(a, b T) bool) {
	*h = append(*h, item)
	up(*h, len(*h)-1, less)
}

// Pop removes and returns the "smallest" element of *h.
// Pop panics if *h is empty.
func Pop[T any](h *[]T, less func(a, b T) bool) T {
	old := *h
	min := old[0]
	old[0] = old[len(old)-1]
	old = old[:len(old)-1]
	if len(old) > 1 {
		down(old, 0, less)
	}
	*h = old
	return min
}

// Fix restores the heap invariant after the value of h[i]
// has changed. It is equivalent to popping h[i] and pushing
// the new value, but cheaper.
func Fix[T any](h []T, i int, less func(a, b T) bool) {
	if !down(h, i, less) {
		up(h, i, less)
	}
}

func up[T any](h []T, i int, less func(a, b T) bool) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h[i], h[parent]) {
			break
		}
		h[i], h[parent] = h[parent], h[i]
		i = parent
	}
}

func down[T any](h []T, i int, less func(a, b T) bool) bool {
	start := i
	for {
		child := 2*i + 1
		if child >= len(h) {
			break
		}
		if right := child + 1; right < len(h) && less(h[right], h[child]) {
			child = right
		}
		if !less(h[child], h[i]) {
			break
		}
		h[i], h[child] = h[child], h[i]
		i = child
	}
	return i > start
}
