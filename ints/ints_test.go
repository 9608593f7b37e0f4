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

package ints

import "testing"

func TestClampers(t *testing.T) {
	cases := []struct {
		x, lo, hi         int
		min, max, clamped int
	}{
		{x: 5, lo: 0, hi: 10, min: 0, max: 10, clamped: 5},
		{x: -3, lo: 0, hi: 10, min: -3, max: 10, clamped: 0},
		{x: 42, lo: 0, hi: 10, min: 0, max: 42, clamped: 10},
		{x: 0, lo: 0, hi: 0, min: 0, max: 0, clamped: 0},
	}
	for _, c := range cases {
		if got := Min(c.x, c.lo); got != c.min {
			t.Errorf("Min(%d, %d) = %d, want %d", c.x, c.lo, got, c.min)
		}
		if got := Max(c.x, c.hi); got != c.max {
			t.Errorf("Max(%d, %d) = %d, want %d", c.x, c.hi, got, c.max)
		}
		if got := Clamp(c.x, c.lo, c.hi); got != c.clamped {
			t.Errorf("Clamp(%d, %d, %d) = %d, want %d", c.x, c.lo, c.hi, got, c.clamped)
		}
	}
}
