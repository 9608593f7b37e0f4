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
	"github.com/vireodb/vireo/vector"
)

// ordering is a key list resolved to concrete column positions.
// Every run of one sort shares a schema, so a single resolution
// orders rows across any pair of its batches.
type ordering struct {
	keys []Key
	cols []int
}

// compareRows orders row ai of a against row bi of b in the final
// output order: a negative result means row ai sorts first. NULLs
// place per each key's NullsOrder independent of its Direction;
// non-null cells compare by value, inverted for descending keys.
func (o *ordering) compareRows(a *vector.Batch, ai int, b *vector.Batch, bi int) int {
	for i := range o.keys {
		k := &o.keys[i]
		ca, cb := a.Col(o.cols[i]), b.Col(o.cols[i])
		an, bn := ca.Null(ai), cb.Null(bi)
		if an || bn {
			if an && bn {
				continue
			}
			rel := 1
			if an {
				rel = -1
			}
			if k.Nulls == NullsLast {
				rel = -rel
			}
			return rel
		}
		if rel := ca.Compare(ai, cb, bi); rel != 0 {
			return int(k.Direction) * rel
		}
	}
	return 0
}
