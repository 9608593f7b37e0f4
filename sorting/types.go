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

	"github.com/vireodb/vireo/vector"
)

// Direction encodes the sorting direction of a key (SQL: ASC/DESC)
type Direction int

const (
	Ascending  Direction = 1  // sort ascending
	Descending Direction = -1 // sort descending
)

// NullsOrder encodes the placement of NULL values in the output
// (SQL: NULLS FIRST/NULLS LAST). The placement is independent of
// the key's Direction.
type NullsOrder int

const (
	NullsFirst NullsOrder = iota // NULL values go first
	NullsLast                    // NULL values go last
)

// ColumnExpr locates or computes a sort key column within a batch.
// The plan layer supplies implementations for computed keys; Col
// covers plain column references.
type ColumnExpr interface {
	// Eval returns the index of the column of b holding the
	// expression result. Eval may append a computed column to b;
	// it must not modify existing columns, and it must resolve to
	// the same index for every batch of a given schema.
	Eval(b *vector.Batch) (int, error)
}

// Col returns a ColumnExpr referring to column i of the batch.
func Col(i int) ColumnExpr { return colRef(i) }

type colRef int

func (c colRef) Eval(b *vector.Batch) (int, error) {
	if int(c) < 0 || int(c) >= b.Cols() {
		return 0, fmt.Errorf("sorting: key column %d out of range (batch has %d columns)", int(c), b.Cols())
	}
	return int(c), nil
}

// Key describes one element of a sort descriptor: which column to
// order by, in which direction, and where its NULLs place. The zero
// Direction is treated as Ascending.
type Key struct {
	Expr      ColumnExpr
	Direction Direction
	Nulls     NullsOrder
}
