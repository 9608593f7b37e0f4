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

package vector

import (
	"golang.org/x/exp/slices"
)

// Batch is an ordered set of equal-length Columns.
// Structural misuse of a Batch (ragged construction, mixing
// schemas in row operations) is a programming error and panics.
type Batch struct {
	cols []*Column
}

// New constructs a Batch from cols. All columns must hold the
// same number of rows, and at least one column is required.
func New(cols ...*Column) *Batch {
	if len(cols) == 0 {
		panic("vector: batch with no columns")
	}
	rows := cols[0].Len()
	for _, c := range cols[1:] {
		if c.Len() != rows {
			panic("vector: ragged batch construction")
		}
	}
	return &Batch{cols: slices.Clone(cols)}
}

// Rows returns the number of rows in the batch.
func (b *Batch) Rows() int { return b.cols[0].Len() }

// Cols returns the number of columns in the batch.
func (b *Batch) Cols() int { return len(b.cols) }

// Col returns column i.
func (b *Batch) Col(i int) *Column { return b.cols[i] }

// CloneEmpty returns a new zero-row Batch with the same schema as b.
func (b *Batch) CloneEmpty() *Batch {
	cols := make([]*Column, len(b.cols))
	for i, c := range b.cols {
		cols[i] = c.cloneEmpty()
	}
	return &Batch{cols: cols}
}

// Project returns a new Batch over the selected columns of b.
// The returned batch shares column storage with b.
func (b *Batch) Project(ids ...int) *Batch {
	if len(ids) == 0 {
		panic("vector: empty projection")
	}
	cols := make([]*Column, len(ids))
	for i, id := range ids {
		cols[i] = b.cols[id]
	}
	return &Batch{cols: cols}
}

// AddColumn appends c as a new column of b and returns its index.
// c must already hold exactly one value per row of b.
func (b *Batch) AddColumn(c *Column) int {
	if c.Len() != b.Rows() {
		panic("vector: added column has the wrong number of rows")
	}
	b.cols = append(b.cols, c)
	return len(b.cols) - 1
}

// SameShape reports whether a and b have identical schemas.
func SameShape(a, b *Batch) bool {
	if a.Cols() != b.Cols() {
		return false
	}
	for i := range a.cols {
		if a.cols[i].kind != b.cols[i].kind {
			return false
		}
	}
	return true
}

// Append appends every row of src to b.
func (b *Batch) Append(src *Batch) {
	if !SameShape(b, src) {
		panic("vector: appending batch with a different schema")
	}
	rows := src.Rows()
	for i, c := range b.cols {
		c.appendRange(src.cols[i], 0, rows)
	}
}

// AppendRow appends row i of src to b.
func (b *Batch) AppendRow(src *Batch, i int) {
	if len(b.cols) != len(src.cols) {
		panic("vector: appending row with a different schema")
	}
	for n, c := range b.cols {
		c.appendFrom(src.cols[n], i)
	}
}

// Swap exchanges the contents of b and o.
func (b *Batch) Swap(o *Batch) {
	b.cols, o.cols = o.cols, b.cols
}

// SkipRows discards the first n rows of b in place.
func (b *Batch) SkipRows(n int) {
	if n <= 0 {
		return
	}
	if r := b.Rows(); n > r {
		n = r
	}
	for _, c := range b.cols {
		c.skip(n)
	}
}
