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

// Package vector implements the columnar batch representation
// that flows between the engine's operators: typed column
// vectors with NULL bitmaps, grouped into equal-length batches,
// plus a compact byte encoding for batches at rest.
package vector

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the value type of a Column.
type Kind uint8

const (
	Bool   Kind = iota // true/false
	Int                // signed 64-bit integer
	Float              // 64-bit IEEE float
	String             // byte string
	Time               // nanoseconds since the Unix epoch
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Time:
		return "time"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// nulls records the NULL rows of a column.
// A set bit marks the row as NULL.
type nulls struct {
	bits []uint64
}

func (n *nulls) null(i int) bool {
	w := i >> 6
	return w < len(n.bits) && n.bits[w]&(1<<uint(i&63)) != 0
}

func (n *nulls) set(i int) {
	w := i >> 6
	for w >= len(n.bits) {
		n.bits = append(n.bits, 0)
	}
	n.bits[w] |= 1 << uint(i&63)
}

// clear unsets bit i; bits beyond the bitmap are already clear.
func (n *nulls) clear(i int) {
	if w := i >> 6; w < len(n.bits) {
		n.bits[w] &^= 1 << uint(i&63)
	}
}

// skip drops the first k bit positions.
func (n *nulls) skip(k int) {
	if k <= 0 || len(n.bits) == 0 {
		return
	}
	if w := k >> 6; w > 0 {
		if w >= len(n.bits) {
			n.bits = n.bits[:0]
			return
		}
		n.bits = n.bits[w:]
	}
	if rem := uint(k & 63); rem != 0 {
		last := len(n.bits) - 1
		for i := range n.bits {
			n.bits[i] >>= rem
			if i < last {
				n.bits[i] |= n.bits[i+1] << (64 - rem)
			}
		}
	}
}

// words returns the bitmap packed to exactly the words covering
// rows bit positions, with trailing bits cleared, or nil if no
// covered row is NULL.
func (n *nulls) words(rows int) []uint64 {
	if rows == 0 || len(n.bits) == 0 {
		return nil
	}
	need := (rows + 63) / 64
	w := make([]uint64, need)
	copy(w, n.bits)
	if rem := uint(rows & 63); rem != 0 {
		w[need-1] &= (1 << rem) - 1
	}
	for _, v := range w {
		if v != 0 {
			return w
		}
	}
	return nil
}

// Column is one attribute of a Batch: a dense vector of a single
// Kind plus a bitmap of NULL rows. NULL rows hold the kind's zero
// value in the dense storage.
type Column struct {
	kind   Kind
	nulls  nulls
	bools  []bool
	ints   []int64 // Int and Time values
	floats []float64
	strs   []string
}

// NewColumn returns an empty column of kind k.
func NewColumn(k Kind) *Column {
	return &Column{kind: k}
}

// Kind returns the value type of the column.
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of rows in the column.
func (c *Column) Len() int {
	switch c.kind {
	case Bool:
		return len(c.bools)
	case Int, Time:
		return len(c.ints)
	case Float:
		return len(c.floats)
	default:
		return len(c.strs)
	}
}

// Null reports whether row i is NULL.
func (c *Column) Null(i int) bool { return c.nulls.null(i) }

func (c *Column) expect(k Kind) {
	if c.kind != k {
		panic("vector: " + c.kind.String() + " column used as " + k.String())
	}
}

// Bools returns the dense storage of a Bool column.
func (c *Column) Bools() []bool { c.expect(Bool); return c.bools }

// Ints returns the dense storage of an Int column.
func (c *Column) Ints() []int64 { c.expect(Int); return c.ints }

// Floats returns the dense storage of a Float column.
func (c *Column) Floats() []float64 { c.expect(Float); return c.floats }

// Strings returns the dense storage of a String column.
func (c *Column) Strings() []string { c.expect(String); return c.strs }

// Times returns the dense storage of a Time column as
// nanoseconds since the Unix epoch.
func (c *Column) Times() []int64 { c.expect(Time); return c.ints }

// AppendBool appends v to a Bool column.
func (c *Column) AppendBool(v bool) {
	c.expect(Bool)
	c.nulls.clear(len(c.bools))
	c.bools = append(c.bools, v)
}

// AppendInt appends v to an Int column.
func (c *Column) AppendInt(v int64) {
	c.expect(Int)
	c.nulls.clear(len(c.ints))
	c.ints = append(c.ints, v)
}

// AppendFloat appends v to a Float column.
func (c *Column) AppendFloat(v float64) {
	c.expect(Float)
	c.nulls.clear(len(c.floats))
	c.floats = append(c.floats, v)
}

// AppendString appends v to a String column.
func (c *Column) AppendString(v string) {
	c.expect(String)
	c.nulls.clear(len(c.strs))
	c.strs = append(c.strs, v)
}

// AppendTime appends v, in nanoseconds since the Unix epoch,
// to a Time column.
func (c *Column) AppendTime(v int64) {
	c.expect(Time)
	c.nulls.clear(len(c.ints))
	c.ints = append(c.ints, v)
}

// AppendNull appends a NULL row.
func (c *Column) AppendNull() {
	i := c.Len()
	switch c.kind {
	case Bool:
		c.bools = append(c.bools, false)
	case Int, Time:
		c.ints = append(c.ints, 0)
	case Float:
		c.floats = append(c.floats, 0)
	default:
		c.strs = append(c.strs, "")
	}
	c.nulls.set(i)
}

// Compare orders cell i of c against cell j of o. Both columns
// must have the same Kind. Compare orders values only; NULL rows
// hold zero values, so callers order NULLs before calling.
func (c *Column) Compare(i int, o *Column, j int) int {
	if c.kind != o.kind {
		panic("vector: comparing " + c.kind.String() + " column against " + o.kind.String())
	}
	switch c.kind {
	case Bool:
		a, b := c.bools[i], o.bools[j]
		switch {
		case a == b:
			return 0
		case b:
			return -1
		default:
			return 1
		}
	case Int, Time:
		return compareInts(c.ints[i], o.ints[j])
	case Float:
		return compareFloats(c.floats[i], o.floats[j])
	default:
		return strings.Compare(c.strs[i], o.strs[j])
	}
}

func compareInts(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// compareFloats is a total order: NaN sorts after
// every other value and equal to itself.
func compareFloats(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	case a == b:
		return 0
	}
	an := math.IsNaN(a)
	if an == math.IsNaN(b) {
		return 0
	}
	if an {
		return 1
	}
	return -1
}

func (c *Column) cloneEmpty() *Column {
	return &Column{kind: c.kind}
}

func (c *Column) appendFrom(src *Column, i int) {
	if c.kind != src.kind {
		panic("vector: appending " + src.kind.String() + " cell to " + c.kind.String() + " column")
	}
	n := c.Len()
	switch c.kind {
	case Bool:
		c.bools = append(c.bools, src.bools[i])
	case Int, Time:
		c.ints = append(c.ints, src.ints[i])
	case Float:
		c.floats = append(c.floats, src.floats[i])
	default:
		c.strs = append(c.strs, src.strs[i])
	}
	if src.nulls.null(i) {
		c.nulls.set(n)
	} else {
		c.nulls.clear(n)
	}
}

func (c *Column) appendRange(src *Column, i, j int) {
	if c.kind != src.kind {
		panic("vector: appending " + src.kind.String() + " rows to " + c.kind.String() + " column")
	}
	n := c.Len()
	switch c.kind {
	case Bool:
		c.bools = append(c.bools, src.bools[i:j]...)
	case Int, Time:
		c.ints = append(c.ints, src.ints[i:j]...)
	case Float:
		c.floats = append(c.floats, src.floats[i:j]...)
	default:
		c.strs = append(c.strs, src.strs[i:j]...)
	}
	for r := i; r < j; r++ {
		if src.nulls.null(r) {
			c.nulls.set(n)
		} else {
			c.nulls.clear(n)
		}
		n++
	}
}

func (c *Column) skip(n int) {
	switch c.kind {
	case Bool:
		c.bools = c.bools[n:]
	case Int, Time:
		c.ints = c.ints[n:]
	case Float:
		c.floats = c.floats[n:]
	default:
		c.strs = c.strs[n:]
	}
	c.nulls.skip(n)
}
