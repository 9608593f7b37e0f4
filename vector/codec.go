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
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// Batch encoding: one version byte, a column count, then each
// column as {kind, row count, NULL bitmap words, dense payload},
// all fixed-width little-endian. String payloads are a length
// vector followed by the concatenated bytes.

const codecVersion = 1

var errShortEncoding = errors.New("vector: truncated batch encoding")

// Encode appends the encoding of b to dst and returns the
// extended buffer.
func Encode(dst []byte, b *Batch) []byte {
	dst = append(dst, codecVersion)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(b.Cols()))
	rows := b.Rows()
	for _, c := range b.cols {
		dst = append(dst, byte(c.kind))
		dst = binary.LittleEndian.AppendUint32(dst, uint32(rows))
		words := c.nulls.words(rows)
		dst = binary.LittleEndian.AppendUint32(dst, uint32(len(words)))
		for _, w := range words {
			dst = binary.LittleEndian.AppendUint64(dst, w)
		}
		switch c.kind {
		case Bool:
			for _, v := range c.bools {
				if v {
					dst = append(dst, 1)
				} else {
					dst = append(dst, 0)
				}
			}
		case Int, Time:
			for _, v := range c.ints {
				dst = binary.LittleEndian.AppendUint64(dst, uint64(v))
			}
		case Float:
			for _, v := range c.floats {
				dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
			}
		default:
			for _, s := range c.strs {
				dst = binary.LittleEndian.AppendUint32(dst, uint32(len(s)))
			}
			for _, s := range c.strs {
				dst = append(dst, s...)
			}
		}
	}
	return dst
}

// Decode reconstructs a Batch encoded by Encode. Corrupt or
// truncated input yields an error, never a panic.
func Decode(buf []byte) (*Batch, error) {
	r := creader{buf: buf}
	ver, err := r.u8()
	if err != nil {
		return nil, err
	}
	if ver != codecVersion {
		return nil, fmt.Errorf("vector: unknown encoding version %d", ver)
	}
	ncols, err := r.u32()
	if err != nil {
		return nil, err
	}
	if ncols == 0 {
		return nil, fmt.Errorf("vector: batch encoding with no columns")
	}
	if int64(ncols)*9 > int64(r.rest()) {
		return nil, errShortEncoding
	}
	cols := make([]*Column, 0, ncols)
	rows := -1
	for i := 0; i < int(ncols); i++ {
		c, n, err := decodeColumn(&r)
		if err != nil {
			return nil, err
		}
		if rows >= 0 && rows != n {
			return nil, fmt.Errorf("vector: ragged batch encoding (%d rows then %d)", rows, n)
		}
		rows = n
		cols = append(cols, c)
	}
	if r.rest() != 0 {
		return nil, fmt.Errorf("vector: %d trailing bytes after batch encoding", r.rest())
	}
	return &Batch{cols: cols}, nil
}

func decodeColumn(r *creader) (*Column, int, error) {
	k, err := r.u8()
	if err != nil {
		return nil, 0, err
	}
	if Kind(k) > Time {
		return nil, 0, fmt.Errorf("vector: unknown column kind %d", k)
	}
	c := NewColumn(Kind(k))
	u, err := r.u32()
	if err != nil {
		return nil, 0, err
	}
	rows := int(u)
	nwords, err := r.u32()
	if err != nil {
		return nil, 0, err
	}
	if nwords != 0 {
		if int(nwords) != (rows+63)/64 {
			return nil, 0, fmt.Errorf("vector: bitmap of %d words for %d rows", nwords, rows)
		}
		raw, err := r.take(8 * int(nwords))
		if err != nil {
			return nil, 0, err
		}
		c.nulls.bits = make([]uint64, nwords)
		for i := range c.nulls.bits {
			c.nulls.bits[i] = binary.LittleEndian.Uint64(raw[8*i:])
		}
	}
	switch c.kind {
	case Bool:
		raw, err := r.take(rows)
		if err != nil {
			return nil, 0, err
		}
		c.bools = make([]bool, rows)
		for i, v := range raw {
			if v > 1 {
				return nil, 0, fmt.Errorf("vector: bool cell encoded as %d", v)
			}
			c.bools[i] = v == 1
		}
	case Int, Time:
		raw, err := r.take(8 * rows)
		if err != nil {
			return nil, 0, err
		}
		c.ints = make([]int64, rows)
		for i := range c.ints {
			c.ints[i] = int64(binary.LittleEndian.Uint64(raw[8*i:]))
		}
	case Float:
		raw, err := r.take(8 * rows)
		if err != nil {
			return nil, 0, err
		}
		c.floats = make([]float64, rows)
		for i := range c.floats {
			c.floats[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
		}
	default:
		raw, err := r.take(4 * rows)
		if err != nil {
			return nil, 0, err
		}
		var blob uint64
		lens := make([]uint32, rows)
		for i := range lens {
			lens[i] = binary.LittleEndian.Uint32(raw[4*i:])
			blob += uint64(lens[i])
		}
		if blob > uint64(r.rest()) {
			return nil, 0, errShortEncoding
		}
		c.strs = make([]string, rows)
		for i, n := range lens {
			raw, err := r.take(int(n))
			if err != nil {
				return nil, 0, err
			}
			c.strs[i] = string(raw)
		}
	}
	return c, rows, nil
}

type creader struct {
	buf []byte
}

func (r *creader) rest() int { return len(r.buf) }

func (r *creader) take(n int) ([]byte, error) {
	if n < 0 || n > len(r.buf) {
		return nil, errShortEncoding
	}
	b := r.buf[:n]
	r.buf = r.buf[n:]
	return b, nil
}

func (r *creader) u8() (byte, error) {
	b, err := r.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *creader) u32() (uint32, error) {
	b, err := r.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}
