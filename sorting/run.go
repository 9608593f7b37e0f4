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

	"github.com/vireodb/vireo/compr"
	"github.com/vireodb/vireo/vector"
)

// run is one intra-sorted, immutable batch awaiting the merge,
// together with a two-row summary batch: row 0 is the run's first
// (least) row and row 1 its last (greatest) row. The summary stays
// resident even while the run body is frozen, so admission
// decisions never touch the body.
type run struct {
	data    *vector.Batch // nil while frozen
	summary *vector.Batch
	rows    int

	frozen []byte // compressed encoding of data
	rawLen int    // encoded size before compression
}

// newRun wraps a sorted, non-empty batch.
func newRun(data *vector.Batch) *run {
	rows := data.Rows()
	if rows == 0 {
		panic("sorting: run with no rows")
	}
	summary := data.CloneEmpty()
	summary.AppendRow(data, 0)
	summary.AppendRow(data, rows-1)
	return &run{data: data, summary: summary, rows: rows}
}

// freeze releases the run body, keeping only its compressed
// encoding and the summary.
func (r *run) freeze(c compr.Compressor) {
	enc := vector.Encode(nil, r.data)
	r.rawLen = len(enc)
	r.frozen = c.Compress(enc, nil)
	r.data = nil
}

// thaw restores a frozen run body. Thawing a resident run is a
// no-op.
func (r *run) thaw(d compr.Decompressor) error {
	if r.data != nil {
		return nil
	}
	raw := make([]byte, r.rawLen)
	if err := d.Decompress(r.frozen, raw); err != nil {
		return fmt.Errorf("sorting: thawing %d-row run: %w", r.rows, err)
	}
	data, err := vector.Decode(raw)
	if err != nil {
		return fmt.Errorf("sorting: thawing %d-row run: %w", r.rows, err)
	}
	r.data = data
	r.frozen = nil
	return nil
}
