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
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"sigs.k8s.io/yaml"

	"github.com/vireodb/vireo/compr"
	"github.com/vireodb/vireo/vector"
)

// Tuning holds the deployment-tunable knobs of a Sorter. The zero
// value of every field selects its default.
type Tuning struct {
	// BatchSize is the number of rows per output batch.
	BatchSize int `json:"batch_size,omitempty"`
	// FlushRows is the number of buffered rows that triggers
	// sorting the accumulation buffer into a run.
	FlushRows int `json:"flush_rows,omitempty"`
	// Codec, when set, names the compression holding retained
	// run bodies until the merge: "zstd", "zstd-better" or "s2".
	Codec string `json:"codec,omitempty"`
}

// Defaults for the zero values of Tuning.
const (
	DefaultBatchSize = 1024
	DefaultFlushRows = 16384
)

// just pick an upper limit to reject junk input
const maxTuningSize = 1 << 20

// DecodeTuning reads a Tuning from JSON or YAML.
func DecodeTuning(src io.Reader) (Tuning, error) {
	var t Tuning
	buf, err := io.ReadAll(io.LimitReader(src, maxTuningSize+1))
	if err != nil {
		return t, err
	}
	if len(buf) > maxTuningSize {
		return t, fmt.Errorf("sorting: tuning beyond %d bytes", maxTuningSize)
	}
	if err := yaml.Unmarshal(buf, &t); err != nil {
		return t, fmt.Errorf("sorting: decoding tuning: %w", err)
	}
	if t.BatchSize < 0 || t.FlushRows < 0 {
		return Tuning{}, fmt.Errorf("sorting: negative tuning values")
	}
	if t.Codec != "" && compr.Compression(t.Codec) == nil {
		return Tuning{}, fmt.Errorf("sorting: unknown codec %q", t.Codec)
	}
	return t, nil
}

// Config fixes the behavior of a Sorter at construction.
type Config struct {
	// Keys is the sort descriptor, most significant key first.
	Keys []Key
	// Project optionally re-projects every ingested batch
	// through these expressions before sorting; the emitted
	// schema is the projected one.
	Project []ColumnExpr
	// Limit caps the emitted rows; 0 means unlimited.
	Limit int
	// Offset skips the first rows of the ordered result.
	Offset int
	// Tuning carries the deployment knobs.
	Tuning
	// Logger, when set, receives run-granularity diagnostics.
	Logger *log.Logger
}

// Configuration errors reported by New.
var (
	ErrNoKeys         = errors.New("sorting: configuration with no sort keys")
	ErrNegativeWindow = errors.New("sorting: negative limit or offset")
)

// Sorter is the ORDER BY / TOP-N operator: it ingests unordered
// batches, retains intra-sorted runs, and emits one globally
// ordered, offset/limit-windowed stream of batches.
//
// Call order is Append*, Finish, Next*; a Sorter never blocks and
// must be driven from a single goroutine.
type Sorter struct {
	cfg    Config
	id     uuid.UUID
	bsort  *BatchSorter
	pruner *runPruner
	merge  *mergeState
	comp   compr.Compressor
	decomp compr.Decompressor

	shape    *vector.Batch // schema of the first ingested batch
	pending  *vector.Batch // accumulation buffer
	ingested int
	flushes  int
	finished bool
	done     bool
}

// New validates cfg and constructs a Sorter.
func New(cfg Config) (*Sorter, error) {
	if len(cfg.Keys) == 0 {
		return nil, ErrNoKeys
	}
	if cfg.Limit < 0 || cfg.Offset < 0 {
		return nil, ErrNegativeWindow
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.FlushRows <= 0 {
		cfg.FlushRows = DefaultFlushRows
	}
	var comp compr.Compressor
	var decomp compr.Decompressor
	if cfg.Codec != "" {
		comp = compr.Compression(cfg.Codec)
		if comp == nil {
			return nil, fmt.Errorf("sorting: unknown codec %q", cfg.Codec)
		}
		decomp = compr.Decompression(cfg.Codec)
	}
	bound := 0
	remain := -1
	if cfg.Limit > 0 {
		bound = cfg.Offset + cfg.Limit
		remain = cfg.Limit
	}
	s := &Sorter{
		cfg:    cfg,
		id:     uuid.New(),
		bsort:  NewBatchSorter(cfg.Keys, cfg.Project, bound),
		comp:   comp,
		decomp: decomp,
		merge:  &mergeState{batch: cfg.BatchSize, skip: cfg.Offset, remain: remain},
	}
	if bound > 0 {
		s.pruner = newRunPruner(&s.bsort.ord, bound)
	}
	return s, nil
}

// Append adds the rows of b to the accumulation buffer, sorting the
// buffer into a run when it reaches the flush threshold. The caller
// keeps ownership of b and may reuse it. Appending an empty batch
// is a no-op; appending after Finish or changing the batch schema
// mid-stream is a contract breach and panics.
func (s *Sorter) Append(b *vector.Batch) error {
	if s.finished {
		panic("sorting: Append after Finish")
	}
	if b == nil || b.Rows() == 0 {
		return nil
	}
	if s.shape == nil {
		s.shape = b.CloneEmpty()
	} else if !vector.SameShape(s.shape, b) {
		panic("sorting: batch schema changed between appends")
	}
	if s.pending == nil {
		s.pending = b.CloneEmpty()
	}
	s.pending.Append(b)
	s.ingested += b.Rows()
	if s.pending.Rows() >= s.cfg.FlushRows {
		return s.flush()
	}
	return nil
}

// flush sorts the accumulation buffer into a run and applies the
// retention policy. On an evaluation error the buffer is left
// exactly as it was, so no partial run is ever committed.
func (s *Sorter) flush() error {
	if s.pending == nil || s.pending.Rows() == 0 {
		return nil
	}
	sorted, err := s.bsort.Sort(s.pending)
	if err != nil {
		return err
	}
	rows := s.pending.Rows()
	s.pending = nil
	s.flushes++
	r := newRun(sorted)
	if s.pruner != nil && !s.pruner.admit(r) {
		s.logf("run %d: dropped %d rows past the result window", s.flushes, r.rows)
		return nil
	}
	if s.comp != nil {
		r.freeze(s.comp)
		s.logf("run %d: kept %d of %d rows, frozen to %d bytes", s.flushes, r.rows, rows, len(r.frozen))
	} else {
		s.logf("run %d: kept %d of %d rows", s.flushes, r.rows, rows)
	}
	s.merge.runs = append(s.merge.runs, r)
	return nil
}

// Finish flushes the remaining buffered rows and prepares the
// merge. It must be called exactly once, after the last Append and
// before the first Next.
func (s *Sorter) Finish() error {
	if s.finished {
		panic("sorting: Finish called twice")
	}
	s.finished = true
	if err := s.flush(); err != nil {
		return err
	}
	if s.decomp != nil {
		for _, r := range s.merge.runs {
			if err := r.thaw(s.decomp); err != nil {
				return err
			}
		}
	}
	s.merge.ord = s.bsort.ord
	s.merge.build()
	s.logf("input done: %d rows ingested, %d runs to merge", s.ingested, len(s.merge.runs))
	return nil
}

// Next returns the next batch of the ordered output, or nil once
// the stream is exhausted. Exhaustion is stable: after the first
// nil every call returns nil.
func (s *Sorter) Next() *vector.Batch {
	if !s.finished {
		panic("sorting: Next before Finish")
	}
	out := s.merge.next()
	if out == nil && !s.done {
		s.done = true
		s.logf("stream exhausted after %d rows", s.merge.produced)
	}
	return out
}

func (s *Sorter) logf(f string, args ...any) {
	if s.cfg.Logger == nil {
		return
	}
	s.cfg.Logger.Printf("sort %s: "+f, append([]any{s.id}, args...)...)
}
