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

// Package sorting implements the engine's ORDER BY / TOP-N operator
// over columnar batches.
//
// The operator is streaming and purely in-memory. Upstream pushes
// unordered batches into a Sorter with Append; the Sorter buffers
// rows and, at a configured threshold, sorts the buffer into an
// immutable run. Once input ends (Finish), the retained runs are
// merged through a cursor priority queue and downstream pulls
// globally ordered batches with Next until it returns nil.
//
// When the query declares a LIMIT, two optimizations bound the work
// and the memory:
//
//   - each run is cut to the first offset+limit rows while it is
//     sorted, using a bounded heap selection instead of a total sort;
//   - a freshly sorted run whose smallest row sorts strictly after
//     the largest row of the worst already-retained run is dropped
//     whole, without storing or ever merging it. Admission decisions
//     use per-run min/max summaries only.
//
// Sort keys are described by Key values: an expression locating the
// key column, a direction, and a NULL ordering. NULLs place first or
// last in the output regardless of direction. Key expressions may
// append computed columns to the batch; such columns become part of
// the emitted schema. Equal keys resolve deterministically: rows keep
// ingestion order within a run, and earlier runs win across runs.
//
// A Sorter instance is not safe for concurrent use; Append, Finish
// and Next must be called sequentially from one goroutine. Parallel
// plans run one instance per task and merge externally.
package sorting
