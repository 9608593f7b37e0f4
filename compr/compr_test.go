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

package compr

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestRoundtrip(t *testing.T) {
	src := make([]byte, 64*1024)
	rng := rand.New(rand.NewSource(0))
	for i := range src {
		// compressible: small alphabet, long repeats
		src[i] = byte(rng.Intn(4) * 16)
	}
	for _, name := range []string{"zstd", "zstd-better", "s2"} {
		comp := Compression(name)
		if comp == nil {
			t.Fatalf("no compressor named %q", name)
		}
		dec := Decompression(name)
		if dec == nil {
			t.Fatalf("no decompressor named %q", name)
		}
		prefix := []byte("header:")
		packed := comp.Compress(src, prefix)
		if !bytes.HasPrefix(packed, prefix) {
			t.Errorf("%s: Compress did not append to dst", name)
		}
		body := packed[len(prefix):]
		if len(body) >= len(src) {
			t.Errorf("%s: compressed %d bytes into %d", name, len(src), len(body))
		}
		got := make([]byte, len(src))
		if err := dec.Decompress(body, got); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
		if !bytes.Equal(got, src) {
			t.Fatalf("%s: roundtrip mismatch", name)
		}
		// undersized destination must error, not truncate
		if err := dec.Decompress(body, make([]byte, len(src)-1)); err == nil {
			t.Errorf("%s: no error with undersized destination", name)
		}
	}
}

func TestUnknownName(t *testing.T) {
	if Compression("lz4") != nil {
		t.Error("Compression accepted an unknown name")
	}
	if Decompression("lz4") != nil {
		t.Error("Decompression accepted an unknown name")
	}
}
