// Copyright (C) 2024 Willcharlton, Inc.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package bcimage

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"
)

// Writer accumulates one or more scopes' finished buffers into a single
// container. The zero value is ready to use.
type Writer struct {
	entries  []Entry
	compress bool
}

// NewWriter returns a Writer that optionally zstd-compresses its entry
// list — worthwhile on a flash-constrained target, at the cost of
// requiring decompression before any single buffer is usable.
func NewWriter(compress bool) *Writer {
	return &Writer{compress: compress}
}

// Add appends one scope's buffer to the image under handleID.
func (w *Writer) Add(handleID uint64, buf []byte) {
	w.entries = append(w.entries, Entry{HandleID: handleID, Buf: buf})
}

// Bytes serializes the accumulated entries into the on-disk container
// format: magic, version, flags, entry count, the entries themselves
// (each length-prefixed), and a trailing blake2b-256 checksum of
// everything before it.
func (w *Writer) Bytes() ([]byte, error) {
	var body bytes.Buffer
	var uvarint [binary.MaxVarintLen64]byte

	n := binary.PutUvarint(uvarint[:], uint64(len(w.entries)))
	body.Write(uvarint[:n])
	for _, e := range w.entries {
		n = binary.PutUvarint(uvarint[:], e.HandleID)
		body.Write(uvarint[:n])
		n = binary.PutUvarint(uvarint[:], uint64(len(e.Buf)))
		body.Write(uvarint[:n])
		body.Write(e.Buf)
	}

	payload := body.Bytes()
	var flags byte
	if w.compress {
		flags |= flagZstd
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("bcimage: creating zstd encoder: %w", err)
		}
		payload = enc.EncodeAll(payload, nil)
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("bcimage: closing zstd encoder: %w", err)
		}
	}

	var out bytes.Buffer
	out.WriteString(magic)
	out.WriteByte(formatVersion)
	out.WriteByte(flags)
	out.Write(payload)

	sum := blake2b.Sum256(out.Bytes())
	out.Write(sum[:])
	return out.Bytes(), nil
}
