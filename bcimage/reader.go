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
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/crypto/blake2b"
)

// Read parses and validates an image container, returning its entries
// in encoded order. The checksum is verified before anything else is
// interpreted, so a corrupted image never reaches the varint decoder.
func Read(data []byte) ([]Entry, error) {
	const headerLen = len(magic) + 1 + 1
	if len(data) < headerLen+blake2b.Size256 {
		return nil, fmt.Errorf("bcimage: image too short (%d bytes)", len(data))
	}

	body := data[:len(data)-blake2b.Size256]
	wantSum := data[len(data)-blake2b.Size256:]
	gotSum := blake2b.Sum256(body)
	if string(gotSum[:]) != string(wantSum) {
		return nil, fmt.Errorf("bcimage: checksum mismatch")
	}

	if string(body[:len(magic)]) != magic {
		return nil, fmt.Errorf("bcimage: bad magic %q", body[:len(magic)])
	}
	version := body[len(magic)]
	if version != formatVersion {
		return nil, fmt.Errorf("bcimage: unsupported format version %d", version)
	}
	flags := body[len(magic)+1]
	payload := body[headerLen:]

	if flags&flagZstd != 0 {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("bcimage: creating zstd decoder: %w", err)
		}
		defer dec.Close()
		payload, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("bcimage: decompressing entry list: %w", err)
		}
	}

	count, n := binary.Uvarint(payload)
	if n <= 0 {
		return nil, fmt.Errorf("bcimage: malformed entry count")
	}
	payload = payload[n:]

	entries := make([]Entry, 0, count)
	for i := uint64(0); i < count; i++ {
		handleID, n := binary.Uvarint(payload)
		if n <= 0 {
			return nil, fmt.Errorf("bcimage: malformed handle id in entry %d", i)
		}
		payload = payload[n:]

		length, n := binary.Uvarint(payload)
		if n <= 0 {
			return nil, fmt.Errorf("bcimage: malformed length in entry %d", i)
		}
		payload = payload[n:]

		if uint64(len(payload)) < length {
			return nil, fmt.Errorf("bcimage: entry %d truncated: want %d bytes, have %d", i, length, len(payload))
		}
		buf := make([]byte, length)
		copy(buf, payload[:length])
		payload = payload[length:]

		entries = append(entries, Entry{HandleID: handleID, Buf: buf})
	}
	return entries, nil
}
