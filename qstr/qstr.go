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

// Package qstr implements the interned-string table referenced
// throughout the bytecode format as "qstr": a 32-bit handle standing in
// for a source identifier, string literal, or filename.
package qstr

import (
	"encoding/binary"
	"sort"

	"github.com/dchest/siphash"
	"golang.org/x/exp/maps"
)

// ID is the interned-string identifier embedded in the bytecode stream
// (via byte+qstr encoding) and in the Scope contract's name fields.
type ID uint32

// Fixed siphash key for the table's bucket hash: the same string lands
// in the same bucket in every process and every build.
var hashKey0, hashKey1 uint64 = 0x0123456789abcdef, 0xfedcba9876543210

// bucketEntry is one chained slot in Table.buckets: the string is kept
// alongside its id so a hash collision can be resolved by equality
// instead of silently aliasing two different identifiers.
type bucketEntry struct {
	str string
	id  ID
}

// Table interns strings into stable, process-local IDs. Strings are
// bucketed on their siphash-2-4 digest rather than kept in a plain
// map[string]ID, the way a symbol table guards its string pool against
// hash-flooding from adversarial or pathological input. Zero value is
// ready to use.
type Table struct {
	buckets map[uint64][]bucketEntry
	byID    []string
}

// Intern returns the ID for s, assigning a fresh one on first sight.
func (t *Table) Intern(s string) ID {
	if t.buckets == nil {
		t.buckets = make(map[uint64][]bucketEntry)
	}
	h := hash64(s)
	for _, e := range t.buckets[h] {
		if e.str == s {
			return e.id
		}
	}
	id := ID(len(t.byID))
	t.byID = append(t.byID, s)
	t.buckets[h] = append(t.buckets[h], bucketEntry{str: s, id: id})
	return id
}

// Lookup returns the string for id, if interned.
func (t *Table) Lookup(id ID) (string, bool) {
	if int(id) < 0 || int(id) >= len(t.byID) {
		return "", false
	}
	return t.byID[id], true
}

// Len returns the number of interned strings.
func (t *Table) Len() int { return len(t.byID) }

// hash64 computes the siphash-2-4 digest of s used as Table's bucket
// key.
func hash64(s string) uint64 {
	return siphash.Hash(hashKey0, hashKey1, []byte(s))
}

// Dump returns a deterministic, sorted snapshot of the table as
// id->string pairs, so Go's randomized map iteration (over both the
// bucket map and the bucket chains) never leaks into output.
func (t *Table) Dump() []Entry {
	hashes := maps.Keys(t.buckets)
	sort.Slice(hashes, func(i, j int) bool { return hashes[i] < hashes[j] })
	out := make([]Entry, 0, len(t.byID))
	for _, h := range hashes {
		for _, e := range t.buckets[h] {
			out = append(out, Entry{ID: e.id, Str: e.str})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Entry is one row of Table.Dump.
type Entry struct {
	ID  ID
	Str string
}

// PutLE writes id little-endian into buf[:4], matching the 4-byte
// qstr reference fields embedded in the code-info header (source
// filename, simple name).
func PutLE(buf []byte, id ID) {
	binary.LittleEndian.PutUint32(buf, uint32(id))
}
