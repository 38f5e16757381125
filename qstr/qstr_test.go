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

package qstr

import "testing"

func TestInternIsIdempotent(t *testing.T) {
	var tbl Table
	a := tbl.Intern("foo")
	b := tbl.Intern("bar")
	c := tbl.Intern("foo")
	if a != c {
		t.Fatalf("Intern(\"foo\") returned different ids: %d, %d", a, c)
	}
	if a == b {
		t.Fatal("distinct strings must not collide on id")
	}
	if tbl.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", tbl.Len())
	}
}

func TestLookupRoundTrip(t *testing.T) {
	var tbl Table
	id := tbl.Intern("hello")
	s, ok := tbl.Lookup(id)
	if !ok || s != "hello" {
		t.Fatalf("Lookup(%d) = (%q, %v), want (\"hello\", true)", id, s, ok)
	}
	if _, ok := tbl.Lookup(id + 1); ok {
		t.Fatal("Lookup of an unassigned id should report false")
	}
}

func TestInternSeparatesBucketCollisions(t *testing.T) {
	var tbl Table
	want := hash64("foo")
	// Synthesize a same-bucket collision directly, since a real digest
	// collision within siphash's range isn't something a unit test can
	// rely on finding.
	tbl.buckets = map[uint64][]bucketEntry{want: {{str: "other", id: 7}}}
	tbl.byID = make([]string, 8)
	tbl.byID[7] = "other"

	id := tbl.Intern("foo")
	if id == 7 {
		t.Fatal("Intern must not alias a distinct string onto a same-bucket id")
	}
	s, ok := tbl.Lookup(id)
	if !ok || s != "foo" {
		t.Fatalf("Lookup(%d) = (%q, %v), want (\"foo\", true)", id, s, ok)
	}
	if entries := tbl.buckets[want]; len(entries) != 2 {
		t.Fatalf("bucket %d has %d entries, want 2 (chained, not replaced)", want, len(entries))
	}
}

func TestDumpIsSortedByID(t *testing.T) {
	var tbl Table
	tbl.Intern("zebra")
	tbl.Intern("apple")
	tbl.Intern("mango")

	entries := tbl.Dump()
	if len(entries) != 3 {
		t.Fatalf("Dump() returned %d entries, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].ID > entries[i].ID {
			t.Fatalf("Dump() not sorted by ID: %v", entries)
		}
	}
}

func TestPutLE(t *testing.T) {
	buf := make([]byte, 4)
	PutLE(buf, 0x01020304)
	want := []byte{0x04, 0x03, 0x02, 0x01}
	for i := range want {
		if buf[i] != want[i] {
			t.Fatalf("PutLE wrote % X, want % X", buf, want)
		}
	}
}
