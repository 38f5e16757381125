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

package vmhost

import (
	"testing"

	"github.com/willcharlton/pybc/qstr"
	"github.com/willcharlton/pybc/scope"
)

func TestMemoryAssignAndLookup(t *testing.T) {
	m := NewMemory()
	handle := new(scope.RawCode)
	buf := []byte{1, 2, 3, 4}
	if err := m.AssignBytecode(handle, buf, 4, 1, 0, []qstr.ID{7}, scope.FlagVarArgs); err != nil {
		t.Fatalf("AssignBytecode: %v", err)
	}
	pub, ok := m.Lookup(handle)
	if !ok {
		t.Fatal("expected to find the published scope")
	}
	if pub.NPos != 1 || pub.ScopeFlags != scope.FlagVarArgs {
		t.Fatalf("published state mismatch: %+v", pub)
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
}

func TestMemoryRejectsNilHandle(t *testing.T) {
	m := NewMemory()
	if err := m.AssignBytecode(nil, []byte{1}, 1, 0, 0, nil, 0); err == nil {
		t.Fatal("expected an error for a nil raw code handle")
	}
}

func TestMemoryRejectsSizeMismatch(t *testing.T) {
	m := NewMemory()
	handle := new(scope.RawCode)
	if err := m.AssignBytecode(handle, []byte{1, 2}, 3, 0, 0, nil, 0); err == nil {
		t.Fatal("expected an error when buf length does not match totalSize")
	}
}

func TestMemoryLookupMiss(t *testing.T) {
	m := NewMemory()
	if _, ok := m.Lookup(new(scope.RawCode)); ok {
		t.Fatal("expected a lookup miss for an unregistered handle")
	}
}
