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
	"fmt"

	"github.com/willcharlton/pybc/qstr"
	"github.com/willcharlton/pybc/scope"
)

// Memory is a reference Host that keeps every published scope in a
// map, keyed by its raw code handle. It is not a virtual machine — it
// exists so tests can load a compiled scope's buffer without a real VM
// attached.
type Memory struct {
	scopes map[scope.RawCode]*Published
}

// NewMemory returns an empty in-memory host.
func NewMemory() *Memory {
	return &Memory{scopes: make(map[scope.RawCode]*Published)}
}

func (m *Memory) AssignBytecode(handle scope.RawCode, buf []byte, totalSize int,
	nPos, nKwonly int, argNames []qstr.ID, scopeFlags scope.Flags) error {
	if handle == nil {
		return fmt.Errorf("vmhost: nil raw code handle")
	}
	if len(buf) != totalSize {
		return fmt.Errorf("vmhost: buffer length %d does not match totalSize %d", len(buf), totalSize)
	}
	m.scopes[handle] = &Published{
		Buf:        buf,
		TotalSize:  totalSize,
		NPos:       nPos,
		NKwonly:    nKwonly,
		ArgNames:   argNames,
		ScopeFlags: scopeFlags,
	}
	return nil
}

// Lookup returns the published state for handle, if any.
func (m *Memory) Lookup(handle scope.RawCode) (*Published, bool) {
	p, ok := m.scopes[handle]
	return p, ok
}

// Len reports how many scopes have been published.
func (m *Memory) Len() int { return len(m.scopes) }
