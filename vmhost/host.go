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

// Package vmhost defines the code-registration interface the emitter
// publishes a finished scope through (§6), plus a reference in-memory
// implementation used by tests.
package vmhost

import (
	"github.com/willcharlton/pybc/qstr"
	"github.com/willcharlton/pybc/scope"
)

// Host is the VM side of the handoff: once a scope's buffer has been
// finalized (end_pass of the EMIT pass), the emitter calls
// AssignBytecode exactly once and, after it returns, never mutates the
// buffer again.
type Host interface {
	AssignBytecode(handle scope.RawCode, buf []byte, totalSize int,
		nPos, nKwonly int, argNames []qstr.ID, scopeFlags scope.Flags) error
}

// Published is one scope's worth of state captured by Memory.
type Published struct {
	Buf        []byte
	TotalSize  int
	NPos       int
	NKwonly    int
	ArgNames   []qstr.ID
	ScopeFlags scope.Flags
}
