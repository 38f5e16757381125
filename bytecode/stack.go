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

package bytecode

import "github.com/willcharlton/pybc/diag"

// stackTracker is a delta accumulator with a maximum watermark and a
// zero-at-end invariant. Because the frontend emits operations in
// tree-walk order, every opcode's stack effect is statically known, so
// running the same operation sequence twice (once per pass) yields the
// scope's maximum stack depth without any real dataflow analysis.
type stackTracker struct {
	size int
}

// pre applies delta to the simulated stack and raises scopeMax if the
// new depth is a new watermark. Each single-instruction operation calls
// this once, before or after emitting its bytes (order doesn't matter
// since the two are independent side effects); composite operations
// such as DeleteAttr call it once per instruction they emit, and the
// delete_fast/delete_deref/delete_name/delete_global operations do not
// call it at all.
func (s *stackTracker) pre(sess diag.Session, delta int, scopeMax *int) {
	s.size += delta
	if s.size < 0 {
		sess.Bug("operand stack underflow (delta %d took depth to %d)", delta, s.size)
	}
	if s.size > *scopeMax {
		*scopeMax = s.size
	}
}

// reset zeroes the tracker at the start of a pass.
func (s *stackTracker) reset() { s.size = 0 }

// assertZero enforces the end_pass invariant: a non-zero remaining
// stack means some code path pushed without a matching pop (or vice
// versa), which is always a compiler bug.
func (s *stackTracker) assertZero(sess diag.Session) {
	if s.size != 0 {
		sess.Bug("non-zero operand stack (%d) at end of pass", s.size)
	}
}
