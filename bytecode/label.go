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

// Label names a symbolic jump destination, assigned to a concrete
// bytecode offset exactly once during the CODE_SIZE pass and read back
// during EMIT by every forward or backward jump that targets it (jumps
// in pre-EMIT passes write a placeholder without reading the table).
type Label int

const unresolved = -1

// breakMarkerBit flags a Label as the target of a for-loop break: such
// labels additionally require the iterator left on the stack by the
// loop's get_iter to be popped on the way out. The bit lives well above
// any realistic label count, so a marked label's low bits are still its
// plain table index.
const breakMarkerBit Label = 1 << 30

// MarkBreak returns l tagged as a break-from-for target.
func MarkBreak(l Label) Label { return l | breakMarkerBit }

// IsBreak reports whether l carries the break-from-for marker.
func IsBreak(l Label) bool { return l&breakMarkerBit != 0 }

// ClearBreak returns l with the break-from-for marker removed, i.e. the
// plain table index suitable for Assign/Offset/MustOffset.
func ClearBreak(l Label) Label { return l &^ breakMarkerBit }

// LabelTable is a flat array indexed by label id. Pre-EMIT passes fill
// it as label_assign calls are encountered in program order; EMIT reads
// it back without clearing it first, which is what makes forward jumps
// resolvable in a single additional pass.
type LabelTable struct {
	offsets []int
}

// NewLabelTable allocates a table sized for label ids 0..maxNumLabels-1.
func NewLabelTable(maxNumLabels int) *LabelTable {
	t := &LabelTable{offsets: make([]int, maxNumLabels)}
	t.Clear()
	return t
}

// Clear resets every slot to the unresolved sentinel. Called at the
// start of every pre-EMIT pass; never called before EMIT, so EMIT sees
// exactly what CODE_SIZE recorded.
func (t *LabelTable) Clear() {
	for i := range t.offsets {
		t.offsets[i] = unresolved
	}
}

// Assign records offset for id. In pre-EMIT passes this must be the
// label's first assignment; in EMIT it must match the value CODE_SIZE
// already recorded — a mismatch means a label's surrounding byte
// encoding shifted between passes, which breaks the whole two-pass
// algorithm and is always a compiler bug.
func (t *LabelTable) Assign(sess diag.Session, pass Pass, id Label, offset int) {
	if int(id) < 0 || int(id) >= len(t.offsets) {
		sess.Bug("label id %d out of range (max %d)", id, len(t.offsets))
	}
	if pass.preEmit() {
		if t.offsets[id] != unresolved {
			sess.Bug("label %d assigned more than once", id)
		}
		t.offsets[id] = offset
		return
	}
	if t.offsets[id] != offset {
		sess.Bug("label %d offset drifted between passes: recorded %d, now %d", id, t.offsets[id], offset)
	}
}

// Resolved reports whether id has been assigned a concrete offset.
func (t *LabelTable) Resolved(id Label) bool {
	return int(id) >= 0 && int(id) < len(t.offsets) && t.offsets[id] != unresolved
}

// Offset returns the offset recorded for id, or unresolved (-1) if the
// label has not been assigned yet — legitimate only while scanning a
// forward reference during a pre-EMIT pass, whose emitted bytes are
// scratch and discarded anyway.
func (t *LabelTable) Offset(id Label) int {
	if int(id) < 0 || int(id) >= len(t.offsets) {
		return unresolved
	}
	return t.offsets[id]
}

// MustOffset returns the offset recorded for id, reporting a compiler
// bug if the label was never assigned — the only place this can
// legitimately happen is during EMIT, where every referenced label
// must already be resolved from CODE_SIZE.
func (t *LabelTable) MustOffset(sess diag.Session, id Label) int {
	off := t.Offset(id)
	if off == unresolved {
		sess.Bug("label %d referenced but never assigned", id)
	}
	return off
}
