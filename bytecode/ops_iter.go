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

// GetIter replaces TOS (an iterable) with an iterator over it.
func (e *Emitter) GetIter() {
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.putByte(opGetIter)
	e.clearReturnFlag()
}

// ForIter advances the iterator at TOS, pushing its next value, or
// jumps to l and pops the exhausted iterator if there isn't one.
func (e *Emitter) ForIter(l Label) {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putUnsignedLabel(opForIter, l)
	e.clearReturnFlag()
}

// ForIterEnd records the stack effect of falling off the end of a
// for-loop body back to its ForIter: no opcode, bookkeeping only.
func (e *Emitter) ForIterEnd() {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
}
