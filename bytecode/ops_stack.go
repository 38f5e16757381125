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

// DupTop duplicates TOS.
func (e *Emitter) DupTop() {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putByte(opDupTop)
	e.clearReturnFlag()
}

// DupTopTwo duplicates the top two stack entries, preserving order.
func (e *Emitter) DupTopTwo() {
	e.stack.pre(e.sess, 2, &e.scope.StackSize)
	e.putByte(opDupTopTwo)
	e.clearReturnFlag()
}

// PopTop discards TOS.
func (e *Emitter) PopTop() {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putByte(opPopTop)
	e.clearReturnFlag()
}

// RotTwo swaps the top two stack entries. Net stack effect is zero.
func (e *Emitter) RotTwo() {
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.putByte(opRotTwo)
	e.clearReturnFlag()
}

// RotThree lifts the third-from-top entry to TOS, shifting the other
// two down. Net stack effect is zero.
func (e *Emitter) RotThree() {
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.putByte(opRotThree)
	e.clearReturnFlag()
}
