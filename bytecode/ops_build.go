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

// BuildTuple pops n values and pushes a tuple of them.
func (e *Emitter) BuildTuple(n int) {
	e.stack.pre(e.sess, 1-n, &e.scope.StackSize)
	e.putUint(opBuildTuple, uint64(n))
	e.clearReturnFlag()
}

// BuildList pops n values and pushes a list of them.
func (e *Emitter) BuildList(n int) {
	e.stack.pre(e.sess, 1-n, &e.scope.StackSize)
	e.putUint(opBuildList, uint64(n))
	e.clearReturnFlag()
}

// BuildSet pops n values and pushes a set of them.
func (e *Emitter) BuildSet(n int) {
	e.stack.pre(e.sess, 1-n, &e.scope.StackSize)
	e.putUint(opBuildSet, uint64(n))
	e.clearReturnFlag()
}

// BuildMap pushes a new empty map sized to hold n entries.
func (e *Emitter) BuildMap(n int) {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putUint(opBuildMap, uint64(n))
	e.clearReturnFlag()
}

// StoreMap pops key and value and inserts them into the map beneath.
func (e *Emitter) StoreMap() {
	e.stack.pre(e.sess, -2, &e.scope.StackSize)
	e.putByte(opStoreMap)
	e.clearReturnFlag()
}

// ListAppend pops TOS and appends it to the list i entries below TOS.
func (e *Emitter) ListAppend(i int) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putUint(opListAppend, uint64(i))
	e.clearReturnFlag()
}

// SetAdd pops TOS and adds it to the set i entries below TOS.
func (e *Emitter) SetAdd(i int) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putUint(opSetAdd, uint64(i))
	e.clearReturnFlag()
}

// MapAdd pops key and value and inserts them into the map i entries
// below TOS.
func (e *Emitter) MapAdd(i int) {
	e.stack.pre(e.sess, -2, &e.scope.StackSize)
	e.putUint(opMapAdd, uint64(i))
	e.clearReturnFlag()
}

// BuildSlice pops n values (2 or 3: start, stop, and an optional step)
// and pushes a slice object.
func (e *Emitter) BuildSlice(n int) {
	e.stack.pre(e.sess, 1-n, &e.scope.StackSize)
	e.putUint(opBuildSlice, uint64(n))
	e.clearReturnFlag()
}

// UnpackSequence pops a sequence and pushes its n elements in reverse
// order, ready for n consecutive stores.
func (e *Emitter) UnpackSequence(n int) {
	e.stack.pre(e.sess, n-1, &e.scope.StackSize)
	e.putUint(opUnpackSequence, uint64(n))
	e.clearReturnFlag()
}

// UnpackEx pops a sequence and pushes left leading elements, a
// remainder list, then right trailing elements, supporting starred
// assignment targets.
func (e *Emitter) UnpackEx(left, right int) {
	e.stack.pre(e.sess, left+right, &e.scope.StackSize)
	e.putUint(opUnpackEx, uint64(left)|uint64(right)<<8)
	e.clearReturnFlag()
}
