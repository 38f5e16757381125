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

import "github.com/willcharlton/pybc/qstr"

// LoadFast pushes local i. Slots 0, 1, and 2 use a dedicated short
// opcode with no operand; every other slot falls back to the
// general byte+uint form.
func (e *Emitter) LoadFast(i int) {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	switch i {
	case 0:
		e.putByte(opLoadFast0)
	case 1:
		e.putByte(opLoadFast1)
	case 2:
		e.putByte(opLoadFast2)
	default:
		e.putUint(opLoadFastN, uint64(i))
	}
	e.clearReturnFlag()
}

// StoreFast pops TOS into local i, using the same short-form
// optimization as LoadFast.
func (e *Emitter) StoreFast(i int) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	switch i {
	case 0:
		e.putByte(opStoreFast0)
	case 1:
		e.putByte(opStoreFast1)
	case 2:
		e.putByte(opStoreFast2)
	default:
		e.putUint(opStoreFastN, uint64(i))
	}
	e.clearReturnFlag()
}

// DeleteFast clears local i. This does not call pre(): the VM opcode
// is assumed to have no operand-stack effect, so no delta is recorded
// here either.
// TODO: confirm against the VM decoder that delete_fast truly has no
// stack effect; if it does, this needs a pre() call like its peers.
func (e *Emitter) DeleteFast(i int) {
	e.putUint(opDeleteFastN, uint64(i))
	e.clearReturnFlag()
}

// LoadDeref pushes the value of cell/free variable i.
func (e *Emitter) LoadDeref(i int) {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putUint(opLoadDeref, uint64(i))
	e.clearReturnFlag()
}

// StoreDeref pops TOS into cell/free variable i.
func (e *Emitter) StoreDeref(i int) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putUint(opStoreDeref, uint64(i))
	e.clearReturnFlag()
}

// DeleteDeref clears cell/free variable i. See DeleteFast's doc
// comment: no stack delta is recorded, by design.
func (e *Emitter) DeleteDeref(i int) {
	e.putUint(opDeleteDeref, uint64(i))
	e.clearReturnFlag()
}

// LoadName pushes the value bound to identifier q, searching the
// scope chain the way an unqualified name reference does outside
// module scope.
func (e *Emitter) LoadName(q qstr.ID) {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putQstr(opLoadName, q)
	e.clearReturnFlag()
}

// StoreName pops TOS into identifier q.
func (e *Emitter) StoreName(q qstr.ID) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putQstr(opStoreName, q)
	e.clearReturnFlag()
}

// DeleteName removes identifier q's binding.
func (e *Emitter) DeleteName(q qstr.ID) {
	e.putQstr(opDeleteName, q)
	e.clearReturnFlag()
}

// LoadGlobal pushes the value bound to global identifier q.
func (e *Emitter) LoadGlobal(q qstr.ID) {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putQstr(opLoadGlobal, q)
	e.clearReturnFlag()
}

// StoreGlobal pops TOS into global identifier q.
func (e *Emitter) StoreGlobal(q qstr.ID) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putQstr(opStoreGlobal, q)
	e.clearReturnFlag()
}

// DeleteGlobal removes global identifier q's binding.
func (e *Emitter) DeleteGlobal(q qstr.ID) {
	e.putQstr(opDeleteGlobal, q)
	e.clearReturnFlag()
}
