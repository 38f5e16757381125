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

// LoadAttr replaces TOS with TOS.q. Net stack effect is zero: it pops
// the object and pushes the attribute value.
func (e *Emitter) LoadAttr(q qstr.ID) {
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.putQstr(opLoadAttr, q)
	e.clearReturnFlag()
}

// LoadMethod pushes a bound-method-or-function marker alongside the
// receiver, ahead of a call_method — one net push, since the receiver
// stays on the stack underneath the looked-up callable.
func (e *Emitter) LoadMethod(q qstr.ID) {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putQstr(opLoadMethod, q)
	e.clearReturnFlag()
}

// StoreAttr pops value and object off the stack and assigns
// object.q = value.
func (e *Emitter) StoreAttr(q qstr.ID) {
	e.stack.pre(e.sess, -2, &e.scope.StackSize)
	e.putQstr(opStoreAttr, q)
	e.clearReturnFlag()
}

// DeleteAttr deletes object.q. It has no dedicated opcode: it is
// synthesized as load_null; rot_two; store_attr(q), matching the
// table's specified lowering.
func (e *Emitter) DeleteAttr(q qstr.ID) {
	e.LoadNull()
	e.RotTwo()
	e.StoreAttr(q)
}
