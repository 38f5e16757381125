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

// LoadConstNone pushes the None singleton.
func (e *Emitter) LoadConstNone() {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putByte(opLoadConstNone)
	e.clearReturnFlag()
}

// LoadConstTrue pushes the True singleton.
func (e *Emitter) LoadConstTrue() {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putByte(opLoadConstTrue)
	e.clearReturnFlag()
}

// LoadConstFalse pushes the False singleton.
func (e *Emitter) LoadConstFalse() {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putByte(opLoadConstFalse)
	e.clearReturnFlag()
}

// LoadConstEllipsis pushes the Ellipsis singleton.
func (e *Emitter) LoadConstEllipsis() {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putByte(opLoadConstEllipsis)
	e.clearReturnFlag()
}

// LoadConstSmallInt pushes the signed integer v, encoded inline as a
// variable-length immediate rather than an interned constant.
func (e *Emitter) LoadConstSmallInt(v int64) {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putInt(opLoadConstSmallInt, v)
	e.clearReturnFlag()
}

// LoadConstObj pushes a big integer, decimal, string, or bytes
// constant identified by an interned-string (qstr) reference.
func (e *Emitter) LoadConstObj(id qstr.ID) {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putQstr(opLoadConstObj, id)
	e.clearReturnFlag()
}

// LoadNull pushes the internal "null" sentinel used, among other
// places, to synthesize delete_attr and delete_subscr out of
// load/rotate/store.
func (e *Emitter) LoadNull() {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putByte(opLoadNull)
	e.clearReturnFlag()
}
