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

// LoadSubscr pops index and object and pushes object[index].
func (e *Emitter) LoadSubscr() {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putByte(opLoadSubscr)
	e.clearReturnFlag()
}

// StoreSubscr pops index, object, and value and assigns
// object[index] = value.
func (e *Emitter) StoreSubscr() {
	e.stack.pre(e.sess, -3, &e.scope.StackSize)
	e.putByte(opStoreSubscr)
	e.clearReturnFlag()
}

// DeleteSubscr deletes object[index]. Like DeleteAttr, it has no
// dedicated opcode: load_null; rot_three; store_subscr.
func (e *Emitter) DeleteSubscr() {
	e.LoadNull()
	e.RotThree()
	e.StoreSubscr()
}
