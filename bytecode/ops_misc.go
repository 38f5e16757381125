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

import (
	"github.com/willcharlton/pybc/qstr"
	"github.com/willcharlton/pybc/scope"
)

// ImportName pops the fromlist and level and pushes the named module.
func (e *Emitter) ImportName(q qstr.ID) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putQstr(opImportName, q)
	e.clearReturnFlag()
}

// ImportFrom pushes attribute q of the module at TOS, leaving the
// module itself in place for any further import-from of the same
// module.
func (e *Emitter) ImportFrom(q qstr.ID) {
	e.stack.pre(e.sess, 1, &e.scope.StackSize)
	e.putQstr(opImportFrom, q)
	e.clearReturnFlag()
}

// ImportStar pops the module at TOS and binds every public name it
// exports into the current namespace.
func (e *Emitter) ImportStar() {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putByte(opImportStar)
	e.clearReturnFlag()
}

// ReturnValue pops TOS and returns it from the current scope. Unlike
// every other operation it does not clear last_emit_was_return_value —
// it sets it, so the driver can elide a trailing implicit return.
func (e *Emitter) ReturnValue() {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putByte(opReturnValue)
	e.lastEmitWasReturnValue = true
}

// RaiseVarargs raises an exception built from the n (0, 1, or 2)
// operands below TOS: n==0 re-raises the active exception, n==1
// raises a bare exception value, n==2 additionally chains a cause.
func (e *Emitter) RaiseVarargs(n int) {
	e.stack.pre(e.sess, -n, &e.scope.StackSize)
	e.putByteByte(opRaiseVarargs, byte(n))
	e.clearReturnFlag()
}

// YieldValue suspends the current generator, yielding TOS, and marks
// the enclosing scope as a generator.
func (e *Emitter) YieldValue() {
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.scope.Flags |= scope.FlagGenerator
	e.putByte(opYieldValue)
	e.clearReturnFlag()
}

// YieldFrom delegates iteration to the sub-iterator at TOS, marking
// the enclosing scope as a generator.
func (e *Emitter) YieldFrom() {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.scope.Flags |= scope.FlagGenerator
	e.putByte(opYieldFrom)
	e.clearReturnFlag()
}

// StartExceptHandler records the six stack entries the VM pushes when
// it dispatches to an exception handler (the exception itself plus
// traceback bookkeeping). It emits nothing: the handler's entry is a
// jump target, not an instruction this package encodes.
func (e *Emitter) StartExceptHandler() {
	e.stack.pre(e.sess, 6, &e.scope.StackSize)
}

// EndExceptHandler records the five stack entries PopExcept/EndFinally
// leave behind as a handler's bookkeeping is torn down.
func (e *Emitter) EndExceptHandler() {
	e.stack.pre(e.sess, -5, &e.scope.StackSize)
}
