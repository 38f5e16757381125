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

// MakeFunction pushes a new function object wrapping rawCode, the
// finished child scope's published bytecode handle. hasDefaults
// indicates the caller has already pushed the positional- and
// keyword-defaults pair, which this op consumes.
func (e *Emitter) MakeFunction(hasDefaults bool, rawCode uint64) {
	if hasDefaults {
		e.stack.pre(e.sess, -1, &e.scope.StackSize)
		e.putPtr(opMakeFunctionDefargs, rawCode)
	} else {
		e.stack.pre(e.sess, 1, &e.scope.StackSize)
		e.putPtr(opMakeFunction, rawCode)
	}
	e.clearReturnFlag()
}

// MakeClosure is MakeFunction's counterpart for a child scope that
// closes over nClosedOver cell variables, which the caller has already
// pushed as nClosedOver separate stack entries, in addition to the
// (optional) defaults pair; all of them are consumed.
func (e *Emitter) MakeClosure(hasDefaults bool, nClosedOver int, rawCode uint64) {
	if hasDefaults {
		e.stack.pre(e.sess, 1-nClosedOver-2, &e.scope.StackSize)
		e.putPtr(opMakeClosureDefargs, rawCode)
	} else {
		e.stack.pre(e.sess, 1-nClosedOver, &e.scope.StackSize)
		e.putPtr(opMakeClosure, rawCode)
	}
	buf := e.curBytecode(1)
	buf[0] = byte(nClosedOver)
	e.clearReturnFlag()
}
