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

// starNulls normalizes a star call's stack to the canonical layout the
// VM expects directly below the call opcode — kwargs dict, then args
// tuple — by synthesizing whichever of the two the caller didn't
// already push.
func (e *Emitter) starNulls(starArgs, starKwargs bool) {
	switch {
	case starArgs && !starKwargs:
		e.LoadNull()
		e.RotTwo()
	case starKwargs && !starArgs:
		e.LoadNull()
	}
}

// CallFunction calls the callable nPos+2*nKw entries below TOS, or
// when starArgs/starKwargs is set, the additional args-tuple and/or
// kwargs-dict entries the caller has already (partially) pushed.
func (e *Emitter) CallFunction(nPos, nKw int, starArgs, starKwargs bool) {
	star := starArgs || starKwargs
	e.starNulls(starArgs, starKwargs)
	delta := -nPos - 2*nKw
	if star {
		delta -= 2
	}
	e.stack.pre(e.sess, delta, &e.scope.StackSize)
	op := opCallFunction
	if star {
		op = opCallFunctionVar
	}
	e.putUint(op, uint64(nKw)<<8|uint64(nPos))
	e.clearReturnFlag()
}

// CallMethod is CallFunction's counterpart for a bound-method-style
// call, where the callable sits one entry deeper than the arguments
// because LoadMethod leaves the receiver underneath it.
func (e *Emitter) CallMethod(nPos, nKw int, starArgs, starKwargs bool) {
	star := starArgs || starKwargs
	e.starNulls(starArgs, starKwargs)
	delta := -nPos - 2*nKw - 1
	if star {
		delta -= 2
	}
	e.stack.pre(e.sess, delta, &e.scope.StackSize)
	op := opCallMethod
	if star {
		op = opCallMethodVar
	}
	e.putUint(op, uint64(nKw)<<8|uint64(nPos))
	e.clearReturnFlag()
}
