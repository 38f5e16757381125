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

// Jump emits an unconditional jump to l.
func (e *Emitter) Jump(l Label) {
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.putSignedLabel(opJump, l)
	e.clearReturnFlag()
}

// PopJumpIfTrue pops TOS and jumps to l if it was truthy.
func (e *Emitter) PopJumpIfTrue(l Label) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putSignedLabel(opPopJumpIfTrue, l)
	e.clearReturnFlag()
}

// PopJumpIfFalse pops TOS and jumps to l if it was falsy.
func (e *Emitter) PopJumpIfFalse(l Label) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putSignedLabel(opPopJumpIfFalse, l)
	e.clearReturnFlag()
}

// JumpIfTrueOrPop jumps to l, leaving TOS in place, if TOS is truthy;
// otherwise pops it and falls through.
func (e *Emitter) JumpIfTrueOrPop(l Label) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putSignedLabel(opJumpIfTrueOrPop, l)
	e.clearReturnFlag()
}

// JumpIfFalseOrPop is JumpIfTrueOrPop's falsy counterpart.
func (e *Emitter) JumpIfFalseOrPop(l Label) {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putSignedLabel(opJumpIfFalseOrPop, l)
	e.clearReturnFlag()
}

// UnwindJump jumps to l while unwinding depth exception-block levels.
// depth==0 degenerates to a plain jump, except that a label marked as a
// for-loop break target additionally pops the iterator left on the
// stack by get_iter. depth>0 emits the dedicated unwind_jump opcode
// followed by a signed label (with the break marker stripped before
// lookup) and a byte packing the break marker into its high bit and
// depth into the low bits.
func (e *Emitter) UnwindJump(l Label, depth int) {
	if depth == 0 {
		if IsBreak(l) {
			e.PopTop()
		}
		e.Jump(ClearBreak(l))
		return
	}
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.putSignedLabel(opUnwindJump, ClearBreak(l))
	flag := byte(depth & 0x7f)
	if IsBreak(l) {
		flag |= 0x80
	}
	buf := e.curBytecode(1)
	buf[0] = flag
	e.clearReturnFlag()
}

// SetupWith pushes the with-block bookkeeping entries the VM's
// exception unwinder expects (context manager, its __exit__, and the
// five-entry block marker) and registers l as the handler to jump to
// on an unhandled exception inside the block.
func (e *Emitter) SetupWith(l Label) {
	e.stack.pre(e.sess, 7, &e.scope.StackSize)
	e.putUnsignedLabel(opSetupWith, l)
	e.clearReturnFlag()
}

// WithCleanup pops the with-block bookkeeping pushed by SetupWith.
func (e *Emitter) WithCleanup() {
	e.stack.pre(e.sess, -7, &e.scope.StackSize)
	e.putByte(opWithCleanup)
	e.clearReturnFlag()
}

// SetupExcept registers l as the handler for a try/except block. Net
// stack effect is zero: the block marker it pushes is popped again by
// PopBlock/PopExcept on every exit path.
func (e *Emitter) SetupExcept(l Label) {
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.putUnsignedLabel(opSetupExcept, l)
	e.clearReturnFlag()
}

// SetupFinally registers l as the handler for a try/finally block.
func (e *Emitter) SetupFinally(l Label) {
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.putUnsignedLabel(opSetupFinally, l)
	e.clearReturnFlag()
}

// EndFinally pops the propagated-exception-or-None value a finally
// block's handler leaves on the stack, re-raising it if it was an
// exception.
func (e *Emitter) EndFinally() {
	e.stack.pre(e.sess, -1, &e.scope.StackSize)
	e.putByte(opEndFinally)
	e.clearReturnFlag()
}

// PopBlock discards the innermost exception-block marker on a normal
// exit path.
func (e *Emitter) PopBlock() {
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.putByte(opPopBlock)
	e.clearReturnFlag()
}

// PopExcept discards the innermost exception-block marker on an
// except-handler exit path.
func (e *Emitter) PopExcept() {
	e.stack.pre(e.sess, 0, &e.scope.StackSize)
	e.putByte(opPopExcept)
	e.clearReturnFlag()
}
