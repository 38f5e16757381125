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
	"fmt"

	"golang.org/x/sys/cpu"

	"github.com/willcharlton/pybc/diag"
	"github.com/willcharlton/pybc/emitconfig"
	"github.com/willcharlton/pybc/scope"
	"github.com/willcharlton/pybc/vmhost"
)

// Emitter holds all state for one scope being compiled: the pass
// controller, the byte writer's cursors, the label table, and the
// simulated operand stack. One instance is created per scope and
// reused across all four passes; it is destroyed once the scope's code
// has been published to the VM host via raw_code.
type Emitter struct {
	sess diag.Session
	cfg  emitconfig.Config
	host vmhost.Host

	pass  Pass
	scope *scope.Scope

	stack  stackTracker
	labels *LabelTable

	nextLabel int

	codeInfoOffset int
	bytecodeOffset int
	codeInfoSize   int
	bytecodeSize   int
	codeBase       []byte

	lastSourceLine         int
	lastSourceLineOffset   int
	lastEmitWasReturnValue bool

	scratch [16]byte

	// Compiling independent scopes concurrently (§5) commonly means a
	// slice or pool of Emitters; this pad keeps one scope's hot cursor
	// fields off the next one's cache line.
	_ cpu.CacheLinePad
}

// NewEmitter constructs an emitter with a fixed label-table capacity
// taken from cfg.MaxNumLabels.
func NewEmitter(sess diag.Session, cfg emitconfig.Config, host vmhost.Host) *Emitter {
	return &Emitter{
		sess:   sess,
		cfg:    cfg,
		host:   host,
		labels: NewLabelTable(cfg.MaxNumLabels),
	}
}

// LastEmitWasReturnValue reports whether the most recent operation was
// return_value — the driver uses this to elide a trailing implicit
// return.
func (e *Emitter) LastEmitWasReturnValue() bool { return e.lastEmitWasReturnValue }

// clearReturnFlag is called by every operation except return_value.
func (e *Emitter) clearReturnFlag() { e.lastEmitWasReturnValue = false }

// StartPass resets per-pass state and begins a new traversal of sc's
// operation sequence. Passes must run in the order SCOPE, STACK_SIZE,
// CODE_SIZE, EMIT for one scope.
func (e *Emitter) StartPass(pass Pass, sc *scope.Scope) error {
	e.pass = pass
	e.scope = sc
	e.stack.reset()
	e.lastEmitWasReturnValue = false
	e.codeInfoOffset = 0
	e.bytecodeOffset = 0
	e.nextLabel = 0
	e.lastSourceLine = 0
	e.lastSourceLineOffset = 0

	if pass.preEmit() {
		e.labels.Clear()
	}

	e.writeCodeInfoHeader()
	if err := e.writeBytecodePrelude(); err != nil {
		return err
	}
	return nil
}

// NewLabel allocates the next label id for this pass. The same call
// sequence must allocate the same ids, in the same order, on every
// pass over one scope — callers achieve this simply by running the
// identical operation sequence each time.
func (e *Emitter) NewLabel() (Label, error) {
	if e.nextLabel >= e.labels.cap() {
		return 0, e.sess.Errf(e.lastSourceLine, "too many labels (max %d)", e.labels.cap())
	}
	id := Label(e.nextLabel)
	e.nextLabel++
	return id, nil
}

// LabelAssign binds l to the current bytecode offset. Exactly one call
// per referenced label is required before EMIT completes.
func (e *Emitter) LabelAssign(l Label) {
	e.labels.Assign(e.sess, e.pass, l, e.bytecodeOffset)
}

// EndPass terminates the line-number program, aligns the code-info
// region up to word size, and — depending on the pass — either
// finalizes buffer sizes and allocates code_base (CODE_SIZE) or
// publishes the finished buffer to the VM host (EMIT).
func (e *Emitter) EndPass() error {
	e.terminateLineProgram()
	e.alignCodeInfo()

	e.stack.assertZero(e.sess)

	switch e.pass {
	case PassCodeSize:
		e.codeInfoSize = e.codeInfoOffset
		e.bytecodeSize = e.bytecodeOffset
		e.codeBase = make([]byte, e.codeInfoSize+e.bytecodeSize)
	case PassEmit:
		if e.codeInfoOffset != e.codeInfoSize || e.bytecodeOffset != e.bytecodeSize {
			e.sess.Bug("emitted size (%d/%d) does not match CODE_SIZE totals (%d/%d)",
				e.codeInfoOffset, e.bytecodeOffset, e.codeInfoSize, e.bytecodeSize)
		}
		return e.publish()
	}
	return nil
}

// publish hands the finished buffer to the VM host's code-registration
// interface, per §6.
func (e *Emitter) publish() error {
	if e.scope.RawCode == nil {
		e.scope.RawCode = new(scope.RawCode)
	}
	argNames := e.scope.ArgNames()
	total := e.codeInfoSize + e.bytecodeSize
	if err := e.host.AssignBytecode(e.scope.RawCode, e.codeBase, total,
		e.scope.NumPosArgs, e.scope.NumKwonlyArgs, argNames, e.scope.Flags); err != nil {
		return fmt.Errorf("bytecode: publishing scope: %w", err)
	}
	return nil
}

// alignUp rounds x up to the next multiple of align (align must be a
// power of two, which word sizes always are).
func alignUp(x, align int) int {
	if align <= 0 {
		return x
	}
	return (x + align - 1) / align * align
}

// cap is a small accessor so Emitter doesn't need to know LabelTable's
// internal field name.
func (t *LabelTable) cap() int { return len(t.offsets) }
