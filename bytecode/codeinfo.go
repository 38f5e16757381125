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
	"encoding/binary"

	"github.com/willcharlton/pybc/qstr"
)

// writeCodeInfoHeader writes the 4-byte code_info_size field (0 until
// CODE_SIZE finishes, final value thereafter) and the two interned
// string references (source filename, simple name) that open every
// scope's code-info region.
func (e *Emitter) writeCodeInfoHeader() {
	sizeBuf := e.curCodeInfo(4)
	binary.LittleEndian.PutUint32(sizeBuf, uint32(e.codeInfoSize))

	fileBuf := e.curCodeInfo(4)
	qstr.PutLE(fileBuf, e.scope.SourceFile)

	nameBuf := e.curCodeInfo(4)
	qstr.PutLE(nameBuf, e.scope.SimpleName)
}

// writeBytecodePrelude writes the frame-slot count, exception-stack
// size, and cell-local table that open every scope's bytecode region,
// immediately after the code-info region in the finished buffer. It
// runs through the bytecode cursor, so every operation emitted
// afterwards is offset relative to the end of this prelude.
func (e *Emitter) writeBytecodePrelude() error {
	nState := e.scope.NumLocals + e.scope.StackSize
	if nState < 1 {
		nState = 1
	}
	stateBuf := e.curBytecode(2)
	binary.LittleEndian.PutUint16(stateBuf, uint16(nState))

	excBuf := e.curBytecode(2)
	binary.LittleEndian.PutUint16(excBuf, uint16(e.scope.ExcStackSize))

	cells := e.scope.CellLocals()
	if len(cells) > 255 {
		return e.sess.Errf(e.lastSourceLine, "too many cell variables (%d, max 255)", len(cells))
	}
	countBuf := e.curBytecode(1)
	countBuf[0] = byte(len(cells))
	for _, c := range cells {
		b := e.curBytecode(1)
		b[0] = byte(c)
	}
	return nil
}

// SetSourceLine records that subsequent operations originate from
// source line n. A non-monotonic n (n <= last recorded line) is
// ignored, matching the driver's contract of emitting line updates in
// non-decreasing order except where the parser revisits a line.
func (e *Emitter) SetSourceLine(n int) {
	if n <= e.lastSourceLine {
		return
	}
	e.emitLineDelta(n)
	e.lastSourceLine = n
	e.lastSourceLineOffset = e.bytecodeOffset
}

// emitLineDelta appends one or more bytes to the line-number delta
// program for the jump from the previous (line, bytecode-offset)
// cursor to (n, current bytecode offset). Each byte packs up to 31
// bytes of bytecode advance in its low five bits and up to 7 lines of
// advance in its high three bits; emitting more bytes than one covers
// the remainder. Suppressed entirely at optimization level >= 3.
func (e *Emitter) emitLineDelta(n int) {
	if e.cfg.OptimizationLevel >= 3 {
		return
	}
	db := e.bytecodeOffset - e.lastSourceLineOffset
	dl := n - e.lastSourceLine
	for db > 0 || dl > 0 {
		bChunk := db
		if bChunk > 31 {
			bChunk = 31
		}
		lChunk := dl
		if lChunk > 7 {
			lChunk = 7
		}
		buf := e.curCodeInfo(1)
		buf[0] = byte(bChunk) | byte(lChunk)<<5
		db -= bChunk
		dl -= lChunk
	}
}

// terminateLineProgram writes the single zero byte that ends the
// line-number delta program.
func (e *Emitter) terminateLineProgram() {
	buf := e.curCodeInfo(1)
	buf[0] = 0
}

// alignCodeInfo pads the code-info cursor up to word size so the
// bytecode region that follows starts on a machine-word boundary.
func (e *Emitter) alignCodeInfo() {
	aligned := alignUp(e.codeInfoOffset, e.cfg.WordSize)
	if pad := aligned - e.codeInfoOffset; pad > 0 {
		buf := e.curCodeInfo(pad)
		for i := range buf {
			buf[i] = 0
		}
	}
}
