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

// curBytecode advances the bytecode cursor by n bytes and returns the
// slice to write into. In pre-EMIT passes the slice is scratch space
// thrown away after this call; in EMIT it's a window into code_base.
// This single discipline is what guarantees the byte cursor lands on
// the same offset in every pass.
func (e *Emitter) curBytecode(n int) []byte {
	if e.pass == PassEmit {
		start := e.codeInfoSize + e.bytecodeOffset
		e.bytecodeOffset += n
		return e.codeBase[start : start+n]
	}
	e.bytecodeOffset += n
	if n <= len(e.scratch) {
		return e.scratch[:n]
	}
	return make([]byte, n)
}

// curCodeInfo is curBytecode's counterpart for the code-info region.
func (e *Emitter) curCodeInfo(n int) []byte {
	if e.pass == PassEmit {
		start := e.codeInfoOffset
		e.codeInfoOffset += n
		return e.codeBase[start : start+n]
	}
	e.codeInfoOffset += n
	if n <= len(e.scratch) {
		return e.scratch[:n]
	}
	return make([]byte, n)
}

// putByte emits a single literal byte (an opcode with no operands).
func (e *Emitter) putByte(op bcop) {
	buf := e.curBytecode(1)
	buf[0] = byte(op)
}

// putByteByte emits an opcode followed by a one-byte immediate.
func (e *Emitter) putByteByte(op bcop, imm byte) {
	buf := e.curBytecode(2)
	buf[0] = byte(op)
	buf[1] = imm
}

// putUint emits an opcode followed by an unsigned variable-length
// integer: big-endian seven-bit groups, continuation bit set on every
// byte but the last.
func (e *Emitter) putUint(op bcop, v uint64) {
	var tmp [10]byte
	enc := appendVarintUnsigned(tmp[:0], v)
	buf := e.curBytecode(1 + len(enc))
	buf[0] = byte(op)
	copy(buf[1:], enc)
}

// putInt emits an opcode followed by a signed variable-length integer:
// same grouping as putUint, but the top stored bit (mask 0x40) of the
// most significant group is a sign bit, with an extra 0x7F/0x00 padding
// byte prepended whenever the natural encoding's sign bit would
// otherwise be ambiguous.
func (e *Emitter) putInt(op bcop, v int64) {
	var tmp [10]byte
	enc := appendVarintSigned(tmp[:0], v)
	buf := e.curBytecode(1 + len(enc))
	buf[0] = byte(op)
	copy(buf[1:], enc)
}

// putQstr emits an opcode followed by an interned-string id, encoded
// exactly like putUint.
func (e *Emitter) putQstr(op bcop, id qstr.ID) {
	e.putUint(op, uint64(id))
}

// putPtr emits an opcode, pads up to the configured word size, then
// writes a word-sized value as-is. Used for the only two pointer-sized
// immediates in the operation surface: MAKE_FUNCTION's and
// MAKE_CLOSURE's reference to a child scope's raw_code.
func (e *Emitter) putPtr(op bcop, ptr uint64) {
	buf := e.curBytecode(1)
	buf[0] = byte(op)

	aligned := alignUp(e.bytecodeOffset, e.cfg.WordSize)
	if pad := aligned - e.bytecodeOffset; pad > 0 {
		padBuf := e.curBytecode(pad)
		for i := range padBuf {
			padBuf[i] = 0
		}
	}

	wbuf := e.curBytecode(e.cfg.WordSize)
	switch e.cfg.WordSize {
	case 8:
		binary.LittleEndian.PutUint64(wbuf, ptr)
	case 4:
		binary.LittleEndian.PutUint32(wbuf, uint32(ptr))
	default:
		e.sess.Bug("unsupported word size %d", e.cfg.WordSize)
	}
}

// putUnsignedLabel emits an opcode followed by a 16-bit little-endian
// offset relative to the byte immediately after the instruction,
// computed from the label table (zero during pre-EMIT passes, since
// those writes are scratch anyway).
func (e *Emitter) putUnsignedLabel(op bcop, l Label) {
	instrStart := e.bytecodeOffset
	buf := e.curBytecode(3)
	buf[0] = byte(op)
	var rel int32
	if e.pass == PassEmit {
		off := e.labels.MustOffset(e.sess, l)
		rel = int32(off) - int32(instrStart+3)
	}
	binary.LittleEndian.PutUint16(buf[1:3], uint16(rel))
}

// putSignedLabel is putUnsignedLabel's counterpart for conditional and
// unconditional jumps, whose displacement is biased by +0x8000 so that
// "no displacement" (jump to the very next instruction) is the
// recognizable sentinel 0x8000.
func (e *Emitter) putSignedLabel(op bcop, l Label) {
	instrStart := e.bytecodeOffset
	buf := e.curBytecode(3)
	buf[0] = byte(op)
	var stored uint16
	if e.pass == PassEmit {
		off := e.labels.MustOffset(e.sess, l)
		rel := int32(off) - int32(instrStart+3)
		stored = uint16(rel + 0x8000)
	}
	binary.LittleEndian.PutUint16(buf[1:3], stored)
}

// appendVarintUnsigned appends v's big-endian seven-bit-group encoding
// to dst and returns the result.
func appendVarintUnsigned(dst []byte, v uint64) []byte {
	var tmp [10]byte
	i := len(tmp) - 1
	tmp[i] = byte(v & 0x7f)
	v >>= 7
	for v != 0 {
		i--
		tmp[i] = byte(v&0x7f) | 0x80
		v >>= 7
	}
	return append(dst, tmp[i:]...)
}

// appendVarintSigned appends v's signed variable-length encoding to
// dst and returns the result. The algorithm is the little-endian
// signed-LEB128 termination rule run in reverse: collect seven-bit
// groups least-significant first, stopping as soon as the remaining
// sign-extended value is fully represented by the group just emitted,
// then reverse for big-endian output.
func appendVarintSigned(dst []byte, v int64) []byte {
	var groups []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		done := (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0)
		groups = append(groups, b)
		if done {
			break
		}
	}
	for i := len(groups) - 1; i >= 0; i-- {
		b := groups[i]
		if i != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
	}
	return dst
}

// decodeVarintUnsigned reads one unsigned variable-length integer from
// the start of buf and returns its value and width in bytes. A width of
// 0 means buf ended before the integer's last byte.
func decodeVarintUnsigned(buf []byte) (uint64, int) {
	var v uint64
	n := 0
	for {
		if n >= len(buf) {
			return 0, 0
		}
		b := buf[n]
		v = v<<7 | uint64(b&0x7f)
		n++
		if b&0x80 == 0 {
			break
		}
	}
	return v, n
}

// decodeVarintSigned reads one signed variable-length integer from the
// start of buf and returns its value and width in bytes. A width of 0
// means buf ended before the integer's last byte.
func decodeVarintSigned(buf []byte) (int64, int) {
	var v uint64
	n := 0
	for {
		if n >= len(buf) {
			return 0, 0
		}
		b := buf[n]
		v = v<<7 | uint64(b&0x7f)
		n++
		if b&0x80 == 0 {
			break
		}
	}
	bits := uint(7 * n)
	signBit := uint64(1) << (bits - 1)
	if v&signBit != 0 {
		v -= uint64(1) << bits
	}
	return int64(v), n
}
