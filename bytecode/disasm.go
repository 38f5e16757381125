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
	"fmt"
)

// argKind classifies an opcode's operand shape for disassembly, the
// same role an opcode-info table's argument-type field plays for any
// bytecode disassembler.
type argKind int

const (
	argNone argKind = iota
	argByte
	argUint
	argInt
	argQstr
	argUnsignedLabel
	argSignedLabel
	argPtr
	argUnwindJump
	argClosure
)

var opArgKinds = [_maxbcop]argKind{
	opLoadConstNone:       argNone,
	opLoadConstTrue:       argNone,
	opLoadConstFalse:      argNone,
	opLoadConstEllipsis:   argNone,
	opLoadConstSmallInt:   argInt,
	opLoadConstObj:        argQstr,
	opLoadNull:            argNone,
	opLoadFast0:           argNone,
	opLoadFast1:           argNone,
	opLoadFast2:           argNone,
	opLoadFastN:           argUint,
	opStoreFast0:          argNone,
	opStoreFast1:          argNone,
	opStoreFast2:          argNone,
	opStoreFastN:          argUint,
	opDeleteFastN:         argUint,
	opLoadDeref:           argUint,
	opStoreDeref:          argUint,
	opDeleteDeref:         argUint,
	opLoadName:            argQstr,
	opStoreName:           argQstr,
	opDeleteName:          argQstr,
	opLoadGlobal:          argQstr,
	opStoreGlobal:         argQstr,
	opDeleteGlobal:        argQstr,
	opLoadAttr:            argQstr,
	opLoadMethod:          argQstr,
	opStoreAttr:           argQstr,
	opLoadSubscr:          argNone,
	opStoreSubscr:         argNone,
	opDupTop:              argNone,
	opDupTopTwo:           argNone,
	opPopTop:              argNone,
	opRotTwo:              argNone,
	opRotThree:            argNone,
	opJump:                argSignedLabel,
	opPopJumpIfTrue:       argSignedLabel,
	opPopJumpIfFalse:      argSignedLabel,
	opJumpIfTrueOrPop:     argSignedLabel,
	opJumpIfFalseOrPop:    argSignedLabel,
	opUnwindJump:          argUnwindJump,
	opSetupWith:           argUnsignedLabel,
	opWithCleanup:         argNone,
	opSetupExcept:         argUnsignedLabel,
	opSetupFinally:        argUnsignedLabel,
	opEndFinally:          argNone,
	opPopBlock:            argNone,
	opPopExcept:           argNone,
	opGetIter:             argNone,
	opForIter:             argUnsignedLabel,
	opUnaryOp:             argByte,
	opBinaryOp:            argByte,
	opNot:                 argNone,
	opBuildTuple:          argUint,
	opBuildList:           argUint,
	opBuildSet:            argUint,
	opBuildMap:            argUint,
	opStoreMap:            argNone,
	opListAppend:          argUint,
	opSetAdd:              argUint,
	opMapAdd:              argUint,
	opBuildSlice:          argUint,
	opUnpackSequence:      argUint,
	opUnpackEx:            argUint,
	opMakeFunction:        argPtr,
	opMakeFunctionDefargs: argPtr,
	opMakeClosure:         argClosure,
	opMakeClosureDefargs:  argClosure,
	opCallFunction:        argUint,
	opCallFunctionVar:     argUint,
	opCallMethod:          argUint,
	opCallMethodVar:       argUint,
	opImportName:          argQstr,
	opImportFrom:          argQstr,
	opImportStar:          argNone,
	opReturnValue:         argNone,
	opRaiseVarargs:        argByte,
	opYieldValue:          argNone,
	opYieldFrom:           argNone,
}

// Disassemble renders a published scope buffer (code-info region
// followed by bytecode region, exactly as publish() hands it to a
// vmhost.Host) as a human-readable instruction listing, one line per
// opcode plus a header summarizing the prelude.
func Disassemble(buf []byte, wordSize int) ([]string, error) {
	if len(buf) < 12 {
		return nil, fmt.Errorf("bytecode: buffer too short for a code-info header (%d bytes)", len(buf))
	}
	codeInfoSize := binary.LittleEndian.Uint32(buf[0:4])
	sourceFile := binary.LittleEndian.Uint32(buf[4:8])
	simpleName := binary.LittleEndian.Uint32(buf[8:12])

	if int(codeInfoSize) > len(buf) {
		return nil, fmt.Errorf("bytecode: code_info_size %d exceeds buffer length %d", codeInfoSize, len(buf))
	}
	bc := buf[codeInfoSize:]
	if len(bc) < 5 {
		return nil, fmt.Errorf("bytecode: buffer too short for a bytecode prelude (%d bytes)", len(bc))
	}
	nState := binary.LittleEndian.Uint16(bc[0:2])
	excStack := binary.LittleEndian.Uint16(bc[2:4])
	numCells := int(bc[4])
	if 5+numCells > len(bc) {
		return nil, fmt.Errorf("bytecode: cell table (%d entries) runs past the end of the buffer", numCells)
	}
	cells := bc[5 : 5+numCells]

	lines := []string{
		fmt.Sprintf("; source_file=qstr(%d) simple_name=qstr(%d)", sourceFile, simpleName),
		fmt.Sprintf("; n_state=%d exc_stack_size=%d num_cells=%d cells=%v", nState, excStack, numCells, cells),
	}

	preludeLen := 5 + numCells
	code := bc[preludeLen:]
	off := 0
	for off < len(code) {
		start := off
		op := bcop(code[off])
		off++
		kind := argNone
		if int(op) < len(opArgKinds) {
			kind = opArgKinds[op]
		}
		// absOffset is the instruction's position as putPtr saw it
		// (prelude bytes included), needed to reproduce its alignment
		// padding exactly.
		absOffset := preludeLen + off
		text, n, err := disasmOperand(code[off:], kind, wordSize, absOffset)
		if err != nil {
			return nil, fmt.Errorf("bytecode: offset %d: %w", start, err)
		}
		off += n
		lines = append(lines, fmt.Sprintf("%6d  %-24s%s", start, op.String(), text))
	}
	return lines, nil
}

func disasmOperand(buf []byte, kind argKind, wordSize, absOffset int) (string, int, error) {
	switch kind {
	case argNone:
		return "", 0, nil
	case argByte:
		if len(buf) < 1 {
			return "", 0, fmt.Errorf("truncated byte operand")
		}
		return fmt.Sprintf("%d", buf[0]), 1, nil
	case argUint:
		v, n := decodeVarintUnsigned(buf)
		if n == 0 || n > len(buf) {
			return "", 0, fmt.Errorf("truncated uint operand")
		}
		return fmt.Sprintf("%d", v), n, nil
	case argInt:
		v, n := decodeVarintSigned(buf)
		if n == 0 || n > len(buf) {
			return "", 0, fmt.Errorf("truncated int operand")
		}
		return fmt.Sprintf("%d", v), n, nil
	case argQstr:
		v, n := decodeVarintUnsigned(buf)
		if n == 0 || n > len(buf) {
			return "", 0, fmt.Errorf("truncated qstr operand")
		}
		return fmt.Sprintf("qstr(%d)", v), n, nil
	case argUnsignedLabel:
		if len(buf) < 2 {
			return "", 0, fmt.Errorf("truncated label operand")
		}
		rel := binary.LittleEndian.Uint16(buf[:2])
		return fmt.Sprintf("+%d", rel), 2, nil
	case argSignedLabel:
		if len(buf) < 2 {
			return "", 0, fmt.Errorf("truncated label operand")
		}
		stored := binary.LittleEndian.Uint16(buf[:2])
		rel := int32(stored) - 0x8000
		return fmt.Sprintf("%+d", rel), 2, nil
	case argUnwindJump:
		if len(buf) < 3 {
			return "", 0, fmt.Errorf("truncated unwind_jump operand")
		}
		stored := binary.LittleEndian.Uint16(buf[:2])
		rel := int32(stored) - 0x8000
		flag := buf[2]
		depth := flag & 0x7f
		brk := flag&0x80 != 0
		return fmt.Sprintf("%+d depth=%d break=%v", rel, depth, brk), 3, nil
	case argPtr:
		n, wbuf, err := readAlignedPtr(buf, wordSize, absOffset)
		if err != nil {
			return "", 0, err
		}
		return fmt.Sprintf("raw_code=%#x", wbuf), n, nil
	case argClosure:
		n, wbuf, err := readAlignedPtr(buf, wordSize, absOffset)
		if err != nil {
			return "", 0, err
		}
		if n >= len(buf) {
			return "", 0, fmt.Errorf("truncated n_closed_over operand")
		}
		nClosed := buf[n]
		return fmt.Sprintf("raw_code=%#x n_closed_over=%d", wbuf, nClosed), n + 1, nil
	default:
		return "", 0, fmt.Errorf("unknown operand kind %d", kind)
	}
}

// readAlignedPtr mirrors putPtr's padding rule exactly: pad zero bytes
// up to the next word-size boundary measured from absOffset (the
// operand's position counting the bytecode prelude, same origin
// putPtr's own alignUp call uses), then read a word-sized value.
func readAlignedPtr(buf []byte, wordSize, absOffset int) (int, uint64, error) {
	aligned := alignUp(absOffset, wordSize)
	pad := aligned - absOffset
	if pad+wordSize > len(buf) {
		return 0, 0, fmt.Errorf("truncated pointer operand")
	}
	var v uint64
	switch wordSize {
	case 8:
		v = binary.LittleEndian.Uint64(buf[pad : pad+8])
	case 4:
		v = uint64(binary.LittleEndian.Uint32(buf[pad : pad+4]))
	default:
		return 0, 0, fmt.Errorf("unsupported word size %d", wordSize)
	}
	return pad + wordSize, v, nil
}
