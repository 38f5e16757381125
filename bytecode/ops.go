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

// bcop is the opcode a single abstract instruction compiles to. The
// numeric values below are this repo's own shared header with its
// reference VM host; a real embedded target would fix these against
// its own decoder table, but the encoding *shape* and stack effect of
// each operation — which is what this package is responsible for — do
// not depend on the particular numbering.
type bcop uint16

const (
	opLoadConstNone bcop = iota
	opLoadConstTrue
	opLoadConstFalse
	opLoadConstEllipsis
	opLoadConstSmallInt
	opLoadConstObj
	opLoadNull

	opLoadFast0
	opLoadFast1
	opLoadFast2
	opLoadFastN
	opStoreFast0
	opStoreFast1
	opStoreFast2
	opStoreFastN
	opDeleteFastN

	opLoadDeref
	opStoreDeref
	opDeleteDeref

	opLoadName
	opStoreName
	opDeleteName

	opLoadGlobal
	opStoreGlobal
	opDeleteGlobal

	opLoadAttr
	opLoadMethod
	opStoreAttr

	opLoadSubscr
	opStoreSubscr

	opDupTop
	opDupTopTwo
	opPopTop
	opRotTwo
	opRotThree

	opJump
	opPopJumpIfTrue
	opPopJumpIfFalse
	opJumpIfTrueOrPop
	opJumpIfFalseOrPop
	opUnwindJump
	opSetupWith
	opWithCleanup
	opSetupExcept
	opSetupFinally
	opEndFinally
	opPopBlock
	opPopExcept

	opGetIter
	opForIter

	opUnaryOp
	opBinaryOp
	opNot

	opBuildTuple
	opBuildList
	opBuildSet
	opBuildMap
	opStoreMap
	opListAppend
	opSetAdd
	opMapAdd
	opBuildSlice

	opUnpackSequence
	opUnpackEx

	opMakeFunction
	opMakeFunctionDefargs
	opMakeClosure
	opMakeClosureDefargs

	opCallFunction
	opCallFunctionVar
	opCallMethod
	opCallMethodVar

	opImportName
	opImportFrom
	opImportStar
	opReturnValue
	opRaiseVarargs
	opYieldValue
	opYieldFrom

	_maxbcop
)

var opNames = [_maxbcop]string{
	opLoadConstNone:       "LOAD_CONST_NONE",
	opLoadConstTrue:       "LOAD_CONST_TRUE",
	opLoadConstFalse:      "LOAD_CONST_FALSE",
	opLoadConstEllipsis:   "LOAD_CONST_ELLIPSIS",
	opLoadConstSmallInt:   "LOAD_CONST_SMALL_INT",
	opLoadConstObj:        "LOAD_CONST_OBJ",
	opLoadNull:            "LOAD_NULL",
	opLoadFast0:           "LOAD_FAST_0",
	opLoadFast1:           "LOAD_FAST_1",
	opLoadFast2:           "LOAD_FAST_2",
	opLoadFastN:           "LOAD_FAST_N",
	opStoreFast0:          "STORE_FAST_0",
	opStoreFast1:          "STORE_FAST_1",
	opStoreFast2:          "STORE_FAST_2",
	opStoreFastN:          "STORE_FAST_N",
	opDeleteFastN:         "DELETE_FAST_N",
	opLoadDeref:           "LOAD_DEREF",
	opStoreDeref:          "STORE_DEREF",
	opDeleteDeref:         "DELETE_DEREF",
	opLoadName:            "LOAD_NAME",
	opStoreName:           "STORE_NAME",
	opDeleteName:          "DELETE_NAME",
	opLoadGlobal:          "LOAD_GLOBAL",
	opStoreGlobal:         "STORE_GLOBAL",
	opDeleteGlobal:        "DELETE_GLOBAL",
	opLoadAttr:            "LOAD_ATTR",
	opLoadMethod:          "LOAD_METHOD",
	opStoreAttr:           "STORE_ATTR",
	opLoadSubscr:          "LOAD_SUBSCR",
	opStoreSubscr:         "STORE_SUBSCR",
	opDupTop:              "DUP_TOP",
	opDupTopTwo:           "DUP_TOP_TWO",
	opPopTop:              "POP_TOP",
	opRotTwo:              "ROT_TWO",
	opRotThree:            "ROT_THREE",
	opJump:                "JUMP",
	opPopJumpIfTrue:       "POP_JUMP_IF_TRUE",
	opPopJumpIfFalse:      "POP_JUMP_IF_FALSE",
	opJumpIfTrueOrPop:     "JUMP_IF_TRUE_OR_POP",
	opJumpIfFalseOrPop:    "JUMP_IF_FALSE_OR_POP",
	opUnwindJump:          "UNWIND_JUMP",
	opSetupWith:           "SETUP_WITH",
	opWithCleanup:         "WITH_CLEANUP",
	opSetupExcept:         "SETUP_EXCEPT",
	opSetupFinally:        "SETUP_FINALLY",
	opEndFinally:          "END_FINALLY",
	opPopBlock:            "POP_BLOCK",
	opPopExcept:           "POP_EXCEPT",
	opGetIter:             "GET_ITER",
	opForIter:             "FOR_ITER",
	opUnaryOp:             "UNARY_OP",
	opBinaryOp:            "BINARY_OP",
	opNot:                 "NOT",
	opBuildTuple:          "BUILD_TUPLE",
	opBuildList:           "BUILD_LIST",
	opBuildSet:            "BUILD_SET",
	opBuildMap:            "BUILD_MAP",
	opStoreMap:            "STORE_MAP",
	opListAppend:          "LIST_APPEND",
	opSetAdd:              "SET_ADD",
	opMapAdd:              "MAP_ADD",
	opBuildSlice:          "BUILD_SLICE",
	opUnpackSequence:      "UNPACK_SEQUENCE",
	opUnpackEx:            "UNPACK_EX",
	opMakeFunction:        "MAKE_FUNCTION",
	opMakeFunctionDefargs: "MAKE_FUNCTION_DEFARGS",
	opMakeClosure:         "MAKE_CLOSURE",
	opMakeClosureDefargs:  "MAKE_CLOSURE_DEFARGS",
	opCallFunction:        "CALL_FUNCTION",
	opCallFunctionVar:     "CALL_FUNCTION_VAR",
	opCallMethod:          "CALL_METHOD",
	opCallMethodVar:       "CALL_METHOD_VAR",
	opImportName:          "IMPORT_NAME",
	opImportFrom:          "IMPORT_FROM",
	opImportStar:          "IMPORT_STAR",
	opReturnValue:         "RETURN_VALUE",
	opRaiseVarargs:        "RAISE_VARARGS",
	opYieldValue:          "YIELD_VALUE",
	opYieldFrom:           "YIELD_FROM",
}

func (op bcop) String() string {
	if int(op) >= 0 && int(op) < len(opNames) && opNames[op] != "" {
		return opNames[op]
	}
	return "UNKNOWN_OP"
}
