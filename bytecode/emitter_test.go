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
	"testing"

	"github.com/willcharlton/pybc/diag"
	"github.com/willcharlton/pybc/emitconfig"
	"github.com/willcharlton/pybc/scope"
	"github.com/willcharlton/pybc/vmhost"
)

// runScope drives em through all four passes over sc, calling emit
// identically each time — the contract every real frontend driver
// must honor for the two-pass algorithm to converge.
func runScope(t *testing.T, em *Emitter, sc *scope.Scope, emit func(e *Emitter)) {
	t.Helper()
	for _, pass := range []Pass{PassScope, PassStackSize, PassCodeSize, PassEmit} {
		if err := em.StartPass(pass, sc); err != nil {
			t.Fatalf("StartPass(%s): %v", pass, err)
		}
		emit(em)
		if err := em.EndPass(); err != nil {
			t.Fatalf("EndPass(%s): %v", pass, err)
		}
	}
}

func newTestEmitter(host vmhost.Host) *Emitter {
	sess := diag.NewSession()
	cfg := emitconfig.Default()
	return NewEmitter(sess, cfg, host)
}

// preludeBytecodeOffset returns where the bytecode region starts within a
// published buffer for a scope with no cell variables: 12-byte
// code-info header, word-size aligned, plus the 5-byte prelude
// (2+2+1 with zero cells).
func preludeBytecodeOffset(cfg emitconfig.Config) int {
	infoLen := alignUp(12, cfg.WordSize)
	return infoLen + 5
}

func TestEmptyFunctionReturn(t *testing.T) {
	// (S1) start_pass(EMIT) ... return_value; end_pass. The returned
	// value has to be pushed first, or return_value underflows the stack.
	host := vmhost.NewMemory()
	em := newTestEmitter(host)
	sc := &scope.Scope{}
	runScope(t, em, sc, func(e *Emitter) {
		e.LoadConstNone()
		e.ReturnValue()
	})

	if !em.LastEmitWasReturnValue() {
		t.Fatal("expected last_emit_was_return_value after ReturnValue")
	}
	if sc.StackSize != 1 {
		t.Fatalf("stack watermark = %d, want 1", sc.StackSize)
	}

	pub, ok := host.Lookup(sc.RawCode)
	if !ok {
		t.Fatal("scope was never published")
	}
	// LOAD_CONST_NONE is one byte, so RETURN_VALUE follows at off+1.
	off := preludeBytecodeOffset(emitconfig.Default()) + 1
	if off >= len(pub.Buf) {
		t.Fatalf("buffer too short: %d bytes, want RETURN_VALUE at %d", len(pub.Buf), off)
	}
	if bcop(pub.Buf[off]) != opReturnValue {
		t.Fatalf("bytecode[%d] = %#x, want RETURN_VALUE (%#x)", off, pub.Buf[off], byte(opReturnValue))
	}
}

func TestForwardJumpResolvesToNextInstruction(t *testing.T) {
	// (S2) jump(L); label_assign(L); return_value.
	host := vmhost.NewMemory()
	em := newTestEmitter(host)
	sc := &scope.Scope{}

	runScope(t, em, sc, func(e *Emitter) {
		l, err := e.NewLabel()
		if err != nil {
			t.Fatalf("NewLabel: %v", err)
		}
		e.Jump(l)
		e.LabelAssign(l)
		e.ReturnValue()
	})

	pub, _ := host.Lookup(sc.RawCode)
	off := preludeBytecodeOffset(emitconfig.Default())
	if bcop(pub.Buf[off]) != opJump {
		t.Fatalf("bytecode[%d] = %#x, want JUMP", off, pub.Buf[off])
	}
	stored := uint16(pub.Buf[off+1]) | uint16(pub.Buf[off+2])<<8
	rel := int32(stored) - 0x8000
	if rel != 0 {
		t.Fatalf("jump displacement = %d, want 0 (lands on the very next instruction)", rel)
	}
}

func TestSmallIntLoadStoreReturn(t *testing.T) {
	// (S3) load_const_small_int(42); store_fast(0); load_const_small_int(42); return_value.
	host := vmhost.NewMemory()
	em := newTestEmitter(host)
	sc := &scope.Scope{NumLocals: 1}

	runScope(t, em, sc, func(e *Emitter) {
		e.LoadConstSmallInt(42)
		e.StoreFast(0)
		e.LoadConstSmallInt(42)
		e.ReturnValue()
	})

	pub, _ := host.Lookup(sc.RawCode)
	off := preludeBytecodeOffset(emitconfig.Default())
	buf := pub.Buf[off:]

	if bcop(buf[0]) != opLoadConstSmallInt || buf[1] != 0x2A {
		t.Fatalf("first load_const_small_int = %#x %#x, want opcode+0x2A", buf[0], buf[1])
	}
	if bcop(buf[2]) != opStoreFast0 {
		t.Fatalf("store_fast(0) = %#x, want short-form STORE_FAST_0 with no payload", buf[2])
	}
	if bcop(buf[3]) != opLoadConstSmallInt || buf[4] != 0x2A {
		t.Fatalf("second load_const_small_int = %#x %#x, want opcode+0x2A", buf[3], buf[4])
	}
	if bcop(buf[5]) != opReturnValue {
		t.Fatalf("final opcode = %#x, want RETURN_VALUE", buf[5])
	}
}

func TestSignedVarintEncodingEdgeCases(t *testing.T) {
	// (S4) -1 -> 0x7F; -64 -> 0x40; -65 -> 0xFF, 0x3F.
	cases := []struct {
		v    int64
		want []byte
	}{
		{-1, []byte{0x7F}},
		{-64, []byte{0x40}},
		{-65, []byte{0xFF, 0x3F}},
		{42, []byte{0x2A}},
	}
	for _, c := range cases {
		got := appendVarintSigned(nil, c.v)
		if string(got) != string(c.want) {
			t.Errorf("appendVarintSigned(%d) = % X, want % X", c.v, got, c.want)
		}
		back, n := decodeVarintSigned(got)
		if back != c.v || n != len(c.want) {
			t.Errorf("decodeVarintSigned(% X) = (%d, %d), want (%d, %d)", got, back, n, c.v, len(c.want))
		}
	}
}

func TestBinaryIsNotEmitsPositiveFormThenNot(t *testing.T) {
	// (S6) binary_op(IS_NOT) -> BINARY_OP IS; NOT, net delta -1.
	host := vmhost.NewMemory()
	em := newTestEmitter(host)
	sc := &scope.Scope{}

	runScope(t, em, sc, func(e *Emitter) {
		e.LoadConstNone()
		e.LoadConstNone()
		e.BinaryOp(BinaryIsNot)
		e.ReturnValue()
	})

	if sc.StackSize != 2 {
		t.Fatalf("stack watermark = %d, want 2", sc.StackSize)
	}

	pub, _ := host.Lookup(sc.RawCode)
	off := preludeBytecodeOffset(emitconfig.Default())
	buf := pub.Buf[off:]
	// two LOAD_CONST_NONE (1 byte each), then BINARY_OP IS (2 bytes), then NOT (1 byte).
	if bcop(buf[2]) != opBinaryOp || buf[3] != byte(BinaryIs) {
		t.Fatalf("expected BINARY_OP IS at offset 2, got %#x %#x", buf[2], buf[3])
	}
	if bcop(buf[4]) != opNot {
		t.Fatalf("expected NOT at offset 4, got %#x", buf[4])
	}
}

func TestStackUnderflowIsABug(t *testing.T) {
	host := vmhost.NewMemory()
	em := newTestEmitter(host)
	sc := &scope.Scope{}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic from operand stack underflow")
		}
		if _, ok := r.(*diag.BugError); !ok {
			t.Fatalf("expected *diag.BugError, got %T", r)
		}
	}()

	if err := em.StartPass(PassStackSize, sc); err != nil {
		t.Fatalf("StartPass: %v", err)
	}
	em.PopTop()
}

func TestLabelOffsetDriftIsABug(t *testing.T) {
	host := vmhost.NewMemory()
	em := newTestEmitter(host)
	sc := &scope.Scope{}

	// Assign the same label id at two different offsets across passes
	// by feeding an inconsistent operation sequence, simulating a
	// driver bug where the emitted instruction count changed between
	// CODE_SIZE and EMIT.
	pass := PassCodeSize
	if err := em.StartPass(pass, sc); err != nil {
		t.Fatalf("StartPass: %v", err)
	}
	l, err := em.NewLabel()
	if err != nil {
		t.Fatalf("NewLabel: %v", err)
	}
	em.LoadConstNone()
	em.LabelAssign(l)
	em.PopTop()
	if err := em.EndPass(); err != nil {
		t.Fatalf("EndPass: %v", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected a panic from label offset drift")
		}
	}()
	if err := em.StartPass(PassEmit, sc); err != nil {
		t.Fatalf("StartPass: %v", err)
	}
	// A differently-shaped sequence: the label now lands one byte
	// later, which must be rejected as a compiler bug.
	em.LoadConstTrue()
	em.LoadConstNone()
	em.LabelAssign(l)
	em.PopTop()
	em.PopTop()
}

func TestDeleteFastRecordsNoStackDelta(t *testing.T) {
	host := vmhost.NewMemory()
	em := newTestEmitter(host)
	sc := &scope.Scope{NumLocals: 1}

	runScope(t, em, sc, func(e *Emitter) {
		e.LoadConstNone()
		e.StoreFast(0)
		e.DeleteFast(0)
		e.LoadConstNone()
		e.ReturnValue()
	})
	if sc.StackSize != 1 {
		t.Fatalf("stack watermark = %d, want 1 (delete_fast must not affect it)", sc.StackSize)
	}
}
