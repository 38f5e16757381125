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
	"strings"
	"testing"

	"github.com/willcharlton/pybc/scope"
	"github.com/willcharlton/pybc/vmhost"
)

func TestDisassembleRendersOpcodeNames(t *testing.T) {
	host := vmhost.NewMemory()
	em := newTestEmitter(host)
	sc := &scope.Scope{NumLocals: 1}

	runScope(t, em, sc, func(e *Emitter) {
		e.LoadConstSmallInt(42)
		e.StoreFast(0)
		l, err := e.NewLabel()
		if err != nil {
			t.Fatalf("NewLabel: %v", err)
		}
		e.Jump(l)
		e.LabelAssign(l)
		e.LoadConstNone()
		e.ReturnValue()
	})

	pub, ok := host.Lookup(sc.RawCode)
	if !ok {
		t.Fatal("scope was never published")
	}
	lines, err := Disassemble(pub.Buf, 8)
	if err != nil {
		t.Fatalf("Disassemble: %v", err)
	}
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"LOAD_CONST_SMALL_INT", "42", "STORE_FAST_0", "JUMP", "RETURN_VALUE"} {
		if !strings.Contains(joined, want) {
			t.Errorf("disassembly missing %q:\n%s", want, joined)
		}
	}
}
