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

// TestLineDeltaProgramDecodesBackToSourceLines drives the line-number
// delta program across the (bytecode offset, source line) pairs from
// §8's scenario S5 and checks that decoding the resulting byte program
// reconstructs the final (offset, line) pair exactly. This checks the
// §4.3 formula in normative form rather than against S5's specific
// worked byte values — see DESIGN.md's reconciliation note for why.
func TestLineDeltaProgramDecodesBackToSourceLines(t *testing.T) {
	lines := []struct {
		offset int
		line   int
	}{
		{0, 1}, {1, 1}, {2, 1}, {5, 5}, {6, 5}, {10, 12},
	}

	host := vmhost.NewMemory()
	sess := diag.NewSession()
	cfg := emitconfig.Default()
	em := NewEmitter(sess, cfg, host)
	sc := &scope.Scope{}

	drive := func(pass Pass) {
		if err := em.StartPass(pass, sc); err != nil {
			t.Fatalf("StartPass(%s): %v", pass, err)
		}
		for _, l := range lines {
			em.bytecodeOffset = l.offset
			em.SetSourceLine(l.line)
		}
		em.bytecodeOffset = lines[len(lines)-1].offset
		if err := em.EndPass(); err != nil {
			t.Fatalf("EndPass(%s): %v", pass, err)
		}
	}
	drive(PassCodeSize)
	drive(PassEmit)

	pub, ok := host.Lookup(sc.RawCode)
	if !ok {
		t.Fatal("scope was never published")
	}
	prog := pub.Buf[12:]

	gotOffset, gotLine := 0, 0
	for _, b := range prog {
		if b == 0 {
			break
		}
		gotOffset += int(b & 0x1f)
		gotLine += int(b >> 5)
	}

	wantOffset, wantLine := lines[len(lines)-1].offset, lines[len(lines)-1].line
	if gotOffset != wantOffset || gotLine != wantLine {
		t.Fatalf("decoded final (offset, line) = (%d, %d), want (%d, %d)",
			gotOffset, gotLine, wantOffset, wantLine)
	}
}

// TestLineDeltaSuppressedAtHighOptimization checks that no delta bytes
// are emitted once OptimizationLevel reaches 3, per §4.3.
func TestLineDeltaSuppressedAtHighOptimization(t *testing.T) {
	host := vmhost.NewMemory()
	sess := diag.NewSession()
	cfg := emitconfig.Default()
	cfg.OptimizationLevel = 3
	em := NewEmitter(sess, cfg, host)
	sc := &scope.Scope{}

	drive := func(pass Pass) {
		if err := em.StartPass(pass, sc); err != nil {
			t.Fatalf("StartPass(%s): %v", pass, err)
		}
		em.bytecodeOffset = 10
		em.SetSourceLine(12)
		if err := em.EndPass(); err != nil {
			t.Fatalf("EndPass(%s): %v", pass, err)
		}
	}
	drive(PassCodeSize)
	drive(PassEmit)

	pub, _ := host.Lookup(sc.RawCode)
	prog := pub.Buf[12:]
	if len(prog) == 0 || prog[0] != 0 {
		t.Fatalf("expected an empty line program (terminator only), got % X", prog)
	}
}
