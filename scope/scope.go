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

// Package scope defines the Scope aggregate the emitter reads from and
// writes back to. A Scope is a function, class, module, or
// comprehension: one compilation unit. It is produced by the lexer,
// parser, and scope analyzer (all out of scope for this repo) and is
// owned by the caller, not the emitter — the emitter mutates it in
// place but never allocates or frees one.
package scope

import "github.com/willcharlton/pybc/qstr"

// Kind classifies one entry of a Scope's identifier table.
type Kind uint8

const (
	KindLocal Kind = iota
	KindCell
	KindFree
	KindGlobal
)

// Flags are the bits of Scope.Flags.
type Flags uint16

const (
	// FlagGenerator is set by the emitter, not the parser, the first
	// time it sees a yield or yield-from in the scope's body.
	FlagGenerator Flags = 1 << iota
	FlagVarArgs
	FlagVarKeywords
)

// RawCode is an opaque handle the VM's object model uses to identify a
// compiled scope's published bytecode. The emitter never dereferences
// it; it only writes it out via the publish step (§6).
type RawCode any

// IdentInfo is one entry of a Scope's identifier table.
type IdentInfo struct {
	Kind  Kind
	Local int     // valid slot index when Kind is KindLocal or KindCell
	Name  qstr.ID
}

// Scope is the caller-owned aggregate the emitter reads identifier
// information from and writes the computed stack size, generator flag,
// and finished code handle back into.
type Scope struct {
	NumLocals     int
	NumPosArgs    int
	NumKwonlyArgs int
	ExcStackSize  int
	IDInfo        []IdentInfo
	SourceFile    qstr.ID
	SimpleName    qstr.ID
	Flags         Flags

	// StackSize is written by the emitter: the maximum operand-stack
	// depth observed across the STACK_SIZE pass (and re-observed,
	// identically, during EMIT).
	StackSize int

	// RawCode is written by the emitter's Pass Controller at the end
	// of the EMIT pass, once the scope's buffer has been published to
	// the VM host.
	RawCode RawCode
}

// NumCells returns the number of locals that must be boxed into heap
// cells because an inner closure captures them.
func (s *Scope) NumCells() int {
	n := 0
	for _, id := range s.IDInfo {
		if id.Kind == KindCell {
			n++
		}
	}
	return n
}

// CellLocals returns the local slot index of every cell-kind
// identifier, in table order — exactly the byte sequence the bytecode
// prelude's "cell local indices" field needs.
func (s *Scope) CellLocals() []int {
	out := make([]int, 0, s.NumCells())
	for _, id := range s.IDInfo {
		if id.Kind == KindCell {
			out = append(out, id.Local)
		}
	}
	return out
}

// ArgNames returns the positional-then-keyword-only argument name
// vector the code-registration interface expects, built from the
// identifier table the same way the emitter's end_pass(EMIT) does.
func (s *Scope) ArgNames() []qstr.ID {
	out := make([]qstr.ID, 0, s.NumPosArgs+s.NumKwonlyArgs)
	for _, id := range s.IDInfo {
		if id.Kind != KindLocal {
			continue
		}
		if id.Local < s.NumPosArgs+s.NumKwonlyArgs {
			out = append(out, id.Name)
		}
		if len(out) == s.NumPosArgs+s.NumKwonlyArgs {
			break
		}
	}
	return out
}
